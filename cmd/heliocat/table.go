package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"heliocat/internal/catalog"
)

var columnTitleCaser = cases.Title(language.English)

func columnTitle(column string) string {
	switch column {
	case "id":
		return "ID"
	case "fileid":
		return "File ID"
	}
	return columnTitleCaser.String(strings.ReplaceAll(column, "_", " "))
}

func rightAligned(column string) bool {
	switch column {
	case "id", "size", "wavemin", "wavemax":
		return true
	}
	return false
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderEntryTable writes entries as a table. Terminals get a rounded
// table with title-cased headers; everything else gets the plain
// dash-ruled layout so output stays easy to pipe.
func renderEntryTable(out io.Writer, entries []*catalog.Entry, columns []string) error {
	if !isTerminal(out) {
		rendered, err := catalog.FormatTable(entries, columns)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rendered)
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = columnTitle(col)
	}
	tw.AppendHeader(header)

	for _, entry := range entries {
		row := make(table.Row, len(columns))
		for i, col := range columns {
			value, err := catalog.ColumnValue(entry, col)
			if err != nil {
				return err
			}
			row[i] = value
		}
		tw.AppendRow(row)
	}

	columnConfigs := make([]table.ColumnConfig, 0, len(columns))
	for i, col := range columns {
		align := text.AlignLeft
		if rightAligned(col) {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	fmt.Fprintln(out, tw.Render())
	return nil
}
