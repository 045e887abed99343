package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ErrEmptyColumns is returned by FormatTable when no columns are requested.
var ErrEmptyColumns = errors.New("at least one column must be given")

// ErrEmptyEntries is returned by FormatTable when there are no entries to
// display.
var ErrEmptyEntries = errors.New("no entries to display")

const timeDisplayLayout = "2006-01-02 15:04:05"

// FormatTable projects entries into an aligned text table with one row
// per entry: a header row of column names, a ruler row of dashes, then
// the data. Starred renders Yes/No, tags render comma-joined in tag
// order, and unset or zero values render as N/A.
func FormatTable(entries []*Entry, columns []string) (string, error) {
	if len(columns) == 0 {
		return "", ErrEmptyColumns
	}
	if len(entries) == 0 {
		return "", ErrEmptyEntries
	}

	header := make(table.Row, len(columns))
	ruler := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col
		ruler[i] = strings.Repeat("-", len(col))
	}

	tw := table.NewWriter()
	style := table.StyleDefault
	style.Options.DrawBorder = false
	style.Options.SeparateColumns = false
	style.Options.SeparateHeader = false
	style.Options.SeparateRows = false
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	tw.AppendHeader(header)
	tw.AppendRow(ruler)
	for _, entry := range entries {
		row := make(table.Row, len(columns))
		for i, col := range columns {
			value, err := ColumnValue(entry, col)
			if err != nil {
				return "", err
			}
			row[i] = value
		}
		tw.AppendRow(row)
	}
	return tw.Render(), nil
}

// ColumnValue renders a single display column for an entry using the
// same conventions as FormatTable. Unknown column names are an error.
func ColumnValue(entry *Entry, column string) (string, error) {
	switch column {
	case "starred":
		if entry.Starred {
			return "Yes", nil
		}
		return "No", nil
	case "tags":
		if len(entry.Tags) == 0 {
			return "N/A", nil
		}
		names := make([]string, len(entry.Tags))
		for i, tag := range entry.Tags {
			names[i] = tag.Name
		}
		return strings.Join(names, ", "), nil
	case "id":
		return orNA(entry.ID != 0, func() string { return strconv.FormatInt(entry.ID, 10) }), nil
	case "source":
		return stringOrNA(entry.Source), nil
	case "provider":
		return stringOrNA(entry.Provider), nil
	case "physobs":
		return stringOrNA(entry.Physobs), nil
	case "fileid":
		return stringOrNA(entry.FileID), nil
	case "instrument":
		return stringOrNA(entry.Instrument), nil
	case "path":
		return stringOrNA(entry.Path), nil
	case "observation_time_start":
		return timeOrNA(entry.ObservationTimeStart), nil
	case "observation_time_end":
		return timeOrNA(entry.ObservationTimeEnd), nil
	case "download_time":
		return timeOrNA(entry.DownloadTime), nil
	case "size":
		return floatOrNA(entry.Size), nil
	case "wavemin":
		return floatOrNA(entry.Wavemin), nil
	case "wavemax":
		return floatOrNA(entry.Wavemax), nil
	default:
		return "", fmt.Errorf("unknown column %q", column)
	}
}

func orNA(ok bool, render func() string) string {
	if !ok {
		return "N/A"
	}
	return render()
}

func stringOrNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}

func timeOrNA(value *time.Time) string {
	if value == nil || value.IsZero() {
		return "N/A"
	}
	return value.UTC().Format(timeDisplayLayout)
}

func floatOrNA(value *float64) string {
	if value == nil || *value == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(*value, 'g', -1, 64)
}
