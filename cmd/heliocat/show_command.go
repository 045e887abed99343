package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"heliocat/internal/catalog"
	"heliocat/internal/config"
	"heliocat/internal/store"
)

var showFieldColumns = []string{
	"source", "provider", "physobs", "fileid", "instrument", "path",
	"observation_time_start", "observation_time_end", "download_time",
	"size", "wavemin", "wavemax", "starred", "tags",
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single catalog entry in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				entry, err := st.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				if entry == nil {
					return fmt.Errorf("no entry with id %d", id)
				}
				return printEntry(cmd, entry)
			})
		},
	}
	return cmd
}

func printEntry(cmd *cobra.Command, entry *catalog.Entry) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Entry %d\n", entry.ID)
	for _, column := range showFieldColumns {
		value, err := catalog.ColumnValue(entry, column)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-24s %s\n", columnTitle(column), value)
	}

	if len(entry.HeaderEntries) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "FITS header:")
		for _, header := range entry.HeaderEntries {
			fmt.Fprintf(out, "  %-10s %s\n", header.Key, header.Value)
		}
	}
	return nil
}
