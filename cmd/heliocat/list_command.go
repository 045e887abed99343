package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"heliocat/internal/config"
	"heliocat/internal/store"
)

var defaultListColumns = []string{"id", "instrument", "observation_time_start", "wavemin", "wavemax", "starred", "tags"}

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		columns    []string
		instrument string
		starred    bool
		tag        string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				opts := store.ListOptions{
					Instrument: instrument,
					Tag:        tag,
				}
				if cmd.Flags().Changed("starred") {
					opts.Starred = &starred
				}

				entries, err := st.List(cmd.Context(), opts)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
					return nil
				}
				return renderEntryTable(cmd.OutOrStdout(), entries, columns)
			})
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", defaultListColumns, "Columns to display")
	cmd.Flags().StringVar(&instrument, "instrument", "", "Only entries from this instrument")
	cmd.Flags().BoolVar(&starred, "starred", false, "Filter by starred state")
	cmd.Flags().StringVar(&tag, "tag", "", "Only entries carrying this tag")
	return cmd
}
