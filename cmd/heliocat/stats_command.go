package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"heliocat/internal/config"
	"heliocat/internal/store"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show entry counts per instrument",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				stats, err := st.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if len(stats) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty.")
					return nil
				}

				instruments := make([]string, 0, len(stats))
				total := 0
				for instrument, count := range stats {
					instruments = append(instruments, instrument)
					total += count
				}
				sort.Strings(instruments)

				tw := table.NewWriter()
				tw.SetStyle(table.StyleRounded)
				tw.AppendHeader(table.Row{"Instrument", "Entries"})
				for _, instrument := range instruments {
					label := instrument
					if label == "" {
						label = "(none)"
					}
					tw.AppendRow(table.Row{label, strconv.Itoa(stats[instrument])})
				}
				tw.AppendFooter(table.Row{"Total", strconv.Itoa(total)})
				fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
				return nil
			})
		},
	}
}
