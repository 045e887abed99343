package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"heliocat/internal/config"
	"heliocat/internal/store"
)

func newStarCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "star <id>...",
		Short: "Mark entries as starred",
		Args:  cobra.MinimumNArgs(1),
		RunE:  setStarredRunE(ctx, true),
	}
}

func newUnstarCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unstar <id>...",
		Short: "Clear the starred mark on entries",
		Args:  cobra.MinimumNArgs(1),
		RunE:  setStarredRunE(ctx, false),
	}
}

func setStarredRunE(ctx *commandContext, starred bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ids := make([]int64, 0, len(args))
		for _, arg := range args {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", arg)
			}
			ids = append(ids, id)
		}
		return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
			for _, id := range ids {
				if err := st.SetStarred(cmd.Context(), id, starred); err != nil {
					return fmt.Errorf("update entry %d: %w", id, err)
				}
			}
			if starred {
				fmt.Fprintf(cmd.OutOrStdout(), "Starred %d entries\n", len(ids))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Unstarred %d entries\n", len(ids))
			}
			return nil
		})
	}
}
