package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"heliocat/internal/config"
	"heliocat/internal/store"
)

func newTagCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id> <name>...",
		Short: "Attach one or more tags to an entry",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				for _, name := range args[1:] {
					if err := st.Tag(cmd.Context(), id, name); err != nil {
						return fmt.Errorf("tag entry %d with %q: %w", id, name, err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tagged entry %d\n", id)
				return nil
			})
		},
	}
}

func newUntagCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "untag <id> <name>...",
		Short: "Detach one or more tags from an entry",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				for _, name := range args[1:] {
					if err := st.Untag(cmd.Context(), id, name); err != nil {
						return fmt.Errorf("untag entry %d from %q: %w", id, name, err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Untagged entry %d\n", id)
				return nil
			})
		},
	}
}
