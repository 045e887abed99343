package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"heliocat/internal/config"
	"heliocat/internal/store"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "remove [<id>...]",
		Short: "Remove entries from the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return errors.New("--all cannot be combined with entry ids")
			}
			if !all && len(args) == 0 {
				return errors.New("provide entry ids or --all")
			}

			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid entry id %q", arg)
				}
				ids = append(ids, id)
			}

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				if all {
					if err := st.Clear(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Cleared the catalog")
					return nil
				}
				for _, id := range ids {
					if err := st.Remove(cmd.Context(), id); err != nil {
						return fmt.Errorf("remove entry %d: %w", id, err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", len(ids))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove every entry and tag")
	return cmd
}
