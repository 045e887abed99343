package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"heliocat/internal/catalog"
	"heliocat/internal/config"
	"heliocat/internal/logging"
	"heliocat/internal/store"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		recursive bool
		pattern   string
		waveunit  string
	)

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Ingest FITS files from a directory into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				opts := catalog.ScanOptions{
					Recursive:       cfg.Ingest.Recursive,
					Pattern:         cfg.Ingest.Pattern,
					DefaultWaveunit: cfg.Ingest.DefaultWaveunit,
				}
				if cmd.Flags().Changed("recursive") {
					opts.Recursive = recursive
				}
				if cmd.Flags().Changed("pattern") {
					opts.Pattern = pattern
				}
				if cmd.Flags().Changed("waveunit") {
					opts.DefaultWaveunit = waveunit
				}

				lock := flock.New(filepath.Join(cfg.Paths.DataDir, "scan.lock"))
				ok, err := lock.TryLock()
				if err != nil {
					return fmt.Errorf("acquire scan lock: %w", err)
				}
				if !ok {
					return errors.New("another scan is already running")
				}
				defer func() {
					_ = lock.Unlock()
				}()

				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					return fmt.Errorf("init logger: %w", err)
				}
				logger = logging.WithComponent(logger, "scan")

				dir := args[0]
				sessionID := uuid.NewString()
				logger.Info("scan started",
					slog.String("session", sessionID),
					slog.String("dir", dir),
					slog.Bool("recursive", opts.Recursive))

				runCtx := cmd.Context()
				saved := 0
				for scanned, err := range catalog.EntriesFromDirectory(dir, opts) {
					if err != nil {
						logger.Error("scan aborted", slog.String("session", sessionID), logging.Error(err))
						return err
					}
					if err := st.Save(runCtx, scanned.Entry); err != nil {
						return fmt.Errorf("save %s: %w", scanned.Path, err)
					}
					logger.Info("entry added",
						slog.Int64("id", scanned.Entry.ID),
						slog.String("path", scanned.Path))
					saved++
				}

				logger.Info("scan finished", slog.String("session", sessionID), slog.Int("entries", saved))
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d entries from %s\n", saved, dir)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Scan subdirectories as well")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob applied to the full file path")
	cmd.Flags().StringVar(&waveunit, "waveunit", "", "Unit assumed when a header names none")
	return cmd
}
