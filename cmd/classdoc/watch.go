package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/QTest-hq/classdoc/internal/config"
	"github.com/QTest-hq/classdoc/internal/watch"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Update the documents whenever the source file changes",
		Long: `Runs 'update' once, then again after every change to the source file.
Each run parses the source afresh.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			env, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			update := func(ctx context.Context) error {
				// The registry never invalidates, so every run gets a new extractor
				_, up := newUpdater(cfg)
				summary, err := runDocuments(ctx, out, cfg, up.UpdateDocument)
				if err != nil {
					return err
				}
				log.Info().Int("updated", summary.ok).Int("missing", summary.missing).Msg("documents updated")
				return nil
			}

			if err := update(ctx); err != nil {
				return err
			}

			w, err := watch.New(cfg.Source, time.Duration(env.DebounceMillis)*time.Millisecond, update)
			if err != nil {
				return err
			}
			defer w.Close()

			fmt.Fprintf(out, "👀 Watching %s (Ctrl+C to stop)\n", cfg.Source)

			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
