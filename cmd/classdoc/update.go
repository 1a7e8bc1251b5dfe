package main

import (
	"context"
	"fmt"
	"io"

	"github.com/QTest-hq/classdoc/internal/config"
	"github.com/QTest-hq/classdoc/internal/updater"
	"github.com/spf13/cobra"
)

func updateCmd() *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rewrite the class API sections of the configured documents",
		Long: `Renders every requested class and replaces the text between its markers.

Sections whose markers are missing are reported and skipped; an unknown
class name stops the run.

Example:
  classdoc update -s types/index.d.ts -d README.md -c Client -c Options`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			_, up := newUpdater(cfg)
			summary, err := runDocuments(cmd.Context(), cmd.OutOrStdout(), cfg, up.UpdateDocument)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n📦 Updated %d section(s)", summary.ok)
			if summary.missing > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), ", %d without markers", summary.missing)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func checkCmd() *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the class API sections are up to date without writing",
		Long: `Renders every requested class and compares it with the document.
Exits non-zero when a section is stale or its markers are missing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			_, up := newUpdater(cfg)
			summary, err := runDocuments(cmd.Context(), cmd.OutOrStdout(), cfg, up.CheckDocument)
			if err != nil {
				return err
			}

			if summary.stale > 0 || summary.missing > 0 {
				return fmt.Errorf("%d section(s) out of date, %d without markers; run 'classdoc update'", summary.stale, summary.missing)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✅ %d section(s) up to date\n", summary.ok)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

type documentFunc func(ctx context.Context, path string, classNames []string) ([]updater.Outcome, error)

type runSummary struct {
	ok      int
	stale   int
	missing int
}

// runDocuments applies fn to each configured document in order and prints one line per class
func runDocuments(ctx context.Context, out io.Writer, cfg *config.ProjectConfig, fn documentFunc) (runSummary, error) {
	var summary runSummary

	if ctx == nil {
		ctx = context.Background()
	}

	for _, doc := range cfg.Documents {
		outcomes, err := fn(ctx, doc.Path, doc.Classes)
		for _, o := range outcomes {
			fmt.Fprintf(out, "%s %s\n", statusIcon(o.Status), o)
			switch o.Status {
			case updater.StatusUpdated, updater.StatusCurrent:
				summary.ok++
			case updater.StatusStale:
				summary.stale++
			case updater.StatusMarkersNotFound:
				summary.missing++
			}
		}
		if err != nil {
			return summary, fmt.Errorf("failed to process %s: %w", doc.Path, err)
		}
		if len(outcomes) == 0 {
			fmt.Fprintf(out, "ℹ️  %s: no class sections\n", doc.Path)
		}
	}

	return summary, nil
}

func statusIcon(status updater.Status) string {
	switch status {
	case updater.StatusUpdated, updater.StatusCurrent:
		return "✅"
	case updater.StatusStale:
		return "❌"
	default:
		return "⚠️ "
	}
}
