package main

import (
	"fmt"
	"os"

	"github.com/QTest-hq/classdoc/internal/config"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "classdoc",
		Short: "classdoc - Markdown API docs for TypeScript classes",
		Long: `classdoc extracts classes, their public members and doc comments from a
TypeScript declaration file and writes them into Markdown documents between
<!-- START CLASS API: Name --> and <!-- END CLASS API: Name --> markers.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
	}

	// Add subcommands
	rootCmd.AddCommand(updateCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(initCmd())

	return rootCmd
}

// setupLogging configures the global logger from the environment
func setupLogging() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(cfg.Level())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.LogFormat == "console" {
		logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = logger.With().Str("run_id", uuid.NewString()).Logger()

	return nil
}
