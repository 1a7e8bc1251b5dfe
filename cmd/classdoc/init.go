package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/QTest-hq/classdoc/internal/config"
	"github.com/QTest-hq/classdoc/internal/repo"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var (
		dir     string
		source  string
		docs    []string
		classes []string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .classdoc.yaml at the project root",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := repo.Discover(dir)
			if err != nil {
				return err
			}

			path := filepath.Join(info.Root, config.ProjectConfigFile)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.DefaultProjectConfig()
			override := &config.ProjectConfig{Source: source}
			for _, doc := range docs {
				override.Documents = append(override.Documents, config.DocumentConfig{Path: doc, Classes: classes})
			}
			cfg.Merge(override)

			if err := config.SaveProjectConfig(info.Root, cfg); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Written: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "Project directory")
	cmd.Flags().StringVarP(&source, "source", "s", "", "TypeScript declaration file, relative to the project root")
	cmd.Flags().StringSliceVarP(&docs, "doc", "d", nil, "Markdown document, relative to the project root (repeatable)")
	cmd.Flags().StringSliceVarP(&classes, "class", "c", nil, "Class to document in each document (repeatable)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")

	return cmd
}
