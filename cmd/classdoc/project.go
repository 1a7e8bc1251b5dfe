package main

import (
	"fmt"
	"path/filepath"

	"github.com/QTest-hq/classdoc/internal/config"
	"github.com/QTest-hq/classdoc/internal/extractor"
	"github.com/QTest-hq/classdoc/internal/parser"
	"github.com/QTest-hq/classdoc/internal/repo"
	"github.com/QTest-hq/classdoc/internal/updater"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// projectFlags are the flags shared by commands that operate on a project
type projectFlags struct {
	dir     string
	source  string
	docs    []string
	classes []string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dir, "dir", "C", ".", "Project directory (the enclosing git repository root is used)")
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "TypeScript declaration file (overrides .classdoc.yaml)")
	cmd.Flags().StringSliceVarP(&f.docs, "doc", "d", nil, "Markdown document to update (repeatable, overrides .classdoc.yaml)")
	cmd.Flags().StringSliceVarP(&f.classes, "class", "c", nil, "Class to document (repeatable, default: discovered from markers)")
}

// load reads .classdoc.yaml from the project root and applies flag overrides.
// Flag paths are relative to the working directory, config paths to the root.
func (f *projectFlags) load() (*config.ProjectConfig, error) {
	info, err := repo.Discover(f.dir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadProjectConfig(info.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	override := &config.ProjectConfig{}
	if f.source != "" {
		if override.Source, err = filepath.Abs(f.source); err != nil {
			return nil, err
		}
	}
	for _, doc := range f.docs {
		path, err := filepath.Abs(doc)
		if err != nil {
			return nil, err
		}
		override.Documents = append(override.Documents, config.DocumentConfig{Path: path, Classes: f.classes})
	}
	cfg.Merge(override)

	if len(f.docs) == 0 && len(f.classes) > 0 {
		for i := range cfg.Documents {
			cfg.Documents[i].Classes = f.classes
		}
	}

	cfg.Resolve(info.Root)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("root", info.Root).
		Str("source", cfg.Source).
		Int("documents", len(cfg.Documents)).
		Msg("loaded project")

	return cfg, nil
}

// newUpdater builds a fresh extractor for the configured source
func newUpdater(cfg *config.ProjectConfig) (*extractor.Extractor, *updater.Updater) {
	ex := extractor.New(parser.NewFileSource(cfg.Source))
	return ex, updater.New(ex)
}
