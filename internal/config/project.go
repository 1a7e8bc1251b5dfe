package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfigFile is the name of the project file written by `classdoc init`
const ProjectConfigFile = ".classdoc.yaml"

// ProjectConfig represents a .classdoc.yaml file in a repository
type ProjectConfig struct {
	Version string `yaml:"version"`

	// Declaration file the classes are read from
	Source string `yaml:"source"`

	// Documents whose class sections are kept up to date
	Documents []DocumentConfig `yaml:"documents"`
}

// DocumentConfig names a target document and the classes rendered into it
type DocumentConfig struct {
	Path string `yaml:"path"`

	// Class names to update; discovered from the document markers when empty
	Classes []string `yaml:"classes,omitempty"`
}

// DefaultProjectConfig returns sensible defaults
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Version: "1.0",
		Source:  "index.d.ts",
		Documents: []DocumentConfig{
			{Path: "README.md"},
		},
	}
}

// LoadProjectConfig loads a .classdoc.yaml from the given directory
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ProjectConfigFile)

	// Check if config exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Also try .classdoc.yml
		configPath = filepath.Join(dir, ".classdoc.yml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return DefaultProjectConfig(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := DefaultProjectConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", filepath.Base(configPath), err)
	}

	return cfg, nil
}

// SaveProjectConfig saves the config to .classdoc.yaml
func SaveProjectConfig(dir string, cfg *ProjectConfig) error {
	configPath := filepath.Join(dir, ProjectConfigFile)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Merge applies overrides from another config (e.g., CLI flags)
func (c *ProjectConfig) Merge(other *ProjectConfig) {
	if other == nil {
		return
	}

	if other.Source != "" {
		c.Source = other.Source
	}

	if len(other.Documents) > 0 {
		c.Documents = other.Documents
	}
}

// Validate checks that a source and at least one document are configured
func (c *ProjectConfig) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("no source declaration file configured")
	}
	if len(c.Documents) == 0 {
		return fmt.Errorf("no documents configured")
	}
	for i, doc := range c.Documents {
		if doc.Path == "" {
			return fmt.Errorf("document %d has no path", i)
		}
	}
	return nil
}

// Resolve makes relative source and document paths absolute against root
func (c *ProjectConfig) Resolve(root string) {
	c.Source = resolvePath(root, c.Source)
	for i := range c.Documents {
		c.Documents[i].Path = resolvePath(root, c.Documents[i].Path)
	}
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
