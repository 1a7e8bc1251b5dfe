package main

import (
	"encoding/json"
	"fmt"

	"github.com/QTest-hq/classdoc/internal/extractor"
	"github.com/QTest-hq/classdoc/internal/parser"
	"github.com/QTest-hq/classdoc/internal/render"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func inspectCmd() *cobra.Command {
	var (
		flags  projectFlags
		format string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [class...]",
		Short: "Show the extracted description of classes",
		Long: `Prints what classdoc extracted for each class, including inherited members.

Formats:
  - markdown: the section exactly as 'update' writes it
  - yaml, json: the structured description`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			ex, _ := newUpdater(cfg)
			names := args
			if all {
				if names, err = ex.ClassNames(cmd.Context()); err != nil {
					return err
				}
			}
			if len(names) == 0 {
				return fmt.Errorf("no class given; pass class names or --all")
			}

			descs := make([]*extractor.ClassDescription, 0, len(names))
			for _, name := range names {
				desc, err := ex.ClassDescription(cmd.Context(), name)
				if err != nil {
					return err
				}
				descs = append(descs, desc)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "markdown", "md":
				for _, desc := range descs {
					fmt.Fprint(out, render.Class(desc))
				}
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				for _, desc := range descs {
					if err := enc.Encode(desc); err != nil {
						return err
					}
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				for _, desc := range descs {
					if err := enc.Encode(desc); err != nil {
						return err
					}
				}
			default:
				return fmt.Errorf("unknown format %q (markdown, yaml, json)", format)
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Output format (markdown, yaml, json)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Inspect every class in the source")

	return cmd
}

func listCmd() *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the classes declared in the source file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			decls, err := parser.NewParser().ParseFile(cmd.Context(), cfg.Source)
			if err != nil {
				return fmt.Errorf("failed to parse source: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "📄 Source: %s\n", decls.Path)
			fmt.Fprintf(out, "🏛️  Classes: %d\n\n", len(decls.Classes))

			for i, class := range decls.Classes {
				fmt.Fprintf(out, "%d. %s [lines %d-%d]\n", i+1, class.Name, class.StartLine, class.EndLine)
				if class.Extends != "" {
					fmt.Fprintf(out, "   Extends: %s\n", class.Extends)
				}
				fmt.Fprintf(out, "   Members: %d properties, %d accessors, %d methods\n",
					len(class.Properties), len(class.Accessors), len(class.Methods))
			}

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
