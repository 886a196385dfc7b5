package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/docsmith/internal/config"
	"github.com/harrison/docsmith/internal/content"
	"github.com/harrison/docsmith/internal/display"
	"github.com/harrison/docsmith/internal/sidebar"
	"github.com/harrison/docsmith/internal/site"
)

// NewSidebarCommand creates the sidebar command
func NewSidebarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sidebar [name]",
		Short: "Generate and print a sidebar slice",
		Long: `Sidebar generates one configured sidebar slice from the current content
tree and prints it, without writing any output files. With no argument
the first configured slice is used.

Examples:
  docsmith sidebar
  docsmith sidebar guides
  docsmith sidebar guides --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSidebar,
	}

	cmd.Flags().String("format", "tree", "Output format: tree or json")

	return cmd
}

func runSidebar(cmd *cobra.Command, args []string) error {
	cfg, root, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "tree" && format != "json" {
		return fmt.Errorf("invalid format %q, must be tree or json", format)
	}

	slice := cfg.Sidebars[0]
	if len(args) == 1 {
		found := false
		for _, s := range cfg.Sidebars {
			if s.Name == args[0] {
				slice = s
				found = true
				break
			}
		}
		if !found {
			names := make([]string, len(cfg.Sidebars))
			for i, s := range cfg.Sidebars {
				names[i] = s.Name
			}
			return fmt.Errorf("unknown sidebar %q, configured sidebars: %s", args[0], strings.Join(names, ", "))
		}
	}

	contentDir := config.ResolvePath(root, cfg.ContentDir)

	loader := content.NewLoader(contentDir, nil)
	docs, err := loader.LoadAll()
	if err != nil {
		return err
	}

	published := make([]content.Document, 0, len(docs))
	for _, doc := range docs {
		if !doc.Draft {
			published = append(published, doc)
		}
	}

	gen := sidebar.NewGenerator(contentDir, cfg.DefaultCollapsed, nil)
	nodes, err := gen.Generate(site.SidebarInputs(published), slice.TargetDir)
	if err != nil {
		return fmt.Errorf("failed to generate sidebar %q: %w", slice.Name, err)
	}

	if format == "json" {
		data, err := json.MarshalIndent(nodes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal sidebar: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	display.PrintSidebar(cmd.OutOrStdout(), slice.Name, nodes)
	return nil
}
