// Package cmd implements the docsmith command line interface.
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/docsmith/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// NewRootCommand creates the root docsmith command with all subcommands
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docsmith",
		Short: "Static documentation site builder",
		Long: `Docsmith builds a static documentation site from a tree of Markdown files.

It derives sidebar navigation from the directory layout, front matter,
and category metadata files, renders every document to HTML, and keeps
a searchable index of the most recent build.`,
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a docsmith.yaml config file (default: discovered from the working directory)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(NewBuildCommand())
	rootCmd.AddCommand(NewSidebarCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewSearchCommand())

	return rootCmd
}

// resolveConfig loads the configuration and locates the site root. With
// --config the file's directory is the root; otherwise the root is found by
// walking up from the working directory looking for docsmith.yaml.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	configPath, _ := cmd.Flags().GetString("config")

	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		root, err := filepath.Abs(filepath.Dir(configPath))
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve site root: %w", err)
		}
		return cfg, root, nil
	}

	root, err := config.FindSiteRoot()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadConfigFromDir(root)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, root, nil
}

// applyFlags merges command line overrides into cfg. Only flags the user
// actually set are applied, so config file values survive unset flags.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	var contentDir, outputDir, logLevel, logDir *string

	if cmd.Flags().Changed("content-dir") {
		v, _ := cmd.Flags().GetString("content-dir")
		contentDir = &v
	}
	if cmd.Flags().Changed("output-dir") {
		v, _ := cmd.Flags().GetString("output-dir")
		outputDir = &v
	}
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevel = &v
	}
	if cmd.Flags().Changed("log-dir") {
		v, _ := cmd.Flags().GetString("log-dir")
		logDir = &v
	}

	cfg.MergeWithFlags(contentDir, outputDir, logLevel, logDir)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}
}
