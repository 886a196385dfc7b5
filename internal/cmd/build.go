package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/docsmith/internal/config"
	"github.com/harrison/docsmith/internal/logger"
	"github.com/harrison/docsmith/internal/site"
)

// NewBuildCommand creates the build command
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the documentation site",
		Long: `Build renders every Markdown document under the content directory to HTML,
generates the configured sidebar slices into sidebars.json, copies
non-Markdown assets through, and records the build in the document index.

Examples:
  docsmith build
  docsmith build --content-dir docs --output-dir public
  docsmith build --verbose`,
		Args: cobra.NoArgs,
		RunE: runBuild,
	}

	cmd.Flags().String("content-dir", "", "Directory scanned for Markdown documents (overrides config)")
	cmd.Flags().String("output-dir", "", "Directory rendered pages are written to (overrides config)")
	cmd.Flags().String("log-dir", "", "Directory build logs are written to (overrides config)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, root, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	consoleLog := logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)

	fileLog, err := logger.NewFileLogger(config.ResolvePath(root, cfg.LogDir), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer func() {
		if err := fileLog.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to close log file: %v\n", err)
		}
	}()

	log := &multiLogger{loggers: []buildLogger{consoleLog, fileLog}}

	builder := site.NewBuilder(root, cfg, log, cmd.OutOrStdout())
	result, err := builder.Build(cmd.Context())
	if err != nil {
		log.LogError(fmt.Sprintf("build failed: %v", err))
		return err
	}

	log.LogBuildSummary(logger.BuildStats{
		Documents: result.Documents,
		Pages:     result.Pages,
		Sidebars:  result.Sidebars,
		Skipped:   result.Drafts,
		Duration:  result.Duration,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "\nSite written to %s\n", result.OutputDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Full log: %s\n", fileLog.Path())

	return nil
}

// buildLogger is the logging surface shared by the console and file loggers.
type buildLogger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogBuildSummary(stats logger.BuildStats)
}

// multiLogger fans every log call out to all underlying loggers.
type multiLogger struct {
	loggers []buildLogger
}

func (m *multiLogger) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

func (m *multiLogger) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

func (m *multiLogger) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

func (m *multiLogger) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

func (m *multiLogger) LogBuildSummary(stats logger.BuildStats) {
	for _, l := range m.loggers {
		l.LogBuildSummary(stats)
	}
}
