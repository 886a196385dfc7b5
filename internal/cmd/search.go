package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/docsmith/internal/config"
	"github.com/harrison/docsmith/internal/index"
)

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the document index",
		Long: `Search queries the document index maintained by docsmith build. Matching
is a case-insensitive substring match over document IDs, titles, and
descriptions. The index reflects the most recent build, so run a build
first.

Examples:
  docsmith search installation
  docsmith search "config file"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, root, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if !cfg.Index.Enabled {
		return fmt.Errorf("the document index is disabled in docsmith.yaml")
	}

	dbPath := config.ResolvePath(root, cfg.Index.DBPath)
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no index found at %s, run 'docsmith build' first", dbPath)
	}

	store, err := index.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()

	build, err := store.LatestBuild(ctx)
	if err != nil {
		return fmt.Errorf("failed to read build history: %w", err)
	}
	if build == nil {
		return fmt.Errorf("the index is empty, run 'docsmith build' first")
	}

	docs, err := store.Search(ctx, args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()

	if len(docs) == 0 {
		fmt.Fprintf(out, "No documents match %q.\n", args[0])
	} else {
		fmt.Fprintf(out, "%d document(s) match %q:\n\n", len(docs), args[0])
		for _, doc := range docs {
			fmt.Fprintf(out, "  %s (%s)\n", doc.Title, doc.ID)
			if doc.Description != "" {
				fmt.Fprintf(out, "      %s\n", doc.Description)
			}
			fmt.Fprintf(out, "      %s\n", doc.SourcePath)
		}
	}

	buildID := build.ID
	if len(buildID) > 8 {
		buildID = buildID[:8]
	}
	fmt.Fprintf(out, "\nIndex from build %s at %s (%d documents).\n",
		buildID, build.CreatedAt.Format(time.RFC3339), build.DocumentCount)

	return nil
}
