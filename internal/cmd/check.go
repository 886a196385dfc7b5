package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/docsmith/internal/config"
	"github.com/harrison/docsmith/internal/content"
	"github.com/harrison/docsmith/internal/display"
	"github.com/harrison/docsmith/internal/sidebar"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the site configuration and content",
		Long: `Check validates the site without building it:
  - Configuration values are well formed
  - Every document parses and front matter is valid
  - Document IDs are unique
  - Category metadata files parse
  - Directories mixing number-prefixed and unprefixed names are reported

Exit code: 0 if the site is sound, 1 if problems are found`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runCheck(cmd *cobra.Command, output io.Writer) error {
	cfg, root, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	applyFlags(cmd, cfg)

	var problems []string

	if err := cfg.Validate(); err != nil {
		problems = append(problems, fmt.Sprintf("configuration: %v", err))
		fmt.Fprintf(output, "✗ Configuration invalid\n")
	} else {
		fmt.Fprintf(output, "✓ Configuration valid\n")
	}

	contentDir := config.ResolvePath(root, cfg.ContentDir)

	var docs []content.Document
	loader := content.NewLoader(contentDir, nil)
	docs, err = loader.LoadAll()
	if err != nil {
		problems = append(problems, fmt.Sprintf("content: %v", err))
		fmt.Fprintf(output, "✗ Failed to load documents\n")
	} else {
		drafts := 0
		for _, doc := range docs {
			if doc.Draft {
				drafts++
			}
		}
		fmt.Fprintf(output, "✓ Loaded %d documents (%d drafts)\n", len(docs), drafts)
	}

	checked, metaProblems := probeCategoryMetadata(contentDir)
	if len(metaProblems) > 0 {
		problems = append(problems, metaProblems...)
		fmt.Fprintf(output, "✗ Category metadata has errors\n")
	} else {
		fmt.Fprintf(output, "✓ Category metadata valid (%d directories)\n", checked)
	}

	warnMixedPrefixes(output, contentDir, docs)

	if len(problems) == 0 {
		fmt.Fprintf(output, "\n\x1b[32m✓\x1b[0m Site is sound\n")
		return nil
	}

	fmt.Fprintf(output, "\n")
	for _, p := range problems {
		fmt.Fprintf(output, "  ✗ %s\n", p)
	}
	fmt.Fprintf(output, "\nFound %d problem(s)!\n", len(problems))

	return fmt.Errorf("check failed with %d problem(s)", len(problems))
}

// probeCategoryMetadata loads the category metadata of every visible
// directory below contentDir. It returns the number of directories probed
// and one problem per unreadable metadata file.
func probeCategoryMetadata(contentDir string) (int, []string) {
	var checked int
	var problems []string

	_ = filepath.WalkDir(contentDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != contentDir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			return filepath.SkipDir
		}
		checked++
		if _, err := sidebar.LoadCategoryMetadata(path); err != nil {
			problems = append(problems, err.Error())
		}
		return nil
	})

	return checked, problems
}

// warnMixedPrefixes prints a warning block for each directory that holds
// both number-prefixed and unprefixed documents. Mixed prefixes are legal
// but usually a mistake, so they never fail the check.
func warnMixedPrefixes(output io.Writer, contentDir string, docs []content.Document) {
	dirs := make(map[string]bool)
	for _, doc := range docs {
		dirs[doc.Dir] = true
	}

	sorted := make([]string, 0, len(dirs))
	for dir := range dirs {
		sorted = append(sorted, dir)
	}
	sort.Strings(sorted)

	for _, dir := range sorted {
		abs := filepath.Join(contentDir, filepath.FromSlash(dir))
		files, err := display.FindUnprefixedSiblings(abs)
		if err != nil || len(files) == 0 {
			continue
		}
		label := dir
		if label == "." {
			label = filepath.Base(contentDir)
		}
		display.WarnUnprefixedSiblings(label, files).Display(output)
	}
}
