package site

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/docsmith/internal/content"
	"github.com/harrison/docsmith/internal/filelock"
	"github.com/harrison/docsmith/internal/fileutil"
)

// copyAssets copies every non-Markdown file under contentDir into outputDir,
// preserving relative paths. Files and directories whose names start with
// "_" or "." never ship: those are partials, category metadata, and state.
// Returns the number of files copied.
func (b *Builder) copyAssets(contentDir, outputDir string) (int, error) {
	result, err := fileutil.ScanDirectory(contentDir, fileutil.ScanOptions{
		Recursive:       true,
		ExcludePrefixes: []string{"_", "."},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to scan assets: %w", err)
	}
	for _, scanErr := range result.Errors {
		b.log.LogWarn(fmt.Sprintf("asset scan: %v", scanErr))
	}

	copied := 0
	for _, file := range result.Files {
		if content.IsMarkdown(file) {
			continue
		}

		rel, err := filepath.Rel(contentDir, file)
		if err != nil {
			return copied, fmt.Errorf("failed to resolve asset path %s: %w", file, err)
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return copied, fmt.Errorf("failed to read asset %s: %w", rel, err)
		}

		if err := filelock.AtomicWrite(filepath.Join(outputDir, rel), data); err != nil {
			return copied, fmt.Errorf("failed to copy asset %s: %w", rel, err)
		}
		copied++
	}

	if copied > 0 {
		b.log.LogDebug(fmt.Sprintf("copied %d assets", copied))
	}
	return copied, nil
}
