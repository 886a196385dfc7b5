package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// markdownExtensions lists the file extensions recognized as documents,
// lowercase, for fast lookup.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdx":      true,
}

// IsMarkdown reports whether path names a Markdown document by extension.
func IsMarkdown(path string) bool {
	return markdownExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanContentDir walks contentDir and returns the storage paths of all
// Markdown documents, slash-separated and relative to contentDir, sorted
// ascending. Directories and files whose names start with "." or "_" are
// skipped, which keeps partials and metadata files such as _category_.json
// out of the document list.
func ScanContentDir(contentDir string) ([]string, error) {
	info, err := os.Stat(contentDir)
	if err != nil {
		return nil, fmt.Errorf("failed to access content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path is not a directory: %s", contentDir)
	}

	files := make([]string, 0)

	err = filepath.WalkDir(contentDir, func(walkPath string, d os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", walkPath, err)
		}

		// Skip the root directory itself
		if walkPath == contentDir {
			return nil
		}

		name := d.Name()
		hidden := strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")

		if d.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}
		if !markdownExtensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}

		rel, err := filepath.Rel(contentDir, walkPath)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", walkPath, err)
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk content directory: %w", err)
	}

	// Sort for consistent output across platforms and runs
	sort.Strings(files)

	return files, nil
}
