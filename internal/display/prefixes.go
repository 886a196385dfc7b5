package display

import (
	"path/filepath"
	"strings"

	"github.com/harrison/docsmith/internal/fileutil"
	"github.com/harrison/docsmith/internal/sidebar"
)

// markdownExtensions are the document extensions considered by prefix checks.
var markdownExtensions = []string{".md", ".markdown", ".mdx"}

// HasNumberPrefix reports whether a document filename carries a number prefix
// like "01-intro.md". The extension is stripped before checking.
func HasNumberPrefix(filename string) bool {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	_, position := sidebar.ExtractNumberPrefix(stem)
	return position != nil
}

// FindUnprefixedSiblings scans a single directory for Markdown documents and,
// when the directory mixes prefixed and unprefixed names, returns the
// basenames of the unprefixed ones. Returns nil when the convention is
// consistent either way.
// Only scans the immediate directory (not recursive).
func FindUnprefixedSiblings(dirPath string) ([]string, error) {
	result, err := fileutil.ScanDirectory(dirPath, fileutil.ScanOptions{
		Extensions: markdownExtensions,
		Recursive:  false,
	})
	if err != nil {
		return nil, err
	}

	var prefixed, unprefixed []string
	for _, absPath := range result.Files {
		basename := filepath.Base(absPath)
		// Metadata and partial files never participate in ordering
		if strings.HasPrefix(basename, "_") || strings.HasPrefix(basename, ".") {
			continue
		}
		if HasNumberPrefix(basename) {
			prefixed = append(prefixed, basename)
		} else {
			unprefixed = append(unprefixed, basename)
		}
	}

	if len(prefixed) == 0 || len(unprefixed) == 0 {
		return nil, nil
	}

	return unprefixed, nil
}
