// Package fileutil provides centralized file system scanning and pattern
// matching utilities.
//
// This package is the single source of truth for general-purpose directory
// traversal in docsmith, offering flexible filtering, pattern matching, and
// error-tolerant scanning. The Markdown content pipeline has its own
// scanner with document-specific skip rules; everything else (asset
// discovery, prefix lint checks, fixture lookups) goes through this package.
//
// # Main Components
//
// ScanOptions - Configuration struct for directory scanning:
//   - Pattern: Regex pattern to match filenames (without extension)
//   - Extensions: List of file extensions to include (case-insensitive, e.g., ".png", ".css")
//   - Recursive: Enable/disable subdirectory traversal
//   - ExcludeDirs: Directory names to skip (e.g., "node_modules")
//   - MaxDepth: Limit recursion depth (0 = unlimited, 1 = current dir only)
//
// ScanResult - Results of directory scan:
//   - Files: Absolute paths of all matched files (sorted alphabetically)
//   - Errors: Non-fatal errors encountered during scan
//
// # Usage Examples
//
// Asset discovery (images and stylesheets shipped next to documents):
//
//	result, err := fileutil.ScanDirectory(contentDir, fileutil.ScanOptions{
//	    Extensions: []string{".png", ".jpg", ".svg", ".css"},
//	    Recursive:  true,
//	})
//
// Prefix lint (documents in one directory, no recursion):
//
//	result, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{
//	    Extensions: []string{".md", ".markdown", ".mdx"},
//	    Recursive:  false,
//	})
//
// Pattern matching (files starting with digits):
//
//	result, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{
//	    Pattern:    `^\d+`,
//	    Extensions: []string{".md"},
//	    Recursive:  true,
//	})
//
// Error handling (check for non-fatal errors):
//
//	result, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{Recursive: true})
//	if err != nil {
//	    return err
//	}
//	for _, scanErr := range result.Errors {
//	    log.LogWarn(scanErr.Error())
//	}
//
// # Behavior Notes
//
// Sorted Output:
// All file paths are sorted alphabetically before being returned, ensuring
// deterministic output across runs and platforms.
//
// Error Tolerance:
// The scanner collects non-fatal errors (e.g., permission denied on a
// subdirectory) and continues. Only fatal errors (root directory doesn't
// exist, invalid regex pattern) cause immediate failure.
//
// Auto-Exclusion of Hidden Directories:
// Directories starting with "." (e.g., .git, .docsmith) are always skipped
// during recursive scans.
//
// Case-Insensitive Extension Matching:
// Extensions are normalized to lowercase for matching, so ".PNG" and ".png"
// both match logo.PNG.
package fileutil
