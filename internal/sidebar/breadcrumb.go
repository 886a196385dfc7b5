package sidebar

import (
	"fmt"
	"strings"
)

// relativeDir expresses a document directory relative to the generation
// target: "." when the two are equal, the remaining slash path otherwise.
// Both arguments are slash paths relative to the content root. A directory
// outside the target cannot occur after filtering and is reported as a
// StructuralError.
func relativeDir(dir, targetDir string) (string, error) {
	if dir == targetDir {
		return ".", nil
	}
	if targetDir == "." {
		return dir, nil
	}

	prefix := targetDir + "/"
	if !strings.HasPrefix(dir, prefix) {
		return "", &StructuralError{
			Msg: fmt.Sprintf("directory %q is outside generation target %q", dir, targetDir),
		}
	}
	return strings.TrimPrefix(dir, prefix), nil
}

// breadcrumbOf splits a target-relative directory into its ordered path
// segments. The target directory itself (".") has an empty breadcrumb.
func breadcrumbOf(relDir string) []string {
	if relDir == "." || relDir == "" {
		return nil
	}
	return strings.Split(relDir, "/")
}

// splitBreadcrumb separates a breadcrumb into its parent chain and final
// segment. Callers must guard against empty breadcrumbs.
func splitBreadcrumb(breadcrumb []string) ([]string, string) {
	return breadcrumb[:len(breadcrumb)-1], breadcrumb[len(breadcrumb)-1]
}

// breadcrumbKey joins breadcrumb segments into the cache key that identifies
// a category node within a single generation call.
func breadcrumbKey(breadcrumb []string) string {
	return strings.Join(breadcrumb, "/")
}
