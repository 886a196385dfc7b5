package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the site configuration file docsmith looks for when
// resolving the site root.
const ConfigFileName = "docsmith.yaml"

// FindSiteRoot returns the docsmith site root directory
// Priority order:
//  1. DOCSMITH_ROOT environment variable (if set)
//  2. Nearest ancestor of the working directory containing docsmith.yaml
//  3. Current working directory (fallback)
func FindSiteRoot() (string, error) {
	// Try env var first
	if root := os.Getenv("DOCSMITH_ROOT"); root != "" {
		return root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	if root, err := findSiteRootFrom(cwd); err == nil {
		return root, nil
	}

	// No config file anywhere above us; treat the working directory as the
	// site root so `docsmith build` works on a bare docs folder
	return cwd, nil
}

// findSiteRootFrom walks up from dir looking for docsmith.yaml.
func findSiteRootFrom(dir string) (string, error) {
	current := dir
	for {
		configPath := filepath.Join(current, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root
			break
		}
		current = parent
	}

	return "", fmt.Errorf("site root not found (no %s in %s or any parent)", ConfigFileName, dir)
}

// StateDir returns the .docsmith state directory under the site root,
// creating it if it doesn't exist. Build logs, the lock file, and the
// search index all live here by default.
func StateDir(root string) (string, error) {
	stateDir := filepath.Join(root, ".docsmith")

	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return "", fmt.Errorf("create state directory: %w", err)
	}

	return stateDir, nil
}

// ResolvePath resolves a config path against the site root. Absolute paths
// pass through unchanged.
func ResolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
