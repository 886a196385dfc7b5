package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SidebarConfig describes one sidebar to generate. TargetDir is relative to
// the content directory; "." selects the whole tree.
type SidebarConfig struct {
	// Name becomes the key in the generated sidebars.json
	Name string `yaml:"name"`

	// TargetDir scopes the sidebar to a subtree of the content directory
	TargetDir string `yaml:"target_dir"`
}

// IndexConfig represents search index configuration
type IndexConfig struct {
	// Enabled turns the SQLite document index on or off
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the index database, relative to the site root
	DBPath string `yaml:"db_path"`

	// KeepBuilds is the number of build records to retain in history
	KeepBuilds int `yaml:"keep_builds"`
}

// Config represents docsmith configuration options
type Config struct {
	// ContentDir is the directory scanned for Markdown documents
	ContentDir string `yaml:"content_dir"`

	// OutputDir is where rendered pages and sidebars.json are written
	OutputDir string `yaml:"output_dir"`

	// DefaultCollapsed controls whether generated categories start collapsed
	DefaultCollapsed bool `yaml:"default_collapsed"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where build logs will be written
	LogDir string `yaml:"log_dir"`

	// LockTimeout is how long a build waits for the output lock before
	// giving up (0 = fail immediately when another build is running)
	LockTimeout time.Duration `yaml:"lock_timeout"`

	// Index contains search index configuration
	Index IndexConfig `yaml:"index"`

	// Sidebars lists the sidebars to generate
	Sidebars []SidebarConfig `yaml:"sidebars"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		ContentDir:       "docs",
		OutputDir:        "build",
		DefaultCollapsed: true,
		LogLevel:         "info",
		LogDir:           ".docsmith/logs",
		LockTimeout:      30 * time.Second,
		Index: IndexConfig{
			Enabled:    true,
			DBPath:     ".docsmith/index.db",
			KeepBuilds: 20,
		},
		Sidebars: []SidebarConfig{
			{Name: "docs", TargetDir: "."},
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	// Use a temporary struct so durations parse from strings and the
	// default-true bool survives an absent key
	type yamlConfig struct {
		ContentDir       string          `yaml:"content_dir"`
		OutputDir        string          `yaml:"output_dir"`
		DefaultCollapsed *bool           `yaml:"default_collapsed"`
		LogLevel         string          `yaml:"log_level"`
		LogDir           string          `yaml:"log_dir"`
		LockTimeout      string          `yaml:"lock_timeout"`
		Index            IndexConfig     `yaml:"index"`
		Sidebars         []SidebarConfig `yaml:"sidebars"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if yamlCfg.ContentDir != "" {
		cfg.ContentDir = yamlCfg.ContentDir
	}
	if yamlCfg.OutputDir != "" {
		cfg.OutputDir = yamlCfg.OutputDir
	}
	if yamlCfg.DefaultCollapsed != nil {
		cfg.DefaultCollapsed = *yamlCfg.DefaultCollapsed
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.LockTimeout != "" {
		lockTimeout, err := time.ParseDuration(yamlCfg.LockTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid lock_timeout format %q: %w", yamlCfg.LockTimeout, err)
		}
		cfg.LockTimeout = lockTimeout
	}

	// A sidebars list in the file replaces the default wholesale
	if yamlCfg.Sidebars != nil {
		cfg.Sidebars = yamlCfg.Sidebars
	}

	// Merge index config - need to check if the section was provided at all
	// We unmarshal into a raw map to detect which keys exist
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if indexSection, exists := rawMap["index"]; exists && indexSection != nil {
			index := yamlCfg.Index

			indexMap, _ := indexSection.(map[string]interface{})

			if _, exists := indexMap["enabled"]; exists {
				cfg.Index.Enabled = index.Enabled
			}
			if _, exists := indexMap["db_path"]; exists {
				// Explicitly set db_path, even if empty string
				cfg.Index.DBPath = index.DBPath
			}
			if _, exists := indexMap["keep_builds"]; exists {
				cfg.Index.KeepBuilds = index.KeepBuilds
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from docsmith.yaml in the specified
// directory. If the directory or file doesn't exist, returns default
// configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, "docsmith.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(contentDir *string, outputDir *string, logLevel *string, logDir *string) {
	if contentDir != nil {
		c.ContentDir = *contentDir
	}
	if outputDir != nil {
		c.OutputDir = *outputDir
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	// Validate log_level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	// LockTimeout can be 0 (fail immediately) or positive, negative is invalid
	if c.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout must be >= 0, got %v", c.LockTimeout)
	}

	// Validate index configuration
	if c.Index.Enabled {
		if c.Index.DBPath == "" {
			return fmt.Errorf("index.db_path cannot be empty when the index is enabled")
		}
		if c.Index.KeepBuilds < 0 {
			return fmt.Errorf("index.keep_builds must be >= 0, got %d", c.Index.KeepBuilds)
		}
	}

	// Validate sidebars
	if len(c.Sidebars) == 0 {
		return fmt.Errorf("at least one sidebar must be configured")
	}
	seen := make(map[string]bool)
	for i, sb := range c.Sidebars {
		if sb.Name == "" {
			return fmt.Errorf("sidebars[%d].name cannot be empty", i)
		}
		if seen[sb.Name] {
			return fmt.Errorf("duplicate sidebar name %q", sb.Name)
		}
		seen[sb.Name] = true
		if filepath.IsAbs(sb.TargetDir) {
			return fmt.Errorf("sidebars[%d].target_dir must be relative to content_dir, got %q", i, sb.TargetDir)
		}
	}

	return nil
}
