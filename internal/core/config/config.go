// Package config handles configuration loading and validation for riffle.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Capture  CaptureConfig  `yaml:"capture"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	TUI      TUIConfig      `yaml:"tui"`
	Database DatabaseConfig `yaml:"database"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// CaptureConfig describes the external capture pipeline boundary: the
// command that produces a new page image, the inbox directory it deposits
// into, and the filename patterns that count as captured pages.
type CaptureConfig struct {
	// Command is a shell line run to capture one page. It is expected to
	// write the result into the inbox directory. Empty disables the
	// in-TUI capture action; pages can still be imported with riffle add.
	Command string `yaml:"command"`

	// Inbox is the directory watched for new captures. Defaults to
	// <data-dir>/inbox.
	Inbox string `yaml:"inbox"`

	// Patterns are doublestar globs (relative to the inbox) that identify
	// page images.
	Patterns []string `yaml:"patterns"`

	// Settle is how long a new file must be quiet before it is treated as
	// fully written. Scanners stream large images; reacting to the first
	// write event reads a torn file.
	Settle time.Duration `yaml:"settle"`
}

// ViewerConfig describes the external image viewer/editor handoff.
type ViewerConfig struct {
	// Command is a shell line with the image path appended, e.g. "xdg-open".
	Command string `yaml:"command"`
}

// TUIConfig holds interface settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`

	// Columns fixes the grid column count; 0 sizes from terminal width.
	Columns int `yaml:"columns"`
}

// DatabaseConfig holds SQLite connection pool settings.
type DatabaseConfig struct {
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	BusyTimeout  time.Duration `yaml:"busy_timeout"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Capture: CaptureConfig{
			Patterns: []string{"**/*.png", "**/*.jpg", "**/*.jpeg"},
			Settle:   500 * time.Millisecond,
		},
		Viewer: ViewerConfig{
			Command: "xdg-open",
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
		},
		Database: DatabaseConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			BusyTimeout:  5 * time.Second,
		},
	}
}

// Load reads the config file (when present), layers it over the defaults,
// and validates the result. dataDir always comes from the caller.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values that a partial config file left unset.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Capture.Inbox == "" && c.DataDir != "" {
		c.Capture.Inbox = filepath.Join(c.DataDir, "inbox")
	}
	if len(c.Capture.Patterns) == 0 {
		c.Capture.Patterns = def.Capture.Patterns
	}
	if c.Capture.Settle <= 0 {
		c.Capture.Settle = def.Capture.Settle
	}
	if c.Viewer.Command == "" {
		c.Viewer.Command = def.Viewer.Command
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = def.TUI.Theme
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = def.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns <= 0 {
		c.Database.MaxIdleConns = def.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout <= 0 {
		c.Database.BusyTimeout = def.Database.BusyTimeout
	}
}
