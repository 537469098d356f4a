package commands

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/colonyops/riffle/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "riffle", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, "riffle")
}

// DefaultLogFile returns the default log file path in the state directory.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, "riffle", "riffle.log")
}
