package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(dataDir, "missing.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
	assert.Equal(t, filepath.Join(dataDir, "inbox"), cfg.Capture.Inbox)
	assert.Equal(t, 500*time.Millisecond, cfg.Capture.Settle)
	assert.NotEmpty(t, cfg.Capture.Patterns)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dataDir := t.TempDir()
	path := writeConfig(t, `
tui:
  theme: gruvbox
  columns: 4
capture:
  command: "scanimage --format png > page.png"
  patterns:
    - "*.png"
`)

	cfg, err := Load(path, dataDir)
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, 4, cfg.TUI.Columns)
	assert.Equal(t, []string{"*.png"}, cfg.Capture.Patterns)
	// Unset fields still take defaults.
	assert.Equal(t, "xdg-open", cfg.Viewer.Command)
	assert.Equal(t, dataDir, cfg.DataDir)
}

func TestLoad_InvalidTheme(t *testing.T) {
	path := writeConfig(t, "tui:\n  theme: not-a-theme\n")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-theme")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "tui: [broken\n")

	_, err := Load(path, t.TempDir())
	assert.Error(t, err)
}

func TestValidate_BadPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.applyDefaults()
	cfg.Capture.Patterns = []string{"[unclosed"}

	assert.Error(t, cfg.Validate())
}

func TestValidate_NegativeColumns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.applyDefaults()
	cfg.TUI.Columns = -1

	assert.Error(t, cfg.Validate())
}

func TestValidateDeep_InboxIsFile(t *testing.T) {
	dataDir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = dataDir
	cfg.applyDefaults()

	// Point the inbox at a regular file.
	file := filepath.Join(dataDir, "inbox")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.Error(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_MissingInboxOK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.applyDefaults()

	assert.NoError(t, cfg.ValidateDeep(""))
}
