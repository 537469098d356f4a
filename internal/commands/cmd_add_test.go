package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandArg_PlainPathPassesThrough(t *testing.T) {
	// No glob metacharacters: the path is kept even if it does not exist,
	// so the import error names the file.
	matches, err := expandArg("/scans/missing.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"/scans/missing.png"}, matches)
}

func TestExpandArg_GlobExpands(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	for _, name := range []string{"a.png", "b.png", "sub/c.png", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	matches, err := expandArg(filepath.Join(dir, "**", "*.png"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "sub", "c.png"),
	}, matches)
}

func TestContainsMeta(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"a.png", false},
		{"*.png", true},
		{"page?.png", true},
		{"[ab].png", true},
		{"{a,b}.png", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, containsMeta(tt.pattern), tt.pattern)
	}
}
