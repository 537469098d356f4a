package executil

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSh_Success(t *testing.T) {
	err := RunSh(context.Background(), "", "true")
	assert.NoError(t, err)
}

func TestRunSh_FailureCarriesStderr(t *testing.T) {
	err := RunSh(context.Background(), "", "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestRunSh_StderrCapped(t *testing.T) {
	// 10KB of stderr must be truncated to the cap.
	err := RunSh(context.Background(), "", "head -c 10240 /dev/zero | tr '\\0' 'x' >&2; exit 1")
	require.Error(t, err)
	assert.LessOrEqual(t, len(err.Error()), maxStderrLen+100)
}

func TestRunSh_Dir(t *testing.T) {
	dir := t.TempDir()
	err := RunSh(context.Background(), dir, "test \"$(pwd)\" = \""+dir+"\"")
	assert.NoError(t, err)
}

func TestLimitedWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &limitedWriter{buf: &buf, max: 5}

	n, err := w.Write([]byte(strings.Repeat("a", 10)))
	require.NoError(t, err)

	// Reports full write, stores only the cap.
	assert.Equal(t, 10, n)
	assert.Equal(t, "aaaaa", buf.String())
}

func TestRealExecutor_Run(t *testing.T) {
	e := &RealExecutor{}
	out, err := e.Run(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))
}
