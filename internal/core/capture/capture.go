// Package capture is the boundary to the external scan pipeline: it runs
// the configured capture command and recognizes deposited page images.
package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/colonyops/riffle/internal/core/config"
	"github.com/colonyops/riffle/pkg/executil"
)

// Runner invokes the capture command and matches inbox files against the
// configured page patterns.
type Runner struct {
	cfg  config.CaptureConfig
	exec executil.Executor
	log  zerolog.Logger
}

// NewRunner creates a capture runner.
func NewRunner(cfg config.CaptureConfig, exec executil.Executor, log zerolog.Logger) *Runner {
	return &Runner{
		cfg:  cfg,
		exec: exec,
		log:  log.With().Str("component", "capture").Logger(),
	}
}

// Enabled reports whether a capture command is configured.
func (r *Runner) Enabled() bool {
	return r.cfg.Command != ""
}

// Inbox returns the watched inbox directory.
func (r *Runner) Inbox() string {
	return r.cfg.Inbox
}

// Capture runs the capture command in the inbox directory. The command is
// expected to deposit a page image there; the inbox watcher picks it up.
func (r *Runner) Capture(ctx context.Context) error {
	if !r.Enabled() {
		return fmt.Errorf("no capture command configured")
	}

	if err := os.MkdirAll(r.cfg.Inbox, 0o755); err != nil {
		return fmt.Errorf("create inbox: %w", err)
	}

	r.log.Debug().Str("command", r.cfg.Command).Msg("running capture command")
	if err := r.exec.RunSh(ctx, r.cfg.Inbox, r.cfg.Command); err != nil {
		return fmt.Errorf("capture command: %w", err)
	}
	return nil
}

// Matches reports whether the given absolute path inside the inbox looks
// like a captured page per the configured patterns.
func (r *Runner) Matches(path string) bool {
	rel, err := filepath.Rel(r.cfg.Inbox, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range r.cfg.Patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// ListInbox returns existing inbox files matching the patterns, for the
// initial import when a batch opens with captures already on disk.
func (r *Runner) ListInbox() ([]string, error) {
	if _, err := os.Stat(r.cfg.Inbox); os.IsNotExist(err) {
		return nil, nil
	}

	var paths []string
	fsys := os.DirFS(r.cfg.Inbox)
	for _, pattern := range r.cfg.Patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob inbox pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			paths = append(paths, filepath.Join(r.cfg.Inbox, filepath.FromSlash(m)))
		}
	}
	return paths, nil
}
