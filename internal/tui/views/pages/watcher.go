package pages

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/colonyops/riffle/internal/core/capture"
)

// InboxWatcher watches the capture inbox for finished scans. The capture
// pipeline writes files while they are still growing, so events are held
// until no further writes arrive within the settle window.
type InboxWatcher struct {
	watcher *fsnotify.Watcher
	runner  *capture.Runner
	settle  time.Duration
}

// NewInboxWatcher starts watching the runner's inbox directory and all
// subdirectories.
func NewInboxWatcher(runner *capture.Runner, settle time.Duration) (*InboxWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &InboxWatcher{
		watcher: watcher,
		runner:  runner,
		settle:  settle,
	}

	if err := w.addRecursive(runner.Inbox()); err != nil {
		watcher.Close()
		return nil, err
	}

	return w, nil
}

// Start returns a command that blocks until the next batch of matching
// files has settled, then reports their paths.
func (w *InboxWatcher) Start() tea.Cmd {
	return func() tea.Msg {
		pending := map[string]struct{}{}

		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						w.addRecursive(event.Name)
						continue
					}
				}

				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				if w.shouldIgnore(event.Name) || !w.runner.Matches(event.Name) {
					continue
				}
				pending[event.Name] = struct{}{}

				// Settle: keep absorbing writes until the inbox goes quiet.
				for settled := false; !settled; {
					select {
					case ev, ok := <-w.watcher.Events:
						if !ok {
							settled = true
						} else if w.runner.Matches(ev.Name) && !w.shouldIgnore(ev.Name) {
							pending[ev.Name] = struct{}{}
						}
					case <-time.After(w.settle):
						settled = true
					}
				}

				paths := make([]string, 0, len(pending))
				for p := range pending {
					paths = append(paths, p)
				}
				sort.Strings(paths)
				return InboxChangedMsg{Paths: paths}

			case _, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

func (w *InboxWatcher) addRecursive(path string) error {
	return filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != path {
				return filepath.SkipDir
			}
			return w.watcher.Add(p)
		}
		return nil
	})
}

func (w *InboxWatcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	for _, ext := range []string{".tmp", ".part", ".lock", ".swp", "~"} {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}
	return false
}

// Close stops the watcher.
func (w *InboxWatcher) Close() error {
	return w.watcher.Close()
}
