package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/riffle/internal/riffle"
	"github.com/colonyops/riffle/internal/tui/views/pages"
)

type TuiCmd struct {
	flags *Flags
	app   *riffle.App

	// flags
	batchID string
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *riffle.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "batch",
			Aliases:     []string{"b"},
			Usage:       "batch ID to review (defaults to the latest open batch)",
			Destination: &cmd.batchID,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	svc := cmd.app.Batches

	if cmd.batchID != "" {
		if err := svc.Open(ctx, cmd.batchID); err != nil {
			return fmt.Errorf("open batch %s: %w", cmd.batchID, err)
		}
	} else {
		if err := svc.OpenLatest(ctx); err != nil {
			return fmt.Errorf("open latest batch: %w", err)
		}
	}

	// The watcher is best effort; capture still works through riffle add
	// when the inbox cannot be watched.
	var watcher *pages.InboxWatcher
	if cmd.app.Capture.Enabled() {
		w, err := pages.NewInboxWatcher(cmd.app.Capture, cmd.app.Config.Capture.Settle)
		if err != nil {
			log.Warn().Err(err).Str("inbox", cmd.app.Capture.Inbox()).Msg("inbox watch unavailable")
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	view := pages.New(svc, cmd.app.Capture, watcher, cmd.app.Exec, *cmd.app.Config)
	p := tea.NewProgram(model{view: view}, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// model adapts the pages view to the tea.Model interface.
type model struct {
	view pages.View
}

func (m model) Init() tea.Cmd {
	return m.view.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	view, cmd := m.view.Update(msg)
	m.view = view
	return m, cmd
}

func (m model) View() string {
	return m.view.View()
}
