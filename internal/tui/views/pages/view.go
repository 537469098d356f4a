package pages

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/riffle/internal/core/batch"
	"github.com/colonyops/riffle/internal/core/capture"
	"github.com/colonyops/riffle/internal/core/config"
	"github.com/colonyops/riffle/internal/core/styles"
	"github.com/colonyops/riffle/internal/tui/components"
	"github.com/colonyops/riffle/pkg/executil"
)

const statusClearAfter = 4 * time.Second

type statusClearMsg struct{}

// View is the Bubble Tea model for the page review grid.
type View struct {
	svc     *batch.Service
	runner  *capture.Runner
	reorder *ReorderController
	watcher *InboxWatcher
	exec    executil.Executor
	cfg     config.Config

	width  int
	height int
	cursor int

	status    string
	statusErr bool

	confirm         *components.ConfirmModal
	pendingDeleteID string
	editor          *EditorModal
	help            *HelpModal

	finishing bool
}

// New creates the page review view. watcher may be nil when the inbox
// directory could not be watched; capture then relies on manual imports.
func New(svc *batch.Service, runner *capture.Runner, watcher *InboxWatcher, exec executil.Executor, cfg config.Config) View {
	return View{
		svc:     svc,
		runner:  runner,
		reorder: NewReorderController(svc.Collection()),
		watcher: watcher,
		exec:    exec,
		cfg:     cfg,
	}
}

// Init arms the inbox watcher.
func (v View) Init() tea.Cmd {
	if v.watcher == nil {
		return nil
	}
	return v.watcher.Start()
}

// Update handles messages for the review view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case InboxChangedMsg:
		return v.handleInboxChanged(msg)

	case PagesAddedMsg:
		return v.handlePagesAdded(msg)

	case CaptureDoneMsg:
		if msg.Err != nil {
			return v.setStatus(fmt.Sprintf("capture failed: %v", msg.Err), true)
		}
		return v, nil

	case FinishedMsg:
		if msg.Err != nil {
			v.finishing = false
			return v.setStatus(fmt.Sprintf("finish failed: %v", msg.Err), true)
		}
		return v, tea.Quit

	case StatusMsg:
		return v.setStatus(msg.Text, msg.IsErr)

	case statusClearMsg:
		v.status = ""
		v.statusErr = false
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	if v.editor != nil {
		return v.updateEditor(msg)
	}
	return v, nil
}

func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch {
	case v.help != nil:
		return v.updateHelp(msg)
	case v.confirm != nil:
		return v.updateConfirm(msg)
	case v.editor != nil:
		return v.updateEditor(msg)
	}

	// Once a finalize is in flight its snapshot has already left for the
	// store; further gestures are ignored rather than silently lost.
	if v.finishing {
		if s := msg.String(); s == "q" || s == "ctrl+c" {
			return v, tea.Quit
		}
		return v, nil
	}

	n := v.svc.Collection().Len()
	cols := v.columns()

	switch msg.String() {
	case "q", "ctrl+c":
		return v, tea.Quit

	case "?":
		v.help = NewHelpModal(v.width, v.height)
		return v, nil

	case "h", "left":
		return v.moveCursor(v.cursor - 1)
	case "l", "right":
		return v.moveCursor(v.cursor + 1)
	case "k", "up":
		return v.moveCursor(v.cursor - cols)
	case "j", "down":
		return v.moveCursor(v.cursor + cols)
	case "g":
		return v.moveCursor(0)
	case "G":
		return v.moveCursor(n - 1)

	case " ":
		return v.toggleDrag()

	case "esc":
		if v.reorder.State() == Dragging {
			v.reorder.Cancel()
			return v.setStatus("reorder cancelled", false)
		}
		return v, nil

	case "d":
		return v.promptDelete()

	case "e":
		return v.openEditor()

	case "o":
		return v.openViewer()

	case "a":
		return v.capturePage()

	case "f":
		return v.finish()
	}

	return v, nil
}

func (v View) moveCursor(to int) (View, tea.Cmd) {
	n := v.svc.Collection().Len()
	if n == 0 {
		v.cursor = 0
		return v, nil
	}
	if to < 0 {
		to = 0
	}
	if to > n-1 {
		to = n - 1
	}
	v.cursor = to
	if v.reorder.State() == Dragging {
		v.reorder.OnDragOver(to)
	}
	return v, nil
}

// toggleDrag grabs the page under the cursor, or drops the grabbed page at
// the cursor's slot.
func (v View) toggleDrag() (View, tea.Cmd) {
	if v.reorder.State() == Dragging {
		if v.reorder.OnDrop() {
			return v.setStatus("page moved", false)
		}
		return v, nil
	}
	if v.reorder.OnDragStart(v.cursor) {
		v.reorder.OnDragOver(v.cursor)
	}
	return v, nil
}

func (v View) promptDelete() (View, tea.Cmd) {
	p, err := v.svc.Collection().Get(v.cursor)
	if err != nil {
		return v, nil
	}
	if v.reorder.State() == Dragging {
		v.reorder.Cancel()
	}

	modal := components.NewConfirmModal(fmt.Sprintf("Delete page %d (%s)?", v.cursor+1, p.DisplayName())).
		WithPrompt("Delete? (y/n)")
	v.confirm = &modal
	v.pendingDeleteID = p.ID
	return v, nil
}

func (v View) updateConfirm(msg tea.Msg) (View, tea.Cmd) {
	modal, cmd := v.confirm.Update(msg)
	v.confirm = &modal

	switch {
	case modal.Confirmed():
		id := v.pendingDeleteID
		v.confirm = nil
		v.pendingDeleteID = ""
		if err := v.svc.Collection().DeleteByID(id); err != nil {
			log.Debug().Err(err).Str("page_id", id).Msg("delete skipped, page already gone")
			return v, cmd
		}
		v.clampCursor()
		return v.setStatus("page deleted", false)

	case modal.Cancelled():
		v.confirm = nil
		v.pendingDeleteID = ""
	}
	return v, cmd
}

func (v View) openEditor() (View, tea.Cmd) {
	p, err := v.svc.Collection().Get(v.cursor)
	if err != nil {
		return v, nil
	}
	if v.reorder.State() == Dragging {
		v.reorder.Cancel()
	}

	v.editor = NewEditorModal(p)
	return v, v.editor.Init()
}

func (v View) updateEditor(msg tea.Msg) (View, tea.Cmd) {
	cmd := v.editor.Update(msg)

	switch {
	case v.editor.Done():
		editor := v.editor
		v.editor = nil

		// Resolve by ID at apply time: the page may have moved or been
		// deleted while the form was open.
		col := v.svc.Collection()
		idx := col.IndexOf(editor.PageID())
		if idx < 0 {
			return v.setStatus("page was deleted while editing", true)
		}
		current, err := col.Get(idx)
		if err != nil {
			return v, cmd
		}
		updated, err := editor.Apply(current)
		if err != nil {
			log.Debug().Err(err).Msg("editor apply rejected")
			return v, cmd
		}
		if err := col.ReplaceByID(editor.PageID(), updated); err != nil {
			return v.setStatus("page was deleted while editing", true)
		}
		return v.setStatus("page updated", false)

	case v.editor.Aborted():
		v.editor = nil
		return v, nil
	}
	return v, cmd
}

func (v View) updateHelp(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		v.help.ScrollDown()
	case "k", "up":
		v.help.ScrollUp()
	default:
		v.help = nil
	}
	return v, nil
}

// openViewer hands the display image of the page under the cursor to the
// configured external viewer.
func (v View) openViewer() (View, tea.Cmd) {
	p, err := v.svc.Collection().Get(v.cursor)
	if err != nil {
		return v, nil
	}
	if v.cfg.Viewer.Command == "" {
		return v.setStatus("no viewer command configured", true)
	}

	line := v.cfg.Viewer.Command + " " + p.DisplayImage()
	exec := v.exec
	return v, func() tea.Msg {
		if err := exec.RunSh(context.Background(), "", line); err != nil {
			return StatusMsg{Text: fmt.Sprintf("viewer failed: %v", err), IsErr: true}
		}
		return nil
	}
}

// capturePage runs the configured capture command. The inbox watcher picks
// up the result; capture itself only reports failure.
func (v View) capturePage() (View, tea.Cmd) {
	if !v.runner.Enabled() {
		return v.setStatus("no capture command configured; use riffle add", true)
	}

	runner := v.runner
	cmd := func() tea.Msg {
		return CaptureDoneMsg{Err: runner.Capture(context.Background())}
	}
	view, statusCmd := v.setStatus("capturing...", false)
	return view, tea.Batch(cmd, statusCmd)
}

// handleInboxChanged reads the captured files off the loop. The command
// only builds page values; the appends happen when the resulting
// PagesAddedMsg comes back through Update, keeping every collection
// mutation on the loop.
func (v View) handleInboxChanged(msg InboxChangedMsg) (View, tea.Cmd) {
	svc := v.svc
	importCmd := func() tea.Msg {
		pagesMsg := PagesAddedMsg{}
		for _, path := range msg.Paths {
			p, err := svc.BuildPage(context.Background(), path)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("failed to import captured page")
				continue
			}
			pagesMsg.Pages = append(pagesMsg.Pages, p)
		}
		if len(pagesMsg.Pages) == 0 {
			return StatusMsg{Text: "capture produced no importable pages", IsErr: true}
		}
		return pagesMsg
	}

	// Re-arm the watcher for the next capture.
	if v.watcher != nil {
		return v, tea.Batch(importCmd, v.watcher.Start())
	}
	return v, importCmd
}

func (v View) handlePagesAdded(msg PagesAddedMsg) (View, tea.Cmd) {
	if v.finishing {
		log.Warn().Int("pages", len(msg.Pages)).Msg("import dropped, batch is finalizing")
		return v, nil
	}

	for _, p := range msg.Pages {
		v.svc.Append(p)
	}
	v.clampCursor()
	return v.setStatus(fmt.Sprintf("added %d page(s)", len(msg.Pages)), false)
}

// finish snapshots on the loop and leaves only the store writes to the
// command, so an in-flight finalize never races a collection mutation.
func (v View) finish() (View, tea.Cmd) {
	if v.finishing {
		return v, nil
	}
	if v.reorder.State() == Dragging {
		v.reorder.Cancel()
	}
	v.finishing = true

	svc := v.svc
	pages := v.svc.Collection().Snapshot()
	at := time.Now()
	return v, func() tea.Msg {
		return FinishedMsg{Pages: pages, Err: svc.Finalize(context.Background(), pages, at)}
	}
}

func (v *View) clampCursor() {
	n := v.svc.Collection().Len()
	if n == 0 {
		v.cursor = 0
		return
	}
	if v.cursor > n-1 {
		v.cursor = n - 1
	}
}

func (v View) setStatus(text string, isErr bool) (View, tea.Cmd) {
	v.status = text
	v.statusErr = isErr
	return v, tea.Tick(statusClearAfter, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

func (v View) columns() int {
	gc := GridContext{Width: v.width, Columns: v.cfg.TUI.Columns}
	return gc.columnsFor(v.svc.Collection().Len())
}

// View renders the grid with any open modal over it.
func (v View) View() string {
	title := styles.TitleStyle.Render(fmt.Sprintf("riffle · %s", v.svc.Batch().Name))

	gc := GridContext{
		Width:      v.width,
		Columns:    v.cfg.TUI.Columns,
		Cursor:     v.cursor,
		DragTarget: v.reorder.Target(),
		DragID:     v.reorder.DraggedID(),
	}
	grid := RenderGrid(v.svc.Collection().Snapshot(), gc)

	body := lipgloss.JoinVertical(lipgloss.Left, title, "", grid, "", v.statusLine())

	switch {
	case v.help != nil:
		return v.overlay(body, v.help.View())
	case v.confirm != nil:
		return v.overlay(body, v.confirm.View())
	case v.editor != nil:
		return v.overlay(body, v.editor.View())
	}
	return body
}

func (v View) statusLine() string {
	if v.status != "" {
		if v.statusErr {
			return styles.StatusError.Render(v.status)
		}
		return styles.StatusBarStyle.Render(v.status)
	}

	n := v.svc.Collection().Len()
	state := fmt.Sprintf("%d page(s)", n)
	if v.reorder.State() == Dragging {
		state += " · moving page, space drops, esc cancels"
	}
	return styles.StatusBarStyle.Render(state + "  ·  ? for help")
}

func (v View) overlay(_ string, modal string) string {
	framed := styles.ModalStyle.Render(modal)
	if v.width == 0 || v.height == 0 {
		return framed
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, framed)
}
