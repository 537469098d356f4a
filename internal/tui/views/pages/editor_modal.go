package pages

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/colonyops/riffle/internal/core/page"
)

// EditorModal edits a single page's presentation fields through a form.
// It is keyed by page ID, not grid position, so a reorder or delete that
// lands while the form is open cannot retarget the edit.
type EditorModal struct {
	pageID   string
	form     *huh.Form
	label    string
	variant  string
	rotation int
}

// NewEditorModal builds the edit form seeded from the page's current values.
func NewEditorModal(p page.Page) *EditorModal {
	m := &EditorModal{
		pageID:   p.ID,
		label:    p.Label,
		rotation: int(p.Rotation),
	}
	m.variant = string(page.VariantCropped)
	if p.UseEnhanced {
		m.variant = string(page.VariantEnhanced)
	}

	variantOpts := []huh.Option[string]{
		huh.NewOption("Cropped", string(page.VariantCropped)),
	}
	if p.HasEnhanced() {
		variantOpts = append(variantOpts, huh.NewOption("Enhanced", string(page.VariantEnhanced)))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Label").
				Value(&m.label),
			huh.NewSelect[string]().
				Title("Image").
				Options(variantOpts...).
				Value(&m.variant),
			huh.NewSelect[int]().
				Title("Rotation").
				Options(
					huh.NewOption("0°", 0),
					huh.NewOption("90°", 90),
					huh.NewOption("180°", 180),
					huh.NewOption("270°", 270),
				).
				Value(&m.rotation),
		),
	).WithShowHelp(false)

	return m
}

// PageID returns the ID of the page being edited.
func (m *EditorModal) PageID() string {
	return m.pageID
}

// Init starts the underlying form.
func (m *EditorModal) Init() tea.Cmd {
	return m.form.Init()
}

// Update forwards input to the form.
func (m *EditorModal) Update(msg tea.Msg) tea.Cmd {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return cmd
}

// Done reports whether the form was submitted.
func (m *EditorModal) Done() bool {
	return m.form.State == huh.StateCompleted
}

// Aborted reports whether the form was cancelled.
func (m *EditorModal) Aborted() bool {
	return m.form.State == huh.StateAborted
}

// Apply writes the form values onto a copy of the given page and returns it.
// The caller resolves the page by ID immediately before applying so
// concurrent mutations are read through, not overwritten.
func (m *EditorModal) Apply(p page.Page) (page.Page, error) {
	if p.ID != m.pageID {
		return page.Page{}, fmt.Errorf("editor bound to page %s, got %s", m.pageID, p.ID)
	}

	p.Label = m.label
	p.UseEnhanced = m.variant == string(page.VariantEnhanced)
	p.Rotation = page.Rotation(m.rotation)
	return p, nil
}

// View renders the form.
func (m *EditorModal) View() string {
	return m.form.View()
}
