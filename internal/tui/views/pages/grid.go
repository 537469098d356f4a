package pages

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/riffle/internal/core/page"
	"github.com/colonyops/riffle/internal/core/styles"
)

const (
	// cellInnerWidth is the content width of one grid cell.
	cellInnerWidth = 24
	// cellOuterWidth includes border and padding.
	cellOuterWidth = cellInnerWidth + 4
	minColumns     = 1
)

// GridContext is everything the grid needs beyond the pages themselves.
// Rendering is a pure function of (pages, context): no retained cell state,
// so a full repaint after any mutation is always correct, including the
// position-dependent page number labels, which all shift on a reorder.
type GridContext struct {
	Width   int
	Columns int // 0 derives the column count from Width
	Cursor  int

	// DragID and DragTarget describe an in-flight reorder gesture; the
	// grid previews the dragged page at its hovered resting slot.
	DragID     string
	DragTarget int
}

// columnsFor returns the effective column count.
func (gc GridContext) columnsFor(n int) int {
	cols := gc.Columns
	if cols <= 0 {
		cols = gc.Width / cellOuterWidth
	}
	if cols < minColumns {
		cols = minColumns
	}
	if n > 0 && cols > n {
		cols = n
	}
	return cols
}

// RenderGrid renders the page grid. Cell count equals len(pages); cell i
// shows page i's display image and a 1-based page number.
func RenderGrid(pgs []page.Page, gc GridContext) string {
	if len(pgs) == 0 {
		return styles.CellMetaStyle.Render("No pages yet. Press a to add one.")
	}

	order, dragIdx := displayOrder(pgs, gc)
	cols := gc.columnsFor(len(order))

	var rows []string
	for start := 0; start < len(order); start += cols {
		end := start + cols
		if end > len(order) {
			end = len(order)
		}

		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, renderCell(order[i], i, gc, i == dragIdx))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// displayOrder returns the pages in visual order. During a drag the grabbed
// page is previewed at its hovered slot; its current slot index is returned
// so the cell can be highlighted, -1 when no drag is in flight.
func displayOrder(pgs []page.Page, gc GridContext) ([]page.Page, int) {
	if gc.DragID == "" {
		return pgs, -1
	}

	src := -1
	for i, p := range pgs {
		if p.ID == gc.DragID {
			src = i
			break
		}
	}
	if src < 0 {
		return pgs, -1
	}

	target := gc.DragTarget
	if target < 0 {
		target = 0
	}
	if target > len(pgs)-1 {
		target = len(pgs) - 1
	}

	order := make([]page.Page, 0, len(pgs))
	order = append(order, pgs[:src]...)
	order = append(order, pgs[src+1:]...)
	order = append(order[:target], append([]page.Page{pgs[src]}, order[target:]...)...)
	return order, target
}

func renderCell(p page.Page, position int, gc GridContext, dragged bool) string {
	label := fmt.Sprintf("%d", position+1)
	name := truncate(p.DisplayName(), cellInnerWidth-len(label)-1)
	title := styles.CellLabelStyle.Render(label) + " " + name

	file := truncate(filepath.Base(p.DisplayImage()), cellInnerWidth)

	badge := styles.BadgeCropped.Render(string(page.VariantCropped))
	if p.DisplayVariant() == page.VariantEnhanced {
		badge = styles.BadgeEnhanced.Render(string(page.VariantEnhanced))
	}
	meta := badge
	if p.Meta.Width > 0 && p.Meta.Height > 0 {
		meta += styles.CellMetaStyle.Render(fmt.Sprintf(" %dx%d", p.Meta.Width, p.Meta.Height))
	}
	if p.Rotation != page.Rotate0 {
		meta += styles.CellMetaStyle.Render(fmt.Sprintf(" %d°", int(p.Rotation)))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		styles.CellMetaStyle.Render(file),
		meta,
	)

	style := styles.CellStyle
	switch {
	case dragged:
		style = styles.CellDraggingStyle
	case position == gc.Cursor && gc.DragID == "":
		style = styles.CellSelectedStyle
	case position == gc.Cursor:
		style = styles.CellDropStyle
	}

	return style.Width(cellInnerWidth).Render(body)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
