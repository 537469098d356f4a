package pages

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/riffle/internal/core/page"
	"github.com/colonyops/riffle/pkg/tuitest"
)

func gridPage(id, cropped, enhanced string, useEnhanced bool) page.Page {
	return page.Page{
		ID:           id,
		CroppedPath:  cropped,
		EnhancedPath: enhanced,
		UseEnhanced:  useEnhanced,
	}
}

func TestRenderGrid_Empty(t *testing.T) {
	out := tuitest.StripANSI(RenderGrid(nil, GridContext{Width: 80}))
	assert.Contains(t, out, "No pages yet")
}

func TestRenderGrid_CellPerPage(t *testing.T) {
	pgs := []page.Page{
		gridPage("a", "/scan/p1.png", "/scan/p1.enhanced.png", true),
		gridPage("b", "/scan/p2.png", "", false),
	}

	out := tuitest.StripANSI(RenderGrid(pgs, GridContext{Width: 120}))

	assert.Contains(t, out, "1 ")
	assert.Contains(t, out, "2 ")
	assert.Contains(t, out, "p1.enhanced.png")
	assert.Contains(t, out, "p2.png")
	assert.Contains(t, out, string(page.VariantEnhanced))
	assert.Contains(t, out, string(page.VariantCropped))
}

func TestRenderGrid_EnhancedPreferenceWithoutFileFallsBack(t *testing.T) {
	pgs := []page.Page{
		gridPage("a", "/scan/p1.png", "", true),
	}

	out := tuitest.StripANSI(RenderGrid(pgs, GridContext{Width: 80}))

	assert.Contains(t, out, "p1.png")
	assert.NotContains(t, out, "enhanced")
}

func TestRenderGrid_DeterministicForSameInput(t *testing.T) {
	pgs := []page.Page{
		gridPage("a", "/scan/p1.png", "", false),
		gridPage("b", "/scan/p2.png", "", false),
	}
	gc := GridContext{Width: 120, Cursor: 1}

	assert.Equal(t, RenderGrid(pgs, gc), RenderGrid(pgs, gc))
}

func TestRenderGrid_LabelsFollowOrder(t *testing.T) {
	pgs := []page.Page{
		gridPage("a", "/scan/first.png", "", false),
		gridPage("b", "/scan/second.png", "", false),
	}

	out := tuitest.StripANSI(RenderGrid(pgs, GridContext{Width: 200, Columns: 2}))
	assert.Less(t, strings.Index(out, "first.png"), strings.Index(out, "second.png"))

	// Swap the slice order: labels stay positional, names move.
	pgs[0], pgs[1] = pgs[1], pgs[0]
	out = tuitest.StripANSI(RenderGrid(pgs, GridContext{Width: 200, Columns: 2}))
	assert.Less(t, strings.Index(out, "second.png"), strings.Index(out, "first.png"))
}

func TestDisplayOrder_DragPreview(t *testing.T) {
	pgs := []page.Page{
		gridPage("a", "a.png", "", false),
		gridPage("b", "b.png", "", false),
		gridPage("c", "c.png", "", false),
	}

	order, dragIdx := displayOrder(pgs, GridContext{DragID: "a", DragTarget: 2})

	assert.Equal(t, 2, dragIdx)
	ids := make([]string, 0, len(order))
	for _, p := range order {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"b", "c", "a"}, ids)
}

func TestDisplayOrder_UnknownDragIDIsIgnored(t *testing.T) {
	pgs := []page.Page{gridPage("a", "a.png", "", false)}

	order, dragIdx := displayOrder(pgs, GridContext{DragID: "gone", DragTarget: 0})

	assert.Equal(t, -1, dragIdx)
	assert.Len(t, order, 1)
}
