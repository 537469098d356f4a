package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/riffle/internal/core/batch"
	"github.com/colonyops/riffle/internal/core/page"
)

func newTestCollection(pageIDs ...string) *batch.Collection {
	pages := make([]page.Page, 0, len(pageIDs))
	for _, id := range pageIDs {
		pages = append(pages, page.Page{ID: id, CroppedPath: id + ".png"})
	}
	return batch.NewCollection(pages)
}

func collectionIDs(c *batch.Collection) []string {
	out := make([]string, 0, c.Len())
	for _, p := range c.Snapshot() {
		out = append(out, p.ID)
	}
	return out
}

func TestReorderController_GrabHoverDrop(t *testing.T) {
	c := newTestCollection("a", "b", "c", "d")
	r := NewReorderController(c)

	require.True(t, r.OnDragStart(0))
	assert.Equal(t, Dragging, r.State())
	assert.Equal(t, "a", r.DraggedID())

	r.OnDragOver(2)
	assert.Equal(t, 2, r.Target())

	assert.True(t, r.OnDrop())
	assert.Equal(t, []string{"b", "c", "a", "d"}, collectionIDs(c))
	assert.Equal(t, DragIdle, r.State())
}

func TestReorderController_DropToEnd(t *testing.T) {
	c := newTestCollection("a", "b", "c")
	r := NewReorderController(c)

	require.True(t, r.OnDragStart(0))
	r.OnDragOver(2)

	assert.True(t, r.OnDrop())
	assert.Equal(t, []string{"b", "c", "a"}, collectionIDs(c))
}

func TestReorderController_DropBackward(t *testing.T) {
	c := newTestCollection("a", "b", "c")
	r := NewReorderController(c)

	require.True(t, r.OnDragStart(2))
	r.OnDragOver(0)

	assert.True(t, r.OnDrop())
	assert.Equal(t, []string{"c", "a", "b"}, collectionIDs(c))
}

func TestReorderController_DropOnSource_NoOp(t *testing.T) {
	c := newTestCollection("a", "b")
	r := NewReorderController(c)

	require.True(t, r.OnDragStart(1))
	r.OnDragOver(1)

	assert.False(t, r.OnDrop())
	assert.Equal(t, []string{"a", "b"}, collectionIDs(c))
	assert.Equal(t, DragIdle, r.State())
}

func TestReorderController_GrabOutOfRange(t *testing.T) {
	c := newTestCollection("a")
	r := NewReorderController(c)

	assert.False(t, r.OnDragStart(5))
	assert.Equal(t, DragIdle, r.State())
}

func TestReorderController_HoverClamps(t *testing.T) {
	c := newTestCollection("a", "b", "c")
	r := NewReorderController(c)

	require.True(t, r.OnDragStart(0))

	r.OnDragOver(99)
	assert.Equal(t, 2, r.Target())

	r.OnDragOver(-4)
	assert.Equal(t, 0, r.Target())
}

func TestReorderController_Cancel(t *testing.T) {
	c := newTestCollection("a", "b")
	r := NewReorderController(c)

	require.True(t, r.OnDragStart(0))
	r.OnDragOver(1)
	r.Cancel()

	assert.Equal(t, DragIdle, r.State())
	assert.Equal(t, []string{"a", "b"}, collectionIDs(c))

	// A drop after cancellation has no effect.
	assert.False(t, r.OnDrop())
}

func TestReorderController_StalePayloadAbortsDrop(t *testing.T) {
	c := newTestCollection("a", "b", "c")
	r := NewReorderController(c)

	require.True(t, r.OnDragStart(0))
	r.OnDragOver(2)

	// The grabbed page disappears mid-drag.
	require.NoError(t, c.DeleteByID("a"))

	assert.False(t, r.OnDrop())
	assert.Equal(t, []string{"b", "c"}, collectionIDs(c))
}

func TestReorderController_DropResolvesSourceByID(t *testing.T) {
	c := newTestCollection("a", "b", "c", "d")
	r := NewReorderController(c)

	// Grab "b" at index 1, then delete "a" so the recorded index is stale
	// and "b" now sits at index 0.
	require.True(t, r.OnDragStart(1))
	require.NoError(t, c.Delete(0))

	r.OnDragOver(2)
	assert.True(t, r.OnDrop())

	// "b" ends at slot 2; a stale index-based move would have moved "c".
	assert.Equal(t, []string{"c", "d", "b"}, collectionIDs(c))
}
