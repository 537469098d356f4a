package pages

import (
	"github.com/rs/zerolog/log"

	"github.com/colonyops/riffle/internal/core/batch"
)

// DragState is the reorder gesture phase.
type DragState int

const (
	// DragIdle means no reorder gesture is in flight.
	DragIdle DragState = iota
	// Dragging means a page is grabbed and following the cursor.
	Dragging
)

// Reorderer is the gesture interface the grid drives during a rearrange:
// grab, hover, commit or cancel. One dragged page per gesture; multi-item
// drags are not supported.
type Reorderer interface {
	OnDragStart(index int) bool
	OnDragOver(index int)
	OnDrop() bool
	Cancel()
}

// ReorderController tracks one in-flight drag over the page collection.
//
// The payload of a drag is the grabbed page's ID, not its index: an index
// taken at grab time would go stale if the collection mutates mid-drag, so
// the drop resolves the source position by ID at commit time. A payload
// that no longer resolves aborts the drop with no effect.
type ReorderController struct {
	collection *batch.Collection

	state  DragState
	pageID string
	target int // hovered resting slot in the current layout
}

var _ Reorderer = (*ReorderController)(nil)

// NewReorderController creates a controller over the given collection.
func NewReorderController(collection *batch.Collection) *ReorderController {
	return &ReorderController{collection: collection}
}

// State returns the current gesture phase.
func (r *ReorderController) State() DragState {
	return r.state
}

// DraggedID returns the grabbed page's ID, or empty outside a drag.
func (r *ReorderController) DraggedID() string {
	if r.state != Dragging {
		return ""
	}
	return r.pageID
}

// Target returns the hovered resting slot, or -1 outside a drag.
func (r *ReorderController) Target() int {
	if r.state != Dragging {
		return -1
	}
	return r.target
}

// OnDragStart grabs the page at index. Grabs only come from cells of this
// grid (there is no cross-source drag), so an index that does not resolve
// is gesture noise and is ignored.
func (r *ReorderController) OnDragStart(index int) bool {
	p, err := r.collection.Get(index)
	if err != nil {
		return false
	}

	r.state = Dragging
	r.pageID = p.ID
	r.target = index
	return true
}

// OnDragOver proposes the hovered slot as the page's resting position. The
// proposal is always a move, never a copy. Out-of-range hovers clamp to the
// grid.
func (r *ReorderController) OnDragOver(index int) {
	if r.state != Dragging {
		return
	}

	if index < 0 {
		index = 0
	}
	if max := r.collection.Len() - 1; index > max {
		index = max
	}
	r.target = index
}

// OnDrop commits the drag. A drop where the payload no longer resolves, or
// where source and destination coincide, is dropped with no state change
// and no visual effect. Returns true when the collection was reordered.
func (r *ReorderController) OnDrop() bool {
	if r.state != Dragging {
		return false
	}
	defer r.reset()

	from := r.collection.IndexOf(r.pageID)
	if from < 0 {
		log.Debug().Str("page", r.pageID).Msg("drop aborted: payload no longer resolves")
		return false
	}
	if from == r.target {
		return false
	}

	// The hovered slot is the resting index in the current layout; Move
	// takes its destination in pre-removal coordinates, where forward
	// moves sit one slot further right.
	to := r.target
	if to > from {
		to++
	}

	if err := r.collection.Move(from, to); err != nil {
		log.Error().Err(err).Int("from", from).Int("to", to).Msg("drop aborted: move rejected")
		return false
	}
	return true
}

// Cancel aborts the gesture with no effect.
func (r *ReorderController) Cancel() {
	r.reset()
}

func (r *ReorderController) reset() {
	r.state = DragIdle
	r.pageID = ""
	r.target = 0
}
