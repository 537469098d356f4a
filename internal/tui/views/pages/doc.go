// Package pages implements the page review grid for an open batch.
//
// # Coordinate Systems
//
// This package uses two index systems for a reorder:
//
// 1. Resting slots: the grid position the dragged page would occupy after
// the move (what the user sees while hovering)
// 2. Insertion points: the index passed to Collection.Move, measured against
// the list before the dragged page is removed
//
// The two agree for backward moves; for forward moves the insertion point is
// the resting slot plus one, because removing the dragged page shifts every
// later element left. ReorderController tracks resting slots and converts at
// drop time.
//
// # Architecture
//
// The view is composed of several components:
//
//   - RenderGrid: Pure render of cells from a page snapshot, with 1-based
//     position labels and per-page display image selection
//   - ReorderController: Grab/hover/drop state machine, keyed by page ID so
//     a concurrent mutation cannot retarget the move
//   - EditorModal: Per-page edit form (label, image variant, rotation)
//   - InboxWatcher: Watches the capture inbox and reports settled files
//
// Every collection mutation is mirrored to the batch store as a full
// snapshot before the next frame renders.
package pages
