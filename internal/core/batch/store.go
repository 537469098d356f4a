package batch

import (
	"context"
	"errors"
	"time"

	"github.com/colonyops/riffle/internal/core/page"
)

// ErrBatchNotFound is returned when a batch ID does not resolve.
var ErrBatchNotFound = errors.New("batch not found")

// Batch is one scan session's worth of pages under review.
type Batch struct {
	ID          string
	Name        string
	CreatedAt   time.Time
	FinalizedAt *time.Time
}

// Finalized reports whether the batch has been finished.
func (b Batch) Finalized() bool {
	return b.FinalizedAt != nil
}

// Store is the external accumulator for batches. It always holds a complete
// snapshot of each batch's pages: ReplaceAllPages overwrites the batch's
// rows with the given ordered slice, never applying a partial diff.
type Store interface {
	CreateBatch(ctx context.Context, name string) (Batch, error)
	GetBatch(ctx context.Context, id string) (Batch, error)
	// LatestOpenBatch returns the most recently created unfinalized batch,
	// or ErrBatchNotFound when every batch is finalized (or none exist).
	LatestOpenBatch(ctx context.Context) (Batch, error)
	ListBatches(ctx context.Context) ([]Batch, error)
	FinalizeBatch(ctx context.Context, id string, at time.Time) error

	// ListPages returns the batch's pages ordered by position.
	ListPages(ctx context.Context, batchID string) ([]page.Page, error)
	// ReplaceAllPages overwrites the batch's pages with the given ordered
	// snapshot. Positions are assigned from slice order.
	ReplaceAllPages(ctx context.Context, batchID string, pages []page.Page) error
}
