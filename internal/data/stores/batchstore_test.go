package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/riffle/internal/core/batch"
	"github.com/colonyops/riffle/internal/core/page"
	"github.com/colonyops/riffle/internal/data/db"
)

func newTestBatchStore(t *testing.T) *BatchStore {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewBatchStore(database)
}

func testPages(ids ...string) []page.Page {
	pages := make([]page.Page, 0, len(ids))
	for _, id := range ids {
		pages = append(pages, page.Page{
			ID:          id,
			CroppedPath: "/scans/" + id + ".png",
			CreatedAt:   time.Now(),
		})
	}
	return pages
}

func TestBatchStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestBatchStore(t)

	created, err := store.CreateBatch(ctx, "invoices")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := store.GetBatch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoices", got.Name)
	assert.False(t, got.Finalized())
}

func TestBatchStore_GetNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestBatchStore(t)

	_, err := store.GetBatch(ctx, "nope")
	assert.ErrorIs(t, err, batch.ErrBatchNotFound)
}

func TestBatchStore_LatestOpenBatch(t *testing.T) {
	ctx := context.Background()
	store := newTestBatchStore(t)

	_, err := store.LatestOpenBatch(ctx)
	require.ErrorIs(t, err, batch.ErrBatchNotFound)

	older, err := store.CreateBatch(ctx, "older")
	require.NoError(t, err)
	newer, err := store.CreateBatch(ctx, "newer")
	require.NoError(t, err)

	got, err := store.LatestOpenBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)

	// Finalizing the newest batch makes the older one current again.
	require.NoError(t, store.FinalizeBatch(ctx, newer.ID, time.Now()))

	got, err = store.LatestOpenBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)
}

func TestBatchStore_FinalizeNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestBatchStore(t)

	err := store.FinalizeBatch(ctx, "missing", time.Now())
	assert.ErrorIs(t, err, batch.ErrBatchNotFound)
}

func TestBatchStore_ReplaceAllPages_Roundtrip(t *testing.T) {
	ctx := context.Background()
	store := newTestBatchStore(t)

	b, err := store.CreateBatch(ctx, "")
	require.NoError(t, err)

	pages := testPages("p1", "p2", "p3")
	pages[1].EnhancedPath = "/scans/p2.enhanced.png"
	pages[1].UseEnhanced = true
	pages[1].Rotation = page.Rotate90
	pages[1].Label = "receipt"
	pages[1].Meta = page.Meta{Width: 2480, Height: 3508, Software: "scanbot"}

	require.NoError(t, store.ReplaceAllPages(ctx, b.ID, pages))

	got, err := store.ListPages(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)
	assert.Equal(t, "p3", got[2].ID)

	assert.True(t, got[1].UseEnhanced)
	assert.Equal(t, page.Rotate90, got[1].Rotation)
	assert.Equal(t, "receipt", got[1].Label)
	assert.Equal(t, 2480, got[1].Meta.Width)
	assert.Equal(t, "scanbot", got[1].Meta.Software)
}

func TestBatchStore_ReplaceAllPages_OverwritesOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestBatchStore(t)

	b, err := store.CreateBatch(ctx, "")
	require.NoError(t, err)

	require.NoError(t, store.ReplaceAllPages(ctx, b.ID, testPages("p1", "p2", "p3")))
	require.NoError(t, store.ReplaceAllPages(ctx, b.ID, testPages("p3", "p1")))

	got, err := store.ListPages(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p3", got[0].ID)
	assert.Equal(t, "p1", got[1].ID)
}

func TestBatchStore_ReplaceAllPages_Empty(t *testing.T) {
	ctx := context.Background()
	store := newTestBatchStore(t)

	b, err := store.CreateBatch(ctx, "")
	require.NoError(t, err)

	require.NoError(t, store.ReplaceAllPages(ctx, b.ID, testPages("p1")))
	require.NoError(t, store.ReplaceAllPages(ctx, b.ID, nil))

	got, err := store.ListPages(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBatchStore_MirrorMatchesCollection(t *testing.T) {
	ctx := context.Background()
	store := newTestBatchStore(t)

	b, err := store.CreateBatch(ctx, "")
	require.NoError(t, err)

	c := batch.NewCollection(testPages("a", "b", "c"))
	c.SetOnChange(func(snapshot []page.Page) {
		require.NoError(t, store.ReplaceAllPages(ctx, b.ID, snapshot))
	})

	c.Append(page.Page{ID: "d", CroppedPath: "/scans/d.png", CreatedAt: time.Now()})
	require.NoError(t, c.Move(0, 3))
	require.NoError(t, c.Delete(1))

	got, err := store.ListPages(ctx, b.ID)
	require.NoError(t, err)

	wantIDs := make([]string, 0, c.Len())
	for _, p := range c.Snapshot() {
		wantIDs = append(wantIDs, p.ID)
	}
	gotIDs := make([]string, 0, len(got))
	for _, p := range got {
		gotIDs = append(gotIDs, p.ID)
	}
	assert.Equal(t, wantIDs, gotIDs)
}
