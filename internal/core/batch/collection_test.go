package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/riffle/internal/core/page"
)

func pagesFromIDs(ids ...string) []page.Page {
	pages := make([]page.Page, 0, len(ids))
	for _, id := range ids {
		pages = append(pages, page.Page{ID: id, CroppedPath: id + ".png"})
	}
	return pages
}

func ids(pages []page.Page) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.ID)
	}
	return out
}

func TestCollection_Append(t *testing.T) {
	c := NewCollection(pagesFromIDs("a", "b"))

	c.Append(page.Page{ID: "c", CroppedPath: "c.png"})

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"a", "b", "c"}, ids(c.Snapshot()))
}

func TestCollection_Delete(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		want    []string
		wantErr bool
	}{
		{name: "first", index: 0, want: []string{"b", "c"}},
		{name: "middle", index: 1, want: []string{"a", "c"}},
		{name: "last", index: 2, want: []string{"a", "b"}},
		{name: "negative", index: -1, want: []string{"a", "b", "c"}, wantErr: true},
		{name: "past end", index: 3, want: []string{"a", "b", "c"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollection(pagesFromIDs("a", "b", "c"))

			err := c.Delete(tt.index)

			if tt.wantErr {
				var oor ErrIndexOutOfRange
				require.ErrorAs(t, err, &oor)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, ids(c.Snapshot()), "collection must be unchanged on error")
		})
	}
}

func TestCollection_Move(t *testing.T) {
	tests := []struct {
		name    string
		from    int
		to      int
		want    []string
		wantErr bool
	}{
		// Remove a, insert at 2-1=1: the forward-move adjustment.
		{name: "forward with adjustment", from: 0, to: 2, want: []string{"b", "a", "c", "d"}},
		{name: "forward to end slot", from: 0, to: 4, want: []string{"b", "c", "d", "a"}},
		{name: "backward", from: 3, to: 0, want: []string{"d", "a", "b", "c"}},
		{name: "backward by one", from: 2, to: 1, want: []string{"a", "c", "b", "d"}},
		{name: "same index no-op", from: 1, to: 1, want: []string{"a", "b", "c", "d"}},
		{name: "from out of range", from: 4, to: 0, want: []string{"a", "b", "c", "d"}, wantErr: true},
		{name: "to past end slot", from: 0, to: 5, want: []string{"a", "b", "c", "d"}, wantErr: true},
		{name: "negative from", from: -1, to: 2, want: []string{"a", "b", "c", "d"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollection(pagesFromIDs("a", "b", "c", "d"))

			err := c.Move(tt.from, tt.to)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, ids(c.Snapshot()))
		})
	}
}

func TestCollection_AppendThenReplaceLast(t *testing.T) {
	c := NewCollection(pagesFromIDs("a"))

	c.Append(page.Page{ID: "b", CroppedPath: "b.png"})
	require.NoError(t, c.Replace(c.Len()-1, page.Page{ID: "b2", CroppedPath: "b2.png"}))

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"a", "b2"}, ids(c.Snapshot()))
}

func TestCollection_ReplaceByID_SurvivesReorder(t *testing.T) {
	c := NewCollection(pagesFromIDs("a", "b", "c"))

	// Simulate mutations happening while an editor held a reference to "b":
	// delete "a" and move "c" to the front. "b" is now at index 2.
	require.NoError(t, c.Delete(0))
	require.NoError(t, c.Move(1, 0))
	require.Equal(t, []string{"c", "b"}, ids(c.Snapshot()))

	edited := page.Page{ID: "b", CroppedPath: "b.png", Label: "edited"}
	require.NoError(t, c.ReplaceByID("b", edited))

	got, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Label)
}

func TestCollection_ReplaceByID_NotFound(t *testing.T) {
	c := NewCollection(pagesFromIDs("a"))

	err := c.ReplaceByID("gone", page.Page{ID: "gone"})

	var nf ErrPageNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "gone", nf.ID)
}

func TestCollection_OnChange_FullSnapshotEveryMutation(t *testing.T) {
	c := NewCollection(pagesFromIDs("a", "b"))

	var mirror []page.Page
	c.SetOnChange(func(pages []page.Page) {
		mirror = pages
	})

	steps := []func(){
		func() { c.Append(page.Page{ID: "c", CroppedPath: "c.png"}) },
		func() { _ = c.Delete(0) },
		func() { _ = c.Move(0, 2) },
		func() { _ = c.Replace(1, page.Page{ID: "z", CroppedPath: "z.png"}) },
	}

	for _, step := range steps {
		step()
		assert.Equal(t, c.Snapshot(), mirror, "mirror must equal the live collection after every mutation")
	}
}

func TestCollection_OnChange_NotFiredOnNoOpMove(t *testing.T) {
	c := NewCollection(pagesFromIDs("a", "b"))

	calls := 0
	c.SetOnChange(func([]page.Page) { calls++ })

	require.NoError(t, c.Move(1, 1))

	assert.Zero(t, calls)
}

func TestCollection_SnapshotIsACopy(t *testing.T) {
	c := NewCollection(pagesFromIDs("a"))

	snap := c.Snapshot()
	snap[0].ID = "mutated"

	got, err := c.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
}
