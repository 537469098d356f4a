// Package batch holds the ordered page collection for a scan batch and the
// service that keeps the batch store in sync with it.
package batch

import (
	"fmt"
	"slices"

	"github.com/colonyops/riffle/internal/core/page"
)

// ErrIndexOutOfRange is returned by index-addressed collection operations
// when the index does not identify an element. Out-of-range indices can only
// come from an internal bookkeeping bug, never from user input, so they are
// surfaced loudly instead of being dropped.
type ErrIndexOutOfRange struct {
	Op    string
	Index int
	Size  int
}

func (e ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Size)
}

// ErrPageNotFound is returned by identity-addressed operations when no page
// carries the given ID.
type ErrPageNotFound struct {
	ID string
}

func (e ErrPageNotFound) Error() string {
	return fmt.Sprintf("no page with id %s", e.ID)
}

// OnChange receives a full snapshot of the collection after every mutation.
// The snapshot is a copy; holding on to it is safe.
type OnChange func(pages []page.Page)

// Collection is the ordered set of pages in a batch: insertion order is
// display order is export order. It is the single source of truth for the
// review screen, and it is confined to the event loop that owns it: no
// locking, mutations are serialized by message delivery.
type Collection struct {
	pages    []page.Page
	onChange OnChange
}

// NewCollection creates a collection seeded with the given pages.
// The slice is copied.
func NewCollection(pages []page.Page) *Collection {
	return &Collection{pages: slices.Clone(pages)}
}

// SetOnChange registers the mutation bridge. The callback fires after every
// Append, Delete, Replace, and Move with a complete snapshot, always the
// whole collection, never a diff, so the observer can never see a partial
// state. The collection must outlive any pending callback.
func (c *Collection) SetOnChange(fn OnChange) {
	c.onChange = fn
}

// Len returns the number of pages.
func (c *Collection) Len() int {
	return len(c.pages)
}

// Get returns the page at index i.
func (c *Collection) Get(i int) (page.Page, error) {
	if i < 0 || i >= len(c.pages) {
		return page.Page{}, ErrIndexOutOfRange{Op: "get", Index: i, Size: len(c.pages)}
	}
	return c.pages[i], nil
}

// Snapshot returns a copy of the current ordered pages.
func (c *Collection) Snapshot() []page.Page {
	return slices.Clone(c.pages)
}

// IndexOf returns the current index of the page with the given ID, or -1.
func (c *Collection) IndexOf(id string) int {
	return slices.IndexFunc(c.pages, func(p page.Page) bool { return p.ID == id })
}

// Append adds a page at the end of the collection.
func (c *Collection) Append(p page.Page) {
	c.pages = append(c.pages, p)
	c.notify()
}

// Delete removes the page at index i; all subsequent pages shift down one.
func (c *Collection) Delete(i int) error {
	if i < 0 || i >= len(c.pages) {
		return ErrIndexOutOfRange{Op: "delete", Index: i, Size: len(c.pages)}
	}
	c.pages = slices.Delete(c.pages, i, i+1)
	c.notify()
	return nil
}

// DeleteByID removes the page carrying the given ID.
func (c *Collection) DeleteByID(id string) error {
	i := c.IndexOf(id)
	if i < 0 {
		return ErrPageNotFound{ID: id}
	}
	return c.Delete(i)
}

// Replace substitutes the page at index i in place. Size is unchanged.
func (c *Collection) Replace(i int, p page.Page) error {
	if i < 0 || i >= len(c.pages) {
		return ErrIndexOutOfRange{Op: "replace", Index: i, Size: len(c.pages)}
	}
	c.pages[i] = p
	c.notify()
	return nil
}

// ReplaceByID substitutes the page carrying the given ID, wherever it
// currently sits. This is the editor-handoff merge path: the edit is keyed
// by identity, so deletes and moves that happened while the editor was open
// cannot redirect it onto a different page.
func (c *Collection) ReplaceByID(id string, p page.Page) error {
	i := c.IndexOf(id)
	if i < 0 {
		return ErrPageNotFound{ID: id}
	}
	return c.Replace(i, p)
}

// Move relocates the page at index from so that it lands at the position the
// user pointed at. Semantics are remove-then-insert: the page is removed
// first, which shifts the tail left, so the insertion index is to-1 when
// to > from. Inserting at the raw destination would land one slot late on
// every forward move.
//
// The destination is expressed in pre-removal coordinates, so to may equal
// Len(): that is the insert-after-the-last-page slot, unreachable otherwise
// once the adjustment is applied.
//
// Move(i, i) is a no-op and does not fire the change callback.
func (c *Collection) Move(from, to int) error {
	n := len(c.pages)
	if from < 0 || from >= n {
		return ErrIndexOutOfRange{Op: "move from", Index: from, Size: n}
	}
	if to < 0 || to > n {
		return ErrIndexOutOfRange{Op: "move to", Index: to, Size: n + 1}
	}
	if from == to {
		return nil
	}

	p := c.pages[from]
	c.pages = slices.Delete(c.pages, from, from+1)

	insert := to
	if to > from {
		insert = to - 1
	}
	c.pages = slices.Insert(c.pages, insert, p)
	c.notify()
	return nil
}

func (c *Collection) notify() {
	if c.onChange != nil {
		c.onChange(c.Snapshot())
	}
}
