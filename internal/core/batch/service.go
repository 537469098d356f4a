package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/colonyops/riffle/internal/core/page"
	"github.com/colonyops/riffle/pkg/randid"
)

// pageIDLength is the length of generated page identity tokens.
const pageIDLength = 12

// metaWorkers caps concurrent image metadata reads during Open.
const metaWorkers = 4

// Service owns one open batch: the ordered collection, the store bridge
// that mirrors every mutation, and the import of newly captured pages.
//
// The service is not safe for concurrent use; like the collection it is
// confined to the event loop driving the review screen.
type Service struct {
	store Store
	log   zerolog.Logger

	batch      Batch
	collection *Collection
}

// NewService creates a batch service on the given store.
func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("component", "batch").Logger(),
	}
}

// Batch returns the currently open batch.
func (s *Service) Batch() Batch {
	return s.batch
}

// Collection returns the live collection of the open batch.
func (s *Service) Collection() *Collection {
	return s.collection
}

// Open loads the batch's pages from the store, refreshes their capture
// metadata from disk, wires the mutation bridge, and performs the entry
// sync so the mirror is exact before the first gesture arrives.
func (s *Service) Open(ctx context.Context, batchID string) error {
	b, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return fmt.Errorf("open batch: %w", err)
	}

	pages, err := s.store.ListPages(ctx, batchID)
	if err != nil {
		return fmt.Errorf("load pages: %w", err)
	}

	if err := s.refreshMeta(ctx, pages); err != nil {
		return fmt.Errorf("refresh page metadata: %w", err)
	}

	s.batch = b
	s.collection = NewCollection(pages)
	s.collection.SetOnChange(func(snapshot []page.Page) {
		// The mutation bridge: every collection change overwrites the
		// store's copy of the batch.
		if serr := s.store.ReplaceAllPages(ctx, b.ID, snapshot); serr != nil {
			s.log.Error().Err(serr).Str("batch", b.ID).Msg("failed to sync pages to store")
		}
	})

	// Entry sync, in case the previous process died between a mutation and
	// its bridge write.
	if err := s.store.ReplaceAllPages(ctx, b.ID, s.collection.Snapshot()); err != nil {
		return fmt.Errorf("entry sync: %w", err)
	}

	s.log.Debug().Str("batch", b.ID).Int("pages", s.collection.Len()).Msg("batch opened")
	return nil
}

// OpenLatest opens the most recent unfinalized batch, creating a fresh one
// when none exists.
func (s *Service) OpenLatest(ctx context.Context) error {
	b, err := s.store.LatestOpenBatch(ctx)
	if errors.Is(err, ErrBatchNotFound) {
		b, err = s.store.CreateBatch(ctx, "")
		if err != nil {
			return fmt.Errorf("create batch: %w", err)
		}
		s.log.Info().Str("batch", b.ID).Msg("created new batch")
	} else if err != nil {
		return fmt.Errorf("find open batch: %w", err)
	}

	return s.Open(ctx, b.ID)
}

// BuildPage constructs a page from a captured image file: stat, metadata
// read, enhanced-sibling lookup, fresh identity token. It never touches
// the collection, so it is safe to call off the event loop.
func (s *Service) BuildPage(_ context.Context, path string) (page.Page, error) {
	if _, err := os.Stat(path); err != nil {
		return page.Page{}, fmt.Errorf("stat capture: %w", err)
	}

	meta, err := page.ReadMeta(path)
	if err != nil {
		return page.Page{}, fmt.Errorf("read capture metadata: %w", err)
	}

	p := page.Page{
		ID:          randid.Generate(pageIDLength),
		CroppedPath: path,
		Meta:        meta,
		CreatedAt:   time.Now(),
	}
	if p.EnhancedPath = enhancedSibling(path); p.EnhancedPath != "" {
		p.UseEnhanced = true
	}
	return p, nil
}

// Append adds an already built page to the open collection. Collection
// mutations are single-threaded; callers must own the event loop.
func (s *Service) Append(p page.Page) {
	s.collection.Append(p)
	s.log.Debug().Str("page", p.ID).Str("image", p.CroppedPath).Msg("page appended")
}

// AddFromFile builds a page from a captured image file and appends it to
// the open collection. The returned page carries a fresh identity token.
func (s *Service) AddFromFile(ctx context.Context, path string) (page.Page, error) {
	if s.collection == nil {
		return page.Page{}, fmt.Errorf("no open batch")
	}

	p, err := s.BuildPage(ctx, path)
	if err != nil {
		return page.Page{}, err
	}

	s.Append(p)
	return p, nil
}

// Finalize performs the exit sync for the given ordered snapshot and
// stamps the batch finished in the store. It only writes to the store,
// never to the collection, so it may run off the event loop as long as
// the snapshot was taken on it.
func (s *Service) Finalize(ctx context.Context, pages []page.Page, at time.Time) error {
	// Exit sync before finalizing, mirroring the entry sync.
	if err := s.store.ReplaceAllPages(ctx, s.batch.ID, pages); err != nil {
		return fmt.Errorf("exit sync: %w", err)
	}

	if err := s.store.FinalizeBatch(ctx, s.batch.ID, at); err != nil {
		return fmt.Errorf("finalize batch: %w", err)
	}

	s.log.Info().Str("batch", s.batch.ID).Int("pages", len(pages)).Msg("batch finalized")
	return nil
}

// Finish snapshots, finalizes, and returns the final ordered pages for
// the caller. The screen may legitimately be finished while empty.
func (s *Service) Finish(ctx context.Context) ([]page.Page, error) {
	if s.collection == nil {
		return nil, fmt.Errorf("no open batch")
	}

	pages := s.collection.Snapshot()
	now := time.Now()
	if err := s.Finalize(ctx, pages, now); err != nil {
		return nil, err
	}
	s.batch.FinalizedAt = &now

	return pages, nil
}

// refreshMeta re-reads capture metadata for pages whose images still exist.
// Reads run concurrently; a missing or unreadable image keeps the stored
// metadata rather than failing the open.
func (s *Service) refreshMeta(ctx context.Context, pages []page.Page) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(metaWorkers)

	for i := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			meta, err := page.ReadMeta(pages[i].DisplayImage())
			if err != nil {
				s.log.Warn().Err(err).Str("page", pages[i].ID).Msg("metadata refresh skipped")
				return nil
			}
			pages[i].Meta = meta
			return nil
		})
	}

	return g.Wait()
}

// enhancedSibling returns the conventional enhanced-variant path for a
// cropped capture (name.enhanced.ext) when that file exists.
func enhancedSibling(cropped string) string {
	ext := filepath.Ext(cropped)
	candidate := strings.TrimSuffix(cropped, ext) + ".enhanced" + ext
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}
