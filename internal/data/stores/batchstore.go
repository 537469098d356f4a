// Package stores implements riffle's persistence on SQLite.
package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/colonyops/riffle/internal/core/batch"
	"github.com/colonyops/riffle/internal/core/page"
	"github.com/colonyops/riffle/internal/data/db"
)

// BatchStore implements batch.Store using SQLite. It is the accumulator
// mirror of the in-memory collection: page rows are replaced wholesale on
// every sync, so readers always observe a complete, consistent batch.
type BatchStore struct {
	db *db.DB
}

var _ batch.Store = (*BatchStore)(nil)

// NewBatchStore creates a new SQLite-backed batch store.
func NewBatchStore(db *db.DB) *BatchStore {
	return &BatchStore{db: db}
}

// CreateBatch creates a new empty batch.
func (s *BatchStore) CreateBatch(ctx context.Context, name string) (batch.Batch, error) {
	b := batch.Batch{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	_, err := s.db.Conn().ExecContext(ctx,
		`INSERT INTO batches (id, name, created_at) VALUES (?, ?, ?)`,
		b.ID, b.Name, b.CreatedAt.UnixNano(),
	)
	if err != nil {
		return batch.Batch{}, fmt.Errorf("failed to create batch: %w", err)
	}

	return b, nil
}

// GetBatch returns a batch by ID. Returns batch.ErrBatchNotFound if missing.
func (s *BatchStore) GetBatch(ctx context.Context, id string) (batch.Batch, error) {
	row := s.db.Conn().QueryRowContext(ctx,
		`SELECT id, name, created_at, finalized_at FROM batches WHERE id = ?`, id)

	b, err := scanBatch(row)
	if IsNotFoundError(err) {
		return batch.Batch{}, batch.ErrBatchNotFound
	}
	if err != nil {
		return batch.Batch{}, fmt.Errorf("failed to get batch: %w", err)
	}
	return b, nil
}

// LatestOpenBatch returns the most recently created unfinalized batch.
func (s *BatchStore) LatestOpenBatch(ctx context.Context) (batch.Batch, error) {
	row := s.db.Conn().QueryRowContext(ctx,
		`SELECT id, name, created_at, finalized_at FROM batches
		 WHERE finalized_at IS NULL
		 ORDER BY created_at DESC LIMIT 1`)

	b, err := scanBatch(row)
	if IsNotFoundError(err) {
		return batch.Batch{}, batch.ErrBatchNotFound
	}
	if err != nil {
		return batch.Batch{}, fmt.Errorf("failed to get latest open batch: %w", err)
	}
	return b, nil
}

// ListBatches returns all batches, newest first.
func (s *BatchStore) ListBatches(ctx context.Context) ([]batch.Batch, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, name, created_at, finalized_at FROM batches ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var batches []batch.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate batches: %w", err)
	}

	return batches, nil
}

// FinalizeBatch stamps the batch as finished.
func (s *BatchStore) FinalizeBatch(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.Conn().ExecContext(ctx,
		`UPDATE batches SET finalized_at = ? WHERE id = ?`, at.UnixNano(), id)
	if err != nil {
		return fmt.Errorf("failed to finalize batch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to finalize batch: %w", err)
	}
	if n == 0 {
		return batch.ErrBatchNotFound
	}
	return nil
}

// ListPages returns the batch's pages ordered by position.
func (s *BatchStore) ListPages(ctx context.Context, batchID string) ([]page.Page, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, cropped_path, enhanced_path, use_enhanced, rotation, label,
		        width, height, captured_at, software, created_at
		 FROM pages WHERE batch_id = ? ORDER BY position`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pages []page.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pages: %w", err)
	}

	return pages, nil
}

// busyRetries and busyRetryDelay bound how long a page sync waits out a
// concurrent reader holding the database lock.
const (
	busyRetries    = 3
	busyRetryDelay = 50 * time.Millisecond
)

// ReplaceAllPages overwrites the batch's page rows with the given ordered
// snapshot in a single transaction, retrying briefly when the database is
// locked by another process. O(n) per sync, and immune to the partial
// update bugs an incremental mirror would invite.
func (s *BatchStore) ReplaceAllPages(ctx context.Context, batchID string, pages []page.Page) error {
	var err error
	for attempt := 0; attempt < busyRetries; attempt++ {
		if err = s.replaceAllPages(ctx, batchID, pages); !IsBusyError(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(busyRetryDelay):
		}
	}
	return err
}

func (s *BatchStore) replaceAllPages(ctx context.Context, batchID string, pages []page.Page) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE batch_id = ?`, batchID); err != nil {
			return fmt.Errorf("failed to clear pages: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO pages (batch_id, id, position, cropped_path, enhanced_path,
			                    use_enhanced, rotation, label, width, height,
			                    captured_at, software, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare page insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for i, p := range pages {
			var capturedAt sql.NullInt64
			if !p.Meta.CapturedAt.IsZero() {
				capturedAt = sql.NullInt64{Int64: p.Meta.CapturedAt.UnixNano(), Valid: true}
			}

			_, err := stmt.ExecContext(ctx,
				batchID, p.ID, i, p.CroppedPath, p.EnhancedPath,
				boolToInt(p.UseEnhanced), int(p.Rotation), p.Label,
				p.Meta.Width, p.Meta.Height,
				capturedAt, p.Meta.Software, p.CreatedAt.UnixNano(),
			)
			if err != nil {
				return fmt.Errorf("failed to insert page %s: %w", p.ID, err)
			}
		}

		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (batch.Batch, error) {
	var (
		b           batch.Batch
		createdAt   int64
		finalizedAt sql.NullInt64
	)
	if err := row.Scan(&b.ID, &b.Name, &createdAt, &finalizedAt); err != nil {
		return batch.Batch{}, err
	}

	b.CreatedAt = time.Unix(0, createdAt)
	if finalizedAt.Valid {
		t := time.Unix(0, finalizedAt.Int64)
		b.FinalizedAt = &t
	}
	return b, nil
}

func scanPage(row rowScanner) (page.Page, error) {
	var (
		p           page.Page
		useEnhanced int
		rotation    int
		capturedAt  sql.NullInt64
		createdAt   int64
	)
	err := row.Scan(&p.ID, &p.CroppedPath, &p.EnhancedPath, &useEnhanced, &rotation,
		&p.Label, &p.Meta.Width, &p.Meta.Height, &capturedAt, &p.Meta.Software, &createdAt)
	if err != nil {
		return page.Page{}, err
	}

	p.UseEnhanced = useEnhanced != 0
	p.Rotation = page.Rotation(rotation)
	if capturedAt.Valid {
		p.Meta.CapturedAt = time.Unix(0, capturedAt.Int64)
	}
	p.CreatedAt = time.Unix(0, createdAt)
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
