package export

import (
	"io"
	"time"

	"github.com/colonyops/riffle/internal/core/batch"
	"github.com/colonyops/riffle/internal/core/page"
	"github.com/colonyops/riffle/pkg/iojson"
)

// PageInfo is the machine-readable manifest entry for one page.
type PageInfo struct {
	Position int    `json:"position"`
	ID       string `json:"id"`
	Label    string `json:"label,omitempty"`
	Image    string `json:"image"`
	Variant  string `json:"variant"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Rotation int    `json:"rotation"`
}

// BatchInfo is the machine-readable manifest header.
type BatchInfo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
	Pages       int        `json:"pages"`
}

// WriteJSON emits the batch header followed by one JSON line per page, in
// display order.
func WriteJSON(w io.Writer, b batch.Batch, pages []page.Page) error {
	if err := iojson.WriteLine(w, BatchInfo{
		ID:          b.ID,
		Name:        b.Name,
		CreatedAt:   b.CreatedAt,
		FinalizedAt: b.FinalizedAt,
		Pages:       len(pages),
	}); err != nil {
		return err
	}

	for i, p := range pages {
		if err := iojson.WriteLine(w, PageInfo{
			Position: i + 1,
			ID:       p.ID,
			Label:    p.Label,
			Image:    p.DisplayImage(),
			Variant:  string(p.DisplayVariant()),
			Width:    p.Meta.Width,
			Height:   p.Meta.Height,
			Rotation: int(p.Rotation),
		}); err != nil {
			return err
		}
	}

	return nil
}
