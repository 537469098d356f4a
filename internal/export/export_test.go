package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/riffle/internal/core/batch"
	"github.com/colonyops/riffle/internal/core/page"
)

func manifestFixture() (batch.Batch, []page.Page) {
	finalized := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	b := batch.Batch{
		ID:          "batch-1",
		Name:        "contracts",
		CreatedAt:   time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		FinalizedAt: &finalized,
	}

	pages := []page.Page{
		{
			ID:           "p1",
			CroppedPath:  "/scans/p1.png",
			EnhancedPath: "/scans/p1.enhanced.png",
			UseEnhanced:  true,
			Label:        "cover",
			Meta:         page.Meta{Width: 2480, Height: 3508},
		},
		{
			ID:          "p2",
			CroppedPath: "/scans/p2.png",
			Rotation:    page.Rotate90,
		},
	}
	return b, pages
}

func TestMarkdownWriter_Write(t *testing.T) {
	b, pages := manifestFixture()

	var buf bytes.Buffer
	require.NoError(t, NewMarkdownWriter(&buf).Write(b, pages))
	out := buf.String()

	assert.Contains(t, out, "# Scan Batch: contracts")
	assert.Contains(t, out, "batch-1")
	// Display rule: enhanced wins for p1, cropped for p2.
	assert.Contains(t, out, "/scans/p1.enhanced.png")
	assert.Contains(t, out, "/scans/p2.png")
	assert.Contains(t, out, "2480x3508")

	// Order: the p1 row precedes the p2 row.
	assert.Less(t, strings.Index(out, "cover"), strings.Index(out, "p2.png"))
}

func TestMarkdownWriter_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownWriter(&buf).Write(batch.Batch{ID: "b"}, nil))

	assert.Contains(t, buf.String(), "no pages")
}

func TestWriteJSON(t *testing.T) {
	b, pages := manifestFixture()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, b, pages))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var header BatchInfo
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &header))
	assert.Equal(t, "batch-1", header.ID)
	assert.Equal(t, 2, header.Pages)

	var first PageInfo
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &first))
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, "/scans/p1.enhanced.png", first.Image)
	assert.Equal(t, "enhanced", first.Variant)

	var second PageInfo
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &second))
	assert.Equal(t, 2, second.Position)
	assert.Equal(t, "cropped", second.Variant)
	assert.Equal(t, 90, second.Rotation)
}
