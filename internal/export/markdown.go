// Package export renders a finalized batch's ordered page manifest.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/colonyops/riffle/internal/core/batch"
	"github.com/colonyops/riffle/internal/core/page"
)

// MarkdownWriter outputs the batch manifest as GitHub-flavored markdown.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write renders the manifest: batch header, ordered page table, summary.
func (w *MarkdownWriter) Write(b batch.Batch, pages []page.Page) error {
	md := markdown.NewMarkdown(w.output)

	title := "Scan Batch"
	if b.Name != "" {
		title = "Scan Batch: " + b.Name
	}
	md.H1(title)
	md.PlainText("")

	meta := [][]string{
		{"Batch ID", b.ID},
		{"Created", b.CreatedAt.Format("2006-01-02 15:04:05")},
	}
	if b.FinalizedAt != nil {
		meta = append(meta, []string{"Finalized", b.FinalizedAt.Format("2006-01-02 15:04:05")})
	}
	meta = append(meta, []string{"Pages", strconv.Itoa(len(pages))})

	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows:   meta,
	})
	md.PlainText("")

	md.H2("Pages")
	md.PlainText("")

	if len(pages) == 0 {
		md.PlainText("The batch contains no pages.")
		md.PlainText("")
		return md.Build()
	}

	rows := make([][]string, 0, len(pages))
	for i, p := range pages {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.DisplayName(),
			p.DisplayImage(),
			string(p.DisplayVariant()),
			dimensions(p),
			strconv.Itoa(int(p.Rotation)) + "°",
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Label", "Image", "Variant", "Dimensions", "Rotation"},
		Rows:   rows,
	})
	md.PlainText("")

	return md.Build()
}

func dimensions(p page.Page) string {
	if p.Meta.Width == 0 && p.Meta.Height == 0 {
		return "-"
	}
	return fmt.Sprintf("%dx%d", p.Meta.Width, p.Meta.Height)
}
