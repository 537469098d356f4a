package commands

import (
	"context"
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/riffle/internal/core/batch"
	"github.com/colonyops/riffle/internal/riffle"
	"github.com/colonyops/riffle/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *riffle.App

	// flags
	jsonOutput bool
	pagesOf    string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *riffle.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List all batches",
		UsageText: "riffle ls [--json]",
		Description: `Displays a table of all batches with their name, state, page count,
and creation time. Use --json for machine-readable output.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "pages",
				Usage:       "list the ordered pages of the given batch instead",
				Destination: &cmd.pagesOf,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.pagesOf != "" {
		return cmd.runPages(ctx, c)
	}

	batches, err := cmd.app.Store.ListBatches(ctx)
	if err != nil {
		return fmt.Errorf("list batches: %w", err)
	}

	if len(batches) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No batches found\n")
		}
		return nil
	}

	// Newest first
	slices.SortFunc(batches, func(a, b batch.Batch) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, b := range batches {
			info, err := cmd.buildBatchInfo(ctx, b)
			if err != nil {
				return err
			}
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode batch: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSTATE\tPAGES\tCREATED")

	for _, b := range batches {
		pgs, err := cmd.app.Store.ListPages(ctx, b.ID)
		if err != nil {
			return fmt.Errorf("list pages for %s: %w", b.ID, err)
		}
		state := "open"
		if b.Finalized() {
			state = "finalized"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			b.ID, b.Name, state, len(pgs), b.CreatedAt.Format("2006-01-02 15:04"))
	}

	return w.Flush()
}

// runPages lists one batch's pages in display order.
func (cmd *LsCmd) runPages(ctx context.Context, c *cli.Command) error {
	b, err := cmd.app.Store.GetBatch(ctx, cmd.pagesOf)
	if err != nil {
		return fmt.Errorf("get batch %s: %w", cmd.pagesOf, err)
	}
	pgs, err := cmd.app.Store.ListPages(ctx, b.ID)
	if err != nil {
		return fmt.Errorf("list pages: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for i, p := range pgs {
			line := map[string]any{
				"position": i + 1,
				"id":       p.ID,
				"label":    p.Label,
				"image":    p.DisplayImage(),
				"variant":  string(p.DisplayVariant()),
			}
			if err := iojson.WriteLine(out, line); err != nil {
				return fmt.Errorf("encode page: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tID\tLABEL\tIMAGE\tVARIANT")
	for i, p := range pgs {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			i+1, p.ID, p.Label, p.DisplayImage(), p.DisplayVariant())
	}
	return w.Flush()
}

// batchInfo is the JSON output format for riffle ls --json.
type batchInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	Pages     int    `json:"pages"`
	CreatedAt string `json:"created_at"`
}

func (cmd *LsCmd) buildBatchInfo(ctx context.Context, b batch.Batch) (batchInfo, error) {
	pgs, err := cmd.app.Store.ListPages(ctx, b.ID)
	if err != nil {
		return batchInfo{}, fmt.Errorf("list pages for %s: %w", b.ID, err)
	}

	state := "open"
	if b.Finalized() {
		state = "finalized"
	}

	return batchInfo{
		ID:        b.ID,
		Name:      b.Name,
		State:     state,
		Pages:     len(pgs),
		CreatedAt: b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
