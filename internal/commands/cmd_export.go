package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/riffle/internal/export"
	"github.com/colonyops/riffle/internal/riffle"
)

type ExportCmd struct {
	flags *Flags
	app   *riffle.App

	// flags
	format string
	output string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *riffle.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Write a batch manifest",
		UsageText: "riffle export [--format markdown|json] [--output FILE] <batch-id>",
		Description: `Writes the batch's ordered page manifest. Markdown produces a readable
document; json produces one object per line for downstream tooling.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (markdown, json)",
				Value:       "markdown",
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write to file instead of stdout",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one batch ID argument")
	}
	batchID := c.Args().First()

	b, err := cmd.app.Store.GetBatch(ctx, batchID)
	if err != nil {
		return fmt.Errorf("get batch %s: %w", batchID, err)
	}
	pages, err := cmd.app.Store.ListPages(ctx, batchID)
	if err != nil {
		return fmt.Errorf("list pages: %w", err)
	}

	var out io.Writer = c.Root().Writer
	if cmd.output != "" {
		f, err := os.Create(cmd.output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	switch cmd.format {
	case "markdown", "md":
		return export.NewMarkdownWriter(out).Write(b, pages)
	case "json":
		return export.WriteJSON(out, b, pages)
	default:
		return fmt.Errorf("unknown format %q (markdown, json)", cmd.format)
	}
}
