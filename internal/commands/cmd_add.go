package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/riffle/internal/riffle"
	"github.com/colonyops/riffle/pkg/iojson"
)

// addSpec is the JSON input format for riffle add --json.
type addSpec struct {
	Pages []addPage `json:"pages"`
}

type addPage struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

type AddCmd struct {
	flags *Flags
	app   *riffle.App

	// flags
	batchID  string
	label    string
	jsonMode bool
	reader   iojson.FileReader[addSpec]
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *riffle.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Append page images to a batch",
		UsageText: "riffle add [--batch ID] [--label TEXT] <path|glob>...",
		Description: `Appends page images to the end of a batch, in argument order. Arguments
may be plain paths or doublestar globs such as 'scans/**/*.png'.

With --json, reads a {"pages": [{"path": ..., "label": ...}]} document
from --file or stdin instead of arguments.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "batch",
				Aliases:     []string{"b"},
				Usage:       "batch ID (defaults to the latest open batch)",
				Destination: &cmd.batchID,
			},
			&cli.StringFlag{
				Name:        "label",
				Usage:       "label applied to every added page",
				Destination: &cmd.label,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "read pages as JSON from --file or stdin",
				Destination: &cmd.jsonMode,
			},
			cmd.reader.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	svc := cmd.app.Batches

	if cmd.batchID != "" {
		if err := svc.Open(ctx, cmd.batchID); err != nil {
			return fmt.Errorf("open batch %s: %w", cmd.batchID, err)
		}
	} else {
		if err := svc.OpenLatest(ctx); err != nil {
			return fmt.Errorf("open latest batch: %w", err)
		}
	}

	pages, err := cmd.resolvePages(c)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page images to add")
	}

	for _, spec := range pages {
		p, err := svc.AddFromFile(ctx, spec.Path)
		if err != nil {
			return fmt.Errorf("add %s: %w", spec.Path, err)
		}
		if spec.Label != "" {
			p.Label = spec.Label
			if err := svc.Collection().ReplaceByID(p.ID, p); err != nil {
				return fmt.Errorf("label %s: %w", spec.Path, err)
			}
		}
		fmt.Fprintf(c.Root().Writer, "added %s as page %d\n", spec.Path, svc.Collection().Len())
	}

	return nil
}

// resolvePages expands arguments (or the JSON document) into page specs.
func (cmd *AddCmd) resolvePages(c *cli.Command) ([]addPage, error) {
	if cmd.jsonMode {
		spec, err := cmd.reader.Read()
		if err != nil {
			return nil, err
		}
		return spec.Pages, nil
	}

	var pages []addPage
	for _, arg := range c.Args().Slice() {
		matches, err := expandArg(arg)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", arg, err)
		}
		for _, m := range matches {
			pages = append(pages, addPage{Path: m, Label: cmd.label})
		}
	}
	return pages, nil
}

func expandArg(arg string) ([]string, error) {
	// Plain paths pass through untouched so a missing file errors at import
	// with a useful message rather than silently matching nothing.
	base, pattern := doublestar.SplitPattern(filepath.ToSlash(arg))
	if !containsMeta(pattern) {
		return []string{arg}, nil
	}

	matches, err := doublestar.Glob(os.DirFS(base), pattern)
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = filepath.Join(base, filepath.FromSlash(m))
	}
	return matches, nil
}

func containsMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
