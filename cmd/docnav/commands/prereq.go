package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/prereq"
)

// PrereqCmd implements the 'prereq' command.
type PrereqCmd struct {
	File   string `arg:"" name:"file" help:"Markdown or MDX document" type:"existingfile"`
	Format string `short:"f" help:"Output format (markdown|json)" enum:"markdown,json" default:"markdown"`
}

type prereqJSON struct {
	Line     int      `json:"line"`
	Degraded bool     `json:"degraded"`
	Error    string   `json:"error,omitempty"`
	Items    []string `json:"items"`
	Markdown string   `json:"markdown"`
}

func (p *PrereqCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	defaults, err := cfg.PrerequisiteDefaults()
	if err != nil {
		return err
	}

	// #nosec G304 -- the document path is given by the user on the command line.
	content, err := os.ReadFile(p.File)
	if err != nil {
		return ferrors.FileSystemError("failed to read document").WithCause(err).
			WithContext("path", p.File).
			Build()
	}
	doc, err := frontmatter.Parse(content)
	if err != nil {
		return ferrors.MarkdownError("invalid front matter").WithCause(err).
			WithContext("file", p.File).
			Build()
	}

	found := prereq.FindBlocks(doc.Body)
	if len(found) == 0 {
		slog.Warn("Document has no <Prerequisites> element", logfields.File(p.File))
		return nil
	}

	merger := prereq.NewMerger(prereq.WithSource(p.File))
	blocks := make([]prereqJSON, 0, len(found))
	for _, occ := range found {
		block := merger.Merge(context.Background(), defaults, prereq.ParseContent(occ.Content))
		entry := prereqJSON{
			Line:     doc.BodyLine + occ.Line - 1,
			Degraded: block.Degraded,
			Items:    block.Plain(),
			Markdown: block.Markdown(),
		}
		if block.Err != nil {
			entry.Error = block.Err.Error()
		}
		blocks = append(blocks, entry)
	}

	if p.Format == "json" {
		return writeJSON(g.Out, blocks)
	}
	for i, b := range blocks {
		if i > 0 {
			_, _ = fmt.Fprintln(g.Out)
		}
		_, _ = fmt.Fprint(g.Out, b.Markdown)
	}
	return nil
}
