package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/build"
)

// SitemapCmd implements the 'sitemap' command.
type SitemapCmd struct {
	Format string `short:"f" help:"Output format (text|json)" enum:"text,json" default:"text"`
}

type sitemapEntry struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Path       []string `json:"path"`
	Breadcrumb string   `json:"breadcrumb"`
}

func (s *SitemapCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	res, err := build.NewService().Run(context.Background(), build.Request{Config: cfg})
	if err != nil {
		return err
	}

	entries := make([]sitemapEntry, 0, res.Stats.Docs)
	for e := range res.Tree.Flatten() {
		path := e.Path
		if path == nil {
			path = []string{}
		}
		entries = append(entries, sitemapEntry{
			ID:         e.Doc.ID(),
			Label:      e.Doc.DisplayLabel(),
			Path:       path,
			Breadcrumb: e.Breadcrumb(),
		})
	}

	if s.Format == "json" {
		return writeJSON(g.Out, entries)
	}
	for _, e := range entries {
		_, _ = fmt.Fprintf(g.Out, "%s\t%s\n", e.ID, e.Breadcrumb)
	}
	return nil
}
