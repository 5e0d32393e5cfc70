package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docnav/internal/build"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// ResolveCmd implements the 'resolve' command. An unknown id is a warning,
// not a failure: callers render it as a broken link.
type ResolveCmd struct {
	ID string `arg:"" name:"id" help:"Document id to look up"`
}

func (r *ResolveCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	res, err := build.NewService().Run(context.Background(), build.Request{Config: cfg})
	if err != nil {
		return err
	}

	entry, ok := res.Tree.Resolve(r.ID)
	if !ok {
		slog.Warn("Document not found in navigation", logfields.DocID(r.ID), logfields.Sidebar(res.Sidebar))
		return nil
	}
	_, _ = fmt.Fprintln(g.Out, entry.Breadcrumb())
	return nil
}
