package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/build"
	"git.home.luguber.info/inful/docnav/internal/docs"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// CheckCmd implements the 'check' command. Findings are logged as warnings;
// only --strict turns them into a failing exit code.
type CheckCmd struct {
	Strict bool `help:"Exit non-zero when the check reports warnings"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	res, err := build.NewService().Run(context.Background(), build.Request{Config: cfg, CheckDocs: true})
	if err != nil {
		return err
	}

	rep := res.Check
	_, _ = fmt.Fprintf(g.Out, "sidebar %s: %d leaves, %d documents\n", res.Sidebar, rep.Leaves, rep.Docs)
	for _, kind := range []docs.IssueKind{
		docs.IssueMissingBody,
		docs.IssueBrokenLink,
		docs.IssueMalformedPrerequisites,
		docs.IssueUnlisted,
	} {
		_, _ = fmt.Fprintf(g.Out, "  %-24s %d\n", kind, rep.Count(kind))
	}

	if c.Strict && rep.Warnings() > 0 {
		return ferrors.ValidationError("documentation check reported warnings").
			WithContext("warnings", rep.Warnings()).
			Build()
	}
	return nil
}
