package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// starterOutline is written next to a new configuration when no outline exists yet.
const starterOutline = `docs:
  - intro
  - type: category
    label: Tutorials
    items:
      - tutorials/getting_started/intro
`

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	_, _ = fmt.Fprintf(g.Out, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}

	outlinePath := filepath.Join(filepath.Dir(root.Config), config.DefaultOutline)
	if _, err := os.Stat(outlinePath); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(outlinePath, []byte(starterOutline), 0o644); err != nil {
			return ferrors.FileSystemError("failed to write starter outline").WithCause(err).
				WithContext("path", outlinePath).
				Build()
		}
		_, _ = fmt.Fprintf(g.Out, "Writing starter outline to %s\n", outlinePath)
	}
	_, _ = fmt.Fprintln(g.Out, "initialized successfully")
	return nil
}
