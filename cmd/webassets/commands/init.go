package commands

import (
	"fmt"
	"io"

	"git.home.luguber.info/inful/webassets/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing settings file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	return RunInit(g.Out, root.Config, i.Force)
}

func RunInit(out io.Writer, path string, force bool) error {
	_, _ = fmt.Fprintf(out, "Writing example settings to %s\n", path)
	if err := config.Init(path, force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
