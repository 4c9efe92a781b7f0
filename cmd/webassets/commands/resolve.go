package commands

import (
	"context"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct{}

func (r *ResolveCmd) Run(g *Global, root *CLI) error {
	sess, err := root.open(context.Background(), g, false)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(g.Out)
	enc.SetIndent(2)
	if err := enc.Encode(sess.env.Snapshot()); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "encode environment").Build()
	}
	return enc.Close()
}
