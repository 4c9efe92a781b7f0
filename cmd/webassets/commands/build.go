package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/webassets/internal/logfields"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Manifest string `help:"Write a bundle name to output path manifest (YAML) to this file"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, err := root.open(ctx, g, true)
	if err != nil {
		return err
	}
	runner := sess.plugin.Runner()
	results, err := runner.BuildAll(ctx)
	if err != nil {
		return err
	}

	env := sess.env
	for _, res := range results {
		status := "built"
		if res.Skipped {
			status = "up to date"
		}
		if _, err := fmt.Fprintf(g.Out, "%s\t%s\t%s\n", res.Bundle, env.URLFor(res.Output), status); err != nil {
			return err
		}
	}

	if b.Manifest != "" {
		if err := runner.Manifest.Save(b.Manifest); err != nil {
			return err
		}
		g.Logger.Info("Wrote bundle manifest", logfields.Path(b.Manifest))
	}
	g.Logger.Info("Bundles built", "count", len(results))
	return nil
}
