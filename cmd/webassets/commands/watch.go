package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/webassets/internal/config"
	"git.home.luguber.info/inful/webassets/internal/logfields"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `help:"Quiet period before re-resolving" default:"300ms"`
	Build    bool          `help:"Also rebuild bundles after each resolution"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	if err := w.refresh(ctx, g, root); err != nil {
		return err
	}

	watcher, err := config.NewWatcher(root.Config, w.Debounce, func() {
		if err := w.refresh(ctx, g, root); err != nil {
			g.Logger.Error("Re-resolution failed", logfields.Error(err))
		}
	})
	if err != nil {
		return err
	}
	g.Logger.Info("Watching settings", logfields.Path(root.Config))
	return watcher.Run(ctx)
}

func (w *WatchCmd) refresh(ctx context.Context, g *Global, root *CLI) error {
	sess, err := root.open(ctx, g, w.Build)
	if err != nil {
		return err
	}
	env := sess.env
	if w.Build {
		if _, err := sess.plugin.Runner().BuildAll(ctx); err != nil {
			return err
		}
	}
	g.Logger.Info("Asset environment ready",
		logfields.BuildID(env.BuildID()),
		logfields.URL(env.URL()),
		logfields.Debug(env.Debug()),
		"bundles", env.Bundles().Len())
	return nil
}
