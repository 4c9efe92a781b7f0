package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/webassets/internal/assets"
)

// URLCmd implements the 'url' command.
type URLCmd struct {
	Paths []string `arg:"" help:"Paths relative to the static directory"`
	Depth int      `help:"Page depth below the output root, for RELATIVE_URLS sites" default:"0"`
}

func (u *URLCmd) Run(g *Global, root *CLI) error {
	sess, err := root.open(context.Background(), g, false)
	if err != nil {
		return err
	}
	env := sess.env
	site := sess.settings.SiteURL
	if sess.settings.RelativeURLs {
		site = assets.RelativeSiteURL(u.Depth)
	}
	for _, p := range u.Paths {
		if _, err := fmt.Fprintln(g.Out, assets.ComposeURL(site, env.URLFor(p))); err != nil {
			return err
		}
	}
	return nil
}
