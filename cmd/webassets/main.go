package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/webassets/cmd/webassets/commands"
	"git.home.luguber.info/inful/webassets/internal/foundation/errors"
	"git.home.luguber.info/inful/webassets/internal/version"
)

func main() {
	var cli commands.CLI
	g := commands.NewGlobal(os.Stdout)

	ctx := kong.Parse(&cli,
		kong.Name("webassets"),
		kong.Description("Resolve and build the asset bundles of a static site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(g),
	)

	err := ctx.Run()
	if merr := cli.WriteMetrics(g); merr != nil && err == nil {
		err = merr
	}
	if err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, g.Logger)
		os.Exit(adapter.Handle(err, os.Stderr))
	}
}
