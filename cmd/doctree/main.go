package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/doctree/cmd/doctree/commands"
	"git.home.luguber.info/inful/doctree/internal/errors"
	"git.home.luguber.info/inful/doctree/internal/version"
)

func main() {
	cli := commands.CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("doctree"),
		kong.Description("Content collection routing and navigation tree builder for documentation sites."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	err := ctx.Run(&commands.Global{})
	errors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
}
