package commands

import (
	"context"
	"fmt"
	"sort"

	"git.home.luguber.info/inful/doctree/internal/build"
	doctreeroutes "git.home.luguber.info/inful/doctree/internal/routes"
)

// RoutesCmd implements the 'routes' command.
type RoutesCmd struct{}

func (r *RoutesCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	pipeline := build.NewPipeline(cfg)
	result, err := pipeline.Run(context.Background())
	if err != nil {
		return err
	}

	if result.Failed() {
		printReport(result)
		return verdictError(result)
	}

	routes := make([]string, 0, len(result.Routes))
	for route := range result.Routes {
		routes = append(routes, route)
	}
	sort.Strings(routes)

	for _, route := range routes {
		display := "/" + route
		if route == doctreeroutes.RootRoute {
			display = doctreeroutes.RootRoute
		}
		fmt.Printf("%s\t%s\n", display, result.Routes[route])
	}
	return nil
}
