package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/doctree/internal/build"
)

// CheckCmd implements the 'check' command: the full pipeline runs so route
// collisions surface too, but nothing is written.
type CheckCmd struct {
	Strict bool `help:"Treat warnings as errors"`
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	pipeline := build.NewPipeline(cfg)
	result, err := pipeline.Run(context.Background())
	if err != nil {
		return err
	}

	printReport(result)

	if c.Strict && result.Report.Outcome == build.OutcomeWarning {
		fmt.Println("strict mode: warnings are treated as errors")
		result.Report.Outcome = build.OutcomeFailed
	}

	return verdictError(result)
}
