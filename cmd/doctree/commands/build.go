package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/doctree/internal/build"
	"git.home.luguber.info/inful/doctree/internal/errors"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory for build artifacts (overrides config)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}

	ctx := context.Background()
	pipeline := build.NewPipeline(cfg)
	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	if err := build.WriteArtifacts(result, cfg.Output.Directory); err != nil {
		return err
	}
	if err := build.WriteIndex(ctx, result, cfg.Output.IndexDB); err != nil {
		return err
	}

	printReport(result)

	return verdictError(result)
}

// printReport writes the human-readable build summary to stdout.
func printReport(result *build.Result) {
	report := result.Report

	fmt.Printf("Build %s: %s\n", report.BuildID, report.Outcome)
	fmt.Printf("  documents: %d, routes: %d\n", report.Documents, report.Routes)

	for _, msg := range report.LoadErrors {
		fmt.Printf("  load error: %s\n", msg)
	}
	for _, issue := range report.Issues {
		fmt.Printf("  %s\n", issue)
	}
	for _, msg := range report.Collisions {
		fmt.Printf("  %s\n", msg)
	}
}

// verdictError converts a failed verdict into a typed error so the process
// exit code reflects the build result.
func verdictError(result *build.Result) error {
	if !result.Failed() {
		return nil
	}
	if len(result.Report.Collisions) > 0 {
		return errors.New(errors.CategoryRoute, errors.SeverityFatal, "build failed: route collisions").
			WithContext("collisions", len(result.Report.Collisions))
	}
	return errors.New(errors.CategoryValidation, errors.SeverityFatal, "build failed: content validation errors")
}
