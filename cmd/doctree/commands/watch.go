package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/doctree/internal/build"
	"git.home.luguber.info/inful/doctree/internal/logfields"
	"git.home.luguber.info/inful/doctree/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output string `short:"o" help:"Output directory for build artifacts (overrides config)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if w.Output != "" {
		cfg.Output.Directory = w.Output
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := build.NewPipeline(cfg)

	rebuild := func() {
		result, err := pipeline.Run(ctx)
		if err != nil {
			slog.Error("Build aborted", logfields.Error(err))
			return
		}
		if err := build.WriteArtifacts(result, cfg.Output.Directory); err != nil {
			slog.Error("Artifact write failed", logfields.Error(err))
		}
		if err := build.WriteIndex(ctx, result, cfg.Output.IndexDB); err != nil {
			slog.Error("Index write failed", logfields.Error(err))
		}
	}

	rebuild()

	watcher, err := watch.New(cfg.Content.Root, cfg.Watch.DebounceDuration())
	if err != nil {
		return err
	}

	err = watcher.Run(ctx, rebuild)
	if err == context.Canceled {
		return nil
	}
	return err
}
