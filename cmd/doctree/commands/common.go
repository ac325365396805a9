package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/doctree/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"doctree.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" help:"Run the full content build and write artifacts"`
	Check  CheckCmd  `cmd:"" help:"Validate content without writing artifacts"`
	Routes RoutesCmd `cmd:"" help:"Print the resolved route table"`
	Watch  WatchCmd  `cmd:"" help:"Rebuild on content changes"`
	Daemon DaemonCmd `cmd:"" help:"Run continuously with metrics and scheduled rebuilds"`
	Init   InitCmd   `cmd:"" help:"Write a starter configuration file"`
}

// AfterApply runs after flag parsing; sets up logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// logLevel resolves the level from the verbose flag and DOCTREE_LOG_LEVEL.
// The env var wins so CI can turn on debug output without flag plumbing.
func logLevel(verbose bool) slog.Level {
	switch strings.ToLower(os.Getenv("DOCTREE_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// loadConfig loads and normalizes the configuration for a command.
func loadConfig(root *CLI) (*config.Config, error) {
	return config.Load(root.Config)
}
