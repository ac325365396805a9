package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/doctree/internal/daemon"
)

// DaemonCmd implements the 'daemon' command.
type DaemonCmd struct{}

func (d *DaemonCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dm, err := daemon.New(cfg)
	if err != nil {
		return err
	}
	return dm.Run(ctx)
}
