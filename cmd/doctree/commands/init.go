package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/doctree/internal/config"
	"git.home.luguber.info/inful/doctree/internal/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = config.DefaultConfigFile
	}

	if _, err := os.Stat(path); err == nil && !i.Force {
		return errors.New(errors.CategoryConfig, errors.SeverityFatal, "configuration file already exists (use --force to overwrite)").
			WithContext("path", path)
	}

	if err := os.WriteFile(path, []byte(config.Sample()), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "write configuration file").
			WithContext("path", path)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
