package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if dte, ok := err.(*DocTreeError); ok {
		return a.exitCodeFromDocTree(dte)
	}

	return 1
}

// exitCodeFromDocTree maps DocTreeError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromDocTree(err *DocTreeError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid content metadata
	case CategoryRoute:
		return 3 // Route collision
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryFileSystem, CategoryBuild:
		return 11 // Build error
	case CategoryDaemon:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if dte, ok := err.(*DocTreeError); ok {
		if a.verbose {
			return dte.Error()
		}
		switch dte.Category {
		case CategoryConfig, CategoryValidation:
			return dte.Message
		default:
			return fmt.Sprintf("%s: %s", dte.Category, dte.Message)
		}
	}

	return fmt.Sprintf("Error: %v", err)
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.verbose {
		a.logger.Error("command failed", slog.String("error", err.Error()))
	}

	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(exitCode)
}
