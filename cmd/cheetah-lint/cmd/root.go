package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wharflab/cheetah-lint/internal/version"
)

// Exit codes
const (
	ExitSuccess     = 0 // No findings (or below fail-level threshold); no imports reordered
	ExitViolations  = 1 // Findings at or above fail-level, or imports reordered
	ExitConfigError = 2 // Config, I/O or external tool failure
	ExitNoFiles     = 3 // No templates found (missing file, empty glob, empty directory)
)

// NewApp creates the CLI application
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "cheetah-lint",
		Usage:   "A linter and import fixer for Cheetah templates",
		Version: version.Version(),
		// -v is --verbose on the subcommands; use "cheetah-lint version".
		HideVersion: true,
		Description: `cheetah-lint compiles Cheetah templates to Python, checks the result with
flake8 and reports every finding against the template line it came from.
It also checks template style and keeps #import directives sorted.

Examples:
  cheetah-lint flake templates/
  cheetah-lint flake --format json 'templates/**/*.tmpl'
  cheetah-lint reorder-imports templates/page.tmpl`,
		Commands: []*cli.Command{
			flakeCommand(),
			reorderImportsCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI application
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}

func verboseFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Log debug output to stderr",
		Sources: cli.EnvVars("CHEETAH_LINT_VERBOSE"),
	}
}

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to config file (default: auto-discover)",
		Sources: cli.EnvVars("CHEETAH_LINT_CONFIG"),
	}
}

// newLogger returns the stderr logger for a command. Warnings are always
// shown; --verbose adds debug output.
func newLogger(cmd *cli.Command) *slog.Logger {
	level := slog.LevelWarn
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
