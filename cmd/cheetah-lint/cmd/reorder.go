package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/urfave/cli/v3"

	"github.com/wharflab/cheetah-lint/internal/config"
	"github.com/wharflab/cheetah-lint/internal/discovery"
	"github.com/wharflab/cheetah-lint/internal/fileval"
	"github.com/wharflab/cheetah-lint/internal/imports"
	"github.com/wharflab/cheetah-lint/internal/reorder"
)

func reorderImportsCommand() *cli.Command {
	return &cli.Command{
		Name:      "reorder-imports",
		Usage:     "Split, dedupe and sort #import and #from directives in place",
		ArgsUsage: "FILE|DIR|GLOB...",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "diff",
				Usage: "Print a unified diff instead of rewriting files",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Report files that would change without rewriting them",
			},
			&cli.StringSliceFlag{
				Name:  "application-module",
				Usage: "Top-level module sorted into the application group (can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "application-directory",
				Usage: "Directory whose packages belong to the application group (can be repeated)",
			},
			verboseFlag(),
		},
		Action: runReorderImports,
	}
}

// runReorderImports is the action handler for the reorder-imports command.
func runReorderImports(_ context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd)
	out := cmd.Root().Writer

	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no templates given")
		return cli.Exit("", ExitNoFiles)
	}

	baseCfg, err := loadReorderConfig(cmd, inputs[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	discovered, err := discovery.Discover(inputs, discovery.Options{
		Patterns:        baseCfg.Discovery.Patterns,
		ExcludePatterns: baseCfg.Discovery.Exclude,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to discover files: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	if len(discovered) == 0 {
		reportNoFilesFound(inputs)
		return cli.Exit("", ExitNoFiles)
	}

	changed, failed := false, false
	for _, tmpl := range discovered {
		change, err := rewriteTemplate(cmd, tmpl.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", tmpl.Path, err)
			failed = true
			continue
		}
		if !change.HasChanges() {
			logger.Debug("imports already ordered", slog.String("file", tmpl.Path))
			continue
		}
		changed = true

		switch {
		case cmd.Bool("diff"):
			if err := writeDiff(out, change); err != nil {
				return err
			}
		case cmd.Bool("check"):
			fmt.Fprintf(out, "Would reorder imports in %s\n", change.Path)
		default:
			if err := change.Write(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				failed = true
				continue
			}
			fmt.Fprintf(out, "Reordered imports in %s\n", change.Path)
		}
	}

	switch {
	case failed:
		return cli.Exit("", ExitConfigError)
	case changed:
		return cli.Exit("", ExitViolations)
	}
	return nil
}

func rewriteTemplate(cmd *cli.Command, path string) (*reorder.FileChange, error) {
	cfg, err := loadReorderConfig(cmd, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	source, err := fileval.ReadFile(path, cfg.FileValidation.MaxFileSize)
	if err != nil {
		return nil, err
	}
	return reorder.Rewrite(path, source, sorterFor(cfg)), nil
}

func loadReorderConfig(cmd *cli.Command, targetPath string) (*config.Config, error) {
	overrides := map[string]any{}
	if cmd.IsSet("application-module") {
		overrides["application-modules"] = cmd.StringSlice("application-module")
	}
	if cmd.IsSet("application-directory") {
		overrides["application-directories"] = cmd.StringSlice("application-directory")
	}
	if len(overrides) > 0 {
		overrides = map[string]any{"imports": overrides}
	}
	return config.LoadWithOverrides(targetPath, cmd.String("config"), overrides)
}

func sorterFor(cfg *config.Config) imports.Sorter {
	return imports.Sorter{
		ApplicationModules:     cfg.Imports.ApplicationModules,
		ApplicationDirectories: cfg.Imports.ApplicationDirectories,
	}
}

func writeDiff(w io.Writer, change *reorder.FileChange) error {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(change.OriginalContent),
		B:        difflib.SplitLines(change.ModifiedContent),
		FromFile: change.Path,
		ToFile:   change.Path,
		Context:  3,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}
