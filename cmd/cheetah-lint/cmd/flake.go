package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/wharflab/cheetah-lint/internal/checker"
	"github.com/wharflab/cheetah-lint/internal/compiler"
	"github.com/wharflab/cheetah-lint/internal/config"
	"github.com/wharflab/cheetah-lint/internal/discovery"
	"github.com/wharflab/cheetah-lint/internal/fileval"
	"github.com/wharflab/cheetah-lint/internal/flake"
	"github.com/wharflab/cheetah-lint/internal/procexec"
	"github.com/wharflab/cheetah-lint/internal/processor"
	"github.com/wharflab/cheetah-lint/internal/reporter"
	"github.com/wharflab/cheetah-lint/internal/rules"
	"github.com/wharflab/cheetah-lint/internal/version"
)

func flakeCommand() *cli.Command {
	return &cli.Command{
		Name:      "flake",
		Usage:     "Report flake8 and template findings for Cheetah templates",
		ArgsUsage: "[FILE|DIR|GLOB...]",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, sarif, github-actions, markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path: stdout, stderr, or file path",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Glob pattern to exclude files (can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "select",
				Usage: "Only report codes with these prefixes (e.g. F401, F, T)",
			},
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "Never report codes with these prefixes",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "Number of templates processed concurrently (0 = number of CPUs)",
			},
			&cli.StringFlag{
				Name:  "compiler",
				Usage: "Template compiler command line (reads stdin, writes Python)",
			},
			&cli.StringFlag{
				Name:  "checker",
				Usage: "Python checker command line (default: python -m flake8)",
			},
			&cli.StringFlag{
				Name:  "fail-level",
				Usage: "Minimum severity to cause non-zero exit: error, warning, info, style, none",
			},
			&cli.BoolFlag{
				Name:  "show-source",
				Usage: "Show template snippets under each finding",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "Disable colored output",
				Sources: cli.EnvVars("NO_COLOR"),
			},
			verboseFlag(),
		},
		Action: runFlake,
	}
}

// fileResult is the outcome of linting one template.
type fileResult struct {
	path     string
	source   string
	cfg      *config.Config
	findings []rules.Violation
	err      error
}

// runFlake is the action handler for the flake command.
func runFlake(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd)

	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	// Discovery settings come from the config closest to the first input.
	baseCfg, err := loadConfigForFile(cmd, inputs[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	discovered, err := discovery.Discover(inputs, discovery.Options{
		Patterns:        baseCfg.Discovery.Patterns,
		ExcludePatterns: append(baseCfg.Discovery.Exclude, cmd.StringSlice("exclude")...),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to discover files: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	if len(discovered) == 0 {
		reportNoFilesFound(inputs)
		return cli.Exit("", ExitNoFiles)
	}

	results := lintFiles(ctx, cmd, discovered, baseCfg, logger)

	var (
		violations  []rules.Violation
		failures    []error
		fileSources = make(map[string]string, len(results))
		fileConfigs = make(map[string]*config.Config, len(results))
	)
	for _, res := range results {
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", res.path, res.err)
			failures = append(failures, fmt.Errorf("%s: %w", res.path, res.err))
			continue
		}
		fileSources[res.path] = res.source
		fileConfigs[res.path] = res.cfg
		violations = append(violations, res.findings...)
	}

	procCtx := processor.NewContext(fileConfigs, baseCfg, fileSources)
	violations = processor.CLIProcessors().Process(violations, procCtx)

	exitCode, err := writeReport(cmd, baseCfg, violations, fileSources, len(discovered))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	if len(failures) > 0 {
		logger.Debug("templates failed", slog.Any("errors", errors.Join(failures...)))
		return cli.Exit("", ExitConfigError)
	}
	if exitCode != ExitSuccess {
		return cli.Exit("", exitCode)
	}
	return nil
}

// lintFiles lints every template, at most jobs at a time. Results keep
// discovery order whatever order the workers finish in.
func lintFiles(
	ctx context.Context,
	cmd *cli.Command,
	discovered []discovery.Template,
	baseCfg *config.Config,
	logger *slog.Logger,
) []fileResult {
	jobs := baseCfg.Jobs
	if cmd.IsSet("jobs") {
		jobs = cmd.Int("jobs")
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	runner := procexec.NewRunner(procexec.WithLogger(logger))
	results := make([]fileResult, len(discovered))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, tmpl := range discovered {
		g.Go(func() error {
			results[i] = lintFile(ctx, cmd, tmpl.Path, runner, logger)
			return nil
		})
	}
	_ = g.Wait() // per-file errors are kept in results

	return results
}

func lintFile(ctx context.Context, cmd *cli.Command, path string, runner *procexec.Runner, logger *slog.Logger) fileResult {
	res := fileResult{path: path}

	cfg, err := loadConfigForFile(cmd, path)
	if err != nil {
		res.err = fmt.Errorf("failed to load config: %w", err)
		return res
	}
	res.cfg = cfg

	source, err := fileval.ReadFile(path, cfg.FileValidation.MaxFileSize)
	if err != nil {
		res.err = err
		return res
	}
	res.source = source

	linter, err := newLinter(cfg, runner, logger)
	if err != nil {
		res.err = err
		return res
	}
	res.findings, res.err = linter.Findings(ctx, path, source)
	return res
}

// newLinter wires the external compiler and checker configured in cfg.
func newLinter(cfg *config.Config, runner *procexec.Runner, logger *slog.Logger) (*flake.Linter, error) {
	compileTimeout, err := cfg.Compiler.TimeoutDuration()
	if err != nil {
		return nil, fmt.Errorf("compiler.timeout: %w", err)
	}
	checkTimeout, err := cfg.Checker.TimeoutDuration()
	if err != nil {
		return nil, fmt.Errorf("checker.timeout: %w", err)
	}

	linter := flake.New(
		compiler.NewExec(cfg.Compiler.Command, compileTimeout, runner),
		checker.NewFlake8(cfg.Checker.Command, checkTimeout, runner),
		cfg,
	)
	linter.Logger = logger
	return linter, nil
}

// loadConfigForFile loads configuration for a target file, applying CLI overrides.
func loadConfigForFile(cmd *cli.Command, targetPath string) (*config.Config, error) {
	overrides, err := cliOverrides(cmd)
	if err != nil {
		return nil, err
	}
	return config.LoadWithOverrides(targetPath, cmd.String("config"), overrides)
}

// cliOverrides maps explicitly set flags onto the config file's shape.
func cliOverrides(cmd *cli.Command) (map[string]any, error) {
	overrides := map[string]any{}
	section := func(name string) map[string]any {
		m, ok := overrides[name].(map[string]any)
		if !ok {
			m = map[string]any{}
			overrides[name] = m
		}
		return m
	}

	for _, tool := range []string{"compiler", "checker"} {
		if !cmd.IsSet(tool) {
			continue
		}
		argv, err := parseToolCmd(tool, cmd.String(tool))
		if err != nil {
			return nil, err
		}
		section(tool)["command"] = argv
	}

	if cmd.IsSet("select") {
		section("rules")["select"] = cmd.StringSlice("select")
	}
	if cmd.IsSet("ignore") {
		section("rules")["ignore"] = cmd.StringSlice("ignore")
	}

	for flag, key := range map[string]string{"format": "format", "output": "path", "fail-level": "fail-level"} {
		if cmd.IsSet(flag) {
			section("output")[key] = cmd.String(flag)
		}
	}
	if cmd.IsSet("show-source") {
		section("output")["show-source"] = cmd.Bool("show-source")
	}
	if cmd.IsSet("no-color") && cmd.Bool("no-color") {
		section("output")["color"] = "never"
	}

	if len(overrides) == 0 {
		return nil, nil
	}
	return overrides, nil
}

func parseToolCmd(name, commandLine string) ([]string, error) {
	fields, err := splitCommandLine(commandLine)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	if len(fields) == 0 || fields[0] == "" {
		return nil, fmt.Errorf("--%s is empty", name)
	}
	return fields, nil
}

// writeReport formats and writes the findings and returns the exit code
// they call for.
func writeReport(
	cmd *cli.Command, cfg *config.Config, violations []rules.Violation,
	fileSources map[string]string, filesScanned int,
) (int, error) {
	out := cfg.Output

	formatType, err := reporter.ParseFormat(out.Format)
	if err != nil {
		return ExitConfigError, err
	}
	threshold, failNever, err := parseFailLevel(out.FailLevel)
	if err != nil {
		return ExitConfigError, err
	}

	writer, closeWriter, err := reporter.GetWriter(out.Path)
	if err != nil {
		return ExitConfigError, err
	}
	defer func() {
		if err := closeWriter(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output: %v\n", err)
		}
	}()

	rep, err := reporter.New(reporter.Options{
		Format:      formatType,
		Writer:      writer,
		Color:       resolveColor(out.Color, out.Path),
		ShowSource:  out.ShowSource,
		ToolVersion: version.Version(),
	})
	if err != nil {
		return ExitConfigError, fmt.Errorf("failed to create reporter: %w", err)
	}

	metadata := reporter.ReportMetadata{
		FilesScanned: filesScanned,
		RulesEnabled: len(rules.Codes()) + len(cfg.Checker.Select),
	}
	if err := rep.Report(violations, fileSources, metadata); err != nil {
		return ExitConfigError, fmt.Errorf("failed to write output: %w", err)
	}

	if failNever {
		return ExitSuccess, nil
	}
	return determineExitCode(violations, threshold), nil
}

// resolveColor turns the color setting into a reporter option. nil lets
// the reporter detect color support from the environment.
func resolveColor(mode, path string) *bool {
	enabled := false
	switch mode {
	case "always":
		enabled = true
		return &enabled
	case "never":
		return &enabled
	}
	if path != "" && path != "stdout" {
		return &enabled
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return &enabled
	}
	return nil
}

// determineExitCode returns ExitViolations if any finding meets threshold.
func determineExitCode(violations []rules.Violation, threshold rules.Severity) int {
	for _, v := range violations {
		if v.Severity.IsAtLeast(threshold) {
			return ExitViolations
		}
	}
	return ExitSuccess
}

// parseFailLevel parses a fail-level string. "none" never fails.
func parseFailLevel(level string) (rules.Severity, bool, error) {
	switch level {
	case "none":
		return rules.SeverityOff, true, nil
	case "", "style":
		// Default to "style" (any finding fails)
		return rules.SeverityStyle, false, nil
	default:
		s, err := rules.ParseSeverity(level)
		if err != nil {
			return s, false, fmt.Errorf("invalid fail-level %q: %w", level, err)
		}
		return s, false, nil
	}
}

func reportNoFilesFound(inputs []string) {
	if len(inputs) == 1 {
		fmt.Fprintf(os.Stderr, "Error: no templates found matching %q\n", inputs[0])
		return
	}
	fmt.Fprintf(os.Stderr, "Error: no templates found in %d inputs\n", len(inputs))
}
