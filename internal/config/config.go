// Package config provides configuration loading and discovery for
// cheetah-lint.
//
// Configuration is loaded from multiple sources with the following priority
// (highest to lowest):
//  1. CLI flags
//  2. Environment variables (CHEETAH_LINT_* prefix)
//  3. Config file (closest .cheetah-lint.toml or cheetah-lint.toml)
//  4. Built-in defaults
//
// Config file discovery walks up from the target template's directory until
// a config file is found. The closest config wins (no merging).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigFileNames defines the config file names to search for, in priority order.
var ConfigFileNames = []string{".cheetah-lint.toml", "cheetah-lint.toml"}

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "CHEETAH_LINT_"

// Config represents the complete cheetah-lint configuration.
type Config struct {
	// Compiler configures the template compiler process.
	Compiler ToolConfig `json:"compiler" koanf:"compiler"`

	// Checker configures the Python checker process.
	Checker CheckerConfig `json:"checker" koanf:"checker"`

	// Flake tunes how checker findings are mapped and filtered.
	Flake FlakeConfig `json:"flake" koanf:"flake"`

	// Rules selects codes and overrides severities.
	Rules RulesConfig `json:"rules" koanf:"rules"`

	// Imports configures import grouping for reorder-imports.
	Imports ImportsConfig `json:"imports" koanf:"imports"`

	// Output configures output format and destination.
	Output OutputConfig `json:"output" koanf:"output"`

	// Discovery configures which files directory arguments expand to.
	Discovery DiscoveryConfig `json:"discovery" koanf:"discovery"`

	// FileValidation configures pre-read file validation checks.
	FileValidation FileValidationConfig `json:"file-validation" koanf:"file-validation"`

	// Jobs is the number of templates processed concurrently (0 = GOMAXPROCS).
	Jobs int `json:"jobs,omitempty" koanf:"jobs"`

	// ConfigFile is the path to the config file that was loaded (if any).
	// This is metadata, not loaded from config.
	ConfigFile string `json:"-" koanf:"-"`
}

// ToolConfig configures an external tool.
//
// Example TOML configuration:
//
//	[compiler]
//	command = ["python3", "/opt/tools/compile.py"]
//	timeout = "30s"
type ToolConfig struct {
	// Command is the argv. Empty means the built-in default.
	Command []string `json:"command,omitempty" koanf:"command"`

	// Timeout bounds a single invocation (e.g. "30s"; "0" = no limit).
	Timeout string `json:"timeout,omitempty" koanf:"timeout"`
}

// TimeoutDuration parses Timeout.
func (t ToolConfig) TimeoutDuration() (time.Duration, error) {
	return parseTimeout(t.Timeout)
}

// CheckerConfig configures the Python checker.
type CheckerConfig struct {
	// Command is the argv. Empty means "python -m flake8".
	Command []string `json:"command,omitempty" koanf:"command"`

	// Timeout bounds a single invocation.
	Timeout string `json:"timeout,omitempty" koanf:"timeout"`

	// Select lists the checker codes passed to --select.
	Select []string `json:"select,omitempty" koanf:"select"`
}

// TimeoutDuration parses Timeout.
func (c CheckerConfig) TimeoutDuration() (time.Duration, error) {
	return parseTimeout(c.Timeout)
}

// FlakeConfig tunes the diagnostic pipeline.
//
// Example TOML configuration:
//
//	[flake]
//	reference-codes = ["F402", "F811", "F812"]
//
//	[flake.benign]
//	unused-assignments = ["_dummyTrans", "NS"]
//	unused-imports = ["Cheetah.NameMapper.value_from_namespace as VFNS"]
type FlakeConfig struct {
	// ReferenceCodes are checker codes whose "from line N" message text is
	// mapped to template lines too.
	ReferenceCodes []string `json:"reference-codes,omitempty" koanf:"reference-codes"`

	// Benign lists findings the compiler causes on valid templates.
	Benign BenignConfig `json:"benign" koanf:"benign"`
}

// BenignConfig lists names whose F841/F401 findings are dropped.
type BenignConfig struct {
	// UnusedAssignments are local names the compiler assigns in every method.
	UnusedAssignments []string `json:"unused-assignments,omitempty" koanf:"unused-assignments"`

	// UnusedImports are imports the compiler adds to every module.
	UnusedImports []string `json:"unused-imports,omitempty" koanf:"unused-imports"`
}

// ImportsConfig configures import grouping.
//
// Example TOML configuration:
//
//	[imports]
//	application-modules = ["myapp", "templates"]
//	application-directories = ["."]
type ImportsConfig struct {
	// ApplicationModules are top-level modules sorted into the application group.
	ApplicationModules []string `json:"application-modules,omitempty" koanf:"application-modules"`

	// ApplicationDirectories are scanned for top-level packages and modules
	// that belong to the application group.
	ApplicationDirectories []string `json:"application-directories,omitempty" koanf:"application-directories"`
}

// OutputConfig configures output formatting and behavior.
type OutputConfig struct {
	// Format specifies the output format.
	Format string `json:"format,omitempty" koanf:"format"`

	// Path specifies where to write output.
	Path string `json:"path,omitempty" koanf:"path"`

	// ShowSource enables source code snippets in text output.
	ShowSource bool `json:"show-source,omitempty" koanf:"show-source"`

	// FailLevel sets the minimum severity level that causes a non-zero exit code.
	FailLevel string `json:"fail-level,omitempty" koanf:"fail-level"`

	// Color is auto, always or never.
	Color string `json:"color,omitempty" koanf:"color"`
}

// DiscoveryConfig configures file discovery.
type DiscoveryConfig struct {
	// Patterns are globs matched when a directory is given.
	Patterns []string `json:"patterns,omitempty" koanf:"patterns"`

	// Exclude are globs for paths never linted.
	Exclude []string `json:"exclude,omitempty" koanf:"exclude"`
}

// FileValidationConfig configures pre-read file validation checks.
//
// Example TOML configuration:
//
//	[file-validation]
//	max-file-size = 1048576
type FileValidationConfig struct {
	// MaxFileSize is the maximum file size in bytes (0 = unlimited).
	MaxFileSize int64 `json:"max-file-size,omitempty" koanf:"max-file-size"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Compiler: ToolConfig{Timeout: "30s"},
		Checker: CheckerConfig{
			Timeout: "30s",
			Select: []string{
				"F401", "F402", "F403", "F601", "F602", "F632", "F811", "F812", "F841",
				"E711", "E712", "E713", "E714", "E999", "W601", "W605",
			},
		},
		Flake: FlakeConfig{
			ReferenceCodes: []string{"F402", "F811", "F812"},
			Benign: BenignConfig{
				UnusedAssignments: []string{"_dummyTrans", "NS"},
				UnusedImports:     []string{"Cheetah.NameMapper.value_from_namespace as VFNS"},
			},
		},
		Imports: ImportsConfig{
			ApplicationDirectories: []string{"."},
		},
		Output: OutputConfig{
			Format:     "text",
			Path:       "stdout",
			ShowSource: false,
			FailLevel:  "style", // Any finding causes exit code 1
			Color:      "auto",
		},
		Discovery: DiscoveryConfig{
			Patterns: []string{"*.tmpl"},
		},
		FileValidation: FileValidationConfig{
			MaxFileSize: 1024 * 1024, // 1 MiB
		},
	}
}

// Load loads configuration for a target file path.
// It discovers the closest config file, loads it, and applies
// environment variable overrides.
func Load(targetPath string) (*Config, error) {
	return loadWithConfigPathAndOverrides(Discover(targetPath), nil)
}

// LoadFromFile loads configuration from a specific config file path.
// Unlike Load, it does not perform config discovery.
func LoadFromFile(configPath string) (*Config, error) {
	return loadWithConfigPathAndOverrides(configPath, nil)
}

func decodeConfig(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	return k.Load(structs.Provider(Default(), "koanf"), nil)
}

// knownHyphenatedKeys maps dot-separated patterns to their hyphenated equivalents.
var knownHyphenatedKeys = map[string]string{
	"reference.codes":         "reference-codes",
	"unused.assignments":      "unused-assignments",
	"unused.imports":          "unused-imports",
	"application.modules":     "application-modules",
	"application.directories": "application-directories",
	"show.source":             "show-source",
	"fail.level":              "fail-level",
	"file.validation":         "file-validation",
	"max.file.size":           "max-file-size",
}

var allowedEnvTopLevelKeys = map[string]struct{}{
	"compiler":        {},
	"checker":         {},
	"flake":           {},
	"rules":           {},
	"imports":         {},
	"output":          {},
	"discovery":       {},
	"file-validation": {},
	"jobs":            {},
}

// listKeys are keys whose environment values are comma-separated lists.
var listKeys = map[string]struct{}{
	"compiler.command":                {},
	"checker.command":                 {},
	"checker.select":                  {},
	"flake.reference-codes":           {},
	"rules.select":                    {},
	"rules.ignore":                    {},
	"imports.application-modules":     {},
	"imports.application-directories": {},
	"discovery.patterns":              {},
	"discovery.exclude":               {},
}

// envKeyTransform converts environment variable names to config keys.
// CHEETAH_LINT_OUTPUT_FORMAT -> output.format
// CHEETAH_LINT_CHECKER_SELECT=F401,F811 -> checker.select = [F401 F811]
func envKeyTransform(k, v string) (string, any) {
	s := strings.TrimPrefix(k, EnvPrefix)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", ".")
	for pattern, replacement := range knownHyphenatedKeys {
		s = strings.ReplaceAll(s, pattern, replacement)
	}

	topLevel := s
	if before, _, ok := strings.Cut(s, "."); ok {
		topLevel = before
	}
	if _, ok := allowedEnvTopLevelKeys[topLevel]; !ok {
		return "", nil
	}

	if _, ok := listKeys[s]; ok {
		return s, splitList(v)
	}
	return s, v
}

func splitList(v string) []any {
	var out []any
	for item := range strings.SplitSeq(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Discover finds the closest config file for a target file path.
// It walks up the directory tree from the target's directory,
// checking for config files at each level.
// Returns empty string if no config file is found.
func Discover(targetPath string) string {
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return ""
	}

	dir := filepath.Dir(absPath)
	for {
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(dir, name)
			if fileExists(configPath) {
				return configPath
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", s)
	}
	return d, nil
}
