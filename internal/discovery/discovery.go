// Package discovery finds Cheetah templates from file, directory and glob inputs.
package discovery

import (
	"cmp"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Template is a template found during discovery.
type Template struct {
	// Path is the path as it should be reported. Explicit file inputs keep
	// the path the user typed; directory and glob matches are absolute.
	Path string

	// ConfigRoot is the directory config discovery starts from.
	ConfigRoot string
}

// Options configures discovery.
type Options struct {
	// Patterns select template files inside directories (default: DefaultPatterns()).
	Patterns []string

	// ExcludePatterns drop matching files from the result.
	ExcludePatterns []string
}

// DefaultPatterns returns the file name patterns of Cheetah templates.
func DefaultPatterns() []string {
	return []string{"*.tmpl"}
}

// Discover expands inputs into templates. Each input is a file, a
// directory searched recursively, or a doublestar glob.
//
// Results are deduplicated by absolute path and sorted by Path.
func Discover(inputs []string, opts Options) ([]Template, error) {
	if len(opts.Patterns) == 0 {
		opts.Patterns = DefaultPatterns()
	}

	d := &discoverer{opts: opts, seen: make(map[string]bool)}
	for _, input := range inputs {
		if err := d.input(input); err != nil {
			return nil, err
		}
	}

	slices.SortFunc(d.results, func(a, b Template) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return d.results, nil
}

type discoverer struct {
	opts    Options
	seen    map[string]bool
	results []Template
}

func (d *discoverer) input(input string) error {
	// Glob characters are never stat'ed: os.Stat rejects them on Windows.
	if containsGlobChars(input) {
		return d.glob(input)
	}

	info, err := os.Stat(input)
	switch {
	case err == nil && info.IsDir():
		return d.directory(input)
	case err == nil:
		return d.add(input, true)
	case errors.Is(err, fs.ErrNotExist):
		return d.glob(input)
	default:
		return err
	}
}

func containsGlobChars(path string) bool {
	return strings.ContainsAny(path, "*?[]{")
}

func (d *discoverer) directory(dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	for _, pattern := range d.opts.Patterns {
		if err := d.glob(filepath.Join(absDir, "**", pattern)); err != nil {
			return err
		}
	}
	return nil
}

func (d *discoverer) glob(pattern string) error {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return err
	}
	for _, match := range matches {
		if err := d.add(match, false); err != nil {
			return err
		}
	}
	return nil
}

// add records path unless it is excluded or already seen. keepPath
// preserves the caller's spelling of the path.
func (d *discoverer) add(path string, keepPath bool) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if d.seen[absPath] || IsExcluded(absPath, d.opts.ExcludePatterns) {
		return nil
	}
	d.seen[absPath] = true

	if !keepPath {
		path = absPath
	}
	d.results = append(d.results, Template{
		Path:       path,
		ConfigRoot: filepath.Dir(absPath),
	})
	return nil
}

// IsExcluded reports whether absPath matches any exclusion pattern.
//
// A pattern matches the full path, the base name, or any trailing run
// of path components, so "vendor/*" excludes direct children of every
// vendor directory. Matching is done on forward-slash paths, which is
// what doublestar expects on every platform.
func IsExcluded(absPath string, excludePatterns []string) bool {
	if len(excludePatterns) == 0 {
		return false
	}
	parts := splitPath(absPath)
	candidates := make([]string, 0, len(parts)+1)
	candidates = append(candidates, filepath.ToSlash(absPath))
	for i := range parts {
		candidates = append(candidates, strings.Join(parts[i:], "/"))
	}

	for _, pattern := range excludePatterns {
		pattern = filepath.ToSlash(pattern)
		for _, candidate := range candidates {
			if matched, err := doublestar.Match(pattern, candidate); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// splitPath returns the components of path without root or volume.
// "/home/user/vendor/a.tmpl" gives ["home", "user", "vendor", "a.tmpl"].
func splitPath(path string) []string {
	path = strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), filepath.ToSlash(filepath.VolumeName(path)))
	var parts []string
	for part := range strings.SplitSeq(path, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}
