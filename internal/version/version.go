// Package version reports build metadata for cheetah-lint.
package version

import (
	"runtime"
	"runtime/debug"
	"slices"
)

// version is set at link time with -ldflags "-X ...version.version=v1.2.3".
var version = "dev"

// Version returns the semantic version string.
func Version() string {
	return version
}

// GoVersion returns the Go toolchain version used for the build.
func GoVersion() string {
	return runtime.Version()
}

// Commit returns the abbreviated VCS revision embedded by the Go
// toolchain, or "" when the binary was built without VCS stamping.
func Commit() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	idx := slices.IndexFunc(info.Settings, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	})
	if idx < 0 {
		return ""
	}
	rev := info.Settings[idx].Value
	if len(rev) > 12 {
		rev = rev[:12]
	}
	return rev
}

// Info holds structured version information for machine-readable output.
type Info struct {
	Version   string   `json:"version"`
	Platform  Platform `json:"platform"`
	GoVersion string   `json:"goVersion"`
	GitCommit string   `json:"gitCommit,omitempty"`
}

// Platform describes the OS and architecture.
type Platform struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// GetInfo returns structured version information.
func GetInfo() Info {
	return Info{
		Version: Version(),
		Platform: Platform{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
		GoVersion: GoVersion(),
		GitCommit: Commit(),
	}
}
