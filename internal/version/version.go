// Package version reports build information for the mdinclude binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// These variables are set at build time using -ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	// BuildTime is RFC3339.
	BuildTime = "unknown"
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string    `yaml:"version"`
	GitCommit string    `yaml:"git_commit"`
	BuildTime time.Time `yaml:"build_time,omitempty"`
	GoVersion string    `yaml:"go_version"`
	Platform  string    `yaml:"platform"`
	Dirty     bool      `yaml:"dirty,omitempty"`
}

// Get collects build information, falling back to the module build
// settings when no ldflags were given.
func Get() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.BuildTime = t
	}

	build, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	if info.Version == "dev" && build.Main.Version != "" && build.Main.Version != "(devel)" {
		info.Version = build.Main.Version
	}

	for _, setting := range build.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = setting.Value
			}
		case "vcs.modified":
			info.Dirty = setting.Value == "true"
		}
	}

	return info
}

// Short returns a one-line version such as "v1.2.0 (abc1234)".
func (b BuildInfo) Short() string {
	if b.GitCommit == "unknown" || len(b.GitCommit) < 7 {
		return b.Version
	}

	commit := b.GitCommit[:7]
	if b.Version == "dev" {
		return "dev-" + commit
	}

	return fmt.Sprintf("%s (%s)", b.Version, commit)
}

// Detailed returns one "Key: value" line per known field.
func (b BuildInfo) Detailed() string {
	parts := []string{"Version: " + b.Version}

	if b.GitCommit != "unknown" {
		commit := "Commit: " + b.GitCommit
		if b.Dirty {
			commit += " (dirty)"
		}
		parts = append(parts, commit)
	}
	if !b.BuildTime.IsZero() {
		parts = append(parts, "Built: "+b.BuildTime.Format(time.RFC3339))
	}

	parts = append(parts, "Go: "+b.GoVersion, "Platform: "+b.Platform)

	return strings.Join(parts, "\n")
}
