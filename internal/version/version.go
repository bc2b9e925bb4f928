// Package version reports the linter's build identity: its own semantic
// version, the Go toolchain that built it, and (when available) VCS
// provenance from the embedded build info.
package version

import (
	"runtime"
	"runtime/debug"
	"slices"
)

var version = "dev"

// Version returns the current version string, suffixed with the VCS
// revision when one was embedded at build time.
func Version() string {
	_, commit := readBuildInfo()
	if commit != "" {
		return version + " (" + commit + ")"
	}
	return version
}

// RawVersion returns the semantic version string without any suffix.
func RawVersion() string {
	return version
}

// GoVersion returns the Go toolchain version used for the build.
func GoVersion() string {
	return runtime.Version()
}

// readBuildInfo reads debug.ReadBuildInfo once and extracts both the linked
// gitleaks detector version (the secrets-in-fixed-value rule's dependency)
// and the VCS revision.
func readBuildInfo() (gitleaksVersion, commit string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	if idx := slices.IndexFunc(info.Deps, func(dep *debug.Module) bool {
		return dep.Path == "github.com/zricethezav/gitleaks/v8"
	}); idx >= 0 {
		gitleaksVersion = info.Deps[idx].Version
	}
	if idx := slices.IndexFunc(info.Settings, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	}); idx >= 0 {
		val := info.Settings[idx].Value
		if len(val) > 12 {
			commit = val[:12]
		} else {
			commit = val
		}
	}
	return gitleaksVersion, commit
}

// Info holds structured version information for machine-readable output.
type Info struct {
	Version         string   `json:"version"`
	GitleaksVersion string   `json:"gitleaksVersion,omitempty"`
	Platform        Platform `json:"platform"`
	GoVersion       string   `json:"goVersion"`
	GitCommit       string   `json:"gitCommit,omitempty"`
}

// Platform describes the OS and architecture.
type Platform struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// GetInfo returns structured version information.
func GetInfo() Info {
	gitleaksVersion, commit := readBuildInfo()
	return Info{
		Version:         RawVersion(),
		GitleaksVersion: gitleaksVersion,
		Platform: Platform{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
		GoVersion: GoVersion(),
		GitCommit: commit,
	}
}
