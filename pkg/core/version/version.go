// ============================================================================
// exact - decimal-safe arithmetic service
// ============================================================================
//
// Package:     version
// Description: Version information reported by the CLI, health and gateways
// Author:      msto63
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for the exact components
const (
	// Library is the version of the mathx package
	Library = "0.1.0"

	// Service versions
	Calc    = "0.1.0"
	Gateway = "0.1.0"
	TUI     = "0.1.0"
)

// Set at build time with -ldflags "-X github.com/msto63/exact/pkg/core/version.GitCommit=..."
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ServiceVersion returns the version for a given component name
func ServiceVersion(name string) string {
	switch name {
	case "calc":
		return Calc
	case "gateway":
		return Gateway
	case "tui":
		return TUI
	default:
		return Library
	}
}

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary
func Get() Info {
	return Info{
		Version:   Library,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one-line description
func (i Info) String() string {
	return fmt.Sprintf("exact %s (commit %s, built %s, %s, %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
