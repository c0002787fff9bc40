package app

import (
	"fmt"
	"runtime/debug"
)

// Build-time variables set via ldflags. Values left at their defaults are
// filled from the module build info when the binary carries one.
var (
	Version   = devVersion
	GitCommit = unknown
	GitTag    = ""
	BuildTime = unknown
)

const (
	devVersion = "dev"
	unknown    = "unknown"

	// shortRevision is the length commits are shown with.
	shortRevision = 12
)

// VersionInfo describes the running GoSpin build.
type VersionInfo struct {
	Version   string
	GitCommit string
	GitTag    string
	BuildTime string

	// Modified is set for builds from a checkout with uncommitted changes.
	Modified bool
}

// GetVersionInfo returns the ldflags values, completed from debug.ReadBuildInfo
// for `go install` and plain `go build` binaries.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.withBuildInfo(bi)
	}
	return info
}

func (v VersionInfo) withBuildInfo(bi *debug.BuildInfo) VersionInfo {
	if v.Version == devVersion && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		v.Version = bi.Main.Version
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if v.GitCommit == unknown {
				v.GitCommit = setting.Value[:min(len(setting.Value), shortRevision)]
			}
		case "vcs.time":
			if v.BuildTime == unknown {
				v.BuildTime = setting.Value
			}
		case "vcs.modified":
			v.Modified = setting.Value == "true"
		}
	}
	return v
}

// FullString returns a detailed version string for logging and --version.
func (v VersionInfo) FullString() string {
	version := v.Version
	if v.GitTag != "" {
		version = v.GitTag
	}

	commit := v.GitCommit
	if v.Modified {
		commit += "+modified"
	}
	return fmt.Sprintf("GoSpin %s (commit: %s, built: %s)", version, commit, v.BuildTime)
}
