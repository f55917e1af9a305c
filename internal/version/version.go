// Package version reports how the qbank binary was built.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set at build time via ldflags.
// When left unset, the VCS stamp embedded by the go toolchain is used.
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

const unknown = "unknown"

// Info is the resolved build information.
type Info struct {
	Commit    string
	BuildTime string
	GoVersion string
	Modified  bool // built from a dirty working tree
}

// Get resolves the build information of the running binary.
func Get() Info {
	return resolve(Commit, BuildTime, debug.ReadBuildInfo)
}

// String returns the version string (commit-hash based, no semver).
func String() string {
	return Get().String()
}

func (i Info) String() string {
	commit := i.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("qbank dev (commit: %s, built: %s, %s)", commit, i.BuildTime, i.GoVersion)
}

func resolve(commit, buildTime string, readBuildInfo func() (*debug.BuildInfo, bool)) Info {
	info := Info{Commit: commit, BuildTime: buildTime, GoVersion: runtime.Version()}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unknown {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == unknown {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}
