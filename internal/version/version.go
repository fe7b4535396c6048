package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/skyreg/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/skyreg/internal/version.Commit=abc123"
//
// Otherwise they come from the VCS stamp in the build info, or fall back to
// "dev" with a timestamp.
var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the git commit hash
	Commit = ""
	// BuildTime is the commit time reported by the VCS stamp, if any
	BuildTime = ""
)

func init() {
	if Version == "" || Commit == "" {
		populateFromBuildInfo()
	}

	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// populateFromBuildInfo reads the VCS settings Go stamps into binaries
// built from a git checkout
func populateFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	if Commit == "" {
		Commit = shortCommit(settings["vcs.revision"], settings["vcs.modified"] == "true")
	}

	if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
		BuildTime = t.UTC().Format(time.RFC3339)
		if Version == "" {
			Version = fmt.Sprintf("dev-%s", t.Format("20060102"))
		}
	}
}

// shortCommit shortens a revision to 7 characters and marks dirty trees
func shortCommit(revision string, dirty bool) string {
	if revision == "" {
		return ""
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if dirty {
		revision += "-dirty"
	}
	return revision
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Details returns a multi-line description for the version command
func Details() string {
	s := fmt.Sprintf("skyreg %s\n  commit:  %s\n  go:      %s\n  os/arch: %s/%s",
		Version, Commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if BuildTime != "" {
		s += "\n  built:   " + BuildTime
	}
	return s
}
