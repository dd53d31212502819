// Package buildinfo reports the version of the corescene binary.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/corescene/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/corescene/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/corescene/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Without ldflags, `go install` builds fall back to the module version and
// VCS stamp recorded by the Go toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none":
			Commit = s.Value
			if len(Commit) > 12 {
				Commit = Commit[:12]
			}
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
}

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, %s)\n", Version, Commit, Date)
}
