// Package buildinfo reports which seatplan build produced a document or
// answered a request.
//
// Release builds stamp the values with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/seatplan/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/seatplan/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/seatplan/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Unstamped builds (go install, go run) fall back to the module version and
// VCS settings the Go toolchain embeds in the binary.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Name is the product name written into PDF metadata.
const Name = "seatplan"

// Stamped via ldflags; the defaults mark an unstamped build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the resolved build information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"built"`
	GoVersion string `json:"go"`
}

var readBuildInfo = debug.ReadBuildInfo

var resolved = sync.OnceValue(resolveInfo)

func resolveInfo() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "none":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.Date == "unknown":
			info.Date = s.Value
		}
	}
	return info
}

// Get returns the build information, resolved once per process.
func Get() Info { return resolved() }

// Short returns the seven-character commit prefix, or the full value when
// it is shorter.
func (i Info) Short() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// Producer identifies the build in generated documents, e.g. "seatplan v1.2.0".
func (i Info) Producer() string {
	return Name + " " + i.Version
}

// Template returns the version template string for cobra.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", i.Version, i.Short(), i.Date)
}
