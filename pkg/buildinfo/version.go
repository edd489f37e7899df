// Package buildinfo reports the bandslicer version.
//
// Release builds stamp the variables through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/bandslicer/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/bandslicer/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/bandslicer/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Unstamped binaries fall back to the module version and VCS settings the Go
// toolchain embeds, so `go install ...@v1.0.0` still reports v1.0.0.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Stamped through ldflags; see the package documentation.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

var (
	infoOnce sync.Once
	info     Info
)

// Get returns the build information, resolved once per process.
func Get() Info {
	infoOnce.Do(func() {
		bi, _ := debug.ReadBuildInfo()
		info = resolve(Info{Version: Version, Commit: Commit, Date: Date}, bi)
	})
	return info
}

// resolve fills the fields ldflags left at their defaults from bi.
func resolve(in Info, bi *debug.BuildInfo) Info {
	if bi == nil {
		return in
	}
	in.GoVersion = bi.GoVersion
	if in.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		in.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && in.Commit == "none":
			in.Commit = s.Value
		case s.Key == "vcs.time" && in.Date == "unknown":
			in.Date = s.Value
		case s.Key == "vcs.modified" && s.Value == "true" && in.Version == "dev":
			in.Version = "dev+dirty"
		}
	}
	return in
}

// UserAgent is the User-Agent header sent when downloading meshes.
func UserAgent() string {
	return "bandslicer/" + Get().Version
}

// Template returns the cobra --version template.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\ngo: %s\n", i.Version, i.Commit, i.Date, i.GoVersion)
}
