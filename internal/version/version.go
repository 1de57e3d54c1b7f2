// Package version holds build metadata injected with -ldflags.
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the released version, "dev" for local builds.
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = ""
	// BuildDate is the UTC build timestamp.
	BuildDate = ""
)

var readBuildInfo = debug.ReadBuildInfo

// BuildInfo is the resolved build metadata of the running binary.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
	Modified  bool
	GoVersion string
	Platform  string
}

// Info returns the ldflags values, filling gaps from the VCS stamp the Go
// toolchain embeds in module builds.
func Info() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = setting.Value
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = setting.Value
			}
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}
	return info
}

// String renders "1.2.0 (abc1234, 2024-01-02T03:04:05Z)" for --version.
func (b BuildInfo) String() string {
	var details []string
	if b.Commit != "" {
		commit := shortCommit(b.Commit)
		if b.Modified {
			commit += "-dirty"
		}
		details = append(details, commit)
	}
	if b.BuildDate != "" {
		details = append(details, b.BuildDate)
	}
	if len(details) == 0 {
		return b.Version
	}
	return b.Version + " (" + strings.Join(details, ", ") + ")"
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
