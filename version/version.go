package version

import (
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time with -ldflags "-X github.com/kbukum/scribe/version.Version=...".
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
	GoVersion = ""
)

const shortCommit = 7

// Info describes the running build.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	GitBranch string    `json:"git_branch"`
	BuildTime string    `json:"build_time"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

// GetVersionInfo merges link-time values with what the toolchain embedded.
// Link-time values win. BuildDate falls back to now so it is never zero.
func GetVersionInfo() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		IsRelease: isRelease(Version),
	}
	info.BuildDate, _ = time.Parse(time.RFC3339, BuildTime)
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.fillFromBuildInfo(bi)
	}
	if info.BuildDate.IsZero() {
		info.BuildDate = time.Now().UTC()
		info.BuildTime = info.BuildDate.Format(time.RFC3339)
	}
	return info
}

func isRelease(v string) bool {
	return v != "dev" && !strings.Contains(v, "dirty")
}

// fillFromBuildInfo only fills fields still empty, except IsDirty which
// only the toolchain knows.
func (info *Info) fillFromBuildInfo(bi *debug.BuildInfo) {
	vcs := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		vcs[s.Key] = s.Value
	}

	if info.GoVersion == "" {
		info.GoVersion = bi.GoVersion
	}
	if info.GitCommit == "" {
		rev := vcs["vcs.revision"]
		info.GitCommit = rev[:min(len(rev), shortCommit)]
	}
	info.IsDirty = vcs["vcs.modified"] == "true"
	if info.BuildTime == "" {
		if t, err := time.Parse(time.RFC3339, vcs["vcs.time"]); err == nil {
			info.BuildDate = t
			info.BuildTime = vcs["vcs.time"]
		}
	}
}

// Short returns "<version>[-<commit>[-dirty]]".
func (info *Info) Short() string {
	if info.GitCommit == "" {
		return info.Version
	}
	return info.join(false)
}

// Full adds a non-default branch and the build date to Short.
func (info *Info) Full() string {
	v := info.join(true)
	if !info.BuildDate.IsZero() {
		v += " (built " + info.BuildDate.UTC().Format(time.RFC3339) + ")"
	}
	return v
}

func (info *Info) join(withBranch bool) string {
	parts := []string{info.Version}
	if info.GitCommit != "" {
		parts = append(parts, info.GitCommit)
	}
	if withBranch && info.GitBranch != "" && info.GitBranch != "main" && info.GitBranch != "master" {
		parts = append(parts, info.GitBranch)
	}
	if info.IsDirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

// LogFields returns the build as structured log fields.
func (info *Info) LogFields() map[string]interface{} {
	return map[string]interface{}{
		"version":    info.Version,
		"git_commit": info.GitCommit,
		"go_version": info.GoVersion,
		"build_time": info.BuildTime,
	}
}

// GetShortVersion returns Short for the running build.
func GetShortVersion() string { return GetVersionInfo().Short() }

// GetFullVersion returns Full for the running build.
func GetFullVersion() string { return GetVersionInfo().Full() }
