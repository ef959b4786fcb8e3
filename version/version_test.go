package version

import (
	"runtime/debug"
	"strings"
	"testing"
	"time"
)

func setBuild(t *testing.T, version, commit, branch, buildTime, goVersion string) {
	t.Helper()
	prev := [5]string{Version, GitCommit, GitBranch, BuildTime, GoVersion}
	t.Cleanup(func() {
		Version, GitCommit, GitBranch, BuildTime, GoVersion = prev[0], prev[1], prev[2], prev[3], prev[4]
	})
	Version, GitCommit, GitBranch, BuildTime, GoVersion = version, commit, branch, buildTime, goVersion
}

func TestGetVersionInfo(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		buildTime   string
		wantRelease bool
		wantYear    int
	}{
		{"dev build", "dev", "", false, 0},
		{"release", "1.0.0", "2024-01-15T10:30:00Z", true, 2024},
		{"dirty tag", "1.0.0-dirty", "2024-01-15T10:30:00Z", false, 2024},
		{"unparseable build time", "1.0.0", "yesterday", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuild(t, tt.version, "abc1234", "main", tt.buildTime, "go1.22.0")

			info := GetVersionInfo()
			if info.Version != tt.version {
				t.Errorf("Version = %q, want %q", info.Version, tt.version)
			}
			if info.IsRelease != tt.wantRelease {
				t.Errorf("IsRelease = %v, want %v", info.IsRelease, tt.wantRelease)
			}
			if info.GoVersion != "go1.22.0" {
				t.Errorf("link-time GoVersion should win, got %q", info.GoVersion)
			}
			if info.BuildDate.IsZero() {
				t.Fatal("BuildDate should always be set")
			}
			if tt.wantYear != 0 && info.BuildDate.Year() != tt.wantYear {
				t.Errorf("BuildDate year = %d, want %d", info.BuildDate.Year(), tt.wantYear)
			}
		})
	}
}

func TestFillFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-03-01T12:00:00Z"},
		},
	}

	info := &Info{Version: "0.3.0"}
	info.fillFromBuildInfo(bi)
	if info.GitCommit != "0123456" {
		t.Errorf("expected revision truncated to 7 chars, got %q", info.GitCommit)
	}
	if !info.IsDirty {
		t.Error("expected dirty tree")
	}
	if info.GoVersion != "go1.26.0" || info.BuildTime != "2026-03-01T12:00:00Z" {
		t.Errorf("unexpected toolchain fields: %+v", info)
	}

	pinned := &Info{GitCommit: "feedbee", BuildTime: "2025-01-01T00:00:00Z", GoVersion: "go1.25"}
	pinned.fillFromBuildInfo(bi)
	if pinned.GitCommit != "feedbee" || pinned.BuildTime != "2025-01-01T00:00:00Z" || pinned.GoVersion != "go1.25" {
		t.Errorf("link-time values must not be overwritten: %+v", pinned)
	}
}

func TestInfoShort(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{Info{Version: "1.2.0", GitCommit: "deadbee", IsDirty: true}, "1.2.0-deadbee-dirty"},
	}
	for _, tt := range tests {
		if got := tt.info.Short(); got != tt.want {
			t.Errorf("Short() = %q, want %q", got, tt.want)
		}
	}
}

func TestInfoFull(t *testing.T) {
	built := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"main branch hidden", Info{Version: "1.0.0", GitCommit: "abc1234", GitBranch: "main", BuildDate: built}, "1.0.0-abc1234 (built 2024-01-15T10:30:00Z)"},
		{"feature branch shown", Info{Version: "1.0.0", GitCommit: "abc1234", GitBranch: "feature/segments", BuildDate: built}, "1.0.0-abc1234-feature/segments (built 2024-01-15T10:30:00Z)"},
		{"dirty", Info{Version: "1.0.0", GitCommit: "abc1234", IsDirty: true}, "1.0.0-abc1234-dirty"},
		{"bare", Info{Version: "dev"}, "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Full(); got != tt.want {
				t.Errorf("Full() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPackageHelpers(t *testing.T) {
	setBuild(t, "2.0.0", "abc1234", "", "2024-01-15T10:30:00Z", "go1.22")

	if got := GetShortVersion(); !strings.HasPrefix(got, "2.0.0-abc1234") {
		t.Errorf("GetShortVersion() = %q", got)
	}
	if got := GetFullVersion(); !strings.HasPrefix(got, "2.0.0-abc1234") || !strings.Contains(got, "built 2024-01-15") {
		t.Errorf("GetFullVersion() = %q", got)
	}
}

func TestInfoLogFields(t *testing.T) {
	info := &Info{Version: "1.2.0", GitCommit: "deadbee", GoVersion: "go1.26.0", BuildTime: "2026-01-01T00:00:00Z"}
	fields := info.LogFields()
	if fields["version"] != "1.2.0" || fields["git_commit"] != "deadbee" {
		t.Errorf("unexpected fields: %v", fields)
	}
	if len(fields) != 4 {
		t.Errorf("expected 4 fields, got %d", len(fields))
	}
}
