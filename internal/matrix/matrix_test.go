package matrix

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/egor-tensin/cmake-common/internal/axis"
)

func TestResolveLinkageSharedStatic(t *testing.T) {
	// A shared library can't embed the runtime statically, on any host.
	for _, host := range []axis.OS{axis.OSWindows, axis.OSLinux, axis.OSCygwin, axis.OSMacOS} {
		pairs, warnings := ResolveLinkage([]axis.Linkage{axis.Shared}, axis.Static, host)
		if len(pairs) != 1 || pairs[0] != (Pair{axis.Shared, axis.Shared}) {
			t.Errorf("host %s: pairs = %v, want [(shared, shared)]", host, pairs)
		}
		if len(warnings) != 1 {
			t.Errorf("host %s: got %d warnings, want exactly 1", host, len(warnings))
		}
	}
}

func TestResolveLinkageStaticStatic(t *testing.T) {
	// Linux-likes only have a shared libc, Windows can do fully static.
	pairs, warnings := ResolveLinkage([]axis.Linkage{axis.Static}, axis.Static, axis.OSLinux)
	if len(pairs) != 1 || pairs[0] != (Pair{axis.Static, axis.Shared}) {
		t.Errorf("linux: pairs = %v, want [(static, shared)]", pairs)
	}
	if len(warnings) != 1 {
		t.Errorf("linux: got %d warnings, want exactly 1", len(warnings))
	}

	pairs, warnings = ResolveLinkage([]axis.Linkage{axis.Static}, axis.Static, axis.OSWindows)
	if len(pairs) != 1 || pairs[0] != (Pair{axis.Static, axis.Static}) {
		t.Errorf("windows: pairs = %v, want [(static, static)]", pairs)
	}
	if len(warnings) != 0 {
		t.Errorf("windows: got %d warnings, want none", len(warnings))
	}
}

func TestResolveLinkageSharedRuntime(t *testing.T) {
	pairs, warnings := ResolveLinkage([]axis.Linkage{axis.Static, axis.Shared}, axis.Shared, axis.OSLinux)
	want := []Pair{{axis.Static, axis.Shared}, {axis.Shared, axis.Shared}}
	if len(pairs) != len(want) {
		t.Fatalf("pairs = %v, want %v", pairs, want)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pairs[%d] = %v, want %v", i, pairs[i], want[i])
		}
	}
	if len(warnings) != 0 {
		t.Errorf("got %d warnings, want none", len(warnings))
	}
}

func TestResolveLinkageKeepsDuplicates(t *testing.T) {
	// Callers control their own input set; de-duplication is not our job.
	pairs, _ := ResolveLinkage([]axis.Linkage{axis.Static, axis.Static}, axis.Shared, axis.OSLinux)
	if len(pairs) != 2 {
		t.Errorf("got %d pairs, want 2", len(pairs))
	}
}

func TestStageDir(t *testing.T) {
	if got, want := StageDir("stage", axis.PlatformX86, axis.Debug), filepath.Join("stage", "x86", "Debug"); got != want {
		t.Errorf("StageDir = %q, want %q", got, want)
	}
	got := StageDir("stage", axis.PlatformAuto, axis.Release)
	if want := filepath.Join("stage", "Release"); got != want {
		t.Errorf("StageDir = %q, want %q", got, want)
	}
	if strings.Contains(got, "auto") {
		t.Errorf("StageDir for the auto platform contains an auto segment: %q", got)
	}
}

func TestStageDirUnique(t *testing.T) {
	// Every (platform, configuration) pair drawn from the full enumerations
	// gets its own directory.
	platforms := append(axis.AllPlatforms(), axis.PlatformAuto)
	seen := make(map[string]string)
	for _, p := range platforms {
		for _, c := range axis.AllConfigurations() {
			dir := StageDir("stage", p, c)
			key := p.String() + "/" + c.String()
			if prev, ok := seen[dir]; ok {
				t.Errorf("%s and %s share the stage directory %q", prev, key, dir)
			}
			seen[dir] = key
		}
	}
}

func TestEnumerateOrder(t *testing.T) {
	platforms := []axis.Platform{axis.PlatformX86, axis.PlatformX64}
	configurations := []axis.Configuration{axis.Debug, axis.Release}
	pairs := []Pair{{axis.Static, axis.Shared}}

	cells := Enumerate("stage", platforms, configurations, pairs)
	if len(cells) != 4 {
		t.Fatalf("got %d cells, want 4", len(cells))
	}

	wantDirs := []string{
		filepath.Join("stage", "x86", "Debug"),
		filepath.Join("stage", "x86", "Release"),
		filepath.Join("stage", "x64", "Debug"),
		filepath.Join("stage", "x64", "Release"),
	}
	for i, cell := range cells {
		if cell.StageDir != wantDirs[i] {
			t.Errorf("cells[%d].StageDir = %q, want %q", i, cell.StageDir, wantDirs[i])
		}
		if cell.Link != axis.Static || cell.RuntimeLink != axis.Shared {
			t.Errorf("cells[%d] linkage = %s/%s, want static/shared", i, cell.Link, cell.RuntimeLink)
		}
	}
}

func TestEnumerateLinkageShareDir(t *testing.T) {
	// Two cells differ only in linkage: same directory by design, the caller
	// owns not overwriting its own artifacts.
	pairs := []Pair{{axis.Static, axis.Static}, {axis.Shared, axis.Shared}}
	cells := Enumerate("stage", []axis.Platform{axis.PlatformX64}, []axis.Configuration{axis.Release}, pairs)
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}
	if cells[0].StageDir != cells[1].StageDir {
		t.Errorf("linkage-only cells got distinct directories %q and %q", cells[0].StageDir, cells[1].StageDir)
	}
}
