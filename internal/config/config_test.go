package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/egor-tensin/cmake-common/internal/axis"
	"github.com/egor-tensin/cmake-common/internal/toolset"
)

const sampleConfig = `
[defaults]
platform = ["x86", "x64"]
configuration = ["Debug", "Release"]
toolset = "gcc"
cache = "/var/cache/boost"

[[preset]]
when = 'os == "windows"'
toolset = "msvc"

[[preset]]
when = 'ci'
configuration = ["Release"]
verbose = true
`

func TestLoadMissing(t *testing.T) {
	settings, err := Load(t.TempDir(), Env{OS: "linux"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(settings.Platforms) != 0 || settings.Toolset != "" {
		t.Errorf("expected zero settings, got %+v", settings)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(dir, Env{OS: "linux", Arch: "amd64"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Toolset != "gcc" {
		t.Errorf("Toolset = %q, want gcc", settings.Toolset)
	}
	if settings.CacheDir != "/var/cache/boost" {
		t.Errorf("CacheDir = %q", settings.CacheDir)
	}
	if settings.Verbose {
		t.Error("Verbose must stay off outside CI")
	}

	platforms, err := settings.ParsedPlatforms()
	if err != nil {
		t.Fatalf("ParsedPlatforms: %v", err)
	}
	if len(platforms) != 2 || platforms[0] != axis.PlatformX86 || platforms[1] != axis.PlatformX64 {
		t.Errorf("ParsedPlatforms() = %v", platforms)
	}
	spec, err := settings.ParsedToolset()
	if err != nil || spec.Hint != toolset.HintGCC {
		t.Errorf("ParsedToolset() = %v, %v", spec, err)
	}
}

func TestLoadPresets(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(dir, Env{OS: "windows", Arch: "amd64", CI: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Toolset != "msvc" {
		t.Errorf("the windows preset must override the toolset, got %q", settings.Toolset)
	}
	if len(settings.Configurations) != 1 || settings.Configurations[0] != "Release" {
		t.Errorf("the ci preset must replace the configurations, got %v", settings.Configurations)
	}
	if !settings.Verbose {
		t.Error("the ci preset must turn verbosity on")
	}
}

func TestLoadBadExpression(t *testing.T) {
	dir := t.TempDir()
	contents := "[[preset]]\nwhen = 'os ==' \ntoolset = \"gcc\"\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir, Env{OS: "linux"}); err == nil {
		t.Error("expected an error for an unparseable `when` expression")
	}
}

func TestParsedDefaults(t *testing.T) {
	var settings Settings
	runtimeLink, err := settings.ParsedRuntimeLink()
	if err != nil || runtimeLink != axis.Static {
		t.Errorf("ParsedRuntimeLink() = %v, %v", runtimeLink, err)
	}
	spec, err := settings.ParsedToolset()
	if err != nil || spec.Hint != toolset.HintAuto {
		t.Errorf("ParsedToolset() = %v, %v", spec, err)
	}

	settings.Link = []string{"static", "shared"}
	link, err := settings.ParsedLink()
	if err != nil || len(link) != 2 || link[1] != axis.Shared {
		t.Errorf("ParsedLink() = %v, %v", link, err)
	}

	settings.Configurations = []string{"MinSizeRel", "bogus"}
	if _, err := settings.ParsedConfigurations(); err == nil {
		t.Error("expected an error for a bogus configuration")
	}
}
