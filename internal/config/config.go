// Package config reads the optional cmake-common.toml defaults file. The
// file sets the build parameters a user doesn't want to repeat on every
// command line; presets adjust them per environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/expr-lang/expr"
	"github.com/pelletier/go-toml/v2"

	"github.com/egor-tensin/cmake-common/internal/axis"
	"github.com/egor-tensin/cmake-common/internal/toolset"
)

// FileName is looked up in the current directory.
const FileName = "cmake-common.toml"

// Settings are the defaults a config file can provide. Everything is
// optional; zero values mean "not configured" and the command-line defaults
// apply.
type Settings struct {
	Platforms      []string `toml:"platform"`
	Configurations []string `toml:"configuration"`
	Link           []string `toml:"link"`
	RuntimeLink    string   `toml:"runtime-link"`
	Toolset        string   `toml:"toolset"`
	CacheDir       string   `toml:"cache"`
	Verbose        bool     `toml:"verbose"`
}

// Preset is a conditional settings block. Its settings apply on top of the
// defaults when the `when` expression evaluates to true.
type Preset struct {
	When     string `toml:"when"`
	Settings        // flattened into the preset table
}

type file struct {
	Defaults Settings `toml:"defaults"`
	Presets  []Preset `toml:"preset"`
}

// Env is what `when` expressions can refer to.
type Env struct {
	OS   string `expr:"os"`
	Arch string `expr:"arch"`
	CI   bool   `expr:"ci"`
}

// CurrentEnv describes the running process.
func CurrentEnv() Env {
	return Env{
		OS:   axis.CurrentOS().String(),
		Arch: runtime.GOARCH,
		CI:   os.Getenv("CI") != "",
	}
}

// override applies the non-zero fields of other on top of s. Lists replace
// rather than append: a preset saying "configuration = [Release]" means only
// Release.
func (s *Settings) override(other Settings) {
	if len(other.Platforms) > 0 {
		s.Platforms = other.Platforms
	}
	if len(other.Configurations) > 0 {
		s.Configurations = other.Configurations
	}
	if len(other.Link) > 0 {
		s.Link = other.Link
	}
	if other.RuntimeLink != "" {
		s.RuntimeLink = other.RuntimeLink
	}
	if other.Toolset != "" {
		s.Toolset = other.Toolset
	}
	if other.CacheDir != "" {
		s.CacheDir = other.CacheDir
	}
	if other.Verbose {
		s.Verbose = true
	}
}

// Load reads the config file from dir and resolves its presets against env.
// A missing file isn't an error: the zero Settings come back.
func Load(dir string, env Env) (Settings, error) {
	path := filepath.Join(dir, FileName)
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, err
	}
	return parse(contents, env, path)
}

func parse(contents []byte, env Env, path string) (Settings, error) {
	var f file
	if err := toml.Unmarshal(contents, &f); err != nil {
		return Settings{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	settings := f.Defaults
	for i, preset := range f.Presets {
		if preset.When == "" {
			settings.override(preset.Settings)
			continue
		}
		program, err := expr.Compile(preset.When, expr.Env(env), expr.AsBool())
		if err != nil {
			return Settings{}, fmt.Errorf("failed to compile `when` for preset #%d: %w", i+1, err)
		}
		result, err := expr.Run(program, env)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to evaluate `when` for preset #%d: %w", i+1, err)
		}
		if matched, ok := result.(bool); ok && matched {
			settings.override(preset.Settings)
		}
	}
	return settings, nil
}

// The typed accessors below turn the raw strings into domain values; an
// empty setting yields the zero-length/zero value, the caller decides the
// actual default.

func (s Settings) ParsedPlatforms() ([]axis.Platform, error) {
	platforms := make([]axis.Platform, 0, len(s.Platforms))
	for _, raw := range s.Platforms {
		platform, err := axis.ParsePlatform(raw)
		if err != nil {
			return nil, err
		}
		platforms = append(platforms, platform)
	}
	return platforms, nil
}

func (s Settings) ParsedConfigurations() ([]axis.Configuration, error) {
	configurations := make([]axis.Configuration, 0, len(s.Configurations))
	for _, raw := range s.Configurations {
		configuration, err := axis.ParseConfiguration(raw)
		if err != nil {
			return nil, err
		}
		configurations = append(configurations, configuration)
	}
	return configurations, nil
}

func (s Settings) ParsedLink() ([]axis.Linkage, error) {
	link := make([]axis.Linkage, 0, len(s.Link))
	for _, raw := range s.Link {
		linkage, err := axis.ParseLinkage(raw)
		if err != nil {
			return nil, err
		}
		link = append(link, linkage)
	}
	return link, nil
}

func (s Settings) ParsedRuntimeLink() (axis.Linkage, error) {
	if s.RuntimeLink == "" {
		return axis.Static, nil
	}
	return axis.ParseLinkage(s.RuntimeLink)
}

func (s Settings) ParsedToolset() (toolset.Spec, error) {
	if s.Toolset == "" {
		return toolset.Spec{}, nil
	}
	return toolset.ParseSpec(s.Toolset)
}
