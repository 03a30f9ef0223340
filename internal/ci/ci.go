// Package ci detects which CI service the process runs under and derives
// build parameters from that service's environment variables, so that CI
// scripts don't have to spell out what the environment already knows.
package ci

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/egor-tensin/cmake-common/internal/axis"
	"github.com/egor-tensin/cmake-common/internal/boost"
	"github.com/egor-tensin/cmake-common/internal/toolset"
)

var (
	ErrNotCI     = errors.New("no supported CI environment detected")
	ErrAmbiguous = errors.New("multiple CI environments detected")
)

// backend is one supported CI service. A service claims the environment when
// its marker variable is set (they all use "true", but any non-empty value
// counts).
type backend struct {
	name        string
	marker      string
	buildDirVar string
}

var backends = []backend{
	{"travis", "TRAVIS", "TRAVIS_BUILD_DIR"},
	{"appveyor", "APPVEYOR", "APPVEYOR_BUILD_FOLDER"},
	{"github", "GITHUB_ACTIONS", "GITHUB_WORKSPACE"},
}

// Env is a detected CI environment.
type Env struct {
	backend backend
}

// Detect figures out the current CI service. With an empty hint exactly one
// service must claim the environment; a hint picks one by name and only
// checks that it actually matches.
func Detect(hint string) (*Env, error) {
	if hint != "" {
		for _, b := range backends {
			if b.name == hint {
				if os.Getenv(b.marker) == "" {
					return nil, fmt.Errorf("%w: %s isn't claimed by the environment", ErrNotCI, b.name)
				}
				return &Env{backend: b}, nil
			}
		}
		return nil, fmt.Errorf("unknown CI service: %q", hint)
	}

	var matched []backend
	for _, b := range backends {
		if os.Getenv(b.marker) != "" {
			matched = append(matched, b)
		}
	}
	switch len(matched) {
	case 0:
		return nil, ErrNotCI
	case 1:
		return &Env{backend: matched[0]}, nil
	default:
		names := make([]string, len(matched))
		for i, b := range matched {
			names[i] = b.name
		}
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, strings.Join(names, ", "))
	}
}

func (e *Env) Name() string { return e.backend.name }

// BuildDir is the checkout directory the CI service reports.
func (e *Env) BuildDir() (string, error) {
	dir := os.Getenv(e.backend.buildDirVar)
	if dir == "" {
		return "", fmt.Errorf("environment variable %s is not set", e.backend.buildDirVar)
	}
	return dir, nil
}

// BoostDir is where the Boost distribution goes on this worker.
func (e *Env) BoostDir() (string, error) {
	buildDir, err := e.BuildDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(buildDir, "boost"), nil
}

// Platforms reads the PLATFORM variable; an unset variable means auto.
func (e *Env) Platforms() ([]axis.Platform, error) {
	value := os.Getenv("PLATFORM")
	if value == "" {
		return []axis.Platform{axis.PlatformAuto}, nil
	}
	platform, err := axis.ParsePlatform(value)
	if err != nil {
		return nil, err
	}
	return []axis.Platform{platform}, nil
}

// Configurations reads the CONFIGURATION variable; an unset variable means
// Debug and Release both.
func (e *Env) Configurations() ([]axis.Configuration, error) {
	value := os.Getenv("CONFIGURATION")
	if value == "" {
		return []axis.Configuration{axis.Debug, axis.Release}, nil
	}
	configuration, err := axis.ParseConfiguration(value)
	if err != nil {
		return nil, err
	}
	return []axis.Configuration{configuration}, nil
}

// Toolset reads the TOOLSET variable; an unset variable means auto.
func (e *Env) Toolset() (toolset.Spec, error) {
	value := os.Getenv("TOOLSET")
	if value == "" {
		return toolset.Spec{}, nil
	}
	return toolset.ParseSpec(value)
}

// BoostVersion reads the BOOST_VERSION variable; a CI Boost build can't do
// without it.
func (e *Env) BoostVersion() (boost.Version, error) {
	value := os.Getenv("BOOST_VERSION")
	if value == "" {
		return boost.Version{}, errors.New("environment variable BOOST_VERSION is not set")
	}
	return boost.ParseVersion(value)
}

// appveyorGenerators maps worker images to CMake generator names. AppVeyor
// workers carry several Visual Studio versions; without this, CMake picks
// whichever it finds first.
var appveyorGenerators = map[string]string{
	"Visual Studio 2013": "Visual Studio 12 2013",
	"Visual Studio 2015": "Visual Studio 14 2015",
	"Visual Studio 2017": "Visual Studio 15 2017",
	"Visual Studio 2019": "Visual Studio 16 2019",
}

// ExtraCMakeArgs are configure arguments a service needs beyond the common
// set. Only AppVeyor has any: an explicit generator matching its worker image.
func (e *Env) ExtraCMakeArgs() []string {
	if e.backend.name != "appveyor" {
		return nil
	}
	image := os.Getenv("APPVEYOR_BUILD_WORKER_IMAGE")
	if generator, ok := appveyorGenerators[image]; ok {
		return []string{"-G", generator}
	}
	return nil
}
