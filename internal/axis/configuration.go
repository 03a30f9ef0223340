package axis

import (
	"fmt"
	"strings"
)

// Configuration corresponds to CMake's default CMAKE_BUILD_TYPE values.
type Configuration int

const (
	Debug Configuration = iota
	Release
	RelWithDebInfo
	MinSizeRel
)

func (c Configuration) String() string {
	switch c {
	case Debug:
		return "Debug"
	case Release:
		return "Release"
	case RelWithDebInfo:
		return "RelWithDebInfo"
	case MinSizeRel:
		return "MinSizeRel"
	default:
		panic("Configuration.String: unreachable")
	}
}

func AllConfigurations() []Configuration {
	return []Configuration{Debug, Release, RelWithDebInfo, MinSizeRel}
}

func ParseConfiguration(s string) (Configuration, error) {
	for _, c := range AllConfigurations() {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return Debug, fmt.Errorf("%w: invalid configuration %q", ErrInvalidValue, s)
}

// Variant maps a configuration to Boost.Build's variant= value. b2 only knows
// debug/release, so MinSizeRel and RelWithDebInfo collapse to release; the
// libraries still get their own stage/PLATFORM/CONFIGURATION directory.
func (c Configuration) Variant() string {
	switch c {
	case RelWithDebInfo, MinSizeRel:
		return Release.Variant()
	default:
		return strings.ToLower(c.String())
	}
}
