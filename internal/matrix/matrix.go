// Package matrix turns a build request's axes into the list of concrete
// build-driver invocations: it applies the runtime-link legality rules and
// enumerates the platform × configuration × linkage product with a
// collision-free output directory per cell.
package matrix

import (
	"fmt"
	"path/filepath"

	"github.com/egor-tensin/cmake-common/internal/axis"
)

// Pair is one resolved (library linkage, runtime linkage) combination.
type Pair struct {
	Link    axis.Linkage
	Runtime axis.Linkage
}

// ResolveLinkage applies the static-runtime legality rules to each requested
// link value and returns the buildable pairs, in input order, along with the
// coercion warnings. Illegal combinations are never rejected: whenever a sane
// interpretation exists, it is used and the caller is told about it.
func ResolveLinkage(links []axis.Linkage, runtimeLink axis.Linkage, host axis.OS) ([]Pair, []string) {
	pairs := make([]Pair, 0, len(links))
	var warnings []string
	for _, link := range links {
		resolved := runtimeLink
		if runtimeLink == axis.Static {
			if link == axis.Shared {
				warnings = append(warnings, "cannot link the runtime statically to a shared library, going to link dynamically")
				resolved = axis.Shared
			} else if host.LinuxLike() {
				warnings = append(warnings, "cannot link to the GNU C Library or BSD libc (which are assumed) statically, going to link dynamically")
				resolved = axis.Shared
			}
		}
		pairs = append(pairs, Pair{Link: link, Runtime: resolved})
	}
	return pairs, warnings
}

// StageDir composes the output directory for one platform/configuration
// combination. The platform segment is dropped for the auto platform (a
// literal "auto" component would be meaningless); the configuration segment
// is always present. Linkage is deliberately not part of the path.
func StageDir(stageRoot string, platform axis.Platform, configuration axis.Configuration) string {
	if segment := platform.StageSegment(); segment != "" {
		return filepath.Join(stageRoot, segment, configuration.String())
	}
	return filepath.Join(stageRoot, configuration.String())
}

// Cell is one build-driver invocation to be made: a point of the build matrix plus
// its output directory. Args are filled in by the driver layer, which knows
// the toolchain and the build directory.
type Cell struct {
	Platform      axis.Platform
	Configuration axis.Configuration
	Link          axis.Linkage
	RuntimeLink   axis.Linkage
	StageDir      string
	Args          []string
}

func (c Cell) String() string {
	return fmt.Sprintf("%s/%s/link=%s/runtime-link=%s", c.Platform, c.Configuration, c.Link, c.RuntimeLink)
}

// Enumerate produces one cell per (platform, configuration, pair) triple.
// Platforms iterate outermost, then configurations, then linkage pairs, in
// caller order: the order determines the sequence of external invocations and
// callers rely on it for log readability. Duplicate inputs are kept as-is.
func Enumerate(stageRoot string, platforms []axis.Platform, configurations []axis.Configuration, pairs []Pair) []Cell {
	cells := make([]Cell, 0, len(platforms)*len(configurations)*len(pairs))
	for _, platform := range platforms {
		for _, configuration := range configurations {
			for _, pair := range pairs {
				cells = append(cells, Cell{
					Platform:      platform,
					Configuration: configuration,
					Link:          pair.Link,
					RuntimeLink:   pair.Runtime,
					StageDir:      StageDir(stageRoot, platform, configuration),
				})
			}
		}
	}
	return cells
}
