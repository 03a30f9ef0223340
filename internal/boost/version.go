// Package boost deals with the library build driver's side of the world:
// fetching a Boost distribution, bootstrapping b2 and driving it once per
// build matrix cell.
package boost

import (
	"fmt"
	"regexp"
)

const archiveExt = ".tar.gz"

// Version is a Boost release version.
type Version struct {
	Major int
	Minor int
	Patch int
}

var versionRE = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

func ParseVersion(s string) (Version, error) {
	matches := versionRE.FindStringSubmatch(s)
	if matches == nil {
		return Version{}, fmt.Errorf("invalid Boost version: %q", s)
	}
	var v Version
	fmt.Sscanf(s, "%d.%d.%d", &v.Major, &v.Minor, &v.Patch)
	return v, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v Version) less(major, minor, patch int) bool {
	if v.Major != major {
		return v.Major < major
	}
	if v.Minor != minor {
		return v.Minor < minor
	}
	return v.Patch < patch
}

// DirName is the name of the root directory inside a release archive.
func (v Version) DirName() string {
	return fmt.Sprintf("boost_%d_%d_%d", v.Major, v.Minor, v.Patch)
}

func (v Version) ArchiveName() string {
	return v.DirName() + archiveExt
}

// GitTag is the release tag in the boostorg/boost superproject.
func (v Version) GitTag() string {
	return "boost-" + v.String()
}

func (v Version) jfrogURL() string {
	return fmt.Sprintf("https://boostorg.jfrog.io/artifactory/main/release/%s/source/%s", v, v.ArchiveName())
}

func (v Version) sourceforgeURL() string {
	return fmt.Sprintf("https://sourceforge.net/projects/boost/files/boost/%s/%s/download", v, v.ArchiveName())
}

// DownloadURLs lists the mirrors to try, most preferred first. For versions
// older than 1.63.0 SourceForge is the only option; otherwise jfrog.io comes
// first (the official website links to it).
func (v Version) DownloadURLs() []string {
	if v.less(1, 63, 0) {
		return []string{v.sourceforgeURL()}
	}
	return []string{v.jfrogURL(), v.sourceforgeURL()}
}
