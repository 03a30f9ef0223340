package toolset

import "fmt"

// MSVCVersion is one member of the Visual C++ version family: the raw toolset
// number (142) and the product year (2019) identify the same release and are
// interconvertible.
type MSVCVersion struct {
	Raw  int
	Year int
}

// Oldest to newest.
var msvcVersions = []MSVCVersion{
	{Raw: 80, Year: 2005},
	{Raw: 90, Year: 2008},
	{Raw: 100, Year: 2010},
	{Raw: 110, Year: 2012},
	{Raw: 120, Year: 2013},
	{Raw: 140, Year: 2015},
	{Raw: 141, Year: 2017},
	{Raw: 142, Year: 2019},
	{Raw: 143, Year: 2022},
}

// AllMSVCVersions lists the known versions, oldest first.
func AllMSVCVersions() []MSVCVersion {
	versions := make([]MSVCVersion, len(msvcVersions))
	copy(versions, msvcVersions)
	return versions
}

func MSVCVersionFromRaw(raw int) (MSVCVersion, error) {
	for _, v := range msvcVersions {
		if v.Raw == raw {
			return v, nil
		}
	}
	return MSVCVersion{}, fmt.Errorf("%w: msvc%d", ErrUnknownToolset, raw)
}

func MSVCVersionFromYear(year int) (MSVCVersion, error) {
	for _, v := range msvcVersions {
		if v.Year == year {
			return v, nil
		}
	}
	return MSVCVersion{}, fmt.Errorf("%w: vs%d", ErrUnknownToolset, year)
}

func (v MSVCVersion) String() string {
	return fmt.Sprintf("msvc%d (Visual Studio %d)", v.Raw, v.Year)
}

// Boost renders the version the way Boost.Build spells it in toolset=msvc-N,
// e.g. 142 becomes "14.2" and 100 becomes "10.0".
func (v MSVCVersion) Boost() string {
	return fmt.Sprintf("%d.%d", v.Raw/10, v.Raw%10)
}

// VSToolset renders the -T value for the Visual Studio CMake generators,
// e.g. "v142".
func (v MSVCVersion) VSToolset() string {
	return fmt.Sprintf("v%d", v.Raw)
}
