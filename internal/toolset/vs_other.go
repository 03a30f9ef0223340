//go:build !windows

package toolset

// Visual Studio discovery needs the COM-based setup API; off Windows there is
// nothing to discover.
func defaultVisualStudio() (string, bool) {
	return "", false
}
