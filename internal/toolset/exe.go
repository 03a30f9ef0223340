package toolset

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/egor-tensin/cmake-common/internal/axis"
)

func which(exe string) bool {
	_, err := exec.LookPath(exe)
	return err == nil
}

// gccOrAuto prefers GCC for bootstrap.bat if it's available, otherwise lets
// the script auto-detect.
func gccOrAuto() []string {
	if which("gcc") {
		return []string{"gcc"}
	}
	return nil
}

// fullExeName resolves the complete executable name on Windows-likes: b2
// doesn't like compiler names without the extension there. On other systems
// the name is returned as-is (there's no PATHEXT to worry about).
func fullExeName(host axis.OS, exe string) (string, error) {
	if !host.WindowsLike() {
		return exe, nil
	}
	path, err := exec.LookPath(exe)
	if err != nil {
		return "", fmt.Errorf("executable %q could not be found", exe)
	}
	if filepath.Dir(exe) != "." {
		// Found relative to an explicit directory, keep the directory.
		return path, nil
	}
	// Found in PATH, the basename (with the extension) is enough.
	return filepath.Base(path), nil
}
