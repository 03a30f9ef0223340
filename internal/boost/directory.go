package boost

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/egor-tensin/cmake-common/internal/axis"
	"github.com/egor-tensin/cmake-common/internal/msg"
	"github.com/egor-tensin/cmake-common/internal/run"
)

// Dir is an unpacked Boost release tree.
type Dir struct {
	Path string
}

// NewDir wraps an existing Boost directory.
func NewDir(path string) (*Dir, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("Boost directory doesn't exist: %s", abs)
	}
	return &Dir{Path: abs}, nil
}

func (d *Dir) bootstrapScript(host axis.OS) string {
	if host.WindowsLike() {
		return filepath.Join(d.Path, "bootstrap.bat")
	}
	return filepath.Join(d.Path, "bootstrap.sh")
}

func (d *Dir) b2Path(host axis.OS) string {
	name := "b2"
	if host.WindowsLike() {
		name = "b2.exe"
	}
	return filepath.Join(d.Path, name)
}

// Bootstrap builds b2 itself by running the bootstrap script.
func (d *Dir) Bootstrap(host axis.OS, args ...string) error {
	return run.CommandIn(d.Path, d.bootstrapScript(host), args...)
}

// BootstrapIfNeeded bootstraps unless a b2 binary is already there. A git
// checkout or a fresh archive has no b2; a previously built tree does.
func (d *Dir) BootstrapIfNeeded(host axis.OS, args ...string) error {
	if _, err := os.Stat(d.b2Path(host)); err == nil {
		msg.Info("b2 is already here, skipping bootstrap")
		return nil
	}
	return d.Bootstrap(host, args...)
}

// B2 runs b2 from the Boost directory.
func (d *Dir) B2(host axis.OS, args ...string) error {
	return run.CommandIn(d.Path, d.b2Path(host), args...)
}

// stagedLibraryPattern matches the static/import/shared library files b2
// leaves under a stage directory.
const stagedLibraryPattern = "lib/*.{a,so,so.*,dylib,lib,dll}"

// StagedLibraries lists the libraries staged under stageDir.
func StagedLibraries(stageDir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(stageDir), stagedLibraryPattern)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(stageDir, filepath.FromSlash(m)))
	}
	return paths, nil
}
