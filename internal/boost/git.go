package boost

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	git "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"

	"github.com/egor-tensin/cmake-common/internal/msg"
)

const boostSuperprojectURL = "https://github.com/boostorg/boost.git"

// cloneRelease checks out a release tag of the boostorg/boost superproject.
// This is the fallback for when the release mirrors are unavailable; note
// that a git checkout lacks the pre-generated headers of a release archive,
// so bootstrap has more work to do.
func cloneRelease(version Version, destDir string) (*Dir, error) {
	boostPath := filepath.Join(destDir, version.DirName())
	if _, err := os.Stat(boostPath); err == nil {
		return nil, fmt.Errorf("Boost directory already exists: %s", boostPath)
	}
	msg.Info("cloning %s (tag %s) to: %s", boostSuperprojectURL, version.GitTag(), boostPath)

	indicator := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	indicator.Suffix = " cloning " + version.GitTag()
	indicator.Start()
	defer indicator.Stop()

	_, err := git.PlainClone(boostPath, &git.CloneOptions{
		URL:               boostSuperprojectURL,
		ReferenceName:     plumbing.NewTagReferenceName(version.GitTag()),
		SingleBranch:      true,
		Depth:             1,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to clone Boost: %w", err)
	}
	return NewDir(boostPath)
}
