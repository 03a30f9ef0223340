// Package tempfile creates scoped auxiliary files: created exclusively,
// handed to the caller as a closed path, removed on release. The handle is
// closed before the path is returned because on Windows a file cannot be
// reopened by name while another handle to it is still open.
package tempfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Write creates a uniquely named file in dir (os.TempDir() if empty) with the
// given contents and returns its path along with a release function that
// removes it. Creation is exclusive: a name collision fails instead of
// silently overwriting another request's file.
func Write(dir, prefix, suffix string, contents []byte) (string, func() error, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, prefix+uuid.NewString()+suffix)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", nil, err
	}
	if _, err := file.Write(contents); err != nil {
		file.Close()
		os.Remove(path)
		return "", nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", nil, fmt.Errorf("close %s: %w", path, err)
	}

	release := func() error {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
		return nil
	}
	return path, release, nil
}
