package boost

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/egor-tensin/cmake-common/internal/msg"
)

// Unpack extracts a release archive into destDir and returns the unpacked
// Boost directory. Refuses to overwrite: an existing Boost directory means a
// previous run already claimed it.
func Unpack(archivePath, destDir, dirName string) (*Dir, error) {
	boostPath := filepath.Join(destDir, dirName)
	if _, err := os.Stat(boostPath); err == nil {
		return nil, fmt.Errorf("Boost directory already exists: %s", boostPath)
	}
	msg.Info("unpacking Boost to: %s", boostPath)

	var err error
	switch {
	case strings.HasSuffix(archivePath, ".tar.gz") || strings.HasSuffix(archivePath, ".tgz"):
		err = extractTarGz(archivePath, destDir)
	case strings.HasSuffix(archivePath, ".zip"):
		err = extractZip(archivePath, destDir)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", archivePath)
	}
	if err != nil {
		return nil, err
	}
	return NewDir(boostPath)
}

// securePath rejects entries that would escape the destination directory.
// The destination is made absolute first: joining onto a relative "." would
// clean the prefix away and fail the containment check for every entry.
func securePath(destDir, name string) (string, error) {
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(absDest, filepath.FromSlash(name))
	if !strings.HasPrefix(path, absDest+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes the destination: %s", name)
	}
	return path, nil
}

func extractTarGz(archivePath, destDir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("failed to decompress %s: %w", archivePath, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		path, err := securePath(destDir, header.Name)
		if err != nil {
			return err
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			dest, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(header.Mode)&0o777)
			if err != nil {
				return err
			}
			if _, err := io.Copy(dest, tr); err != nil {
				dest.Close()
				return err
			}
			if err := dest.Close(); err != nil {
				return err
			}
		}
		// Links and other exotic entries don't occur in release archives.
	}
	return nil
}

// extractZip extracts entries in parallel; unlike tar, zip allows random
// access, and a Boost archive has tens of thousands of small files.
func extractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	var group errgroup.Group
	group.SetLimit(runtime.NumCPU())

	for _, entry := range reader.File {
		path, err := securePath(destDir, entry.Name)
		if err != nil {
			return err
		}
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}

		group.Go(func() error {
			src, err := entry.Open()
			if err != nil {
				return err
			}
			defer src.Close()
			dest, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, entry.Mode()&0o777)
			if err != nil {
				return err
			}
			if _, err := io.Copy(dest, src); err != nil {
				dest.Close()
				return err
			}
			return dest.Close()
		})
	}
	return group.Wait()
}
