package boost

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/egor-tensin/cmake-common/internal/msg"
	"github.com/egor-tensin/cmake-common/internal/tempfile"
)

// Storage decides where a downloaded archive lives and for how long.
type Storage interface {
	// existing returns the path to a previously downloaded archive, or "".
	existing(v Version) string
	// write stores an archive by streaming fetch into it. The returned
	// release function disposes of the archive if it was only temporary.
	write(v Version, fetch func(io.Writer) error) (path string, release func() error, err error)
}

// PermanentStorage keeps archives in a cache directory and reuses them.
type PermanentStorage struct {
	Dir string
}

func (s *PermanentStorage) path(v Version) string {
	return filepath.Join(s.Dir, v.ArchiveName())
}

func (s *PermanentStorage) existing(v Version) string {
	path := s.path(v)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func (s *PermanentStorage) write(v Version, fetch func(io.Writer) error) (string, func() error, error) {
	path := s.path(v)
	// Exclusive creation: if the file appeared meanwhile, something else owns it.
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", nil, err
	}
	if err := fetch(file); err != nil {
		file.Close()
		os.Remove(path)
		return "", nil, err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", nil, err
	}
	// Cached archives survive the run.
	return path, func() error { return nil }, nil
}

// TemporaryStorage keeps the archive only long enough to unpack it.
type TemporaryStorage struct {
	Dir string
}

func (s *TemporaryStorage) existing(Version) string { return "" }

func (s *TemporaryStorage) write(v Version, fetch func(io.Writer) error) (string, func() error, error) {
	prefix := fmt.Sprintf("boost_%s_", v)
	path, remove, err := tempfile.Write(s.Dir, prefix, archiveExt, nil)
	if err != nil {
		return "", nil, err
	}
	file, err := os.OpenFile(path, os.O_WRONLY, 0o644)
	if err != nil {
		remove()
		return "", nil, err
	}
	if err := fetch(file); err != nil {
		file.Close()
		remove()
		return "", nil, err
	}
	if err := file.Close(); err != nil {
		remove()
		return "", nil, err
	}
	return path, remove, nil
}

const (
	downloadTries   = 3
	downloadBackoff = 5 * time.Second
)

// retry runs fn up to downloadTries times with exponentially growing pauses.
// Retrying is a download concern only; nothing else in this program retries.
func retry(fn func() error) error {
	pause := downloadBackoff
	var err error
	for attempt := 0; attempt < downloadTries; attempt++ {
		if attempt > 0 {
			msg.Error("retrying after %s", pause)
			time.Sleep(pause)
			pause *= 2
		}
		if err = fn(); err == nil {
			return nil
		}
		msg.Error("%v", err)
	}
	return err
}

func fetchURL(url string, w io.Writer) error {
	return retry(func() error {
		resp, err := http.Get(url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("GET %s: %s", url, resp.Status)
		}

		bar := msg.NewProgressBar(max(resp.ContentLength, 0), os.Stdout)
		if _, err := io.Copy(w, io.TeeReader(resp.Body, bar)); err != nil {
			return fmt.Errorf("GET %s: %w", url, err)
		}
		bar.Finish()
		return nil
	})
}

// fetchArchive downloads the release from the first mirror that works, or
// reuses a cached archive. release disposes of temporary archives and must be
// called once unpacking is done.
func fetchArchive(v Version, storage Storage) (path string, release func() error, err error) {
	if path := storage.existing(v); path != "" {
		msg.Info("using the existing Boost archive: %s", path)
		return path, func() error { return nil }, nil
	}

	for _, url := range v.DownloadURLs() {
		msg.Info("trying URL: %s", url)
		path, release, err := storage.write(v, func(w io.Writer) error {
			return fetchURL(url, w)
		})
		if err == nil {
			return path, release, nil
		}
		msg.Error("couldn't download from this mirror: %v", err)
	}
	return "", nil, errors.New("couldn't download Boost from any of the mirrors")
}

// DownloadParams describes one download request.
type DownloadParams struct {
	Version   Version
	UnpackDir string // "." unless specified
	CacheDir  string // archives are kept here if non-empty
	FromGit   bool   // clone the superproject instead of fetching an archive
}

// Download fetches and unpacks a Boost release and returns its directory.
func Download(params DownloadParams) (*Dir, error) {
	// A cached distribution is kept next to its archive unless told otherwise.
	if params.UnpackDir == "" {
		params.UnpackDir = params.CacheDir
		if params.UnpackDir == "" {
			params.UnpackDir = "."
		}
	}

	if params.FromGit {
		return cloneRelease(params.Version, params.UnpackDir)
	}

	var storage Storage
	if params.CacheDir != "" {
		storage = &PermanentStorage{Dir: params.CacheDir}
	} else {
		storage = &TemporaryStorage{Dir: params.UnpackDir}
	}

	path, release, err := fetchArchive(params.Version, storage)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(); err != nil {
			msg.Error("%v", err)
		}
	}()

	return Unpack(path, params.UnpackDir, params.Version.DirName())
}
