package boost

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func writeTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)
	for name, contents := range files {
		if err := tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(contents)),
		}); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(contents)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	zw := zip.NewWriter(out)
	for name, contents := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(contents)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestUnpackTarGz(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "boost_1_71_0.tar.gz")
	writeTarGz(t, archive, map[string]string{
		"boost_1_71_0/bootstrap.sh":       "#!/bin/sh\n",
		"boost_1_71_0/boost/version.hpp":  "#define BOOST_VERSION 107100\n",
		"boost_1_71_0/libs/core/build.md": "core\n",
	})

	dir, err := Unpack(archive, tmp, "boost_1_71_0")
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	contents, err := os.ReadFile(filepath.Join(dir.Path, "boost", "version.hpp"))
	if err != nil {
		t.Fatalf("unpacked file is missing: %v", err)
	}
	if string(contents) != "#define BOOST_VERSION 107100\n" {
		t.Errorf("unexpected contents: %q", contents)
	}

	// A second unpack must refuse to clobber the directory.
	if _, err := Unpack(archive, tmp, "boost_1_71_0"); err == nil {
		t.Error("expected an error when the Boost directory already exists")
	}
}

func TestUnpackZip(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "boost_1_71_0.zip")
	writeZip(t, archive, map[string]string{
		"boost_1_71_0/bootstrap.bat":     "@echo off\r\n",
		"boost_1_71_0/boost/config.hpp":  "// config\n",
		"boost_1_71_0/tools/build/b2.md": "b2\n",
	})

	dir, err := Unpack(archive, tmp, "boost_1_71_0")
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir.Path, "tools", "build", "b2.md")); err != nil {
		t.Errorf("unpacked file is missing: %v", err)
	}
}

func TestUnpackRelativeDest(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "boost_1_71_0.tar.gz")
	writeTarGz(t, archive, map[string]string{
		"boost_1_71_0/bootstrap.sh":      "#!/bin/sh\n",
		"boost_1_71_0/boost/version.hpp": "#define BOOST_VERSION 107100\n",
	})

	// "." is the default destination of a plain download.
	t.Chdir(tmp)
	dir, err := Unpack(archive, ".", "boost_1_71_0")
	if err != nil {
		t.Fatalf("Unpack into a relative destination: %v", err)
	}
	if !filepath.IsAbs(dir.Path) {
		t.Errorf("Dir.Path = %q, want an absolute path", dir.Path)
	}
	if _, err := os.Stat(filepath.Join(tmp, "boost_1_71_0", "bootstrap.sh")); err != nil {
		t.Errorf("unpacked file is missing: %v", err)
	}
}

func TestUnpackRejectsEscapingEntries(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "evil.tar.gz")
	writeTarGz(t, archive, map[string]string{
		"../evil.txt": "escape\n",
	})

	dest := filepath.Join(tmp, "dest")
	if err := os.Mkdir(dest, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := Unpack(archive, dest, "boost_1_71_0"); err == nil {
		t.Fatal("expected an error for an entry escaping the destination")
	}
	if _, err := os.Stat(filepath.Join(tmp, "evil.txt")); err == nil {
		t.Error("the escaping entry must not be written")
	}
}

func TestUnpackUnsupportedFormat(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "boost_1_71_0.tar.xz")
	if err := os.WriteFile(archive, []byte("not really"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Unpack(archive, tmp, "boost_1_71_0"); err == nil {
		t.Fatal("expected an error for an unsupported archive format")
	}
}
