// Package testutil builds the archive fixtures the installer tests
// exercise: tarballs under every supported compression, zip files, and
// bare-compressed single files, all with controlled entry order and
// permission bits.
package testutil

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

// Entry describes one archive member. Entries are written in slice
// order, which matters: the installer's matcher resolves ties by stored
// order.
type Entry struct {
	Name string
	Body string
	Mode int64
	Dir  bool
}

// WriteTarball writes a tar archive at path containing entries, in
// order. The compression is chosen from path's extension: .tar is
// plain, .tar.gz/.tgz gzip, .tar.xz/.txz xz. Bzip2 variants cannot be
// produced in-process (the standard library only decodes bzip2); use
// WriteBzip2Tarball for those.
func WriteTarball(t *testing.T, path string, entries []Entry) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	var w io.WriteCloser
	switch {
	case strings.HasSuffix(path, ".tar"):
		w = nopWriteCloser{f}
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		w = gzip.NewWriter(f)
	case strings.HasSuffix(path, ".tar.xz"), strings.HasSuffix(path, ".txz"):
		xw, err := xz.NewWriter(f)
		if err != nil {
			t.Fatalf("create xz writer for %s: %v", path, err)
		}
		w = xw
	default:
		t.Fatalf("WriteTarball: unsupported archive name %s", path)
	}

	tw := tar.NewWriter(w)
	for _, entry := range entries {
		hdr := &tar.Header{
			Name: entry.Name,
			Mode: entry.Mode,
		}
		if entry.Dir {
			hdr.Typeflag = tar.TypeDir
		} else {
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(entry.Body))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write tar header for %s: %v", entry.Name, err)
		}
		if !entry.Dir {
			if _, err := tw.Write([]byte(entry.Body)); err != nil {
				t.Fatalf("write tar content for %s: %v", entry.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close compressor: %v", err)
	}
}

// WriteZip writes a zip archive at path containing entries, in order.
func WriteZip(t *testing.T, path string, entries []Entry) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	zw := zip.NewWriter(f)
	for _, entry := range entries {
		if entry.Dir {
			name := strings.TrimSuffix(entry.Name, "/") + "/"
			if _, err := zw.Create(name); err != nil {
				t.Fatalf("write zip dir %s: %v", entry.Name, err)
			}
			continue
		}
		hdr := &zip.FileHeader{Name: entry.Name, Method: zip.Deflate}
		hdr.SetMode(os.FileMode(entry.Mode))
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("write zip header for %s: %v", entry.Name, err)
		}
		if _, err := w.Write([]byte(entry.Body)); err != nil {
			t.Fatalf("write zip content for %s: %v", entry.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}
}

// WriteGzipFile writes a bare gzip-compressed file (no tar layer)
// holding content.
func WriteGzipFile(t *testing.T, path, content string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(content)); err != nil {
		t.Fatalf("write gzip content: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
}

// WriteXzFile writes a bare xz-compressed file (no tar layer) holding
// content.
func WriteXzFile(t *testing.T, path, content string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	xw, err := xz.NewWriter(f)
	if err != nil {
		t.Fatalf("create xz writer: %v", err)
	}
	if _, err := xw.Write([]byte(content)); err != nil {
		t.Fatalf("write xz content: %v", err)
	}
	if err := xw.Close(); err != nil {
		t.Fatalf("close xz writer: %v", err)
	}
}

// The standard library decodes bzip2 but cannot encode it, so bzip2
// fixtures are pre-compressed and embedded. Both decode with
// compress/bzip2.
const (
	// bzip2Tarball is a bzip2-compressed tar holding a single entry
	// "project" with mode 0755 and body "xyz".
	bzip2Tarball = "QlpoOTFBWSZTWShQaokAAG97gMmAAADAAFqAACBqEN5wCAggAFRWgAAAaASRQNB6gDQN/OQ6EH1aEIwnEiMb7kCGBiHE7CNHQZMSzaVCQlfGZWxodiPu+mAAQnxdyRThQkChQaok"

	// bzip2File is a bzip2-compressed bare file holding "xyz".
	bzip2File = "QlpoOTFBWSZTWfAxF1EAAAAAgABwIAAhmBmEYXckU4UJDwMRdRA="
)

// WriteBzip2Tarball writes a bzip2-compressed tarball at path holding a
// single executable entry named "project" with body "xyz". Use it for
// any of the .tar.bz, .tar.bz2, .tbz, and .tbz2 spellings.
func WriteBzip2Tarball(t *testing.T, path string) {
	t.Helper()
	writeBase64(t, path, bzip2Tarball)
}

// WriteBzip2File writes a bare bzip2-compressed file at path holding
// "xyz".
func WriteBzip2File(t *testing.T, path string) {
	t.Helper()
	writeBase64(t, path, bzip2File)
}

// WriteFile writes a plain file with content, creating parent
// directories as needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create parent dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeBase64(t *testing.T, path, encoded string) {
	t.Helper()

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("decode embedded fixture: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
