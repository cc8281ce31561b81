package installer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/vemoo/ubi/internal/testutil"
)

func TestTarReaderForReadsEveryCompression(t *testing.T) {
	tmpDir := t.TempDir()
	entries := []testutil.Entry{{Name: "project", Body: "xyz", Mode: 0o755}}

	names := []string{
		"project.tar",
		"project.tar.gz",
		"project.tgz",
		"project.tar.xz",
		"project.txz",
	}
	paths := make([]string, 0, len(names)+2)
	for _, name := range names {
		p := filepath.Join(tmpDir, name)
		testutil.WriteTarball(t, p, entries)
		paths = append(paths, p)
	}
	for _, name := range []string{"project.tar.bz2", "project.tbz"} {
		p := filepath.Join(tmpDir, name)
		testutil.WriteBzip2Tarball(t, p)
		paths = append(paths, p)
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			tr, closer, err := tarReaderFor(path)
			if err != nil {
				t.Fatalf("tarReaderFor: %v", err)
			}
			defer func() { _ = closer.Close() }()

			hdr, err := tr.Next()
			if err != nil {
				t.Fatalf("read entry: %v", err)
			}
			if hdr.Name != "project" {
				t.Errorf("got entry %q, want %q", hdr.Name, "project")
			}
			body, err := io.ReadAll(tr)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if string(body) != "xyz" {
				t.Errorf("got body %q, want %q", body, "xyz")
			}
		})
	}
}

func TestTarReaderForNoExtensionIsPlainTar(t *testing.T) {
	tmpDir := t.TempDir()
	tarPath := filepath.Join(tmpDir, "asset.tar")
	testutil.WriteTarball(t, tarPath, []testutil.Entry{{Name: "project", Body: "xyz", Mode: 0o755}})

	bare := filepath.Join(tmpDir, "asset")
	raw, err := os.ReadFile(tarPath)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if err := os.WriteFile(bare, raw, 0o644); err != nil {
		t.Fatalf("write bare fixture: %v", err)
	}

	tr, closer, err := tarReaderFor(bare)
	if err != nil {
		t.Fatalf("tarReaderFor: %v", err)
	}
	defer func() { _ = closer.Close() }()
	if _, err := tr.Next(); err != nil {
		t.Fatalf("read entry: %v", err)
	}
}

func TestTarReaderForUnsupportedCompression(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "project.tar.zst")
	if err := os.WriteFile(path, []byte("not really zstd"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, _, err := tarReaderFor(path)
	if !errors.Is(err, ErrUnsupportedCompression) {
		t.Errorf("got %v, want ErrUnsupportedCompression", err)
	}
}

func TestTarReaderForMissingFile(t *testing.T) {
	_, _, err := tarReaderFor(filepath.Join(t.TempDir(), "nope.tar"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestDecompressorFor(t *testing.T) {
	tmpDir := t.TempDir()

	gzPath := filepath.Join(tmpDir, "project.gz")
	testutil.WriteGzipFile(t, gzPath, "xyz")
	xzPath := filepath.Join(tmpDir, "project.xz")
	testutil.WriteXzFile(t, xzPath, "xyz")
	bzPath := filepath.Join(tmpDir, "project.bz2")
	testutil.WriteBzip2File(t, bzPath)

	tests := []struct {
		path string
		kind Extension
	}{
		{gzPath, ExtGz},
		{xzPath, ExtXz},
		{bzPath, ExtBz2},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			r, closer, err := decompressorFor(tt.path, tt.kind)
			if err != nil {
				t.Fatalf("decompressorFor: %v", err)
			}
			defer func() { _ = closer.Close() }()

			body, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(body) != "xyz" {
				t.Errorf("got %q, want %q", body, "xyz")
			}
		})
	}
}
