package installer

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// tarReaderFor opens path and returns a tar reader layered over the
// right streaming decompressor, chosen from the path's final extension:
// plain tar, bzip2, gzip, or xz. The returned closer releases the
// underlying file and must be closed by the caller. A recognized tar
// filename with an unrecognized compressor tag fails with
// ErrUnsupportedCompression.
//
// The decompressing reader cannot seek backward, so a caller that needs
// to revisit entries must call tarReaderFor again for a fresh pass.
func tarReaderFor(path string) (*tar.Reader, io.Closer, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, nil, err
	}

	ext := strings.TrimPrefix(filepath.Ext(filepath.Base(path)), ".")
	switch ext {
	case "", "tar":
		return tar.NewReader(f), f, nil
	case "bz", "tbz", "bz2", "tbz2":
		return tar.NewReader(bzip2.NewReader(f)), f, nil
	case "gz", "tgz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("open gzip stream in %s: %w", path, err)
		}
		return tar.NewReader(gz), f, nil
	case "xz", "txz":
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("open xz stream in %s: %w", path, err)
		}
		return tar.NewReader(xzr), f, nil
	default:
		f.Close()
		return nil, nil, fmt.Errorf("%w: don't know how to uncompress a tarball with extension %q", ErrUnsupportedCompression, ext)
	}
}

// decompressorFor opens path and returns a reader that lazily
// decompresses a bare-compressed single file (no tar layer). kind must
// be one of the bare compression extensions.
func decompressorFor(path string, kind Extension) (io.Reader, io.Closer, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, nil, err
	}

	switch kind {
	case ExtBz, ExtBz2:
		return bzip2.NewReader(f), f, nil
	case ExtGz:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("open gzip stream in %s: %w", path, err)
		}
		return gz, f, nil
	case ExtXz:
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("open xz stream in %s: %w", path, err)
		}
		return xzr, f, nil
	default:
		f.Close()
		return nil, nil, fmt.Errorf("%w: %q is not a bare compression format", ErrUnsupportedCompression, kind)
	}
}

// openFile opens path for reading with the error annotated.
func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file at %s: %w", path, err)
	}
	return f, nil
}
