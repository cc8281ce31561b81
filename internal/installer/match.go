package installer

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// isExactMatch reports whether an archive entry's base name names the
// wanted executable exactly. On Windows the candidate must be the
// lowercased stem plus one of the Windows-only extensions; elsewhere it
// must equal the stem verbatim.
func (inst *ExeInstaller) isExactMatch(fileName string) bool {
	if len(inst.extensions) == 0 {
		return fileName == inst.exeStem
	}
	for _, ext := range inst.extensions {
		if fileName == strings.ToLower(inst.exeStem)+ext.String() {
			return true
		}
	}
	return false
}

// isPartialMatch reports whether an archive entry's base name starts
// with the wanted stem. On Windows it must additionally end with one of
// the Windows-only extensions, compared case-insensitively.
func (inst *ExeInstaller) isPartialMatch(fileName string) bool {
	if !strings.HasPrefix(fileName, inst.exeStem) {
		return false
	}
	if len(inst.extensions) == 0 {
		return true
	}
	lower := strings.ToLower(fileName)
	for _, ext := range inst.extensions {
		if strings.HasSuffix(lower, ext.String()) {
			return true
		}
	}
	return false
}

// bestTarballMatch walks the tarball's entries once, in stored order,
// and returns the index of the entry to extract. An exact match wins
// immediately; otherwise the first eligible partial match does. The
// index counts every entry, so a second pass can find the same entry by
// position alone.
func (inst *ExeInstaller) bestTarballMatch(src string) (int, bool, error) {
	tr, closer, err := tarReaderFor(src)
	if err != nil {
		return 0, false, err
	}
	defer closer.Close()

	partial := -1
	for i := 0; ; i++ {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, false, fmt.Errorf("read tar entry in %s: %w", src, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := path.Base(hdr.Name)
		inst.log.Debug("found tarball entry", "path", hdr.Name)
		if inst.isExactMatch(name) {
			inst.log.Debug("tarball entry is an exact match", "name", name)
			return i, true, nil
		}
		if !inst.isPartialMatch(name) {
			continue
		}
		// A tarball created on Windows may carry no mode bits at all,
		// so the executable-bit check only applies off Windows.
		if inst.isWindows || hdr.Mode&0o111 != 0 {
			inst.log.Debug("tarball entry is a partial match", "name", name)
			if partial < 0 {
				partial = i
			}
		}
	}

	if partial < 0 {
		return 0, false, nil
	}
	return partial, true, nil
}

// bestZipMatch scans the zip's entries in stored order and returns the
// entry to extract, or nil when nothing matches. Zip needs only this
// one pass because it supports random access. Zip central directories
// carry no dependable Unix mode, so partial matches never check the
// executable bit.
func (inst *ExeInstaller) bestZipMatch(zr *zip.Reader) *zip.File {
	var partial *zip.File
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}

		name := path.Base(zf.Name)
		if inst.isExactMatch(name) {
			inst.log.Debug("zip entry is an exact match", "name", name)
			return zf
		}
		if inst.isPartialMatch(name) {
			inst.log.Debug("zip entry is a partial match", "name", name)
			if partial == nil {
				partial = zf
			}
		}
	}
	return partial
}

// noMatchError describes the name patterns the archive was expected to
// contain.
func (inst *ExeInstaller) noMatchError() error {
	var names []string
	if len(inst.extensions) == 0 {
		names = []string{inst.exeStem + "*"}
	} else {
		for _, ext := range inst.extensions {
			names = append(names, inst.exeStem+"*"+ext.String())
		}
	}
	return fmt.Errorf("%w: could not find any files matching [%s] in the downloaded archive file",
		ErrNoMatchingEntry, strings.Join(names, " "))
}
