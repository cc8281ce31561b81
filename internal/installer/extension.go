package installer

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Extension is a recognized asset filename suffix. The set is closed:
// every asset maps to exactly one Extension, or to none, in which case
// the asset is treated as a bare executable.
type Extension string

// The recognized extensions. Multi-part suffixes like ".tar.gz" are
// distinct values so they are never misread as their shorter tail.
const (
	ExtAppImage Extension = ".AppImage"
	ExtBat      Extension = ".bat"
	ExtBz       Extension = ".bz"
	ExtBz2      Extension = ".bz2"
	ExtExe      Extension = ".exe"
	ExtGz       Extension = ".gz"
	ExtPyz      Extension = ".pyz"
	ExtTar      Extension = ".tar"
	ExtTarBz    Extension = ".tar.bz"
	ExtTarBz2   Extension = ".tar.bz2"
	ExtTarGz    Extension = ".tar.gz"
	ExtTarXz    Extension = ".tar.xz"
	ExtTbz      Extension = ".tbz"
	ExtTbz2     Extension = ".tbz2"
	ExtTgz      Extension = ".tgz"
	ExtTxz      Extension = ".txz"
	ExtXz       Extension = ".xz"
	ExtZip      Extension = ".zip"
)

// Extensions lists every recognized extension in canonical order. It is
// the iteration surface for code that needs the full set, such as the
// Windows-only suffix list.
var Extensions = []Extension{
	ExtAppImage,
	ExtBat,
	ExtBz,
	ExtBz2,
	ExtExe,
	ExtGz,
	ExtPyz,
	ExtTar,
	ExtTarBz,
	ExtTarBz2,
	ExtTarGz,
	ExtTarXz,
	ExtTbz,
	ExtTbz2,
	ExtTgz,
	ExtTxz,
	ExtXz,
	ExtZip,
}

// String returns the extension including its leading dot.
func (e Extension) String() string {
	return string(e)
}

// WithoutDot returns the extension without its leading dot, the form
// used when rewriting an install path's extension.
func (e Extension) WithoutDot() string {
	return strings.TrimPrefix(string(e), ".")
}

// IsTarball reports whether the extension denotes a tar container,
// compressed or not.
func (e Extension) IsTarball() bool {
	switch e {
	case ExtTar, ExtTarBz, ExtTarBz2, ExtTarGz, ExtTarXz, ExtTbz, ExtTbz2, ExtTgz, ExtTxz:
		return true
	}
	return false
}

// IsBareCompression reports whether the extension denotes a compressed
// single file with no tar layer.
func (e Extension) IsBareCompression() bool {
	switch e {
	case ExtBz, ExtBz2, ExtGz, ExtXz:
		return true
	}
	return false
}

// IsWindowsOnly reports whether the extension only ever appears on
// Windows executables.
func (e Extension) IsWindowsOnly() bool {
	return e == ExtBat || e == ExtExe
}

// PreserveOnInstall reports whether a matched source file carrying this
// extension keeps it on the installed file, overriding whatever
// extension the caller-supplied destination had.
func (e Extension) PreserveOnInstall() bool {
	switch e {
	case ExtAppImage, ExtBat, ExtExe, ExtPyz:
		return true
	}
	return false
}

// windowsExtensions returns the extensions that identify Windows
// executables, in canonical order.
func windowsExtensions() []Extension {
	var exts []Extension
	for _, e := range Extensions {
		if e.IsWindowsOnly() {
			exts = append(exts, e)
		}
	}
	return exts
}

// ExtensionFromPath classifies a file path by its suffix. The longest
// recognized suffix wins, so "project.tar.gz" classifies as ".tar.gz",
// never ".gz". Matching is case-sensitive against the canonical
// spellings. A path with an unrecognized or missing extension returns
// ok=false; both installers treat that as "the asset is already the
// executable". The only error is ErrClassification, for an extension
// that is not valid UTF-8 text.
func ExtensionFromPath(path string) (Extension, bool, error) {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); !utf8.ValidString(ext) {
		return "", false, fmt.Errorf("%w: extension of %q is not valid UTF-8", ErrClassification, name)
	}

	var best Extension
	for _, e := range Extensions {
		if !strings.HasSuffix(name, string(e)) {
			continue
		}
		// Require something before the suffix: ".tar" alone is a
		// hidden file, not a tarball named "".
		if len(name) == len(string(e)) {
			continue
		}
		if len(string(e)) > len(string(best)) {
			best = e
		}
	}
	if best == "" {
		return "", false, nil
	}
	return best, true, nil
}

// setExtension replaces path's final extension (if any) with ext, which
// is given without a leading dot. Mirrors the rewrite applied when a
// preserved extension comes from the matched source entry.
func setExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

// preservedInstallPath returns installPath with its extension rewritten
// to match sourceName's extension when that extension is preserved on
// install, and installPath unchanged otherwise.
func preservedInstallPath(installPath, sourceName string) (string, error) {
	ext, ok, err := ExtensionFromPath(sourceName)
	if err != nil {
		return "", err
	}
	if !ok || !ext.PreserveOnInstall() {
		return installPath, nil
	}
	return setExtension(installPath, ext.WithoutDot()), nil
}
