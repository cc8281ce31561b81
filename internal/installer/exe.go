package installer

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ExeInstaller installs exactly one executable from an asset to a
// target path. The asset may be an archive containing the executable, a
// bare-compressed executable, or the executable itself.
type ExeInstaller struct {
	installPath string
	exeStem     string
	isWindows   bool
	extensions  []Extension
	log         Logger
}

// NewExeInstaller creates an installer that places the executable named
// by exe (its base name, without extension) at installPath. isWindows
// selects the target platform's matching rules. A nil logger disables
// logging.
func NewExeInstaller(installPath, exe string, isWindows bool, log Logger) *ExeInstaller {
	var extensions []Extension
	if isWindows {
		extensions = windowsExtensions()
	}
	return &ExeInstaller{
		installPath: installPath,
		exeStem:     exe,
		isWindows:   isWindows,
		extensions:  extensions,
		log:         loggerOrDefault(log),
	}
}

// Install extracts or copies the executable from asset, writes it to
// the install path, and marks it executable. It returns the final
// install path, which differs from the configured one when the matched
// source name carries a preserved extension such as .pyz or .exe.
func (inst *ExeInstaller) Install(asset *Asset) (string, error) {
	installed, err := inst.extractExecutable(asset.Path())
	if err != nil {
		return "", err
	}
	if err := chmodExecutable(installed); err != nil {
		return "", err
	}
	inst.log.Info("installed executable", "path", installed)
	return installed, nil
}

// extractExecutable dispatches on the asset's classified format.
func (inst *ExeInstaller) extractExecutable(src string) (string, error) {
	ext, ok, err := ExtensionFromPath(src)
	if err != nil {
		return "", err
	}
	switch {
	case ok && ext.IsTarball():
		return inst.extractFromTarball(src)
	case ok && ext.IsBareCompression():
		if err := inst.decompressTo(src, ext); err != nil {
			return "", err
		}
		return inst.installPath, nil
	case ok && ext == ExtZip:
		return inst.extractFromZip(src)
	default:
		// Self-contained formats (.AppImage, .bat, .exe, .pyz) and
		// anything unrecognized: the asset is already the executable.
		return inst.copyExecutable(src)
	}
}

// extractFromTarball selects an entry with a first scan, then reopens
// the tarball and walks to the selected index to extract it. The second
// pass is required because the streaming decompressor cannot rewind.
func (inst *ExeInstaller) extractFromTarball(src string) (string, error) {
	inst.log.Debug("extracting executable from tarball", "path", src)

	idx, found, err := inst.bestTarballMatch(src)
	if err != nil {
		return "", err
	}
	if !found {
		return "", inst.noMatchError()
	}

	tr, closer, err := tarReaderFor(src)
	if err != nil {
		return "", err
	}
	defer closer.Close()

	for i := 0; ; i++ {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read tar entry in %s: %w", src, err)
		}
		if i != idx {
			continue
		}

		installPath, err := preservedInstallPath(inst.installPath, hdr.Name)
		if err != nil {
			return "", err
		}
		inst.log.Debug("extracting tarball entry", "entry", hdr.Name, "to", installPath)
		if err := inst.createInstallDir(installPath); err != nil {
			return "", err
		}
		if err := writeFileFrom(installPath, tr); err != nil {
			return "", err
		}
		return installPath, nil
	}

	return "", inst.noMatchError()
}

// extractFromZip selects and extracts the matching entry in one pass;
// zip supports random access, so no rescan is needed.
func (inst *ExeInstaller) extractFromZip(src string) (string, error) {
	inst.log.Debug("extracting executable from zip file", "path", src)

	zr, err := zip.OpenReader(src)
	if err != nil {
		return "", fmt.Errorf("open zip file at %s: %w", src, err)
	}
	defer zr.Close()

	zf := inst.bestZipMatch(&zr.Reader)
	if zf == nil {
		return "", inst.noMatchError()
	}

	installPath, err := preservedInstallPath(inst.installPath, zf.Name)
	if err != nil {
		return "", err
	}
	inst.log.Debug("extracting zip entry", "entry", zf.Name, "to", installPath)

	rc, err := zf.Open()
	if err != nil {
		return "", fmt.Errorf("open zip entry %s: %w", zf.Name, err)
	}
	buf, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return "", fmt.Errorf("read zip entry %s: %w", zf.Name, err)
	}

	if err := inst.createInstallDir(installPath); err != nil {
		return "", err
	}
	if err := os.WriteFile(installPath, buf, 0o755); err != nil {
		return "", fmt.Errorf("write %s: %w", installPath, err)
	}
	return installPath, nil
}

// decompressTo streams a bare-compressed asset straight to the install
// path. The file itself is the payload, so no entry matching happens.
func (inst *ExeInstaller) decompressTo(src string, kind Extension) error {
	inst.log.Debug("uncompressing executable", "path", src, "format", kind.WithoutDot())

	r, closer, err := decompressorFor(src, kind)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := inst.createInstallDir(inst.installPath); err != nil {
		return err
	}
	return writeFileFrom(inst.installPath, r)
}

// copyExecutable copies the asset byte-for-byte to the install path.
func (inst *ExeInstaller) copyExecutable(src string) (string, error) {
	inst.log.Debug("copying executable to final location", "path", src)

	installPath, err := preservedInstallPath(inst.installPath, src)
	if err != nil {
		return "", err
	}
	if err := inst.createInstallDir(installPath); err != nil {
		return "", err
	}

	in, err := openFile(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	if err := writeFileFrom(installPath, in); err != nil {
		return "", fmt.Errorf("copy %s to %s: %w", src, installPath, err)
	}
	return installPath, nil
}

// createInstallDir creates the install path's parent directory,
// recursively. An install path with no parent component (a bare file
// name, or a filesystem root) is rejected before anything is written.
func (inst *ExeInstaller) createInstallDir(installPath string) error {
	parent := filepath.Dir(installPath)
	if parent == installPath || installPath == filepath.Base(installPath) {
		return fmt.Errorf("%w: %s", ErrInstallDirectory, installPath)
	}
	inst.log.Debug("creating install directory", "path", parent)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create directory at %s: %w", parent, err)
	}
	return nil
}

// writeFileFrom creates path and fills it from r.
func writeFileFrom(path string, r io.Reader) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
