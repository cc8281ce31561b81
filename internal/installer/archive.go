package installer

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ArchiveInstaller unpacks an entire asset into an install root. After
// extraction it collapses one redundant top-level directory if the
// archive wrapped its whole tree in one, so the on-disk layout ends up
// identical across platforms regardless of the archive's packaging
// convention (for example a `project-x86_64-linux/` wrapper).
type ArchiveInstaller struct {
	installRoot string
	log         Logger
}

// NewArchiveInstaller creates an installer that unpacks archives into
// installRoot. A nil logger disables logging.
func NewArchiveInstaller(installRoot string, log Logger) *ArchiveInstaller {
	return &ArchiveInstaller{
		installRoot: installRoot,
		log:         loggerOrDefault(log),
	}
}

// Install extracts every entry of asset into the install root and then
// applies the flattening heuristic. Only tarballs and zip files are
// accepted; any other format fails with ErrNotAnArchive.
func (inst *ArchiveInstaller) Install(asset *Asset) error {
	src := asset.Path()
	ext, ok, err := ExtensionFromPath(src)
	if err != nil {
		return err
	}

	switch {
	case ok && ext.IsTarball():
		if err := inst.extractTarball(src); err != nil {
			return err
		}
	case ok && ext == ExtZip:
		if err := inst.extractZip(src); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s does not appear to be an archive file, so its contents cannot be extracted", ErrNotAnArchive, src)
	}

	wrapper, flatten, err := inst.flattenableWrapper()
	if err != nil {
		return err
	}
	if !flatten {
		inst.log.Debug("extracted archive did not contain a common top-level directory")
	} else if err := inst.moveContentsUpOneDir(wrapper); err != nil {
		return err
	}

	inst.log.Info("installed contents of archive", "root", inst.installRoot)
	return nil
}

// extractTarball unpacks every tar entry under the install root,
// preserving relative paths and whatever permission bits the archive
// records.
func (inst *ArchiveInstaller) extractTarball(src string) error {
	inst.log.Debug("extracting entire tarball", "path", src)

	tr, closer, err := tarReaderFor(src)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := os.MkdirAll(inst.installRoot, 0o755); err != nil {
		return fmt.Errorf("create install root %s: %w", inst.installRoot, err)
	}

	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar entry in %s: %w", src, err)
		}

		target, err := inst.entryTarget(hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", target, err)
			}
			mode := os.FileMode(hdr.Mode).Perm()
			if mode == 0 {
				mode = 0o644
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
			if err != nil {
				return fmt.Errorf("create file %s: %w", target, err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return fmt.Errorf("write file %s: %w", target, err)
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("close file %s: %w", target, err)
			}
		case tar.TypeSymlink:
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return fmt.Errorf("create symlink %s: %w", target, err)
			}
		default:
			// Skip other entry types (devices, fifos, etc.).
			continue
		}
	}

	return nil
}

// extractZip unpacks every zip entry under the install root.
func (inst *ArchiveInstaller) extractZip(src string) error {
	inst.log.Debug("extracting entire zip file", "path", src)

	zr, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("open zip file at %s: %w", src, err)
	}
	defer zr.Close()

	if err := os.MkdirAll(inst.installRoot, 0o755); err != nil {
		return fmt.Errorf("create install root %s: %w", inst.installRoot, err)
	}

	for _, zf := range zr.File {
		target, err := inst.entryTarget(zf.Name)
		if err != nil {
			return err
		}

		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create parent dir for %s: %w", target, err)
		}
		mode := zf.Mode().Perm()
		if mode == 0 {
			mode = 0o644
		}
		rc, err := zf.Open()
		if err != nil {
			return fmt.Errorf("open zip entry %s: %w", zf.Name, err)
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
		if err != nil {
			rc.Close()
			return fmt.Errorf("create file %s: %w", target, err)
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		if err != nil {
			out.Close()
			return fmt.Errorf("write file %s: %w", target, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("close file %s: %w", target, err)
		}
	}

	return nil
}

// entryTarget resolves an archive entry's path under the install root
// and rejects entries that would escape it.
func (inst *ArchiveInstaller) entryTarget(name string) (string, error) {
	target := filepath.Join(inst.installRoot, name)
	if !strings.HasPrefix(target, filepath.Clean(inst.installRoot)+string(os.PathSeparator)) &&
		target != filepath.Clean(inst.installRoot) {
		return "", fmt.Errorf("illegal file path in archive: %s", name)
	}
	return target, nil
}

// flattenableWrapper inspects the install root after extraction. If any
// immediate child is a regular file, the archive had no common
// top-level directory and nothing is flattened. Otherwise the set of
// top-level names is computed; exactly one member means a redundant
// wrapper directory worth collapsing. An install root with nothing in
// it at all means the archive was malformed.
func (inst *ArchiveInstaller) flattenableWrapper() (string, bool, error) {
	entries, err := os.ReadDir(inst.installRoot)
	if err != nil {
		return "", false, fmt.Errorf("read %s after unpacking the archive into it: %w", inst.installRoot, err)
	}
	if len(entries) == 0 {
		return "", false, fmt.Errorf("%w: nothing was extracted into %s", ErrEmptyArchive, inst.installRoot)
	}

	prefixes := make(map[string]struct{})
	for _, entry := range entries {
		if !entry.IsDir() {
			// A file at the top level means no common directory prefix.
			return "", false, nil
		}
		prefixes[entry.Name()] = struct{}{}
	}

	if len(prefixes) != 1 {
		return "", false, nil
	}
	return filepath.Join(inst.installRoot, entries[0].Name()), true, nil
}

// moveContentsUpOneDir moves everything under the wrapper directory up
// into the install root, then removes the now-empty wrapper.
func (inst *ArchiveInstaller) moveContentsUpOneDir(wrapper string) error {
	inst.log.Debug("moving extracted archive contents up one directory",
		"from", wrapper, "to", inst.installRoot)

	entries, err := os.ReadDir(wrapper)
	if err != nil {
		return fmt.Errorf("read wrapper directory %s: %w", wrapper, err)
	}
	for _, entry := range entries {
		src := filepath.Join(wrapper, entry.Name())
		dst := filepath.Join(inst.installRoot, entry.Name())
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("move %s to %s: %w", src, dst, err)
		}
	}

	if err := os.Remove(wrapper); err != nil {
		return fmt.Errorf("remove wrapper directory %s: %w", wrapper, err)
	}
	return nil
}
