package installer

import (
	"fmt"
	"os"
)

// Asset is a release file that has already been downloaded to the local
// filesystem. The path is immutable; the asset optionally owns the
// temporary directory holding it, which lives until Cleanup is called.
type Asset struct {
	path    string
	tempDir string
}

// NewAsset wraps an existing local file. The asset does not own any
// temporary storage; Cleanup is a no-op.
func NewAsset(path string) *Asset {
	return &Asset{path: path}
}

// NewTempAsset wraps a local file held inside a temporary directory that
// the asset owns. Cleanup removes the whole directory.
func NewTempAsset(path, tempDir string) *Asset {
	return &Asset{path: path, tempDir: tempDir}
}

// Path returns the asset's local file path.
func (a *Asset) Path() string {
	return a.path
}

// Cleanup removes the asset's owned temporary storage, if any. Call it
// once installation has completed or failed.
func (a *Asset) Cleanup() error {
	if a.tempDir == "" {
		return nil
	}
	if err := os.RemoveAll(a.tempDir); err != nil {
		return fmt.Errorf("remove asset temp dir %s: %w", a.tempDir, err)
	}
	a.tempDir = ""
	return nil
}
