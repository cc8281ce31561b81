//go:build !windows

package installer

import (
	"fmt"
	"os"
)

// chmodExecutable makes the installed file executable for everyone.
func chmodExecutable(path string) error {
	if err := os.Chmod(path, 0o755); err != nil {
		return fmt.Errorf("set executable permissions on %s: %w", path, err)
	}
	return nil
}
