//go:build windows

package installer

// chmodExecutable is a no-op on Windows, which has no Unix-style
// permission model.
func chmodExecutable(path string) error {
	return nil
}
