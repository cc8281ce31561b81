// Package installer turns a downloaded release asset into an installed
// executable (or an installed directory tree) on the local filesystem.
//
// # Asset Formats
//
// Assets arrive in wildly inconsistent shapes: compressed tarballs, zip
// files, bare-compressed single binaries, self-contained executables
// (.AppImage, .exe, .bat, .pyz), or plain binaries with no extension at
// all. The package classifies an asset purely by its filename suffix and
// reconciles the per-platform archive conventions (missing Unix mode
// bits, Windows-only extensions, single wrapper directories) into one
// deterministic installation outcome.
//
// # Installers
//
// Two installers cover the two installation intents:
//
//   - ExeInstaller: locate exactly one executable inside the asset and
//     install it to a target path, preserving self-contained extensions
//     and normalizing permissions to 0755.
//   - ArchiveInstaller: unpack the entire asset into an install root and
//     collapse a redundant common top-level directory if the archive has
//     one.
//
// # Usage
//
//	asset := installer.NewAsset("/tmp/dl/project-x86_64-linux.tar.gz")
//	inst := installer.NewExeInstaller("/home/user/bin/project", "project", false, nil)
//	installed, err := inst.Install(asset)
//	if err != nil {
//	    return err
//	}
//	fmt.Println("installed", installed)
//
// # Streaming Constraint
//
// The decompressing readers used for compressed tarballs cannot seek
// backward, so selecting an entry from a tarball is a two-pass protocol:
// one pass to find the entry index, then a fresh reader to walk back to
// that index and extract it. Zip archives support random access and need
// only one pass.
package installer
