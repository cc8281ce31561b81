// Package platform detects the host OS, architecture, and Linux
// distribution so the install engine can pick the right behavior for
// the machine it runs on: Windows hosts need the Windows matching
// rules and skip chmod, musl-based distributions prefer statically
// linked release assets, and the normalized arch names line up with
// the names release artifacts are published under.
//
// Distribution details come from gopsutil. When distro detection
// fails the package falls back to OS and arch only, which is enough
// for the installer itself.
package platform

import "context"

// Canonical Linux distribution family names, normalized from the
// strings gopsutil reports.
const (
	FamilyDebian  = "debian"
	FamilyRHEL    = "rhel"
	FamilyFedora  = "fedora"
	FamilySUSE    = "suse"
	FamilyArch    = "arch"
	FamilyAlpine  = "alpine"
	FamilyUnknown = "unknown"
)

// Info describes the host the installer is running on.
type Info struct {
	OS       string // "linux", "darwin", "windows"
	Arch     string // normalized ("amd64", "arm64", ...)
	ArchRaw  string // original GOARCH value
	Platform string // distro ID on Linux (e.g. "ubuntu"), else empty
	Family   string // canonical distro family on Linux, else empty
	Version  string // distro version on Linux (e.g. "22.04"), else empty
}

// IsLinux reports whether the host runs Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS reports whether the host runs macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows reports whether the host runs Windows. This drives the
// installer's Windows mode: executable naming with .exe/.bat suffixes
// and no chmod after install.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// UsesMusl reports whether the host likely links against musl rather
// than glibc. Alpine is the only family where that is the default, and
// it is the signal to prefer statically linked release assets.
func (i *Info) UsesMusl() bool {
	return i.OS == "linux" && i.Family == FamilyAlpine
}

// ExeSuffix returns the suffix executables carry on this host: ".exe"
// on Windows, empty elsewhere.
func (i *Info) ExeSuffix() string {
	if i.IsWindows() {
		return ".exe"
	}
	return ""
}

// String renders the platform as an os/arch pair, with the distro ID
// and version appended on Linux when known.
func (i *Info) String() string {
	s := i.OS + "/" + i.Arch
	if i.Platform != "" {
		s += " (" + i.Platform
		if i.Version != "" {
			s += " " + i.Version
		}
		s += ")"
	}
	return s
}

// Detector is the interface for host platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
