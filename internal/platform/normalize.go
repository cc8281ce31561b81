package platform

import (
	"fmt"
	"strings"
)

// familyMap normalizes the family strings gopsutil reports to the
// canonical names above. gopsutil sometimes reports the distro ID
// itself where a family is expected, so common IDs appear here too.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian,
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
}

// normalizeArch maps GOARCH values (and their common uname spellings)
// to the names release assets are typically published under.
func normalizeArch(arch string) (string, error) {
	switch arch {
	case "amd64", "x86_64":
		return "amd64", nil
	case "arm64", "aarch64":
		return "arm64", nil
	case "386", "i386", "i686":
		return "386", nil
	case "arm":
		return "arm", nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s", arch)
	}
}

// normalizePlatform lowercases and trims a distro ID or version.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// mapFamily resolves a reported family string to its canonical name,
// or FamilyUnknown when unrecognized.
func mapFamily(family string) string {
	if canonical, ok := familyMap[strings.ToLower(strings.TrimSpace(family))]; ok {
		return canonical
	}
	return FamilyUnknown
}
