package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector by inspecting the running host.
type RealDetector struct{}

// NewDetector creates a detector for the running host.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect returns information about the host. OS and architecture come
// from the runtime; on Linux, distribution details come from gopsutil.
//
// Distro detection failures are not fatal: the returned Info then
// carries OS and arch only, and the distro fields stay empty. A
// cancelled context is a hard failure.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      runtime.GOOS,
		ArchRaw: runtime.GOARCH,
	}

	arch, err := normalizeArch(runtime.GOARCH)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}
	info.Arch = arch

	if runtime.GOOS == "linux" {
		plat, family, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
			return info, nil
		}

		plat = normalizePlatform(plat)
		if plat != "" {
			info.Platform = plat
			info.Family = mapFamily(family)
			info.Version = normalizePlatform(version)
		}
	}

	return info, nil
}
