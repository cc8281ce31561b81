package platform

import (
	"context"
	"runtime"
	"testing"
)

// MockDetector is a test implementation of Detector.
type MockDetector struct {
	info *Info
	err  error
}

// NewMockDetector creates a mock detector with fixed return values.
func NewMockDetector(info *Info, err error) Detector {
	return &MockDetector{info: info, err: err}
}

// Detect returns the pre-configured info and error.
func (m *MockDetector) Detect(ctx context.Context) (*Info, error) {
	return m.info, m.err
}

func TestRealDetector_Detect(t *testing.T) {
	detector := NewDetector()

	info, err := detector.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if info.OS != runtime.GOOS {
		t.Errorf("OS = %v, want %v", info.OS, runtime.GOOS)
	}
	if info.Arch == "" {
		t.Error("Arch should not be empty")
	}
	if info.ArchRaw != runtime.GOARCH {
		t.Errorf("ArchRaw = %v, want %v", info.ArchRaw, runtime.GOARCH)
	}

	// On Linux, distro detection may fall back to empty fields, but an
	// Info with a Platform must also carry a family.
	if runtime.GOOS == "linux" {
		if info.Platform != "" && info.Family == "" {
			t.Error("Family should be set when Platform is set")
		}
	} else {
		if info.Platform != "" || info.Family != "" || info.Version != "" {
			t.Errorf("distro fields should be empty on %s, got %+v", runtime.GOOS, info)
		}
	}
}

func TestInfo_BooleanMethods(t *testing.T) {
	tests := []struct {
		name      string
		info      *Info
		isLinux   bool
		isMacOS   bool
		isWindows bool
		usesMusl  bool
	}{
		{
			name:    "Linux amd64 Debian",
			info:    &Info{OS: "linux", Arch: "amd64", Family: FamilyDebian},
			isLinux: true,
		},
		{
			name:     "Linux amd64 Alpine",
			info:     &Info{OS: "linux", Arch: "amd64", Family: FamilyAlpine},
			isLinux:  true,
			usesMusl: true,
		},
		{
			name:    "macOS arm64",
			info:    &Info{OS: "darwin", Arch: "arm64"},
			isMacOS: true,
		},
		{
			name:      "Windows amd64",
			info:      &Info{OS: "windows", Arch: "amd64"},
			isWindows: true,
		},
		{
			// Alpine is a Linux-only signal; the family alone is not enough.
			name:    "non-Linux with alpine family never reports musl",
			info:    &Info{OS: "darwin", Arch: "arm64", Family: FamilyAlpine},
			isMacOS: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.IsLinux(); got != tt.isLinux {
				t.Errorf("IsLinux() = %v, want %v", got, tt.isLinux)
			}
			if got := tt.info.IsMacOS(); got != tt.isMacOS {
				t.Errorf("IsMacOS() = %v, want %v", got, tt.isMacOS)
			}
			if got := tt.info.IsWindows(); got != tt.isWindows {
				t.Errorf("IsWindows() = %v, want %v", got, tt.isWindows)
			}
			if got := tt.info.UsesMusl(); got != tt.usesMusl {
				t.Errorf("UsesMusl() = %v, want %v", got, tt.usesMusl)
			}
		})
	}
}

func TestInfo_ExeSuffix(t *testing.T) {
	windows := &Info{OS: "windows", Arch: "amd64"}
	if got := windows.ExeSuffix(); got != ".exe" {
		t.Errorf("ExeSuffix() on Windows = %q, want %q", got, ".exe")
	}
	linux := &Info{OS: "linux", Arch: "amd64"}
	if got := linux.ExeSuffix(); got != "" {
		t.Errorf("ExeSuffix() on Linux = %q, want empty", got)
	}
}

func TestInfo_String(t *testing.T) {
	tests := []struct {
		name string
		info *Info
		want string
	}{
		{
			name: "os and arch only",
			info: &Info{OS: "darwin", Arch: "arm64"},
			want: "darwin/arm64",
		},
		{
			name: "with distro",
			info: &Info{OS: "linux", Arch: "amd64", Platform: "ubuntu", Version: "22.04"},
			want: "linux/amd64 (ubuntu 22.04)",
		},
		{
			name: "distro without version",
			info: &Info{OS: "linux", Arch: "amd64", Platform: "arch"},
			want: "linux/amd64 (arch)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMockDetector(t *testing.T) {
	expectedInfo := &Info{
		OS:       "linux",
		Arch:     "amd64",
		Platform: "ubuntu",
		Family:   FamilyDebian,
		Version:  "22.04",
	}

	detector := NewMockDetector(expectedInfo, nil)
	info, err := detector.Detect(context.Background())
	if err != nil {
		t.Fatalf("MockDetector.Detect() error = %v", err)
	}
	if info != expectedInfo {
		t.Errorf("MockDetector.Detect() = %+v, want %+v", info, expectedInfo)
	}
}
