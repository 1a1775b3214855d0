// Package setup implements the karllm client provisioning pipeline: verify
// system tools, pin the Python runtime, establish the per-user identity and
// configuration, clone the client repository and build its environment.
package setup

import (
	"os"
	"runtime"
	"strings"
)

// OSFamily identifies the operating system family the setup runs on.
type OSFamily string

const (
	FamilyWindows OSFamily = "windows"
	FamilyMacOS   OSFamily = "macos"
	FamilyLinux   OSFamily = "linux"
	FamilyUnknown OSFamily = "unknown"
)

// Distro identifies the Linux distribution family, which selects the
// package-manager remediation commands. Only meaningful when the OS family
// is Linux.
type Distro string

const (
	DistroArch    Distro = "arch"
	DistroDebian  Distro = "debian"
	DistroFedora  Distro = "fedora"
	DistroAlpine  Distro = "alpine"
	DistroAndroid Distro = "android"
	DistroNone    Distro = ""
	DistroUnknown Distro = "unknown"
)

// Platform describes the detected host. Computed once per run and treated
// as immutable afterwards. Detection never fails: anything unrecognized
// degrades to the unknown sentinels and callers fall back to
// install-manually guidance.
type Platform struct {
	Family OSFamily
	Distro Distro
}

const osReleasePath = "/etc/os-release"

// DetectPlatform inspects the host OS and, on Linux, the distribution.
func DetectPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return Platform{Family: FamilyWindows, Distro: DistroNone}
	case "darwin":
		return Platform{Family: FamilyMacOS, Distro: DistroNone}
	case "android":
		return Platform{Family: FamilyLinux, Distro: DistroAndroid}
	case "linux":
		return Platform{Family: FamilyLinux, Distro: detectDistro()}
	default:
		return Platform{Family: FamilyUnknown, Distro: DistroNone}
	}
}

func detectDistro() Distro {
	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		// Termux has no os-release file but does export ANDROID_ROOT
		if runtime.GOARCH == "arm64" && os.Getenv("ANDROID_ROOT") != "" {
			return DistroAndroid
		}
		return DistroUnknown
	}
	return classifyOSRelease(string(data))
}

// classifyOSRelease maps os-release contents to a distro family. Derivatives
// are folded into their parent family since the package manager is what
// matters here.
func classifyOSRelease(contents string) Distro {
	contents = strings.ToLower(contents)
	switch {
	case strings.Contains(contents, "arch"):
		return DistroArch
	case strings.Contains(contents, "debian"), strings.Contains(contents, "ubuntu"):
		return DistroDebian
	case strings.Contains(contents, "fedora"), strings.Contains(contents, "rhel"):
		return DistroFedora
	case strings.Contains(contents, "alpine"):
		return DistroAlpine
	case strings.Contains(contents, "android"):
		return DistroAndroid
	default:
		return DistroUnknown
	}
}
