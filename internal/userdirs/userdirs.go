// Package userdirs resolves the per-user base directories the setup
// pipeline works from. The two inputs, HOME and XDG_CONFIG_HOME, are read
// once at startup and carried as an immutable value from then on.
package userdirs

import (
	"errors"
	"path/filepath"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"
)

var (
	// ErrHomeNotSet means HOME is missing and no fallback exists for the
	// current platform.
	ErrHomeNotSet = errors.New("❌ HOME environment variable is not set")

	// ErrUnsupportedPlatform means the OS is not one the client supports.
	ErrUnsupportedPlatform = errors.New("❌ unsupported platform: only Linux, macOS, Android and Windows are supported")
)

// Dirs holds the resolved base directories.
type Dirs struct {
	Home       string
	ConfigRoot string
}

// Resolve reads HOME and XDG_CONFIG_HOME and fills in platform defaults.
//
// Windows synthesizes both when absent: HOME from the OS user profile,
// XDG_CONFIG_HOME as {home}/AppData/Roaming. The Unix-likes default only
// XDG_CONFIG_HOME (to {home}/.config) and treat a missing HOME as fatal.
func Resolve(getenv func(string) string) (Dirs, error) {
	switch runtime.GOOS {
	case "windows":
		return resolveWindows(getenv)
	case "darwin", "linux", "android":
		return resolveUnix(getenv)
	default:
		return Dirs{}, ErrUnsupportedPlatform
	}
}

func resolveWindows(getenv func(string) string) (Dirs, error) {
	home := getenv("HOME")
	if home == "" {
		// Git Bash and PowerShell sessions often lack HOME
		var err error
		home, err = homedir.Dir()
		if err != nil {
			return Dirs{}, ErrHomeNotSet
		}
	}

	configRoot := getenv("XDG_CONFIG_HOME")
	if configRoot == "" {
		configRoot = filepath.Join(home, "AppData", "Roaming")
	}

	return Dirs{Home: home, ConfigRoot: configRoot}, nil
}

func resolveUnix(getenv func(string) string) (Dirs, error) {
	home := getenv("HOME")
	if home == "" {
		return Dirs{}, ErrHomeNotSet
	}

	configRoot := getenv("XDG_CONFIG_HOME")
	if configRoot == "" {
		configRoot = filepath.Join(home, ".config")
	}

	return Dirs{Home: home, ConfigRoot: configRoot}, nil
}
