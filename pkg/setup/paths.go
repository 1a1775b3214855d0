package setup

import (
	"path/filepath"

	"github.com/karlsolomon/karllm-setup/internal/userdirs"
)

// Pinned provisioning targets.
const (
	// PythonVersion is the interpreter the client is tested against.
	PythonVersion = "3.12.9"

	// RepoURL is the client source repository.
	RepoURL = "https://github.com/karlsolomon/karllm-client.git"
)

const (
	configDirName    = "karllm"
	configFileName   = "karllm.conf"
	checkoutDirName  = "karllm-client"
	venvDirName      = ".venv"
	requirementsFile = "requirements.txt"
)

// Layout derives every deterministic path of the provisioned state from the
// resolved base directories.
type Layout struct {
	dirs userdirs.Dirs
}

// NewLayout creates a Layout over the resolved base directories.
func NewLayout(dirs userdirs.Dirs) Layout {
	return Layout{dirs: dirs}
}

// ConfigDir returns the application configuration directory.
func (l Layout) ConfigDir() string {
	return filepath.Join(l.dirs.ConfigRoot, configDirName)
}

// PrivateKeyPath returns the private key location for a username.
func (l Layout) PrivateKeyPath(username string) string {
	return filepath.Join(l.ConfigDir(), username+".priv")
}

// PublicKeyPath returns the public key location for a username.
func (l Layout) PublicKeyPath(username string) string {
	return filepath.Join(l.ConfigDir(), username+".pub")
}

// ConfigFilePath returns the location of the persisted client config.
func (l Layout) ConfigFilePath() string {
	return filepath.Join(l.ConfigDir(), configFileName)
}

// CheckoutPath returns where the client repository is cloned.
func (l Layout) CheckoutPath() string {
	return filepath.Join(l.dirs.Home, checkoutDirName)
}

// VenvPath returns the virtual environment directory inside the checkout.
func (l Layout) VenvPath() string {
	return filepath.Join(l.CheckoutPath(), venvDirName)
}
