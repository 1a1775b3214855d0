package setup

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"
)

// ConfigRecord is the client configuration persisted to karllm.conf.
type ConfigRecord struct {
	Username        string `yaml:"username"`
	Secret          string `yaml:"secret"`
	SaveInteraction bool   `yaml:"saveInteraction"`
}

// WriteConfigOnce persists the record unless the file already exists. An
// existing file wins unconditionally, even when its contents disagree with
// the current run's username: the config is created once and never kept in
// sync. Returns whether a write happened.
func WriteConfigOnce(path string, record ConfigRecord, logger hclog.Logger) (bool, error) {
	exists, err := fileExists(path)
	if err != nil {
		return false, err
	}
	if exists {
		logger.Debug("📝 Config file already exists", "path", path)
		return false, nil
	}

	data, err := yaml.Marshal(record)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return false, fmt.Errorf("write config %s: %w", path, err)
	}

	logger.Debug("📝 Config written", "path", path, "username", record.Username)
	return true, nil
}
