package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// EnsureInterpreter asks uv for the pinned Python version and installs it
// when absent. Idempotency is uv's: this is a query-then-act with no
// re-check afterwards, and an install failure propagates as-is.
func EnsureInterpreter(ctx context.Context, runner Runner, logger hclog.Logger) (bool, error) {
	logger.Debug("🔍 Checking for pinned Python", "version", PythonVersion)

	// uv exits non-zero when the version is not managed yet; either way an
	// answer without the version string means install.
	out, _ := runner.Output(ctx, "", "uv", "python", "find", PythonVersion)
	if strings.Contains(out, PythonVersion) {
		logger.Debug("🐍 Python already available", "version", PythonVersion)
		return false, nil
	}

	logger.Info("🐍 Installing Python", "version", PythonVersion)
	if err := runner.Run(ctx, "", "uv", "python", "install", PythonVersion); err != nil {
		return false, fmt.Errorf("install python %s: %w", PythonVersion, err)
	}
	return true, nil
}

// CreateVenv creates the pinned-interpreter virtual environment inside the
// checkout. Recreating an existing venv is fine; uv reuses it.
func CreateVenv(ctx context.Context, runner Runner, checkout string, logger hclog.Logger) error {
	logger.Info("🐍 Creating virtual environment", "python", PythonVersion, "path", checkout)
	if err := runner.Run(ctx, checkout, "uv", "venv", "--python", PythonVersion, venvDirName); err != nil {
		return fmt.Errorf("create venv: %w", err)
	}
	return nil
}

// InstallRequirements installs the client's pinned dependency manifest into
// the environment. Not guarded by an existence check: the package manager's
// own install is idempotent.
func InstallRequirements(ctx context.Context, runner Runner, checkout string, logger hclog.Logger) error {
	logger.Info("🐍 Installing requirements", "manifest", requirementsFile)
	if err := runner.Run(ctx, checkout, "uv", "pip", "install", "-r", requirementsFile); err != nil {
		return fmt.Errorf("install requirements: %w", err)
	}
	return nil
}
