package setup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Runner abstracts external tool invocation so every component that shells
// out (verify, clone, keygen, install) can be exercised in tests against a
// recording fake.
type Runner interface {
	// LookPath reports whether name resolves to an executable on PATH.
	LookPath(name string) (string, error)

	// Run executes the tool in dir (empty means inherit the current
	// directory), streaming its output to the user. A non-zero exit is
	// returned as an error.
	Run(ctx context.Context, dir string, name string, args ...string) error

	// Output executes the tool and captures its stdout.
	Output(ctx context.Context, dir string, name string, args ...string) (string, error)
}

// NewRunner returns the os/exec-backed Runner used outside of tests.
func NewRunner(logger hclog.Logger) Runner {
	return &execRunner{logger: logger}
}

type execRunner struct {
	logger hclog.Logger
}

func (r *execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *execRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	r.logger.Debug("🚀 Executing command", "tool", name, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			r.logger.Debug("⏹️ Process exited", "tool", name, "code", exitErr.ExitCode())
			return fmt.Errorf("%s %s: exit code %d", name, strings.Join(args, " "), exitErr.ExitCode())
		}
		return fmt.Errorf("%s: %w", name, err)
	}

	r.logger.Debug("✅ Process completed", "tool", name)
	return nil
}

func (r *execRunner) Output(ctx context.Context, dir string, name string, args ...string) (string, error) {
	r.logger.Debug("🚀 Capturing command output", "tool", name, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s %s: exit code %d", name, strings.Join(args, " "), exitErr.ExitCode())
		}
		return string(out), fmt.Errorf("%s: %w", name, err)
	}

	return string(out), nil
}
