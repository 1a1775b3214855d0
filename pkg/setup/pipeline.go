package setup

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"

	"github.com/karlsolomon/karllm-setup/internal/userdirs"
)

var (
	okStyle   = color.New(color.FgGreen)
	failStyle = color.New(color.FgRed)
	warnStyle = color.New(color.FgYellow)
)

// Pipeline runs the provisioning steps in order: platform detection, tool
// verification, runtime provisioning, identity, config, checkout and
// environment build. It fails fast on the first error and performs no
// rollback; completed side effects stay in place.
type Pipeline struct {
	runner Runner
	layout Layout
	logger hclog.Logger
	stdin  io.Reader
	stdout io.Writer
}

// New assembles a Pipeline over the resolved base directories.
func New(runner Runner, dirs userdirs.Dirs, logger hclog.Logger, stdin io.Reader, stdout io.Writer) *Pipeline {
	return &Pipeline{
		runner: runner,
		layout: NewLayout(dirs),
		logger: logger,
		stdin:  stdin,
		stdout: stdout,
	}
}

// Run executes the full pipeline. usernameFlag carries the --username value;
// empty means prompt interactively.
func (p *Pipeline) Run(ctx context.Context, usernameFlag string) error {
	plat := DetectPlatform()
	p.logger.Info("🖥️ Platform detected", "family", plat.Family, "distro", plat.Distro)
	if plat.Family == FamilyWindows {
		warnStyle.Fprintln(p.stdout, "⚠ Windows detected. For best results, run this from Git Bash or WSL.")
	}

	if err := p.verifyTools(plat); err != nil {
		return err
	}

	installed, err := EnsureInterpreter(ctx, p.runner, p.logger)
	if err != nil {
		return err
	}
	if installed {
		okStyle.Fprintf(p.stdout, "✔ Installed Python %s\n", PythonVersion)
	} else {
		okStyle.Fprintf(p.stdout, "✔ Python %s already available.\n", PythonVersion)
	}

	username, err := p.acquireUsername(usernameFlag)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p.layout.ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	p.logger.Debug("📁 Config directory ensured", "path", p.layout.ConfigDir())

	identity, generated, err := EnsureKeypair(ctx, p.runner, p.layout, username, p.logger)
	if err != nil {
		return err
	}
	if generated {
		okStyle.Fprintf(p.stdout, "✔ Ed25519 keypair generated: %s, %s\n", identity.PrivateKeyPath, identity.PublicKeyPath)
	} else {
		okStyle.Fprintln(p.stdout, "✔ Keypair already exists.")
	}

	record := ConfigRecord{
		Username:        username,
		Secret:          identity.PrivateKeyPath,
		SaveInteraction: true,
	}
	written, err := WriteConfigOnce(p.layout.ConfigFilePath(), record, p.logger)
	if err != nil {
		return err
	}
	if written {
		okStyle.Fprintf(p.stdout, "✔ Config written to %s\n", p.layout.ConfigFilePath())
	} else {
		okStyle.Fprintf(p.stdout, "✔ Config file already exists at %s\n", p.layout.ConfigFilePath())
	}

	checkout, cloned, err := EnsureCheckout(ctx, p.runner, p.layout, p.logger)
	if err != nil {
		return err
	}
	if cloned {
		okStyle.Fprintf(p.stdout, "✔ Repo cloned to %s\n", checkout)
	} else {
		okStyle.Fprintln(p.stdout, "✔ Repo already cloned.")
	}

	if err := CreateVenv(ctx, p.runner, checkout, p.logger); err != nil {
		return err
	}
	okStyle.Fprintf(p.stdout, "✔ Virtual environment created with Python %s\n", PythonVersion)

	if err := InstallRequirements(ctx, p.runner, checkout, p.logger); err != nil {
		return err
	}
	okStyle.Fprintln(p.stdout, "✔ Requirements installed into the virtual environment.")

	okStyle.Fprintln(p.stdout, "✅ Setup complete!")
	return nil
}

// verifyTools probes every required tool and, when any are missing, prints
// the full remediation list before aborting. Verification never installs
// anything itself.
func (p *Pipeline) verifyTools(plat Platform) error {
	missing := VerifyDependencies(p.runner, p.logger)
	if len(missing) == 0 {
		okStyle.Fprintln(p.stdout, "✔ System tools verified.")
		return nil
	}

	failStyle.Fprintln(p.stdout, "❌ The following required system tools are missing:")
	for _, tool := range missing {
		fmt.Fprintf(p.stdout, "   - %s\n", tool)
	}

	fmt.Fprintln(p.stdout, "🔧 To install them:")
	for _, tool := range missing {
		for _, line := range RemediationLines(tool, plat) {
			fmt.Fprintf(p.stdout, "   - %s\n", line)
		}
	}

	return fmt.Errorf("%w: %s", ErrMissingTools, strings.Join(missing, ", "))
}

// acquireUsername resolves the identity name: a flag value is validated
// once and an invalid one aborts, while interactive input loops until a
// conforming name is entered.
func (p *Pipeline) acquireUsername(usernameFlag string) (string, error) {
	if usernameFlag != "" {
		if err := ValidateUsername(usernameFlag); err != nil {
			return "", err
		}
		okStyle.Fprintf(p.stdout, "✔ Username accepted (CLI): %s\n", usernameFlag)
		return usernameFlag, nil
	}
	return PromptUsername(p.stdin, p.stdout)
}
