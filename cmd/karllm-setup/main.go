package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/karlsolomon/karllm-setup/internal/userdirs"
	"github.com/karlsolomon/karllm-setup/pkg/logging"
	"github.com/karlsolomon/karllm-setup/pkg/setup"
)

const version = "0.2.0"

var (
	username    string
	logLevel    string
	versionFlag bool
	rootCmd     *cobra.Command
)

func getBuildTimestamp() string {
	// Prefer vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "karllm-setup",
		Short: "Provision this machine for the karllm client",
		Long: `Provision this machine for the karllm client.

Verifies the required system tools, installs the pinned Python via uv,
creates your Ed25519 identity and karllm.conf, clones the client repository
and builds its virtual environment. Every step is idempotent: re-running
never overwrites existing keys, config or checkout.

Ctrl-C during the username prompt aborts cleanly with exit code 0.`,
		RunE:          runSetup,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&username, "username", "", "Username for the new identity (prompted for when omitted)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("karllm-setup %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSetup(cmd *cobra.Command, args []string) error {
	if versionFlag {
		fmt.Printf("karllm-setup %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		return nil
	}

	// Ctrl-C is honored between steps and at the prompt; a step already
	// inside an external tool finishes or dies with the process.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		fmt.Println("\n⛔ Setup interrupted by user.")
		os.Exit(0)
	}()

	level := logLevel
	if level == "" {
		level = logging.GetLogLevel()
	}
	logger := logging.NewLogger("karllm-setup", level, os.Stderr)

	dirs, err := userdirs.Resolve(os.Getenv)
	if err != nil {
		return err
	}
	logger.Debug("📁 Base directories resolved", "home", dirs.Home, "config_root", dirs.ConfigRoot)

	pipeline := setup.New(setup.NewRunner(logger), dirs, logger, os.Stdin, os.Stdout)
	return pipeline.Run(context.Background(), username)
}
