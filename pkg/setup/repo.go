package setup

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// EnsureCheckout clones the client repository into the home directory
// unless the target path already exists. An existing checkout is returned
// as-is: no fetch or pull is attempted, even when the remote has advanced.
// Returns the checkout path and whether a clone happened.
func EnsureCheckout(ctx context.Context, runner Runner, layout Layout, logger hclog.Logger) (string, bool, error) {
	target := layout.CheckoutPath()

	exists, err := fileExists(target)
	if err != nil {
		return "", false, err
	}
	if exists {
		logger.Debug("📦 Repository already cloned", "path", target)
		return target, false, nil
	}

	logger.Info("📦 Cloning client repository", "url", RepoURL, "path", target)
	if err := runner.Run(ctx, "", "git", "clone", RepoURL, target); err != nil {
		return "", false, fmt.Errorf("clone repository: %w", err)
	}

	return target, true, nil
}
