package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Identity is the on-disk Ed25519 keypair authenticating one username to
// the karllm backend.
type Identity struct {
	Username       string
	PrivateKeyPath string
	PublicKeyPath  string
}

// EnsureKeypair returns the identity for username, generating the keypair
// through openssl when neither key file exists yet. The second return
// reports whether generation happened.
//
// A complete keypair is returned unchanged with no validation of its
// contents. Finding exactly one of the two files is a corrupt-state error:
// regenerating the private key would silently orphan an identity the
// backend may already know, so the operator has to resolve it by hand.
func EnsureKeypair(ctx context.Context, runner Runner, layout Layout, username string, logger hclog.Logger) (Identity, bool, error) {
	id := Identity{
		Username:       username,
		PrivateKeyPath: layout.PrivateKeyPath(username),
		PublicKeyPath:  layout.PublicKeyPath(username),
	}

	privExists, err := fileExists(id.PrivateKeyPath)
	if err != nil {
		return Identity{}, false, err
	}
	pubExists, err := fileExists(id.PublicKeyPath)
	if err != nil {
		return Identity{}, false, err
	}

	switch {
	case privExists && pubExists:
		logger.Debug("🔑 Keypair already exists", "private", id.PrivateKeyPath, "public", id.PublicKeyPath)
		return id, false, nil
	case privExists != pubExists:
		return Identity{}, false, fmt.Errorf("%w: exactly one of %s and %s exists; remove the survivor or restore the pair before re-running",
			ErrKeypairCorrupt, id.PrivateKeyPath, id.PublicKeyPath)
	}

	logger.Info("🔑 Generating Ed25519 keypair", "username", username)
	if err := runner.Run(ctx, "", "openssl", "genpkey", "-algorithm", "ED25519", "-out", id.PrivateKeyPath); err != nil {
		return Identity{}, false, fmt.Errorf("generate private key: %w", err)
	}
	if err := runner.Run(ctx, "", "openssl", "pkey", "-in", id.PrivateKeyPath, "-pubout", "-out", id.PublicKeyPath); err != nil {
		return Identity{}, false, fmt.Errorf("derive public key: %w", err)
	}

	return id, true, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}
