package setup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/karlsolomon/karllm-setup/internal/userdirs"
)

// testLayout builds a Layout over temp dirs with the config dir created,
// matching the pipeline's state when identity generation runs.
func testLayout(t *testing.T) Layout {
	t.Helper()
	layout := NewLayout(userdirs.Dirs{
		Home:       t.TempDir(),
		ConfigRoot: t.TempDir(),
	})
	if err := os.MkdirAll(layout.ConfigDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	return layout
}

// opensslFake simulates openssl by creating whatever file the -out flag
// names.
func opensslFake() *fakeRunner {
	runner := &fakeRunner{}
	runner.onRun = func(dir, name string, args []string) error {
		for i, arg := range args {
			if arg == "-out" && i+1 < len(args) {
				return os.WriteFile(args[i+1], []byte("fake key material\n"), 0o600)
			}
		}
		return nil
	}
	return runner
}

func TestEnsureKeypairGeneratesOnFirstRun(t *testing.T) {
	layout := testLayout(t)
	runner := opensslFake()

	id, generated, err := EnsureKeypair(context.Background(), runner, layout, "tester01", hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !generated {
		t.Error("expected generation on first run")
	}

	if id.PrivateKeyPath != filepath.Join(layout.ConfigDir(), "tester01.priv") {
		t.Errorf("private key path = %q", id.PrivateKeyPath)
	}
	if id.PublicKeyPath != filepath.Join(layout.ConfigDir(), "tester01.pub") {
		t.Errorf("public key path = %q", id.PublicKeyPath)
	}

	for _, path := range []string{id.PrivateKeyPath, id.PublicKeyPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected key file at %s: %v", path, err)
		}
	}

	if len(runner.calls) != 2 {
		t.Fatalf("expected 2 openssl invocations, got %d", len(runner.calls))
	}
	if runner.calls[0].args[0] != "genpkey" {
		t.Errorf("first call = %v, want genpkey", runner.calls[0].args)
	}
	if runner.calls[1].args[0] != "pkey" {
		t.Errorf("second call = %v, want pkey", runner.calls[1].args)
	}
}

func TestEnsureKeypairIsIdempotent(t *testing.T) {
	layout := testLayout(t)
	runner := opensslFake()
	ctx := context.Background()

	if _, _, err := EnsureKeypair(ctx, runner, layout, "tester01", hclog.NewNullLogger()); err != nil {
		t.Fatal(err)
	}

	before, err := os.ReadFile(layout.PrivateKeyPath("tester01"))
	if err != nil {
		t.Fatal(err)
	}

	runner.reset()
	_, generated, err := EnsureKeypair(ctx, runner, layout, "tester01", hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if generated {
		t.Error("second run must not regenerate")
	}
	if len(runner.calls) != 0 {
		t.Errorf("second run invoked openssl: %v", runner.calls)
	}

	after, err := os.ReadFile(layout.PrivateKeyPath("tester01"))
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("private key changed across runs")
	}
}

func TestEnsureKeypairPartialState(t *testing.T) {
	testCases := []struct {
		name     string
		existing string
	}{
		{name: "only private key", existing: "tester01.priv"},
		{name: "only public key", existing: "tester01.pub"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			layout := testLayout(t)
			runner := opensslFake()

			path := filepath.Join(layout.ConfigDir(), tc.existing)
			if err := os.WriteFile(path, []byte("orphan\n"), 0o600); err != nil {
				t.Fatal(err)
			}

			_, _, err := EnsureKeypair(context.Background(), runner, layout, "tester01", hclog.NewNullLogger())
			if !errors.Is(err, ErrKeypairCorrupt) {
				t.Fatalf("expected ErrKeypairCorrupt, got %v", err)
			}
			if len(runner.calls) != 0 {
				t.Errorf("corrupt state must not invoke openssl, got %v", runner.calls)
			}
		})
	}
}

func TestEnsureKeypairToolFailureIsFatal(t *testing.T) {
	layout := testLayout(t)
	runner := &fakeRunner{
		failures: map[string]error{
			"openssl genpkey -algorithm ED25519 -out " + layout.PrivateKeyPath("tester01"): errors.New("openssl: exit code 1"),
		},
	}

	_, _, err := EnsureKeypair(context.Background(), runner, layout, "tester01", hclog.NewNullLogger())
	if err == nil {
		t.Fatal("expected keygen failure to propagate")
	}
}
