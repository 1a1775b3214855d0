package setup

import (
	"context"
	"os"
	"reflect"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/karlsolomon/karllm-setup/internal/userdirs"
)

func TestEnsureCheckoutClones(t *testing.T) {
	layout := NewLayout(userdirs.Dirs{Home: t.TempDir(), ConfigRoot: t.TempDir()})
	runner := &fakeRunner{}

	path, cloned, err := EnsureCheckout(context.Background(), runner, layout, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cloned {
		t.Error("expected a clone on first run")
	}
	if path != layout.CheckoutPath() {
		t.Errorf("path = %q, want %q", path, layout.CheckoutPath())
	}

	if len(runner.calls) != 1 {
		t.Fatalf("expected 1 git invocation, got %d", len(runner.calls))
	}
	want := []string{"clone", RepoURL, layout.CheckoutPath()}
	if runner.calls[0].name != "git" || !reflect.DeepEqual(runner.calls[0].args, want) {
		t.Errorf("call = %s %v, want git %v", runner.calls[0].name, runner.calls[0].args, want)
	}
}

func TestEnsureCheckoutSkipsExisting(t *testing.T) {
	layout := NewLayout(userdirs.Dirs{Home: t.TempDir(), ConfigRoot: t.TempDir()})
	if err := os.MkdirAll(layout.CheckoutPath(), 0o755); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{}
	path, cloned, err := EnsureCheckout(context.Background(), runner, layout, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cloned {
		t.Error("existing checkout must not be re-cloned")
	}
	if path != layout.CheckoutPath() {
		t.Errorf("path = %q, want %q", path, layout.CheckoutPath())
	}
	if runner.invoked("git") {
		t.Errorf("git invoked for existing checkout: %v", runner.calls)
	}
}
