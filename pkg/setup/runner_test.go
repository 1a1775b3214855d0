package setup

import (
	"context"
	"fmt"
	"strings"
)

// fakeRunner records every invocation and serves canned results, standing
// in for the real tools during tests.
type fakeRunner struct {
	missing  map[string]bool   // tools absent from the search path
	outputs  map[string]string // command line -> stdout
	failures map[string]error  // command line -> error
	onRun    func(dir, name string, args []string) error
	calls    []recordedCall
}

type recordedCall struct {
	dir  string
	name string
	args []string
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	f.calls = append(f.calls, recordedCall{dir: dir, name: name, args: args})
	if err, ok := f.failures[commandLine(name, args)]; ok {
		return err
	}
	if f.onRun != nil {
		return f.onRun(dir, name, args)
	}
	return nil
}

func (f *fakeRunner) Output(ctx context.Context, dir string, name string, args ...string) (string, error) {
	f.calls = append(f.calls, recordedCall{dir: dir, name: name, args: args})
	line := commandLine(name, args)
	if err, ok := f.failures[line]; ok {
		return "", err
	}
	return f.outputs[line], nil
}

// invoked reports whether any recorded call used the tool.
func (f *fakeRunner) invoked(tool string) bool {
	for _, c := range f.calls {
		if c.name == tool {
			return true
		}
	}
	return false
}

func (f *fakeRunner) reset() {
	f.calls = nil
}
