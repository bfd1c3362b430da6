package npm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// fakeResolver resolves from a fixed map; missing names fail.
type fakeResolver struct {
	versions map[string]string
}

func (f *fakeResolver) Resolve(_ context.Context, name string) (string, error) {
	v, ok := f.versions[name]
	if !ok {
		return "", fmt.Errorf("fake: unknown package %q", name)
	}
	return v, nil
}

// fakeRunner records invocations and returns a scripted error.
type fakeRunner struct {
	calls [][]string
	dirs  []string
	err   error
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	f.dirs = append(f.dirs, dir)
	if f.err != nil {
		return "npm ERR! boom", f.err
	}
	return "", nil
}

func TestResolveAllFailSoft(t *testing.T) {
	resolver := &fakeResolver{versions: map[string]string{
		"express": "4.21.2",
		"cors":    "2.8.5",
	}}
	inst := NewInstaller(resolver, &fakeRunner{}, "", nil)

	resolved := inst.ResolveAll(context.Background(), []string{"express", "broken", "cors"})

	want := []ResolvedDependency{
		{Name: "express", Version: "4.21.2"},
		{Name: "broken"},
		{Name: "cors", Version: "2.8.5"},
	}
	if len(resolved) != len(want) {
		t.Fatalf("resolved %d deps, want %d", len(resolved), len(want))
	}
	for i, dep := range resolved {
		if dep != want[i] {
			t.Errorf("resolved[%d] = %+v, want %+v", i, dep, want[i])
		}
	}
}

func TestInstallArgs(t *testing.T) {
	resolver := &fakeResolver{versions: map[string]string{
		"express": "4.21.2",
		"dotenv":  "16.4.7",
	}}
	runner := &fakeRunner{}
	inst := NewInstaller(resolver, runner, "", nil)

	if err := inst.Install(context.Background(), []string{"express", "dotenv"}, "/tmp/demo", false); err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("runner invoked %d times, want 1", len(runner.calls))
	}
	call := runner.calls[0]
	if call[0] != "npm" || call[1] != "install" {
		t.Errorf("call = %v, want npm install ...", call)
	}
	if slices.Contains(call, "--save-dev") {
		t.Error("runtime install carries --save-dev")
	}
	if !slices.Contains(call, "express@4.21.2") || !slices.Contains(call, "dotenv@16.4.7") {
		t.Errorf("pinned specs missing from %v", call)
	}
	if runner.dirs[0] != "/tmp/demo" {
		t.Errorf("install dir = %q, want /tmp/demo", runner.dirs[0])
	}
}

func TestInstallDevFlagAndAbsentVersion(t *testing.T) {
	resolver := &fakeResolver{versions: map[string]string{"nodemon": "3.1.9"}}
	runner := &fakeRunner{}
	inst := NewInstaller(resolver, runner, "pnpm", nil)

	if err := inst.Install(context.Background(), []string{"nodemon", "unknown-pkg"}, ".", true); err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	call := runner.calls[0]
	if call[0] != "pnpm" {
		t.Errorf("npm binary = %q, want pnpm", call[0])
	}
	if !slices.Contains(call, "--save-dev") {
		t.Error("dev install is missing --save-dev")
	}
	// Unresolved package still installs, without a version pin.
	if !slices.Contains(call, "unknown-pkg") {
		t.Errorf("bare name for unresolved package missing from %v", call)
	}
	if slices.Contains(call, "unknown-pkg@") {
		t.Errorf("unresolved package got a dangling version pin: %v", call)
	}
}

func TestInstallCommandFailure(t *testing.T) {
	resolver := &fakeResolver{versions: map[string]string{"express": "4.21.2"}}
	runner := &fakeRunner{err: errors.New("exit status 1")}
	inst := NewInstaller(resolver, runner, "", nil)

	err := inst.Install(context.Background(), []string{"express"}, ".", false)
	var instErr *InstallError
	if !errors.As(err, &instErr) {
		t.Fatalf("error = %T, want *InstallError", err)
	}
	if instErr.Dev {
		t.Error("InstallError.Dev = true for runtime install")
	}
	if !strings.Contains(instErr.Output, "npm ERR!") {
		t.Errorf("InstallError.Output = %q, want captured npm output", instErr.Output)
	}
}

func TestInstallNoNames(t *testing.T) {
	runner := &fakeRunner{}
	inst := NewInstaller(&fakeResolver{}, runner, "", nil)

	if err := inst.Install(context.Background(), nil, ".", false); err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if len(runner.calls) != 0 {
		t.Error("npm invoked for an empty dependency set")
	}
}

func TestInitManifestInjectsScripts(t *testing.T) {
	dir := t.TempDir()
	// Pre-seed the manifest so the fake runner's no-op init is not relied on.
	seed := `{"name":"demo","version":"1.0.0","scripts":{"test":"echo \"no tests\""}}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{}
	inst := NewInstaller(&fakeResolver{}, runner, "", nil)

	scripts := map[string]string{"dev": "ts-node-dev --respawn src/index.ts", "watch": "tsc -w"}
	if err := inst.InitManifest(context.Background(), dir, "src/index.ts", scripts); err != nil {
		t.Fatalf("InitManifest() error: %v", err)
	}

	if len(runner.calls) != 0 {
		t.Error("npm init ran despite existing manifest")
	}

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if manifest["main"] != "src/index.ts" {
		t.Errorf("main = %v, want src/index.ts", manifest["main"])
	}
	got, _ := manifest["scripts"].(map[string]any)
	if got["dev"] != scripts["dev"] || got["watch"] != scripts["watch"] {
		t.Errorf("scripts = %v, want dev and watch entries", got)
	}
	if got["test"] == nil {
		t.Error("existing script entry was dropped")
	}
}

func TestInitManifestJavaScriptHasNoWatch(t *testing.T) {
	dir := t.TempDir()
	seed := `{"name":"demo","version":"1.0.0"}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	inst := NewInstaller(&fakeResolver{}, &fakeRunner{}, "", nil)
	if err := inst.InitManifest(context.Background(), dir, "src/index.js", map[string]string{"dev": "nodemon src/index.js"}); err != nil {
		t.Fatalf("InitManifest() error: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "package.json"))
	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatal(err)
	}
	scripts, _ := manifest["scripts"].(map[string]any)
	if _, ok := scripts["watch"]; ok {
		t.Error("JavaScript manifest has a watch script")
	}
}
