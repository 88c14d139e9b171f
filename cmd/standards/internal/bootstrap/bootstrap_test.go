package bootstrap

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	standards "github.com/bayat/go-standards"
)

func TestBuildModuleMapsOptions(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Corpus\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	manifest := filepath.Join(dir, "versions.yaml")
	if err := os.WriteFile(manifest, []byte("versions:\n  go: \"1.23\"\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	module, err := BuildModule(Options{
		RootDir:      dir,
		Pattern:      "*.md",
		Recursive:    true,
		ManifestPath: manifest,
		Workers:      2,
	})
	if err != nil {
		t.Fatalf("expected module to build, got %v", err)
	}

	if module.Module == nil {
		t.Fatal("expected wrapped module")
	}
	if module.Logger == nil {
		t.Fatal("expected CLI logger")
	}
	if module.Module.Links() == nil {
		t.Fatal("expected link check service")
	}
	if module.Module.Versions() == nil {
		t.Fatal("expected manifest path to enable the version service")
	}
	if !module.CommandsEnabled {
		t.Fatal("expected command layer enabled by default")
	}
	if module.CommandTimeout != 30*time.Second {
		t.Fatalf("expected default command timeout, got %v", module.CommandTimeout)
	}
}

func TestBuildModuleWatchGate(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Corpus\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	module, err := BuildModule(Options{RootDir: dir, Recursive: true})
	if err != nil {
		t.Fatalf("expected module to build, got %v", err)
	}
	if _, err := module.Module.NewWatcher(); !errors.Is(err, standards.ErrWatchDisabled) {
		t.Fatalf("expected watcher gated off by default, got %v", err)
	}

	watching, err := BuildModule(Options{RootDir: dir, Recursive: true, Watch: true})
	if err != nil {
		t.Fatalf("expected module to build, got %v", err)
	}
	watcher, err := watching.Module.NewWatcher()
	if err != nil {
		t.Fatalf("expected watcher when the watch option is set, got %v", err)
	}
	if watcher == nil {
		t.Fatal("expected a watcher instance")
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" a, b ,, c ")
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("expected trimmed entries, got %v", got)
	}
	if SplitList("   ") != nil {
		t.Fatal("expected nil for blank input")
	}
}
