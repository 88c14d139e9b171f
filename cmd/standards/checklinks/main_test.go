package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		target := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	return dir
}

func TestRunCheckLinksCleanCorpus(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"README.md":       "# Corpus\n\n[Intro](guides/intro.md)\n",
		"guides/intro.md": "# Intro\n\n[Back](../README.md)\n",
	})

	code, err := runCheckLinks([]string{"-root", dir})
	if err != nil {
		t.Fatalf("runCheckLinks returned error: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRunCheckLinksBrokenCorpus(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"README.md": "# Corpus\n\n[Missing](missing.md)\n",
	})

	code, err := runCheckLinks([]string{"-root", dir})
	if err != nil {
		t.Fatalf("runCheckLinks returned error: %v", err)
	}
	if code != 1 {
		t.Fatalf("expected exit code 1 for broken links, got %d", code)
	}
}
