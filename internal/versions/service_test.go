package versions

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bayat/go-standards/internal/markdown"
	"github.com/bayat/go-standards/pkg/interfaces"
)

func newTestService(t *testing.T, files map[string]string, manifest string) (*Service, string) {
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

	manifestPath := filepath.Join(dir, "versions.yaml")
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	loader := markdown.NewLoader(os.DirFS(dir), markdown.LoaderConfig{Recursive: true})
	svc := NewService(Config{RootDir: dir, ManifestPath: manifestPath}, loader, nil)
	return svc, dir
}

func TestUpdateDirectoryReplacesMarkers(t *testing.T) {
	svc, dir := newTestService(t, map[string]string{
		"tooling.md": "# Tooling\n\nUse Go <!-- version:go -->1.21<!-- /version --> or newer.\n",
	}, "versions:\n  go: \"1.23\"\n")

	result, err := svc.UpdateDirectory(context.Background(), ".", interfaces.VersionUpdateOptions{})
	if err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if result.MarkersReplaced != 1 {
		t.Fatalf("expected 1 marker replaced, got %d", result.MarkersReplaced)
	}
	if len(result.Updated) != 1 || result.Updated[0] != "tooling.md" {
		t.Fatalf("expected tooling.md updated, got %v", result.Updated)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tooling.md"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(data), "<!-- version:go -->1.23<!-- /version -->") {
		t.Fatalf("expected rewritten marker, got %q", data)
	}
}

func TestUpdateDirectorySkipsUnchangedDocuments(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		"current.md": "Go <!-- version:go -->1.23<!-- /version -->\n",
		"plain.md":   "# No markers here\n",
	}, "versions:\n  go: \"1.23\"\n")

	result, err := svc.UpdateDirectory(context.Background(), ".", interfaces.VersionUpdateOptions{})
	if err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if result.Skipped != 2 {
		t.Fatalf("expected 2 skipped documents, got %d", result.Skipped)
	}
	if len(result.Updated) != 0 {
		t.Fatalf("expected no updates, got %v", result.Updated)
	}
}

func TestUpdateDirectoryRecordsUnknownMarkers(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		"tooling.md": "Uses <!-- version:cmake -->3.20<!-- /version -->\n",
	}, "versions:\n  go: \"1.23\"\n")

	result, err := svc.UpdateDirectory(context.Background(), ".", interfaces.VersionUpdateOptions{})
	if err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if len(result.UnknownMarkers) != 1 || result.UnknownMarkers[0] != "tooling.md:cmake" {
		t.Fatalf("expected unknown marker tooling.md:cmake, got %v", result.UnknownMarkers)
	}
	if result.MarkersReplaced != 0 {
		t.Fatalf("expected no replacements, got %d", result.MarkersReplaced)
	}
}

func TestUpdateDirectoryDryRun(t *testing.T) {
	original := "Go <!-- version:go -->1.21<!-- /version -->\n"
	svc, dir := newTestService(t, map[string]string{"tooling.md": original},
		"versions:\n  go: \"1.23\"\n")

	result, err := svc.UpdateDirectory(context.Background(), ".", interfaces.VersionUpdateOptions{DryRun: true})
	if err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if len(result.Updated) != 1 {
		t.Fatalf("expected 1 document collected, got %v", result.Updated)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tooling.md"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != original {
		t.Fatalf("expected dry run to leave file untouched, got %q", data)
	}
}

func TestBumpDocumentRewritesVersion(t *testing.T) {
	source := "---\ntitle: Tooling\nversion: 1.0.0\nlast_updated: 2024-01-01\n---\n\n# Tooling\n"
	svc, dir := newTestService(t, map[string]string{"tooling.md": source},
		"versions:\n  go: \"1.23\"\n")
	svc.clock = func() time.Time {
		return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	}

	if err := svc.BumpDocument(context.Background(), "tooling.md", "1.1.0"); err != nil {
		t.Fatalf("expected bump to succeed, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tooling.md"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "version: 1.1.0\n") {
		t.Fatalf("expected bumped version, got %q", content)
	}
	if !strings.Contains(content, "last_updated: 2026-08-26\n") {
		t.Fatalf("expected stamped header, got %q", content)
	}
	if !strings.Contains(content, "# Tooling\n") {
		t.Fatalf("expected body preserved, got %q", content)
	}
}

func TestBumpDocumentRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		"versioned.md": "---\ntitle: V\nversion: 1.0.0\n---\n\n# V\n",
		"bare.md":      "# Bare\n",
	}, "versions: {}\n")

	if err := svc.BumpDocument(context.Background(), "versioned.md", ""); err == nil {
		t.Fatal("expected empty version to be rejected")
	}
	if err := svc.BumpDocument(context.Background(), "bare.md", "1.1.0"); err == nil {
		t.Fatal("expected headerless document to be rejected")
	}
}

func TestUpdateDirectoryStampsLastUpdated(t *testing.T) {
	source := "---\ntitle: Tooling\nlast_updated: 2024-01-01\n---\n\nGo <!-- version:go -->1.21<!-- /version -->\n\nlast_updated: not a header line\n"
	svc, dir := newTestService(t, map[string]string{"tooling.md": source},
		"versions:\n  go: \"1.23\"\n")
	svc.clock = func() time.Time {
		return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	}

	_, err := svc.UpdateDirectory(context.Background(), ".", interfaces.VersionUpdateOptions{Stamp: true})
	if err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tooling.md"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "last_updated: 2026-08-26\n") {
		t.Fatalf("expected stamped header, got %q", content)
	}
	if !strings.Contains(content, "last_updated: not a header line\n") {
		t.Fatalf("expected body line untouched, got %q", content)
	}
}
