package index

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/bayat/go-standards/internal/markdown"
	"github.com/bayat/go-standards/pkg/interfaces"
)

func indexFS(readme string) fstest.MapFS {
	return fstest.MapFS{
		"README.md":       &fstest.MapFile{Data: []byte(readme)},
		"guides/intro.md": &fstest.MapFile{Data: []byte("---\ntitle: Intro\n---\n\n# Intro\n")},
		"guides/setup.md": &fstest.MapFile{Data: []byte("---\ntitle: Setup\n---\n\n# Setup\n")},
	}
}

func newTestService(fsys fstest.MapFS) (*Service, *map[string][]byte) {
	loader := markdown.NewLoader(fsys, markdown.LoaderConfig{Recursive: true})
	svc := NewService(fsys, loader, Config{}, nil)

	written := map[string][]byte{}
	svc.writeFile = func(path string, data []byte) error {
		written[path] = data
		return nil
	}
	return svc, &written
}

func TestBuildRegeneratesRegion(t *testing.T) {
	readme := "# Standards\n\n<!-- standards:index -->\nstale\n<!-- /standards:index -->\n\nFooter.\n"
	svc, written := newTestService(indexFS(readme))

	result, err := svc.Build(context.Background(), interfaces.IndexBuildOptions{})
	if err != nil {
		t.Fatalf("expected build to succeed, got %v", err)
	}
	if !result.Changed {
		t.Fatal("expected index to change")
	}
	if result.Entries != 2 {
		t.Fatalf("expected 2 entries, got %d", result.Entries)
	}

	data, ok := (*written)["README.md"]
	if !ok {
		t.Fatal("expected README.md to be written")
	}
	content := string(data)
	if !strings.Contains(content, "### Guides") {
		t.Fatalf("expected category heading, got %q", content)
	}
	if !strings.Contains(content, "- [Intro](guides/intro.md)") {
		t.Fatalf("expected intro entry, got %q", content)
	}
	if strings.Contains(content, "stale") {
		t.Fatalf("expected stale region replaced, got %q", content)
	}
	if !strings.Contains(content, "Footer.") {
		t.Fatalf("expected content outside markers preserved, got %q", content)
	}
}

func TestBuildDryRunDoesNotWrite(t *testing.T) {
	readme := "<!-- standards:index -->\n<!-- /standards:index -->\n"
	svc, written := newTestService(indexFS(readme))

	result, err := svc.Build(context.Background(), interfaces.IndexBuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("expected build to succeed, got %v", err)
	}
	if !result.Changed {
		t.Fatal("expected change detection in dry run")
	}
	if len(*written) != 0 {
		t.Fatalf("expected no writes in dry run, got %v", *written)
	}
}

func TestBuildUnchangedIndex(t *testing.T) {
	readme := "<!-- standards:index -->\nseed\n<!-- /standards:index -->\n"
	svc, written := newTestService(indexFS(readme))

	first, err := svc.Build(context.Background(), interfaces.IndexBuildOptions{})
	if err != nil {
		t.Fatalf("expected build to succeed, got %v", err)
	}
	if !first.Changed {
		t.Fatal("expected first build to change the index")
	}

	regenerated := indexFS(string((*written)["README.md"]))
	svc2, written2 := newTestService(regenerated)
	second, err := svc2.Build(context.Background(), interfaces.IndexBuildOptions{})
	if err != nil {
		t.Fatalf("expected rebuild to succeed, got %v", err)
	}
	if second.Changed {
		t.Fatal("expected rebuild to be a no-op")
	}
	if len(*written2) != 0 {
		t.Fatalf("expected no writes on rebuild, got %v", *written2)
	}
}

func TestBuildMissingMarkers(t *testing.T) {
	svc, _ := newTestService(indexFS("# Standards without markers\n"))

	_, err := svc.Build(context.Background(), interfaces.IndexBuildOptions{})
	if err == nil {
		t.Fatal("expected missing marker error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestVerifyReportsMissingEntries(t *testing.T) {
	readme := "<!-- standards:index -->\n\n### Guides\n\n- [Intro](guides/intro.md)\n\n<!-- /standards:index -->\n"
	svc, _ := newTestService(indexFS(readme))

	result, err := svc.Verify(context.Background())
	if err != nil {
		t.Fatalf("expected verify to succeed, got %v", err)
	}
	if !result.Failed() {
		t.Fatal("expected verification failure")
	}
	if len(result.Missing) != 1 || result.Missing[0] != "guides/setup.md" {
		t.Fatalf("expected guides/setup.md missing, got %v", result.Missing)
	}
}

func TestVerifyCompleteIndex(t *testing.T) {
	readme := "<!-- standards:index -->\n\n### Guides\n\n- [Intro](guides/intro.md)\n- [Setup](guides/setup.md)\n\n<!-- /standards:index -->\n"
	svc, _ := newTestService(indexFS(readme))

	result, err := svc.Verify(context.Background())
	if err != nil {
		t.Fatalf("expected verify to succeed, got %v", err)
	}
	if result.Failed() {
		t.Fatalf("expected complete index, got missing %v", result.Missing)
	}
}
