package validation

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/bayat/go-standards/internal/markdown"
)

func newTestService(t *testing.T, fsys fstest.MapFS, cfg Config) *Service {
	t.Helper()

	loader := markdown.NewLoader(fsys, markdown.LoaderConfig{Recursive: true})
	svc, err := NewService(loader, cfg, nil)
	if err != nil {
		t.Fatalf("expected service to build, got %v", err)
	}
	return svc
}

func TestValidateDirectoryCleanCorpus(t *testing.T) {
	fsys := fstest.MapFS{
		"guides/intro.md": &fstest.MapFile{Data: []byte("---\ntitle: Intro\ncategory: guides\n---\n\n# Intro\n")},
	}
	svc := newTestService(t, fsys, Config{})

	report, err := svc.ValidateDirectory(context.Background())
	if err != nil {
		t.Fatalf("expected validation to succeed, got %v", err)
	}
	if report.DocumentsChecked != 1 {
		t.Fatalf("expected 1 document checked, got %d", report.DocumentsChecked)
	}
	if report.Failed() {
		t.Fatalf("expected clean report, got %v", report.Issues)
	}
}

func TestValidateDirectoryReportsIssues(t *testing.T) {
	schema := DefaultFrontMatterSchema()
	properties := schema["properties"].(map[string]any)
	properties["owner"] = map[string]any{"type": "string"}

	fsys := fstest.MapFS{
		"bad.md":  &fstest.MapFile{Data: []byte("---\ntitle: Bad\nowner: 42\n---\n\n# Bad\n")},
		"good.md": &fstest.MapFile{Data: []byte("---\ntitle: Good\nowner: platform\n---\n\n# Good\n")},
	}
	svc := newTestService(t, fsys, Config{Schema: schema})

	report, err := svc.ValidateDirectory(context.Background())
	if err != nil {
		t.Fatalf("expected validation to succeed, got %v", err)
	}
	if !report.Failed() {
		t.Fatal("expected validation issues")
	}
	for _, issue := range report.Issues {
		if issue.DocumentPath != "bad.md" {
			t.Fatalf("expected issues only in bad.md, got %v", report.Issues)
		}
	}
}

func TestValidateDirectorySkipsHeaderlessDocuments(t *testing.T) {
	fsys := fstest.MapFS{
		"bare.md": &fstest.MapFile{Data: []byte("# Bare\n")},
	}
	svc := newTestService(t, fsys, Config{})

	report, err := svc.ValidateDirectory(context.Background())
	if err != nil {
		t.Fatalf("expected validation to succeed, got %v", err)
	}
	if report.Failed() {
		t.Fatalf("expected headerless documents to be skipped, got %v", report.Issues)
	}
}

func TestNewServiceCompilesSchemaOnce(t *testing.T) {
	svc := newTestService(t, fstest.MapFS{}, Config{})
	if svc.compiled == nil {
		t.Fatal("expected schema compiled at construction")
	}
}

func TestNewServiceRejectsInvalidSchema(t *testing.T) {
	loader := markdown.NewLoader(fstest.MapFS{}, markdown.LoaderConfig{})
	if _, err := NewService(loader, Config{Schema: map[string]any{"type": 42}}, nil); err == nil {
		t.Fatal("expected invalid schema to be rejected")
	}
}

func TestValidateDirectoryCustomSchema(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []string{"owner"},
		"properties": map[string]any{
			"owner": map[string]any{"type": "string"},
		},
	}
	fsys := fstest.MapFS{
		"doc.md": &fstest.MapFile{Data: []byte("---\ntitle: Doc\n---\n\n# Doc\n")},
	}
	svc := newTestService(t, fsys, Config{Schema: schema})

	report, err := svc.ValidateDirectory(context.Background())
	if err != nil {
		t.Fatalf("expected validation to succeed, got %v", err)
	}
	if !report.Failed() {
		t.Fatal("expected missing owner field to fail")
	}
}
