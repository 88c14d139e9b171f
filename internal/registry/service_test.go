package registry

import (
	"context"
	"testing"
	"time"

	"github.com/bayat/go-standards/pkg/interfaces"
)

func corpusDoc(path, title string, checksum byte) *interfaces.Document {
	return &interfaces.Document{
		Path:     path,
		Category: "guides",
		FrontMatter: interfaces.FrontMatter{
			Title:   title,
			Version: "1.0.0",
		},
		Checksum: []byte{checksum},
	}
}

func TestSyncCreatesRecords(t *testing.T) {
	repo := NewMemoryDocumentRepository()
	svc := NewService(repo, nil)

	docs := []*interfaces.Document{
		corpusDoc("guides/intro.md", "Intro", 0x01),
		corpusDoc("guides/setup.md", "Setup", 0x02),
	}

	result, err := svc.Sync(context.Background(), docs, interfaces.RegistrySyncOptions{})
	if err != nil {
		t.Fatalf("expected sync to succeed, got %v", err)
	}
	if result.Created != 2 {
		t.Fatalf("expected 2 created records, got %d", result.Created)
	}

	record, err := svc.GetByPath(context.Background(), "guides/intro.md")
	if err != nil {
		t.Fatalf("expected record lookup to succeed, got %v", err)
	}
	if record.Title != "Intro" || record.Slug != "intro" {
		t.Fatalf("unexpected record %+v", record)
	}
	if record.Checksum != "01" {
		t.Fatalf("expected hex checksum, got %q", record.Checksum)
	}
}

func TestSyncSkipsUnchangedDocuments(t *testing.T) {
	repo := NewMemoryDocumentRepository()
	svc := NewService(repo, nil)
	docs := []*interfaces.Document{corpusDoc("guides/intro.md", "Intro", 0x01)}

	if _, err := svc.Sync(context.Background(), docs, interfaces.RegistrySyncOptions{}); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	result, err := svc.Sync(context.Background(), docs, interfaces.RegistrySyncOptions{})
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if result.Skipped != 1 || result.Created != 0 || result.Updated != 0 {
		t.Fatalf("expected unchanged document skipped, got %+v", result)
	}
}

func TestSyncUpdatesChangedDocuments(t *testing.T) {
	repo := NewMemoryDocumentRepository()
	svc := NewService(repo, nil)

	if _, err := svc.Sync(context.Background(),
		[]*interfaces.Document{corpusDoc("guides/intro.md", "Intro", 0x01)},
		interfaces.RegistrySyncOptions{}); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	before, err := svc.GetByPath(context.Background(), "guides/intro.md")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if err := svc.RecordCheck(context.Background(), "guides/intro.md", 3, time.Now()); err != nil {
		t.Fatalf("record check: %v", err)
	}

	result, err := svc.Sync(context.Background(),
		[]*interfaces.Document{corpusDoc("guides/intro.md", "Intro v2", 0x02)},
		interfaces.RegistrySyncOptions{})
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if result.Updated != 1 {
		t.Fatalf("expected 1 updated record, got %+v", result)
	}

	after, err := svc.GetByPath(context.Background(), "guides/intro.md")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if after.ID != before.ID {
		t.Fatal("expected record identity preserved across updates")
	}
	if after.Title != "Intro v2" {
		t.Fatalf("expected updated title, got %q", after.Title)
	}
	if after.BrokenLinks != 3 {
		t.Fatalf("expected broken link count preserved, got %d", after.BrokenLinks)
	}
	if after.ValidatedAt != nil {
		t.Fatal("expected validation stamp reset after content change")
	}
}

func TestSyncDeletesOrphanedRecords(t *testing.T) {
	repo := NewMemoryDocumentRepository()
	svc := NewService(repo, nil)

	if _, err := svc.Sync(context.Background(), []*interfaces.Document{
		corpusDoc("guides/intro.md", "Intro", 0x01),
		corpusDoc("guides/gone.md", "Gone", 0x02),
	}, interfaces.RegistrySyncOptions{}); err != nil {
		t.Fatalf("seed sync: %v", err)
	}

	result, err := svc.Sync(context.Background(),
		[]*interfaces.Document{corpusDoc("guides/intro.md", "Intro", 0x01)},
		interfaces.RegistrySyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("prune sync: %v", err)
	}
	if result.Deleted != 1 {
		t.Fatalf("expected 1 deleted record, got %+v", result)
	}

	records, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].Path != "guides/intro.md" {
		t.Fatalf("expected only guides/intro.md to remain, got %v", records)
	}
}

func TestSyncDryRun(t *testing.T) {
	repo := NewMemoryDocumentRepository()
	svc := NewService(repo, nil)

	result, err := svc.Sync(context.Background(),
		[]*interfaces.Document{corpusDoc("guides/intro.md", "Intro", 0x01)},
		interfaces.RegistrySyncOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry run sync: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("expected 1 would-be creation, got %+v", result)
	}

	records, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no persisted records in dry run, got %v", records)
	}
}

func TestRecordCheckUnknownDocument(t *testing.T) {
	svc := NewService(NewMemoryDocumentRepository(), nil)

	err := svc.RecordCheck(context.Background(), "guides/missing.md", 0, time.Now())
	if err == nil {
		t.Fatal("expected lookup failure for unknown document")
	}
}

func TestDocumentSlugFallbacks(t *testing.T) {
	withSlug := corpusDoc("guides/intro.md", "Intro", 0x01)
	withSlug.FrontMatter.Slug = "custom-slug"
	if got := documentSlug(withSlug); got != "custom-slug" {
		t.Fatalf("expected explicit slug, got %q", got)
	}

	fromTitle := corpusDoc("guides/intro.md", "Getting Started", 0x01)
	if got := documentSlug(fromTitle); got != "getting-started" {
		t.Fatalf("expected slug from title, got %q", got)
	}

	fromPath := corpusDoc("guides/code-review.md", "", 0x01)
	if got := documentSlug(fromPath); got != "code-review" {
		t.Fatalf("expected slug from filename, got %q", got)
	}
}
