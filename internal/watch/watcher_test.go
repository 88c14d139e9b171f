package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherTriggersCheckOnChange(t *testing.T) {
	dir := t.TempDir()

	checked := make(chan []string, 1)
	w, err := NewWatcher(Config{RootDir: dir, Debounce: 20 * time.Millisecond},
		func(_ context.Context, paths []string) {
			select {
			case checked <- paths:
			default:
			}
		}, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	target := filepath.Join(dir, "guide.md")
	if err := os.WriteFile(target, []byte("# Guide\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	select {
	case paths := <-checked:
		if len(paths) != 1 || paths[0] != "guide.md" {
			t.Fatalf("expected corpus-relative path guide.md, got %v", paths)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected check callback after file change")
	}

	stats := w.Stats()
	if stats.FilesChanged == 0 {
		t.Fatalf("expected change recorded, got %+v", stats)
	}
	if stats.ChecksRun == 0 {
		t.Fatalf("expected check run recorded, got %+v", stats)
	}
}

func TestWatcherIgnoresNonMarkdown(t *testing.T) {
	dir := t.TempDir()

	checked := make(chan []string, 1)
	w, err := NewWatcher(Config{RootDir: dir, Debounce: 20 * time.Millisecond},
		func(_ context.Context, paths []string) {
			select {
			case checked <- paths:
			default:
			}
		}, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	select {
	case paths := <-checked:
		t.Fatalf("expected no check for non-markdown files, got %v", paths)
	case <-time.After(400 * time.Millisecond):
	}

	if stats := w.Stats(); stats.FilesChanged != 0 {
		t.Fatalf("expected no markdown changes recorded, got %+v", stats)
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(Config{RootDir: dir}, nil, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	w.Stop()
	w.Stop()
}
