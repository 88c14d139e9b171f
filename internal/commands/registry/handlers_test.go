package registrycmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bayat/go-standards/pkg/interfaces"
)

type stubCorpusService struct {
	docs []*interfaces.Document
	dir  string
}

func (s *stubCorpusService) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.Document, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCorpusService) LoadDirectory(_ context.Context, dir string, _ interfaces.LoadOptions) ([]*interfaces.Document, error) {
	s.dir = dir
	return s.docs, nil
}

func (s *stubCorpusService) Render(context.Context, []byte, interfaces.ParseOptions) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCorpusService) RenderDocument(context.Context, *interfaces.Document, interfaces.ParseOptions) ([]byte, error) {
	return nil, errors.New("not implemented")
}

type stubRegistryService struct {
	result *interfaces.RegistrySyncResult
	docs   []*interfaces.Document
	opts   interfaces.RegistrySyncOptions
	called bool
}

func (s *stubRegistryService) Sync(_ context.Context, docs []*interfaces.Document, opts interfaces.RegistrySyncOptions) (*interfaces.RegistrySyncResult, error) {
	s.called = true
	s.docs = docs
	s.opts = opts
	return s.result, nil
}

func (s *stubRegistryService) RecordCheck(context.Context, string, int, time.Time) error {
	return errors.New("not implemented")
}

func (s *stubRegistryService) GetByPath(context.Context, string) (*interfaces.DocumentRecord, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRegistryService) List(context.Context) ([]*interfaces.DocumentRecord, error) {
	return nil, errors.New("not implemented")
}

func TestSyncRegistryCommandValidate(t *testing.T) {
	if err := (SyncRegistryCommand{Directory: "."}).Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
	if err := (SyncRegistryCommand{}).Validate(); err == nil {
		t.Fatal("expected missing directory to fail validation")
	}
	if err := (SyncRegistryCommand{Directory: "  "}).Validate(); err == nil {
		t.Fatal("expected blank directory to fail validation")
	}
}

func TestSyncRegistryHandlerForwardsOptions(t *testing.T) {
	corpus := &stubCorpusService{docs: []*interfaces.Document{
		{Path: "guides/intro.md"},
		{Path: "guides/setup.md"},
	}}
	registry := &stubRegistryService{result: &interfaces.RegistrySyncResult{Created: 2}}
	h := NewSyncRegistryHandler(corpus, registry, nil, FeatureGates{})

	msg := SyncRegistryCommand{Directory: "guides", DeleteOrphaned: true, DryRun: true}
	if err := h.Execute(context.Background(), msg); err != nil {
		t.Fatalf("expected sync to succeed, got %v", err)
	}
	if corpus.dir != "guides" {
		t.Fatalf("expected directory forwarded, got %q", corpus.dir)
	}
	if len(registry.docs) != 2 {
		t.Fatalf("expected loaded documents forwarded, got %d", len(registry.docs))
	}
	if !registry.opts.DeleteOrphaned || !registry.opts.DryRun {
		t.Fatalf("expected options forwarded, got %+v", registry.opts)
	}
}

func TestSyncRegistryHandlerFeatureDisabled(t *testing.T) {
	registry := &stubRegistryService{result: &interfaces.RegistrySyncResult{}}
	h := NewSyncRegistryHandler(&stubCorpusService{}, registry, nil, FeatureGates{
		RegistryEnabled: func() bool { return false },
	})

	err := h.Execute(context.Background(), SyncRegistryCommand{Directory: "."})
	if !errors.Is(err, ErrRegistryFeatureDisabled) {
		t.Fatalf("expected ErrRegistryFeatureDisabled, got %v", err)
	}
	if registry.called {
		t.Fatal("expected registry not to be called when the feature is disabled")
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterRegistryCommands(t *testing.T) {
	reg := &recordingRegistry{}
	corpus := &stubCorpusService{}
	registry := &stubRegistryService{result: &interfaces.RegistrySyncResult{}}

	set, err := RegisterRegistryCommands(reg, corpus, registry, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}
	if set.Sync == nil {
		t.Fatal("expected sync handler in the set")
	}
	if len(reg.handlers) != 1 {
		t.Fatalf("expected 1 registered handler, got %d", len(reg.handlers))
	}

	if _, err := RegisterRegistryCommands(reg, nil, registry, nil, FeatureGates{}); err == nil {
		t.Fatal("expected nil corpus service to be rejected")
	}
	if _, err := RegisterRegistryCommands(reg, corpus, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected nil registry service to be rejected")
	}
}
