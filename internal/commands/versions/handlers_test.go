package versionscmd

import (
	"context"
	"errors"
	"testing"

	"github.com/bayat/go-standards/pkg/interfaces"
)

type stubVersionService struct {
	result *interfaces.VersionUpdateResult
	dir    string
	opts   interfaces.VersionUpdateOptions
	called bool
}

func (s *stubVersionService) UpdateDirectory(_ context.Context, dir string, opts interfaces.VersionUpdateOptions) (*interfaces.VersionUpdateResult, error) {
	s.called = true
	s.dir = dir
	s.opts = opts
	return s.result, nil
}

func (s *stubVersionService) BumpDocument(context.Context, string, string) error {
	return errors.New("not implemented")
}

func TestUpdateVersionsCommandValidate(t *testing.T) {
	if err := (UpdateVersionsCommand{Directory: "."}).Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
	if err := (UpdateVersionsCommand{}).Validate(); err == nil {
		t.Fatal("expected missing directory to fail validation")
	}
	if err := (UpdateVersionsCommand{Directory: "  "}).Validate(); err == nil {
		t.Fatal("expected blank directory to fail validation")
	}
}

func TestUpdateVersionsHandlerForwardsOptions(t *testing.T) {
	service := &stubVersionService{result: &interfaces.VersionUpdateResult{MarkersReplaced: 2}}
	h := NewUpdateVersionsHandler(service, nil, FeatureGates{})

	msg := UpdateVersionsCommand{Directory: "tools", DryRun: true, Stamp: true}
	if err := h.Execute(context.Background(), msg); err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if service.dir != "tools" {
		t.Fatalf("expected directory forwarded, got %q", service.dir)
	}
	if !service.opts.DryRun || !service.opts.Stamp {
		t.Fatalf("expected options forwarded, got %+v", service.opts)
	}
}

func TestUpdateVersionsHandlerFeatureDisabled(t *testing.T) {
	service := &stubVersionService{result: &interfaces.VersionUpdateResult{}}
	h := NewUpdateVersionsHandler(service, nil, FeatureGates{
		VersionsEnabled: func() bool { return false },
	})

	err := h.Execute(context.Background(), UpdateVersionsCommand{Directory: "."})
	if !errors.Is(err, ErrVersionsFeatureDisabled) {
		t.Fatalf("expected ErrVersionsFeatureDisabled, got %v", err)
	}
	if service.called {
		t.Fatal("expected service not to be called when the feature is disabled")
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterVersionCommands(t *testing.T) {
	reg := &recordingRegistry{}
	service := &stubVersionService{result: &interfaces.VersionUpdateResult{}}

	set, err := RegisterVersionCommands(reg, service, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}
	if set.Update == nil {
		t.Fatal("expected update handler in the set")
	}
	if len(reg.handlers) != 1 {
		t.Fatalf("expected 1 registered handler, got %d", len(reg.handlers))
	}

	if _, err := RegisterVersionCommands(reg, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected nil service to be rejected")
	}
}
