package indexcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/bayat/go-standards/pkg/interfaces"
)

type stubIndexService struct {
	buildResult  *interfaces.IndexBuildResult
	verifyResult *interfaces.IndexVerifyResult
	buildOpts    interfaces.IndexBuildOptions
	buildCalled  bool
	verifyCalled bool
}

func (s *stubIndexService) Build(_ context.Context, opts interfaces.IndexBuildOptions) (*interfaces.IndexBuildResult, error) {
	s.buildCalled = true
	s.buildOpts = opts
	return s.buildResult, nil
}

func (s *stubIndexService) Verify(context.Context) (*interfaces.IndexVerifyResult, error) {
	s.verifyCalled = true
	return s.verifyResult, nil
}

func TestBuildIndexHandlerForwardsDryRun(t *testing.T) {
	service := &stubIndexService{buildResult: &interfaces.IndexBuildResult{Changed: true, Entries: 4}}
	h := NewBuildIndexHandler(service, nil, FeatureGates{})

	if err := h.Execute(context.Background(), BuildIndexCommand{DryRun: true}); err != nil {
		t.Fatalf("expected build to succeed, got %v", err)
	}
	if !service.buildOpts.DryRun {
		t.Fatal("expected dry-run forwarded to the service")
	}
}

func TestVerifyIndexHandlerMissingDocuments(t *testing.T) {
	service := &stubIndexService{verifyResult: &interfaces.IndexVerifyResult{
		Missing: []string{"guides/setup.md"},
		Entries: 3,
	}}
	h := NewVerifyIndexHandler(service, nil, FeatureGates{})

	err := h.Execute(context.Background(), VerifyIndexCommand{})
	if !errors.Is(err, ErrDocumentsUnindexed) {
		t.Fatalf("expected ErrDocumentsUnindexed, got %v", err)
	}
}

func TestVerifyIndexHandlerCompleteIndex(t *testing.T) {
	service := &stubIndexService{verifyResult: &interfaces.IndexVerifyResult{Entries: 3}}
	h := NewVerifyIndexHandler(service, nil, FeatureGates{})

	if err := h.Execute(context.Background(), VerifyIndexCommand{}); err != nil {
		t.Fatalf("expected complete index, got %v", err)
	}
}

func TestIndexHandlersFeatureDisabled(t *testing.T) {
	service := &stubIndexService{
		buildResult:  &interfaces.IndexBuildResult{},
		verifyResult: &interfaces.IndexVerifyResult{},
	}
	gates := FeatureGates{IndexEnabled: func() bool { return false }}

	if err := NewBuildIndexHandler(service, nil, gates).Execute(context.Background(), BuildIndexCommand{}); !errors.Is(err, ErrIndexFeatureDisabled) {
		t.Fatalf("expected ErrIndexFeatureDisabled from build, got %v", err)
	}
	if err := NewVerifyIndexHandler(service, nil, gates).Execute(context.Background(), VerifyIndexCommand{}); !errors.Is(err, ErrIndexFeatureDisabled) {
		t.Fatalf("expected ErrIndexFeatureDisabled from verify, got %v", err)
	}
	if service.buildCalled || service.verifyCalled {
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

func TestRegisterIndexCommands(t *testing.T) {
	reg := &recordingRegistry{}
	service := &stubIndexService{
		buildResult:  &interfaces.IndexBuildResult{},
		verifyResult: &interfaces.IndexVerifyResult{},
	}

	set, err := RegisterIndexCommands(reg, service, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}
	if set.Build == nil || set.Verify == nil {
		t.Fatal("expected both handlers in the set")
	}
	if len(reg.handlers) != 2 {
		t.Fatalf("expected 2 registered handlers, got %d", len(reg.handlers))
	}

	if _, err := RegisterIndexCommands(reg, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected nil service to be rejected")
	}
}
