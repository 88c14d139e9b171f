package di

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/bayat/go-standards/internal/runtimeconfig"
	"github.com/bayat/go-standards/pkg/interfaces"
)

func testConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Corpus.RootDir = "."
	cfg.Features = runtimeconfig.Features{
		Links:    true,
		Headers:  true,
		Versions: true,
		Index:    true,
		Registry: true,
	}
	return cfg
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"README.md":       &fstest.MapFile{Data: []byte("<!-- standards:index -->\n<!-- /standards:index -->\n")},
		"guides/intro.md": &fstest.MapFile{Data: []byte("---\ntitle: Intro\n---\n\n# Intro\n\n[Setup](setup.md)\n")},
		"guides/setup.md": &fstest.MapFile{Data: []byte("---\ntitle: Setup\n---\n\n# Setup\n")},
	}
}

func TestNewContainerWiresServices(t *testing.T) {
	container, err := NewContainer(testConfig(), WithFS(testFS()))
	if err != nil {
		t.Fatalf("expected container to build, got %v", err)
	}

	if container.CorpusService() == nil {
		t.Fatal("expected corpus service")
	}
	if container.LinkCheckService() == nil {
		t.Fatal("expected link check service")
	}
	if container.HeaderService() == nil {
		t.Fatal("expected header service")
	}
	if container.ValidationService() == nil {
		t.Fatal("expected validation service")
	}
	if container.VersionService() == nil {
		t.Fatal("expected version service")
	}
	if container.IndexService() == nil {
		t.Fatal("expected index service")
	}
	if container.RegistryService() == nil {
		t.Fatal("expected registry service")
	}
	if container.LoggerProvider() == nil {
		t.Fatal("expected logger provider")
	}
	if container.DB() != nil {
		t.Fatal("expected no database handle for the memory driver")
	}
}

func TestNewContainerFeatureGates(t *testing.T) {
	cfg := testConfig()
	cfg.Features.Links = false
	cfg.Features.Versions = false
	cfg.Features.Registry = false

	container, err := NewContainer(cfg, WithFS(testFS()))
	if err != nil {
		t.Fatalf("expected container to build, got %v", err)
	}

	if container.LinkCheckService() != nil {
		t.Fatal("expected link check service disabled")
	}
	if container.VersionService() != nil {
		t.Fatal("expected version service disabled")
	}
	if container.RegistryService() != nil {
		t.Fatal("expected registry service disabled")
	}
	if container.HeaderService() == nil {
		t.Fatal("expected header service still enabled")
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Corpus.RootDir = ""

	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected config validation failure")
	}
}

func TestContainerServicesOperateOnInjectedFS(t *testing.T) {
	container, err := NewContainer(testConfig(), WithFS(testFS()))
	if err != nil {
		t.Fatalf("expected container to build, got %v", err)
	}

	report, err := container.LinkCheckService().CheckDirectory(context.Background(), ".", interfaces.CheckOptions{})
	if err != nil {
		t.Fatalf("expected link check to run, got %v", err)
	}
	if report.DocumentsChecked != 3 {
		t.Fatalf("expected 3 documents checked, got %d", report.DocumentsChecked)
	}
	if report.Failed() {
		t.Fatalf("expected clean corpus, got %v", report.Broken)
	}
}
