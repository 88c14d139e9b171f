// Package standards maintains a documentation-conventions corpus: it loads
// markdown documents with frontmatter metadata, checks internal links,
// enforces header policy, stamps tool versions from a manifest, generates the
// corpus index, and reconciles a persisted document registry.
package standards

import (
	"context"
	"errors"

	"github.com/bayat/go-standards/internal/di"
	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/internal/validation"
	"github.com/bayat/go-standards/internal/watch"
	"github.com/bayat/go-standards/pkg/interfaces"
)

// CorpusService exports the document loading and rendering contract.
type CorpusService = interfaces.CorpusService

// LinkCheckService exports the link checking contract.
type LinkCheckService = interfaces.LinkCheckService

// HeaderService exports the header policy contract.
type HeaderService = interfaces.HeaderService

// VersionService exports the version stamp maintenance contract.
type VersionService = interfaces.VersionService

// IndexService exports the corpus index maintenance contract.
type IndexService = interfaces.IndexService

// RegistryService exports the document registry contract.
type RegistryService = interfaces.RegistryService

// ValidationService exports the frontmatter schema validation helper.
type ValidationService = *validation.Service

// Document exports the parsed corpus document DTO.
type Document = interfaces.Document

// FrontMatter exports the parsed document metadata DTO.
type FrontMatter = interfaces.FrontMatter

// LinkReport exports the link check report DTO.
type LinkReport = interfaces.LinkReport

// BrokenLink exports the broken link DTO.
type BrokenLink = interfaces.BrokenLink

// HeaderIssue exports the header policy violation DTO.
type HeaderIssue = interfaces.HeaderIssue

// DocumentRecord exports the registry record DTO.
type DocumentRecord = interfaces.DocumentRecord

// Module represents the top level standards runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a standards module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Corpus returns the configured corpus service.
func (m *Module) Corpus() CorpusService {
	return m.container.CorpusService()
}

// Links returns the configured link check service, nil when disabled.
func (m *Module) Links() LinkCheckService {
	return m.container.LinkCheckService()
}

// Headers returns the configured header service, nil when disabled.
func (m *Module) Headers() HeaderService {
	return m.container.HeaderService()
}

// Validation returns the frontmatter schema validator, nil when disabled.
func (m *Module) Validation() ValidationService {
	return m.container.ValidationService()
}

// Versions returns the configured version service, nil when disabled.
func (m *Module) Versions() VersionService {
	return m.container.VersionService()
}

// Index returns the configured index service, nil when disabled.
func (m *Module) Index() IndexService {
	return m.container.IndexService()
}

// Registry returns the configured registry service, nil when disabled.
func (m *Module) Registry() RegistryService {
	return m.container.RegistryService()
}

// LoggerProvider returns the configured logger provider.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// ErrWatchDisabled is returned by NewWatcher when Features.Watch is off.
var ErrWatchDisabled = errors.New("standards: watch feature is disabled")

// NewWatcher builds a corpus watcher that re-runs the link check over the
// whole corpus whenever documents settle after a change. The watch feature
// flag must be enabled.
func (m *Module) NewWatcher() (*watch.Watcher, error) {
	cfg := m.container.Config
	if !cfg.Features.Watch {
		return nil, ErrWatchDisabled
	}
	links := m.Links()
	logger := logging.WatchLogger(m.container.LoggerProvider())

	check := func(ctx context.Context, paths []string) {
		if links == nil {
			return
		}
		report, err := links.CheckDirectory(ctx, ".", interfaces.CheckOptions{})
		if err != nil {
			logger.Error("watch.check.failed", "error", err)
			return
		}
		for _, broken := range report.Broken {
			logger.Warn("watch.check.broken_link",
				"document", broken.DocumentPath,
				"target", broken.Link.Target,
				"line", broken.Link.Line,
				"reason", broken.Reason,
			)
		}
		logger.Info("watch.check.completed",
			"changed", len(paths),
			"documents", report.DocumentsChecked,
			"broken", len(report.Broken),
		)
	}

	return watch.NewWatcher(watch.Config{RootDir: cfg.Corpus.RootDir}, check, logger)
}
