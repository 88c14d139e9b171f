// Package di wires the standards runtime: it turns a validated Config into
// the corpus, links, headers, versions, index, validation, and registry
// services, honouring host-supplied overrides.
package di

import (
	"io/fs"
	"os"

	"github.com/bayat/go-standards/internal/headers"
	"github.com/bayat/go-standards/internal/index"
	"github.com/bayat/go-standards/internal/links"
	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/internal/logging/console"
	"github.com/bayat/go-standards/internal/logging/gologger"
	"github.com/bayat/go-standards/internal/markdown"
	"github.com/bayat/go-standards/internal/registry"
	"github.com/bayat/go-standards/internal/runtimeconfig"
	"github.com/bayat/go-standards/internal/validation"
	"github.com/bayat/go-standards/internal/versions"
	"github.com/bayat/go-standards/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies from configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	bunDB          *bun.DB
	cacheService   repocache.CacheService
	keySerializer  repocache.KeySerializer

	fsys   fs.FS
	parser interfaces.MarkdownParser

	documentRepo registry.DocumentRepository

	corpusSvc     *markdown.Service
	linksSvc      *links.Checker
	headersSvc    *headers.Service
	versionsSvc   *versions.Service
	indexSvc      *index.Service
	validationSvc *validation.Service
	registrySvc   *registry.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies a database handle, replacing the driver from Config.Storage.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache enables repository caching for the registry backend.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithFS overrides the corpus filesystem, primarily for tests.
func WithFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.fsys = fsys
	}
}

// WithParser overrides the default goldmark parser.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithDocumentRepository overrides the registry persistence backend.
func WithDocumentRepository(repo registry.DocumentRepository) Option {
	return func(c *Container) {
		c.documentRepo = repo
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}

	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := buildLoggerProvider(cfg.Logging, cfg.Features.Logger)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.fsys == nil {
		c.fsys = os.DirFS(cfg.Corpus.RootDir)
	}

	if c.parser == nil {
		c.parser = markdown.NewGoldmarkParser(parseOptions(cfg.Corpus.Parser))
	}

	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	if err := c.configureServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) configureStorage() error {
	if !c.Config.Features.Registry {
		return nil
	}
	if c.documentRepo != nil {
		return nil
	}

	if c.bunDB == nil {
		driver := c.Config.Storage.Driver
		if driver == "" || driver == "memory" {
			c.documentRepo = registry.NewMemoryDocumentRepository()
			return nil
		}
		db, err := registry.OpenDB(driver, c.Config.Storage.DSN)
		if err != nil {
			return err
		}
		c.bunDB = db
	}

	c.documentRepo = registry.NewBunDocumentRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	return nil
}

func (c *Container) configureServices() error {
	corpusCfg := markdown.Config{
		RootDir:          c.Config.Corpus.RootDir,
		DefaultCategory:  c.Config.Corpus.DefaultCategory,
		Categories:       c.Config.Corpus.Categories,
		CategoryPatterns: c.Config.Corpus.CategoryPatterns,
		Pattern:          c.Config.Corpus.Pattern,
		Recursive:        c.Config.Corpus.Recursive,
		Parser:           parseOptions(c.Config.Corpus.Parser),
	}
	c.corpusSvc = markdown.NewServiceWithFS(c.fsys, corpusCfg, c.parser)

	if c.Config.Features.Links {
		c.linksSvc = links.NewChecker(c.fsys, links.Config{
			Workers:        c.Config.Links.Workers,
			CheckAnchors:   c.Config.Links.CheckAnchors,
			IgnorePatterns: c.Config.Links.IgnorePatterns,
			Pattern:        c.Config.Corpus.Pattern,
			Recursive:      c.Config.Corpus.Recursive,
		}, logging.LinksLogger(c.loggerProvider))
	}

	if c.Config.Features.Headers {
		c.headersSvc = headers.NewService(headers.Config{
			RootDir:         c.Config.Corpus.RootDir,
			DefaultCategory: c.Config.Corpus.DefaultCategory,
			Policy: headers.Policy{
				RequiredFields:    c.Config.Headers.RequiredFields,
				AllowedStatuses:   c.Config.Headers.AllowedStatuses,
				AllowedCategories: c.Config.Headers.AllowedCategories,
				DefaultVersion:    c.Config.Headers.DefaultVersion,
			},
		}, c.corpusSvc.Loader(), logging.HeadersLogger(c.loggerProvider))

		schemaSvc, err := validation.NewService(c.corpusSvc.Loader(), validation.Config{}, logging.ValidationLogger(c.loggerProvider))
		if err != nil {
			return err
		}
		c.validationSvc = schemaSvc
	}

	if c.Config.Features.Versions {
		c.versionsSvc = versions.NewService(versions.Config{
			RootDir:      c.Config.Corpus.RootDir,
			ManifestPath: c.Config.Versions.ManifestPath,
		}, c.corpusSvc.Loader(), logging.VersionsLogger(c.loggerProvider))
	}

	if c.Config.Features.Index {
		c.indexSvc = index.NewService(c.fsys, c.corpusSvc.Loader(), index.Config{
			RootDir: c.Config.Corpus.RootDir,
			File:    c.Config.Index.File,
			Marker:  c.Config.Index.Marker,
		}, logging.IndexLogger(c.loggerProvider))
	}

	if c.Config.Features.Registry && c.documentRepo != nil {
		c.registrySvc = registry.NewService(c.documentRepo, logging.RegistryLogger(c.loggerProvider))
	}

	return nil
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DB exposes the configured database handle, nil for the memory driver.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// CorpusService returns the configured corpus service.
func (c *Container) CorpusService() interfaces.CorpusService {
	return c.corpusSvc
}

// Loader exposes the shared document loader.
func (c *Container) Loader() *markdown.Loader {
	return c.corpusSvc.Loader()
}

// LinkCheckService returns the configured link checker, nil when disabled.
func (c *Container) LinkCheckService() interfaces.LinkCheckService {
	if c.linksSvc == nil {
		return nil
	}
	return c.linksSvc
}

// HeaderService returns the configured header service, nil when disabled.
func (c *Container) HeaderService() interfaces.HeaderService {
	if c.headersSvc == nil {
		return nil
	}
	return c.headersSvc
}

// ValidationService returns the frontmatter schema validator, nil when disabled.
func (c *Container) ValidationService() *validation.Service {
	return c.validationSvc
}

// VersionService returns the configured version service, nil when disabled.
func (c *Container) VersionService() interfaces.VersionService {
	if c.versionsSvc == nil {
		return nil
	}
	return c.versionsSvc
}

// IndexService returns the configured index service, nil when disabled.
func (c *Container) IndexService() interfaces.IndexService {
	if c.indexSvc == nil {
		return nil
	}
	return c.indexSvc
}

// RegistryService returns the configured registry service, nil when disabled.
func (c *Container) RegistryService() interfaces.RegistryService {
	if c.registrySvc == nil {
		return nil
	}
	return c.registrySvc
}

// DocumentRepository exposes the registry persistence backend.
func (c *Container) DocumentRepository() registry.DocumentRepository {
	return c.documentRepo
}

func buildLoggerProvider(cfg runtimeconfig.LoggingConfig, enabled bool) (interfaces.LoggerProvider, error) {
	if !enabled {
		return noopProvider{}, nil
	}

	switch cfg.Provider {
	case "", "console":
		level := console.ParseLevel(cfg.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		return nil, runtimeconfig.ErrLoggingProviderUnknown
	}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}

func parseOptions(cfg runtimeconfig.ParserConfig) interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: cfg.Extensions,
		Sanitize:   cfg.Sanitize,
		HardWraps:  cfg.HardWraps,
		SafeMode:   cfg.SafeMode,
	}
}
