package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrCorpusRootRequired indicates the corpus root directory is missing.
var ErrCorpusRootRequired = errors.New("standards config: corpus root directory is required")

// ErrLinksWorkersInvalid guards the link checker worker bound.
var ErrLinksWorkersInvalid = errors.New("standards config: links workers must be zero or positive")

// ErrHeadersRequiredFieldEmpty rejects blank entries in the header policy.
var ErrHeadersRequiredFieldEmpty = errors.New("standards config: header policy required fields must not be blank")

// ErrVersionsManifestRequired ensures version updates have a manifest to read.
var ErrVersionsManifestRequired = errors.New("standards config: versions manifest path is required when versions are enabled")

// ErrIndexFileRequired ensures index maintenance has a target document.
var ErrIndexFileRequired = errors.New("standards config: index file is required when the index feature is enabled")

// ErrStorageDriverUnknown rejects unsupported registry drivers.
var ErrStorageDriverUnknown = errors.New("standards config: storage driver is invalid")

// ErrStorageDSNRequired ensures database-backed registries have a DSN.
var ErrStorageDSNRequired = errors.New("standards config: storage DSN is required for database drivers")

// ErrRegistryFeatureRequired keeps storage configuration behind the registry flag.
var ErrRegistryFeatureRequired = errors.New("standards config: registry feature must be enabled to configure storage")

// ErrLoggingProviderRequired is returned when logging is enabled without a provider.
var ErrLoggingProviderRequired = errors.New("standards config: logging provider is required when logging feature is enabled")

// ErrLoggingProviderUnknown rejects unsupported logging providers.
var ErrLoggingProviderUnknown = errors.New("standards config: logging provider is invalid")

// ErrLoggingLevelInvalid rejects unsupported logging levels.
var ErrLoggingLevelInvalid = errors.New("standards config: logging level is invalid")

// ErrLoggingFormatInvalid rejects unsupported go-logger output formats.
var ErrLoggingFormatInvalid = errors.New("standards config: logging format is invalid")

// ErrCommandTimeoutInvalid rejects negative command timeouts.
var ErrCommandTimeoutInvalid = errors.New("standards config: command timeout must be zero or positive")

// Config aggregates feature flags and behaviour for the standards toolkit.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled  bool
	Corpus   CorpusConfig
	Links    LinksConfig
	Headers  HeadersConfig
	Versions VersionsConfig
	Index    IndexConfig
	Storage  StorageConfig
	Commands CommandsConfig
	Logging  LoggingConfig
	Features Features
}

// CorpusConfig captures filesystem and parser behaviour for document discovery.
type CorpusConfig struct {
	// RootDir is the directory holding the convention documents.
	RootDir string
	// Pattern limits discovery to matching files (defaults to "*.md").
	Pattern   string
	Recursive bool
	// Categories enumerates the known top-level categories for quick
	// directory matching.
	Categories []string
	// CategoryPatterns maps category identifiers to glob expressions
	// relative to RootDir.
	CategoryPatterns map[string]string
	DefaultCategory  string
	Parser           ParserConfig
}

// ParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type ParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// LinksConfig tunes the link checker.
type LinksConfig struct {
	// Workers bounds concurrent document checks; zero means GOMAXPROCS.
	Workers int
	// CheckAnchors verifies path#anchor fragments against target headings.
	CheckAnchors bool
	// IgnorePatterns lists glob expressions for documents the checker skips.
	IgnorePatterns []string
}

// HeadersConfig defines the corpus header policy.
type HeadersConfig struct {
	// RequiredFields lists frontmatter keys every document must populate.
	RequiredFields []string
	// AllowedStatuses restricts the status field; empty allows any value.
	AllowedStatuses []string
	// AllowedCategories restricts the category field; empty allows any value.
	AllowedCategories []string
	// DefaultVersion seeds inserted headers.
	DefaultVersion string
}

// VersionsConfig locates the version manifest.
type VersionsConfig struct {
	ManifestPath string
}

// IndexConfig identifies the index document and its generated region.
type IndexConfig struct {
	// File is the index document, relative to the corpus root.
	File string
	// Marker names the comment markers delimiting the generated region.
	Marker string
}

// StorageConfig selects the registry backend.
type StorageConfig struct {
	// Driver is one of "sqlite", "postgres", or "memory".
	Driver string
	DSN    string
}

// CommandsConfig captures optional command-layer behaviour. When Enabled is
// false the CLI tools call services directly instead of routing through the
// command handlers.
type CommandsConfig struct {
	Enabled bool
	// Timeout bounds each command run; zero disables the deadline.
	Timeout time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Links    bool
	Headers  bool
	Versions bool
	Index    bool
	Registry bool
	Watch    bool
	Logger   bool
}

// DefaultConfig returns opinionated defaults matching the upstream corpus layout.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Corpus: CorpusConfig{
			RootDir:          "docs",
			Pattern:          "*.md",
			Recursive:        true,
			CategoryPatterns: map[string]string{},
			DefaultCategory:  "general",
		},
		Links: LinksConfig{
			Workers:      0,
			CheckAnchors: false,
		},
		Headers: HeadersConfig{
			RequiredFields: []string{"title", "category", "version", "last_updated"},
			DefaultVersion: "1.0.0",
		},
		Versions: VersionsConfig{
			ManifestPath: "versions.yaml",
		},
		Index: IndexConfig{
			File:   "README.md",
			Marker: "standards:index",
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		Commands: CommandsConfig{
			Enabled: true,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Links:   true,
			Headers: true,
			Index:   true,
			Logger:  true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Corpus.RootDir) == "" {
		return ErrCorpusRootRequired
	}
	if cfg.Links.Workers < 0 {
		return ErrLinksWorkersInvalid
	}
	for _, field := range cfg.Headers.RequiredFields {
		if strings.TrimSpace(field) == "" {
			return ErrHeadersRequiredFieldEmpty
		}
	}
	if cfg.Features.Versions && strings.TrimSpace(cfg.Versions.ManifestPath) == "" {
		return ErrVersionsManifestRequired
	}
	if cfg.Features.Index && strings.TrimSpace(cfg.Index.File) == "" {
		return ErrIndexFileRequired
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}

	driver := normalizeDriver(cfg.Storage.Driver)
	if !cfg.Features.Registry {
		if driver != "" && driver != "memory" {
			return ErrRegistryFeatureRequired
		}
	} else {
		switch driver {
		case "", "memory":
		case "sqlite", "postgres":
			if strings.TrimSpace(cfg.Storage.DSN) == "" {
				return ErrStorageDSNRequired
			}
		default:
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
		}
	}

	if cfg.Features.Logger {
		provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeDriver(driver string) string {
	return strings.ToLower(strings.TrimSpace(driver))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
