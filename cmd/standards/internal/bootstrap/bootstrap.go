// Package bootstrap assembles the standards module for the CLI entry points.
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	standards "github.com/bayat/go-standards"
	"github.com/bayat/go-standards/internal/di"
	"github.com/bayat/go-standards/pkg/interfaces"
)

// Options captures the flag surface shared by the standards CLI tools.
type Options struct {
	RootDir      string
	Pattern      string
	Recursive    bool
	ManifestPath string
	IndexFile    string
	IndexMarker  string
	Workers      int
	CheckAnchors bool
	// Watch enables the corpus watcher feature for tools that run it.
	Watch          bool
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the standards module plus the logger CLI tools report through.
// CommandsEnabled and CommandTimeout expose the command-layer settings so the
// tools can route through handlers or call services directly.
type Module struct {
	Module          *standards.Module
	Logger          interfaces.Logger
	CommandsEnabled bool
	CommandTimeout  time.Duration
}

// BuildModule constructs a standards module configured from CLI options.
func BuildModule(opts Options) (*Module, error) {
	cfg := standards.DefaultConfig()

	if trimmed := strings.TrimSpace(opts.RootDir); trimmed != "" {
		cfg.Corpus.RootDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Corpus.Pattern = trimmed
	}
	cfg.Corpus.Recursive = opts.Recursive

	if trimmed := strings.TrimSpace(opts.ManifestPath); trimmed != "" {
		cfg.Versions.ManifestPath = trimmed
		cfg.Features.Versions = true
	}
	if trimmed := strings.TrimSpace(opts.IndexFile); trimmed != "" {
		cfg.Index.File = trimmed
	}
	if trimmed := strings.TrimSpace(opts.IndexMarker); trimmed != "" {
		cfg.Index.Marker = trimmed
	}

	if opts.Workers > 0 {
		cfg.Links.Workers = opts.Workers
	}
	cfg.Links.CheckAnchors = opts.CheckAnchors
	cfg.Features.Watch = opts.Watch

	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := standards.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise standards module: %w", err)
	}

	logger := module.LoggerProvider().GetLogger("standards.cli")

	return &Module{
		Module:          module,
		Logger:          logger,
		CommandsEnabled: cfg.Commands.Enabled,
		CommandTimeout:  cfg.Commands.Timeout,
	}, nil
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
