package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bayat/go-standards/pkg/interfaces"
)

// Config controls how the corpus service discovers and parses files.
type Config struct {
	RootDir          string
	DefaultCategory  string
	Categories       []string
	CategoryPatterns map[string]string
	Pattern          string
	Recursive        bool
	Parser           interfaces.ParseOptions
}

// Service implements interfaces.CorpusService for filesystem-backed documents.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
}

var _ interfaces.CorpusService = (*Service)(nil)

// NewService constructs a corpus service using an underlying loader. When
// parser is nil, a goldmark parser with the provided default options is created.
func NewService(cfg Config, parser interfaces.MarkdownParser) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.RootDir)
	if err != nil {
		return nil, err
	}
	return NewServiceWithFS(filesystem, cfg, parser), nil
}

// NewServiceWithFS constructs a corpus service over an explicit filesystem,
// primarily so tests can supply fstest fixtures.
func NewServiceWithFS(filesystem fs.FS, cfg Config, parser interfaces.MarkdownParser) *Service {
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	loader := NewLoader(filesystem, LoaderConfig{
		RootDir:          cfg.RootDir,
		DefaultCategory:  cfg.DefaultCategory,
		Categories:       cfg.Categories,
		CategoryPatterns: cfg.CategoryPatterns,
		Pattern:          cfg.Pattern,
		Recursive:        cfg.Recursive,
	})

	return &Service{
		cfg:    cfg,
		parser: parser,
		loader: loader,
	}
}

// Loader exposes the underlying loader so sibling services (link checker,
// header policy) can reuse raw document sources.
func (s *Service) Loader() *Loader {
	return s.loader
}

// Load reads a single document relative to the configured corpus root.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}
	if err := s.renderDocument(ctx, result.Document, opts.Parser); err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory reads every document within the supplied directory.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		if err := s.renderDocument(ctx, result.Document, opts.Parser); err != nil {
			return nil, err
		}
		docs = append(docs, result.Document)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})
	return docs, nil
}

// Render parses markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

// RenderDocument converts the document's markdown body into HTML using the configured parser.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("corpus service: document is nil")
	}
	html, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		return nil, err
	}
	doc.BodyHTML = html
	return html, nil
}

func (s *Service) renderDocument(ctx context.Context, doc *interfaces.Document, overrides interfaces.ParseOptions) error {
	if doc == nil {
		return nil
	}
	html, err := s.Render(ctx, doc.Body, overrides)
	if err != nil {
		return fmt.Errorf("corpus render document %s: %w", doc.Path, err)
	}
	doc.BodyHTML = html
	return nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.RootDir) != "" {
		if rel, err := filepath.Rel(s.cfg.RootDir, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func toLoaderParams(opts interfaces.LoadOptions) LoadParams {
	return LoadParams{
		Pattern:           opts.Pattern,
		CategoryOverrides: opts.CategoryOverrides,
		Recursive:         opts.Recursive,
	}
}

func prepareFilesystem(rootDir string) (fs.FS, error) {
	if strings.TrimSpace(rootDir) == "" {
		rootDir = "."
	}
	if _, err := os.Stat(rootDir); err != nil {
		return nil, fmt.Errorf("corpus service: stat root dir %s: %w", rootDir, err)
	}
	return os.DirFS(rootDir), nil
}
