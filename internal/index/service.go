package index

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/internal/markdown"
	"github.com/bayat/go-standards/pkg/interfaces"
	goerrors "github.com/goliatone/go-errors"
)

// Config controls where the generated index lives and which markers
// delimit the generated region.
type Config struct {
	RootDir string
	File    string
	Marker  string
}

// Service maintains the corpus index document.
type Service struct {
	fsys   fs.FS
	loader *markdown.Loader
	cfg    Config
	logger interfaces.Logger

	writeFile func(path string, data []byte) error
}

// NewService builds an index service over the loader's corpus.
func NewService(fsys fs.FS, loader *markdown.Loader, cfg Config, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	if cfg.File == "" {
		cfg.File = "README.md"
	}
	if cfg.Marker == "" {
		cfg.Marker = "standards:index"
	}

	svc := &Service{
		fsys:   fsys,
		loader: loader,
		cfg:    cfg,
		logger: logger,
	}
	svc.writeFile = func(path string, data []byte) error {
		return os.WriteFile(filepath.Join(cfg.RootDir, filepath.FromSlash(path)), data, 0o644)
	}
	return svc
}

var _ interfaces.IndexService = (*Service)(nil)

// Build regenerates the marker-delimited region of the index file from the
// current corpus contents.
func (s *Service) Build(ctx context.Context, opts interfaces.IndexBuildOptions) (*interfaces.IndexBuildResult, error) {
	sections, entries, err := s.sections(ctx)
	if err != nil {
		return nil, err
	}

	source, err := fs.ReadFile(s.fsys, s.cfg.File)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryNotFound, "index file not readable").
			WithTextCode("INDEX_FILE_MISSING").
			WithMetadata(map[string]any{"file": s.cfg.File})
	}

	updated, err := s.replaceRegion(string(source), Render(sections))
	if err != nil {
		return nil, err
	}

	result := &interfaces.IndexBuildResult{
		Changed: updated != string(source),
		Entries: entries,
	}

	if result.Changed && !opts.DryRun {
		if err := s.writeFile(s.cfg.File, []byte(updated)); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to write index file").
				WithTextCode("INDEX_WRITE_FAILED").
				WithMetadata(map[string]any{"file": s.cfg.File})
		}
	}

	s.logger.Info("index.build.completed",
		"file", s.cfg.File,
		"entries", result.Entries,
		"changed", result.Changed,
		"dry_run", opts.DryRun,
	)
	return result, nil
}

// Verify reports corpus documents missing from the index region.
func (s *Service) Verify(ctx context.Context) (*interfaces.IndexVerifyResult, error) {
	sections, entries, err := s.sections(ctx)
	if err != nil {
		return nil, err
	}

	source, err := fs.ReadFile(s.fsys, s.cfg.File)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryNotFound, "index file not readable").
			WithTextCode("INDEX_FILE_MISSING").
			WithMetadata(map[string]any{"file": s.cfg.File})
	}

	region, err := s.region(string(source))
	if err != nil {
		return nil, err
	}

	result := &interfaces.IndexVerifyResult{Entries: entries}
	for _, section := range sections {
		for _, entry := range section.Entries {
			if !strings.Contains(region, "("+entry.Path+")") {
				result.Missing = append(result.Missing, entry.Path)
			}
		}
	}
	sort.Strings(result.Missing)

	s.logger.Info("index.verify.completed",
		"file", s.cfg.File,
		"entries", result.Entries,
		"missing", len(result.Missing),
	)
	return result, nil
}

func (s *Service) sections(ctx context.Context) ([]Section, int, error) {
	results, err := s.loader.LoadDirectory(ctx, ".", markdown.LoadParams{})
	if err != nil {
		return nil, 0, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, res := range results {
		docs = append(docs, res.Document)
	}

	sections := BuildSections(docs, s.cfg.File)
	entries := 0
	for _, section := range sections {
		entries += len(section.Entries)
	}
	return sections, entries, nil
}

func (s *Service) markers() (string, string) {
	return fmt.Sprintf("<!-- %s -->", s.cfg.Marker), fmt.Sprintf("<!-- /%s -->", s.cfg.Marker)
}

func (s *Service) region(source string) (string, error) {
	open, close := s.markers()
	pattern := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(open) + `(.*?)` + regexp.QuoteMeta(close))
	match := pattern.FindStringSubmatch(source)
	if match == nil {
		return "", goerrors.New("index markers not found", goerrors.CategoryValidation).
			WithTextCode("INDEX_MARKERS_MISSING").
			WithMetadata(map[string]any{"file": s.cfg.File, "marker": s.cfg.Marker})
	}
	return match[1], nil
}

func (s *Service) replaceRegion(source, content string) (string, error) {
	if _, err := s.region(source); err != nil {
		return "", err
	}

	open, close := s.markers()
	pattern := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(open) + `.*?` + regexp.QuoteMeta(close))
	replacement := open + "\n\n" + strings.TrimRight(content, "\n") + "\n\n" + close
	if strings.TrimSpace(content) == "" {
		replacement = open + "\n" + close
	}
	return pattern.ReplaceAllLiteralString(source, replacement), nil
}
