package validation

import (
	"context"
	"fmt"
	"sort"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/internal/markdown"
	"github.com/bayat/go-standards/pkg/interfaces"
)

// DocumentIssue ties a validation issue to the document it was found in.
type DocumentIssue struct {
	DocumentPath string
	Location     string
	Message      string
}

// Report summarises a corpus validation run.
type Report struct {
	DocumentsChecked int
	Issues           []DocumentIssue
}

// Failed reports whether any document violated the schema.
func (r *Report) Failed() bool {
	return len(r.Issues) > 0
}

// Config controls corpus schema validation.
type Config struct {
	// Schema overrides DefaultFrontMatterSchema when set.
	Schema map[string]any
}

// Service validates every document's frontmatter against the corpus schema.
// The schema is compiled once at construction and reused for every document.
type Service struct {
	loader   *markdown.Loader
	compiled *jsonschema.Schema
	logger   interfaces.Logger
}

// NewService builds a validation service over the loader's corpus.
func NewService(loader *markdown.Loader, cfg Config, logger interfaces.Logger) (*Service, error) {
	if logger == nil {
		logger = logging.NoOp()
	}
	schema := cfg.Schema
	if schema == nil {
		schema = DefaultFrontMatterSchema()
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Service{
		loader:   loader,
		compiled: compiled,
		logger:   logger,
	}, nil
}

// ValidateDirectory loads the corpus and validates each document's
// frontmatter payload, collecting issues keyed by document path.
func (s *Service) ValidateDirectory(ctx context.Context) (*Report, error) {
	results, err := s.loader.LoadDirectory(ctx, ".", markdown.LoadParams{})
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	report := &Report{DocumentsChecked: len(results)}
	for _, res := range results {
		doc := res.Document
		if doc.FrontMatter.IsEmpty() {
			continue
		}
		if err := validateCompiled(s.compiled, doc.FrontMatter.Raw); err != nil {
			for _, issue := range Issues(err) {
				report.Issues = append(report.Issues, DocumentIssue{
					DocumentPath: doc.Path,
					Location:     issue.Location,
					Message:      issue.Message,
				})
			}
		}
	}

	sort.Slice(report.Issues, func(i, j int) bool {
		if report.Issues[i].DocumentPath != report.Issues[j].DocumentPath {
			return report.Issues[i].DocumentPath < report.Issues[j].DocumentPath
		}
		return report.Issues[i].Location < report.Issues[j].Location
	})

	s.logger.Info("validation.completed",
		"documents", report.DocumentsChecked,
		"issues", len(report.Issues),
	)
	return report, nil
}
