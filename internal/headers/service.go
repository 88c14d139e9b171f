package headers

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/internal/markdown"
	"github.com/bayat/go-standards/pkg/interfaces"
)

// Config wires the header service to the corpus.
type Config struct {
	// RootDir is the corpus root on the host filesystem; Apply writes
	// through it.
	RootDir         string
	DefaultCategory string
	Policy          Policy
}

// Service enforces the corpus header policy.
type Service struct {
	cfg    Config
	policy Policy
	loader *markdown.Loader
	logger interfaces.Logger
}

var _ interfaces.HeaderService = (*Service)(nil)

// NewService constructs a header service over the corpus root.
func NewService(cfg Config, loader *markdown.Loader, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		cfg:    cfg,
		policy: cfg.Policy.normalized(),
		loader: loader,
		logger: logger,
	}
}

// InspectDirectory reports every header policy violation under dir.
func (s *Service) InspectDirectory(ctx context.Context, dir string) ([]interfaces.HeaderIssue, error) {
	results, err := s.loader.LoadDirectory(ctx, dir, markdown.LoadParams{})
	if err != nil {
		return nil, fmt.Errorf("headers inspect %s: %w", dir, err)
	}

	var issues []interfaces.HeaderIssue
	for _, result := range results {
		issues = append(issues, s.inspect(result)...)
	}
	return issues, nil
}

// ApplyDirectory inserts or completes headers for every document under dir
// that violates the policy. Existing frontmatter fields and the document body
// are preserved byte-for-byte.
func (s *Service) ApplyDirectory(ctx context.Context, dir string, opts interfaces.HeaderApplyOptions) (*interfaces.HeaderApplyResult, error) {
	results, err := s.loader.LoadDirectory(ctx, dir, markdown.LoadParams{})
	if err != nil {
		return nil, fmt.Errorf("headers apply %s: %w", dir, err)
	}

	out := &interfaces.HeaderApplyResult{}
	for _, result := range results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if len(s.inspect(result)) == 0 {
			out.Skipped++
			continue
		}

		// A header that failed to decode cannot be rewritten without losing
		// the author's values; leave it for manual repair.
		if problems := result.Document.FrontMatter.Problems; len(problems) > 0 {
			out.Errors = append(out.Errors, fmt.Errorf("headers apply %s: %s", result.Document.Path, problems[0]))
			continue
		}

		rewritten := s.rewrite(result)
		if !opts.DryRun {
			target := filepath.Join(s.cfg.RootDir, filepath.FromSlash(result.Document.Path))
			if err := os.WriteFile(target, rewritten, 0o644); err != nil {
				out.Errors = append(out.Errors, fmt.Errorf("headers write %s: %w", result.Document.Path, err))
				continue
			}
		}
		out.Updated = append(out.Updated, result.Document.Path)
		logging.WithDocumentContext(s.logger, result.Document.Path, result.Document.Category, "apply").
			Info("headers.apply.updated", "dry_run", opts.DryRun)
	}
	return out, nil
}

func (s *Service) inspect(result *markdown.DocumentResult) []interfaces.HeaderIssue {
	doc := result.Document
	var issues []interfaces.HeaderIssue

	if !hasHeaderBlock(result.Source) {
		issues = append(issues, interfaces.HeaderIssue{
			DocumentPath: doc.Path,
			Reason:       "missing frontmatter header",
		})
		return issues
	}

	for _, problem := range doc.FrontMatter.Problems {
		issues = append(issues, interfaces.HeaderIssue{
			DocumentPath: doc.Path,
			Field:        "frontmatter",
			Reason:       problem,
		})
	}

	for _, field := range s.policy.RequiredFields {
		if fieldEmpty(doc.FrontMatter.Raw[field]) {
			issues = append(issues, interfaces.HeaderIssue{
				DocumentPath: doc.Path,
				Field:        field,
				Reason:       "required field missing or empty",
			})
		}
	}

	if status := doc.FrontMatter.Status; status != "" && !s.policy.statusAllowed(status) {
		issues = append(issues, interfaces.HeaderIssue{
			DocumentPath: doc.Path,
			Field:        "status",
			Reason:       fmt.Sprintf("status %q is not allowed", status),
		})
	}
	if category := doc.FrontMatter.Category; category != "" && !s.policy.categoryAllowed(category) {
		issues = append(issues, interfaces.HeaderIssue{
			DocumentPath: doc.Path,
			Field:        "category",
			Reason:       fmt.Sprintf("category %q is not allowed", category),
		})
	}
	return issues
}

// rewrite rebuilds the document with a complete header. Known fields render
// in a stable order; unknown fields follow, sorted by key.
func (s *Service) rewrite(result *markdown.DocumentResult) []byte {
	doc := result.Document
	fields := make(map[string]any, len(doc.FrontMatter.Raw))
	for key, value := range doc.FrontMatter.Raw {
		fields[key] = value
	}

	if fieldEmpty(fields["title"]) {
		fields["title"] = deriveTitle(doc)
	}
	if fieldEmpty(fields["category"]) {
		category := doc.Category
		if category == "" {
			category = s.cfg.DefaultCategory
		}
		fields["category"] = category
	}
	if fieldEmpty(fields["version"]) {
		fields["version"] = s.policy.DefaultVersion
	}
	if fieldEmpty(fields["last_updated"]) {
		stamp := doc.LastModified
		if stamp.IsZero() {
			stamp = time.Now()
		}
		fields["last_updated"] = stamp.Format("2006-01-02")
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	writeHeaderFields(&buf, fields)
	buf.WriteString("---\n")

	body := doc.Body
	if len(body) > 0 && body[0] != '\n' {
		buf.WriteByte('\n')
	}
	buf.Write(body)
	return buf.Bytes()
}

// knownFieldOrder fixes the layout of policy-managed keys in rewritten headers.
var knownFieldOrder = []string{"title", "slug", "category", "status", "version", "last_updated", "tags", "author", "draft"}

func writeHeaderFields(buf *bytes.Buffer, fields map[string]any) {
	written := map[string]struct{}{}
	for _, key := range knownFieldOrder {
		if value, ok := fields[key]; ok && !fieldEmpty(value) {
			writeYAMLField(buf, key, value)
			written[key] = struct{}{}
		}
	}

	extras := make([]string, 0, len(fields))
	for key := range fields {
		if _, ok := written[key]; !ok {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		writeYAMLField(buf, key, fields[key])
	}
}

func writeYAMLField(buf *bytes.Buffer, key string, value any) {
	if stamp, ok := value.(time.Time); ok {
		value = stamp.Format("2006-01-02")
	}
	encoded, err := yaml.Marshal(map[string]any{key: value})
	if err != nil {
		return
	}
	buf.Write(encoded)
}

var atxHeadingPattern = regexp.MustCompile(`(?m)^#{1,6}\s+(.+?)\s*$`)

// deriveTitle prefers the first ATX heading, falling back to the file name.
func deriveTitle(doc *interfaces.Document) string {
	if match := atxHeadingPattern.FindSubmatch(doc.Body); match != nil {
		return strings.TrimSpace(string(match[1]))
	}

	base := strings.TrimSuffix(filepath.Base(doc.Path), filepath.Ext(doc.Path))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	words := strings.Fields(base)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func hasHeaderBlock(source []byte) bool {
	trimmed := bytes.TrimLeft(source, "\xef\xbb\xbf\n\r ")
	return bytes.HasPrefix(trimmed, []byte("---"))
}

func fieldEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case time.Time:
		return v.IsZero()
	default:
		return false
	}
}
