package versions

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

	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/internal/markdown"
	"github.com/bayat/go-standards/pkg/interfaces"
)

// markerPattern matches `<!-- version:NAME -->value<!-- /version -->` regions.
// The marker body may span lines.
var markerPattern = regexp.MustCompile(`(?s)<!--\s*version:([A-Za-z0-9._\-]+)\s*-->(.*?)<!--\s*/version\s*-->`)

// lastUpdatedPattern targets the frontmatter stamp rewritten on change.
var lastUpdatedPattern = regexp.MustCompile(`(?m)^last_updated:.*$`)

// versionLinePattern targets the frontmatter version field rewritten by bumps.
var versionLinePattern = regexp.MustCompile(`(?m)^version:.*$`)

// Config wires the version service to the corpus and its manifest.
type Config struct {
	// RootDir is the corpus root on the host filesystem.
	RootDir      string
	ManifestPath string
}

// Service rewrites embedded version markers from the central manifest so
// convention documents never advertise stale tool versions.
type Service struct {
	cfg    Config
	loader *markdown.Loader
	logger interfaces.Logger
	// clock is swappable for tests.
	clock func() time.Time
}

var _ interfaces.VersionService = (*Service)(nil)

// NewService constructs a version service over the corpus root.
func NewService(cfg Config, loader *markdown.Loader, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		cfg:    cfg,
		loader: loader,
		logger: logger,
		clock:  time.Now,
	}
}

// UpdateDirectory rewrites version markers in every document under dir from
// the manifest, optionally stamping last_updated on changed documents.
func (s *Service) UpdateDirectory(ctx context.Context, dir string, opts interfaces.VersionUpdateOptions) (*interfaces.VersionUpdateResult, error) {
	manifest, err := LoadManifest(s.cfg.ManifestPath)
	if err != nil {
		return nil, err
	}

	results, err := s.loader.LoadDirectory(ctx, dir, markdown.LoadParams{})
	if err != nil {
		return nil, fmt.Errorf("versions update %s: %w", dir, err)
	}

	out := &interfaces.VersionUpdateResult{}
	unknown := map[string]struct{}{}

	for _, result := range results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		updated, replaced, missing := s.applyMarkers(result.Source, manifest)
		for _, name := range missing {
			unknown[result.Document.Path+":"+name] = struct{}{}
		}
		if replaced == 0 || bytes.Equal(updated, result.Source) {
			out.Skipped++
			continue
		}
		out.MarkersReplaced += replaced

		if opts.Stamp {
			updated = stampLastUpdated(updated, s.clock())
		}

		if !opts.DryRun {
			target := filepath.Join(s.cfg.RootDir, filepath.FromSlash(result.Document.Path))
			if err := os.WriteFile(target, updated, 0o644); err != nil {
				out.Errors = append(out.Errors, fmt.Errorf("versions write %s: %w", result.Document.Path, err))
				continue
			}
		}
		out.Updated = append(out.Updated, result.Document.Path)
		logging.WithDocumentContext(s.logger, result.Document.Path, result.Document.Category, "update").
			Info("versions.update.document",
				"replaced", replaced,
				"dry_run", opts.DryRun,
			)
	}

	for key := range unknown {
		out.UnknownMarkers = append(out.UnknownMarkers, key)
	}
	sort.Strings(out.UnknownMarkers)
	return out, nil
}

// BumpDocument rewrites the frontmatter version field of a single document
// and stamps last_updated with the current date.
func (s *Service) BumpDocument(ctx context.Context, path, version string) error {
	if strings.TrimSpace(version) == "" {
		return fmt.Errorf("versions bump %s: version is required", path)
	}

	result, err := s.loader.LoadFile(ctx, path, markdown.LoadParams{})
	if err != nil {
		return fmt.Errorf("versions bump %s: %w", path, err)
	}

	start, end, ok := headerBounds(result.Source)
	if !ok {
		return fmt.Errorf("versions bump %s: document has no frontmatter header", path)
	}

	header := result.Source[start:end]
	if !versionLinePattern.Match(header) {
		return fmt.Errorf("versions bump %s: frontmatter has no version field", path)
	}
	rewritten := versionLinePattern.ReplaceAll(header, []byte("version: "+version))

	updated := make([]byte, 0, len(result.Source)-len(header)+len(rewritten))
	updated = append(updated, result.Source[:start]...)
	updated = append(updated, rewritten...)
	updated = append(updated, result.Source[end:]...)
	updated = stampLastUpdated(updated, s.clock())

	target := filepath.Join(s.cfg.RootDir, filepath.FromSlash(result.Document.Path))
	if err := os.WriteFile(target, updated, 0o644); err != nil {
		return fmt.Errorf("versions bump write %s: %w", result.Document.Path, err)
	}

	logging.WithDocumentContext(s.logger, result.Document.Path, result.Document.Category, "bump").
		Info("versions.bump.document", "version", version)
	return nil
}

// applyMarkers returns the rewritten source, the number of marker bodies
// replaced, and the marker names missing from the manifest.
func (s *Service) applyMarkers(source []byte, manifest *Manifest) ([]byte, int, []string) {
	replaced := 0
	var missing []string

	updated := markerPattern.ReplaceAllFunc(source, func(match []byte) []byte {
		groups := markerPattern.FindSubmatch(match)
		name := string(groups[1])

		version, ok := manifest.Lookup(name)
		if !ok {
			missing = append(missing, name)
			return match
		}

		replaced++
		return []byte(fmt.Sprintf("<!-- version:%s -->%s<!-- /version -->", name, version))
	})

	return updated, replaced, missing
}

// stampLastUpdated rewrites the frontmatter last_updated field within the
// header block only, leaving matching lines in the body untouched.
func stampLastUpdated(source []byte, now time.Time) []byte {
	start, end, ok := headerBounds(source)
	if !ok {
		return source
	}

	header := source[start:end]
	stamp := []byte("last_updated: " + now.Format("2006-01-02"))
	if !lastUpdatedPattern.Match(header) {
		return source
	}

	rewritten := lastUpdatedPattern.ReplaceAll(header, stamp)
	out := make([]byte, 0, len(source)-len(header)+len(rewritten))
	out = append(out, source[:start]...)
	out = append(out, rewritten...)
	out = append(out, source[end:]...)
	return out
}

// headerBounds locates the frontmatter block delimited by `---` lines.
func headerBounds(source []byte) (int, int, bool) {
	delimiter := []byte("---\n")
	if !bytes.HasPrefix(source, delimiter) {
		return 0, 0, false
	}
	closing := bytes.Index(source[len(delimiter):], []byte("\n---"))
	if closing < 0 {
		return 0, 0, false
	}
	return len(delimiter), len(delimiter) + closing + 1, true
}
