package registry

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/bayat/go-standards/internal/identity"
	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

// Service reconciles corpus documents against the persisted registry.
type Service struct {
	repo   DocumentRepository
	logger interfaces.Logger
	now    func() time.Time
}

// NewService builds a registry service over the given repository.
func NewService(repo DocumentRepository, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

var _ interfaces.RegistryService = (*Service)(nil)

// Sync upserts a registry record per document and optionally removes records
// whose document disappeared from the corpus.
func (s *Service) Sync(ctx context.Context, docs []*interfaces.Document, opts interfaces.RegistrySyncOptions) (*interfaces.RegistrySyncResult, error) {
	result := &interfaces.RegistrySyncResult{}
	seen := map[string]bool{}
	now := s.now()

	for _, doc := range docs {
		if doc == nil || doc.Path == "" {
			continue
		}
		seen[doc.Path] = true

		existing, err := s.repo.GetByPath(ctx, doc.Path)
		var notFound *NotFoundError
		switch {
		case err == nil:
			if existing.Checksum == checksumHex(doc.Checksum) {
				result.Skipped++
				continue
			}
			updated := recordFromDocument(doc, now)
			updated.ID = existing.ID
			updated.BrokenLinks = existing.BrokenLinks
			updated.ValidatedAt = nil
			updated.CreatedAt = existing.CreatedAt
			if !opts.DryRun {
				if _, err := s.repo.Update(ctx, updated); err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("update %s: %w", doc.Path, err))
					continue
				}
			}
			result.Updated++
		case errors.As(err, &notFound):
			if !opts.DryRun {
				if _, err := s.repo.Create(ctx, recordFromDocument(doc, now)); err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("create %s: %w", doc.Path, err))
					continue
				}
			}
			result.Created++
		default:
			result.Errors = append(result.Errors, fmt.Errorf("lookup %s: %w", doc.Path, err))
		}
	}

	if opts.DeleteOrphaned {
		records, err := s.repo.List(ctx)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("list records: %w", err))
		} else {
			for _, record := range records {
				if seen[record.Path] {
					continue
				}
				if !opts.DryRun {
					if err := s.repo.Delete(ctx, record.ID); err != nil {
						result.Errors = append(result.Errors, fmt.Errorf("delete %s: %w", record.Path, err))
						continue
					}
				}
				result.Deleted++
			}
		}
	}

	if !opts.DryRun {
		if err := s.repo.InvalidateCache(ctx); err != nil {
			s.logger.Warn("registry.sync.cache_invalidation_failed", "error", err)
		}
	}

	s.logger.Info("registry.sync.completed",
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
		"dry_run", opts.DryRun,
	)
	return result, nil
}

// RecordCheck stores the outcome of a link check run for one document.
func (s *Service) RecordCheck(ctx context.Context, docPath string, brokenLinks int, at time.Time) error {
	record, err := s.repo.GetByPath(ctx, docPath)
	if err != nil {
		return err
	}

	record.BrokenLinks = brokenLinks
	checked := at.UTC()
	record.ValidatedAt = &checked

	if _, err := s.repo.Update(ctx, record); err != nil {
		return fmt.Errorf("record check %s: %w", docPath, err)
	}
	return nil
}

// GetByPath returns the registry record for a corpus-relative path.
func (s *Service) GetByPath(ctx context.Context, docPath string) (*interfaces.DocumentRecord, error) {
	record, err := s.repo.GetByPath(ctx, docPath)
	if err != nil {
		return nil, err
	}
	return toRecordView(record), nil
}

// List returns all registry records ordered by path.
func (s *Service) List(ctx context.Context) ([]*interfaces.DocumentRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*interfaces.DocumentRecord, 0, len(records))
	for _, record := range records {
		out = append(out, toRecordView(record))
	}
	return out, nil
}

func recordFromDocument(doc *interfaces.Document, now time.Time) *Document {
	return &Document{
		ID:       identity.DocumentID(doc.Path),
		Path:     doc.Path,
		Slug:     documentSlug(doc),
		Title:    doc.FrontMatter.Title,
		Category: doc.Category,
		Version:  doc.FrontMatter.Version,
		Checksum: checksumHex(doc.Checksum),
		SyncedAt: now,
	}
}

func checksumHex(sum []byte) string {
	return hex.EncodeToString(sum)
}

func documentSlug(doc *interfaces.Document) string {
	if doc.FrontMatter.Slug != "" {
		return doc.FrontMatter.Slug
	}

	source := doc.FrontMatter.Title
	if source == "" {
		source = strings.TrimSuffix(path.Base(doc.Path), path.Ext(doc.Path))
	}
	normalized, err := slug.Normalize(source)
	if err != nil || normalized == "" {
		return strings.ToLower(strings.ReplaceAll(source, " ", "-"))
	}
	return normalized
}

func toRecordView(doc *Document) *interfaces.DocumentRecord {
	return &interfaces.DocumentRecord{
		ID:          doc.ID,
		Path:        doc.Path,
		Slug:        doc.Slug,
		Title:       doc.Title,
		Category:    doc.Category,
		Version:     doc.Version,
		Checksum:    doc.Checksum,
		BrokenLinks: doc.BrokenLinks,
		ValidatedAt: doc.ValidatedAt,
		SyncedAt:    doc.SyncedAt,
	}
}
