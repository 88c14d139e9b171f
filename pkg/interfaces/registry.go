package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DocumentRecord is the registry's view of a corpus document.
type DocumentRecord struct {
	ID          uuid.UUID  `json:"id"`
	Path        string     `json:"path"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Version     string     `json:"version"`
	Checksum    string     `json:"checksum"`
	BrokenLinks int        `json:"broken_links"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
	SyncedAt    time.Time  `json:"synced_at"`
}

// RegistrySyncOptions controls corpus reconciliation.
type RegistrySyncOptions struct {
	// DeleteOrphaned removes records whose document no longer exists.
	DeleteOrphaned bool
	DryRun         bool
}

// RegistrySyncResult summarises a reconciliation run.
type RegistrySyncResult struct {
	Created int     `json:"created"`
	Updated int     `json:"updated"`
	Deleted int     `json:"deleted"`
	Skipped int     `json:"skipped"`
	Errors  []error `json:"-"`
}

// RegistryService persists per-document state so repeated validation runs can
// skip unchanged documents and hosts can audit corpus history.
type RegistryService interface {
	Sync(ctx context.Context, docs []*Document, opts RegistrySyncOptions) (*RegistrySyncResult, error)
	RecordCheck(ctx context.Context, path string, brokenLinks int, at time.Time) error
	GetByPath(ctx context.Context, path string) (*DocumentRecord, error)
	List(ctx context.Context) ([]*DocumentRecord, error)
}
