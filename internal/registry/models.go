package registry

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Document is the persisted registry row for a corpus document.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID          uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Path        string     `bun:"path,notnull,unique" json:"path"`
	Slug        string     `bun:"slug,notnull" json:"slug"`
	Title       string     `bun:"title" json:"title,omitempty"`
	Category    string     `bun:"category" json:"category,omitempty"`
	Version     string     `bun:"version" json:"version,omitempty"`
	Checksum    string     `bun:"checksum,notnull" json:"checksum"`
	BrokenLinks int        `bun:"broken_links,notnull,default:0" json:"broken_links"`
	ValidatedAt *time.Time `bun:"validated_at,nullzero" json:"validated_at,omitempty"`
	SyncedAt    time.Time  `bun:"synced_at,nullzero,default:current_timestamp" json:"synced_at"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// NotFoundError signals a missing registry record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found: " + e.Key
}
