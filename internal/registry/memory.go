package registry

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryDocumentRepository stores registry records in-memory. It backs the
// memory storage driver and keeps tests off the database.
type MemoryDocumentRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Document
}

// NewMemoryDocumentRepository constructs an in-memory document repository.
func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{
		byID: map[uuid.UUID]*Document{},
	}
}

var _ DocumentRepository = (*MemoryDocumentRepository)(nil)

func (r *MemoryDocumentRepository) Create(_ context.Context, doc *Document) (*Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *doc
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = now
	}
	r.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *MemoryDocumentRepository) Update(_ context.Context, doc *Document) (*Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[doc.ID]; !ok {
		return nil, &NotFoundError{Resource: "document", Key: doc.ID.String()}
	}
	stored := *doc
	stored.UpdatedAt = time.Now().UTC()
	r.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *MemoryDocumentRepository) GetByID(_ context.Context, id uuid.UUID) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "document", Key: id.String()}
	}
	out := *doc
	return &out, nil
}

func (r *MemoryDocumentRepository) GetByPath(_ context.Context, path string) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.byID {
		if doc.Path == path {
			out := *doc
			return &out, nil
		}
	}
	return nil, &NotFoundError{Resource: "document", Key: path}
}

func (r *MemoryDocumentRepository) List(context.Context) ([]*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Document, 0, len(r.byID))
	for _, doc := range r.byID {
		copied := *doc
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (r *MemoryDocumentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return &NotFoundError{Resource: "document", Key: id.String()}
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryDocumentRepository) InvalidateCache(context.Context) error {
	return nil
}
