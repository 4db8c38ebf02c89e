package repository

import (
	"context"
	"sync"

	"github.com/gogotex/docstore/internal/document"
	"github.com/gogotex/docstore/internal/document/search"
)

// MemoryRepo keeps documents in a map keyed by id. A single lock covers the
// duplicate check and the insert so concurrent saves cannot both claim an id.
// The map holds private copies; callers only ever see clones.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*document.Document
	settings
}

func NewMemoryRepo(opts ...Option) *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*document.Document), settings: newSettings(opts)}
}

func (m *MemoryRepo) Save(_ context.Context, d *document.Document) (*document.Document, error) {
	if d == nil {
		return nil, ErrNilDocument
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.resolveID(d)
	if _, ok := m.store[id]; ok {
		return nil, &document.DuplicateIDError{ID: id}
	}
	rec := d.Clone()
	rec.ID = id
	rec.Created = m.now()
	m.store[id] = rec
	d.ID, d.Created = rec.ID, rec.Created
	return d, nil
}

func (m *MemoryRepo) FindByID(_ context.Context, id string) (*document.Document, error) {
	if err := document.ValidateID(id); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store[id].Clone(), nil
}

func (m *MemoryRepo) Search(ctx context.Context, r *document.SearchRequest) ([]*document.Document, error) {
	if !search.Active(r) {
		return []*document.Document{}, nil
	}
	all, err := m.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(all, r), nil
}

func (m *MemoryRepo) Snapshot(_ context.Context) ([]*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*document.Document, 0, len(m.store))
	for _, d := range m.store {
		out = append(out, d.Clone())
	}
	return out, nil
}

// Len returns the number of stored documents.
func (m *MemoryRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}
