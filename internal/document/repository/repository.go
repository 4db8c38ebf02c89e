package repository

import (
	"context"
	"errors"
	"time"

	"github.com/gogotex/docstore/internal/document"
)

var ErrNilDocument = errors.New("document is nil")

// Repository is the storage contract shared by every backend.
//
// Save assigns a generated id when the document has none, rejects ids that
// are already stored and stamps the creation time. The document is only
// modified when the save succeeds.
//
// FindByID returns (nil, nil) for an unknown id.
type Repository interface {
	Save(ctx context.Context, d *document.Document) (*document.Document, error)
	FindByID(ctx context.Context, id string) (*document.Document, error)
	Search(ctx context.Context, r *document.SearchRequest) ([]*document.Document, error)
	// Snapshot lists every stored document.
	Snapshot(ctx context.Context) ([]*document.Document, error)
}

type settings struct {
	newID document.IDGenerator
	now   func() time.Time
}

// Option customises a repository.
type Option func(*settings)

// WithIDGenerator replaces the id generator used for documents saved without an id.
func WithIDGenerator(g document.IDGenerator) Option {
	return func(s *settings) { s.newID = g }
}

// WithClock replaces the clock used to stamp creation times.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

func newSettings(opts []Option) settings {
	s := settings{newID: document.NewID, now: time.Now}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// resolveID returns the id a document will be stored under.
func (s settings) resolveID(d *document.Document) string {
	if document.IsBlank(d.ID) {
		return s.newID()
	}
	return d.ID
}
