package service

import (
	"context"
	"errors"

	"github.com/gogotex/docstore/internal/document"
	"github.com/gogotex/docstore/internal/document/repository"
	"github.com/gogotex/docstore/pkg/logger"
	"github.com/gogotex/docstore/pkg/metrics"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var log = logger.Named("document")

// Service defines the document operations used by the handler layer.
type Service interface {
	// Save stores d, generating an id when d has none.
	Save(ctx context.Context, d *document.Document) (*document.Document, error)
	// FindByID returns (nil, nil) when no document has the id.
	FindByID(ctx context.Context, id string) (*document.Document, error)
	Search(ctx context.Context, r *document.SearchRequest) ([]*document.Document, error)
	Snapshot(ctx context.Context) ([]*document.Document, error)
}

// New returns a Service over repo.
func New(repo repository.Repository) Service {
	return &service{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService(opts ...repository.Option) Service {
	return New(repository.NewMemoryRepo(opts...))
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller is responsible for creating the collection (and client) and passing it in.
func NewMongoService(ctx context.Context, col *mongo.Collection) (Service, error) {
	repo, err := repository.NewMongoRepo(ctx, col)
	if err != nil {
		return nil, err
	}
	return New(repo), nil
}

// NewRedisService returns a Service backed by Redis keys under prefix.
func NewRedisService(client *redis.Client, prefix string) Service {
	return New(repository.NewRedisRepo(client, prefix))
}

type service struct {
	repo repository.Repository
}

func (s *service) Save(ctx context.Context, d *document.Document) (*document.Document, error) {
	saved, err := s.repo.Save(ctx, d)
	if err != nil {
		switch {
		case errors.Is(err, document.ErrDuplicateID):
			metrics.SaveRejected.WithLabelValues(metrics.ReasonDuplicate).Inc()
			log.Warnf("save rejected: %v", err)
		case errors.Is(err, repository.ErrNilDocument):
			metrics.SaveRejected.WithLabelValues(metrics.ReasonInvalid).Inc()
		default:
			metrics.SaveRejected.WithLabelValues(metrics.ReasonBackend).Inc()
			log.Errorf("save failed: %v", err)
		}
		return nil, err
	}
	metrics.DocumentsSaved.Inc()
	log.Debugf("saved document %s", saved.ID)
	return saved, nil
}

func (s *service) FindByID(ctx context.Context, id string) (*document.Document, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, document.ErrInvalidID) {
		log.Errorf("find %q failed: %v", id, err)
	}
	return d, err
}

func (s *service) Search(ctx context.Context, r *document.SearchRequest) ([]*document.Document, error) {
	metrics.Searches.Inc()
	docs, err := s.repo.Search(ctx, r)
	if err != nil {
		log.Errorf("search failed: %v", err)
		return nil, err
	}
	metrics.SearchMatches.Observe(float64(len(docs)))
	log.Debugf("search matched %d documents", len(docs))
	return docs, nil
}

func (s *service) Snapshot(ctx context.Context) ([]*document.Document, error) {
	return s.repo.Snapshot(ctx)
}
