package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/gogotex/docstore/internal/document"
	"github.com/gogotex/docstore/internal/document/search"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores documents in a MongoDB collection. Uniqueness of the
// "id" field is enforced by a unique index, which keeps concurrent saves
// from different processes consistent.
type MongoRepo struct {
	col *mongo.Collection
	settings
}

func NewMongoRepo(ctx context.Context, col *mongo.Collection, opts ...Option) (*MongoRepo, error) {
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(ctx, idxModel); err != nil {
		return nil, fmt.Errorf("create id index: %w", err)
	}
	return &MongoRepo{col: col, settings: newSettings(opts)}, nil
}

func (m *MongoRepo) Save(ctx context.Context, d *document.Document) (*document.Document, error) {
	if d == nil {
		return nil, ErrNilDocument
	}
	rec := *d
	rec.ID = m.resolveID(d)
	// Mongo keeps millisecond precision; store what we return.
	rec.Created = m.now().UTC().Truncate(time.Millisecond)
	if _, err := m.col.InsertOne(ctx, &rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &document.DuplicateIDError{ID: rec.ID}
		}
		return nil, fmt.Errorf("insert document: %w", err)
	}
	d.ID, d.Created = rec.ID, rec.Created
	return d, nil
}

func (m *MongoRepo) FindByID(ctx context.Context, id string) (*document.Document, error) {
	if err := document.ValidateID(id); err != nil {
		return nil, err
	}
	var d document.Document
	if err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) Search(ctx context.Context, r *document.SearchRequest) ([]*document.Document, error) {
	filter := SearchFilter(r)
	if filter == nil {
		return []*document.Document{}, nil
	}
	return m.find(ctx, filter)
}

func (m *MongoRepo) Snapshot(ctx context.Context) ([]*document.Document, error) {
	return m.find(ctx, bson.M{})
}

func (m *MongoRepo) find(ctx context.Context, filter bson.M) ([]*document.Document, error) {
	cur, err := m.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*document.Document{}
	for cur.Next(ctx) {
		var d document.Document
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

// SearchFilter translates r into a Mongo $or filter with one clause per
// requested value, mirroring the in-process criteria. It returns nil when r
// sets no criterion.
func SearchFilter(r *document.SearchRequest) bson.M {
	if !search.Active(r) {
		return nil
	}
	var or bson.A
	for _, p := range r.TitlePrefixes {
		or = append(or, bson.M{"title": bson.M{"$regex": "^" + regexp.QuoteMeta(p)}})
	}
	for _, s := range r.ContainsContents {
		or = append(or, bson.M{"content": bson.M{"$regex": regexp.QuoteMeta(s)}})
	}
	if len(r.AuthorIDs) > 0 {
		or = append(or, bson.M{"author.id": bson.M{"$in": r.AuthorIDs}})
	}
	if r.CreatedFrom != nil {
		or = append(or, bson.M{"created": bson.M{"$gte": *r.CreatedFrom}})
	}
	if r.CreatedTo != nil {
		or = append(or, bson.M{"created": bson.M{"$lte": *r.CreatedTo}})
	}
	return bson.M{"$or": or}
}
