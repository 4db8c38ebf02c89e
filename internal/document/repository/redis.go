package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gogotex/docstore/internal/document"
	"github.com/gogotex/docstore/internal/document/search"
	"github.com/redis/go-redis/v9"
)

const scanCount = 100

// RedisRepo stores documents as JSON under key "<prefix><id>". Inserts use
// SETNX so the duplicate check and the write are a single operation.
type RedisRepo struct {
	client *redis.Client
	prefix string
	settings
}

// NewRedisRepo creates a Redis-backed repository. Prefix may be empty.
func NewRedisRepo(client *redis.Client, prefix string, opts ...Option) *RedisRepo {
	if prefix == "" {
		prefix = "doc:"
	}
	return &RedisRepo{client: client, prefix: prefix, settings: newSettings(opts)}
}

func (r *RedisRepo) key(id string) string {
	return r.prefix + id
}

func (r *RedisRepo) Save(ctx context.Context, d *document.Document) (*document.Document, error) {
	if d == nil {
		return nil, ErrNilDocument
	}
	rec := *d
	rec.ID = r.resolveID(d)
	rec.Created = r.now()
	b, err := json.Marshal(&rec)
	if err != nil {
		return nil, err
	}
	ok, err := r.client.SetNX(ctx, r.key(rec.ID), b, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return nil, &document.DuplicateIDError{ID: rec.ID}
	}
	d.ID, d.Created = rec.ID, rec.Created
	return d, nil
}

func (r *RedisRepo) FindByID(ctx context.Context, id string) (*document.Document, error) {
	if err := document.ValidateID(id); err != nil {
		return nil, err
	}
	b, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var d document.Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *RedisRepo) Search(ctx context.Context, req *document.SearchRequest) ([]*document.Document, error) {
	if !search.Active(req) {
		return []*document.Document{}, nil
	}
	all, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(all, req), nil
}

func (r *RedisRepo) Snapshot(ctx context.Context) ([]*document.Document, error) {
	seen := map[string]struct{}{}
	out := []*document.Document{}
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", scanCount).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			vals, err := r.client.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, fmt.Errorf("redis mget: %w", err)
			}
			for _, v := range vals {
				s, ok := v.(string)
				if !ok {
					// deleted between SCAN and MGET
					continue
				}
				var d document.Document
				if err := json.Unmarshal([]byte(s), &d); err != nil {
					return nil, err
				}
				if _, dup := seen[d.ID]; dup {
					continue
				}
				seen[d.ID] = struct{}{}
				out = append(out, &d)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return out, nil
}
