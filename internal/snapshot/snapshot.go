// Package snapshot exports the full contents of a document store to object
// storage as a single JSON file.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gogotex/docstore/internal/document"
	"github.com/gogotex/docstore/pkg/logger"
	"github.com/gogotex/docstore/pkg/metrics"
)

const (
	KeyPrefix   = "snapshots/"
	contentType = "application/json"
)

var log = logger.Named("snapshot")

// Source lists every stored document.
type Source interface {
	Snapshot(ctx context.Context) ([]*document.Document, error)
}

// ObjectStore is the subset of storage.MinIOStorage used here.
type ObjectStore interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, error)
}

// Snapshot is the serialised form of an export.
type Snapshot struct {
	TakenAt   time.Time            `json:"takenAt"`
	Count     int                  `json:"count"`
	Documents []*document.Document `json:"documents"`
}

type Exporter struct {
	src   Source
	store ObjectStore
	now   func() time.Time
}

func NewExporter(src Source, store ObjectStore) *Exporter {
	return &Exporter{src: src, store: store, now: time.Now}
}

// Export uploads the current store contents and returns the object key.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	docs, err := e.src.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("list documents: %w", err)
	}
	snap := Snapshot{TakenAt: e.now().UTC(), Count: len(docs), Documents: docs}
	b, err := json.Marshal(&snap)
	if err != nil {
		return "", err
	}
	key := KeyPrefix + snap.TakenAt.Format(time.RFC3339Nano) + ".json"
	if err := e.store.UploadFile(ctx, key, bytes.NewReader(b), int64(len(b)), contentType); err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	metrics.SnapshotsExported.Inc()
	log.Infof("exported %d documents to %s", snap.Count, key)
	return key, nil
}

// Read downloads and decodes the snapshot stored under key.
func Read(ctx context.Context, store ObjectStore, key string) (*Snapshot, error) {
	rc, err := store.DownloadFile(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("download snapshot: %w", err)
	}
	defer rc.Close()
	var snap Snapshot
	if err := json.NewDecoder(rc).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
