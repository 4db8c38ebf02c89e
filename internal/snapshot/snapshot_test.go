package snapshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gogotex/docstore/internal/document"
	"github.com/gogotex/docstore/internal/document/repository"
	"github.com/stretchr/testify/require"
)

type memObjects struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemObjects() *memObjects {
	return &memObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memObjects) UploadFile(_ context.Context, key string, r io.Reader, size int64, ct string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(b)) != size {
		return errors.New("size mismatch")
	}
	m.objects[key] = b
	m.types[key] = ct
	return nil
}

func (m *memObjects) DownloadFile(_ context.Context, key string) (io.ReadCloser, error) {
	b, ok := m.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func TestExportAndRead(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	for _, title := range []string{"one", "two"} {
		_, err := repo.Save(ctx, &document.Document{Title: document.String(title)})
		require.NoError(t, err)
	}

	objects := newMemObjects()
	e := NewExporter(repo, objects)
	taken := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	e.now = func() time.Time { return taken }

	key, err := e.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, "snapshots/2024-06-01T08:30:00Z.json", key)
	require.Equal(t, "application/json", objects.types[key])

	snap, err := Read(ctx, objects, key)
	require.NoError(t, err)
	require.Equal(t, 2, snap.Count)
	require.Len(t, snap.Documents, 2)
	require.True(t, taken.Equal(snap.TakenAt))
}

func TestExportEmptyStore(t *testing.T) {
	objects := newMemObjects()
	key, err := NewExporter(repository.NewMemoryRepo(), objects).Export(context.Background())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(key, KeyPrefix))
	require.Contains(t, string(objects.objects[key]), `"documents":[]`)
}

type failingUpload struct{ *memObjects }

func (failingUpload) UploadFile(context.Context, string, io.Reader, int64, string) error {
	return errors.New("bucket gone")
}

func TestExportUploadError(t *testing.T) {
	_, err := NewExporter(repository.NewMemoryRepo(), failingUpload{newMemObjects()}).Export(context.Background())
	require.ErrorContains(t, err, "bucket gone")
}

func TestReadMissing(t *testing.T) {
	_, err := Read(context.Background(), newMemObjects(), "snapshots/none.json")
	require.Error(t, err)
}
