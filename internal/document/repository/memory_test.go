package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gogotex/docstore/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoContract(t *testing.T) {
	runContract(t, func(t *testing.T, opts ...Option) Repository {
		return NewMemoryRepo(opts...)
	})
}

func TestMemoryRepoConcurrentSameID(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	var ok atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Save(ctx, &document.Document{ID: "shared", Title: document.String(fmt.Sprint(i))})
			if err == nil {
				ok.Add(1)
			} else {
				assert.ErrorIs(t, err, document.ErrDuplicateID)
			}
		}(i)
	}
	wg.Wait()
	require.Equal(t, int32(1), ok.Load())
	require.Equal(t, 1, r.Len())
}

func TestMemoryRepoConcurrentSaveAndSearch(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	req := &document.SearchRequest{TitlePrefixes: []string{"doc"}}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := r.Save(ctx, &document.Document{Title: document.String("doc")})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := r.Search(ctx, req)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := r.Search(ctx, req)
	require.NoError(t, err)
	require.Len(t, got, 20)
}

func TestMemoryRepoResaveAfterClearingID(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	d := &document.Document{ID: "first00000"}
	_, err := r.Save(ctx, d)
	require.NoError(t, err)

	d.ID = ""
	_, err = r.Save(ctx, d)
	require.NoError(t, err)
	require.NotEqual(t, "first00000", d.ID)

	all, err := r.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, id := range []string{"first00000", d.ID} {
		got, err := r.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, id, got.ID)
	}
}
