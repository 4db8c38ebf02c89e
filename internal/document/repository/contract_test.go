package repository

import (
	"context"
	"testing"
	"time"

	"github.com/gogotex/docstore/internal/document"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a clock that yields the given times in order and then
// repeats the last one.
func fixedClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

type repoFactory func(t *testing.T, opts ...Option) Repository

// runContract exercises the behaviour every backend must share.
func runContract(t *testing.T, newRepo repoFactory) {
	ctx := context.Background()

	t.Run("GeneratesID", func(t *testing.T) {
		r := newRepo(t)
		for _, id := range []string{"", "   "} {
			d := &document.Document{ID: id, Title: document.String("t")}
			got, err := r.Save(ctx, d)
			require.NoError(t, err)
			require.Same(t, d, got)
			require.Len(t, got.ID, document.IDLength)
			require.False(t, got.Created.IsZero())

			stored, err := r.FindByID(ctx, got.ID)
			require.NoError(t, err)
			require.NotNil(t, stored)
			require.Equal(t, "t", *stored.Title)
		}
	})

	t.Run("DuplicateID", func(t *testing.T) {
		r := newRepo(t)
		first, err := r.Save(ctx, &document.Document{ID: "same", Title: document.String("first")})
		require.NoError(t, err)
		created := first.Created

		second := &document.Document{ID: "same", Title: document.String("second")}
		_, err = r.Save(ctx, second)
		require.ErrorIs(t, err, document.ErrDuplicateID)
		var dup *document.DuplicateIDError
		require.ErrorAs(t, err, &dup)
		require.Equal(t, "same", dup.ID)
		require.True(t, second.Created.IsZero(), "failed save must not stamp the document")

		got, err := r.FindByID(ctx, "same")
		require.NoError(t, err)
		require.Equal(t, "first", *got.Title)
		require.True(t, created.Equal(got.Created))
	})

	t.Run("GeneratedIDCollision", func(t *testing.T) {
		r := newRepo(t, WithIDGenerator(func() string { return "fixed00000" }))
		_, err := r.Save(ctx, &document.Document{})
		require.NoError(t, err)
		d := &document.Document{}
		_, err = r.Save(ctx, d)
		require.ErrorIs(t, err, document.ErrDuplicateID)
		require.Empty(t, d.ID, "failed save must not assign an id")
	})

	t.Run("CreatedOverwritten", func(t *testing.T) {
		stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		r := newRepo(t, WithClock(fixedClock(stamp)))
		d := &document.Document{ID: "c1", Created: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)}
		got, err := r.Save(ctx, d)
		require.NoError(t, err)
		require.True(t, stamp.Equal(got.Created))
	})

	t.Run("FindByID", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.FindByID(ctx, "")
		require.ErrorIs(t, err, document.ErrInvalidID)
		_, err = r.FindByID(ctx, " ")
		require.ErrorIs(t, err, document.ErrInvalidID)

		got, err := r.FindByID(ctx, "missing123")
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		r := newRepo(t)
		in := &document.Document{
			ID:      "rt1",
			Title:   document.String("Title"),
			Content: document.String("Content"),
			Author:  &document.Author{ID: "a1", Name: "Ann"},
		}
		saved, err := r.Save(ctx, in)
		require.NoError(t, err)
		got, err := r.FindByID(ctx, "rt1")
		require.NoError(t, err)
		require.Equal(t, saved.ID, got.ID)
		require.Equal(t, saved.Title, got.Title)
		require.Equal(t, saved.Content, got.Content)
		require.Equal(t, saved.Author, got.Author)
		require.True(t, saved.Created.Equal(got.Created))
	})

	t.Run("StoredDocumentsAreIsolated", func(t *testing.T) {
		stamp := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
		r := newRepo(t, WithClock(fixedClock(stamp)))
		in := &document.Document{
			ID:     "iso1",
			Title:  document.String("kept"),
			Author: &document.Author{ID: "a1", Name: "Ann"},
		}
		_, err := r.Save(ctx, in)
		require.NoError(t, err)

		*in.Title = "changed"
		in.Author.ID = "a2"
		in.ID = ""
		in.Created = time.Time{}

		got, err := r.FindByID(ctx, "iso1")
		require.NoError(t, err)
		require.NotNil(t, got)
		*got.Title = "changed again"
		got.Created = time.Time{}
		all, err := r.Snapshot(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		all[0].ID = "other"

		again, err := r.FindByID(ctx, "iso1")
		require.NoError(t, err)
		require.NotNil(t, again)
		require.Equal(t, "iso1", again.ID)
		require.Equal(t, "kept", *again.Title)
		require.Equal(t, "a1", again.Author.ID)
		require.True(t, stamp.Equal(again.Created))

		found, err := r.Search(ctx, &document.SearchRequest{CreatedFrom: document.Time(stamp)})
		require.NoError(t, err)
		require.Len(t, found, 1)
		require.Equal(t, "iso1", found[0].ID)
	})

	t.Run("Search", func(t *testing.T) {
		t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		t2 := t1.Add(time.Hour)
		t3 := t2.Add(time.Hour)
		r := newRepo(t, WithClock(fixedClock(t1, t2, t3)))

		_, err := r.Save(ctx, &document.Document{ID: "hello", Title: document.String("Hello World")})
		require.NoError(t, err)
		_, err = r.Save(ctx, &document.Document{ID: "anon", Content: document.String("no author here")})
		require.NoError(t, err)
		_, err = r.Save(ctx, &document.Document{ID: "ann", Author: &document.Author{ID: "a1", Name: "Ann"}})
		require.NoError(t, err)

		ids := func(req *document.SearchRequest) []string {
			docs, err := r.Search(ctx, req)
			require.NoError(t, err)
			out := []string{}
			for _, d := range docs {
				out = append(out, d.ID)
			}
			return out
		}

		require.Equal(t, []string{"hello"}, ids(&document.SearchRequest{TitlePrefixes: []string{"Hello"}}))
		require.Empty(t, ids(&document.SearchRequest{TitlePrefixes: []string{"Bye"}}))
		require.Equal(t, []string{"anon"}, ids(&document.SearchRequest{ContainsContents: []string{"author"}}))
		require.Equal(t, []string{"ann"}, ids(&document.SearchRequest{AuthorIDs: []string{"a1", "x"}}))
		require.Empty(t, ids(&document.SearchRequest{AuthorIDs: []string{"x"}}))
		require.Equal(t, []string{"ann"}, ids(&document.SearchRequest{
			CreatedFrom:   document.Time(t3),
			AuthorIDs:     []string{"nobody"},
			TitlePrefixes: []string{"zzz"},
		}))
		// from and to combine with OR, so together they cover every document
		require.ElementsMatch(t, []string{"hello", "anon", "ann"}, ids(&document.SearchRequest{
			CreatedFrom: document.Time(t2),
			CreatedTo:   document.Time(t2),
		}))
		require.ElementsMatch(t, []string{"anon", "ann"}, ids(&document.SearchRequest{CreatedFrom: document.Time(t2)}))
		require.ElementsMatch(t, []string{"hello", "anon"}, ids(&document.SearchRequest{CreatedTo: document.Time(t2)}))
		require.ElementsMatch(t, []string{"hello", "ann"}, ids(&document.SearchRequest{
			TitlePrefixes: []string{"Hello"},
			AuthorIDs:     []string{"a1"},
		}))

		empty, err := r.Search(ctx, &document.SearchRequest{})
		require.NoError(t, err)
		require.NotNil(t, empty)
		require.Empty(t, empty)
		empty, err = r.Search(ctx, nil)
		require.NoError(t, err)
		require.Empty(t, empty)
	})

	t.Run("Snapshot", func(t *testing.T) {
		r := newRepo(t)
		for _, id := range []string{"s1", "s2", "s3"} {
			_, err := r.Save(ctx, &document.Document{ID: id})
			require.NoError(t, err)
		}
		all, err := r.Snapshot(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
	})

	t.Run("NilDocument", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Save(ctx, nil)
		require.ErrorIs(t, err, ErrNilDocument)
	})
}
