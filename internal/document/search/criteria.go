// Package search evaluates search requests against documents. Each criterion
// tests one dimension; a document matches if any criterion does.
package search

import (
	"slices"
	"strings"

	"github.com/gogotex/docstore/internal/document"
)

// Criterion reports whether d satisfies one dimension of r. It returns false
// when the dimension is not set in r.
type Criterion func(d *document.Document, r *document.SearchRequest) bool

// Criteria is the fixed evaluation order used by Matches.
var Criteria = []Criterion{
	TitlePrefix,
	ContentContains,
	AuthorID,
	CreatedFrom,
	CreatedTo,
}

// TitlePrefix matches when the title starts with any requested prefix.
func TitlePrefix(d *document.Document, r *document.SearchRequest) bool {
	if len(r.TitlePrefixes) == 0 || d.Title == nil {
		return false
	}
	for _, p := range r.TitlePrefixes {
		if strings.HasPrefix(*d.Title, p) {
			return true
		}
	}
	return false
}

// ContentContains matches when the content contains any requested substring.
func ContentContains(d *document.Document, r *document.SearchRequest) bool {
	if len(r.ContainsContents) == 0 || d.Content == nil {
		return false
	}
	for _, s := range r.ContainsContents {
		if strings.Contains(*d.Content, s) {
			return true
		}
	}
	return false
}

// AuthorID matches when the author's id is listed. Documents without an
// author never match.
func AuthorID(d *document.Document, r *document.SearchRequest) bool {
	if len(r.AuthorIDs) == 0 || d.Author == nil {
		return false
	}
	return slices.Contains(r.AuthorIDs, d.Author.ID)
}

// CreatedFrom matches documents created at or after the bound.
// Stored documents always carry a creation time; a zero one is a bug.
func CreatedFrom(d *document.Document, r *document.SearchRequest) bool {
	if r.CreatedFrom == nil {
		return false
	}
	mustCreated(d)
	return !d.Created.Before(*r.CreatedFrom)
}

// CreatedTo matches documents created at or before the bound.
func CreatedTo(d *document.Document, r *document.SearchRequest) bool {
	if r.CreatedTo == nil {
		return false
	}
	mustCreated(d)
	return !d.Created.After(*r.CreatedTo)
}

func mustCreated(d *document.Document) {
	if d.Created.IsZero() {
		panic("search: document " + d.ID + " has no creation time")
	}
}
