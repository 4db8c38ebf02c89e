package search

import "github.com/gogotex/docstore/internal/document"

// Matches reports whether any criterion accepts d. A nil request matches
// nothing.
func Matches(d *document.Document, r *document.SearchRequest) bool {
	if d == nil || r == nil {
		return false
	}
	for _, c := range Criteria {
		if c(d, r) {
			return true
		}
	}
	return false
}

// Active reports whether r sets at least one criterion.
func Active(r *document.SearchRequest) bool {
	if r == nil {
		return false
	}
	return len(r.TitlePrefixes) > 0 || len(r.ContainsContents) > 0 || len(r.AuthorIDs) > 0 ||
		r.CreatedFrom != nil || r.CreatedTo != nil
}

// Filter returns the documents of docs matching r, in input order. The
// result is never nil.
func Filter(docs []*document.Document, r *document.SearchRequest) []*document.Document {
	out := make([]*document.Document, 0)
	if !Active(r) {
		return out
	}
	for _, d := range docs {
		if Matches(d, r) {
			out = append(out, d)
		}
	}
	return out
}
