package document

import "time"

// Author identifies who wrote a document. It has no lifecycle of its own.
type Author struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Document is the stored record. Title and Content are pointers because an
// absent value and an empty one match search criteria differently.
type Document struct {
	ID      string    `json:"id" bson:"id"`
	Title   *string   `json:"title,omitempty" bson:"title,omitempty"`
	Content *string   `json:"content,omitempty" bson:"content,omitempty"`
	Author  *Author   `json:"author,omitempty" bson:"author,omitempty"`
	Created time.Time `json:"created" bson:"created"`
}

// SearchRequest holds independent, optional criteria. A document matches
// when any single criterion does; an empty request matches nothing.
type SearchRequest struct {
	TitlePrefixes    []string   `json:"titlePrefixes,omitempty"`
	ContainsContents []string   `json:"containsContents,omitempty"`
	AuthorIDs        []string   `json:"authorIds,omitempty"`
	CreatedFrom      *time.Time `json:"createdFrom,omitempty"`
	CreatedTo        *time.Time `json:"createdTo,omitempty"`
}

// String returns a pointer to s, for populating optional fields.
func String(s string) *string { return &s }

// Time returns a pointer to t.
func Time(t time.Time) *time.Time { return &t }

// Clone returns a deep copy of d, or nil when d is nil.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	if d.Title != nil {
		c.Title = String(*d.Title)
	}
	if d.Content != nil {
		c.Content = String(*d.Content)
	}
	if d.Author != nil {
		a := *d.Author
		c.Author = &a
	}
	return &c
}
