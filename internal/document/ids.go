package document

import "github.com/google/uuid"

// IDLength is the length of generated identifiers.
const IDLength = 10

// IDGenerator produces a new document identifier.
type IDGenerator func() string

// NewID returns the first IDLength characters of a random UUID.
func NewID() string {
	return uuid.NewString()[:IDLength]
}
