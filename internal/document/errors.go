package document

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrInvalidID is returned when a lookup is given a blank id.
	ErrInvalidID = errors.New("please specify document id")
	// ErrDuplicateID is returned when saving under an id that is already stored.
	ErrDuplicateID = errors.New("document id already exists")
)

// DuplicateIDError carries the offending id of a rejected save.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("id: %s is already exist", e.ID)
}

func (e *DuplicateIDError) Is(target error) bool { return target == ErrDuplicateID }

// IsBlank reports whether id is empty or whitespace only. No-break spaces
// and NEL are not whitespace here.
func IsBlank(id string) bool {
	return strings.TrimFunc(id, isWhitespace) == ""
}

func isWhitespace(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return false
	case '\t', '\n', '\v', '\f', '\r', '\x1c', '\x1d', '\x1e', '\x1f':
		return true
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}

// ValidateID returns ErrInvalidID for blank ids.
func ValidateID(id string) error {
	if IsBlank(id) {
		return ErrInvalidID
	}
	return nil
}
