package values

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrInvalidSlug is returned when a block slug cannot name a block folder.
var ErrInvalidSlug = errors.New("invalid block slug")

// BlockSlug identifies a block type within a theme.
// It keeps the slug as supplied and the sanitized folder name derived from it.
type BlockSlug struct {
	raw  string
	base string
}

// NewBlockSlug creates a BlockSlug with validation.
// Only the final path segment of the slug is ever used as a folder name, so
// "../../etc" names the folder "etc" inside the theme's blocks directory.
// The slug itself is kept verbatim, surrounding whitespace included, since
// the thumbnail key hashes it.
func NewBlockSlug(slug string) (BlockSlug, error) {
	if strings.TrimSpace(slug) == "" {
		return BlockSlug{}, fmt.Errorf("%w: slug cannot be empty", ErrInvalidSlug)
	}

	base := sanitizeSlug(slug)
	switch base {
	case "", ".", "..", "/":
		return BlockSlug{}, fmt.Errorf("%w: %q has no usable folder name", ErrInvalidSlug, slug)
	}

	return BlockSlug{raw: slug, base: base}, nil
}

// MustNewBlockSlug creates a BlockSlug or panics (for tests/constants)
func MustNewBlockSlug(slug string) BlockSlug {
	s, err := NewBlockSlug(slug)
	if err != nil {
		panic(err)
	}
	return s
}

// sanitizeSlug strips every directory component. Backslashes count as
// separators too so Windows-style traversal is stripped on any platform.
func sanitizeSlug(slug string) string {
	slug = strings.ReplaceAll(slug, `\`, "/")
	slug = strings.ReplaceAll(slug, "\x00", "")
	return path.Base(slug)
}

// String returns the slug as supplied.
func (s BlockSlug) String() string {
	return s.raw
}

// FolderName returns the sanitized name safe to join onto a directory.
func (s BlockSlug) FolderName() string {
	return s.base
}

// IsEmpty returns true if this is the zero value
func (s BlockSlug) IsEmpty() bool {
	return s.raw == ""
}

// Equals checks if two slugs are equal
func (s BlockSlug) Equals(other BlockSlug) bool {
	return s.raw == other.raw
}

// MarshalJSON implements json.Marshaler
func (s BlockSlug) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", s.raw)), nil
}
