package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrMissingGlyph is returned when the font has no glyph for a required rune.
	ErrMissingGlyph = errors.New("text: missing glyph")

	// ErrNoFontExtents is returned when the font carries no usable
	// horizontal ascender and descender.
	ErrNoFontExtents = errors.New("text: font has no horizontal extents")

	// ErrInvalidSize is returned for a non-positive pixel height.
	ErrInvalidSize = errors.New("text: invalid pixel height")
)

// missingGlyph wraps ErrMissingGlyph with the offending rune.
func missingGlyph(r rune) error {
	return fmt.Errorf("%w for %q", ErrMissingGlyph, r)
}
