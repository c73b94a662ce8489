package bitfx

import "fmt"

// FontMetrics describes the cell geometry of a monospace glyph grid.
// It is computed once per run from a font and a target glyph height.
type FontMetrics struct {
	// CharWidth is the cell width in pixels.
	CharWidth int

	// CharHeight is the cell height in pixels, round(ascent + descent)
	// with a signed (negative) descent.
	CharHeight int

	// BaselineOffset is round(descent), the vertical start of the cursor.
	// It is zero or negative for fonts with descenders.
	BaselineOffset int
}

// Validate reports ErrDegenerateMetrics when a cell has no area.
func (m FontMetrics) Validate() error {
	if m.CharWidth <= 0 || m.CharHeight <= 0 {
		return fmt.Errorf("%w: char size %dx%d", ErrDegenerateMetrics, m.CharWidth, m.CharHeight)
	}
	return nil
}

// GridSize returns the number of whole cells that fit a width x height
// frame. Partial cells at the right and bottom edges are dropped.
func GridSize(width, height int, m FontMetrics) (cols, rows int) {
	if m.CharWidth <= 0 || m.CharHeight <= 0 || width <= 0 || height <= 0 {
		return 0, 0
	}
	return width / m.CharWidth, height / m.CharHeight
}
