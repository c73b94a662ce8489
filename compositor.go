package bitfx

import (
	"fmt"
	"image/color"
	"image/draw"
)

// GlyphDrawer stamps a single colored glyph onto an image.
//
// (x, y) is the top-left corner of the glyph's line box; the baseline lies
// at y plus the font ascent. Pixels covered by the glyph are blended toward
// c by coverage; uncovered pixels are left untouched. *text.Face implements
// GlyphDrawer.
type GlyphDrawer interface {
	DrawGlyph(dst draw.Image, r rune, x, y int, c color.Color) error
}

// Composite draws every cell of grid onto canvas and returns canvas.
//
// The cursor starts at (0, m.BaselineOffset), advances m.CharWidth per
// column, and moves down m.CharHeight per row, so cells tile the canvas
// in a monospace grid. Each glyph is inked with the source pixel at its
// cell center, (x + CharWidth/2, y + CharHeight/2). Ink comes from the
// original source frame, not the blurred canvas, which keeps the digits
// saturated against the softened background.
//
// Center coordinates outside source are clamped to its nearest edge
// pixel. An empty source leaves the canvas untouched.
func Composite(canvas *Frame, grid *GlyphGrid, source *Frame, m FontMetrics, drawer GlyphDrawer) (*Frame, error) {
	if canvas == nil || source == nil {
		return nil, ErrNilFrame
	}
	if drawer == nil {
		return nil, ErrNilDrawer
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if source.Empty() || grid == nil || grid.Len() == 0 {
		return canvas, nil
	}

	x, y := 0, m.BaselineOffset
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			ink := source.RGBAt(sampleCoord(source, x+m.CharWidth/2, y+m.CharHeight/2))

			r := grid.Rune(row, col)
			if err := drawer.DrawGlyph(canvas, r, x, y, ink); err != nil {
				return nil, fmt.Errorf("bitfx: draw %q at cell (%d,%d): %w", r, row, col, err)
			}
			x += m.CharWidth
		}
		x = 0
		y += m.CharHeight
	}
	return canvas, nil
}

// sampleCoord clamps (x, y) into the bounds of a non-empty frame.
func sampleCoord(f *Frame, x, y int) (int, int) {
	return clampInt(x, 0, f.width-1), clampInt(y, 0, f.height-1)
}

// clampInt clamps v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
