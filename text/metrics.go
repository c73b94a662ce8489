package text

import (
	"math"

	"github.com/gogpu/bitfx"
)

// Metrics holds font metrics at a specific size.
// These metrics are derived from the font's hhea table and scaled to the
// face's pixel height.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the signed distance from the baseline to the bottom of the
	// font. It is negative for fonts with descenders.
	Descent float64

	// LineGap is the recommended gap between lines.
	LineGap float64
}

// LineHeight returns the total line height (ascent - descent + line gap).
func (m Metrics) LineHeight() float64 {
	return m.Ascent - m.Descent + m.LineGap
}

// CellMetrics derives grid cell geometry from face metrics and the width of
// the digit glyph. The signed descent is added, not subtracted, so the cell
// is shorter than the line box and rows overlap slightly.
func CellMetrics(m Metrics, charWidth int) bitfx.FontMetrics {
	return bitfx.FontMetrics{
		CharWidth:      charWidth,
		CharHeight:     int(math.Round(m.Ascent + m.Descent)),
		BaselineOffset: int(math.Round(m.Descent)),
	}
}

// CellMetrics returns the grid cell geometry of the face, measured with the
// '0' glyph.
func (f *Face) CellMetrics() (bitfx.FontMetrics, error) {
	w, err := f.CharWidth('0')
	if err != nil {
		return bitfx.FontMetrics{}, err
	}
	return CellMetrics(f.metrics, w), nil
}
