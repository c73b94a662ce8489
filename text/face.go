package text

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/bitfx/internal/cache"
)

// maskCacheSize bounds the rasterized glyphs kept per Face.
const maskCacheSize = 64

// Face is a FontSource scaled to a pixel height.
//
// Face implements the bitfx glyph drawer. Each glyph is rasterized once and
// its coverage mask reused for every later draw. DrawGlyph is safe for
// concurrent use on distinct destinations.
type Face struct {
	source *FontSource
	face   font.Face
	masks  *cache.Cache[rune, *glyphMask]

	// baseline is the ascent in 26.6 pixels, the pen offset below a
	// line box top.
	baseline fixed.Int26_6

	pixelHeight float64
	factor      float64 // pixels per font unit
	ppem        float64
	metrics     Metrics
}

// Source returns the FontSource this face was created from.
func (f *Face) Source() *FontSource {
	return f.source
}

// PixelHeight returns the requested ascender-to-descender height.
func (f *Face) PixelHeight() float64 {
	return f.pixelHeight
}

// PPEM returns the em size of the face in pixels.
func (f *Face) PPEM() float64 {
	return f.ppem
}

// Metrics returns the font metrics at this face's size.
func (f *Face) Metrics() Metrics {
	return f.metrics
}

// CharWidth returns the width of r's ink box from the pen origin,
// rounded up to whole pixels.
func (f *Face) CharWidth(r rune) (int, error) {
	right, err := f.source.inkRight(r)
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(right * f.factor)), nil
}

// DrawGlyph stamps r onto dst with its line box top-left at (x, y). The
// baseline lies at y plus the ascent. Covered pixels are blended toward c
// by glyph coverage.
func (f *Face) DrawGlyph(dst draw.Image, r rune, x, y int, c color.Color) error {
	if !f.source.HasGlyph(r) {
		return missingGlyph(r)
	}

	gm, err := f.masks.GetOrCreate(r, func() (*glyphMask, error) {
		return f.rasterize(r), nil
	})
	if err != nil {
		return err
	}
	if gm.mask == nil {
		return nil
	}

	at := gm.offset.Add(image.Pt(x, y))
	dr := image.Rectangle{Min: at, Max: at.Add(gm.mask.Rect.Size())}
	draw.DrawMask(dst, dr, image.NewUniform(c), image.Point{}, gm.mask, image.Point{}, draw.Over)
	return nil
}

// glyphMask is a glyph's coverage relative to its line box top-left.
type glyphMask struct {
	mask   *image.Alpha
	offset image.Point
}

// rasterize renders r with the pen at the baseline of a line box whose
// top-left is the origin. The integer pen position never changes the
// coverage, so one mask serves every cell.
func (f *Face) rasterize(r rune) *glyphMask {
	dr, mask, maskp, _, ok := f.face.Glyph(fixed.Point26_6{Y: f.baseline}, r)
	if !ok || dr.Empty() {
		return &glyphMask{}
	}
	a := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	draw.Draw(a, a.Rect, mask, maskp, draw.Src)
	return &glyphMask{mask: a, offset: dr.Min}
}

// Close releases the rasterizer resources and cached masks of the face.
func (f *Face) Close() error {
	f.masks.Clear()
	return f.face.Close()
}
