package text

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/bitfx/internal/cache"
)

// FontSource represents a loaded font file.
// One FontSource can create multiple Face instances at different sizes.
//
// FontSource is safe for concurrent use.
type FontSource struct {
	// ot rasterizes glyphs; it is read-only after parsing.
	ot *opentype.Font

	// mu guards metrics; a go-text Face is not safe for concurrent use.
	mu      sync.Mutex
	metrics *font.Face

	name string
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	ot, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	metrics, err := font.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font tables: %w", err)
	}

	return &FontSource{
		ot:      ot,
		metrics: metrics,
		name:    fontName(ot),
	}, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

// DefaultFontSource returns the embedded Go Mono font.
func DefaultFontSource() (*FontSource, error) {
	return NewFontSource(gomono.TTF)
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	return s.name
}

// HasGlyph reports whether the font maps r to a glyph.
func (s *FontSource) HasGlyph(r rune) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.metrics.NominalGlyph(r)
	return ok
}

// Face creates a Face whose ascender-to-descender span is pixelHeight
// pixels. The face requires glyphs for both '0' and '1'.
func (s *FontSource) Face(pixelHeight float64) (*Face, error) {
	if pixelHeight <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSize, pixelHeight)
	}

	s.mu.Lock()
	ext, ok := s.metrics.FontHExtents()
	upem := float64(s.metrics.Upem())
	s.mu.Unlock()

	span := float64(ext.Ascender) - float64(ext.Descender)
	if !ok || span <= 0 || upem <= 0 {
		return nil, ErrNoFontExtents
	}

	for _, r := range []rune{'0', '1'} {
		if !s.HasGlyph(r) {
			return nil, missingGlyph(r)
		}
	}

	factor := pixelHeight / span
	ppem := factor * upem

	otFace, err := opentype.NewFace(s.ot, &opentype.FaceOptions{
		Size: ppem,
		DPI:  72,
	})
	if err != nil {
		return nil, fmt.Errorf("text: failed to create face: %w", err)
	}

	ascent := float64(ext.Ascender) * factor
	return &Face{
		source:      s,
		face:        otFace,
		masks:       cache.New[rune, *glyphMask](maskCacheSize),
		baseline:    fixed.Int26_6(math.Round(ascent * 64)),
		pixelHeight: pixelHeight,
		factor:      factor,
		ppem:        ppem,
		metrics: Metrics{
			Ascent:  ascent,
			Descent: float64(ext.Descender) * factor,
			LineGap: float64(ext.LineGap) * factor,
		},
	}, nil
}

// inkRight returns the right edge of r's bounding box in font units.
func (s *FontSource) inkRight(r rune) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gid, ok := s.metrics.NominalGlyph(r)
	if !ok {
		return 0, missingGlyph(r)
	}
	ext, ok := s.metrics.GlyphExtents(gid)
	if !ok {
		return 0, fmt.Errorf("text: no extents for glyph %q", r)
	}
	return float64(ext.XBearing) + float64(ext.Width), nil
}

// fontName extracts the font family name, falling back to the full name.
func fontName(f *opentype.Font) string {
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}
