// Package text provides font loading, cell metrics and glyph rasterization
// for the bitfx digit overlay.
//
// The package follows a separation of concerns:
//
//   - FontSource: heavyweight, shared font resource (parses TTF/OTF data)
//   - Face: a FontSource scaled to a pixel height, ready to draw glyphs
//
// Metrics come from github.com/go-text/typesetting (hhea extents and glyph
// bounding boxes in font units). Rasterization uses golang.org/x/image's
// opentype face with a coverage-blended font.Drawer.
//
// # Example usage
//
//	source, err := text.DefaultFontSource()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	face, err := source.Face(24)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer face.Close()
//
//	metrics, err := face.CellMetrics()
//	// metrics.CharWidth == 12, metrics.CharHeight == 15 for Go Mono
//
// # Pixel height
//
// A face's pixel height is the distance from the font's hhea descender to
// its ascender. The scale factor is pixelHeight / (ascender - descender) in
// font units, so the em size of the face is slightly smaller than the
// requested height for most fonts.
package text
