// Package bitfx applies a "digital overlay" effect to images and video frames.
//
// # Overview
//
// Each frame is darkened, blurred, and then covered with a monospace grid of
// pseudo-random binary glyphs ("0" and "1"). Every glyph is inked with the
// color of the original (undarkened, unblurred) pixel at the center of its
// cell, so the digits keep the hue of the picture underneath.
//
// The same Pipeline processes a single still image and every frame of a
// video, in decode order. The package performs no I/O: frames come from a
// FrameStream and go to a FrameSink, and glyphs are stamped by a GlyphDrawer
// (see the text subpackage).
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/bitfx"
//	    "github.com/gogpu/bitfx/text"
//	)
//
//	source, err := text.DefaultFontSource()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	face, err := source.Face(128)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	metrics, err := face.CellMetrics()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p, err := bitfx.NewPipeline(metrics, face, bitfx.NewRandomSource(bitfx.DefaultSeed))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	out, err := p.ProcessImage(bitfx.FrameFromImage(img))
//
// # Determinism
//
// The RandomSource is seeded once per run and threads through every frame.
// For a fixed seed and fixed grid dimensions the glyph sequence is identical
// across runs and across the image and video entry points. Cells are drawn
// in row-major order: left to right, then top to bottom.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Frame, RandomSource, GlyphGrid, Transformer, Pipeline
//   - Fonts: text (metrics via go-text/typesetting, raster via x/image)
//   - Internal: filter (separable Gaussian blur), parallel (row-band worker
//     pool), cache (LRU for kernels and glyph masks)
//   - I/O collaborators: internal/imageio, internal/video (ffmpeg)
//   - Command: cmd/bitfx
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down.
package bitfx

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
