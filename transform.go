package bitfx

import (
	"github.com/gogpu/bitfx/internal/filter"
	"github.com/gogpu/bitfx/internal/parallel"
)

// Effect constants. They are fixed; changing them changes every output.
const (
	// DarkenFactor scales every channel before blurring.
	DarkenFactor = 0.7

	// BlurSigma is the Gaussian standard deviation in source pixels.
	BlurSigma = 8.0
)

// darkenLUT maps every 8-bit intensity to round(c*DarkenFactor), halves
// rounded up. Integer arithmetic keeps 45*0.7 at exactly 31.5.
var darkenLUT = func() (lut [256]uint8) {
	for c := range lut {
		lut[c] = uint8((7*c + 5) / 10)
	}
	return lut
}()

// DarkenValue returns clamp(round(c * DarkenFactor), 0, 255).
func DarkenValue(c uint8) uint8 {
	return darkenLUT[c]
}

// Transformer builds the darkened, blurred canvas for a frame.
type Transformer struct {
	pool *parallel.WorkerPool
	blur *filter.BlurFilter
}

// NewTransformer creates a transformer that darkens and blurs on pool.
// A nil pool does all work on the calling goroutine.
func NewTransformer(pool *parallel.WorkerPool) *Transformer {
	return &Transformer{
		pool: pool,
		blur: &filter.BlurFilter{SigmaX: BlurSigma, SigmaY: BlurSigma, Pool: pool},
	}
}

// Transform returns a new canvas: src darkened by DarkenFactor, then
// blurred with a Gaussian of BlurSigma. src is not modified. A zero-area
// frame yields an empty canvas.
func (t *Transformer) Transform(src *Frame) (*Frame, error) {
	if src == nil {
		return nil, ErrNilFrame
	}
	if src.Empty() {
		return NewFrame(0, 0), nil
	}

	darkened := NewFrame(src.width, src.height)
	Darken(darkened, src, t.pool)

	canvas := NewFrame(src.width, src.height)
	err := t.blur.Apply(
		filter.Buffer{Pix: darkened.pix, Width: darkened.width, Height: darkened.height, Channels: 3},
		filter.Buffer{Pix: canvas.pix, Width: canvas.width, Height: canvas.height, Channels: 3},
	)
	if err != nil {
		return nil, err
	}
	return canvas, nil
}

// Darken writes src scaled by DarkenFactor into dst. Both frames must have
// the same size. Each pixel depends only on its own input, so rows are
// split into bands and processed on pool with a single join.
func Darken(dst, src *Frame, pool *parallel.WorkerPool) {
	stride := src.Stride()
	apply := func(b parallel.Band) {
		in := src.pix[b.Y0*stride : b.Y1*stride]
		out := dst.pix[b.Y0*stride : b.Y1*stride]
		for i, c := range in {
			out[i] = darkenLUT[c]
		}
	}

	if pool == nil {
		apply(parallel.Band{Y0: 0, Y1: src.height})
		return
	}
	pool.ForEachBand(src.height, apply)
}
