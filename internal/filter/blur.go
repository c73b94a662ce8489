package filter

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/bitfx/internal/parallel"
)

// MaxChannels is the largest channel count a Buffer may have.
const MaxChannels = 4

// ErrBufferMismatch is returned when source and destination differ in shape.
var ErrBufferMismatch = errors.New("filter: buffer shape mismatch")

// Buffer is an interleaved 8-bit pixel buffer.
type Buffer struct {
	Pix      []uint8
	Width    int
	Height   int
	Channels int
}

// validate checks that Pix holds exactly Width*Height*Channels bytes.
func (b Buffer) validate() error {
	if b.Channels < 1 || b.Channels > MaxChannels {
		return fmt.Errorf("filter: unsupported channel count %d", b.Channels)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("filter: negative size %dx%d", b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*b.Channels {
		return fmt.Errorf("filter: buffer is %d bytes, want %d", len(b.Pix), b.Width*b.Height*b.Channels)
	}
	return nil
}

// BlurFilter applies a separable Gaussian blur.
type BlurFilter struct {
	// SigmaX is the horizontal standard deviation in pixels.
	SigmaX float64

	// SigmaY is the vertical standard deviation in pixels.
	SigmaY float64

	// Pool runs both passes in row bands. Nil blurs on the calling
	// goroutine; the output is identical either way.
	Pool *parallel.WorkerPool
}

// NewBlurFilter creates a blur filter with equal sigma in both directions.
func NewBlurFilter(sigma float64) *BlurFilter {
	return &BlurFilter{
		SigmaX: sigma,
		SigmaY: sigma,
	}
}

// Apply blurs src into dst. Both buffers must have the same shape; they may
// not alias. Rows are convolved into a float scratch buffer, then columns of
// the scratch buffer into dst. Edges extend by clamping.
func (f *BlurFilter) Apply(src, dst Buffer) error {
	if err := src.validate(); err != nil {
		return err
	}
	if err := dst.validate(); err != nil {
		return err
	}
	if src.Width != dst.Width || src.Height != dst.Height || src.Channels != dst.Channels {
		return fmt.Errorf("%w: %dx%dx%d vs %dx%dx%d", ErrBufferMismatch,
			src.Width, src.Height, src.Channels, dst.Width, dst.Height, dst.Channels)
	}
	if src.Width == 0 || src.Height == 0 {
		return nil
	}

	temp := getTempBuffer(len(src.Pix))
	defer putTempBuffer(temp)

	kernelX := CachedGaussianKernel(f.SigmaX)
	kernelY := CachedGaussianKernel(f.SigmaY)

	f.rows(src.Height, func(b parallel.Band) { blurHorizontal(src, temp, kernelX, b) })
	f.rows(src.Height, func(b parallel.Band) { blurVertical(temp, dst, kernelY, b) })
	return nil
}

// rows runs fn over [0, height), split into bands when a pool is set.
func (f *BlurFilter) rows(height int, fn func(parallel.Band)) {
	if f.Pool == nil {
		fn(parallel.Band{Y0: 0, Y1: height})
		return
	}
	f.Pool.ForEachBand(height, fn)
}

// blurHorizontal convolves rows b.Y0..b.Y1 of src into temp.
func blurHorizontal(src Buffer, temp []float32, kernel []float32, b parallel.Band) {
	kernelSize := len(kernel)
	halfKernel := kernelSize / 2
	width := src.Width
	channels := src.Channels
	data := src.Pix

	var acc [MaxChannels]float32

	for y := b.Y0; y < b.Y1; y++ {
		rowStart := y * width * channels

		for x := 0; x < width; x++ {
			acc = [MaxChannels]float32{}

			for k := 0; k < kernelSize; k++ {
				kx := x + k - halfKernel

				if kx < 0 {
					kx = 0
				} else if kx >= width {
					kx = width - 1
				}

				srcIdx := rowStart + kx*channels
				weight := kernel[k]
				for c := 0; c < channels; c++ {
					acc[c] += float32(data[srcIdx+c]) * weight
				}
			}

			tempIdx := rowStart + x*channels
			for c := 0; c < channels; c++ {
				temp[tempIdx+c] = acc[c]
			}
		}
	}
}

// blurVertical writes rows b.Y0..b.Y1 of dst from the columns of temp. It
// reads temp rows outside the band, so the horizontal pass must be done.
func blurVertical(temp []float32, dst Buffer, kernel []float32, b parallel.Band) {
	kernelSize := len(kernel)
	halfKernel := kernelSize / 2
	width := dst.Width
	height := dst.Height
	channels := dst.Channels
	stride := width * channels

	var acc [MaxChannels]float32

	for y := b.Y0; y < b.Y1; y++ {
		for x := 0; x < width; x++ {
			acc = [MaxChannels]float32{}

			for k := 0; k < kernelSize; k++ {
				ky := y + k - halfKernel
				if ky < 0 {
					ky = 0
				} else if ky >= height {
					ky = height - 1
				}

				tempIdx := ky*stride + x*channels
				weight := kernel[k]
				for c := 0; c < channels; c++ {
					acc[c] += temp[tempIdx+c] * weight
				}
			}

			dstIdx := y*stride + x*channels
			for c := 0; c < channels; c++ {
				dst.Pix[dstIdx+c] = clampUint8(acc[c])
			}
		}
	}
}

// scratch holds a reusable float plane between frames.
type scratch struct {
	data []float32
}

// maxPooledScratch is a 4K RGB plane; larger scratch is not kept.
const maxPooledScratch = 3840 * 2160 * 3

var scratchPool = sync.Pool{
	New: func() any { return &scratch{} },
}

// getTempBuffer returns a scratch plane of exactly size elements. The
// horizontal pass overwrites every element, so it is not cleared.
func getTempBuffer(size int) []float32 {
	s := scratchPool.Get().(*scratch)
	if cap(s.data) < size {
		s.data = make([]float32, size)
	}
	return s.data[:size]
}

func putTempBuffer(buf []float32) {
	if cap(buf) <= maxPooledScratch {
		scratchPool.Put(&scratch{data: buf[:cap(buf)]})
	}
}

// clampUint8 clamps a float32 to [0, 255] and rounds to the nearest uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
