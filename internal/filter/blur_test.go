package filter

import (
	"errors"
	"testing"

	"github.com/gogpu/bitfx/internal/parallel"
)

// newBuffer creates a buffer filled with a single value per channel.
func newBuffer(w, h, channels int, fill ...uint8) Buffer {
	b := Buffer{Pix: make([]uint8, w*h*channels), Width: w, Height: h, Channels: channels}
	for i := range b.Pix {
		if len(fill) > 0 {
			b.Pix[i] = fill[i%channels%len(fill)]
		}
	}
	return b
}

func TestNewBlurFilter(t *testing.T) {
	f := NewBlurFilter(8)

	if f.SigmaX != 8 || f.SigmaY != 8 {
		t.Errorf("sigma = (%v, %v), want (8, 8)", f.SigmaX, f.SigmaY)
	}
}

func TestBlurFilterApplyUniformUnchanged(t *testing.T) {
	src := newBuffer(20, 15, 3, 90, 40, 200)
	dst := newBuffer(20, 15, 3)

	if err := NewBlurFilter(8).Apply(src, dst); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	// A flat image stays flat under a normalized kernel with edge clamping.
	for i, v := range dst.Pix {
		want := src.Pix[i]
		if d := int(v) - int(want); d < -1 || d > 1 {
			t.Fatalf("Pix[%d] = %d, want %d±1", i, v, want)
		}
	}
}

func TestBlurFilterApplyZeroSigmaCopies(t *testing.T) {
	src := newBuffer(5, 4, 3)
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}
	dst := newBuffer(5, 4, 3)

	if err := NewBlurFilter(0).Apply(src, dst); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	for i := range src.Pix {
		if dst.Pix[i] != src.Pix[i] {
			t.Fatalf("Pix[%d] = %d, want %d", i, dst.Pix[i], src.Pix[i])
		}
	}
}

func TestBlurFilterApplySpreadsPoint(t *testing.T) {
	src := newBuffer(9, 9, 1)
	src.Pix[4*9+4] = 255
	dst := newBuffer(9, 9, 1)

	if err := NewBlurFilter(1).Apply(src, dst); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	center := dst.Pix[4*9+4]
	if center == 0 || center == 255 {
		t.Errorf("center = %d, want partially blurred", center)
	}
	if dst.Pix[4*9+5] == 0 || dst.Pix[3*9+4] == 0 {
		t.Error("neighbors should receive energy from the center")
	}
	if dst.Pix[4*9+5] > center {
		t.Error("neighbor brighter than center")
	}
}

func TestBlurFilterApplyEdgeHandling(t *testing.T) {
	// Left half white, right half black: edges must not darken from
	// zero padding.
	src := newBuffer(16, 4, 1)
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			src.Pix[y*16+x] = 255
		}
	}
	dst := newBuffer(16, 4, 1)

	if err := NewBlurFilter(2).Apply(src, dst); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	for y := 0; y < 4; y++ {
		if dst.Pix[y*16] < 250 {
			t.Errorf("left edge row %d = %d, want ~255 (clamp-to-edge)", y, dst.Pix[y*16])
		}
		if dst.Pix[y*16+15] > 5 {
			t.Errorf("right edge row %d = %d, want ~0", y, dst.Pix[y*16+15])
		}
	}
}

func TestBlurFilterApplyPreservesShape(t *testing.T) {
	sizes := []struct{ w, h int }{{1, 1}, {2, 1}, {1, 7}, {95, 40}, {180, 60}}

	for _, s := range sizes {
		src := newBuffer(s.w, s.h, 3, 128)
		dst := newBuffer(s.w, s.h, 3)
		if err := NewBlurFilter(8).Apply(src, dst); err != nil {
			t.Errorf("%dx%d: Apply() error = %v", s.w, s.h, err)
		}
		if len(dst.Pix) != s.w*s.h*3 {
			t.Errorf("%dx%d: dst len = %d", s.w, s.h, len(dst.Pix))
		}
	}
}

func TestBlurFilterPoolMatchesSerial(t *testing.T) {
	pool := parallel.NewWorkerPool(4)
	defer pool.Close()

	src := newBuffer(97, 131, 3)
	for i := range src.Pix {
		src.Pix[i] = uint8((i * 37) ^ (i >> 5))
	}

	serial := newBuffer(97, 131, 3)
	if err := NewBlurFilter(8).Apply(src, serial); err != nil {
		t.Fatal(err)
	}

	banded := newBuffer(97, 131, 3)
	f := &BlurFilter{SigmaX: 8, SigmaY: 8, Pool: pool}
	if err := f.Apply(src, banded); err != nil {
		t.Fatal(err)
	}

	for i := range serial.Pix {
		if serial.Pix[i] != banded.Pix[i] {
			t.Fatalf("Pix[%d] = %d with pool, %d without", i, banded.Pix[i], serial.Pix[i])
		}
	}
}

func TestBlurFilterApplyEmpty(t *testing.T) {
	src := Buffer{Channels: 3}
	dst := Buffer{Channels: 3}

	if err := NewBlurFilter(8).Apply(src, dst); err != nil {
		t.Errorf("Apply() on empty buffers error = %v", err)
	}
}

func TestBlurFilterApplyErrors(t *testing.T) {
	f := NewBlurFilter(8)

	if err := f.Apply(newBuffer(4, 4, 3), newBuffer(4, 5, 3)); !errors.Is(err, ErrBufferMismatch) {
		t.Errorf("mismatched shapes: error = %v, want ErrBufferMismatch", err)
	}

	bad := newBuffer(4, 4, 3)
	bad.Pix = bad.Pix[:10]
	if err := f.Apply(bad, newBuffer(4, 4, 3)); err == nil {
		t.Error("short buffer: want error")
	}

	if err := f.Apply(newBuffer(2, 2, 5), newBuffer(2, 2, 5)); err == nil {
		t.Error("5 channels: want error")
	}
}

func TestClampUint8(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{89.6, 90},
		{254.6, 255},
		{300, 255},
	}

	for _, tt := range tests {
		if got := clampUint8(tt.in); got != tt.want {
			t.Errorf("clampUint8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func BenchmarkBlurFilter1080p(b *testing.B) {
	src := newBuffer(1920, 1080, 3, 128)
	dst := newBuffer(1920, 1080, 3)
	f := NewBlurFilter(8)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Apply(src, dst)
	}
}
