package text

import (
	"image"
	"image/draw"
	"testing"

	"github.com/gogpu/bitfx"
)

// seedZeroBits is the first bits drawn from a source seeded with 0.
const seedZeroBits = "001011100101101000111001"

// expectedCanvas composites the cached masks of runes onto a flat canvas
// at the cell positions for m, in row-major order.
func expectedCanvas(t *testing.T, face *Face, runes []rune, cols int, m bitfx.FontMetrics, w, h int, bg, ink bitfx.RGB) *bitfx.Frame {
	t.Helper()
	want := bitfx.NewFrame(w, h)
	want.Fill(bg)
	for i, r := range runes {
		gm, ok := face.masks.Get(r)
		if !ok {
			t.Fatalf("no cached mask for %q", r)
		}
		if gm.mask == nil {
			continue
		}
		x := (i % cols) * m.CharWidth
		y := m.BaselineOffset + (i/cols)*m.CharHeight
		at := gm.offset.Add(image.Pt(x, y))
		dr := image.Rectangle{Min: at, Max: at.Add(gm.mask.Rect.Size())}
		draw.DrawMask(want, dr, image.NewUniform(ink), image.Point{}, gm.mask, image.Point{}, draw.Over)
	}
	return want
}

func TestPipelineGoMonoGray(t *testing.T) {
	const (
		width, height = 180, 60
		px            = 40
	)
	gray := bitfx.RGB{R: 128, G: 128, B: 128}
	background := bitfx.RGB{R: 90, G: 90, B: 90}

	face := goMonoFace(t, px)
	m, err := face.CellMetrics()
	if err != nil {
		t.Fatal(err)
	}
	if m != (bitfx.FontMetrics{CharWidth: 20, CharHeight: 25, BaselineOffset: -7}) {
		t.Fatalf("CellMetrics() = %+v, want {20 25 -7}", m)
	}
	cols, rows := bitfx.GridSize(width, height, m)
	if cols != 9 || rows != 2 {
		t.Fatalf("grid = %dx%d, want 9x2", cols, rows)
	}

	p, err := bitfx.NewPipeline(m, face, bitfx.NewRandomSource(0), bitfx.WithWorkers(2))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	src := bitfx.NewFrame(width, height)
	src.Fill(gray)
	out, err := p.ProcessImage(src)
	if err != nil {
		t.Fatalf("ProcessImage() error = %v", err)
	}

	runes := make([]rune, cols*rows)
	for i := range runes {
		runes[i] = rune(seedZeroBits[i])
	}

	// Union of every cell's mask, to tell background pixels from glyph
	// pixels.
	covered := make([]bool, width*height)
	for i, r := range runes {
		gm, _ := face.masks.Get(r)
		if gm == nil || gm.mask == nil {
			t.Fatalf("cell %d: no mask for %q", i, r)
		}
		x := (i % cols) * m.CharWidth
		y := m.BaselineOffset + (i/cols)*m.CharHeight
		b := gm.mask.Rect
		for my := b.Min.Y; my < b.Max.Y; my++ {
			for mx := b.Min.X; mx < b.Max.X; mx++ {
				if gm.mask.AlphaAt(mx, my).A == 0 {
					continue
				}
				cx, cy := x+gm.offset.X+mx, y+gm.offset.Y+my
				if cx >= 0 && cx < width && cy >= 0 && cy < height {
					covered[cy*width+cx] = true
				}
			}
		}
	}

	var solid int
	for y := range height {
		for x := range width {
			c := out.RGBAt(x, y)
			if !covered[y*width+x] {
				if c != background {
					t.Fatalf("background pixel (%d,%d) = %+v, want %+v", x, y, c, background)
				}
				continue
			}
			if c != gray {
				continue
			}
			solid++
			// A fully inked pixel lies in the line box of some cell.
			inBox := false
			for i := range runes {
				bx := (i % cols) * m.CharWidth
				by := m.BaselineOffset + (i/cols)*m.CharHeight
				if x >= bx && x < bx+m.CharWidth && y >= by && y < by+px {
					inBox = true
					break
				}
			}
			if !inBox {
				t.Errorf("ink pixel (%d,%d) outside every line box", x, y)
			}
		}
	}
	if solid == 0 {
		t.Fatal("no fully inked pixel in the output")
	}

	want := expectedCanvas(t, face, runes, cols, m, width, height, background, gray)
	for y := range height {
		for x := range width {
			if got, exp := out.RGBAt(x, y), want.RGBAt(x, y); got != exp {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, exp)
			}
		}
	}

	// The comparison depends on which digit sits in which cell.
	flipped := make([]rune, len(runes))
	for i, r := range runes {
		flipped[i] = '0' + '1' - r
	}
	swapped := expectedCanvas(t, face, flipped, cols, m, width, height, background, gray)
	same := true
	for i, v := range swapped.Pix() {
		if v != out.Pix()[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("output unchanged with every digit flipped")
	}
}
