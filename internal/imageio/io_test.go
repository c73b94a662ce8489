package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 12, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 20), G: uint8(y * 30), B: 90, A: 255})
		}
	}
	return img
}

func TestFormat(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"out.png", "png"},
		{"OUT.PNG", "png"},
		{"a/b.jpg", "jpeg"},
		{"b.jpeg", "jpeg"},
		{"c.gif", "gif"},
		{"d.bmp", "bmp"},
		{"e.tif", "tiff"},
		{"e.tiff", "tiff"},
		{"f.webp", ""},
		{"noext", ""},
	}
	for _, tt := range tests {
		if got := Format(tt.path); got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSaveLoadLossless(t *testing.T) {
	src := testImage()

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "img"+ext)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got.Bounds() != src.Bounds() {
				t.Fatalf("Bounds() = %v, want %v", got.Bounds(), src.Bounds())
			}
			for y := 0; y < 8; y++ {
				for x := 0; x < 12; x++ {
					r1, g1, b1, _ := got.At(x, y).RGBA()
					r2, g2, b2, _ := src.At(x, y).RGBA()
					if r1>>8 != r2>>8 || g1>>8 != g2>>8 || b1>>8 != b2>>8 {
						t.Fatalf("pixel (%d,%d) differs", x, y)
					}
				}
			}
		})
	}
}

func TestSaveLoadLossy(t *testing.T) {
	src := testImage()

	for _, ext := range []string{".jpg", ".gif"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "img"+ext)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got.Bounds().Dx() != 12 || got.Bounds().Dy() != 8 {
				t.Errorf("size = %v, want 12x8", got.Bounds())
			}
		})
	}
}

func TestSaveUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")
	err := Save(path, testImage())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Save(.webp) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("Save() created a file for an unsupported format")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Load(missing) expected error")
	}

	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load(junk) expected error")
	}
}

func TestLoadBytes(t *testing.T) {
	if _, err := LoadBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("LoadBytes(nil) error = %v, want ErrEmptyData", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), "png"); err != nil {
		t.Fatal(err)
	}
	img, err := LoadBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	if img.Bounds().Dx() != 12 {
		t.Errorf("width = %d, want 12", img.Bounds().Dx())
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), "xcf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(xcf) error = %v, want ErrUnsupportedFormat", err)
	}
}
