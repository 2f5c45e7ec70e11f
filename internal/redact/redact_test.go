package redact

import (
	"image"
	"image/color"
	"testing"
)

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	a := color.RGBA{200, 40, 40, 255}
	b := color.RGBA{40, 200, 40, 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}

func TestPixelateUnsupportedFormat(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	if _, err := Pixelate(gray, 0, 0, 8, 8, 1); err != ErrUnsupportedFormat {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestPixelateDoesNotMutateSource(t *testing.T) {
	src := checker(16, 16)
	before := make([]uint8, len(src.Pix))
	copy(before, src.Pix)
	if _, err := Pixelate(src, 0, 0, 16, 16, 1); err != nil {
		t.Fatal(err)
	}
	for i := range src.Pix {
		if src.Pix[i] != before[i] {
			t.Fatalf("source pixel byte %d changed", i)
		}
	}
}

func TestPixelateOutputExtent(t *testing.T) {
	src := checker(32, 32)
	out, err := Pixelate(src, 4, 6, 10, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rect.Dx() != 10 || out.Rect.Dy() != 8 {
		t.Errorf("output = %dx%d, want 10x8", out.Rect.Dx(), out.Rect.Dy())
	}
}

func TestPixelateBlockAverage(t *testing.T) {
	// A 4x4 region of alternating colors averages to their mean in every
	// pixel of the block.
	src := checker(4, 4)
	out, err := Pixelate(src, 0, 0, 4, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := color.RGBA{120, 120, 40, 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := out.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestPixelateUniformIsIdentityOnRegion(t *testing.T) {
	c := color.RGBA{10, 20, 30, 255}
	src := image.NewRGBA(image.Rect(0, 0, 24, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			src.SetRGBA(x, y, c)
		}
	}
	out, err := Pixelate(src, 2, 2, 20, 20, 1)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < out.Rect.Dy(); y++ {
		for x := 0; x < out.Rect.Dx(); x++ {
			if got := out.RGBAAt(x, y); got != c {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}
}

func TestPixelateDeviceScaleBlockClamp(t *testing.T) {
	// A tiny device scale would shrink blocks to zero; the floor of 4
	// physical pixels keeps the loop advancing.
	src := checker(16, 16)
	if _, err := Pixelate(src, 0, 0, 16, 16, 0.1); err != nil {
		t.Fatal(err)
	}
}

func TestPixelateAcceptsNRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	if _, err := Pixelate(src, 0, 0, 8, 8, 1); err != nil {
		t.Fatalf("NRGBA input rejected: %v", err)
	}
}
