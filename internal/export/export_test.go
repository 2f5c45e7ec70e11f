package export

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFlattenFillsTransparency(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(1, 1, color.RGBA{255, 0, 0, 255})
	out := Flatten(img)
	if got := out.RGBAAt(0, 0); got != (color.RGBA{51, 51, 51, 255}) {
		t.Fatalf("transparent pixel = %v, want background grey", got)
	}
	if got := out.RGBAAt(1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("opaque pixel = %v, want red preserved", got)
	}
}

func TestFlattenNormalizesOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 14, 14))
	img.SetRGBA(10, 10, color.RGBA{0, 255, 0, 255})
	out := Flatten(img)
	if out.Bounds().Min != (image.Point{}) {
		t.Fatalf("bounds = %v, want origin at zero", out.Bounds())
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("translated pixel = %v, want green", got)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, time.March, 7, 9, 5, 2, 0, time.UTC)
	cases := []struct {
		format string
		want   string
	}{
		{"shot-%Y%m%d-%H%M%S.png", "shot-20240307-090502.png"},
		{"100%%.png", "100%.png"},
		{"plain.png", "plain.png"},
		{"%Q.png", "%Q.png"},
		{"trailing%", "trailing%"},
	}
	for _, tc := range cases {
		if got := Filename(tc.format, now); got != tc.want {
			t.Errorf("Filename(%q) = %q, want %q", tc.format, got, tc.want)
		}
	}
}

func TestSaveToDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	now := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

	path, err := SaveToDir(dir, "mark-%Y%m%d-%H%M%S.png", now, img)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "mark-20240102-030405.png" {
		t.Fatalf("saved name = %s", filepath.Base(path))
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got := decoded.Bounds(); got.Dx() != 2 || got.Dy() != 2 {
		t.Fatalf("decoded size = %v, want 2x2", got)
	}
	r, g, b, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 51 || g>>8 != 51 || b>>8 != 51 {
		t.Fatalf("pixel = %d %d %d, want background grey", r>>8, g>>8, b>>8)
	}
}

func TestWritePNGBadPath(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := WritePNG(filepath.Join(t.TempDir(), "missing", "x.png"), img); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
