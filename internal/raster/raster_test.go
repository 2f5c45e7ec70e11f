package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/snapmark/internal/geometry"
)

var opaque = color.RGBA{255, 0, 0, 255}

func canvas(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestStrokeSinglePointSquare(t *testing.T) {
	img := canvas(20, 20)
	Stroke(img, []geometry.Point{geometry.Pt(5, 5)}, opaque, 4)
	for y := 5; y < 9; y++ {
		for x := 5; x < 9; x++ {
			if img.RGBAAt(x, y) != opaque {
				t.Fatalf("pixel (%d,%d) not painted", x, y)
			}
		}
	}
	if img.RGBAAt(4, 4) == opaque {
		t.Error("square leaked outside its extent")
	}
}

func TestStrokeTranslucentNoDoubleBlend(t *testing.T) {
	// A thick zig-zag overlaps itself heavily; covered pixels must carry
	// exactly one application of the translucent color.
	img := canvas(40, 40)
	col := color.RGBA{0, 0, 255, 102}
	pts := []geometry.Point{
		geometry.Pt(5, 20), geometry.Pt(20, 20), geometry.Pt(10, 20), geometry.Pt(30, 20),
	}
	Stroke(img, pts, col, 9)
	want := img.RGBAAt(20, 20)
	if want.A == 0 {
		t.Fatal("stroke did not paint")
	}
	// Every covered pixel along the overlap has the identical value.
	for x := 10; x <= 20; x++ {
		if got := img.RGBAAt(x, 20); got != want {
			t.Fatalf("pixel (%d,20) = %v, want %v (double blend?)", x, got, want)
		}
	}
}

func TestLineEndpoints(t *testing.T) {
	img := canvas(30, 30)
	Line(img, geometry.Pt(2, 2), geometry.Pt(25, 25), opaque, 1)
	if img.RGBAAt(2, 2) != opaque || img.RGBAAt(25, 25) != opaque {
		t.Error("line endpoints not painted")
	}
}

func TestFillRect(t *testing.T) {
	img := canvas(20, 20)
	FillRect(img, 3, 4, 5, 6, opaque)
	if img.RGBAAt(3, 4) != opaque || img.RGBAAt(7, 9) != opaque {
		t.Error("fill missing corners")
	}
	if img.RGBAAt(8, 4) == opaque || img.RGBAAt(3, 10) == opaque {
		t.Error("fill leaked outside rect")
	}
}

func TestMaskOutside(t *testing.T) {
	img := canvas(20, 20)
	MaskOutside(img, 5, 5, 10, 10, color.RGBA{0, 0, 0, 128})
	if got := img.RGBAAt(7, 7); got.A != 0 {
		t.Errorf("inside the hole should stay untouched, got %v", got)
	}
	if got := img.RGBAAt(1, 1); got.A == 0 {
		t.Error("outside the hole should be masked")
	}
}

func TestStrokeEllipseOnAxis(t *testing.T) {
	img := canvas(60, 60)
	StrokeEllipse(img, geometry.Pt(30, 30), 20, 10, opaque, 1)
	if img.RGBAAt(50, 30) != opaque {
		t.Error("ellipse missing rightmost point")
	}
	if img.RGBAAt(30, 40) != opaque {
		t.Error("ellipse missing bottom point")
	}
	if img.RGBAAt(30, 30) == opaque {
		t.Error("ellipse center painted by stroke")
	}
}

func TestFillEllipse(t *testing.T) {
	img := canvas(40, 40)
	FillEllipse(img, geometry.Pt(20, 20), 10, 5, opaque)
	if img.RGBAAt(20, 20) != opaque {
		t.Error("fill missing center")
	}
	if img.RGBAAt(20, 14) == opaque && img.RGBAAt(20, 26) == opaque {
		// Pixels just outside the minor axis must stay clear.
		t.Error("fill leaked past the minor radius")
	}
}

func TestFillTriangle(t *testing.T) {
	img := canvas(30, 30)
	FillTriangle(img, geometry.Pt(5, 5), geometry.Pt(25, 5), geometry.Pt(5, 25), opaque)
	if img.RGBAAt(8, 8) != opaque {
		t.Error("triangle interior not filled")
	}
	if img.RGBAAt(24, 24) == opaque {
		t.Error("triangle filled outside its hypotenuse")
	}
}

func TestDashedRectHasGaps(t *testing.T) {
	img := canvas(60, 60)
	DashedRect(img, 5, 5, 40, 40, opaque, 1, 5)
	painted, gaps := 0, 0
	for x := 5; x <= 45; x++ {
		if img.RGBAAt(x, 5) == opaque {
			painted++
		} else {
			gaps++
		}
	}
	if painted == 0 || gaps == 0 {
		t.Errorf("dashed edge painted=%d gaps=%d, want both non-zero", painted, gaps)
	}
}

func TestMeasureText(t *testing.T) {
	w, h, err := MeasureText("hello", 16)
	if err != nil {
		t.Fatal(err)
	}
	if w <= 0 || h <= 0 {
		t.Errorf("measure = %dx%d", w, h)
	}
	w2, _, err := MeasureText("hello hello", 16)
	if err != nil {
		t.Fatal(err)
	}
	if w2 <= w {
		t.Error("longer text should measure wider")
	}
}

func TestDrawTextBoxPaintsInsideBox(t *testing.T) {
	img := canvas(200, 100)
	box := TextBox{Text: "hi there", Size: 20, Color: opaque, Cursor: -1}
	if err := DrawTextBox(img, box, 10, 10, 150, 60); err != nil {
		t.Fatal(err)
	}
	painted := false
	for y := 10; y < 70; y++ {
		for x := 10; x < 160; x++ {
			if img.RGBAAt(x, y).A != 0 {
				painted = true
			}
		}
	}
	if !painted {
		t.Fatal("no glyphs rendered inside the wrap box")
	}
	for y := 0; y < 100; y++ {
		for x := 0; x < 10; x++ {
			if img.RGBAAt(x, y).A != 0 {
				t.Fatal("glyphs rendered left of the wrap box")
			}
		}
	}
}

func TestDrawTextBoxCaret(t *testing.T) {
	img := canvas(100, 50)
	box := TextBox{Text: "", Size: 16, Color: opaque, Cursor: 0}
	if err := DrawTextBox(img, box, 0, 0, 100, 50); err != nil {
		t.Fatal(err)
	}
	found := false
	for y := 0; y < 50 && !found; y++ {
		if img.RGBAAt(0, y).A != 0 {
			found = true
		}
	}
	if !found {
		t.Error("caret not drawn for an empty text box in edit mode")
	}
}

func TestWrapLongWord(t *testing.T) {
	face, err := faceForSize(16)
	if err != nil {
		t.Fatal(err)
	}
	lines := wrapLines(face, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 40)
	if len(lines) < 2 {
		t.Errorf("expected a long word to split, got %d line(s)", len(lines))
	}
}
