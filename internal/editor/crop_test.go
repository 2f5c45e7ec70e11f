package editor

import (
	"image/color"
	"testing"

	"github.com/example/snapmark/internal/geometry"
	"github.com/example/snapmark/internal/paint"
)

func TestApplyCropShrinksSource(t *testing.T) {
	e := New(testSource(100, 100, color.RGBA{255, 255, 255, 255}))
	e.SetTool(paint.Crop)
	e.Start(geometry.Pt(0, 0))
	e.Update(geometry.Pt(10, 10), 0)
	e.Release()
	if e.InProgress() == nil {
		t.Fatal("crop selection dropped on release")
	}
	if err := e.ApplyCrop(); err != nil {
		t.Fatal(err)
	}
	if got := e.Source().Bounds(); got.Dx() != 10 || got.Dy() != 10 {
		t.Fatalf("cropped source = %v, want 10x10", got)
	}
	if got := e.Output().Bounds(); got.Dx() != 10 || got.Dy() != 10 {
		t.Fatalf("cropped output = %v, want 10x10", got)
	}
	if e.History().Len() != 0 || e.History().RedoLen() != 0 {
		t.Fatal("history not cleared after crop")
	}
	if e.InProgress() != nil {
		t.Fatal("crop paint still pending after apply")
	}
	if e.Zoom() != 1 {
		t.Fatalf("zoom = %v, want reset to 1", e.Zoom())
	}
}

func TestApplyCropFlattensAnnotations(t *testing.T) {
	e := New(testSource(100, 100, color.RGBA{255, 255, 255, 255}))
	e.SetTool(paint.Rectangle)
	e.SetFill(true)
	e.SetColor(color.RGBA{255, 0, 0, 255})
	e.Start(geometry.Pt(10, 10))
	e.Update(geometry.Pt(30, 30), 0)
	e.Release()

	e.SetTool(paint.Crop)
	e.Start(geometry.Pt(5, 5))
	e.Update(geometry.Pt(40, 40), 0)
	e.Release()
	if err := e.ApplyCrop(); err != nil {
		t.Fatal(err)
	}
	// The rectangle was at (10,10)-(30,30); after cropping at (5,5) it
	// sits at (5,5)-(25,25) in the new source.
	if e.Source().RGBAAt(15, 15) != (color.RGBA{255, 0, 0, 255}) {
		t.Fatal("committed rectangle not baked into cropped source")
	}
	if e.Source().RGBAAt(30, 30) != (color.RGBA{255, 255, 255, 255}) {
		t.Fatal("area outside the rectangle not preserved")
	}
}

func TestApplyCropRejectsOutOfBounds(t *testing.T) {
	e := New(testSource(50, 50, color.RGBA{255, 255, 255, 255}))
	e.SetTool(paint.Crop)
	e.Start(geometry.Pt(200, 200))
	e.Update(geometry.Pt(300, 300), 0)
	e.Release()
	if err := e.ApplyCrop(); err != ErrInvalidCrop {
		t.Fatalf("err = %v, want ErrInvalidCrop", err)
	}
	if got := e.Source().Bounds(); got.Dx() != 50 || got.Dy() != 50 {
		t.Fatalf("source resized after rejected crop: %v", got)
	}
	if e.InProgress() != nil {
		t.Fatal("rejected crop paint not dropped")
	}
}

func TestApplyCropWithoutSelection(t *testing.T) {
	e := New(testSource(50, 50, color.RGBA{255, 255, 255, 255}))
	if err := e.ApplyCrop(); err != ErrInvalidCrop {
		t.Fatalf("err = %v, want ErrInvalidCrop", err)
	}
}
