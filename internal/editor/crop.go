package editor

import (
	"errors"
	"image"
	"image/draw"

	"github.com/example/snapmark/internal/geometry"
	"github.com/example/snapmark/internal/paint"
)

// ErrInvalidCrop reports a crop rectangle that is empty after clamping
// to the image bounds.
var ErrInvalidCrop = errors.New("editor: invalid crop region")

// ApplyCrop consumes the in-progress crop paint: committed paints are
// flattened onto the source, the clamped crop rectangle becomes the new
// source image, and the history is discarded because its coordinates no
// longer apply. Crop is terminal, it does not participate in undo.
func (e *Editor) ApplyCrop() error {
	p := e.inProgress
	if p == nil || p.Kind != paint.Crop || !p.CanDraw {
		return ErrInvalidCrop
	}

	x, y, w, h := geometry.RectFromShape(p.From, p.To, p.Centered)
	rect := geometry.ClampRect(x, y, w, h, e.source.Bounds())
	if rect.Empty() {
		e.inProgress = nil
		e.Render()
		return ErrInvalidCrop
	}

	// Bake the committed annotations into the source before cutting it
	// down so the cropped image is self contained.
	flat := image.NewRGBA(e.source.Bounds())
	draw.Draw(flat, flat.Bounds(), e.source, e.source.Rect.Min, draw.Src)
	for _, committed := range e.history.Committed() {
		if committed.Kind == paint.Crop {
			continue
		}
		e.renderPaint(flat, committed)
	}

	cropped := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(cropped, cropped.Bounds(), flat, rect.Min, draw.Src)

	e.source = cropped
	e.history.Clear()
	e.inProgress = nil
	e.contentGen++
	e.zoom = defaultZoom
	e.panX, e.panY = 0, 0
	e.Render()
	return nil
}
