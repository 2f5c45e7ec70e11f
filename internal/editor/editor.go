// Package editor drives the annotation lifecycle over a source bitmap:
// gesture handling for the in-progress paint, the undo/redo history,
// deterministic recomposition and the crop terminal operation.
//
// The editor is single threaded by contract. Every mutation runs to
// completion, re-renders, and returns before the next one is accepted.
package editor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/mobile/event/key"

	"github.com/example/snapmark/internal/geometry"
	"github.com/example/snapmark/internal/paint"
)

const (
	defaultLineWidth   = 5
	defaultTextSize    = 16
	defaultZoom        = 1.0
	defaultFillOpacity = 100
)

// Editor owns the source image, the composed output and the paint state.
type Editor struct {
	source *image.RGBA
	output *image.RGBA

	history    paint.History
	inProgress *paint.Paint

	tool        paint.Kind
	color       color.RGBA
	lineWidth   float64
	textSize    float64
	fill        bool
	fillOpacity float64

	aspect  geometry.AspectPreset
	customW int
	customH int

	zoom       float64
	panX, panY float64

	deviceScale float64

	// contentGen counts canvas mutations beneath committed paints; the
	// blur caches are keyed on it so they survive pure re-renders but not
	// commits, undos, redos or crops.
	contentGen uint64

	preview previewCache
}

// New creates an editor over a copy of src.
func New(src image.Image) *Editor {
	b := src.Bounds()
	source := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(source, source.Bounds(), src, b.Min, draw.Src)
	e := &Editor{
		source:      source,
		output:      image.NewRGBA(source.Bounds()),
		tool:        paint.Brush,
		color:       color.RGBA{255, 38, 0, 255},
		lineWidth:   defaultLineWidth,
		textSize:    defaultTextSize,
		fillOpacity: defaultFillOpacity,
		zoom:        defaultZoom,
		deviceScale: 1,
	}
	e.Render()
	return e
}

// Source returns the current post-crop source image.
func (e *Editor) Source() *image.RGBA { return e.source }

// Output returns the composed canvas from the latest render pass.
func (e *Editor) Output() *image.RGBA { return e.output }

// History exposes the undo/redo state for inspection.
func (e *Editor) History() *paint.History { return &e.history }

// InProgress returns the paint currently being edited, or nil.
func (e *Editor) InProgress() *paint.Paint { return e.inProgress }

// Zoom returns the current zoom level.
func (e *Editor) Zoom() float64 { return e.zoom }

// SetZoom clamps and stores the interactive zoom level.
func (e *Editor) SetZoom(z float64) {
	if z < 0.1 {
		z = 0.1
	}
	if z > 10 {
		z = 10
	}
	e.zoom = z
}

// Pan returns the current pan offset.
func (e *Editor) Pan() (x, y float64) { return e.panX, e.panY }

// SetPan stores the pan offset.
func (e *Editor) SetPan(x, y float64) { e.panX, e.panY = x, y }

// SetTool selects the paint kind new gestures create.
func (e *Editor) SetTool(tool paint.Kind) { e.tool = tool }

// SetColor selects the color for new paints.
func (e *Editor) SetColor(c color.RGBA) { e.color = c }

// SetLineWidth sets the stroke width for new paints, clamped to 1..50.
func (e *Editor) SetLineWidth(w float64) {
	if w < 1 {
		w = 1
	}
	if w > 50 {
		w = 50
	}
	e.lineWidth = w
}

// SetTextSize sets the point size for new text paints, clamped to 10..50.
func (e *Editor) SetTextSize(s float64) {
	if s < 10 {
		s = 10
	}
	if s > 50 {
		s = 50
	}
	e.textSize = s
}

// SetFill selects filled rather than stroked rectangles and ellipses.
func (e *Editor) SetFill(fill bool) { e.fill = fill }

// SetFillOpacity sets the alpha percentage baked into new filled shapes,
// clamped to 0..100. Stroked shapes keep the color's own alpha.
func (e *Editor) SetFillOpacity(pct float64) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	e.fillOpacity = pct
}

// SetDeviceScale sets the device pixel ratio used by the redaction
// filter.
func (e *Editor) SetDeviceScale(s float64) {
	if s <= 0 {
		s = 1
	}
	e.deviceScale = s
}

// SetAspect selects the crop aspect constraint. customW and customH are
// only consulted for the custom preset.
func (e *Editor) SetAspect(p geometry.AspectPreset, customW, customH int) {
	e.aspect = p
	e.customW = customW
	e.customH = customH
}

// SwapAspect exchanges the custom aspect terms, flipping orientation.
func (e *Editor) SwapAspect() {
	e.customW, e.customH = e.customH, e.customW
}

// Start begins a gesture at pt with the current tool, replacing any
// in-progress paint.
func (e *Editor) Start(pt geometry.Point) {
	switch e.tool {
	case paint.Brush, paint.Highlighter:
		e.inProgress = paint.NewStroke(e.tool, pt, e.color, e.lineWidth)
	case paint.Text:
		e.inProgress = paint.NewText(pt, e.color, e.textSize)
	case paint.Crop:
		e.inProgress = paint.NewShape(paint.Crop, pt, e.color, e.lineWidth, false)
	case paint.Blur:
		e.inProgress = paint.NewShape(paint.Blur, pt, e.color, e.lineWidth, false)
	default:
		col := e.color
		if e.fill && e.fillOpacity < 100 {
			col.A = uint8(float64(col.A)*e.fillOpacity/100 + 0.5)
		}
		e.inProgress = paint.NewShape(e.tool, pt, col, e.lineWidth, e.fill)
	}
	e.Render()
}

// Update moves the gesture to pt. Holding control re-interprets the
// current from/to pair as centered on from; crop gestures additionally
// snap to the configured aspect ratio.
func (e *Editor) Update(pt geometry.Point, mods key.Modifiers) {
	p := e.inProgress
	if p == nil {
		return
	}
	switch p.Kind {
	case paint.Brush, paint.Highlighter:
		p.AddPoint(pt)
	case paint.Text:
		p.To = pt
		p.CanDraw = p.From != p.To
	case paint.Crop:
		if w, h := e.aspect.Ratio(e.customW, e.customH); w > 0 && h > 0 {
			pt = geometry.AspectConstrain(p.From, pt, w, h)
		}
		p.Centered = mods&key.ModControl != 0
		p.SetTo(pt)
	default:
		p.Centered = mods&key.ModControl != 0
		p.SetTo(pt)
	}
	e.Render()
}

// Release ends the gesture. Shapes, strokes and blurs commit when they
// produced something drawable and are discarded otherwise. Text and crop
// paints stay in progress: text until CommitText, crop until ApplyCrop
// or Cancel.
func (e *Editor) Release() {
	p := e.inProgress
	if p == nil {
		return
	}
	switch p.Kind {
	case paint.Text, paint.Crop:
		return
	}
	if p.CanDraw {
		e.commit(p)
	} else {
		e.inProgress = nil
	}
	e.Render()
}

// CommitText finishes the in-progress text paint. Empty content cancels
// instead of committing.
func (e *Editor) CommitText() {
	p := e.inProgress
	if p == nil || p.Kind != paint.Text {
		return
	}
	if p.Text == "" || !p.CanDraw {
		e.inProgress = nil
		e.Render()
		return
	}
	p.TextMode = paint.TextModeDone
	e.commit(p)
	e.Render()
}

// Cancel discards the in-progress paint unconditionally.
func (e *Editor) Cancel() {
	if e.inProgress == nil {
		return
	}
	e.inProgress = nil
	e.Render()
}

func (e *Editor) commit(p *paint.Paint) {
	e.history.Commit(p)
	e.inProgress = nil
	e.contentGen++
}

// Undo moves the newest committed paint to the redo buffer.
func (e *Editor) Undo() bool {
	if !e.history.Undo() {
		return false
	}
	e.contentGen++
	e.Render()
	return true
}

// Redo re-applies the most recently undone paint.
func (e *Editor) Redo() bool {
	if !e.history.Redo() {
		return false
	}
	e.contentGen++
	e.Render()
	return true
}

// ClearPaints drops the whole history and the in-progress paint.
func (e *Editor) ClearPaints() {
	e.history.Clear()
	e.inProgress = nil
	e.contentGen++
	e.Render()
}

// Draw runs a whole gesture in one call: start at the first point, drag
// through the rest, release. It exists for non-interactive callers.
func (e *Editor) Draw(pts ...geometry.Point) error {
	if len(pts) == 0 {
		return fmt.Errorf("draw requires at least one point")
	}
	e.Start(pts[0])
	for _, pt := range pts[1:] {
		e.Update(pt, 0)
	}
	e.Release()
	return nil
}
