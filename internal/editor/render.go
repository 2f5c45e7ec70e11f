package editor

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"github.com/example/snapmark/internal/geometry"
	"github.com/example/snapmark/internal/paint"
	"github.com/example/snapmark/internal/raster"
	"github.com/example/snapmark/internal/redact"
)

// highlighterAlpha and highlighterWidthFactor give the highlighter its
// translucent, extra-wide stroke.
const (
	highlighterAlpha       = 102 // 40%
	highlighterWidthFactor = 3
)

// Render recomputes the output canvas from scratch: clear, source image,
// committed paints oldest first, then the in-progress paint on top.
// Derived previews are invalidated because the content changed.
func (e *Editor) Render() {
	out := e.output
	if out.Bounds() != e.source.Bounds() {
		out = image.NewRGBA(e.source.Bounds())
		e.output = out
	}
	for i := range out.Pix {
		out.Pix[i] = 0
	}
	draw.Draw(out, out.Bounds(), e.source, e.source.Rect.Min, draw.Src)

	for _, p := range e.history.Committed() {
		e.renderPaint(out, p)
	}
	if e.inProgress != nil {
		e.renderPaint(out, e.inProgress)
	}

	e.preview.invalidate()
}

func (e *Editor) renderPaint(dst *image.RGBA, p *paint.Paint) {
	if !p.CanDraw {
		// The crop selection must stay visible while the gesture is still
		// degenerate, every other paint waits until it is drawable.
		if !(p.Kind == paint.Crop && !p.Committed) {
			return
		}
	}
	switch p.Kind {
	case paint.Brush:
		raster.Stroke(dst, p.Points, p.Color, p.Width)
	case paint.Highlighter:
		col := p.Color
		col.A = highlighterAlpha
		raster.Stroke(dst, p.Points, col, p.Width*highlighterWidthFactor)
	case paint.Line:
		raster.Line(dst, p.From, p.To, p.Color, p.Width)
	case paint.Rectangle:
		x, y, w, h := geometry.RectFromShape(p.From, p.To, p.Centered)
		if p.Fill {
			raster.FillRect(dst, x, y, w, h, p.Color)
		} else {
			raster.StrokeRect(dst, x, y, w, h, p.Color, p.Width)
		}
	case paint.Ellipse:
		center, rx, ry := geometry.EllipseParams(p.From, p.To, p.Centered)
		if p.Fill {
			raster.FillEllipse(dst, center, rx, ry, p.Color)
		} else {
			raster.StrokeEllipse(dst, center, rx, ry, p.Color, p.Width)
		}
	case paint.Arrow:
		shaftEnd, head, ok := geometry.ArrowGeometry(p.From, p.To, p.Width)
		if !ok {
			return
		}
		raster.Line(dst, p.From, shaftEnd, p.Color, p.Width)
		raster.FillTriangle(dst, head[0], head[1], head[2], p.Color)
	case paint.Text:
		e.renderText(dst, p)
	case paint.Blur:
		e.renderBlur(dst, p)
	case paint.Crop:
		e.renderCropOverlay(dst, p)
	default:
		log.Printf("unable to render paint kind %v", p.Kind)
	}
}

func (e *Editor) renderText(dst *image.RGBA, p *paint.Paint) {
	x, y, w, h := geometry.RectFromShape(p.From, p.To, false)
	cursor := -1
	if p.TextMode == paint.TextModeEdit {
		cursor = p.Cursor
		// Ghost outline of the wrap box while editing.
		raster.StrokeRect(dst, x, y, w, h, color.RGBA{128, 128, 128, 77}, 5)
	}
	box := raster.TextBox{Text: p.Text, Size: p.FontSize, Color: p.Color, Cursor: cursor}
	if err := raster.DrawTextBox(dst, box, x, y, w, h); err != nil {
		log.Printf("render text: %v", err)
	}
}

// renderBlur pixelates the canvas under the blur rectangle. Committed
// blurs cache the pixelated sub-image per content generation so repeated
// renders do not redo the work; an in-progress blur shows a translucent
// blue selection instead.
func (e *Editor) renderBlur(dst *image.RGBA, p *paint.Paint) {
	x, y, w, h := geometry.RectFromShape(p.From, p.To, false)
	if !p.Committed {
		raster.FillRect(dst, x, y, w, h, color.RGBA{0, 128, 255, 128})
		return
	}
	cached := p.BlurCache(e.contentGen)
	if cached == nil {
		blurred, err := redact.Pixelate(dst, x, y, w, h, e.deviceScale)
		if err != nil {
			log.Printf("pixelate: %v", err)
			return
		}
		p.SetBlurCache(blurred, e.contentGen)
		cached = blurred
	}
	target := image.Rect(int(x*e.deviceScale), int(y*e.deviceScale),
		int(x*e.deviceScale)+cached.Rect.Dx(), int(y*e.deviceScale)+cached.Rect.Dy())
	draw.Draw(dst, target, cached, cached.Rect.Min, draw.Src)
}

// renderCropOverlay dims everything outside the selection and frames it
// with a solid white border and a dashed black inner border.
func (e *Editor) renderCropOverlay(dst *image.RGBA, p *paint.Paint) {
	x, y, w, h := geometry.RectFromShape(p.From, p.To, p.Centered)
	raster.MaskOutside(dst, x, y, w, h, color.RGBA{0, 0, 0, 128})
	raster.StrokeRect(dst, x, y, w, h, color.RGBA{255, 255, 255, 255}, 2)
	raster.DashedRect(dst, x, y, w, h, color.RGBA{0, 0, 0, 255}, 1, 5)
}
