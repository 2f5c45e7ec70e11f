package editor

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/example/snapmark/internal/scaler"
)

// Above this zoom the preview switches from smooth interpolation to
// Scale2x so edges and text stay crisp.
const sharpZoomThreshold = 1.5

// maxScaleFactor caps the Scale2x pass count at 8x magnification.
const maxScaleFactor = 8

type previewCache struct {
	img      *image.RGBA
	viewport image.Rectangle
	zoom     float64
	valid    bool
}

func (c *previewCache) invalidate() { c.valid = false }

func (c *previewCache) lookup(viewport image.Rectangle, zoom float64) *image.RGBA {
	if c.valid && c.viewport == viewport && c.zoom == zoom {
		return c.img
	}
	return nil
}

func (c *previewCache) store(img *image.RGBA, viewport image.Rectangle, zoom float64) {
	c.img = img
	c.viewport = viewport
	c.zoom = zoom
	c.valid = true
}

// scaleFactorFor picks the smallest power of two at or above the
// effective zoom, capped at maxScaleFactor.
func scaleFactorFor(zoom float64) int {
	factor := 2
	for float64(factor) < zoom && factor < maxScaleFactor {
		factor *= 2
	}
	return factor
}

// Preview renders the given viewport of the composed canvas at the zoom
// level. Above the sharp threshold the visible region is extracted and
// magnified with Scale2x; below it the region is smooth scaled. The
// result is cached until the next render pass. Returns nil when the
// viewport does not intersect the canvas.
func (e *Editor) Preview(viewport image.Rectangle, zoom float64) *image.RGBA {
	if zoom <= 0 {
		zoom = 1
	}
	if cached := e.preview.lookup(viewport, zoom); cached != nil {
		return cached
	}

	clamped := viewport.Intersect(e.output.Bounds())
	if clamped.Empty() {
		return nil
	}

	outW := int(float64(clamped.Dx()) * zoom)
	outH := int(float64(clamped.Dy()) * zoom)
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}
	out := image.NewRGBA(image.Rect(0, 0, outW, outH))

	if zoom > sharpZoomThreshold {
		factor := scaleFactorFor(zoom)
		upscaled := scaler.Viewport(e.output, clamped, factor)
		if upscaled == nil {
			return nil
		}
		// Nearest fit from the power-of-two magnification to the exact
		// zoom keeps the Scale2x edges hard.
		xdraw.NearestNeighbor.Scale(out, out.Bounds(), upscaled, upscaled.Bounds(), xdraw.Src, nil)
	} else {
		xdraw.ApproxBiLinear.Scale(out, out.Bounds(), e.output, clamped, xdraw.Src, nil)
	}

	e.preview.store(out, viewport, zoom)
	return out
}
