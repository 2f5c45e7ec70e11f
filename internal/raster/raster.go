// Package raster holds the pixel drawing primitives used by the
// annotation renderer: thick polylines, rectangles, ellipses, arrow
// heads and masks, all composited src-over so translucent colors work.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/example/snapmark/internal/geometry"
)

// coverage marks the pixels a primitive touches. Primitives stamp into a
// coverage map first and blend once, so a translucent stroke does not
// darken where its own segments overlap.
type coverage struct {
	rect image.Rectangle
	bits []bool
}

func newCoverage(rect image.Rectangle) *coverage {
	return &coverage{rect: rect, bits: make([]bool, rect.Dx()*rect.Dy())}
}

func (c *coverage) set(x, y int) {
	if x < c.rect.Min.X || y < c.rect.Min.Y || x >= c.rect.Max.X || y >= c.rect.Max.Y {
		return
	}
	c.bits[(y-c.rect.Min.Y)*c.rect.Dx()+(x-c.rect.Min.X)] = true
}

func (c *coverage) setThick(x, y, thick int) {
	r := thick / 2
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.set(x+dx, y+dy)
		}
	}
}

func (c *coverage) line(x0, y0, x1, y1, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.setThick(x0, y0, thick)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// blend composites col src-over onto every covered pixel of img.
func (c *coverage) blend(img *image.RGBA, col color.RGBA) {
	clip := c.rect.Intersect(img.Rect)
	sa := uint32(col.A)
	pr := uint32(col.R) * sa / 255
	pg := uint32(col.G) * sa / 255
	pb := uint32(col.B) * sa / 255
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		row := (y - c.rect.Min.Y) * c.rect.Dx()
		for x := clip.Min.X; x < clip.Max.X; x++ {
			if !c.bits[row+x-c.rect.Min.X] {
				continue
			}
			i := img.PixOffset(x, y)
			p := img.Pix[i : i+4 : i+4]
			inv := 255 - sa
			p[0] = uint8(pr + uint32(p[0])*inv/255)
			p[1] = uint8(pg + uint32(p[1])*inv/255)
			p[2] = uint8(pb + uint32(p[2])*inv/255)
			p[3] = uint8(sa + uint32(p[3])*inv/255)
		}
	}
}

func round(v float64) int { return int(math.Round(v)) }

// Stroke draws a polyline of the given width. A single point becomes a
// filled width by width square, the way a brush dot renders.
func Stroke(img *image.RGBA, pts []geometry.Point, col color.RGBA, width float64) {
	if len(pts) == 0 {
		return
	}
	thick := int(width)
	if thick < 1 {
		thick = 1
	}
	cov := newCoverage(img.Rect)
	if len(pts) == 1 {
		x := round(pts[0].X)
		y := round(pts[0].Y)
		for dy := 0; dy < thick; dy++ {
			for dx := 0; dx < thick; dx++ {
				cov.set(x+dx, y+dy)
			}
		}
	} else {
		for i := 1; i < len(pts); i++ {
			cov.line(round(pts[i-1].X), round(pts[i-1].Y), round(pts[i].X), round(pts[i].Y), thick)
		}
	}
	cov.blend(img, col)
}

// Line draws a single segment.
func Line(img *image.RGBA, from, to geometry.Point, col color.RGBA, width float64) {
	Stroke(img, []geometry.Point{from, to}, col, width)
}

// StrokeRect outlines rect with the given stroke width.
func StrokeRect(img *image.RGBA, x, y, w, h float64, col color.RGBA, width float64) {
	thick := int(width)
	if thick < 1 {
		thick = 1
	}
	x0, y0 := round(x), round(y)
	x1, y1 := round(x+w), round(y+h)
	cov := newCoverage(img.Rect)
	cov.line(x0, y0, x1, y0, thick)
	cov.line(x1, y0, x1, y1, thick)
	cov.line(x1, y1, x0, y1, thick)
	cov.line(x0, y1, x0, y0, thick)
	cov.blend(img, col)
}

// FillRect fills rect with col, src-over.
func FillRect(img *image.RGBA, x, y, w, h float64, col color.RGBA) {
	cov := newCoverage(img.Rect)
	for py := round(y); py < round(y+h); py++ {
		for px := round(x); px < round(x+w); px++ {
			cov.set(px, py)
		}
	}
	cov.blend(img, col)
}

// MaskOutside darkens everything outside the given rectangle, the
// even-odd fill between the full canvas and the hole.
func MaskOutside(img *image.RGBA, x, y, w, h float64, col color.RGBA) {
	hole := image.Rect(round(x), round(y), round(x+w), round(y+h))
	cov := newCoverage(img.Rect)
	for py := img.Rect.Min.Y; py < img.Rect.Max.Y; py++ {
		for px := img.Rect.Min.X; px < img.Rect.Max.X; px++ {
			if !(image.Pt(px, py).In(hole)) {
				cov.set(px, py)
			}
		}
	}
	cov.blend(img, col)
}

// DashedRect outlines rect with a dashed line of the given on/off length.
func DashedRect(img *image.RGBA, x, y, w, h float64, col color.RGBA, width float64, dash int) {
	if dash < 1 {
		dash = 1
	}
	thick := int(width)
	if thick < 1 {
		thick = 1
	}
	x0, y0 := round(x), round(y)
	x1, y1 := round(x+w), round(y+h)
	cov := newCoverage(img.Rect)
	dashSpan := func(length int, plot func(i int)) {
		for i := 0; i <= length; i++ {
			if (i/dash)%2 == 0 {
				plot(i)
			}
		}
	}
	dashSpan(x1-x0, func(i int) { cov.setThick(x0+i, y0, thick) })
	dashSpan(x1-x0, func(i int) { cov.setThick(x0+i, y1, thick) })
	dashSpan(y1-y0, func(i int) { cov.setThick(x0, y0+i, thick) })
	dashSpan(y1-y0, func(i int) { cov.setThick(x1, y0+i, thick) })
	cov.blend(img, col)
}

// StrokeEllipse outlines the ellipse centered at center with per-axis
// radii rx and ry.
func StrokeEllipse(img *image.RGBA, center geometry.Point, rx, ry float64, col color.RGBA, width float64) {
	if rx <= 0 && ry <= 0 {
		return
	}
	thick := int(width)
	if thick < 1 {
		thick = 1
	}
	steps := int(math.Ceil(2 * math.Pi * math.Sqrt(rx*rx+ry*ry)))
	if steps < 8 {
		steps = 8
	}
	cov := newCoverage(img.Rect)
	var prevX, prevY int
	for i := 0; i <= steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		x := round(center.X + math.Cos(angle)*rx)
		y := round(center.Y + math.Sin(angle)*ry)
		if i > 0 {
			cov.line(prevX, prevY, x, y, thick)
		}
		prevX, prevY = x, y
	}
	cov.blend(img, col)
}

// FillEllipse fills the ellipse centered at center.
func FillEllipse(img *image.RGBA, center geometry.Point, rx, ry float64, col color.RGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	cov := newCoverage(img.Rect)
	cy := center.Y
	cx := center.X
	for dy := -ry; dy <= ry; dy++ {
		span := rx * math.Sqrt(1.0-(dy*dy)/(ry*ry))
		for dx := -span; dx <= span; dx++ {
			cov.set(round(cx+dx), round(cy+dy))
		}
	}
	cov.blend(img, col)
}

// FillTriangle fills the triangle spanned by the three points, used for
// arrow heads.
func FillTriangle(img *image.RGBA, a, b, c geometry.Point, col color.RGBA) {
	minX := int(math.Floor(math.Min(a.X, math.Min(b.X, c.X))))
	maxX := int(math.Ceil(math.Max(a.X, math.Max(b.X, c.X))))
	minY := int(math.Floor(math.Min(a.Y, math.Min(b.Y, c.Y))))
	maxY := int(math.Ceil(math.Max(a.Y, math.Max(b.Y, c.Y))))

	edge := func(p0, p1 geometry.Point, x, y float64) float64 {
		return (p1.X-p0.X)*(y-p0.Y) - (p1.Y-p0.Y)*(x-p0.X)
	}
	cov := newCoverage(img.Rect)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5
			w0 := edge(a, b, px, py)
			w1 := edge(b, c, px, py)
			w2 := edge(c, a, px, py)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				cov.set(x, y)
			}
		}
	}
	cov.blend(img, col)
}
