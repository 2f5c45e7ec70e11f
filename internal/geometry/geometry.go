// Package geometry provides the shape math shared by the annotation
// renderer and the crop tool. All coordinates are in image space.
package geometry

import (
	"image"
	"math"
)

// Point is a position in image coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{x, y} }

// RectFromShape computes the rectangle described by a two-point gesture.
// With centered set, from is the center and to supplies the half extents,
// so the rectangle grows symmetrically around from. Otherwise from and to
// are opposite corners. Rendering, the crop overlay and the crop apply
// step all go through this one function.
func RectFromShape(from, to Point, centered bool) (x, y, w, h float64) {
	if centered {
		x = from.X - math.Abs(from.X-to.X)
		y = from.Y - math.Abs(from.Y-to.Y)
		w = math.Abs(from.X-to.X) * 2
		h = math.Abs(from.Y-to.Y) * 2
		return
	}
	x = math.Min(from.X, to.X)
	y = math.Min(from.Y, to.Y)
	w = math.Abs(from.X - to.X)
	h = math.Abs(from.Y - to.Y)
	return
}

// EllipseParams returns the center and per-axis radii for an ellipse
// gesture. Both modes draw a circle of radius r scaled anisotropically by
// dx:dy; centered mode keeps from as the center with the full from-to
// distance as radius, corner mode uses the midpoint and half the diagonal.
func EllipseParams(from, to Point, centered bool) (center Point, rx, ry float64) {
	dx := math.Abs(from.X - to.X)
	dy := math.Abs(from.Y - to.Y)
	n := math.Sqrt(dx*dx + dy*dy)
	var r float64
	if centered {
		center = from
		r = n
	} else {
		center = Pt(from.X+(to.X-from.X)/2, from.Y+(to.Y-from.Y)/2)
		r = n / 2
	}
	if n == 0 {
		return center, 0, 0
	}
	rx = r * dx / n
	ry = r * dy / n
	return
}

// AspectConstrain snaps the drag point so the rectangle spanned from
// "from" keeps the aspectW:aspectH ratio. The axis whose delta is larger
// relative to the ratio stays put and the other axis is recomputed,
// preserving the drag direction. A 0:0 ratio leaves the point unchanged.
func AspectConstrain(from, current Point, aspectW, aspectH int) Point {
	if aspectW <= 0 || aspectH <= 0 {
		return current
	}
	aspect := float64(aspectW) / float64(aspectH)
	dx := current.X - from.X
	dy := current.Y - from.Y
	absDX := math.Abs(dx)
	absDY := math.Abs(dy)

	out := current
	if absDX/aspect > absDY {
		// Width constrains; recompute y.
		out.Y = from.Y + absDX/aspect
		if dy < 0 {
			out.Y = from.Y - absDX/aspect
		}
	} else {
		// Height constrains; recompute x.
		out.X = from.X + absDY*aspect
		if dx < 0 {
			out.X = from.X - absDY*aspect
		}
	}
	return out
}

// arrow head reference radius and angular positions. The head is an
// isosceles triangle with a 30 degree half angle anchored at the tip,
// scaled by strokeWidth/4.
const (
	arrowRadius = 20
	arrowAlpha  = math.Pi / 6
)

// ArrowGeometry returns the shaft endpoint and the three corners of the
// arrow head triangle for a stroke of the given width. The shaft is
// shortened so it ends at the back edge of the head. ok is false when
// from and to coincide and nothing should be drawn.
func ArrowGeometry(from, to Point, strokeWidth float64) (shaftEnd Point, head [3]Point, ok bool) {
	ftx := to.X - from.X
	fty := to.Y - from.Y
	ftn := math.Sqrt(ftx*ftx + fty*fty)
	if ftn == 0 {
		return Point{}, head, false
	}

	scaling := strokeWidth / 4
	ta := 5 * arrowAlpha
	tb := 7 * arrowAlpha
	xa := arrowRadius * math.Cos(ta)
	ya := arrowRadius * math.Sin(ta)
	xb := arrowRadius * math.Cos(tb)
	yb := arrowRadius * math.Sin(tb)
	xc := ftn - math.Abs(xa)*scaling
	if xc < 0 {
		xc = 0
	}

	theta := math.Copysign(1, fty) * math.Acos(ftx/ftn)
	sin, cos := math.Sin(theta), math.Cos(theta)
	rotate := func(x, y float64) (float64, float64) {
		return x*cos - y*sin, x*sin + y*cos
	}

	sx, sy := rotate(xc, 0)
	shaftEnd = Pt(from.X+sx, from.Y+sy)

	hx1, hy1 := rotate(xa*scaling, ya*scaling)
	hx2, hy2 := rotate(xb*scaling, yb*scaling)
	head[0] = to
	head[1] = Pt(to.X+hx1, to.Y+hy1)
	head[2] = Pt(to.X+hx2, to.Y+hy2)
	return shaftEnd, head, true
}

// AspectPreset selects the ratio used to constrain crop gestures.
type AspectPreset int

const (
	AspectFree AspectPreset = iota
	Aspect16x9
	Aspect4x3
	AspectSquare
	AspectCustom
)

// Ratio returns the width and height terms of the preset. Free reports
// 0:0, meaning unconstrained. Custom presets carry user-entered terms.
func (p AspectPreset) Ratio(customW, customH int) (w, h int) {
	switch p {
	case Aspect16x9:
		return 16, 9
	case Aspect4x3:
		return 4, 3
	case AspectSquare:
		return 1, 1
	case AspectCustom:
		return customW, customH
	default:
		return 0, 0
	}
}

// ClampRect converts a float rectangle to integer pixel bounds clamped to
// the given image bounds. The returned rectangle may be empty.
func ClampRect(x, y, w, h float64, bounds image.Rectangle) image.Rectangle {
	if x < float64(bounds.Min.X) {
		w -= float64(bounds.Min.X) - x
		x = float64(bounds.Min.X)
	}
	if y < float64(bounds.Min.Y) {
		h -= float64(bounds.Min.Y) - y
		y = float64(bounds.Min.Y)
	}
	if x+w > float64(bounds.Max.X) {
		w = float64(bounds.Max.X) - x
	}
	if y+h > float64(bounds.Max.Y) {
		h = float64(bounds.Max.Y) - y
	}
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(int(x), int(y), int(x)+int(w), int(y)+int(h))
}
