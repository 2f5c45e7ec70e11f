package geometry

import (
	"image"
	"math"
	"testing"
)

func TestRectFromShapeCorner(t *testing.T) {
	x, y, w, h := RectFromShape(Pt(10, 20), Pt(4, 26), false)
	if x != 4 || y != 20 || w != 6 || h != 6 {
		t.Errorf("got (%v,%v,%v,%v), want (4,20,6,6)", x, y, w, h)
	}
}

func TestRectFromShapeCentered(t *testing.T) {
	from := Pt(50, 40)
	to := Pt(58, 35)
	x, y, w, h := RectFromShape(from, to, true)
	cx := x + w/2
	cy := y + h/2
	if cx != from.X || cy != from.Y {
		t.Errorf("center = (%v,%v), want (%v,%v)", cx, cy, from.X, from.Y)
	}
	if w/2 != math.Abs(from.X-to.X) || h/2 != math.Abs(from.Y-to.Y) {
		t.Errorf("half extents = (%v,%v), want (%v,%v)", w/2, h/2,
			math.Abs(from.X-to.X), math.Abs(from.Y-to.Y))
	}
}

func TestEllipseParamsCentered(t *testing.T) {
	center, rx, ry := EllipseParams(Pt(0, 0), Pt(3, 4), true)
	if center != Pt(0, 0) {
		t.Errorf("center = %v, want origin", center)
	}
	// Radius 5 scaled by 3:5 and 4:5 gives back the raw deltas.
	if math.Abs(rx-3) > 1e-9 || math.Abs(ry-4) > 1e-9 {
		t.Errorf("radii = (%v,%v), want (3,4)", rx, ry)
	}
}

func TestEllipseParamsCorner(t *testing.T) {
	center, rx, ry := EllipseParams(Pt(0, 0), Pt(10, 6), false)
	if center != Pt(5, 3) {
		t.Errorf("center = %v, want (5,3)", center)
	}
	if math.Abs(rx-5) > 1e-9 || math.Abs(ry-3) > 1e-9 {
		t.Errorf("radii = (%v,%v), want (5,3)", rx, ry)
	}
}

func TestEllipseParamsDegenerate(t *testing.T) {
	_, rx, ry := EllipseParams(Pt(7, 7), Pt(7, 7), false)
	if rx != 0 || ry != 0 {
		t.Errorf("radii = (%v,%v), want zero", rx, ry)
	}
}

func TestAspectConstrainFreeIsIdentity(t *testing.T) {
	p := Pt(13.5, -2)
	if got := AspectConstrain(Pt(0, 0), p, 0, 0); got != p {
		t.Errorf("got %v, want %v", got, p)
	}
}

func TestAspectConstrainRatio(t *testing.T) {
	cases := []struct {
		name    string
		from    Point
		current Point
		w, h    int
	}{
		{"wide drag 16:9", Pt(0, 0), Pt(160, 10), 16, 9},
		{"tall drag 16:9", Pt(0, 0), Pt(10, 90), 16, 9},
		{"negative x 4:3", Pt(100, 100), Pt(20, 110), 4, 3},
		{"negative y square", Pt(50, 50), Pt(60, 10), 1, 1},
		{"degenerate", Pt(5, 5), Pt(5, 5), 16, 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AspectConstrain(tc.from, tc.current, tc.w, tc.h)
			dw := math.Abs(got.X - tc.from.X)
			dh := math.Abs(got.Y - tc.from.Y)
			want := float64(tc.w) / float64(tc.h)
			if dw == 0 && dh == 0 {
				return
			}
			if math.Abs(dw/dh-want) > 1e-9 {
				t.Errorf("ratio = %v, want %v (point %v)", dw/dh, want, got)
			}
			// Direction of the drag must survive.
			if (got.X-tc.from.X)*(tc.current.X-tc.from.X) < 0 {
				t.Errorf("x direction flipped: %v", got)
			}
			if (got.Y-tc.from.Y)*(tc.current.Y-tc.from.Y) < 0 {
				t.Errorf("y direction flipped: %v", got)
			}
		})
	}
}

func TestArrowGeometry(t *testing.T) {
	shaftEnd, head, ok := ArrowGeometry(Pt(0, 0), Pt(100, 0), 4)
	if !ok {
		t.Fatal("expected geometry for a non-degenerate arrow")
	}
	if head[0] != Pt(100, 0) {
		t.Errorf("head tip = %v, want (100,0)", head[0])
	}
	// Horizontal arrow: the shaft stops short of the tip.
	if shaftEnd.X >= 100 || shaftEnd.X <= 0 {
		t.Errorf("shaft end x = %v, want inside (0,100)", shaftEnd.X)
	}
	if math.Abs(shaftEnd.Y) > 1e-9 {
		t.Errorf("shaft end y = %v, want 0", shaftEnd.Y)
	}
	// Head corners sit behind the tip, mirrored across the shaft.
	if head[1].X >= 100 || head[2].X >= 100 {
		t.Errorf("head corners not behind tip: %v %v", head[1], head[2])
	}
	if math.Abs(head[1].Y+head[2].Y) > 1e-9 {
		t.Errorf("head corners not symmetric: %v %v", head[1], head[2])
	}
}

func TestArrowGeometryDegenerate(t *testing.T) {
	if _, _, ok := ArrowGeometry(Pt(5, 5), Pt(5, 5), 2); ok {
		t.Error("expected no geometry for a zero length arrow")
	}
}

func TestAspectPresetRatio(t *testing.T) {
	if w, h := AspectFree.Ratio(0, 0); w != 0 || h != 0 {
		t.Errorf("free = %d:%d", w, h)
	}
	if w, h := Aspect16x9.Ratio(0, 0); w != 16 || h != 9 {
		t.Errorf("16x9 = %d:%d", w, h)
	}
	if w, h := AspectCustom.Ratio(21, 9); w != 21 || h != 9 {
		t.Errorf("custom = %d:%d", w, h)
	}
}

func TestClampRect(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	r := ClampRect(-10, -10, 30, 30, bounds)
	if r != image.Rect(0, 0, 20, 20) {
		t.Errorf("clamped = %v, want (0,0)-(20,20)", r)
	}
	if r := ClampRect(120, 120, 10, 10, bounds); !r.Empty() {
		t.Errorf("expected empty rect, got %v", r)
	}
}
