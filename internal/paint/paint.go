// Package paint defines the annotation data model: one Paint per
// annotation and the undo/redo history that owns committed paints.
package paint

import (
	"image"
	"image/color"

	"github.com/example/snapmark/internal/geometry"
)

// Kind selects the variant of a Paint.
type Kind int

const (
	Brush Kind = iota
	Highlighter
	Rectangle
	Ellipse
	Arrow
	Line
	Text
	Blur
	Crop
)

func (k Kind) String() string {
	switch k {
	case Brush:
		return "brush"
	case Highlighter:
		return "highlighter"
	case Rectangle:
		return "rect"
	case Ellipse:
		return "ellipse"
	case Arrow:
		return "arrow"
	case Line:
		return "line"
	case Text:
		return "text"
	case Blur:
		return "blur"
	case Crop:
		return "crop"
	default:
		return "unknown"
	}
}

// IsShape reports whether the kind is drawn from a from/to pair.
func (k Kind) IsShape() bool {
	switch k {
	case Rectangle, Ellipse, Arrow, Line:
		return true
	}
	return false
}

// TextMode distinguishes a text annotation being edited from a placed one.
type TextMode int

const (
	TextModeEdit TextMode = iota
	TextModeDone
)

// Paint is one annotation. Only the fields of its Kind are meaningful.
// A Paint is mutated only while it is the editor's in-progress slot;
// once committed it never changes again, except for the blur cache which
// is a lazily computed render artifact, not part of the paint identity.
type Paint struct {
	Kind  Kind
	Color color.RGBA

	// CanDraw turns true once the gesture has produced a non-degenerate
	// result. Paints that never reach it are discarded, not committed.
	CanDraw   bool
	Committed bool

	// Shape family, blur and crop.
	From     geometry.Point
	To       geometry.Point
	Width    float64
	Centered bool
	Fill     bool

	// Brush and highlighter stroke, in drawing order.
	Points []geometry.Point

	// Text.
	Text     string
	FontSize float64
	Cursor   int
	TextMode TextMode

	// Cached pixelated sub-image, populated on first committed render and
	// dropped whenever the canvas underneath changes.
	blurCache    *image.RGBA
	blurCacheGen uint64
}

// NewShape starts a shape, blur or crop paint with both ends at p.
func NewShape(kind Kind, p geometry.Point, col color.RGBA, width float64, fill bool) *Paint {
	return &Paint{Kind: kind, Color: col, From: p, To: p, Width: width, Fill: fill}
}

// NewStroke starts a brush or highlighter paint at p.
func NewStroke(kind Kind, p geometry.Point, col color.RGBA, width float64) *Paint {
	return &Paint{Kind: kind, Color: col, Width: width, Points: []geometry.Point{p}, CanDraw: true}
}

// NewText starts a text paint with a wrap box anchored at p.
func NewText(p geometry.Point, col color.RGBA, size float64) *Paint {
	return &Paint{Kind: Text, Color: col, From: p, To: p, FontSize: size, TextMode: TextModeEdit}
}

// AddPoint appends p to a stroke, skipping exact duplicates of the last
// recorded point so duplicate pointer events do not produce zero length
// segments.
func (p *Paint) AddPoint(pt geometry.Point) {
	if n := len(p.Points); n > 0 && p.Points[n-1] == pt {
		return
	}
	p.Points = append(p.Points, pt)
	p.CanDraw = true
}

// SetTo moves the drag end of a two-point paint and refreshes CanDraw.
func (p *Paint) SetTo(pt geometry.Point) {
	p.To = pt
	p.CanDraw = p.From != p.To
}

// InsertRune inserts r at the cursor of a text paint. The cursor counts
// runes, not bytes.
func (p *Paint) InsertRune(r rune) {
	runes := []rune(p.Text)
	if p.Cursor < 0 {
		p.Cursor = 0
	}
	if p.Cursor > len(runes) {
		p.Cursor = len(runes)
	}
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:p.Cursor]...)
	out = append(out, r)
	out = append(out, runes[p.Cursor:]...)
	p.Text = string(out)
	p.Cursor++
	p.CanDraw = p.From != p.To
}

// DeleteRune removes the rune before the cursor.
func (p *Paint) DeleteRune() {
	runes := []rune(p.Text)
	if p.Cursor <= 0 || p.Cursor > len(runes) {
		return
	}
	p.Text = string(append(runes[:p.Cursor-1:p.Cursor-1], runes[p.Cursor:]...))
	p.Cursor--
}

// MoveCursor shifts the text cursor by delta runes, clamped to the text.
func (p *Paint) MoveCursor(delta int) {
	p.Cursor += delta
	if p.Cursor < 0 {
		p.Cursor = 0
	}
	if n := len([]rune(p.Text)); p.Cursor > n {
		p.Cursor = n
	}
}

// CursorByteOffset converts the rune cursor to a byte offset into Text.
func (p *Paint) CursorByteOffset() int {
	runes := []rune(p.Text)
	c := p.Cursor
	if c < 0 {
		c = 0
	}
	if c > len(runes) {
		c = len(runes)
	}
	return len(string(runes[:c]))
}

// BlurCache returns the cached pixelated sub-image when it was computed
// for the given canvas generation.
func (p *Paint) BlurCache(gen uint64) *image.RGBA {
	if p.blurCache != nil && p.blurCacheGen == gen {
		return p.blurCache
	}
	return nil
}

// SetBlurCache stores the pixelated sub-image for a canvas generation.
func (p *Paint) SetBlurCache(img *image.RGBA, gen uint64) {
	p.blurCache = img
	p.blurCacheGen = gen
}
