package raster

import (
	"image"
	"image/color"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontOnce    sync.Once
	fontErr     error
	regularFont *opentype.Font
	textFaces   sync.Map // map[float64]font.Face
)

func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		size = 16
	}
	fontOnce.Do(func() {
		regularFont, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	if face, ok := textFaces.Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(regularFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	textFaces.Store(size, face)
	return face, nil
}

// MeasureText returns the pixel width and line height of text at size.
func MeasureText(text string, size float64) (width, height int, err error) {
	face, err := faceForSize(size)
	if err != nil {
		return 0, 0, err
	}
	d := &font.Drawer{Face: face}
	width = d.MeasureString(text).Ceil()
	m := face.Metrics()
	height = m.Ascent.Ceil() + m.Descent.Ceil()
	return width, height, nil
}

// TextBox describes a wrapped text annotation. Cursor is a rune offset;
// a negative cursor draws no caret.
type TextBox struct {
	Text   string
	Size   float64
	Color  color.RGBA
	Cursor int
}

// wrapLines breaks text into lines that fit maxWidth, preferring word
// boundaries and falling back to splitting inside a word that is wider
// than the box on its own.
func wrapLines(face font.Face, text string, maxWidth int) []string {
	d := &font.Drawer{Face: face}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		cur := ""
		for _, word := range strings.Split(para, " ") {
			candidate := word
			if cur != "" {
				candidate = cur + " " + word
			}
			if d.MeasureString(candidate).Ceil() <= maxWidth || cur == "" {
				cur = candidate
				// A single word wider than the box is split by runes.
				for d.MeasureString(cur).Ceil() > maxWidth && len([]rune(cur)) > 1 {
					runes := []rune(cur)
					cut := len(runes) - 1
					for cut > 1 && d.MeasureString(string(runes[:cut])).Ceil() > maxWidth {
						cut--
					}
					lines = append(lines, string(runes[:cut]))
					cur = string(runes[cut:])
				}
				continue
			}
			lines = append(lines, cur)
			cur = word
		}
		lines = append(lines, cur)
	}
	return lines
}

// caretPos locates the rune offset in the wrapped lines, returning the
// line index and the prefix of that line before the caret.
func caretPos(lines []string, cursor int) (line int, prefix string) {
	remaining := cursor
	for i, l := range lines {
		n := len([]rune(l))
		if remaining <= n {
			runes := []rune(l)
			if remaining < 0 {
				remaining = 0
			}
			return i, string(runes[:remaining])
		}
		// Account for the space or newline swallowed by wrapping.
		remaining -= n + 1
	}
	if len(lines) == 0 {
		return 0, ""
	}
	return len(lines) - 1, lines[len(lines)-1]
}

// DrawTextBox renders box into an isolated buffer sized w by h, wrapping
// at the box width, and composites it with its top-left corner at (x, y).
// Content that does not fit the box height is clipped.
func DrawTextBox(img *image.RGBA, box TextBox, x, y, w, h float64) error {
	bw := int(math.Ceil(w))
	bh := int(math.Ceil(h))
	if bw <= 0 || bh <= 0 {
		return nil
	}
	face, err := faceForSize(box.Size)
	if err != nil {
		return err
	}
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	lineHeight := ascent + m.Descent.Ceil()

	buf := image.NewRGBA(image.Rect(0, 0, bw, bh))
	lines := wrapLines(face, box.Text, bw)
	d := &font.Drawer{Dst: buf, Src: image.NewUniform(box.Color), Face: face}
	for i, line := range lines {
		top := i * lineHeight
		if top >= bh {
			break
		}
		d.Dot = fixed.P(0, top+ascent)
		d.DrawString(line)
	}

	if box.Cursor >= 0 {
		line, prefix := caretPos(lines, box.Cursor)
		cx := (&font.Drawer{Face: face}).MeasureString(prefix).Ceil()
		top := line * lineHeight
		caret := color.RGBA{77, 77, 77, 255}
		for cy := top; cy < top+lineHeight && cy < bh; cy++ {
			if cx >= 0 && cx < bw {
				buf.SetRGBA(cx, cy, caret)
			}
		}
	}

	// Composite the isolated buffer at the wrap box corner.
	ox := round(x)
	oy := round(y)
	for py := 0; py < bh; py++ {
		for px := 0; px < bw; px++ {
			i := buf.PixOffset(px, py)
			a := buf.Pix[i+3]
			if a == 0 {
				continue
			}
			tx := ox + px
			ty := oy + py
			if tx < img.Rect.Min.X || ty < img.Rect.Min.Y || tx >= img.Rect.Max.X || ty >= img.Rect.Max.Y {
				continue
			}
			j := img.PixOffset(tx, ty)
			inv := uint32(255 - a)
			img.Pix[j] = uint8(uint32(buf.Pix[i]) + uint32(img.Pix[j])*inv/255)
			img.Pix[j+1] = uint8(uint32(buf.Pix[i+1]) + uint32(img.Pix[j+1])*inv/255)
			img.Pix[j+2] = uint8(uint32(buf.Pix[i+2]) + uint32(img.Pix[j+2])*inv/255)
			img.Pix[j+3] = uint8(uint32(a) + uint32(img.Pix[j+3])*inv/255)
		}
	}
	return nil
}
