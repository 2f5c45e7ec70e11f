// Package redact irreversibly pixelates a region of an image by
// replacing fixed-size blocks with their average color. Unlike a
// gaussian blur the original pixel values cannot be recovered.
package redact

import (
	"errors"
	"image"
	"image/draw"
)

// ErrUnsupportedFormat reports an input pixel format the filter cannot
// process. Callers must not fall back to partial pixelation.
var ErrUnsupportedFormat = errors.New("redact: unsupported pixel format")

// blockSize is the pixelation block edge in logical pixels. It is scaled
// by the device pixel ratio and never drops below 4 physical pixels.
const blockSize = 12

// Pixelate averages blockSize squares of img inside rect and returns a
// new buffer holding just the redacted region at device pixel extent.
// rect is in logical coordinates, deviceScale converts to physical
// pixels. img is never written. Only RGBA and NRGBA inputs are accepted.
func Pixelate(img image.Image, x, y, w, h float64, deviceScale float64) (*image.RGBA, error) {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
	default:
		return nil, ErrUnsupportedFormat
	}
	if deviceScale <= 0 {
		deviceScale = 1
	}

	b := img.Bounds()
	work := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(work, work.Bounds(), img, b.Min, draw.Src)

	width := work.Rect.Dx()
	height := work.Rect.Dy()
	startX := clamp(int(x*deviceScale), 0, width)
	startY := clamp(int(y*deviceScale), 0, height)
	endX := clamp(int((x+w)*deviceScale), 0, width)
	endY := clamp(int((y+h)*deviceScale), 0, height)

	scaled := int(blockSize * deviceScale)
	if scaled < 4 {
		scaled = 4
	}

	for by := startY; by < endY; by += scaled {
		for bx := startX; bx < endX; bx += scaled {
			blockEndY := min(by+scaled, endY)
			blockEndX := min(bx+scaled, endX)

			var sumR, sumG, sumB, sumA uint64
			count := uint64(0)
			for py := by; py < blockEndY; py++ {
				i := work.PixOffset(bx, py)
				for px := bx; px < blockEndX; px++ {
					sumR += uint64(work.Pix[i])
					sumG += uint64(work.Pix[i+1])
					sumB += uint64(work.Pix[i+2])
					sumA += uint64(work.Pix[i+3])
					i += 4
					count++
				}
			}
			if count == 0 {
				continue
			}
			r := uint8(sumR / count)
			g := uint8(sumG / count)
			bl := uint8(sumB / count)
			a := uint8(sumA / count)
			for py := by; py < blockEndY; py++ {
				i := work.PixOffset(bx, py)
				for px := bx; px < blockEndX; px++ {
					work.Pix[i] = r
					work.Pix[i+1] = g
					work.Pix[i+2] = bl
					work.Pix[i+3] = a
					i += 4
				}
			}
		}
	}

	outW := int(w * deviceScale)
	outH := int(h * deviceScale)
	out := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.Draw(out, out.Bounds(), work, image.Pt(int(x*deviceScale), int(y*deviceScale)), draw.Src)
	return out, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
