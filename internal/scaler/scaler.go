// Package scaler implements the Scale2x/EPX family of pixel doubling
// algorithms. They were designed for pixel art but suit screenshots for
// the same reasons: hard edges, limited colors, axis aligned features.
package scaler

import (
	"image"
)

func pixelAt(img *image.RGBA, x, y int) uint32 {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	p := img.Pix[i : i+4 : i+4]
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3])
}

func setPixel(img *image.RGBA, x, y int, v uint32) {
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+4 : i+4]
	p[0] = uint8(v >> 24)
	p[1] = uint8(v >> 16)
	p[2] = uint8(v >> 8)
	p[3] = uint8(v)
}

// equalThreshold compares two pixels by weighted luma distance so that
// anti-aliased edges still count as "same". threshold is in the 0..255
// range of a single channel.
func equalThreshold(a, b uint32, threshold int) bool {
	ra, ga, ba := int(a>>24&0xff), int(a>>16&0xff), int(a>>8&0xff)
	rb, gb, bb := int(b>>24&0xff), int(b>>16&0xff), int(b>>8&0xff)
	dr := ra - rb
	if dr < 0 {
		dr = -dr
	}
	dg := ga - gb
	if dg < 0 {
		dg = -dg
	}
	db := ba - bb
	if db < 0 {
		db = -db
	}
	return dr*299+dg*587+db*114 < threshold*1000
}

// Scale2x doubles src using the EPX rule: each pixel P with neighbors
// A (up), B (right), C (left), D (down) expands to a 2x2 block where a
// corner copies a neighbor only when the two adjacent neighbors agree and
// the opposing pair does not. Equality is exact pixel equality.
func Scale2x(src *image.RGBA) *image.RGBA {
	return scale2x(src, func(a, b uint32) bool { return a == b })
}

// Scale2xThreshold is Scale2x with luma-tolerant pixel comparison for
// anti-aliased content.
func Scale2xThreshold(src *image.RGBA, threshold int) *image.RGBA {
	return scale2x(src, func(a, b uint32) bool { return equalThreshold(a, b, threshold) })
}

func scale2x(src *image.RGBA, eq func(a, b uint32) bool) *image.RGBA {
	w := src.Rect.Dx()
	h := src.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w*2, h*2))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := pixelAt(src, x, y)
			a, b, c, d := p, p, p, p
			if y > 0 {
				a = pixelAt(src, x, y-1)
			}
			if x < w-1 {
				b = pixelAt(src, x+1, y)
			}
			if x > 0 {
				c = pixelAt(src, x-1, y)
			}
			if y < h-1 {
				d = pixelAt(src, x, y+1)
			}

			ca := eq(c, a)
			ab := eq(a, b)
			bd := eq(b, d)
			dc := eq(d, c)
			cd := eq(c, d)
			ac := eq(a, c)
			ba := eq(b, a)
			db := eq(d, b)

			o0, o1, o2, o3 := p, p, p, p
			if ca && !cd && !ab {
				o0 = a
			}
			if ab && !ac && !bd {
				o1 = b
			}
			if dc && !db && !ac {
				o2 = c
			}
			if bd && !ba && !dc {
				o3 = d
			}
			setPixel(dst, x*2, y*2, o0)
			setPixel(dst, x*2+1, y*2, o1)
			setPixel(dst, x*2, y*2+1, o2)
			setPixel(dst, x*2+1, y*2+1, o3)
		}
	}
	return dst
}

// Scale3x triples src using the full eight-neighbor Scale3x rule set.
// Edge and corner sub-pixels follow the diagonal consistency conditions,
// the center always stays the source pixel.
func Scale3x(src *image.RGBA) *image.RGBA {
	w := src.Rect.Dx()
	h := src.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w*3, h*3))
	at := func(x, y, fx, fy int) uint32 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return pixelAt(src, fx, fy)
		}
		return pixelAt(src, x, y)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := at(x-1, y-1, x, y)
			b := at(x, y-1, x, y)
			c := at(x+1, y-1, x, y)
			d := at(x-1, y, x, y)
			e := pixelAt(src, x, y)
			f := at(x+1, y, x, y)
			g := at(x-1, y+1, x, y)
			h8 := at(x, y+1, x, y)
			i := at(x+1, y+1, x, y)

			o := [9]uint32{e, e, e, e, e, e, e, e, e}
			if d == b && d != h8 && b != f {
				o[0] = d
			}
			if (d == b && d != h8 && b != f && e != c) ||
				(b == f && b != d && f != h8 && e != a) {
				o[1] = b
			}
			if b == f && b != d && f != h8 {
				o[2] = f
			}
			if (d == b && d != h8 && b != f && e != g) ||
				(d == h8 && d != b && h8 != f && e != a) {
				o[3] = d
			}
			if (b == f && b != d && f != h8 && e != i) ||
				(h8 == f && d != h8 && b != f && e != c) {
				o[5] = f
			}
			if d == h8 && d != b && h8 != f {
				o[6] = d
			}
			if (d == h8 && d != b && h8 != f && e != i) ||
				(h8 == f && d != h8 && b != f && e != g) {
				o[7] = h8
			}
			if h8 == f && d != h8 && b != f {
				o[8] = f
			}

			dx := x * 3
			dy := y * 3
			for k, v := range o {
				setPixel(dst, dx+k%3, dy+k/3, v)
			}
		}
	}
	return dst
}

// ScaleNx reaches any power-of-two magnification by repeated Scale2x
// passes, dropping intermediate buffers. A scale below 2 returns a
// verbatim copy; other scales round down to the nearest power of two.
func ScaleNx(src *image.RGBA, scale int) *image.RGBA {
	if scale < 2 {
		out := image.NewRGBA(image.Rect(0, 0, src.Rect.Dx(), src.Rect.Dy()))
		copyPixels(out, src)
		return out
	}
	current := src
	for scale >= 2 {
		current = Scale2x(current)
		scale /= 2
	}
	return current
}

// Viewport extracts the given region of src, clamped to the source
// bounds, and upscales just that. Cost follows the visible region rather
// than the whole canvas, which is what keeps high zoom redraw cheap.
// Returns nil when the clamped region is empty.
func Viewport(src *image.RGBA, region image.Rectangle, scale int) *image.RGBA {
	clamped := region.Intersect(src.Rect)
	if clamped.Empty() {
		return nil
	}
	sub := image.NewRGBA(image.Rect(0, 0, clamped.Dx(), clamped.Dy()))
	for y := 0; y < clamped.Dy(); y++ {
		si := src.PixOffset(clamped.Min.X, clamped.Min.Y+y)
		di := sub.PixOffset(0, y)
		copy(sub.Pix[di:di+clamped.Dx()*4], src.Pix[si:si+clamped.Dx()*4])
	}
	return ScaleNx(sub, scale)
}

func copyPixels(dst, src *image.RGBA) {
	w := src.Rect.Dx()
	for y := 0; y < src.Rect.Dy(); y++ {
		si := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		di := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		copy(dst.Pix[di:di+w*4], src.Pix[si:si+w*4])
	}
}
