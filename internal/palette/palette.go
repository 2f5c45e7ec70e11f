// Package palette provides the named annotation colors and color spec
// parsing for flags and configuration values.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/colornames"
)

// Color is a palette entry with a display name.
type Color struct {
	Name  string
	Color color.RGBA
}

// The classic Mac crayon set, warm row, cool row, neutrals.
var (
	mu      sync.RWMutex
	entries = []Color{
		{"Cayenne", color.RGBA{148, 17, 0, 255}},
		{"Maraschino", color.RGBA{255, 38, 0, 255}},
		{"Tangerine", color.RGBA{255, 147, 0, 255}},
		{"Lemon", color.RGBA{255, 251, 0, 255}},
		{"Lime", color.RGBA{142, 250, 0, 255}},
		{"Spring", color.RGBA{0, 249, 0, 255}},
		{"Turquoise", color.RGBA{0, 253, 255, 255}},
		{"Aqua", color.RGBA{0, 150, 255, 255}},
		{"Blueberry", color.RGBA{4, 51, 255, 255}},
		{"Grape", color.RGBA{148, 55, 255, 255}},
		{"Magenta", color.RGBA{255, 64, 255, 255}},
		{"Strawberry", color.RGBA{255, 47, 146, 255}},
		{"Licorice", color.RGBA{0, 0, 0, 255}},
		{"Iron", color.RGBA{64, 64, 64, 255}},
		{"Nickel", color.RGBA{128, 128, 128, 255}},
		{"Aluminum", color.RGBA{191, 191, 191, 255}},
		{"Snow", color.RGBA{255, 255, 255, 255}},
		{"Mocha", color.RGBA{154, 82, 0, 255}},
	}
)

// Colors returns a copy of the palette.
func Colors() []Color {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Color, len(entries))
	copy(out, entries)
	return out
}

// Ensure makes sure col is present in the palette and returns its index.
func Ensure(col color.RGBA, name string) int {
	mu.Lock()
	defer mu.Unlock()
	for idx, existing := range entries {
		if existing.Color == col {
			if name != "" && existing.Name == "" {
				entries[idx].Name = name
			}
			return idx
		}
	}
	if name == "" {
		name = fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
	}
	entries = append(entries, Color{Name: name, Color: col})
	return len(entries) - 1
}

// Parse resolves a color spec: a palette name, an SVG 1.1 color name, or
// a #rrggbb / #rrggbbaa hex value.
func Parse(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	for _, entry := range Colors() {
		if strings.EqualFold(entry.Name, spec) {
			return entry.Color, nil
		}
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") && (len(spec) == 7 || len(spec) == 9) {
		r, err := strconv.ParseUint(spec[1:3], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		g, err := strconv.ParseUint(spec[3:5], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		b, err := strconv.ParseUint(spec[5:7], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		a := uint64(255)
		if len(spec) == 9 {
			val, err := strconv.ParseUint(spec[7:9], 16, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("invalid color %q", s)
			}
			a = val
		}
		return color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

// Hex formats a color the way Parse accepts it, omitting the alpha
// component when it is opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
