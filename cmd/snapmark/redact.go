package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"strconv"

	"github.com/example/snapmark/internal/redact"
)

// redactCmd pixelates a region of an image.
type redactCmd struct {
	file   string
	output string
	scale  float64
	coords []float64
	*root
	fs *flag.FlagSet
}

func (d *redactCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseRedactCmd(args []string, r *root) (*redactCmd, error) {
	fs := flag.NewFlagSet("redact", flag.ExitOnError)
	d := &redactCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "input image file")
	fs.StringVar(&d.output, "output", "", "output file path, '-' for stdout (defaults to the input file)")
	fs.Float64Var(&d.scale, "scale", 1, "device pixels per image unit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if d.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	if d.output == "" {
		d.output = d.file
	}
	if d.scale <= 0 {
		return nil, fmt.Errorf("scale must be positive")
	}
	if fs.NArg() != 4 {
		return nil, &UsageError{of: d}
	}
	for _, raw := range fs.Args() {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", raw)
		}
		d.coords = append(d.coords, v)
	}
	if d.coords[2] <= 0 || d.coords[3] <= 0 {
		return nil, fmt.Errorf("width and height must be positive")
	}
	return d, nil
}

func (d *redactCmd) Run() error {
	src, err := loadPNG(d.file)
	if err != nil {
		return err
	}
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)

	x, y, w, h := d.coords[0], d.coords[1], d.coords[2], d.coords[3]
	block, err := redact.Pixelate(rgba, x, y, w, h, d.scale)
	if err != nil {
		return fmt.Errorf("pixelate: %w", err)
	}
	target := image.Rect(int(x*d.scale), int(y*d.scale),
		int(x*d.scale)+block.Rect.Dx(), int(y*d.scale)+block.Rect.Dy())
	draw.Draw(rgba, target, block, block.Rect.Min, draw.Src)

	return writeResult(d.output, rgba, d.root)
}
