package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mobile/event/key"

	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/geometry"
	"github.com/example/snapmark/internal/paint"
)

// cropCmd cuts an image down to a dragged rectangle.
type cropCmd struct {
	file     string
	output   string
	aspect   string
	centered bool
	coords   []float64
	*root
	fs *flag.FlagSet
}

func (c *cropCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseCropCmd(args []string, r *root) (*cropCmd, error) {
	fs := flag.NewFlagSet("crop", flag.ExitOnError)
	c := &cropCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "input image file")
	fs.StringVar(&c.output, "output", "", "output file path, '-' for stdout (defaults to the input file)")
	fs.StringVar(&c.aspect, "aspect", "free", "aspect constraint: free, 16:9, 4:3, square or W:H")
	fs.BoolVar(&c.centered, "centered", false, "grow the region from the first point outwards")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	if c.output == "" {
		c.output = c.file
	}
	if fs.NArg() != 4 {
		return nil, &UsageError{of: c}
	}
	for _, raw := range fs.Args() {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", raw)
		}
		c.coords = append(c.coords, v)
	}
	return c, nil
}

// parseAspect maps the -aspect flag onto a preset.
func parseAspect(s string) (geometry.AspectPreset, int, int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "free":
		return geometry.AspectFree, 0, 0, nil
	case "16:9":
		return geometry.Aspect16x9, 0, 0, nil
	case "4:3":
		return geometry.Aspect4x3, 0, 0, nil
	case "square", "1:1":
		return geometry.AspectSquare, 0, 0, nil
	}
	ws, hs, found := strings.Cut(s, ":")
	if !found {
		return geometry.AspectFree, 0, 0, fmt.Errorf("invalid aspect %q", s)
	}
	w, werr := strconv.Atoi(strings.TrimSpace(ws))
	h, herr := strconv.Atoi(strings.TrimSpace(hs))
	if werr != nil || herr != nil || w < 0 || h < 0 {
		return geometry.AspectFree, 0, 0, fmt.Errorf("invalid aspect %q", s)
	}
	return geometry.AspectCustom, w, h, nil
}

func (c *cropCmd) Run() error {
	preset, customW, customH, err := parseAspect(c.aspect)
	if err != nil {
		return err
	}
	src, err := loadPNG(c.file)
	if err != nil {
		return err
	}
	e := editor.New(src)
	e.SetAspect(preset, customW, customH)
	e.SetTool(paint.Crop)

	var mods key.Modifiers
	if c.centered {
		mods = key.ModControl
	}
	e.Start(geometry.Pt(c.coords[0], c.coords[1]))
	e.Update(geometry.Pt(c.coords[2], c.coords[3]), mods)
	e.Release()
	if err := e.ApplyCrop(); err != nil {
		return err
	}

	return writeResult(c.output, e.Output(), c.root)
}
