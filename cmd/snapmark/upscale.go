package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/draw"

	"github.com/example/snapmark/internal/scaler"
	"github.com/example/snapmark/internal/upscale"
)

// upscaleCmd enlarges an image, either with the built-in scaler or by
// piping it through an external command.
type upscaleCmd struct {
	file      string
	output    string
	command   string
	factor    int
	threshold int
	*root
	fs *flag.FlagSet
}

func (u *upscaleCmd) FlagSet() *flag.FlagSet {
	return u.fs
}

func parseUpscaleCmd(args []string, r *root) (*upscaleCmd, error) {
	fs := flag.NewFlagSet("upscale", flag.ExitOnError)
	u := &upscaleCmd{root: r, fs: fs}
	fs.Usage = usageFunc(u)
	fs.StringVar(&u.file, "file", "", "input image file")
	fs.StringVar(&u.output, "output", "", "output file path, '-' for stdout (defaults to the input file)")
	fs.StringVar(&u.command, "command", r.config.UpscaleCommand, "external command with %INPUT% and %OUTPUT% placeholders")
	fs.IntVar(&u.factor, "factor", 0, "built-in scaling factor, rounded down to a power of two")
	fs.IntVar(&u.threshold, "threshold", 0, "merge pixels whose luminance differs less than this (built-in scaler, 2x only)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if u.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	if u.output == "" {
		u.output = u.file
	}
	if u.factor <= 0 && u.command == "" {
		return nil, fmt.Errorf("either -factor or an upscale command is required")
	}
	if u.factor > 0 && u.command != "" {
		return nil, fmt.Errorf("-factor and -command are mutually exclusive")
	}
	if u.threshold < 0 {
		return nil, fmt.Errorf("threshold must not be negative")
	}
	return u, nil
}

func (u *upscaleCmd) Run() error {
	src, err := loadPNG(u.file)
	if err != nil {
		return err
	}
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)

	var result image.Image
	if u.factor > 0 {
		if u.threshold > 0 {
			result = scaler.Scale2xThreshold(rgba, u.threshold)
		} else {
			result = scaler.ScaleNx(rgba, u.factor)
		}
	} else {
		cmd := upscale.Command{Template: u.command}
		out, err := cmd.Run(context.Background(), rgba)
		if err != nil {
			return err
		}
		result = out
	}
	return writeResult(u.output, result, u.root)
}
