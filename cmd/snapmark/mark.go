package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/mobile/event/key"

	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/export"
	"github.com/example/snapmark/internal/geometry"
	"github.com/example/snapmark/internal/paint"
	"github.com/example/snapmark/internal/palette"
)

// paintSpec is one parsed annotation from the command line.
type paintSpec struct {
	tool   paint.Kind
	points []geometry.Point
	text   string
}

// markCmd draws annotations onto an image through the editor.
type markCmd struct {
	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	colorSpec     string
	color         color.RGBA
	width         float64
	textSize      float64
	fill          bool
	transparency  float64
	centered      bool
	specs         []paintSpec
	*root
	fs *flag.FlagSet
}

func (m *markCmd) FlagSet() *flag.FlagSet {
	return m.fs
}

var markFlagNames = map[string]struct{}{
	"file":           {},
	"output":         {},
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
	"color":          {},
	"width":          {},
	"text-size":      {},
	"fill":           {},
	"transparency":   {},
	"centered":       {},
}

var markBoolFlags = map[string]struct{}{
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
	"fill":           {},
	"centered":       {},
}

// splitMarkArgs separates known flags from the annotation specs so
// flags may appear on either side of them.
func splitMarkArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "" {
			positionals = append(positionals, arg)
			continue
		}
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := markFlagNames[base]; !ok {
			positionals = append(positionals, arg)
			continue
		}
		// Normalise to single dash form for the flag parser.
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := markBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}

func parseMarkCmd(args []string, r *root) (*markCmd, error) {
	fs := flag.NewFlagSet("mark", flag.ExitOnError)
	m := &markCmd{root: r, fs: fs}
	fs.Usage = usageFunc(m)
	fs.StringVar(&m.file, "file", "", "input image file")
	fs.StringVar(&m.output, "output", "", "output file path, '-' for stdout (defaults to the input file)")
	fs.BoolVar(&m.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&m.fromClipboard, "from-clip", false, "read the input image from the clipboard (alias)")
	fs.BoolVar(&m.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&m.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.StringVar(&m.colorSpec, "color", "red", "stroke or fill color name or hex value")
	fs.Float64Var(&m.width, "width", r.config.LineSize, "stroke width in pixels")
	fs.Float64Var(&m.textSize, "text-size", r.config.TextSize, "text size in points")
	fs.BoolVar(&m.fill, "fill", r.config.FillShape, "fill shapes instead of stroking them")
	fs.Float64Var(&m.transparency, "transparency", r.config.Transparency, "alpha percentage applied to shape fills")
	fs.BoolVar(&m.centered, "centered", false, "grow shapes from the first point outwards")

	flagArgs, positionals, err := splitMarkArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: m}
	}
	for _, raw := range positionals {
		spec, err := parsePaintSpec(raw)
		if err != nil {
			return nil, err
		}
		m.specs = append(m.specs, spec)
	}
	colorVal, err := palette.Parse(m.colorSpec)
	if err != nil {
		return nil, err
	}
	m.color = colorVal
	if m.fromClipboard {
		if m.output == "" {
			if m.file != "" {
				m.output = m.file
			} else {
				return nil, fmt.Errorf("output file is required when reading from the clipboard")
			}
		}
	} else {
		if m.file == "" {
			return nil, fmt.Errorf("input file is required")
		}
		if m.output == "" {
			m.output = m.file
		}
	}
	return m, nil
}

// parsePaintSpec parses one tool:args annotation.
func parsePaintSpec(raw string) (paintSpec, error) {
	name, rest, found := strings.Cut(raw, ":")
	if !found {
		return paintSpec{}, fmt.Errorf("annotation %q needs tool:args", raw)
	}
	var spec paintSpec
	switch strings.ToLower(name) {
	case "brush":
		spec.tool = paint.Brush
	case "highlight", "highlighter":
		spec.tool = paint.Highlighter
	case "line":
		spec.tool = paint.Line
	case "arrow":
		spec.tool = paint.Arrow
	case "rect", "rectangle":
		spec.tool = paint.Rectangle
	case "ellipse", "circle":
		spec.tool = paint.Ellipse
	case "blur":
		spec.tool = paint.Blur
	case "text":
		spec.tool = paint.Text
	default:
		return paintSpec{}, fmt.Errorf("unsupported tool %q", name)
	}

	switch spec.tool {
	case paint.Brush, paint.Highlighter:
		for _, pair := range strings.Split(rest, ";") {
			pt, err := parsePoint(pair)
			if err != nil {
				return paintSpec{}, fmt.Errorf("%s: %w", name, err)
			}
			spec.points = append(spec.points, pt)
		}
		if len(spec.points) < 2 {
			return paintSpec{}, fmt.Errorf("%s requires at least two points", name)
		}
	case paint.Text:
		fields := strings.SplitN(rest, ",", 5)
		if len(fields) != 5 {
			return paintSpec{}, fmt.Errorf("text requires x0,y0,x1,y1,content")
		}
		from, err := parsePoint(fields[0] + "," + fields[1])
		if err != nil {
			return paintSpec{}, fmt.Errorf("text: %w", err)
		}
		to, err := parsePoint(fields[2] + "," + fields[3])
		if err != nil {
			return paintSpec{}, fmt.Errorf("text: %w", err)
		}
		if strings.TrimSpace(fields[4]) == "" {
			return paintSpec{}, fmt.Errorf("text content cannot be empty")
		}
		spec.points = []geometry.Point{from, to}
		spec.text = fields[4]
	default:
		fields := strings.Split(rest, ",")
		if len(fields) != 4 {
			return paintSpec{}, fmt.Errorf("%s requires x0,y0,x1,y1", name)
		}
		from, err := parsePoint(fields[0] + "," + fields[1])
		if err != nil {
			return paintSpec{}, fmt.Errorf("%s: %w", name, err)
		}
		to, err := parsePoint(fields[2] + "," + fields[3])
		if err != nil {
			return paintSpec{}, fmt.Errorf("%s: %w", name, err)
		}
		spec.points = []geometry.Point{from, to}
	}
	return spec, nil
}

func parsePoint(s string) (geometry.Point, error) {
	xs, ys, found := strings.Cut(strings.TrimSpace(s), ",")
	if !found {
		return geometry.Point{}, fmt.Errorf("invalid point %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid point %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid point %q", s)
	}
	return geometry.Pt(x, y), nil
}

func (m *markCmd) Run() error {
	src, err := m.loadSource()
	if err != nil {
		return err
	}
	e := editor.New(src)
	e.SetColor(m.color)
	e.SetLineWidth(m.width)
	e.SetTextSize(m.textSize)
	e.SetFill(m.fill)
	e.SetFillOpacity(m.transparency)
	var mods key.Modifiers
	if m.centered {
		mods = key.ModControl
	}

	for _, spec := range m.specs {
		e.SetTool(spec.tool)
		e.Start(spec.points[0])
		for _, pt := range spec.points[1:] {
			e.Update(pt, mods)
		}
		e.Release()
		if spec.tool == paint.Text {
			p := e.InProgress()
			if p == nil {
				return fmt.Errorf("text annotation dropped")
			}
			for _, r := range spec.text {
				p.InsertRune(r)
			}
			e.CommitText()
		}
	}

	if err := writeResult(m.output, e.Output(), m.root); err != nil {
		return err
	}
	if m.root != nil && m.root.config != nil && m.root.config.AutoSave {
		cfg := m.root.config
		saved, err := export.SaveToDir(cfg.SaveDir, cfg.SaveFilenameFormat, time.Now(), e.Output())
		if err != nil {
			return fmt.Errorf("auto save: %w", err)
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", saved)
		m.root.notifySave(saved)
	}
	if m.toClipboard {
		if err := clipboard.WriteImage(export.Flatten(e.Output())); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(m.output)
		if detail == "" || detail == "-" {
			detail = "image"
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		if m.root != nil {
			m.root.notifyCopy(detail)
		}
	}
	return nil
}

func (m *markCmd) loadSource() (image.Image, error) {
	if m.fromClipboard {
		img, err := clipboard.ReadImage()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return img, nil
	}
	return loadPNG(m.file)
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(f)
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing %q: %v", f.Name(), cerr)
		}
		return nil, err
	}
	if err := f.Close(); err != nil {
		log.Printf("error closing %q: %v", f.Name(), err)
	}
	return img, nil
}
