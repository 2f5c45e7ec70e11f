package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/snapmark/internal/palette"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	SaveDir            string
	SaveFilenameFormat string
	UpscaleCommand     string
	LineSize           float64
	TextSize           float64
	TextFont           string
	FillShape          bool
	Transparency       float64
	AutoSave           bool
	EarlyExit          bool
	CustomColor        color.RGBA
	Notify             Notify
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		SaveDir:            defaultSaveDir(),
		SaveFilenameFormat: "snapmark-%Y%m%d-%H%M%S.png",
		LineSize:           5,
		TextSize:           16,
		TextFont:           "sans-serif",
		Transparency:       50,
		CustomColor:        color.RGBA{255, 38, 0, 255},
	}
}

func defaultSaveDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Pictures")
}

// Validate clamps numeric settings to their allowed ranges.
func (c *Config) Validate() {
	if c.LineSize < 1 {
		c.LineSize = 1
	}
	if c.LineSize > 50 {
		c.LineSize = 50
	}
	if c.TextSize < 10 {
		c.TextSize = 10
	}
	if c.TextSize > 50 {
		c.TextSize = 50
	}
	if c.Transparency < 5 {
		c.Transparency = 5
	}
	if c.Transparency > 95 {
		c.Transparency = 95
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.SaveFilenameFormat != "" {
		fmt.Fprintf(&sb, "save_filename_format = %s\n", c.SaveFilenameFormat)
	}
	if c.UpscaleCommand != "" {
		fmt.Fprintf(&sb, "upscale_command = %s\n", c.UpscaleCommand)
	}
	fmt.Fprintf(&sb, "line_size = %g\n", c.LineSize)
	fmt.Fprintf(&sb, "text_size = %g\n", c.TextSize)
	if c.TextFont != "" {
		fmt.Fprintf(&sb, "text_font = %s\n", c.TextFont)
	}
	fmt.Fprintf(&sb, "fill_shape = %v\n", c.FillShape)
	fmt.Fprintf(&sb, "transparency = %g\n", c.Transparency)
	fmt.Fprintf(&sb, "auto_save = %v\n", c.AutoSave)
	fmt.Fprintf(&sb, "early_exit = %v\n", c.EarlyExit)
	fmt.Fprintf(&sb, "custom_color = %s\n", palette.Hex(c.CustomColor))
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	return sb.String()
}
