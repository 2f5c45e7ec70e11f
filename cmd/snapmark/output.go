package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/example/snapmark/internal/export"
)

// writeResult saves a PNG to output ('-' for stdout) and sends the save
// notification when one is enabled.
func writeResult(output string, img image.Image, r *root) error {
	if err := export.WritePNG(output, img); err != nil {
		return err
	}
	if output == "-" {
		fmt.Fprintln(os.Stderr, "wrote PNG data to stdout")
		return nil
	}
	saved := output
	if abs, err := filepath.Abs(output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	if r != nil {
		r.notifySave(saved)
	}
	return nil
}
