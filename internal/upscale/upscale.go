// Package upscale pipes an image through a user-configured external
// command. The command template names its input and output files with
// %INPUT% and %OUTPUT% placeholders; both files are temporary PNGs that
// are removed again once the run finishes.
package upscale

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"
)

// ErrNoPlaceholders reports a command template missing the %INPUT% or
// %OUTPUT% placeholder.
var ErrNoPlaceholders = errors.New("upscale: command must contain %INPUT% and %OUTPUT%")

const (
	inputPlaceholder  = "%INPUT%"
	outputPlaceholder = "%OUTPUT%"
)

// Command wraps an external upscaler invocation.
type Command struct {
	// Template is the shell command with %INPUT% and %OUTPUT%
	// placeholders, e.g. "waifu2x -i %INPUT% -o %OUTPUT%".
	Template string
}

// Validate checks that the template references both placeholder files.
func (c Command) Validate() error {
	if !strings.Contains(c.Template, inputPlaceholder) || !strings.Contains(c.Template, outputPlaceholder) {
		return ErrNoPlaceholders
	}
	return nil
}

// runShell executes a shell command line. Swapped out in tests.
var runShell = func(ctx context.Context, line string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", line)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// SetRunShellForTests replaces the shell runner and returns a restore
// function.
func SetRunShellForTests(fn func(ctx context.Context, line string) error) func() {
	old := runShell
	runShell = fn
	return func() { runShell = old }
}

// Run writes img to a temporary PNG, runs the command with the
// placeholders substituted and decodes the PNG the command produced.
// Both temporary files are removed regardless of the outcome.
func (c Command) Run(ctx context.Context, img image.Image) (image.Image, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	in, err := os.CreateTemp("", "upscale-in-*.png")
	if err != nil {
		return nil, fmt.Errorf("create input file: %w", err)
	}
	defer os.Remove(in.Name())
	out, err := os.CreateTemp("", "upscale-out-*.png")
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("create output file: %w", err)
	}
	defer os.Remove(out.Name())
	out.Close()

	if err := png.Encode(in, img); err != nil {
		in.Close()
		return nil, fmt.Errorf("encode input: %w", err)
	}
	if err := in.Close(); err != nil {
		return nil, fmt.Errorf("write input: %w", err)
	}

	line := strings.ReplaceAll(c.Template, inputPlaceholder, in.Name())
	line = strings.ReplaceAll(line, outputPlaceholder, out.Name())
	if err := runShell(ctx, line); err != nil {
		return nil, fmt.Errorf("run %q: %w", c.Template, err)
	}

	f, err := os.Open(out.Name())
	if err != nil {
		return nil, fmt.Errorf("open result: %w", err)
	}
	defer f.Close()
	result, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return result, nil
}
