package upscale

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"
	"time"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestValidate(t *testing.T) {
	cases := []struct {
		template string
		wantErr  bool
	}{
		{"upscaler -i %INPUT% -o %OUTPUT%", false},
		{"upscaler %INPUT%", true},
		{"upscaler %OUTPUT%", true},
		{"", true},
	}
	for _, tc := range cases {
		err := Command{Template: tc.template}.Validate()
		if tc.wantErr && !errors.Is(err, ErrNoPlaceholders) {
			t.Errorf("Validate(%q) = %v, want ErrNoPlaceholders", tc.template, err)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("Validate(%q) = %v, want nil", tc.template, err)
		}
	}
}

func TestRunSubstitutesAndDecodes(t *testing.T) {
	var gotLine string
	restore := SetRunShellForTests(func(ctx context.Context, line string) error {
		gotLine = line
		// Stand in for the external tool: copy input to output.
		parts := strings.Fields(line)
		data, err := os.ReadFile(parts[1])
		if err != nil {
			return err
		}
		return os.WriteFile(parts[2], data, 0o600)
	})
	defer restore()

	cmd := Command{Template: "copy %INPUT% %OUTPUT%"}
	out, err := cmd.Run(context.Background(), solid(3, 3, color.RGBA{10, 20, 30, 255}))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(gotLine, "%INPUT%") || strings.Contains(gotLine, "%OUTPUT%") {
		t.Fatalf("placeholders not substituted: %q", gotLine)
	}
	b := out.Bounds()
	if b.Dx() != 3 || b.Dy() != 3 {
		t.Fatalf("result size = %v, want 3x3", b)
	}

	// The temp files named in the command line must be gone again.
	for _, name := range strings.Fields(gotLine)[1:] {
		if _, err := os.Stat(name); !os.IsNotExist(err) {
			t.Errorf("temp file %s not removed", name)
		}
	}
}

func TestRunCommandFailure(t *testing.T) {
	restore := SetRunShellForTests(func(ctx context.Context, line string) error {
		return errors.New("exit status 1")
	})
	defer restore()

	cmd := Command{Template: "fail %INPUT% %OUTPUT%"}
	if _, err := cmd.Run(context.Background(), solid(1, 1, color.RGBA{})); err == nil {
		t.Fatal("expected error from failing command")
	}
}

func TestRunMissingOutput(t *testing.T) {
	restore := SetRunShellForTests(func(ctx context.Context, line string) error {
		// Succeed without producing the output file.
		return nil
	})
	defer restore()

	cmd := Command{Template: "noop %INPUT% %OUTPUT%"}
	if _, err := cmd.Run(context.Background(), solid(1, 1, color.RGBA{})); err == nil {
		t.Fatal("expected error when the command writes no output")
	}
}

func TestRunRejectsBadTemplate(t *testing.T) {
	cmd := Command{Template: "upscaler"}
	if _, err := cmd.Run(context.Background(), solid(1, 1, color.RGBA{})); !errors.Is(err, ErrNoPlaceholders) {
		t.Fatalf("err = %v, want ErrNoPlaceholders", err)
	}
}

func TestRunnerLatestWins(t *testing.T) {
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	restore := SetRunShellForTests(func(ctx context.Context, line string) error {
		started <- struct{}{}
		select {
		case <-release:
		case <-ctx.Done():
			return ctx.Err()
		}
		parts := strings.Fields(line)
		data, err := os.ReadFile(parts[1])
		if err != nil {
			return err
		}
		return os.WriteFile(parts[2], data, 0o600)
	})
	defer restore()

	r := NewRunner(Command{Template: "copy %INPUT% %OUTPUT%"})
	first := r.Submit(context.Background(), solid(2, 2, color.RGBA{1, 2, 3, 255}))
	<-started
	second := r.Submit(context.Background(), solid(2, 2, color.RGBA{4, 5, 6, 255}))
	<-started
	close(release)

	if res, ok := <-first; ok {
		t.Fatalf("superseded request delivered a result: %+v", res)
	}
	res, ok := <-second
	if !ok {
		t.Fatal("latest request delivered no result")
	}
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if res.Image == nil {
		t.Fatal("latest request returned nil image")
	}
}

func TestRunnerStopCancels(t *testing.T) {
	restore := SetRunShellForTests(func(ctx context.Context, line string) error {
		<-ctx.Done()
		return ctx.Err()
	})
	defer restore()

	r := NewRunner(Command{Template: "hang %INPUT% %OUTPUT%"})
	ch := r.Submit(context.Background(), solid(1, 1, color.RGBA{}))
	r.Stop()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("cancelled request delivered a result")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled request never finished")
	}
}

func TestRoundTripPNG(t *testing.T) {
	// Sanity check the temp file encoding path with a real decode.
	img := solid(4, 4, color.RGBA{200, 100, 50, 255})
	restore := SetRunShellForTests(func(ctx context.Context, line string) error {
		parts := strings.Fields(line)
		f, err := os.Open(parts[1])
		if err != nil {
			return err
		}
		defer f.Close()
		decoded, err := png.Decode(f)
		if err != nil {
			return err
		}
		out, err := os.Create(parts[2])
		if err != nil {
			return err
		}
		defer out.Close()
		return png.Encode(out, decoded)
	})
	defer restore()

	out, err := Command{Template: "roundtrip %INPUT% %OUTPUT%"}.Run(context.Background(), img)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := out.At(2, 2).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 || a>>8 != 255 {
		t.Fatalf("pixel = %d %d %d %d, want 200 100 50 255", r>>8, g>>8, b>>8, a>>8)
	}
}
