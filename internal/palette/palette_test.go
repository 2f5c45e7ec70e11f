package palette

import (
	"image/color"
	"testing"
)

func TestParsePaletteName(t *testing.T) {
	c, err := Parse("Maraschino")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.RGBA{255, 38, 0, 255}) {
		t.Errorf("Maraschino = %v", c)
	}
	if _, err := Parse("strawberry"); err != nil {
		t.Errorf("palette lookup should be case insensitive: %v", err)
	}
}

func TestParseSVGName(t *testing.T) {
	c, err := Parse("rebeccapurple")
	if err != nil {
		t.Fatal(err)
	}
	if c.A != 255 {
		t.Errorf("expected opaque color, got %v", c)
	}
}

func TestParseHex(t *testing.T) {
	c, err := Parse("#10203040")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.RGBA{0x10, 0x20, 0x30, 0x40}) {
		t.Errorf("got %v", c)
	}
	if _, err := Parse("#12345"); err == nil {
		t.Error("expected error for odd hex length")
	}
	if _, err := Parse(""); err == nil {
		t.Error("expected error for empty spec")
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := color.RGBA{1, 2, 3, 255}
	got, err := Parse(Hex(c))
	if err != nil {
		t.Fatal(err)
	}
	if got != c {
		t.Errorf("round trip = %v, want %v", got, c)
	}
}

func TestEnsure(t *testing.T) {
	n := len(Colors())
	c := color.RGBA{12, 34, 56, 255}
	idx := Ensure(c, "Test")
	if idx != n {
		t.Errorf("index = %d, want %d", idx, n)
	}
	if again := Ensure(c, ""); again != idx {
		t.Errorf("second Ensure = %d, want %d", again, idx)
	}
}
