package ink

import (
	"image/color"
	"testing"
)

// Verify at compile time that RGBA implements color.Color.
var _ color.Color = RGBA{}

func TestRGBA_ColorInterface(t *testing.T) {
	tests := []struct {
		name                       string
		c                          RGBA
		wantR, wantG, wantB, wantA uint32
	}{
		{
			name:  "opaque black",
			c:     Black,
			wantR: 0, wantG: 0, wantB: 0, wantA: 65535,
		},
		{
			name:  "opaque white",
			c:     White,
			wantR: 65535, wantG: 65535, wantB: 65535, wantA: 65535,
		},
		{
			name:  "opaque red",
			c:     Red,
			wantR: 65535, wantG: 0, wantB: 0, wantA: 65535,
		},
		{
			name:  "transparent",
			c:     RGBA{0, 0, 0, 0},
			wantR: 0, wantG: 0, wantB: 0, wantA: 0,
		},
		{
			name:  "50% alpha red",
			c:     RGBA{1, 0, 0, 0.5},
			wantR: 32767, wantG: 0, wantB: 0, wantA: 32767,
		},
		{
			name:  "out of range clamps",
			c:     RGBA{2, -1, 0.5, 1},
			wantR: 65535, wantG: 0, wantB: 32768, wantA: 65535,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			// Allow ±1 tolerance for floating point
			if diff(r, tt.wantR) > 1 || diff(g, tt.wantG) > 1 || diff(b, tt.wantB) > 1 || diff(a, tt.wantA) > 1 {
				t.Errorf("RGBA() = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					r, g, b, a, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}

func TestRGBA_StrokeStyleColor(t *testing.T) {
	// Conversion through color.RGBAModel is how blending code consumes
	// an ink.RGBA as a color.Color.
	got := color.RGBAModel.Convert(Red).(color.RGBA)
	want := color.RGBA{R: 255, A: 255}
	if got != want {
		t.Errorf("converted red = %v, want %v", got, want)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#fff", White},
		{"000", Black},
		{"#f00", Red},
		{"#ff0000", Red},
		{"#ff000080", RGBA{1, 0, 0, float64(0x80) / 255}},
		{"f00c", RGBA{1, 0, 0, float64(0xcc) / 255}},
		{"bogus", Black},
		{"", Black},
	}

	const tolerance = 0.001
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Hex(tt.in)
			if absDiff(got.R, tt.want.R) > tolerance ||
				absDiff(got.G, tt.want.G) > tolerance ||
				absDiff(got.B, tt.want.B) > tolerance ||
				absDiff(got.A, tt.want.A) > tolerance {
				t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRGBA_Roundtrip(t *testing.T) {
	// ink.RGBA → color.Color → FromColor → ink.RGBA
	original := RGBA{0.8, 0.3, 0.5, 1.0}
	roundtripped := FromColor(original)

	const tolerance = 0.001
	if absDiff(original.R, roundtripped.R) > tolerance ||
		absDiff(original.G, roundtripped.G) > tolerance ||
		absDiff(original.B, roundtripped.B) > tolerance ||
		absDiff(original.A, roundtripped.A) > tolerance {
		t.Errorf("roundtrip: %v → %v", original, roundtripped)
	}
}

func TestRGBA_Lerp(t *testing.T) {
	mid := Black.Lerp(White, 0.5)
	if mid.R != 0.5 || mid.G != 0.5 || mid.B != 0.5 || mid.A != 1 {
		t.Errorf("Black.Lerp(White, 0.5) = %v, want mid gray", mid)
	}

	if got := Red.Lerp(Blue, 0); got != Red {
		t.Errorf("Lerp(t=0) = %v, want start color", got)
	}
	if got := Red.Lerp(Blue, 1); got != Blue {
		t.Errorf("Lerp(t=1) = %v, want end color", got)
	}
}

func diff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
