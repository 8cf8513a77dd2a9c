package ink

import "testing"

func TestToPixel(t *testing.T) {
	tests := []struct {
		name    string
		point   Point
		logical Size
		pixel   Size
		want    Point
	}{
		{
			name:    "center of a 2x/3x display",
			point:   Pt(50, 50),
			logical: Size{Width: 100, Height: 100},
			pixel:   Size{Width: 200, Height: 300},
			want:    Pt(100, 150),
		},
		{
			name:    "identity mapping",
			point:   Pt(12.5, 99),
			logical: Size{Width: 100, Height: 100},
			pixel:   Size{Width: 100, Height: 100},
			want:    Pt(12.5, 99),
		},
		{
			name:    "origin stays at origin",
			point:   Pt(0, 0),
			logical: Size{Width: 100, Height: 100},
			pixel:   Size{Width: 200, Height: 300},
			want:    Pt(0, 0),
		},
		{
			name:    "downscale",
			point:   Pt(100, 100),
			logical: Size{Width: 200, Height: 200},
			pixel:   Size{Width: 100, Height: 100},
			want:    Pt(50, 50),
		},
		{
			name:    "non-uniform axes",
			point:   Pt(10, 10),
			logical: Size{Width: 100, Height: 50},
			pixel:   Size{Width: 300, Height: 300},
			want:    Pt(30, 60),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToPixel(tt.point, tt.logical, tt.pixel)
			if !ok {
				t.Fatal("ToPixel reported an invalid mapping")
			}
			if got != tt.want {
				t.Errorf("ToPixel(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestToPixelDegenerateLogicalSize(t *testing.T) {
	pixel := Size{Width: 200, Height: 300}

	for _, logical := range []Size{
		{},
		{Width: 0, Height: 100},
		{Width: 100, Height: 0},
		{Width: -1, Height: 100},
		{Width: 100, Height: -1},
	} {
		got, ok := ToPixel(Pt(50, 50), logical, pixel)
		if ok {
			t.Errorf("ToPixel with logical %v reported ok", logical)
		}
		if got != (Point{}) {
			t.Errorf("ToPixel with logical %v = %v, want zero point", logical, got)
		}
	}
}

func TestSizeValid(t *testing.T) {
	tests := []struct {
		size Size
		want bool
	}{
		{Size{Width: 100, Height: 100}, true},
		{Size{Width: 0.5, Height: 0.5}, true},
		{Size{}, false},
		{Size{Width: 100}, false},
		{Size{Height: 100}, false},
		{Size{Width: -100, Height: -100}, false},
	}

	for _, tt := range tests {
		if got := tt.size.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.size, got, tt.want)
		}
	}
}
