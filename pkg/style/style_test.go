package style

import (
	"image/color"
	"testing"
)

func TestRoundedEyeFallsBackToSquare(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		want   EyeShapeKind
	}{
		{name: "positive radius", radius: 12, want: EyeRounded},
		{name: "zero radius", radius: 0, want: EyeSquare},
		{name: "negative radius", radius: -3, want: EyeSquare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundedEye(tt.radius).Kind(); got != tt.want {
				t.Errorf("RoundedEye(%v).Kind() = %v, want %v", tt.radius, got, tt.want)
			}
		})
	}
}

func TestNormalizedFillsDefaults(t *testing.T) {
	s := Style{}.Normalized()
	if s.EyeColor == nil || s.ModuleColor == nil || s.Background == nil {
		t.Error("Normalized() should fill nil colors")
	}
	if s.LightColor != nil {
		t.Error("Normalized() should leave LightColor nil")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{name: "six digit", in: "#1a2b3c", want: color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 0xff}},
		{name: "no hash", in: "ff0000", want: color.RGBA{R: 0xff, A: 0xff}},
		{name: "short form", in: "#fff", want: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{name: "with alpha", in: "#00000080", want: color.RGBA{A: 0x80}},
		{name: "bad length", in: "#12345", wantErr: true},
		{name: "bad digits", in: "#zzzzzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexString(t *testing.T) {
	if got := HexString(color.RGBA{R: 0x12, G: 0xab, B: 0xef, A: 0xff}); got != "#12abef" {
		t.Errorf("HexString() = %q, want #12abef", got)
	}
}

func TestIsWhite(t *testing.T) {
	if !IsWhite(color.White) {
		t.Error("color.White should be white")
	}
	if IsWhite(color.RGBA{R: 0xff, G: 0xff, B: 0xfe, A: 0xff}) {
		t.Error("near-white should not count as white")
	}
	if IsWhite(nil) {
		t.Error("nil should not count as white")
	}
}

func TestIsTransparent(t *testing.T) {
	if !IsTransparent(nil) {
		t.Error("nil should be transparent")
	}
	if !IsTransparent(color.RGBA{}) {
		t.Error("zero alpha should be transparent")
	}
	if IsTransparent(color.Black) {
		t.Error("opaque black should not be transparent")
	}
}
