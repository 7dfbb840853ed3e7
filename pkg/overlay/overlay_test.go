package overlay

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/qrink/qrink/pkg/style"
)

const eps = 1e-9

func TestComputeSizeRules(t *testing.T) {
	tests := []struct {
		name         string
		origW, origH float64
		reqW, reqH   float64
		surfW, surfH float64
		wantW, wantH float64
	}{
		{
			name:  "explicit size used verbatim",
			origW: 100, origH: 50,
			reqW: 80, reqH: 40,
			surfW: 400, surfH: 400,
			wantW: 80, wantH: 40,
		},
		{
			name:  "explicit size ignores aspect",
			origW: 100, origH: 50,
			reqW: 60, reqH: 60,
			surfW: 400, surfH: 400,
			wantW: 60, wantH: 60,
		},
		{
			name:  "single width side scales proportionally",
			origW: 200, origH: 100,
			reqW: 50, reqH: 0,
			surfW: 400, surfH: 400,
			wantW: 50, wantH: 25,
		},
		{
			name:  "single height side scales proportionally",
			origW: 100, origH: 200,
			reqW: 0, reqH: 80,
			surfW: 400, surfH: 400,
			wantW: 40, wantH: 80,
		},
		{
			name:  "default quarter of shortest side",
			origW: 200, origH: 100,
			reqW: 0, reqH: 0,
			surfW: 400, surfH: 600,
			wantW: 100, wantH: 50,
		},
		{
			name:  "default uses shortest surface side",
			origW: 100, origH: 100,
			reqW: 0, reqH: 0,
			surfW: 800, surfH: 200,
			wantW: 50, wantH: 50,
		},
		{
			name:  "degenerate original yields zero",
			origW: 0, origH: 0,
			reqW: 0, reqH: 0,
			surfW: 400, surfH: 400,
			wantW: 0, wantH: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Compute(tt.origW, tt.origH, tt.reqW, tt.reqH, tt.surfW, tt.surfH)
			if math.Abs(p.W-tt.wantW) > eps || math.Abs(p.H-tt.wantH) > eps {
				t.Errorf("Compute() size = (%v, %v), want (%v, %v)", p.W, p.H, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestComputeCentering(t *testing.T) {
	tests := []struct {
		name         string
		reqW, reqH   float64
		surfW, surfH float64
	}{
		{name: "square surface", surfW: 400, surfH: 400},
		{name: "wide surface", surfW: 800, surfH: 300},
		{name: "explicit size", reqW: 120, reqH: 90, surfW: 500, surfH: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Compute(160, 120, tt.reqW, tt.reqH, tt.surfW, tt.surfH)
			if math.Abs(p.X+p.W/2-tt.surfW/2) > eps {
				t.Errorf("horizontal center = %v, want %v", p.X+p.W/2, tt.surfW/2)
			}
			if math.Abs(p.Y+p.H/2-tt.surfH/2) > eps {
				t.Errorf("vertical center = %v, want %v", p.Y+p.H/2, tt.surfH/2)
			}
		})
	}
}

func TestPrepare(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))

	t.Run("nil image skipped", func(t *testing.T) {
		img, p := Prepare(nil, style.ImageStyle{}, 400, 400)
		if img != nil || p != (Placement{}) {
			t.Error("Prepare(nil) should return nil image and zero placement")
		}
	})

	t.Run("scales to placement", func(t *testing.T) {
		img, p := Prepare(src, style.ImageStyle{}, 400, 400)
		if img == nil {
			t.Fatal("Prepare() returned nil image")
		}
		if p.W != 100 || p.H != 50 {
			t.Errorf("placement = (%v, %v), want (100, 50)", p.W, p.H)
		}
		b := img.Bounds()
		if b.Dx() != 100 || b.Dy() != 50 {
			t.Errorf("scaled image = %dx%d, want 100x50", b.Dx(), b.Dy())
		}
	})
}

func TestTintSourceAtop(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) // opaque
	// (1,0) stays fully transparent.

	out := Tint(src, color.RGBA{R: 0xff, A: 0xff}).(*image.RGBA)

	if got := out.RGBAAt(0, 0); got.R != 0xff || got.A != 0xff {
		t.Errorf("opaque pixel = %+v, want tinted red", got)
	}
	if got := out.RGBAAt(1, 0); got.A != 0 {
		t.Errorf("transparent pixel = %+v, want untouched transparency", got)
	}
}

func TestRasterizeSVG(t *testing.T) {
	const doc = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect width="100" height="50" fill="#ff0000"/></svg>`

	img, err := RasterizeSVG(strings.NewReader(doc), 80)
	if err != nil {
		t.Fatalf("RasterizeSVG() error = %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 80 || b.Dy() != 40 {
		t.Errorf("rasterized size = %dx%d, want 80x40 (aspect preserved)", b.Dx(), b.Dy())
	}
}

func TestRasterizeSVGInvalid(t *testing.T) {
	if _, err := RasterizeSVG(strings.NewReader("<svg"), 0); err == nil {
		t.Error("RasterizeSVG() with zero maxSide should fail")
	}
	if _, err := RasterizeSVG(strings.NewReader("not xml at all <"), 64); err == nil {
		t.Error("RasterizeSVG() with broken markup should fail")
	}
}
