package layout

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestComputeGapless(t *testing.T) {
	m, ok := Compute(300, 25, 0)
	if !ok {
		t.Fatal("Compute() ok = false, want true")
	}
	if m.PixelSize != 12.0 {
		t.Errorf("PixelSize = %v, want 12.0", m.PixelSize)
	}
	if m.InnerSize != 300.0 {
		t.Errorf("InnerSize = %v, want 300.0", m.InnerSize)
	}
	if m.Inset != 0.0 {
		t.Errorf("Inset = %v, want 0.0", m.Inset)
	}
}

func TestComputeWithGap(t *testing.T) {
	// Quantization overflows the container here: 11.36 rounds up to 11.5,
	// so the inner size exceeds 290 and the inset goes negative.
	m, ok := Compute(290, 25, 0.25)
	if !ok {
		t.Fatal("Compute() ok = false, want true")
	}
	if m.GapTotal != 6.0 {
		t.Errorf("GapTotal = %v, want 6.0", m.GapTotal)
	}
	if m.PixelSize != 11.5 {
		t.Errorf("PixelSize = %v, want 11.5", m.PixelSize)
	}
	if m.InnerSize != 293.5 {
		t.Errorf("InnerSize = %v, want 293.5", m.InnerSize)
	}
	if m.Inset != -1.75 {
		t.Errorf("Inset = %v, want -1.75", m.Inset)
	}
}

func TestComputeCenteringInvariant(t *testing.T) {
	tests := []struct {
		name          string
		containerSize float64
		moduleCount   int
		gapSize       float64
	}{
		{name: "exact fit", containerSize: 300, moduleCount: 25, gapSize: 0},
		{name: "rounds up", containerSize: 290, moduleCount: 25, gapSize: 0.25},
		{name: "rounds down", containerSize: 100, moduleCount: 29, gapSize: 0},
		{name: "tiny container", containerSize: 10, moduleCount: 21, gapSize: 0.25},
		{name: "large container", containerSize: 2048, moduleCount: 177, gapSize: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Compute(tt.containerSize, tt.moduleCount, tt.gapSize)
			if !ok {
				t.Fatal("Compute() ok = false, want true")
			}
			got := m.PixelSize*float64(m.ModuleCount) + m.GapTotal + 2*m.Inset
			if math.Abs(got-tt.containerSize) > eps {
				t.Errorf("pixelSize*n + gapTotal + 2*inset = %v, want %v", got, tt.containerSize)
			}
			if q := math.Mod(m.PixelSize*2, 1); q != 0 {
				t.Errorf("PixelSize = %v, want half-unit quantized", m.PixelSize)
			}
		})
	}
}

func TestComputeDegenerate(t *testing.T) {
	tests := []struct {
		name          string
		containerSize float64
		moduleCount   int
	}{
		{name: "zero size", containerSize: 0, moduleCount: 25},
		{name: "negative size", containerSize: -10, moduleCount: 25},
		{name: "zero modules", containerSize: 300, moduleCount: 0},
		{name: "negative modules", containerSize: 300, moduleCount: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Compute(tt.containerSize, tt.moduleCount, 0); ok {
				t.Error("Compute() ok = true, want false")
			}
		})
	}
}

func TestModuleOrigin(t *testing.T) {
	m, _ := Compute(300, 25, 0)
	x, y := m.ModuleOrigin(0, 0)
	if x != m.Inset || y != m.Inset {
		t.Errorf("ModuleOrigin(0,0) = (%v, %v), want inset corner", x, y)
	}
	x, y = m.ModuleOrigin(2, 3)
	if want := m.Inset + 2*m.Pitch(); x != want {
		t.Errorf("ModuleOrigin(2,3).x = %v, want %v", x, want)
	}
	if want := m.Inset + 3*m.Pitch(); y != want {
		t.Errorf("ModuleOrigin(2,3).y = %v, want %v", y, want)
	}
}
