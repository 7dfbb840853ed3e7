// Package layout computes the deterministic pixel geometry for a QR symbol.
//
// Given a container size and a module count it derives the quantized module
// pixel size, the inner content size and the inset that centers the grid in
// the container. All values are in user units (pixels for the raster backend,
// SVG units for the vector exporter); both backends consume the same metrics
// so their geometry agrees exactly.
package layout

import "math"

// DefaultGap is the inter-module gap in module units used when the style is
// not gapless.
const DefaultGap = 0.25

// Metrics holds the derived geometry for one render pass.
// Recomputed per call; never cached across renders.
type Metrics struct {
	ContainerSize float64 // shortest side of the target surface
	ModuleCount   int     // modules per symbol side
	GapSize       float64 // gap between adjacent modules, 0 when gapless

	PixelSize float64 // module side, quantized to the nearest half unit
	GapTotal  float64 // accumulated gap across one row
	InnerSize float64 // pixelSize*moduleCount + gapTotal
	Inset     float64 // (containerSize - innerSize) / 2, may be negative
}

// Compute derives the metrics for the given container.
//
// The raw module size is quantized to the nearest 0.5 to avoid seam artifacts
// when rasterizing; the quantization loss (or overflow) is absorbed
// symmetrically by the inset, which is deliberately not clamped at zero.
// ok is false when containerSize or moduleCount is not positive; callers
// treat that as a degenerate surface and skip the render.
func Compute(containerSize float64, moduleCount int, gapSize float64) (m Metrics, ok bool) {
	if containerSize <= 0 || moduleCount <= 0 {
		return Metrics{}, false
	}

	gapTotal := float64(moduleCount-1) * gapSize
	rawPixel := (containerSize - gapTotal) / float64(moduleCount)
	pixelSize := math.Round(rawPixel*2) / 2
	innerSize := pixelSize*float64(moduleCount) + gapTotal

	return Metrics{
		ContainerSize: containerSize,
		ModuleCount:   moduleCount,
		GapSize:       gapSize,
		PixelSize:     pixelSize,
		GapTotal:      gapTotal,
		InnerSize:     innerSize,
		Inset:         (containerSize - innerSize) / 2,
	}, true
}

// Pitch returns the stride between adjacent module origins.
func (m Metrics) Pitch() float64 {
	return m.PixelSize + m.GapSize
}

// ModuleOrigin returns the top-left corner of the module at grid position
// (col, row).
func (m Metrics) ModuleOrigin(col, row int) (x, y float64) {
	return m.Inset + float64(col)*m.Pitch(), m.Inset + float64(row)*m.Pitch()
}
