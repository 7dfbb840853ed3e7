// Package plan builds the ordered shape sequence shared by both rendering
// backends.
//
// Build walks the module matrix and the three finder-pattern corners and
// produces a fresh Plan per call. The plan is the single geometry artifact
// the raster backend and the vector exporter consume; keeping emission order
// identical on both sides is what keeps them visually equivalent. Plans are
// owned by the caller and discarded after use — they are never accumulated
// across renders.
package plan

import (
	"image/color"

	"github.com/qrink/qrink/pkg/encode"
	"github.com/qrink/qrink/pkg/layout"
	"github.com/qrink/qrink/pkg/style"
)

// seamTweak is the half-unit extension applied in gapless mode to close the
// hairline seam between adjacent dark modules caused by pixel-size
// quantization. The same half unit serves as the circle corner-radius tweak.
const seamTweak = 0.5

// Kind tags the geometry of a Shape.
type Kind int

const (
	// KindRect is a plain axis-aligned rectangle.
	KindRect Kind = iota
	// KindRoundedRect is a rectangle with rounded corners; a corner radius
	// of at least half the side renders as a circle.
	KindRoundedRect
)

// Paint is the immutable fill/stroke state for one shape.
// StrokeWidth zero means fill.
type Paint struct {
	Color       color.Color
	StrokeWidth float64
}

// Shape is one drawing record: tagged geometry plus paint.
type Shape struct {
	Kind         Kind
	X, Y, W, H   float64
	CornerRadius float64 // meaningful only for KindRoundedRect
	Paint        Paint
	Finder       bool // part of a finder-pattern eye
}

// CenterX returns the horizontal center of the shape's bounds.
func (s Shape) CenterX() float64 { return s.X + s.W/2 }

// CenterY returns the vertical center of the shape's bounds.
func (s Shape) CenterY() float64 { return s.Y + s.H/2 }

// Plan is the ordered shape sequence for one render pass.
type Plan []Shape

// Build produces the plan for one symbol: the three eyes first (top-left,
// bottom-left, top-right), then the data modules row-major.
func Build(m *encode.Matrix, st style.Style, metrics layout.Metrics) Plan {
	st = st.Normalized()
	n := m.ModuleCount()

	p := make(Plan, 0, n*n/2+9)
	p = appendEyes(p, st, metrics)
	p = appendModules(p, m, st, metrics)
	return p
}

// appendModules emits one shape per non-finder module. Dark modules use the
// module paint; light modules are emitted only when an explicit light color
// is configured.
func appendModules(p Plan, m *encode.Matrix, st style.Style, metrics layout.Metrics) Plan {
	n := m.ModuleCount()

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if inFinderZone(row, col, n) {
				continue
			}

			dark := m.IsDark(row, col)
			var paint Paint
			switch {
			case dark:
				paint = Paint{Color: st.ModuleColor}
			case st.LightColor != nil:
				paint = Paint{Color: st.LightColor}
			default:
				continue
			}

			x, y := metrics.ModuleOrigin(col, row)
			w, h := metrics.PixelSize, metrics.PixelSize

			// Seam correction: without gaps, rounding of the module size
			// leaves hairlines between neighbors. Extending half a unit
			// toward a dark right/below neighbor closes them.
			if st.Gapless && dark {
				if m.IsDark(row, col+1) {
					w += seamTweak
				}
				if m.IsDark(row+1, col) {
					h += seamTweak
				}
			}

			shape := Shape{Kind: KindRect, X: x, Y: y, W: w, H: h, Paint: paint}
			if st.Module == style.ModuleCircle {
				shape.Kind = KindRoundedRect
				shape.CornerRadius = metrics.PixelSize + seamTweak
			}
			p = append(p, shape)
		}
	}
	return p
}
