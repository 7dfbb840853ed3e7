package plan

import (
	"image/color"

	"github.com/qrink/qrink/pkg/layout"
	"github.com/qrink/qrink/pkg/style"
)

// finderSpan is the fixed side of a finder-pattern zone in modules.
const finderSpan = 7

// corner identifies one of the three finder-pattern positions.
type corner int

const (
	cornerTopLeft corner = iota
	cornerBottomLeft
	cornerTopRight
)

var corners = [3]corner{cornerTopLeft, cornerBottomLeft, cornerTopRight}

// inFinderZone reports whether the module at (row, col) belongs to one of
// the three 7x7 finder-pattern zones of an n-module symbol.
func inFinderZone(row, col, n int) bool {
	if row < finderSpan && col < finderSpan {
		return true // top-left
	}
	if row < finderSpan && col >= n-finderSpan {
		return true // top-right
	}
	if row >= n-finderSpan && col < finderSpan {
		return true // bottom-left
	}
	return false
}

// eyeGeometry is the shared measurement set for one eye.
type eyeGeometry struct {
	ringSide     float64 // outer ring side (geometry, stroke excluded)
	strokeAdjust float64 // half the stroke width
	innerSide    float64 // inner ring side
	dotSide      float64 // center dot side
}

func computeEyeGeometry(m layout.Metrics) eyeGeometry {
	totalGap := float64(finderSpan-1) * m.GapSize
	ringSide := finderSpan*m.PixelSize + totalGap - m.PixelSize
	strokeAdjust := m.PixelSize / 2
	return eyeGeometry{
		ringSide:     ringSide,
		strokeAdjust: strokeAdjust,
		innerSide:    ringSide - 2*m.PixelSize,
		dotSide:      ringSide - 2*(m.PixelSize+m.GapSize) - 2*strokeAdjust,
	}
}

// anchor returns the outer-ring origin for the given corner. Each eye mirrors
// to the matching far edge along exactly one axis.
func (g eyeGeometry) anchor(c corner, m layout.Metrics) (x, y float64) {
	near := m.Inset + g.strokeAdjust
	edgePos := m.Inset + m.InnerSize - (g.ringSide + g.strokeAdjust)
	switch c {
	case cornerBottomLeft:
		return near, edgePos
	case cornerTopRight:
		return edgePos, near
	default:
		return near, near
	}
}

// eyeRadii resolves the corner radii for ring, inner ring and dot from the
// eye-shape variant. ok is false for the plain-square form, which uses
// KindRect throughout.
func eyeRadii(shape style.EyeShape, g eyeGeometry) (outer, inner, dot float64, ok bool) {
	switch shape.Kind() {
	case style.EyeCircle:
		// Radii at or above the full side resolve to circles.
		return g.ringSide, g.innerSide, g.dotSide, true
	case style.EyeRounded:
		r := shape.Radius()
		inner := r - g.strokeAdjust*2
		if inner < 0 {
			inner = 0
		}
		return r, inner, r / 2, true
	default:
		return 0, 0, 0, false
	}
}

// appendEyes emits the three nested shapes per corner: stroked outer ring,
// transparent inner ring, filled center dot. All carry Finder=true.
func appendEyes(p Plan, st style.Style, m layout.Metrics) Plan {
	g := computeEyeGeometry(m)
	outerR, innerR, dotR, rounded := eyeRadii(st.Eye, g)

	kind := KindRect
	if rounded {
		kind = KindRoundedRect
	}

	for _, c := range corners {
		ax, ay := g.anchor(c, m)

		// Outer ring: stroke width of one module, centered on the ring
		// geometry, so the painted band spans the full 7-module zone.
		p = append(p, Shape{
			Kind: kind,
			X:    ax, Y: ay, W: g.ringSide, H: g.ringSide,
			CornerRadius: outerR,
			Paint:        Paint{Color: st.EyeColor, StrokeWidth: m.PixelSize},
			Finder:       true,
		})

		// Inner ring: one module in from the ring, transparent. It records
		// the gap between ring and dot; backends skip non-emitting colors.
		p = append(p, Shape{
			Kind: kind,
			X:    ax + m.PixelSize, Y: ay + m.PixelSize, W: g.innerSide, H: g.innerSide,
			CornerRadius: innerR,
			Paint:        Paint{Color: color.Transparent},
			Finder:       true,
		})

		// Center dot, centered within the ring.
		dotOff := (g.ringSide - g.dotSide) / 2
		p = append(p, Shape{
			Kind: kind,
			X:    ax + dotOff, Y: ay + dotOff, W: g.dotSide, H: g.dotSide,
			CornerRadius: dotR,
			Paint:        Paint{Color: st.EyeColor},
			Finder:       true,
		})
	}
	return p
}
