// Package vector serializes a render plan into SVG markup.
//
// The exporter consumes the exact plan the raster backend draws, in the same
// order, and applies a coordinate transform that compensates the convention
// mismatch between the two backends: each shape's center is rotated 90 degrees
// about the surface center before emission, while width and height are
// preserved. Pure white encodes "background/no element" and is never emitted.
package vector

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/qrink/qrink/pkg/plan"
	"github.com/qrink/qrink/pkg/style"
)

// finderStrokeWidth is the fixed stroke width for stroked finder shapes in
// the vector output, independent of the raster stroke width.
const finderStrokeWidth = 10

// Export renders the plan as a standalone SVG document of the given size.
// A non-empty fragment is composited centered over the symbol (see Fragment).
// bg, when neither nil nor pure white, is emitted as a background rect.
func Export(p plan.Plan, width, height float64, bg color.Color, fragment string) (string, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	if bg != nil && !style.IsWhite(bg) && !style.IsTransparent(bg) {
		fmt.Fprintf(&buf, `  <rect width="%.2f" height="%.2f" fill="%s"/>`+"\n", width, height, style.HexString(bg))
	}

	for _, s := range p {
		emitShape(&buf, s, width, height)
	}

	if fragment != "" {
		frag, err := ParseFragment(fragment)
		if err != nil {
			return "", err
		}
		frag.Compose(&buf, width, height)
	}

	buf.WriteString("</svg>\n")
	return buf.String(), nil
}

// transformCenter rotates a shape center 90 degrees about the surface center
// and reflects it to the far corner: p' = S - rot90(p - C). Width and height
// are untouched; only the position moves.
func transformCenter(cx, cy, width, height float64) (nx, ny float64) {
	relX := cx - width/2
	relY := cy - height/2
	rotX := -relY
	rotY := relX
	return width - (width/2 + rotX), height - (height/2 + rotY)
}

// emitShape writes one plan shape as an SVG element, applying the emission
// filter: transparent and pure-white paints produce nothing.
func emitShape(buf *bytes.Buffer, s plan.Shape, width, height float64) {
	c := s.Paint.Color
	if style.IsTransparent(c) || style.IsWhite(c) {
		return
	}

	ncx, ncy := transformCenter(s.CenterX(), s.CenterY(), width, height)
	x := ncx - s.W/2
	y := ncy - s.H/2
	hex := style.HexString(c)
	stroked := s.Paint.StrokeWidth != 0

	switch {
	case s.Kind == plan.KindRect && s.Finder && stroked:
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#ffffff" stroke="%s" stroke-width="%d"/>`+"\n",
			x, y, s.W, s.H, hex, finderStrokeWidth)
	case s.Kind == plan.KindRect:
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			x, y, s.W, s.H, hex)
	case s.Kind == plan.KindRoundedRect && !s.Finder:
		// Rounded data modules are circles by construction.
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			ncx, ncy, s.W/2, hex)
	case s.Kind == plan.KindRoundedRect && stroked:
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="#ffffff" stroke="%s" stroke-width="%d"/>`+"\n",
			x, y, s.W, s.H, s.CornerRadius, hex, finderStrokeWidth)
	default:
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s"/>`+"\n",
			x, y, s.W, s.H, s.CornerRadius, hex)
	}
}
