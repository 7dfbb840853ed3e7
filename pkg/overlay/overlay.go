// Package overlay computes and prepares the centered embedded image drawn
// over a rendered symbol.
//
// Placement is pure geometry; Prepare additionally scales the source image
// and applies the optional tint. The overlay is optional throughout: callers
// with no image simply skip the compositing step.
package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/qrink/qrink/pkg/style"
)

// defaultFraction sizes the overlay's longest side relative to the surface's
// shortest side when no size is requested.
const defaultFraction = 0.25

// Placement is the destination rectangle of the overlay on the surface.
type Placement struct {
	X, Y float64
	W, H float64
}

// Compute resolves the overlay destination, in priority order:
//
//  1. A requested size with both sides positive is used verbatim.
//  2. A requested size with exactly one positive side scales the original
//     proportionally so its longest side matches that value.
//  3. Otherwise the longest side becomes a quarter of the surface's shortest
//     side, aspect preserved.
//
// The destination is always centered on the surface.
func Compute(origW, origH, reqW, reqH, surfW, surfH float64) Placement {
	w, h := resolveSize(origW, origH, reqW, reqH, surfW, surfH)
	return Placement{
		X: (surfW - w) / 2,
		Y: (surfH - h) / 2,
		W: w,
		H: h,
	}
}

func resolveSize(origW, origH, reqW, reqH, surfW, surfH float64) (w, h float64) {
	if reqW > 0 && reqH > 0 {
		return reqW, reqH
	}

	longest := origW
	if origH > longest {
		longest = origH
	}
	if longest <= 0 {
		return 0, 0
	}

	target := 0.0
	switch {
	case reqW > 0:
		target = reqW
	case reqH > 0:
		target = reqH
	default:
		shortSide := surfW
		if surfH < shortSide {
			shortSide = surfH
		}
		target = shortSide * defaultFraction
	}

	scale := target / longest
	return origW * scale, origH * scale
}

// Prepare scales img to its placement on a surfW x surfH surface and applies
// the style's tint. Returns the scaled image and where to draw it.
// A nil img yields a nil image and a zero placement.
func Prepare(img image.Image, st style.ImageStyle, surfW, surfH float64) (image.Image, Placement) {
	if img == nil {
		return nil, Placement{}
	}

	b := img.Bounds()
	p := Compute(float64(b.Dx()), float64(b.Dy()), st.Width, st.Height, surfW, surfH)
	if p.W < 1 || p.H < 1 {
		return nil, Placement{}
	}

	scaled := imaging.Resize(img, int(p.W+0.5), int(p.H+0.5), imaging.Lanczos)
	if st.Tint != nil {
		return Tint(scaled, st.Tint), p
	}
	return scaled, p
}

// Tint blends c source-atop over img: the color lands only where the image
// already has coverage, preserving its alpha silhouette.
func Tint(img image.Image, c color.Color) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	draw.DrawMask(out, b, image.NewUniform(c), image.Point{}, img, b.Min, draw.Over)
	return out
}
