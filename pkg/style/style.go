// Package style defines the visual configuration for QR rendering.
//
// A Style is pure input data: it carries the eye and data-module appearance,
// the gapless flag and the embedded-image settings. Styles are value objects
// and are never mutated by the renderers, which makes concurrent rendering of
// distinct symbols with a shared Style safe.
package style

import "image/color"

// EyeShapeKind enumerates the supported finder-pattern ("eye") forms.
type EyeShapeKind int

const (
	// EyeSquare renders sharp-cornered rings and dot.
	EyeSquare EyeShapeKind = iota
	// EyeCircle renders fully circular rings and dot.
	EyeCircle
	// EyeRounded renders rounded-square rings with an explicit radius.
	EyeRounded
)

// EyeShape is the finder-pattern form, modeled as an explicit variant so that
// ring and dot geometry consume it uniformly instead of branching on a
// nullable radius.
type EyeShape struct {
	kind   EyeShapeKind
	radius float64
}

// SquareEye returns the sharp-cornered eye shape.
func SquareEye() EyeShape { return EyeShape{kind: EyeSquare} }

// CircleEye returns the fully circular eye shape.
func CircleEye() EyeShape { return EyeShape{kind: EyeCircle} }

// RoundedEye returns a rounded-square eye with the given corner radius.
// A non-positive radius falls back to the square form.
func RoundedEye(radius float64) EyeShape {
	if radius <= 0 {
		return SquareEye()
	}
	return EyeShape{kind: EyeRounded, radius: radius}
}

// Kind returns the variant tag.
func (s EyeShape) Kind() EyeShapeKind { return s.kind }

// Radius returns the configured corner radius; meaningful only for EyeRounded.
func (s EyeShape) Radius() float64 { return s.radius }

// ModuleShape enumerates the supported data-module forms.
type ModuleShape int

const (
	// ModuleSquare renders plain rectangles.
	ModuleSquare ModuleShape = iota
	// ModuleCircle renders circular dots.
	ModuleCircle
)

// ImageStyle configures the embedded overlay image.
// Width/Height request a destination size in pixels; a zero side is treated
// as unset (see overlay.Placement for the sizing rules). Tint, when non-nil,
// is blended source-atop over the image.
type ImageStyle struct {
	Width  float64
	Height float64
	Tint   color.Color
}

// Style is the complete visual configuration for one symbol.
// The zero value is not usable directly; call Default or Normalized.
type Style struct {
	Eye         EyeShape
	EyeColor    color.Color
	Module      ModuleShape
	ModuleColor color.Color

	// LightColor draws light modules explicitly when non-nil.
	// Nil leaves light modules to the background.
	LightColor color.Color

	// Gapless removes the inter-module gap and enables seam correction.
	Gapless bool

	// Background fills the surface before drawing. Nil means white.
	Background color.Color

	Image ImageStyle
}

// Default returns the conventional black-on-white square style.
func Default() Style {
	return Style{
		Eye:         SquareEye(),
		EyeColor:    color.Black,
		Module:      ModuleSquare,
		ModuleColor: color.Black,
		Gapless:     true,
	}
}

// Normalized returns a copy with nil colors replaced by defaults.
func (s Style) Normalized() Style {
	if s.EyeColor == nil {
		s.EyeColor = color.Black
	}
	if s.ModuleColor == nil {
		s.ModuleColor = color.Black
	}
	if s.Background == nil {
		s.Background = color.White
	}
	return s
}
