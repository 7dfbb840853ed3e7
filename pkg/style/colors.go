package style

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/qrink/qrink/pkg/errors"
)

// ParseColor parses a hex color string of the form "#rgb", "#rrggbb" or
// "#rrggbbaa" (leading '#' optional) into an opaque-by-default RGBA color.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var c color.RGBA
	c.A = 0xff
	var err error
	switch len(hex) {
	case 3:
		_, err = fmt.Sscanf(hex, "%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 0x11
		c.G *= 0x11
		c.B *= 0x11
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q: expected #rgb, #rrggbb or #rrggbbaa", s)
	}
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return c, nil
}

// HexString formats a color as "#rrggbb", dropping alpha.
func HexString(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// IsWhite reports whether c is pure opaque-or-not white. The vector exporter
// treats pure white as "background/no element" and never emits it.
func IsWhite(c color.Color) bool {
	if c == nil {
		return false
	}
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

// IsTransparent reports whether c is nil or fully transparent.
func IsTransparent(c color.Color) bool {
	if c == nil {
		return true
	}
	_, _, _, a := c.RGBA()
	return a == 0
}
