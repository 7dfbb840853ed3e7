// Package raster draws a render plan onto a pixel surface.
//
// The backend is a thin interpreter over github.com/fogleman/gg: every shape
// in the plan maps to one fill or stroke, in plan order, so raster output and
// vector output stay visually equivalent. All drawing state lives in the
// per-call gg context; nothing is shared between renders.
package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"

	"github.com/qrink/qrink/pkg/errors"
	"github.com/qrink/qrink/pkg/overlay"
	"github.com/qrink/qrink/pkg/plan"
	"github.com/qrink/qrink/pkg/style"
)

// Format selects the byte encoding for rasterized output.
type Format string

// Supported encodings.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// Draw paints every shape of the plan onto dc in order. Shapes with a
// transparent paint are structural (the eye inner ring) and are skipped.
func Draw(dc *gg.Context, p plan.Plan) {
	for _, s := range p {
		if style.IsTransparent(s.Paint.Color) {
			continue
		}

		switch s.Kind {
		case plan.KindRoundedRect:
			dc.DrawRoundedRectangle(s.X, s.Y, s.W, s.H, clampRadius(s.CornerRadius, s.W, s.H))
		default:
			dc.DrawRectangle(s.X, s.Y, s.W, s.H)
		}

		dc.SetColor(s.Paint.Color)
		if s.Paint.StrokeWidth > 0 {
			dc.SetLineWidth(s.Paint.StrokeWidth)
			dc.Stroke()
		} else {
			dc.Fill()
		}
	}
}

// clampRadius keeps the corner radius drawable: anything at or beyond half
// the shorter side renders as a capsule/circle.
func clampRadius(r, w, h float64) float64 {
	max := w / 2
	if h < w {
		max = h / 2
	}
	if r > max {
		return max
	}
	return r
}

// Render rasterizes the plan onto a fresh width x height surface, filling the
// background first and compositing the prepared overlay image last.
// ov may be nil.
func Render(p plan.Plan, width, height int, bg color.Color, ov image.Image, pl overlay.Placement) image.Image {
	dc := gg.NewContext(width, height)

	if bg == nil {
		bg = color.White
	}
	dc.SetColor(bg)
	dc.Clear()

	Draw(dc, p)

	if ov != nil {
		dc.DrawImage(ov, int(pl.X+0.5), int(pl.Y+0.5))
	}
	return dc.Image()
}

// Encode serializes a rasterized image in the given format.
func Encode(img image.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding png")
		}
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, nil); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding jpeg")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q", string(format))
	}
	return buf.Bytes(), nil
}
