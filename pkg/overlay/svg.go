package overlay

import (
	"image"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/qrink/qrink/pkg/errors"
)

// RasterizeSVG renders vector markup from r into an RGBA image whose longest
// side is maxSide pixels, preserving the aspect ratio declared by the
// document's view box. Used by the raster path to composite vector logos.
func RasterizeSVG(r io.Reader, maxSide int) (image.Image, error) {
	if maxSide <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSize, "maxSide must be positive, got %d", maxSide)
	}

	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing svg")
	}

	vbW := icon.ViewBox.W
	vbH := icon.ViewBox.H
	if vbW <= 0 || vbH <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "svg declares no usable view box")
	}

	w, h := maxSide, maxSide
	if vbW >= vbH {
		h = int(float64(maxSide)*vbH/vbW + 0.5)
	} else {
		w = int(float64(maxSide)*vbW/vbH + 0.5)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}
