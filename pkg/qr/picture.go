package qr

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/qrink/qrink/pkg/overlay"
	"github.com/qrink/qrink/pkg/plan"
	"github.com/qrink/qrink/pkg/raster"
)

// Picture is a recorded render: the shape plan plus the prepared overlay,
// captured for a fixed surface size. It can be replayed onto any canvas or
// rasterized later, and stays valid independently of the Renderer that
// produced it.
type Picture struct {
	size       Size
	background color.Color
	plan       plan.Plan
	overlay    image.Image
	placement  overlay.Placement
}

// Size returns the surface size the picture was recorded for.
func (p *Picture) Size() Size { return p.size }

// Plan returns the recorded shapes in draw order.
func (p *Picture) Plan() plan.Plan { return p.plan }

// Replay draws the recorded commands onto dc, exactly as Paint would have.
// The background is not filled; the caller owns the canvas.
func (p *Picture) Replay(dc *gg.Context) {
	raster.Draw(dc, p.plan)
	if p.overlay != nil {
		dc.DrawImage(p.overlay, int(p.placement.X+0.5), int(p.placement.Y+0.5))
	}
}

// Image rasterizes the recording, background included.
func (p *Picture) Image() image.Image {
	return raster.Render(p.plan, int(p.size.Width+0.5), int(p.size.Height+0.5), p.background, p.overlay, p.placement)
}
