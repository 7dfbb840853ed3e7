// Package qr is the user-facing surface of the renderer. It ties the
// encoder, layout, plan and backends together behind a single Renderer
// created once per content string and reusable across render calls.
//
// Construction is where fatal errors surface: bad versions, unknown levels
// and over-capacity content fail New and never produce a partially usable
// renderer. Render calls themselves degrade gracefully; painting onto a
// zero-sized surface is a logged no-op, matching the transient zero-size
// layout passes reactive UIs produce.
package qr

import (
	"context"
	"image"
	"io"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"

	"github.com/qrink/qrink/pkg/async"
	"github.com/qrink/qrink/pkg/encode"
	"github.com/qrink/qrink/pkg/errors"
	"github.com/qrink/qrink/pkg/layout"
	"github.com/qrink/qrink/pkg/overlay"
	"github.com/qrink/qrink/pkg/plan"
	"github.com/qrink/qrink/pkg/raster"
	"github.com/qrink/qrink/pkg/style"
	"github.com/qrink/qrink/pkg/vector"
)

// Size is a target surface size in pixels (raster) or user units (vector).
type Size struct {
	Width  float64
	Height float64
}

// SquareSize returns a Size with equal sides.
func SquareSize(side float64) Size {
	return Size{Width: side, Height: side}
}

// ShortestSide returns the smaller of the two sides. The symbol container
// is always a square of this side, centered within the surface.
func (s Size) ShortestSide() float64 {
	if s.Width < s.Height {
		return s.Width
	}
	return s.Height
}

// Renderer renders one encoded symbol. It is immutable after New; every
// render call rebuilds its geometry from scratch, so identical inputs give
// bit-identical raster output and identical vector markup. Distinct
// renderers are safe to use concurrently.
type Renderer struct {
	symbol  *encode.Symbol
	style   style.Style
	overlay image.Image
	quiet   int
	version int
	level   encode.Level
	log     *log.Logger
}

// Option configures a Renderer during construction.
type Option func(*Renderer)

// WithStyle sets the visual style. Nil colors fall back to the
// black-on-white defaults.
func WithStyle(st style.Style) Option {
	return func(r *Renderer) { r.style = st }
}

// WithVersion pins the symbol version (1-40). Zero selects automatically.
func WithVersion(v int) Option {
	return func(r *Renderer) { r.version = v }
}

// WithLevel sets the error-correction level.
func WithLevel(l encode.Level) Option {
	return func(r *Renderer) { r.level = l }
}

// WithOverlayImage embeds an image centered over the symbol on the raster
// path. Sizing and tint follow the style's ImageStyle.
func WithOverlayImage(img image.Image) Option {
	return func(r *Renderer) { r.overlay = img }
}

// WithQuietZone reserves a border of the given width, in modules, around
// the symbol. Negative values are treated as zero.
func WithQuietZone(modules int) Option {
	return func(r *Renderer) {
		if modules < 0 {
			modules = 0
		}
		r.quiet = modules
	}
}

// WithLogger sets the logger used for render diagnostics. The default
// discards everything.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// New encodes content and returns a renderer for it. All construction-fatal
// conditions (empty content, version out of range, capacity exceeded)
// surface here.
func New(content string, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		style: style.Default(),
		level: encode.LevelQuart,
		log:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.style = r.style.Normalized()

	encOpts := []encode.Option{encode.WithLevel(r.level)}
	if r.version != 0 {
		encOpts = append(encOpts, encode.WithVersion(r.version))
	}
	sym, err := encode.New(content, encOpts...)
	if err != nil {
		return nil, err
	}
	r.symbol = sym
	return r, nil
}

// Symbol returns the encoded symbol backing this renderer.
func (r *Renderer) Symbol() *encode.Symbol { return r.symbol }

// layoutPlan rebuilds the shape plan for a surface. The symbol occupies a
// centered square of the shortest side, shrunk by the quiet zone; every
// call produces a fresh plan, never an accumulated one.
func (r *Renderer) layoutPlan(size Size) (plan.Plan, layout.Metrics, bool) {
	container := size.ShortestSide()
	if container <= 0 {
		return nil, layout.Metrics{}, false
	}

	n := r.symbol.Matrix.ModuleCount()
	if r.quiet > 0 {
		border := container * float64(r.quiet) / float64(n+2*r.quiet)
		container -= 2 * border
	}

	gap := layout.DefaultGap
	if r.style.Gapless {
		gap = 0
	}
	m, ok := layout.Compute(container, n, gap)
	if !ok {
		return nil, layout.Metrics{}, false
	}

	p := plan.Build(r.symbol.Matrix, r.style, m)

	dx := (size.Width - container) / 2
	dy := (size.Height - container) / 2
	if dx != 0 || dy != 0 {
		for i := range p {
			p[i].X += dx
			p[i].Y += dy
		}
	}
	return p, m, true
}

// prepareOverlay scales and tints the configured overlay for a surface.
func (r *Renderer) prepareOverlay(size Size) (image.Image, overlay.Placement) {
	if r.overlay == nil {
		return nil, overlay.Placement{}
	}
	return overlay.Prepare(r.overlay, r.style.Image, size.Width, size.Height)
}

// Paint draws the full plan plus overlay onto dc. A surface with a zero
// shortest side is a no-op with a debug diagnostic, not an error.
func (r *Renderer) Paint(dc *gg.Context, size Size) {
	p, _, ok := r.layoutPlan(size)
	if !ok {
		r.log.Debug("skipping paint on degenerate surface", "width", size.Width, "height", size.Height)
		return
	}

	raster.Draw(dc, p)
	if ov, pl := r.prepareOverlay(size); ov != nil {
		dc.DrawImage(ov, int(pl.X+0.5), int(pl.Y+0.5))
	}
}

// ToPicture records the drawing commands for a surface without rasterizing.
func (r *Renderer) ToPicture(size Size) (*Picture, error) {
	p, _, ok := r.layoutPlan(size)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidSize, "surface %gx%g has no drawable area", size.Width, size.Height)
	}
	ov, pl := r.prepareOverlay(size)
	return &Picture{
		size:       size,
		background: r.style.Background,
		plan:       p,
		overlay:    ov,
		placement:  pl,
	}, nil
}

// ToImage rasterizes asynchronously. Geometry is computed before the future
// starts; only the pixel work runs on the future's goroutine. Cancellation
// of an in-flight rasterization is not supported; callers needing it race
// the future externally.
func (r *Renderer) ToImage(ctx context.Context, size Size) *async.Future[image.Image] {
	p, _, ok := r.layoutPlan(size)
	if !ok {
		return async.Resolved[image.Image](nil,
			errors.New(errors.ErrCodeInvalidSize, "surface %gx%g has no drawable area", size.Width, size.Height))
	}
	ov, pl := r.prepareOverlay(size)
	bg := r.style.Background

	return async.Go(ctx, func(context.Context) (image.Image, error) {
		return raster.Render(p, int(size.Width+0.5), int(size.Height+0.5), bg, ov, pl), nil
	})
}

// ToImageData rasterizes and encodes asynchronously.
func (r *Renderer) ToImageData(ctx context.Context, size Size, format raster.Format) *async.Future[[]byte] {
	img := r.ToImage(ctx, size)
	return async.Go(ctx, func(context.Context) ([]byte, error) {
		rendered, err := img.Await()
		if err != nil {
			return nil, err
		}
		return raster.Encode(rendered, format)
	})
}

// ToSVG exports the symbol as vector markup. A non-empty fragment is
// composited centered over the symbol; an empty one is simply skipped.
func (r *Renderer) ToSVG(size Size, fragment string) (string, error) {
	p, _, ok := r.layoutPlan(size)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidSize, "surface %gx%g has no drawable area", size.Width, size.Height)
	}
	return vector.Export(p, size.Width, size.Height, r.style.Background, fragment)
}
