// Package pkg provides the core libraries for qrink QR code rendering.
//
// # Overview
//
// Qrink turns a content string into a styled QR code, as a raster image or
// as SVG markup. The pkg directory is organized along the render pipeline:
//
//  1. [encode] - Symbol encoding (module matrix, version, error correction)
//  2. [style] + [layout] - Visual configuration and geometric layout
//  3. [plan] - Shape planning (data modules, finder eyes, seam correction)
//  4. [raster] + [vector] - The two rendering backends
//  5. [qr] - The user-facing renderer facade
//
// # Architecture
//
// The typical data flow through qrink:
//
//	content string
//	         ↓
//	    [encode] package (module matrix)
//	         ↓
//	    [layout] package (pixel size, gaps, inset)
//	         ↓
//	    [plan] package (draw-ordered shape list)
//	         ↓
//	    [raster] or [vector] backend
//	         ↓
//	    PNG/JPEG bytes or SVG markup
//
// Both backends consume the same plan in the same order, which keeps raster
// and vector output in exact visual agreement.
//
// # Quick Start
//
// Render a styled symbol to PNG bytes:
//
//	import (
//	    "context"
//	    "github.com/qrink/qrink/pkg/qr"
//	    "github.com/qrink/qrink/pkg/raster"
//	    "github.com/qrink/qrink/pkg/style"
//	)
//
//	st := style.Default()
//	st.Module = style.ModuleCircle
//
//	r, _ := qr.New("https://example.com", qr.WithStyle(st))
//	data, _ := r.ToImageData(context.Background(), qr.SquareSize(512), raster.FormatPNG).Await()
//
// # Main Packages
//
// [encode] - Wraps the QR encoder and captures the boolean module grid. All
// construction-fatal errors (bad version, capacity exceeded) surface here.
//
// [layout] - Pure geometry: container size, module count and gap size map to
// a half-unit-quantized pixel size and a centering inset.
//
// [plan] - Builds the draw-ordered shape list: three finder eyes first, then
// data modules row by row, with gapless seam correction.
//
// [overlay] - Scales, tints and centers an embedded logo image.
//
// [raster] - Draws a plan onto a raster canvas and encodes PNG/JPEG.
//
// [vector] - Serializes a plan to SVG markup and composites SVG fragments.
//
// [qr] - The facade tying everything together: Paint, ToPicture, ToImage,
// ToImageData and ToSVG on a reusable Renderer.
//
// ## Infrastructure
//
// [async] - Future-based results for the asynchronous rasterize/encode path.
//
// [cache] - Byte caches (file, Redis, null) for rendered output, used by the
// CLI and the HTTP server.
//
// [errors] - Structured errors with machine-readable codes.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...       # All tests
//	go test ./pkg/plan/...  # Specific package
//	go test -run Example    # Examples only
//
// [encode]: https://pkg.go.dev/github.com/qrink/qrink/pkg/encode
// [style]: https://pkg.go.dev/github.com/qrink/qrink/pkg/style
// [layout]: https://pkg.go.dev/github.com/qrink/qrink/pkg/layout
// [plan]: https://pkg.go.dev/github.com/qrink/qrink/pkg/plan
// [overlay]: https://pkg.go.dev/github.com/qrink/qrink/pkg/overlay
// [raster]: https://pkg.go.dev/github.com/qrink/qrink/pkg/raster
// [vector]: https://pkg.go.dev/github.com/qrink/qrink/pkg/vector
// [qr]: https://pkg.go.dev/github.com/qrink/qrink/pkg/qr
// [async]: https://pkg.go.dev/github.com/qrink/qrink/pkg/async
// [cache]: https://pkg.go.dev/github.com/qrink/qrink/pkg/cache
// [errors]: https://pkg.go.dev/github.com/qrink/qrink/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/qrink/qrink/pkg/buildinfo
package pkg
