package cli

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qrink/qrink/pkg/cache"
	"github.com/qrink/qrink/pkg/encode"
	"github.com/qrink/qrink/pkg/overlay"
	"github.com/qrink/qrink/pkg/qr"
	"github.com/qrink/qrink/pkg/raster"
	"github.com/qrink/qrink/pkg/style"
)

const (
	defaultSize   = 512   // default output side length in pixels
	defaultFormat = "png" // default output format
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file path
	format      string  // png, jpeg, svg
	size        int     // output side length in pixels / SVG units
	version     int     // pinned symbol version, 0 = auto
	level       string  // error-correction level: low, medium, quart, high
	styleFile   string  // TOML style profile path
	eye         string  // eye shape: square, circle, rounded
	eyeRadius   float64 // corner radius for rounded eyes
	eyeColor    string
	moduleShape string // module shape: square, circle
	moduleColor string
	lightColor  string
	gapless     bool
	background  string
	quietZone   int    // quiet-zone border width in modules
	logo        string // embedded logo file (png, jpeg, svg)
	logoWidth   float64
	logoHeight  float64
	logoTint    string
	fragment    string // SVG fragment file composited into vector output
	noCache     bool
}

// renderCommand creates the render command for generating QR code files.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format:  defaultFormat,
		size:    defaultSize,
		level:   "quart",
		gapless: true,
	}

	cmd := &cobra.Command{
		Use:   "render [content]",
		Short: "Render a QR code to a PNG, JPEG, or SVG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default qr.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: png (default), jpeg, svg")
	cmd.Flags().IntVarP(&opts.size, "size", "s", opts.size, "output side length in pixels")
	cmd.Flags().IntVar(&opts.version, "qr-version", 0, "pin the symbol version (1-40, 0 = auto)")
	cmd.Flags().StringVar(&opts.level, "level", opts.level, "error-correction level: low, medium, quart (default), high")
	cmd.Flags().StringVar(&opts.styleFile, "style-file", "", "TOML style profile")
	cmd.Flags().StringVar(&opts.eye, "eye", "", "eye shape: square (default), circle, rounded")
	cmd.Flags().Float64Var(&opts.eyeRadius, "eye-radius", 0, "corner radius for rounded eyes")
	cmd.Flags().StringVar(&opts.eyeColor, "eye-color", "", "eye color (hex)")
	cmd.Flags().StringVar(&opts.moduleShape, "module", "", "module shape: square (default), circle")
	cmd.Flags().StringVar(&opts.moduleColor, "module-color", "", "module color (hex)")
	cmd.Flags().StringVar(&opts.lightColor, "light-color", "", "explicit light-module color (hex)")
	cmd.Flags().BoolVar(&opts.gapless, "gapless", opts.gapless, "draw modules without gaps")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (hex)")
	cmd.Flags().IntVar(&opts.quietZone, "quiet-zone", 0, "quiet-zone border width in modules")
	cmd.Flags().StringVar(&opts.logo, "logo", "", "embedded logo image (png, jpeg, or svg)")
	cmd.Flags().Float64Var(&opts.logoWidth, "logo-width", 0, "logo width in pixels")
	cmd.Flags().Float64Var(&opts.logoHeight, "logo-height", 0, "logo height in pixels")
	cmd.Flags().StringVar(&opts.logoTint, "logo-tint", "", "tint color blended over the logo (hex)")
	cmd.Flags().StringVar(&opts.fragment, "fragment", "", "SVG file composited into vector output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

// runRender renders content to a file, consulting the local cache first.
func (c *CLI) runRender(ctx context.Context, content string, opts *renderOpts) error {
	level, err := parseLevel(opts.level)
	if err != nil {
		return err
	}
	st, quiet, profileLogo, err := buildStyle(opts)
	if err != nil {
		return err
	}
	if opts.quietZone > 0 {
		quiet = opts.quietZone
	}
	logoPath := opts.logo
	if logoPath == "" {
		logoPath = profileLogo
	}

	output := opts.output
	if output == "" {
		output = "qr." + normalizeExt(opts.format)
	}

	renderCache := newCache(opts.noCache)
	defer renderCache.Close()
	key := cache.Key("render", content, opts.format, opts.size, opts.version, opts.level,
		opts.eye, opts.eyeRadius, opts.eyeColor, opts.moduleShape, opts.moduleColor,
		opts.lightColor, opts.gapless, opts.background, quiet,
		logoPath, opts.logoWidth, opts.logoHeight, opts.logoTint,
		opts.fragment, opts.styleFile)

	if data, hit, err := renderCache.Get(ctx, key); err == nil && hit {
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return err
		}
		printSuccess("Rendered %s", content)
		printFile(output)
		return nil
	}

	qrOpts := []qr.Option{
		qr.WithStyle(st),
		qr.WithLevel(level),
		qr.WithQuietZone(quiet),
		qr.WithLogger(c.Logger),
	}
	if opts.version != 0 {
		qrOpts = append(qrOpts, qr.WithVersion(opts.version))
	}
	if logoPath != "" {
		logo, err := loadLogo(logoPath, opts.size)
		if err != nil {
			return err
		}
		qrOpts = append(qrOpts, qr.WithOverlayImage(logo))
	}

	r, err := qr.New(content, qrOpts...)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	prog := newProgress(c.Logger)

	data, err := c.renderBytes(ctx, r, opts)
	if err != nil {
		spinner.StopWithError(err.Error())
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d bytes", len(data)))

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	if err := renderCache.Set(ctx, key, data, defaultCacheTTL); err != nil {
		c.Logger.Debug("caching render output failed", "err", err)
	}

	printSuccess("Rendered %s", content)
	printFile(output)
	printStats(r.Symbol().Version, r.Symbol().Matrix.ModuleCount(), false)
	return nil
}

// renderBytes produces the encoded output for the requested format.
func (c *CLI) renderBytes(ctx context.Context, r *qr.Renderer, opts *renderOpts) ([]byte, error) {
	size := qr.SquareSize(float64(opts.size))

	if opts.format == "svg" {
		fragment := ""
		if opts.fragment != "" {
			raw, err := os.ReadFile(opts.fragment)
			if err != nil {
				return nil, err
			}
			fragment = string(raw)
		}
		markup, err := r.ToSVG(size, fragment)
		if err != nil {
			return nil, err
		}
		return []byte(markup), nil
	}

	format := raster.FormatPNG
	if normalizeExt(opts.format) == "jpg" {
		format = raster.FormatJPEG
	}
	return r.ToImageData(ctx, size, format).Await()
}

// buildStyle assembles the render style from the profile file and flags.
// Flags override profile values. The returned path is the profile's logo
// path, used when no --logo flag is given.
func buildStyle(opts *renderOpts) (style.Style, int, string, error) {
	st := style.Default()
	quiet := 0
	logoPath := ""

	if opts.styleFile != "" {
		profile, err := loadStyleProfile(opts.styleFile)
		if err != nil {
			return style.Style{}, 0, "", err
		}
		if err := profile.apply(&st); err != nil {
			return style.Style{}, 0, "", err
		}
		quiet = profile.QuietZone
		logoPath = profile.Logo.Path
	}

	if opts.eye != "" {
		eye, err := parseEyeShape(opts.eye, opts.eyeRadius)
		if err != nil {
			return style.Style{}, 0, "", err
		}
		st.Eye = eye
	}
	if opts.moduleShape != "" {
		mod, err := parseModuleShape(opts.moduleShape)
		if err != nil {
			return style.Style{}, 0, "", err
		}
		st.Module = mod
	}
	st.Gapless = opts.gapless

	if opts.eyeColor != "" {
		col, err := style.ParseColor(opts.eyeColor)
		if err != nil {
			return style.Style{}, 0, "", err
		}
		st.EyeColor = col
	}
	if opts.moduleColor != "" {
		col, err := style.ParseColor(opts.moduleColor)
		if err != nil {
			return style.Style{}, 0, "", err
		}
		st.ModuleColor = col
	}
	if opts.lightColor != "" {
		col, err := style.ParseColor(opts.lightColor)
		if err != nil {
			return style.Style{}, 0, "", err
		}
		st.LightColor = col
	}
	if opts.background != "" {
		col, err := style.ParseColor(opts.background)
		if err != nil {
			return style.Style{}, 0, "", err
		}
		st.Background = col
	}
	if opts.logoWidth > 0 {
		st.Image.Width = opts.logoWidth
	}
	if opts.logoHeight > 0 {
		st.Image.Height = opts.logoHeight
	}
	if opts.logoTint != "" {
		col, err := style.ParseColor(opts.logoTint)
		if err != nil {
			return style.Style{}, 0, "", err
		}
		st.Image.Tint = col
	}
	return st, quiet, logoPath, nil
}

// loadLogo reads a logo image file. SVG logos are rasterized; everything
// else goes through image.Decode.
func loadLogo(path string, surfaceSize int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return overlay.RasterizeSVG(f, surfaceSize/2)
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode logo %s: %w", path, err)
	}
	return img, nil
}

// parseLevel maps a level name to an error-correction level.
func parseLevel(s string) (encode.Level, error) {
	switch strings.ToLower(s) {
	case "l", "low":
		return encode.LevelLow, nil
	case "m", "medium":
		return encode.LevelMedium, nil
	case "q", "quart":
		return encode.LevelQuart, nil
	case "h", "high":
		return encode.LevelHigh, nil
	default:
		return 0, fmt.Errorf("invalid level: %s (must be 'low', 'medium', 'quart', or 'high')", s)
	}
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"png": true, "jpeg": true, "jpg": true, "svg": true}

// validateFormat checks that the requested format is supported.
func validateFormat(format string) error {
	if !validFormats[format] {
		return fmt.Errorf("invalid format: %s (must be 'png', 'jpeg', or 'svg')", format)
	}
	return nil
}

// normalizeExt maps a format name to a file extension.
func normalizeExt(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}
