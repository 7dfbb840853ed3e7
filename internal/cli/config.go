package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/qrink/qrink/pkg/style"
)

// styleProfile is the TOML representation of a render style, loaded via
// --style-file. All fields are optional; unset fields keep their defaults.
type styleProfile struct {
	Eye         string      `toml:"eye"`        // square, circle, rounded
	EyeRadius   float64     `toml:"eye_radius"` // corner radius for rounded eyes
	EyeColor    string      `toml:"eye_color"`
	Module      string      `toml:"module"` // square, circle
	ModuleColor string      `toml:"module_color"`
	LightColor  string      `toml:"light_color"`
	Gapless     *bool       `toml:"gapless"`
	Background  string      `toml:"background"`
	QuietZone   int         `toml:"quiet_zone"`
	Logo        logoProfile `toml:"logo"`
}

// logoProfile configures the embedded logo image.
type logoProfile struct {
	Path   string  `toml:"path"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Tint   string  `toml:"tint"`
}

// loadStyleProfile reads a style profile from a TOML file.
func loadStyleProfile(path string) (styleProfile, error) {
	var p styleProfile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return styleProfile{}, fmt.Errorf("load style file %s: %w", path, err)
	}
	return p, nil
}

// apply merges the profile into st. Empty fields are left untouched.
func (p styleProfile) apply(st *style.Style) error {
	if p.Eye != "" {
		eye, err := parseEyeShape(p.Eye, p.EyeRadius)
		if err != nil {
			return err
		}
		st.Eye = eye
	}
	if p.Module != "" {
		mod, err := parseModuleShape(p.Module)
		if err != nil {
			return err
		}
		st.Module = mod
	}
	if p.Gapless != nil {
		st.Gapless = *p.Gapless
	}

	if p.EyeColor != "" {
		c, err := style.ParseColor(p.EyeColor)
		if err != nil {
			return err
		}
		st.EyeColor = c
	}
	if p.ModuleColor != "" {
		c, err := style.ParseColor(p.ModuleColor)
		if err != nil {
			return err
		}
		st.ModuleColor = c
	}
	if p.LightColor != "" {
		c, err := style.ParseColor(p.LightColor)
		if err != nil {
			return err
		}
		st.LightColor = c
	}
	if p.Background != "" {
		c, err := style.ParseColor(p.Background)
		if err != nil {
			return err
		}
		st.Background = c
	}

	st.Image.Width = p.Logo.Width
	st.Image.Height = p.Logo.Height
	if p.Logo.Tint != "" {
		c, err := style.ParseColor(p.Logo.Tint)
		if err != nil {
			return err
		}
		st.Image.Tint = c
	}
	return nil
}

// parseEyeShape maps a shape name to an eye variant.
func parseEyeShape(name string, radius float64) (style.EyeShape, error) {
	switch name {
	case "square":
		return style.SquareEye(), nil
	case "circle":
		return style.CircleEye(), nil
	case "rounded":
		return style.RoundedEye(radius), nil
	default:
		return style.EyeShape{}, fmt.Errorf("invalid eye shape: %s (must be 'square', 'circle', or 'rounded')", name)
	}
}

// parseModuleShape maps a shape name to a module shape.
func parseModuleShape(name string) (style.ModuleShape, error) {
	switch name {
	case "square":
		return style.ModuleSquare, nil
	case "circle":
		return style.ModuleCircle, nil
	default:
		return 0, fmt.Errorf("invalid module shape: %s (must be 'square' or 'circle')", name)
	}
}
