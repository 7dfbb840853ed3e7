package vector

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/qrink/qrink/pkg/errors"
)

// referenceBox is the assumed reference size, in SVG units, against which
// percentage fragment dimensions are resolved. Inherited from the reference
// implementation; exposed as a constant rather than buried in the parser.
const referenceBox = 320.0

// fragmentScaleFraction sizes a composited fragment relative to the surface,
// mirroring the default overlay fraction on the raster path.
const fragmentScaleFraction = 0.25

var (
	widthAttrRe  = regexp.MustCompile(`\bwidth\s*=\s*"([^"]+)"`)
	heightAttrRe = regexp.MustCompile(`\bheight\s*=\s*"([^"]+)"`)
	openTagRe    = regexp.MustCompile(`(?s)<svg\b[^>]*>`)
	xmlDeclRe    = regexp.MustCompile(`(?s)<\?xml[^?]*\?>`)
)

// Fragment is an external vector snippet (typically a logo) prepared for
// composition into an exported document.
type Fragment struct {
	Width  float64 // declared width in SVG units
	Height float64 // declared height in SVG units
	Inner  string  // markup inside the outer wrapper, embedded verbatim
}

// ParseFragment extracts the declared dimensions and inner markup of a
// vector fragment. Dimensions may be numeric or percentages of the
// reference box; missing dimensions default to the full reference box.
func ParseFragment(markup string) (Fragment, error) {
	trimmed := strings.TrimSpace(xmlDeclRe.ReplaceAllString(markup, ""))
	if trimmed == "" {
		return Fragment{}, errors.New(errors.ErrCodeInvalidInput, "empty vector fragment")
	}

	frag := Fragment{Width: referenceBox, Height: referenceBox, Inner: trimmed}

	open := openTagRe.FindString(trimmed)
	if open != "" {
		inner := trimmed[strings.Index(trimmed, open)+len(open):]
		if end := strings.LastIndex(inner, "</svg>"); end >= 0 {
			inner = inner[:end]
		}
		frag.Inner = strings.TrimSpace(inner)

		if m := widthAttrRe.FindStringSubmatch(open); m != nil {
			w, err := parseDimension(m[1])
			if err != nil {
				return Fragment{}, err
			}
			frag.Width = w
		}
		if m := heightAttrRe.FindStringSubmatch(open); m != nil {
			h, err := parseDimension(m[1])
			if err != nil {
				return Fragment{}, err
			}
			frag.Height = h
		}
	}

	if frag.Width <= 0 || frag.Height <= 0 {
		return Fragment{}, errors.New(errors.ErrCodeInvalidInput, "vector fragment declares non-positive size %vx%v", frag.Width, frag.Height)
	}
	return frag, nil
}

// parseDimension resolves a numeric or percentage dimension value.
func parseDimension(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if pct, ok := strings.CutSuffix(v, "%"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid fragment dimension %q", v)
		}
		return f / 100 * referenceBox, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid fragment dimension %q", v)
	}
	return f, nil
}

// Compose writes the fragment into buf inside a group transform that scales
// it to a quarter of the surface's longest side and centers it.
func (f Fragment) Compose(buf *bytes.Buffer, width, height float64) {
	surfMax := width
	if height > surfMax {
		surfMax = height
	}
	fragMax := f.Width
	if f.Height > fragMax {
		fragMax = f.Height
	}

	scale := surfMax / fragMax * fragmentScaleFraction
	tx := (width - f.Width*scale) / 2
	ty := (height - f.Height*scale) / 2

	fmt.Fprintf(buf, `  <g transform="translate(%.2f %.2f) scale(%.4f)">`+"\n", tx, ty, scale)
	buf.WriteString("    " + f.Inner + "\n")
	buf.WriteString("  </g>\n")
}
