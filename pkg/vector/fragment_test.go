package vector

import (
	"bytes"
	"strings"
	"testing"

	"github.com/qrink/qrink/pkg/errors"
)

func TestParseFragment(t *testing.T) {
	tests := []struct {
		name       string
		markup     string
		wantWidth  float64
		wantHeight float64
		wantInner  string
	}{
		{
			name:       "numeric dimensions",
			markup:     `<svg width="100" height="50"><path d="M0 0"/></svg>`,
			wantWidth:  100,
			wantHeight: 50,
			wantInner:  `<path d="M0 0"/>`,
		},
		{
			name:       "percentage resolves against reference box",
			markup:     `<svg width="50%" height="25%"><rect/></svg>`,
			wantWidth:  160,
			wantHeight: 80,
			wantInner:  `<rect/>`,
		},
		{
			name:       "missing dimensions default to reference box",
			markup:     `<svg viewBox="0 0 10 10"><circle r="5"/></svg>`,
			wantWidth:  320,
			wantHeight: 320,
			wantInner:  `<circle r="5"/>`,
		},
		{
			name:       "xml declaration is stripped",
			markup:     `<?xml version="1.0"?><svg width="64" height="64"><g/></svg>`,
			wantWidth:  64,
			wantHeight: 64,
			wantInner:  `<g/>`,
		},
		{
			name:       "bare markup without svg wrapper",
			markup:     `<path d="M1 1"/>`,
			wantWidth:  320,
			wantHeight: 320,
			wantInner:  `<path d="M1 1"/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, err := ParseFragment(tt.markup)
			if err != nil {
				t.Fatalf("ParseFragment() error = %v", err)
			}
			if frag.Width != tt.wantWidth || frag.Height != tt.wantHeight {
				t.Errorf("dimensions = %vx%v, want %vx%v", frag.Width, frag.Height, tt.wantWidth, tt.wantHeight)
			}
			if frag.Inner != tt.wantInner {
				t.Errorf("inner = %q, want %q", frag.Inner, tt.wantInner)
			}
		})
	}
}

func TestParseFragmentErrors(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{name: "empty input", markup: ""},
		{name: "only xml declaration", markup: `<?xml version="1.0"?>`},
		{name: "garbage dimension", markup: `<svg width="abc"><g/></svg>`},
		{name: "zero dimension", markup: `<svg width="0" height="10"><g/></svg>`},
		{name: "negative dimension", markup: `<svg width="-4"><g/></svg>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFragment(tt.markup)
			if err == nil {
				t.Fatal("ParseFragment() expected error")
			}
			if errors.GetCode(err) != errors.ErrCodeInvalidInput {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestFragmentCompose(t *testing.T) {
	frag := Fragment{Width: 320, Height: 320, Inner: `<circle r="5"/>`}

	var buf bytes.Buffer
	frag.Compose(&buf, 400, 400)

	out := buf.String()
	// scale = 400/320 * 0.25 = 0.3125; scaled size 100; centered at 150.
	if !strings.Contains(out, `<g transform="translate(150.00 150.00) scale(0.3125)">`) {
		t.Errorf("unexpected transform:\n%s", out)
	}
	if !strings.Contains(out, `<circle r="5"/>`) {
		t.Errorf("inner markup not embedded verbatim:\n%s", out)
	}
	if !strings.Contains(out, "</g>") {
		t.Errorf("group not closed:\n%s", out)
	}
}

func TestFragmentComposeNonSquare(t *testing.T) {
	frag := Fragment{Width: 100, Height: 50, Inner: `<path d="M0 0"/>`}

	var buf bytes.Buffer
	frag.Compose(&buf, 200, 100)

	// Longest sides: surface 200, fragment 100; scale = 200/100*0.25 = 0.5.
	// Scaled fragment is 50x25; tx = (200-50)/2 = 75, ty = (100-25)/2 = 37.5.
	if !strings.Contains(buf.String(), `translate(75.00 37.50) scale(0.5000)`) {
		t.Errorf("unexpected transform:\n%s", buf.String())
	}
}

func TestExportWithFragment(t *testing.T) {
	out, err := Export(nil, 400, 400, nil, `<svg width="320" height="320"><circle r="5"/></svg>`)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(out, `scale(0.3125)`) {
		t.Errorf("fragment not composited:\n%s", out)
	}

	if _, err := Export(nil, 400, 400, nil, `<?xml version="1.0"?>`); err == nil {
		t.Error("Export() expected error for unparsable fragment")
	}
}
