package encode

import (
	"testing"

	"github.com/qrink/qrink/pkg/errors"
)

func TestNewEncodesContent(t *testing.T) {
	sym, err := New("https://example.com")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	n := sym.Matrix.ModuleCount()
	if n < 21 || (n-21)%4 != 0 {
		t.Errorf("ModuleCount() = %d, want 21+4k", n)
	}
	if sym.Version != (n-21)/4+1 {
		t.Errorf("Version = %d, inconsistent with module count %d", sym.Version, n)
	}

	// Finder pattern corners are dark in any valid symbol.
	for _, pos := range [][2]int{{0, 0}, {0, n - 1}, {n - 1, 0}} {
		if !sym.Matrix.IsDark(pos[0], pos[1]) {
			t.Errorf("IsDark(%d, %d) = false, want true (finder corner)", pos[0], pos[1])
		}
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		opts     []Option
		wantCode errors.Code
	}{
		{
			name:     "empty content",
			content:  "",
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "version too small",
			content:  "hello",
			opts:     []Option{WithVersion(-1)},
			wantCode: errors.ErrCodeInvalidVersion,
		},
		{
			name:     "version too large",
			content:  "hello",
			opts:     []Option{WithVersion(41)},
			wantCode: errors.ErrCodeInvalidVersion,
		},
		{
			name:     "unknown level",
			content:  "hello",
			opts:     []Option{WithLevel(Level(99))},
			wantCode: errors.ErrCodeInvalidLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.content, tt.opts...); !errors.Is(err, tt.wantCode) {
				t.Errorf("New() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestNewCapacityExceeded(t *testing.T) {
	long := make([]byte, 0, 512)
	for i := 0; i < 512; i++ {
		long = append(long, 'a')
	}
	// Version 1 at high correction holds well under 512 bytes.
	_, err := New(string(long), WithVersion(1), WithLevel(LevelHigh))
	if !errors.Is(err, errors.ErrCodeCapacityExceeded) {
		t.Errorf("New() error = %v, want CAPACITY_EXCEEDED", err)
	}
}

func TestMatrixIsDarkBounds(t *testing.T) {
	m := NewMatrix([][]bool{
		{true, false},
		{false, true},
	})

	tests := []struct {
		name     string
		row, col int
		want     bool
	}{
		{name: "dark cell", row: 0, col: 0, want: true},
		{name: "light cell", row: 0, col: 1, want: false},
		{name: "negative row", row: -1, col: 0, want: false},
		{name: "row past end", row: 2, col: 0, want: false},
		{name: "col past end", row: 0, col: 2, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsDark(tt.row, tt.col); got != tt.want {
				t.Errorf("IsDark(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestNewMatrixCopies(t *testing.T) {
	grid := [][]bool{{true}}
	m := NewMatrix(grid)
	grid[0][0] = false
	if !m.IsDark(0, 0) {
		t.Error("NewMatrix should copy the grid, not alias it")
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelLow, "L"},
		{LevelMedium, "M"},
		{LevelQuart, "Q"},
		{LevelHigh, "H"},
		{Level(9), "?"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}

func TestLevelCorrection(t *testing.T) {
	for _, l := range []Level{LevelLow, LevelMedium, LevelQuart, LevelHigh} {
		t.Run(l.String(), func(t *testing.T) {
			opt, err := l.correction()
			if err != nil {
				t.Fatalf("correction() error = %v", err)
			}
			if opt == nil {
				t.Fatal("correction() returned nil option")
			}
			// The option must be accepted by the encoder as-is.
			if _, err := New("https://example.com", WithLevel(l)); err != nil {
				t.Errorf("New() with level %s error = %v", l, err)
			}
		})
	}

	if _, err := Level(42).correction(); !errors.Is(err, errors.ErrCodeInvalidLevel) {
		t.Errorf("correction() for unknown level: err = %v, want %v", err, errors.ErrCodeInvalidLevel)
	}
}
