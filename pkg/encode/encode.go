// Package encode adapts the QR symbol encoder into the immutable module
// matrix consumed by the rendering pipeline.
//
// Encoding, masking and error-correction capacity selection are delegated to
// github.com/yeqown/go-qrcode/v2; this package only captures the resulting
// module grid and surfaces construction failures as structured errors. The
// returned Matrix is read-only and safe for concurrent use.
package encode

import (
	qrcode "github.com/yeqown/go-qrcode/v2"

	"github.com/qrink/qrink/pkg/errors"
)

// Level is the QR error-correction level.
type Level int

// Error-correction levels in increasing order of redundancy.
const (
	LevelLow Level = iota
	LevelMedium
	LevelQuart
	LevelHigh
)

// String returns the conventional single-letter name.
func (l Level) String() string {
	switch l {
	case LevelLow:
		return "L"
	case LevelMedium:
		return "M"
	case LevelQuart:
		return "Q"
	case LevelHigh:
		return "H"
	default:
		return "?"
	}
}

// correction maps the level onto the encoder's error-correction option.
// The encoder keeps its level type unexported, so the mapping is expressed
// through its option constructor.
func (l Level) correction() (qrcode.EncodeOption, error) {
	switch l {
	case LevelLow:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow), nil
	case LevelMedium:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium), nil
	case LevelQuart:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart), nil
	case LevelHigh:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidLevel, "unknown error correction level %d", int(l))
	}
}

// Matrix is the immutable boolean module grid of an encoded symbol.
type Matrix struct {
	modules [][]bool
}

// ModuleCount returns the number of modules per side.
func (m *Matrix) ModuleCount() int { return len(m.modules) }

// IsDark reports whether the module at (row, col) is dark.
// Out-of-range positions are light.
func (m *Matrix) IsDark(row, col int) bool {
	if row < 0 || row >= len(m.modules) || col < 0 || col >= len(m.modules) {
		return false
	}
	return m.modules[row][col]
}

// Symbol is an encoded QR symbol: the module matrix plus the version and
// error-correction level it was encoded with.
type Symbol struct {
	Matrix  *Matrix
	Version int
	Level   Level
}

// Option configures encoding.
type Option func(*options)

type options struct {
	version int
	level   Level
}

// WithVersion pins the symbol version (1-40). Zero selects automatically.
func WithVersion(v int) Option {
	return func(o *options) { o.version = v }
}

// WithLevel sets the error-correction level. Default is Quart, matching the
// common styled-QR convention of reserving headroom for an embedded image.
func WithLevel(l Level) Option {
	return func(o *options) { o.level = l }
}

// New encodes content into a Symbol.
//
// Failures are construction-fatal: an unsupported version, an unknown level
// or content exceeding the capacity of the requested version/level returns an
// error and no symbol. There is no partially usable result.
func New(content string, opts ...Option) (*Symbol, error) {
	o := options{level: LevelQuart}
	for _, opt := range opts {
		opt(&o)
	}

	if content == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "content must not be empty")
	}
	if o.version != 0 && (o.version < 1 || o.version > 40) {
		return nil, errors.New(errors.ErrCodeInvalidVersion, "version %d out of range 1-40", o.version)
	}

	correction, err := o.level.correction()
	if err != nil {
		return nil, err
	}

	encOpts := []qrcode.EncodeOption{correction}
	if o.version != 0 {
		encOpts = append(encOpts, qrcode.WithVersion(o.version))
	}

	qrc, err := qrcode.NewWith(content, encOpts...)
	if err != nil {
		if o.version != 0 {
			return nil, errors.Wrap(errors.ErrCodeCapacityExceeded, err,
				"content does not fit version %d at level %s", o.version, o.level)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encoding failed")
	}

	cap := &matrixCapture{}
	if err := qrc.Save(cap); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "capturing module matrix")
	}
	if cap.matrix.ModuleCount() == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "encoder produced an empty matrix")
	}

	return &Symbol{
		Matrix:  cap.matrix,
		Version: versionForCount(cap.matrix.ModuleCount()),
		Level:   o.level,
	}, nil
}

// versionForCount recovers the symbol version from the module count
// (21 modules is version 1, each version adds 4).
func versionForCount(n int) int {
	return (n-21)/4 + 1
}

// matrixCapture implements qrcode.Writer to copy the module grid out of the
// encoder without producing any image output.
type matrixCapture struct {
	matrix *Matrix
}

func (c *matrixCapture) Write(mat qrcode.Matrix) error {
	n := mat.Width()
	modules := make([][]bool, n)
	for i := range modules {
		modules[i] = make([]bool, n)
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		if y < n && x < n {
			modules[y][x] = v.IsSet()
		}
	})
	c.matrix = &Matrix{modules: modules}
	return nil
}

func (c *matrixCapture) Close() error { return nil }

// NewMatrix builds a matrix directly from a boolean grid. Rows shorter than
// the grid side are padded light. Intended for tests and for callers that
// already hold a module grid from elsewhere.
func NewMatrix(modules [][]bool) *Matrix {
	n := len(modules)
	copied := make([][]bool, n)
	for i, row := range modules {
		copied[i] = make([]bool, n)
		copy(copied[i], row)
	}
	return &Matrix{modules: copied}
}
