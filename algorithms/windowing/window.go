// Package windowing provides the bump windows placed on the frequency axis by
// the NSGT frame builder.
//
// All windows are stored in centered form: sample j of a window of size L
// sits at offset d = j - L/2 from the channel's center bin, so the peak is at
// index L/2. For even L the unpaired edge sample (d = -L/2) is zero, which
// makes every window symmetric in d: w(d) == w(-d) for every offset in the
// support. Mirrored channels rely on that.
package windowing

import (
	"fmt"
	"math"
	"strings"
)

// Shape selects the bump used for band channels.
type Shape string

const (
	ShapeHann           Shape = "hann"
	ShapeHamming        Shape = "hamming"
	ShapeBlackman       Shape = "blackman"
	ShapeBlackmanHarris Shape = "blackman_harris"
	ShapeBartlett       Shape = "bartlett"
	ShapeWelch          Shape = "welch"
	ShapeKaiser         Shape = "kaiser"
)

// Shapes lists the supported shapes.
func Shapes() []Shape {
	return []Shape{ShapeHann, ShapeHamming, ShapeBlackman, ShapeBlackmanHarris, ShapeBartlett, ShapeWelch, ShapeKaiser}
}

// ParseShape resolves a shape name. Matching is case-insensitive and accepts
// "-" in place of "_".
func ParseShape(s string) (Shape, error) {
	name := Shape(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if name == "" {
		return ShapeHann, nil
	}
	for _, shape := range Shapes() {
		if shape == name {
			return shape, nil
		}
	}
	return "", fmt.Errorf("unknown window shape %q", s)
}

// Window is a real-valued window applied to frequency bins.
type Window interface {
	GetCoefficients() []float64
	GetSize() int
	GetType() string
	ApplyInPlace(bins []complex128) error
}

// Bump builds a centered window of the given shape and size.
func Bump(shape Shape, size int) (Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}

	switch shape {
	case ShapeHann, "":
		return NewHann(size), nil
	case ShapeHamming:
		return NewHamming(size), nil
	case ShapeBlackman:
		return NewBlackman(size), nil
	case ShapeBlackmanHarris:
		return NewBlackmanHarris(size), nil
	case ShapeBartlett:
		return NewBartlett(size), nil
	case ShapeWelch:
		return NewWelch(size), nil
	case ShapeKaiser:
		return NewKaiser(size, DefaultKaiserBeta), nil
	default:
		return nil, fmt.Errorf("unknown window shape %q", shape)
	}
}

// bump holds the coefficients shared by every centered window type.
type bump struct {
	kind         string
	coefficients []float64
}

// offset returns d for sample j of a window of the given size.
func offset(j, size int) int {
	return j - size/2
}

// newBump evaluates f at every offset of the support and zeroes the unpaired
// edge sample of even sizes.
func newBump(kind string, size int, f func(d float64) float64) bump {
	coeffs := make([]float64, size)
	for j := range size {
		coeffs[j] = f(float64(offset(j, size)))
	}
	if size%2 == 0 && size > 1 {
		coeffs[0] = 0
	}
	return bump{kind: kind, coefficients: coeffs}
}

// cosineSum evaluates sum_k a_k cos(2πkd/L), the centered form of the
// periodic cosine-sum windows.
func cosineSum(size int, a ...float64) func(d float64) float64 {
	l := float64(size)
	return func(d float64) float64 {
		v := 0.0
		for k, ak := range a {
			v += ak * math.Cos(2*math.Pi*float64(k)*d/l)
		}
		return v
	}
}

// ApplyInPlace multiplies bins element-wise by the window
func (b *bump) ApplyInPlace(bins []complex128) error {
	if len(bins) != len(b.coefficients) {
		return fmt.Errorf("bins length (%d) doesn't match window size (%d)", len(bins), len(b.coefficients))
	}

	for i, w := range b.coefficients {
		bins[i] *= complex(w, 0)
	}

	return nil
}

// GetCoefficients returns a copy of the window coefficients
func (b *bump) GetCoefficients() []float64 {
	coeffs := make([]float64, len(b.coefficients))
	copy(coeffs, b.coefficients)
	return coeffs
}

// GetSize returns the window size
func (b *bump) GetSize() int {
	return len(b.coefficients)
}

// GetType returns the window type
func (b *bump) GetType() string {
	return b.kind
}
