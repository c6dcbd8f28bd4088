package scale

import "fmt"

// LinearScale spaces bands evenly in Hz; every band is 2·Δf wide.
type LinearScale struct {
	warped
	fmin, fmax float64
	df         float64
}

// NewLinearScale places bands evenly spaced bands on [fmin, fmax] plus beyond
// extra bands on each side. The lowest extended band must stay above 0 Hz.
func NewLinearScale(fmin, fmax float64, bands, beyond int) (*LinearScale, error) {
	if err := validateRange(fmin, fmax, bands); err != nil {
		return nil, err
	}
	if err := validateBeyond(beyond); err != nil {
		return nil, err
	}

	df := (fmax - fmin) / float64(bands-1)
	lo := fmin - df*float64(beyond)
	if lo <= 0 {
		return nil, fmt.Errorf("frequencies must be > 0: %d beyond bands push fmin to %g", beyond, lo)
	}

	return &LinearScale{
		warped: warped{
			bands: bands + 2*beyond,
			f:     func(b float64) float64 { return lo + b*df },
			q:     func(b float64) float64 { return (lo + b*df) / (2 * df) },
		},
		fmin: lo,
		fmax: fmax + df*float64(beyond),
		df:   df,
	}, nil
}

// Spacing returns Δf between neighbouring bands
func (s *LinearScale) Spacing() float64 {
	return s.df
}

// Range returns the lowest and highest center frequency, beyond bands included
func (s *LinearScale) Range() (float64, float64) {
	return s.fmin, s.fmax
}
