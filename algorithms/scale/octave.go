package scale

import (
	"fmt"
	"math"
)

// OctaveScale is a constant-Q scale with a fixed number of bands per octave.
type OctaveScale struct {
	warped
	fmin, fmax    float64
	binsPerOctave int
	q             float64
}

// NewOctaveScale spans [fmin, fmax] with binsPerOctave bands per octave
// (ceil(octaves·bpo)+1 bands) plus beyond extra bands on each side.
func NewOctaveScale(fmin, fmax float64, binsPerOctave, beyond int) (*OctaveScale, error) {
	if binsPerOctave < 1 {
		return nil, fmt.Errorf("bins per octave must be at least 1, got %d", binsPerOctave)
	}
	if err := validateRange(fmin, fmax, 2); err != nil {
		return nil, err
	}
	if err := validateBeyond(beyond); err != nil {
		return nil, err
	}

	bands := int(math.Ceil(math.Log2(fmax/fmin)*float64(binsPerOctave))) + 1
	lo, hi, ratio, q := geometric(fmin, fmax, bands, beyond)

	return &OctaveScale{
		warped: warped{
			bands: bands + 2*beyond,
			f:     func(b float64) float64 { return lo * math.Pow(ratio, b) },
			q:     func(float64) float64 { return q },
		},
		fmin:          lo,
		fmax:          hi,
		binsPerOctave: binsPerOctave,
		q:             q,
	}, nil
}

// Q returns the constant quality factor
func (s *OctaveScale) Q() float64 {
	return s.q
}

// Range returns the lowest and highest center frequency, beyond bands included
func (s *OctaveScale) Range() (float64, float64) {
	return s.fmin, s.fmax
}

// LogScale is a constant-Q scale with a fixed total number of bands.
type LogScale struct {
	warped
	fmin, fmax float64
	q          float64
}

// NewLogScale places bands geometrically spaced bands on [fmin, fmax] plus
// beyond extra bands on each side.
func NewLogScale(fmin, fmax float64, bands, beyond int) (*LogScale, error) {
	if err := validateRange(fmin, fmax, bands); err != nil {
		return nil, err
	}
	if err := validateBeyond(beyond); err != nil {
		return nil, err
	}

	lo, hi, ratio, q := geometric(fmin, fmax, bands, beyond)

	return &LogScale{
		warped: warped{
			bands: bands + 2*beyond,
			f:     func(b float64) float64 { return lo * math.Pow(ratio, b) },
			q:     func(float64) float64 { return q },
		},
		fmin: lo,
		fmax: hi,
		q:    q,
	}, nil
}

// Q returns the constant quality factor
func (s *LogScale) Q() float64 {
	return s.q
}

// Range returns the lowest and highest center frequency, beyond bands included
func (s *LogScale) Range() (float64, float64) {
	return s.fmin, s.fmax
}

// geometric returns the extended range, the ratio between neighbouring bands
// and the matching constant Q.
func geometric(fmin, fmax float64, bands, beyond int) (lo, hi, ratio, q float64) {
	lfmin := math.Log2(fmin)
	lfmax := math.Log2(fmax)
	odiv := (lfmax - lfmin) / float64(bands-1)

	lo = math.Exp2(lfmin - odiv*float64(beyond))
	hi = math.Exp2(lfmax + odiv*float64(beyond))
	ratio = math.Exp2(odiv)
	q = math.Sqrt(ratio) / (ratio - 1) / 2
	return lo, hi, ratio, q
}
