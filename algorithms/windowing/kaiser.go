package windowing

import "math"

// DefaultKaiserBeta is the beta used by the "kaiser" shape
const DefaultKaiserBeta = 6.0

// Kaiser is the centered Kaiser-Bessel bump I0(β·sqrt(1-(2d/L)²)) / I0(β).
// Larger beta narrows the main lobe of the window in bins, trading frequency
// overlap for time spread of the atoms.
type Kaiser struct {
	bump
	beta float64
}

// NewKaiser creates a centered Kaiser window
func NewKaiser(size int, beta float64) *Kaiser {
	i0Beta := besselI0(beta)
	half := float64(size) / 2

	return &Kaiser{
		bump: newBump("kaiser", size, func(d float64) float64 {
			r := d / half
			if math.Abs(r) >= 1 {
				return 0
			}
			return besselI0(beta*math.Sqrt(1-r*r)) / i0Beta
		}),
		beta: beta,
	}
}

// GetBeta returns the Kaiser beta parameter
func (k *Kaiser) GetBeta() float64 {
	return k.beta
}

// besselI0 computes the zero-order modified Bessel function of the first
// kind by its power series
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0

	for i := 1; i < 50; i++ {
		term *= (x / (2.0 * float64(i))) * (x / (2.0 * float64(i)))
		sum += term
		if term < 1e-12*sum {
			break
		}
	}

	return sum
}
