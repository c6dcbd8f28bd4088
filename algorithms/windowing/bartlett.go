package windowing

import "math"

// Bartlett represents a centered triangular window, the shape of the classic
// mel filterbank bands
type Bartlett struct {
	bump
}

// NewBartlett creates a centered Bartlett window
func NewBartlett(size int) *Bartlett {
	half := float64(size) / 2
	return &Bartlett{
		bump: newBump("bartlett", size, func(d float64) float64 {
			return math.Max(0, 1-math.Abs(d)/half)
		}),
	}
}
