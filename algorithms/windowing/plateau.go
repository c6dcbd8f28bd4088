package windowing

import "math"

// Plateau is a tapered rectangle (Tukey-style): flat top with half-Hann
// flanks whose combined width is the taper. The NSGT uses it for the DC and
// Nyquist channels when they are wider than their neighbouring band, so the
// flanks match the neighbour's Hann slope.
type Plateau struct {
	bump
	taper int
}

// NewPlateau creates a centered plateau window. A taper >= size degenerates
// to a plain Hann window; a taper <= 0 gives a rectangle.
func NewPlateau(size, taper int) *Plateau {
	if taper >= size {
		return &Plateau{bump: NewHann(size).bump, taper: size}
	}
	if taper < 0 {
		taper = 0
	}

	flat := float64(size-taper) / 2
	t := float64(taper)
	edge := float64(size) / 2

	return &Plateau{
		bump: newBump("plateau", size, func(d float64) float64 {
			a := math.Abs(d)
			switch {
			case a <= flat:
				return 1
			case a >= edge:
				return 0
			default:
				return 0.5 + 0.5*math.Cos(2*math.Pi*(a-flat)/t)
			}
		}),
		taper: taper,
	}
}

// GetTaper returns the combined flank width
func (p *Plateau) GetTaper() int {
	return p.taper
}
