package windowing

// Welch is the parabolic bump 1 - (2d/L)²
type Welch struct {
	bump
}

// NewWelch creates a centered Welch window
func NewWelch(size int) *Welch {
	half := float64(size) / 2
	return &Welch{bump: newBump("welch", size, func(d float64) float64 {
		r := d / half
		return max(0, 1-r*r)
	})}
}
