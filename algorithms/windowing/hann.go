package windowing

// Hann is the raised-cosine bump 0.5 + 0.5·cos(2πd/L), the default NSGT
// window. Neighbouring Hann windows at half overlap sum to one.
type Hann struct {
	bump
}

// NewHann creates a centered Hann window
func NewHann(size int) *Hann {
	return &Hann{bump: newBump("hann", size, cosineSum(size, 0.5, 0.5))}
}
