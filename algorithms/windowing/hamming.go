package windowing

// Hamming represents a centered Hamming window. Its edges do not reach zero,
// so neighbouring channels overlap with a pedestal.
type Hamming struct {
	bump
}

// NewHamming creates a centered Hamming window
func NewHamming(size int) *Hamming {
	return &Hamming{bump: newBump("hamming", size, cosineSum(size, 0.54, 0.46))}
}
