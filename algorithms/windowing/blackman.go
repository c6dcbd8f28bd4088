package windowing

// Blackman represents a centered Blackman window
type Blackman struct {
	bump
}

// NewBlackman creates a centered Blackman window
func NewBlackman(size int) *Blackman {
	return &Blackman{bump: newBump("blackman", size, cosineSum(size, 0.42, 0.5, 0.08))}
}
