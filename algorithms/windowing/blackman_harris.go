package windowing

// BlackmanHarris represents a centered 4-term Blackman-Harris window.
// It is much narrower than Hann for the same support, so frames built with it
// need more overlap to stay well conditioned.
type BlackmanHarris struct {
	bump
}

// NewBlackmanHarris creates a centered Blackman-Harris window
func NewBlackmanHarris(size int) *BlackmanHarris {
	return &BlackmanHarris{
		bump: newBump("blackman_harris", size, cosineSum(size, 0.35875, 0.48829, 0.14128, 0.01168)),
	}
}
