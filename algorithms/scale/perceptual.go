package scale

import (
	"fmt"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/spectral"
)

// MelScale spaces bands evenly on the mel scale.
type MelScale struct {
	warped
	fmin, fmax float64
}

// NewMelScale places bands bands evenly in mel between fmin and fmax plus
// beyond extra bands on each side.
func NewMelScale(fmin, fmax float64, bands, beyond int) (*MelScale, error) {
	if err := validateRange(fmin, fmax, bands); err != nil {
		return nil, err
	}
	if err := validateBeyond(beyond); err != nil {
		return nil, err
	}

	mel := spectral.NewMelScale()
	lo, step := evenlyWarped(mel.HzToMel(fmin), mel.HzToMel(fmax), bands, beyond)

	f := func(b float64) float64 { return mel.MelToHz(lo + b*step) }
	if f(0) <= 0 {
		return nil, fmt.Errorf("mel scale: %d beyond bands push fmin to %g Hz", beyond, f(0))
	}
	return &MelScale{
		warped: warped{bands: bands + 2*beyond, f: f, q: numericQ(f)},
		fmin:   f(0),
		fmax:   f(float64(bands + 2*beyond - 1)),
	}, nil
}

// Range returns the lowest and highest center frequency, beyond bands included
func (s *MelScale) Range() (float64, float64) {
	return s.fmin, s.fmax
}

// BarkScale spaces bands evenly on the bark (critical band) scale.
type BarkScale struct {
	warped
	fmin, fmax float64
}

// NewBarkScale places bands bands evenly in bark between fmin and fmax plus
// beyond extra bands on each side.
func NewBarkScale(fmin, fmax float64, bands, beyond int) (*BarkScale, error) {
	if err := validateRange(fmin, fmax, bands); err != nil {
		return nil, err
	}
	if err := validateBeyond(beyond); err != nil {
		return nil, err
	}

	bark := spectral.NewBarkScale()
	lo, step := evenlyWarped(bark.HzToBark(fmin), bark.HzToBark(fmax), bands, beyond)

	f := func(b float64) float64 { return bark.BarkToHz(lo + b*step) }
	if f(0) <= 0 {
		return nil, fmt.Errorf("bark scale: %d beyond bands push fmin to %g Hz", beyond, f(0))
	}
	return &BarkScale{
		warped: warped{bands: bands + 2*beyond, f: f, q: numericQ(f)},
		fmin:   f(0),
		fmax:   f(float64(bands + 2*beyond - 1)),
	}, nil
}

// Range returns the lowest and highest center frequency, beyond bands included
func (s *BarkScale) Range() (float64, float64) {
	return s.fmin, s.fmax
}

// evenlyWarped returns the extended lower edge and the step of a scale evenly
// spaced in a warped unit.
func evenlyWarped(wmin, wmax float64, bands, beyond int) (lo, step float64) {
	step = (wmax - wmin) / float64(bands-1)
	return wmin - step*float64(beyond), step
}
