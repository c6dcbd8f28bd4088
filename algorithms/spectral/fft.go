package spectral

import (
	"fmt"
	"strings"

	"github.com/mjibson/go-dsp/fft"
)

// Engine is the complex DFT primitive consumed by the transform. Both
// directions preserve length and accept any length. Forward is unnormalized,
// Inverse is scaled by 1/n so that Inverse(Forward(x)) == x.
//
// Implementations must be safe for concurrent calls on independent buffers.
type Engine interface {
	Forward(x []complex128) []complex128
	Inverse(x []complex128) []complex128
	Name() string
}

// Engine names accepted by NewEngine
const (
	EngineGoDSP = "godsp"
	EngineGonum = "gonum"
)

// NewEngine returns the engine registered under name ("" selects go-dsp).
func NewEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineGoDSP, "go-dsp":
		return NewFFT(), nil
	case EngineGonum:
		return NewGonumFFT(), nil
	default:
		return nil, fmt.Errorf("unknown FFT engine %q", name)
	}
}

// FFT provides Fast Fourier Transform functionality backed by mjibson/go-dsp.
// go-dsp caches its twiddle factors behind locks, so one FFT may be shared.
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Name identifies the engine
func (f *FFT) Name() string {
	return EngineGoDSP
}

// Forward computes the unnormalized DFT of x
func (f *FFT) Forward(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	// mjibson/go-dsp handles all sizes, non-power-of-2 via Bluestein
	return fft.FFT(x)
}

// Inverse computes the normalized inverse DFT of x
func (f *FFT) Inverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.IFFT(x)
}

// Compute computes the FFT of a real signal
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.FFTReal(x)
}

// ComputeInverseReal computes the inverse FFT and returns the real part only
func (f *FFT) ComputeInverseReal(x []complex128) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	return RealPart(fft.IFFT(x))
}

// ToComplex widens a real signal
func ToComplex(x []float64) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(v, 0)
	}
	return out
}

// RealPart drops the imaginary part of x
func RealPart(x []complex128) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = real(v)
	}
	return out
}
