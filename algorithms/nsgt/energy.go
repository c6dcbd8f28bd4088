package nsgt

import (
	"github.com/RyanBlaney/sonido-nsgt/algorithms/common"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/spectral"
)

// CoefficientEnergy returns Σ_ch M_ch·Σ|c|² / N over the full frame. On a
// real frame each band also stands for its mirror and counts twice.
//
// By Parseval this equals Σ_k D[k]·|X[k]|² / N, so for a tight frame it is
// the signal energy Σx².
func CoefficientEnergy(c Coefficients, frame *Frame) (float64, error) {
	if frame == nil {
		return 0, newError(KindInvalidParameter, "nil frame")
	}
	if err := frame.CheckShape(c); err != nil {
		return 0, err
	}

	total := 0.0
	for i, block := range c {
		ch := &frame.channels[i]
		weight := float64(ch.Coefficients)
		if frame.real && ch.Kind == ChannelBand {
			weight *= 2
		}
		total += weight * common.ComplexEnergy(block)
	}
	return total / float64(frame.length), nil
}

// SpectralEnergy returns Σ_k D[k]·|X[k]|² / N, the energy the frame assigns
// to signal. CoefficientEnergy of Analyze(signal) matches it for any frame.
func SpectralEnergy(signal []float64, frame *Frame) (float64, error) {
	if frame == nil {
		return 0, newError(KindInvalidParameter, "nil frame")
	}
	if len(signal) != frame.length {
		return 0, newError(KindLengthMismatch, "signal has %d samples, frame expects %d", len(signal), frame.length)
	}

	spectrum := frame.engine.Forward(spectral.ToComplex(signal))
	total := 0.0
	for k, v := range spectrum {
		total += frame.diagonal[k] * (real(v)*real(v) + imag(v)*imag(v))
	}
	return total / float64(frame.length), nil
}

// SignalEnergy returns Σx²
func SignalEnergy(signal []float64) float64 {
	return common.Energy(signal)
}
