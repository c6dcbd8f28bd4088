// Package scale defines the frequency scales that parametrize an NSGT frame.
//
// A scale is a narrow capability: it reports how many bands it has and, for
// each band, a center frequency and a bandwidth in Hz. The generated scales
// (octave, log, linear, mel, bark) derive bandwidth from a quality factor
// Q = f / bandwidth, so the windows of neighbouring bands meet.
package scale

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
)

// Scale supplies, for each of Len() channels, a center frequency and a
// bandwidth (both Hz).
type Scale interface {
	Len() int
	FrequencyAndBandwidth(index int) (frequency, bandwidth float64)
}

// Frequencies returns the center frequencies of s
func Frequencies(s Scale) []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		out[i], _ = s.FrequencyAndBandwidth(i)
	}
	return out
}

// Bandwidths returns the bandwidths of s
func Bandwidths(s Scale) []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		_, out[i] = s.FrequencyAndBandwidth(i)
	}
	return out
}

// QFactors returns frequency / bandwidth for every band of s
func QFactors(s Scale) []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		f, bw := s.FrequencyAndBandwidth(i)
		out[i] = f / bw
	}
	return out
}

// Fingerprint hashes the (frequency, bandwidth) table of s. Two scales with
// identical tables share a fingerprint regardless of their concrete type.
func Fingerprint(s Scale) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(s.Len()))
	h.Write(buf[:])

	for i := range s.Len() {
		f, bw := s.FrequencyAndBandwidth(i)
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(bw))
		h.Write(buf[:])
	}
	return h.Sum64()
}

// warped is a scale whose band b sits at frequency F(b) for a monotonic
// warping F; bandwidth follows from the quality factor q(b).
type warped struct {
	bands int
	f     func(b float64) float64
	q     func(b float64) float64
}

func (w *warped) Len() int {
	return w.bands
}

func (w *warped) FrequencyAndBandwidth(index int) (float64, float64) {
	b := float64(index)
	f := w.f(b)
	return f, f / w.q(b)
}

// derivativeStep is the band offset used for numeric Q factors
const derivativeStep = 1e-8

// numericQ returns Q(b) = F(b)·δ / (F(b+δ) − F(b−δ)), i.e. bandwidth equal to
// twice the local band spacing.
func numericQ(f func(b float64) float64) func(b float64) float64 {
	return func(b float64) float64 {
		return f(b) * derivativeStep / (f(b+derivativeStep) - f(b-derivativeStep))
	}
}

func validateRange(fmin, fmax float64, bands int) error {
	if math.IsNaN(fmin) || math.IsNaN(fmax) || math.IsInf(fmin, 0) || math.IsInf(fmax, 0) {
		return fmt.Errorf("frequency range must be finite")
	}
	if fmin <= 0 {
		return fmt.Errorf("fmin must be positive, got %g", fmin)
	}
	if fmax <= fmin {
		return fmt.Errorf("fmax (%g) must be greater than fmin (%g)", fmax, fmin)
	}
	if bands < 2 {
		return fmt.Errorf("need at least 2 bands, got %d", bands)
	}
	return nil
}

func validateBeyond(beyond int) error {
	if beyond < 0 {
		return fmt.Errorf("beyond must be non-negative, got %d", beyond)
	}
	return nil
}
