package spectral

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Shape descriptors of a nonnegative distribution over a frequency axis.
// The axis need not be uniform, so they apply to the per-channel energies of
// a nonstationary frame as well as to FFT bins. freqs and weights must have
// the same length; every descriptor returns 0 for an empty or all-zero input.

// flatnessFloor keeps log(0) out of the geometric mean
const flatnessFloor = 1e-10

// Centroid returns the weighted mean frequency Σf·w / Σw
func Centroid(freqs, weights []float64) float64 {
	total := floats.Sum(weights)
	if total == 0 {
		return 0
	}
	return floats.Dot(freqs, weights) / total
}

// Spread returns the weighted standard deviation of frequency around centroid
func Spread(freqs, weights []float64, centroid float64) float64 {
	total := floats.Sum(weights)
	if total == 0 {
		return 0
	}

	numerator := 0.0
	for i, w := range weights {
		diff := freqs[i] - centroid
		numerator += diff * diff * w
	}
	return math.Sqrt(numerator / total)
}

// Rolloff returns the lowest frequency below which threshold (0.85 is
// usual) of the total weight lies. freqs must be ascending.
func Rolloff(freqs, weights []float64, threshold float64) float64 {
	total := floats.Sum(weights)
	if total == 0 {
		return 0
	}

	target := threshold * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if cumulative >= target {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

// Flatness returns the ratio of geometric to arithmetic mean, in [0, 1].
// Values near 0 indicate tonal content, values near 1 noise-like content.
func Flatness(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	arithmetic := floats.Sum(values) / float64(len(values))
	if arithmetic <= flatnessFloor {
		return 0
	}

	logSum := 0.0
	for _, v := range values {
		logSum += math.Log(max(v, flatnessFloor))
	}
	return min(1, math.Exp(logSum/float64(len(values)))/arithmetic)
}

// Crest returns the peak-to-RMS ratio of values
func Crest(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	rms := floats.Norm(values, 2) / math.Sqrt(float64(len(values)))
	if rms == 0 {
		return 0
	}
	return floats.Max(values) / rms
}
