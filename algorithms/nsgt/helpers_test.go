package nsgt

import (
	"testing"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/common"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/scale"
	"github.com/RyanBlaney/sonido-nsgt/logging"
)

const roundTripTolerance = 1e-9

// quietConfig is the default config with logging silenced
func quietConfig() *FrameConfig {
	cfg := DefaultFrameConfig()
	cfg.Logger = &logging.NoOpLogger{}
	return cfg
}

func mustBuild(t testing.TB, s scale.Scale, sampleRate float64, length int, cfg *FrameConfig) *Frame {
	t.Helper()
	frame, err := BuildFrame(s, sampleRate, length, cfg)
	if err != nil {
		t.Fatalf("BuildFrame: %v", err)
	}
	return frame
}

func mustCustom(t testing.TB, freqs, bws []float64) scale.Scale {
	t.Helper()
	s, err := scale.NewCustomScale(freqs, bws)
	if err != nil {
		t.Fatalf("NewCustomScale: %v", err)
	}
	return s
}

func mustOctave(t testing.TB, fmin, fmax float64, bpo int) scale.Scale {
	t.Helper()
	s, err := scale.NewOctaveScale(fmin, fmax, bpo, 0)
	if err != nil {
		t.Fatalf("NewOctaveScale: %v", err)
	}
	return s
}

func requireRoundTrip(t *testing.T, x []float64, frame *Frame) {
	t.Helper()
	coeffs, err := Analyze(x, frame)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	y, err := Synthesize(coeffs, frame)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	rel, err := common.RelativeError(y, x)
	if err != nil {
		t.Fatalf("RelativeError: %v", err)
	}
	if rel > roundTripTolerance {
		t.Fatalf("round trip relative error %.3g exceeds %.0g", rel, roundTripTolerance)
	}
}

func maxCoefficientDiff(t *testing.T, a, b Coefficients) float64 {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("block count %d vs %d", len(a), len(b))
	}
	worst := 0.0
	for i := range a {
		d, err := common.MaxAbsDiffComplex(a[i], b[i])
		if err != nil {
			t.Fatalf("block %d: %v", i, err)
		}
		worst = max(worst, d)
	}
	return worst
}
