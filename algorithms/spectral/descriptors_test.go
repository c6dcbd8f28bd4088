package spectral

import (
	"math"
	"testing"
)

func TestDescriptors(t *testing.T) {
	freqs := []float64{100, 200, 400, 800}

	// all weight on one frequency
	peak := []float64{0, 0, 5, 0}
	if c := Centroid(freqs, peak); c != 400 {
		t.Fatalf("Centroid = %v, want 400", c)
	}
	if s := Spread(freqs, peak, 400); s != 0 {
		t.Fatalf("Spread = %v, want 0", s)
	}
	if r := Rolloff(freqs, peak, 0.85); r != 400 {
		t.Fatalf("Rolloff = %v, want 400", r)
	}
	if f := Flatness(peak); f > 1e-6 {
		t.Fatalf("Flatness of a single peak = %v, want ~0", f)
	}
	if c := Crest(peak); math.Abs(c-2) > 1e-12 {
		t.Fatalf("Crest = %v, want 2", c)
	}

	// two equal weights on a non-uniform axis
	pair := []float64{1, 0, 0, 1}
	if c := Centroid(freqs, pair); c != 450 {
		t.Fatalf("Centroid = %v, want 450", c)
	}
	if s := Spread(freqs, pair, 450); s != 350 {
		t.Fatalf("Spread = %v, want 350", s)
	}
	if r := Rolloff(freqs, pair, 0.5); r != 100 {
		t.Fatalf("Rolloff(0.5) = %v, want 100", r)
	}

	flat := []float64{2, 2, 2, 2}
	if f := Flatness(flat); math.Abs(f-1) > 1e-12 {
		t.Fatalf("Flatness of a flat distribution = %v, want 1", f)
	}
	if c := Crest(flat); math.Abs(c-1) > 1e-12 {
		t.Fatalf("Crest of a flat distribution = %v, want 1", c)
	}

	zero := make([]float64, 4)
	if Centroid(freqs, zero) != 0 || Spread(freqs, zero, 0) != 0 || Rolloff(freqs, zero, 0.85) != 0 ||
		Flatness(zero) != 0 || Crest(zero) != 0 || Flatness(nil) != 0 || Crest(nil) != 0 {
		t.Fatal("descriptors of an all-zero distribution should be 0")
	}
}
