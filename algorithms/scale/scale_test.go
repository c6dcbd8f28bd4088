package scale

import (
	"math"
	"testing"
)

func TestOctaveScale(t *testing.T) {
	s, err := NewOctaveScale(100, 6400, 12, 0)
	if err != nil {
		t.Fatalf("NewOctaveScale: %v", err)
	}
	// six octaves at 12 bands per octave
	if s.Len() != 73 {
		t.Fatalf("Len = %d, want 73", s.Len())
	}

	f0, _ := s.FrequencyAndBandwidth(0)
	fl, _ := s.FrequencyAndBandwidth(s.Len() - 1)
	if math.Abs(f0-100) > 1e-9 || math.Abs(fl-6400) > 1e-6 {
		t.Fatalf("range = [%v, %v], want [100, 6400]", f0, fl)
	}

	f12, _ := s.FrequencyAndBandwidth(12)
	if math.Abs(f12-200) > 1e-9 {
		t.Fatalf("band 12 = %v, want one octave above fmin", f12)
	}

	for i, q := range QFactors(s) {
		if math.Abs(q-s.Q()) > 1e-9 {
			t.Fatalf("band %d Q = %v, want constant %v", i, q, s.Q())
		}
	}
}

func TestOctaveScaleBeyond(t *testing.T) {
	s, err := NewOctaveScale(100, 800, 1, 2)
	if err != nil {
		t.Fatalf("NewOctaveScale: %v", err)
	}
	if s.Len() != 4+4 {
		t.Fatalf("Len = %d, want 8", s.Len())
	}
	lo, hi := s.Range()
	if math.Abs(lo-25) > 1e-9 || math.Abs(hi-3200) > 1e-6 {
		t.Fatalf("Range = [%v, %v], want [25, 3200]", lo, hi)
	}
}

func TestLogScaleBandsMeet(t *testing.T) {
	s, err := NewLogScale(50, 5000, 24, 0)
	if err != nil {
		t.Fatalf("NewLogScale: %v", err)
	}
	if s.Len() != 24 {
		t.Fatalf("Len = %d, want 24", s.Len())
	}

	// constant-Q bandwidth reaches from neighbour to neighbour:
	// bw = 2f·(sqrt(r) − 1/sqrt(r)) for ratio r.
	freqs := Frequencies(s)
	bws := Bandwidths(s)
	r := freqs[1] / freqs[0]
	for i := range freqs {
		want := 2 * freqs[i] * (math.Sqrt(r) - 1/math.Sqrt(r))
		if math.Abs(bws[i]-want) > 1e-9*want {
			t.Fatalf("band %d bandwidth = %v, want %v", i, bws[i], want)
		}
	}
}

func TestLinearScale(t *testing.T) {
	s, err := NewLinearScale(200, 1100, 10, 1)
	if err != nil {
		t.Fatalf("NewLinearScale: %v", err)
	}
	if s.Len() != 12 {
		t.Fatalf("Len = %d, want 12", s.Len())
	}
	if s.Spacing() != 100 {
		t.Fatalf("Spacing = %v, want 100", s.Spacing())
	}

	for i := range s.Len() {
		f, bw := s.FrequencyAndBandwidth(i)
		if want := float64(i+1) * 100; math.Abs(f-want) > 1e-9 {
			t.Fatalf("band %d frequency = %v, want %v", i, f, want)
		}
		if math.Abs(bw-200) > 1e-9 {
			t.Fatalf("band %d bandwidth = %v, want 200", i, bw)
		}
	}
}

func TestLinearScaleBeyondBelowZero(t *testing.T) {
	if _, err := NewLinearScale(100, 1000, 10, 2); err == nil {
		t.Fatal("expected an error when beyond bands reach 0 Hz")
	}
}

func TestPerceptualScales(t *testing.T) {
	mel, err := NewMelScale(40, 8000, 40, 0)
	if err != nil {
		t.Fatalf("NewMelScale: %v", err)
	}
	bark, err := NewBarkScale(20, 8000, 24, 0)
	if err != nil {
		t.Fatalf("NewBarkScale: %v", err)
	}

	for name, s := range map[string]Scale{"mel": mel, "bark": bark} {
		freqs := Frequencies(s)
		bws := Bandwidths(s)
		for i := 1; i < len(freqs); i++ {
			if freqs[i] <= freqs[i-1] {
				t.Fatalf("%s: frequencies not increasing at %d", name, i)
			}
			if bws[i] <= 0 {
				t.Fatalf("%s: band %d bandwidth %v", name, i, bws[i])
			}
		}
		// bandwidth is twice the local spacing; check it between neighbours
		for i := 1; i < len(freqs)-1; i++ {
			spacing := freqs[i+1] - freqs[i-1]
			if math.Abs(bws[i]-spacing) > 0.05*spacing {
				t.Fatalf("%s: band %d bandwidth %v, neighbour spacing %v", name, i, bws[i], spacing)
			}
		}
	}

	lo, hi := mel.Range()
	if math.Abs(lo-40) > 1e-6 || math.Abs(hi-8000) > 1e-6 {
		t.Fatalf("mel Range = [%v, %v]", lo, hi)
	}
}

func TestMelScaleBeyondBelowZero(t *testing.T) {
	if _, err := NewMelScale(10, 8000, 10, 3); err == nil {
		t.Fatal("expected an error when beyond bands reach 0 Hz")
	}
}

func TestConstructorErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"octave zero fmin", func() error { _, err := NewOctaveScale(0, 100, 12, 0); return err }},
		{"octave bpo", func() error { _, err := NewOctaveScale(50, 100, 0, 0); return err }},
		{"log inverted", func() error { _, err := NewLogScale(200, 100, 12, 0); return err }},
		{"log one band", func() error { _, err := NewLogScale(100, 200, 1, 0); return err }},
		{"linear nan", func() error { _, err := NewLinearScale(math.NaN(), 200, 4, 0); return err }},
		{"mel negative beyond", func() error { _, err := NewMelScale(100, 200, 4, -1); return err }},
		{"bark inf", func() error { _, err := NewBarkScale(100, math.Inf(1), 4, 0); return err }},
		{"custom empty", func() error { _, err := NewCustomScale(nil, nil); return err }},
		{"custom mismatch", func() error { _, err := NewCustomScale([]float64{1, 2}, []float64{1}); return err }},
		{"custom zero q", func() error { _, err := NewCustomScaleQ([]float64{1, 2}, 0); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.fn() == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCustomScaleCopiesInput(t *testing.T) {
	freqs := []float64{100, 200}
	bws := []float64{50, 60}
	s, err := NewCustomScale(freqs, bws)
	if err != nil {
		t.Fatalf("NewCustomScale: %v", err)
	}
	freqs[0] = 999
	bws[0] = 999

	f, bw := s.FrequencyAndBandwidth(0)
	if f != 100 || bw != 50 {
		t.Fatalf("scale aliases caller slices: got (%v, %v)", f, bw)
	}

	q, err := NewCustomScaleQ([]float64{100, 400}, 4)
	if err != nil {
		t.Fatalf("NewCustomScaleQ: %v", err)
	}
	if _, bw := q.FrequencyAndBandwidth(1); bw != 100 {
		t.Fatalf("bandwidth = %v, want 100", bw)
	}
}

func TestFingerprint(t *testing.T) {
	a, _ := NewLogScale(50, 5000, 24, 0)
	b, _ := NewLogScale(50, 5000, 24, 0)
	c, _ := NewLogScale(50, 5000, 25, 0)

	if Fingerprint(a) != Fingerprint(b) {
		t.Fatal("identical scales should share a fingerprint")
	}
	if Fingerprint(a) == Fingerprint(c) {
		t.Fatal("different scales should not share a fingerprint")
	}

	custom, _ := NewCustomScale(Frequencies(a), Bandwidths(a))
	if Fingerprint(custom) != Fingerprint(a) {
		t.Fatal("fingerprint should depend only on the table")
	}
}
