package testsignal

import (
	"math"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		check  func(t *testing.T, x []float64)
	}{
		{
			name:   "impulse",
			params: Params{Kind: KindImpulse, Length: 8},
			check: func(t *testing.T, x []float64) {
				if x[0] != 1 {
					t.Fatalf("x[0] = %v, want 1", x[0])
				}
				for _, v := range x[1:] {
					if v != 0 {
						t.Fatal("impulse has energy after sample 0")
					}
				}
			},
		},
		{
			name:   "sine",
			params: Params{Kind: KindSine, Length: 100, SampleRate: 100, Frequency: 25, Amplitude: 2},
			check: func(t *testing.T, x []float64) {
				if math.Abs(x[1]-2) > 1e-12 {
					t.Fatalf("quarter period = %v, want 2", x[1])
				}
			},
		},
		{
			name:   "noise",
			params: Params{Kind: KindNoise, Length: 1000, Seed: 7},
			check: func(t *testing.T, x []float64) {
				for _, v := range x {
					if v < -1 || v >= 1 {
						t.Fatalf("noise sample %v out of range", v)
					}
				}
			},
		},
		{
			name:   "zero",
			params: Params{Kind: KindZero, Length: 4},
			check: func(t *testing.T, x []float64) {
				for _, v := range x {
					if v != 0 {
						t.Fatal("zero signal is not zero")
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := Generate(tt.params)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(x) != tt.params.Length {
				t.Fatalf("len = %d, want %d", len(x), tt.params.Length)
			}
			tt.check(t, x)
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	if _, err := Generate(Params{Kind: KindSine, Length: 0}); err == nil {
		t.Fatal("expected error for empty signal")
	}
	if _, err := Generate(Params{Kind: "square", Length: 4}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if _, err := ParseKind("Chirp"); err != nil {
		t.Fatalf("ParseKind: %v", err)
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := Noise(64, 3, 1)
	b := Noise(64, 3, 1)
	c := Noise(64, 4, 1)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed produced different noise")
		}
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}
