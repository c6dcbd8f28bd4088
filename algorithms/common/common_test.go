package common

import (
	"math"
	"testing"
)

func TestSmallestDivisorAtLeast(t *testing.T) {
	tests := []struct {
		n, k, want int
	}{
		{1024, 205, 256},
		{1024, 256, 256},
		{1000, 33, 40},
		{997, 10, 997}, // prime
		{12, 0, 1},
		{12, 13, 12},
		{12, 7, 12},
	}
	for _, tt := range tests {
		if got := SmallestDivisorAtLeast(tt.n, tt.k); got != tt.want {
			t.Errorf("SmallestDivisorAtLeast(%d, %d) = %d, want %d", tt.n, tt.k, got, tt.want)
		}
	}
}

func TestPowerOfTwo(t *testing.T) {
	if !IsPowerOfTwo(64) || IsPowerOfTwo(0) || IsPowerOfTwo(96) {
		t.Fatal("IsPowerOfTwo misclassified")
	}
	for n, want := range map[int]int{0: 1, 1: 1, 3: 4, 64: 64, 65: 128} {
		if got := NextPowerOfTwo(n); got != want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestMod(t *testing.T) {
	if Mod(-1, 8) != 7 || Mod(9, 8) != 1 || Mod(-16, 8) != 0 {
		t.Fatal("Mod wrong for negative or overflowing input")
	}
}

func TestWrappedBuffers(t *testing.T) {
	src := []complex128{0, 1, 2, 3, 4, 5}
	dst := make([]complex128, 4)
	GatherWrapped(dst, src, -2)
	want := []complex128{4, 5, 0, 1}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("GatherWrapped = %v, want %v", dst, want)
		}
	}

	sq := make([]float64, 4)
	AccumulateSquaredWrapped(sq, []float64{2, 3}, 3)
	if sq[3] != 4 || sq[0] != 9 {
		t.Fatalf("AccumulateSquaredWrapped = %v", sq)
	}
}

func TestErrorMetrics(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{1, 2.5, 3}

	d, err := MaxAbsDiff(a, b)
	if err != nil || d != 0.5 {
		t.Fatalf("MaxAbsDiff = %v, %v", d, err)
	}
	if _, err := MaxAbsDiff(a, b[:2]); err == nil {
		t.Fatal("expected length mismatch error")
	}

	rel, err := RelativeError(b, a)
	if err != nil {
		t.Fatal(err)
	}
	if want := 0.5 / math.Sqrt(14); math.Abs(rel-want) > 1e-15 {
		t.Fatalf("RelativeError = %v, want %v", rel, want)
	}

	relc, err := RelativeErrorComplex([]complex128{1i}, []complex128{1i})
	if err != nil || relc != 0 {
		t.Fatalf("RelativeErrorComplex = %v, %v", relc, err)
	}

	if e := Energy(a); e != 14 {
		t.Fatalf("Energy = %v", e)
	}
	if e := ComplexEnergy([]complex128{3 + 4i}); e != 25 {
		t.Fatalf("ComplexEnergy = %v", e)
	}
	if r := RMS([]float64{2, 2, 2, 2}); math.Abs(r-2) > 1e-15 {
		t.Fatalf("RMS = %v", r)
	}
}
