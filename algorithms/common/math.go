// Package common holds the numeric and wrapped-buffer helpers shared by the
// transform packages.
package common

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// Energy returns the sum of squares of data.
func Energy(data []float64) float64 {
	return floats.Dot(data, data)
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Norm(data, 2) / math.Sqrt(float64(len(data)))
}

// ComplexEnergy returns the sum of squared magnitudes of data.
func ComplexEnergy(data []complex128) float64 {
	sum := 0.0
	for _, v := range data {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return sum
}

// IsPowerOfTwo checks if n is a power of 2
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// NextPowerOfTwo returns the smallest power of 2 that is >= n
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// SmallestDivisorAtLeast returns the smallest divisor of n that is >= k.
// n itself is returned when k > n/2 (or k > n).
func SmallestDivisorAtLeast(n, k int) int {
	if k <= 1 {
		return 1
	}
	if k >= n {
		return n
	}
	for d := k; d <= n/2; d++ {
		if n%d == 0 {
			return d
		}
	}
	return n
}

// Mod returns the non-negative remainder of a modulo n.
func Mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// RoundInt rounds half away from zero.
func RoundInt(x float64) int {
	return int(math.Round(x))
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	return floats.Distance(a, b, math.Inf(1)), nil
}

// MaxAbsDiffComplex returns the maximum modulus of the element-wise difference.
func MaxAbsDiffComplex(a, b []complex128) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		maxDiff = math.Max(maxDiff, cmplx.Abs(a[i]-b[i]))
	}
	return maxDiff, nil
}

// RelativeError returns ||got-want||_2 / ||want||_2. When want is all zero
// the absolute error norm is returned.
func RelativeError(got, want []float64) (float64, error) {
	if len(got) != len(want) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(got), len(want))
	}
	diff := floats.Distance(got, want, 2)
	ref := floats.Norm(want, 2)
	if ref == 0 {
		return diff, nil
	}
	return diff / ref, nil
}

// RelativeErrorComplex is RelativeError for complex sequences.
func RelativeErrorComplex(got, want []complex128) (float64, error) {
	if len(got) != len(want) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(got), len(want))
	}
	diff, ref := 0.0, 0.0
	for i := range got {
		d := got[i] - want[i]
		diff += real(d)*real(d) + imag(d)*imag(d)
		ref += real(want[i])*real(want[i]) + imag(want[i])*imag(want[i])
	}
	if ref == 0 {
		return math.Sqrt(diff), nil
	}
	return math.Sqrt(diff / ref), nil
}
