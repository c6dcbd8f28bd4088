package nsgt

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Coefficients holds one complex block per channel, in frame order
type Coefficients [][]complex128

// Clone returns a deep copy
func (c Coefficients) Clone() Coefficients {
	out := make(Coefficients, len(c))
	for i, block := range c {
		out[i] = append([]complex128(nil), block...)
	}
	return out
}

// Scale returns a·c
func (c Coefficients) Scale(a complex128) Coefficients {
	out := make(Coefficients, len(c))
	for i, block := range c {
		out[i] = make([]complex128, len(block))
		for n, v := range block {
			out[i][n] = a * v
		}
	}
	return out
}

// Add returns c + other. Both must have the same shape.
func (c Coefficients) Add(other Coefficients) (Coefficients, error) {
	if len(c) != len(other) {
		return nil, fmt.Errorf("block count mismatch: %d vs %d", len(c), len(other))
	}

	out := make(Coefficients, len(c))
	for i, block := range c {
		if len(block) != len(other[i]) {
			return nil, fmt.Errorf("block %d length mismatch: %d vs %d", i, len(block), len(other[i]))
		}
		out[i] = make([]complex128, len(block))
		for n, v := range block {
			out[i][n] = v + other[i][n]
		}
	}
	return out, nil
}

// Magnitudes returns |c| block by block
func (c Coefficients) Magnitudes() [][]float64 {
	out := make([][]float64, len(c))
	for i, block := range c {
		out[i] = make([]float64, len(block))
		for n, v := range block {
			out[i][n] = cmplx.Abs(v)
		}
	}
	return out
}

// Len returns the total number of coefficients
func (c Coefficients) Len() int {
	total := 0
	for _, block := range c {
		total += len(block)
	}
	return total
}

// Matrix arranges equal-length blocks as a channels × time matrix, which is
// what a frame built with MatrixForm produces.
func (c Coefficients) Matrix() (*mat.CDense, error) {
	cols, err := c.commonLength()
	if err != nil {
		return nil, err
	}

	data := make([]complex128, 0, len(c)*cols)
	for _, block := range c {
		data = append(data, block...)
	}
	return mat.NewCDense(len(c), cols, data), nil
}

// MagnitudeMatrix is Matrix for |c|, the usual spectrogram view
func (c Coefficients) MagnitudeMatrix() (*mat.Dense, error) {
	cols, err := c.commonLength()
	if err != nil {
		return nil, err
	}

	data := make([]float64, 0, len(c)*cols)
	for _, block := range c {
		for _, v := range block {
			data = append(data, cmplx.Abs(v))
		}
	}
	return mat.NewDense(len(c), cols, data), nil
}

func (c Coefficients) commonLength() (int, error) {
	if len(c) == 0 || len(c[0]) == 0 {
		return 0, fmt.Errorf("no coefficients")
	}
	cols := len(c[0])
	for i, block := range c {
		if len(block) != cols {
			return 0, fmt.Errorf("block %d has %d coefficients, block 0 has %d; build the frame with MatrixForm", i, len(block), cols)
		}
	}
	return cols, nil
}
