package scale

import "fmt"

// CustomScale is an explicit table of center frequencies and bandwidths.
// Ordering and range are checked by the frame builder, which reports them as
// invalid-scale errors.
type CustomScale struct {
	frequencies []float64
	bandwidths  []float64
}

// NewCustomScale copies the given tables
func NewCustomScale(frequencies, bandwidths []float64) (*CustomScale, error) {
	if len(frequencies) == 0 {
		return nil, fmt.Errorf("custom scale needs at least one band")
	}
	if len(frequencies) != len(bandwidths) {
		return nil, fmt.Errorf("frequency table has %d entries, bandwidth table %d", len(frequencies), len(bandwidths))
	}

	return &CustomScale{
		frequencies: append([]float64(nil), frequencies...),
		bandwidths:  append([]float64(nil), bandwidths...),
	}, nil
}

// NewCustomScaleQ builds a table with constant Q (bandwidth = f / q)
func NewCustomScaleQ(frequencies []float64, q float64) (*CustomScale, error) {
	if q <= 0 {
		return nil, fmt.Errorf("q must be positive, got %g", q)
	}
	bw := make([]float64, len(frequencies))
	for i, f := range frequencies {
		bw[i] = f / q
	}
	return NewCustomScale(frequencies, bw)
}

func (s *CustomScale) Len() int {
	return len(s.frequencies)
}

func (s *CustomScale) FrequencyAndBandwidth(index int) (float64, float64) {
	return s.frequencies[index], s.bandwidths[index]
}
