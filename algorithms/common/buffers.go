package common

// Frequency-axis helpers. Window supports on an N-bin spectrum wrap modulo N
// and are never clipped.

// GatherWrapped copies len(dst) consecutive bins of src starting at start
// into dst, wrapping around the end of src.
func GatherWrapped(dst, src []complex128, start int) {
	n := len(src)
	pos := Mod(start, n)
	for j := range dst {
		dst[j] = src[pos]
		pos++
		if pos == n {
			pos = 0
		}
	}
}

// AccumulateSquaredWrapped adds w[j]^2 to dst[(start+j) mod len(dst)].
func AccumulateSquaredWrapped(dst, w []float64, start int) {
	n := len(dst)
	pos := Mod(start, n)
	for _, v := range w {
		dst[pos] += v * v
		pos++
		if pos == n {
			pos = 0
		}
	}
}
