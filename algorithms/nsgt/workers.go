package nsgt

import "runtime"

// smallSignal is the length below which a transform runs on one goroutine
const smallSignal = 4096

// resolveWorkers picks the goroutine count for a frame. An explicit request
// is honoured up to the channel count.
func resolveWorkers(requested, channels, length int) int {
	if requested > 0 {
		return max(1, min(requested, channels))
	}

	numCPU := runtime.NumCPU()

	switch {
	case length < smallSignal:
		return 1
	case channels < 100:
		// don't over-parallelize small frames
		return max(1, min(numCPU/2, channels))
	case channels < 1000:
		return min(numCPU, 8)
	default:
		return numCPU
	}
}

// stripe returns the channels handled by worker w of n: w, w+n, w+2n, ...
// Neighbouring channels have similar window lengths, so striping balances
// the work better than contiguous ranges.
func stripe(w, n, channels int) []int {
	out := make([]int, 0, channels/n+1)
	for i := w; i < channels; i += n {
		out = append(out, i)
	}
	return out
}
