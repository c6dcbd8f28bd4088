// Package nsgt implements the Non-Stationary Gabor Transform.
//
// A Frame places one window per frequency channel on the N-bin spectrum of
// a signal of length N: a DC channel, one channel per scale band, a Nyquist
// channel and, for complex signals, the mirrored negative-frequency bands.
// Each channel has its own window length and coefficient count, so the time
// resolution varies across the spectrum (constant-Q, mel, linear ...).
//
// Frames are painless: every channel gets at least as many coefficients as
// its window has bins, which makes the frame operator diagonal and the dual
// frame a per-bin division. Analyze and Synthesize are exact inverses up to
// rounding:
//
//	frame, err := nsgt.BuildFrame(s, 44100, len(x), nil)
//	coeffs, err := nsgt.Analyze(x, frame)
//	y, err := nsgt.Synthesize(coeffs, frame)
//
// A Frame is immutable once built and safe for concurrent use. FrameCache
// keeps built frames for reuse across calls.
package nsgt
