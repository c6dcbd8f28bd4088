package nsgt

import (
	"sync"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/common"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/spectral"
)

// Analyze computes the coefficient blocks of a real signal, one block per
// channel of the frame. The signal must have exactly frame.Length() samples.
func Analyze(signal []float64, frame *Frame) (Coefficients, error) {
	if frame == nil {
		return nil, newError(KindInvalidParameter, "nil frame")
	}
	if len(signal) != frame.length {
		return nil, newError(KindLengthMismatch, "signal has %d samples, frame expects %d", len(signal), frame.length)
	}

	spectrum := frame.engine.Forward(spectral.ToComplex(signal))
	return frame.analyzeSpectrum(spectrum), nil
}

// AnalyzeComplex is Analyze for complex signals. It needs a frame built with
// Real disabled, since the two halves of the spectrum are independent.
func AnalyzeComplex(signal []complex128, frame *Frame) (Coefficients, error) {
	if frame == nil {
		return nil, newError(KindInvalidParameter, "nil frame")
	}
	if frame.real {
		return nil, newError(KindInvalidParameter, "complex signals need a complex frame")
	}
	if len(signal) != frame.length {
		return nil, newError(KindLengthMismatch, "signal has %d samples, frame expects %d", len(signal), frame.length)
	}

	spectrum := frame.engine.Forward(signal)
	return frame.analyzeSpectrum(spectrum), nil
}

// analyzeSpectrum windows the spectrum channel by channel. Workers own their
// scratch buffers and write disjoint output slots.
func (f *Frame) analyzeSpectrum(spectrum []complex128) Coefficients {
	out := make(Coefficients, f.exposed)

	var wg sync.WaitGroup
	for w := range f.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gather := make([]complex128, f.length)
			for _, i := range stripe(w, f.workers, f.exposed) {
				out[i] = f.analyzeChannel(&f.channels[i], spectrum, gather)
			}
		}()
	}
	wg.Wait()

	return out
}

// analyzeChannel gathers the support of ch, applies the window, folds the
// bins onto the block so the center bin sits at index 0 and returns the
// inverse FFT of the block.
func (f *Frame) analyzeChannel(ch *Channel, spectrum, gather []complex128) []complex128 {
	l := len(ch.Window)
	common.GatherWrapped(gather[:l], spectrum, ch.start)

	block := make([]complex128, ch.Coefficients)
	for j, w := range ch.Window {
		if w == 0 {
			continue
		}
		block[ch.blockIndex(j)] = gather[j] * complex(w, 0)
	}

	return f.engine.Inverse(block)
}
