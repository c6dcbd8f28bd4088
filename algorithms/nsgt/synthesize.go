package nsgt

import (
	"math/cmplx"
	"sync"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/common"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/spectral"
)

// Synthesize reconstructs a real signal of frame.Length() samples from the
// coefficient blocks. Block count and block lengths must match the frame;
// nothing is computed otherwise. On a complex frame the real part of the
// reconstruction is returned.
func Synthesize(c Coefficients, frame *Frame) ([]float64, error) {
	spectrum, err := frame.synthesizeSpectrum(c)
	if err != nil {
		return nil, err
	}
	return spectral.RealPart(frame.engine.Inverse(spectrum)), nil
}

// SynthesizeComplex reconstructs a complex signal. It needs a complex frame.
func SynthesizeComplex(c Coefficients, frame *Frame) ([]complex128, error) {
	if frame != nil && frame.real {
		return nil, newError(KindInvalidParameter, "complex reconstruction needs a complex frame")
	}
	spectrum, err := frame.synthesizeSpectrum(c)
	if err != nil {
		return nil, err
	}
	return frame.engine.Inverse(spectrum), nil
}

// CheckShape verifies that c has one block per exposed channel with the
// expected lengths.
func (f *Frame) CheckShape(c Coefficients) error {
	if len(c) != f.exposed {
		return newError(KindChannelCountMismatch, "got %d coefficient blocks, frame has %d channels", len(c), f.exposed)
	}
	for i, block := range c {
		if want := f.channels[i].Coefficients; len(block) != want {
			return newError(KindBlockLengthMismatch, "block %d has %d coefficients, channel expects %d", i, len(block), want)
		}
	}
	return nil
}

// synthesizeSpectrum overlap-adds the dual-windowed blocks into the N-bin
// spectrum. Each worker accumulates into a private partial spectrum; the
// partials are summed once all workers are done.
func (f *Frame) synthesizeSpectrum(c Coefficients) ([]complex128, error) {
	if f == nil {
		return nil, newError(KindInvalidParameter, "nil frame")
	}
	if err := f.CheckShape(c); err != nil {
		return nil, err
	}

	partials := make([][]complex128, f.workers)

	var wg sync.WaitGroup
	for w := range f.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			partial := make([]complex128, f.length)
			for _, i := range stripe(w, f.workers, f.exposed) {
				f.synthesizeChannel(i, c[i], partial)
			}
			partials[w] = partial
		}()
	}
	wg.Wait()

	spectrum := partials[0]
	for _, partial := range partials[1:] {
		for k, v := range partial {
			spectrum[k] += v
		}
	}
	return spectrum, nil
}

// synthesizeChannel adds the contribution of exposed channel i to partial.
// On a real frame a band also adds its mirror: the mirrored block is the
// conjugate of the band block, whose FFT is the conjugated, index-reversed
// FFT of the band block.
func (f *Frame) synthesizeChannel(i int, block []complex128, partial []complex128) {
	ch := &f.channels[i]
	spec := f.engine.Forward(block)
	n := f.length

	for j, g := range ch.Dual {
		if g == 0 {
			continue
		}
		partial[common.Mod(ch.start+j, n)] += complex(g, 0) * spec[ch.blockIndex(j)]
	}

	if !f.real || ch.Kind != ChannelBand {
		return
	}

	m := &f.channels[f.mirrorOf(i)]
	for j, g := range m.Dual {
		if g == 0 {
			continue
		}
		k := common.Mod(-m.blockIndex(j), m.Coefficients)
		partial[common.Mod(m.start+j, n)] += complex(g, 0) * cmplx.Conj(spec[k])
	}
}
