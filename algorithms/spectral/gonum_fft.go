package spectral

import (
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// GonumFFT is an Engine backed by gonum's FFTPACK port. A fourier.CmplxFFT
// plan owns scratch space and is not safe for concurrent use, so plans are
// pooled per length.
type GonumFFT struct {
	mu    sync.Mutex
	plans map[int]*sync.Pool
}

// NewGonumFFT creates a gonum-backed engine
func NewGonumFFT() *GonumFFT {
	return &GonumFFT{plans: make(map[int]*sync.Pool)}
}

// Name identifies the engine
func (g *GonumFFT) Name() string {
	return EngineGonum
}

func (g *GonumFFT) pool(n int) *sync.Pool {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.plans[n]
	if !ok {
		p = &sync.Pool{New: func() any { return fourier.NewCmplxFFT(n) }}
		g.plans[n] = p
	}
	return p
}

// Forward computes the unnormalized DFT of x
func (g *GonumFFT) Forward(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	p := g.pool(len(x))
	plan := p.Get().(*fourier.CmplxFFT)
	defer p.Put(plan)

	return plan.Coefficients(nil, x)
}

// Inverse computes the normalized inverse DFT of x. gonum's Sequence is
// unnormalized, so the result is scaled by 1/n here.
func (g *GonumFFT) Inverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	p := g.pool(len(x))
	plan := p.Get().(*fourier.CmplxFFT)
	defer p.Put(plan)

	out := plan.Sequence(nil, x)
	scale := complex(1/float64(len(x)), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}
