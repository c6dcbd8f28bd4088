// Package testsignal generates deterministic signals for tests and the CLI.
package testsignal

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Kind names a generator
type Kind string

const (
	KindImpulse Kind = "impulse"
	KindSine    Kind = "sine"
	KindChirp   Kind = "chirp"
	KindNoise   Kind = "noise"
	KindZero    Kind = "zero"
)

// Params describes a signal. Frequency is the sine frequency or the chirp
// end frequency; the chirp starts at 0 Hz.
type Params struct {
	Kind       Kind    `json:"kind" yaml:"kind" mapstructure:"kind"`
	Length     int     `json:"length" yaml:"length" mapstructure:"length"`
	SampleRate float64 `json:"sample_rate" yaml:"sample_rate" mapstructure:"sample_rate"`
	Frequency  float64 `json:"frequency" yaml:"frequency" mapstructure:"frequency"`
	Amplitude  float64 `json:"amplitude" yaml:"amplitude" mapstructure:"amplitude"`
	Seed       uint64  `json:"seed" yaml:"seed" mapstructure:"seed"`
}

// ParseKind resolves a generator name
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindImpulse, KindSine, KindChirp, KindNoise, KindZero:
		return k, nil
	default:
		return "", fmt.Errorf("unknown signal kind %q", s)
	}
}

// Generate builds the signal described by p
func Generate(p Params) ([]float64, error) {
	if p.Length <= 0 {
		return nil, fmt.Errorf("signal length must be positive, got %d", p.Length)
	}
	amp := p.Amplitude
	if amp == 0 {
		amp = 1
	}

	switch p.Kind {
	case KindImpulse:
		return Impulse(p.Length, 0, amp), nil
	case KindSine:
		return Sine(p.Length, p.SampleRate, p.Frequency, amp), nil
	case KindChirp:
		return Chirp(p.Length, p.SampleRate, 0, p.Frequency, amp), nil
	case KindNoise:
		return Noise(p.Length, p.Seed, amp), nil
	case KindZero:
		return make([]float64, p.Length), nil
	default:
		return nil, fmt.Errorf("unknown signal kind %q", p.Kind)
	}
}

// Impulse returns amplitude at sample at, zero elsewhere
func Impulse(length, at int, amplitude float64) []float64 {
	x := make([]float64, length)
	x[at] = amplitude
	return x
}

func Sine(length int, sampleRate, frequency, amplitude float64) []float64 {
	x := make([]float64, length)
	for i := range x {
		x[i] = amplitude * math.Sin(2*math.Pi*frequency*float64(i)/sampleRate)
	}
	return x
}

// Chirp sweeps linearly from f0 to f1 over the signal
func Chirp(length int, sampleRate, f0, f1, amplitude float64) []float64 {
	x := make([]float64, length)
	duration := float64(length) / sampleRate
	k := (f1 - f0) / duration
	for i := range x {
		t := float64(i) / sampleRate
		x[i] = amplitude * math.Sin(2*math.Pi*(f0*t+0.5*k*t*t))
	}
	return x
}

// Noise returns uniform white noise in [-amplitude, amplitude)
func Noise(length int, seed uint64, amplitude float64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	x := make([]float64, length)
	for i := range x {
		x[i] = amplitude * (2*rng.Float64() - 1)
	}
	return x
}

// ComplexNoise returns complex noise with independent real and imaginary parts
func ComplexNoise(length int, seed uint64, amplitude float64) []complex128 {
	re := Noise(length, seed, amplitude)
	im := Noise(length, seed+1, amplitude)
	x := make([]complex128, length)
	for i := range x {
		x[i] = complex(re[i], im[i])
	}
	return x
}
