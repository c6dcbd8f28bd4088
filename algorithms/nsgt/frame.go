package nsgt

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/common"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/scale"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/spectral"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/windowing"
	"github.com/RyanBlaney/sonido-nsgt/logging"
)

const (
	// MinLength is the shortest signal a frame can be built for
	MinLength = 4

	// narrowBandBins flags bands too narrow for the spectral resolution
	narrowBandBins = 8
)

// Frame is an immutable set of analysis and synthesis windows for signals of
// one length and sample rate.
type Frame struct {
	length     int
	sampleRate float64
	real       bool

	// channels holds the full frame: DC, bands (ascending), Nyquist, mirrored
	// bands (descending). Real frames expose only the first bands+2.
	channels []Channel
	bands    int
	exposed  int

	diagonal []float64
	warnings []string

	config  FrameConfig
	engine  spectral.Engine
	workers int
	logger  logging.Logger
}

type band struct {
	index     int
	frequency float64
	bandwidth float64
}

// BuildFrame builds the frame for signals of the given length sampled at
// sampleRate, with one band channel per usable entry of s. A nil cfg selects
// DefaultFrameConfig.
//
// Scale entries must be finite, have positive bandwidth, lie in
// [0, sampleRate/2] and strictly increase, otherwise the error matches
// ErrInvalidScale. Entries exactly at 0 Hz or Nyquist are dropped with a
// warning. A frame that leaves any bin uncovered fails with
// ErrDegenerateFrame.
func BuildFrame(s scale.Scale, sampleRate float64, length int, cfg *FrameConfig) (*Frame, error) {
	if cfg == nil {
		cfg = DefaultFrameConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, wrapError(KindInvalidParameter, err, "invalid frame config")
	}
	if length < MinLength {
		return nil, newError(KindInvalidParameter, "signal length must be at least %d, got %d", MinLength, length)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, newError(KindInvalidParameter, "sample rate must be positive and finite, got %g", sampleRate)
	}
	if cfg.Real && cfg.Tight && length%2 != 0 {
		return nil, newError(KindInvalidParameter, "tight real frames need an even signal length, got %d", length)
	}

	f := &Frame{
		length:     length,
		sampleRate: sampleRate,
		real:       cfg.Real,
		config:     *cfg,
		engine:     cfg.Engine,
		logger:     cfg.Logger,
	}
	f.config.Policy, _ = ParsePolicy(string(cfg.Policy))
	if f.engine == nil {
		f.engine = spectral.NewFFT()
	}
	if f.logger == nil {
		f.logger = logging.WithFields(logging.Fields{"component": "nsgt"})
	}

	bands, err := f.readScale(s)
	if err != nil {
		return nil, err
	}
	if err := f.placeChannels(bands); err != nil {
		return nil, err
	}
	f.assignCoefficients()

	f.diagonal = f.frameOperator()
	if err := f.checkDiagonal(); err != nil {
		return nil, err
	}
	f.computeDuals()
	f.workers = resolveWorkers(cfg.Workers, f.exposed, length)

	lower, upper := f.Bounds()
	f.logger.Debug("built frame", logging.Fields{
		"length":           length,
		"sample_rate":      sampleRate,
		"channels":         f.exposed,
		"max_coefficients": f.MaxCoefficients(),
		"lower_bound":      lower,
		"upper_bound":      upper,
		"warnings":         len(f.warnings),
	})

	return f, nil
}

// readScale validates the scale and keeps the entries strictly inside (0, Nyquist)
func (f *Frame) readScale(s scale.Scale) ([]band, error) {
	if s == nil || s.Len() == 0 {
		return nil, newError(KindInvalidScale, "scale has no bands")
	}

	nyquist := f.sampleRate / 2
	bands := make([]band, 0, s.Len())
	prev := math.Inf(-1)
	narrow := 0

	for i := range s.Len() {
		freq, bw := s.FrequencyAndBandwidth(i)

		switch {
		case math.IsNaN(freq) || math.IsInf(freq, 0) || math.IsNaN(bw) || math.IsInf(bw, 0):
			return nil, newError(KindInvalidScale, "band %d: non-finite entry (%g Hz, %g Hz)", i, freq, bw)
		case bw <= 0:
			return nil, newError(KindInvalidScale, "band %d: bandwidth must be positive, got %g Hz", i, bw)
		case freq < 0 || freq > nyquist:
			return nil, newError(KindInvalidScale, "band %d: center frequency %g Hz outside [0, %g]", i, freq, nyquist)
		case freq <= prev:
			return nil, newError(KindInvalidScale, "band %d: center frequency %g Hz not above previous %g Hz", i, freq, prev)
		}
		prev = freq

		if freq == 0 || freq == nyquist {
			f.warn("dropped scale entry on the DC or Nyquist bin", logging.Fields{"band": i, "frequency": freq})
			continue
		}
		// Q too high for the resolution of an N-point spectrum
		if f.bins(bw) <= narrowBandBins {
			narrow++
		}
		bands = append(bands, band{index: i, frequency: freq, bandwidth: bw})
	}

	if len(bands) == 0 {
		return nil, newError(KindInvalidScale, "no scale entry strictly between 0 Hz and %g Hz", nyquist)
	}
	if narrow > 0 {
		f.warn("bands span too few bins for their Q factor", logging.Fields{"bands": narrow, "min_bins": narrowBandBins})
	}
	return bands, nil
}

// placeChannels builds the windows of the full frame
func (f *Frame) placeChannels(bands []band) error {
	n := f.length
	q := len(bands)

	lengths := make([]int, q)
	for i, b := range bands {
		lengths[i] = f.windowLength(common.RoundInt(f.bins(b.bandwidth)), "band", b.index)
	}
	dcLen := f.windowLength(common.RoundInt(2*f.bins(bands[0].frequency)), "dc", -1)
	nyqLen := f.windowLength(common.RoundInt(float64(n)-2*f.bins(bands[q-1].frequency)), "nyquist", -1)

	channels := make([]Channel, 0, 2*q+2)

	dc := f.edgeWindow(dcLen, lengths[0])
	channels = append(channels, f.newChannel(ChannelDC, -1, 0, f.hertz(dcLen), 0, dc))

	for i, b := range bands {
		w, err := windowing.Bump(f.config.Shape, lengths[i])
		if err != nil {
			return wrapError(KindInvalidParameter, err, "band %d window", b.index)
		}
		center := common.RoundInt(f.bins(b.frequency))
		channels = append(channels, f.newChannel(ChannelBand, b.index, b.frequency, b.bandwidth, center, w.GetCoefficients()))
	}

	nyq := f.edgeWindow(nyqLen, lengths[q-1])
	channels = append(channels, f.newChannel(ChannelNyquist, -1, f.sampleRate/2, f.hertz(nyqLen), n/2, nyq))

	for i := q; i >= 1; i-- {
		channels = append(channels, f.mirror(channels[i]))
	}

	for i := range channels {
		channels[i].Index = i
	}

	f.channels = channels
	f.bands = q
	f.exposed = len(channels)
	if f.real {
		f.exposed = q + 2
	}
	return nil
}

// windowLength clamps a window length to [MinWindow, N]
func (f *Frame) windowLength(l int, kind string, bandIndex int) int {
	l = max(l, f.config.MinWindow)
	if l > f.length {
		f.warn("window wider than the spectrum, clamped", logging.Fields{
			"kind": kind, "band": bandIndex, "bins": l, "clamped_to": f.length,
		})
		l = f.length
	}
	return l
}

// edgeWindow is the DC/Nyquist window: a plateau whose flanks match the
// neighbouring band when it is wider than that band, a plain bump otherwise.
func (f *Frame) edgeWindow(size, neighbour int) []float64 {
	if size > neighbour {
		return windowing.NewPlateau(size, neighbour).GetCoefficients()
	}
	w, err := windowing.Bump(f.config.Shape, size)
	if err != nil {
		// the shape was validated with the config
		return windowing.NewHann(size).GetCoefficients()
	}
	return w.GetCoefficients()
}

func (f *Frame) newChannel(kind ChannelKind, bandIndex int, freq, bw float64, center int, window []float64) Channel {
	l := len(window)
	return Channel{
		Kind:      kind,
		Band:      bandIndex,
		Frequency: freq,
		Bandwidth: bw,
		CenterBin: center,
		Window:    window,
		start:     common.Mod(center-l/2, f.length),
		lead:      l / 2,
	}
}

// mirror reflects a band onto the negative frequencies: the mirrored window
// covers bin N-k with the value the band has on bin k.
func (f *Frame) mirror(ch Channel) Channel {
	n := f.length
	l := len(ch.Window)

	w := make([]float64, l)
	for j := range l {
		w[j] = ch.Window[l-1-j]
	}

	return Channel{
		Kind:      ChannelMirror,
		Band:      ch.Band,
		Frequency: -ch.Frequency,
		Bandwidth: ch.Bandwidth,
		CenterBin: common.Mod(n-ch.CenterBin, n),
		Window:    w,
		start:     common.Mod(n-(ch.CenterBin-l/2+l-1), n),
		lead:      l - 1 - l/2,
	}
}

// mirrorOf returns the full-frame index of the mirror of band channel i
func (f *Frame) mirrorOf(i int) int {
	return 2*f.bands + 2 - i
}

// assignCoefficients applies the coefficient policy
func (f *Frame) assignCoefficients() {
	maxM := 0
	for i := range f.channels {
		ch := &f.channels[i]
		ch.Coefficients = f.coefficientCount(len(ch.Window))
		maxM = max(maxM, ch.Coefficients)
	}

	for i := range f.channels {
		ch := &f.channels[i]
		if f.config.MatrixForm {
			ch.Coefficients = maxM
		}
		ch.Hop = float64(f.length) / float64(ch.Coefficients)
	}
}

func (f *Frame) coefficientCount(l int) int {
	switch f.config.Policy {
	case PolicyExact:
		return l
	case PolicyPowerOfTwo:
		return min(common.NextPowerOfTwo(l), f.length)
	default:
		return common.SmallestDivisorAtLeast(f.length, l)
	}
}

// frameOperator sums the squared windows of the full frame per bin
func (f *Frame) frameOperator() []float64 {
	d := make([]float64, f.length)
	for i := range f.channels {
		common.AccumulateSquaredWrapped(d, f.channels[i].Window, f.channels[i].start)
	}
	return d
}

func (f *Frame) checkDiagonal() error {
	for k, v := range f.diagonal {
		if v == 0 {
			return newError(KindDegenerateFrame, "frame operator vanishes at bin %d (%.2f Hz): no channel covers it", k, f.binHertz(k))
		}
	}

	upper := floats.Max(f.diagonal)
	floor := f.config.WarnTolerance * upper
	weak := 0
	for _, v := range f.diagonal {
		if v < floor {
			weak++
		}
	}
	if weak > 0 {
		f.warn("frame operator nearly vanishes", logging.Fields{
			"bins": weak, "min": floats.Min(f.diagonal), "max": upper,
		})
	}
	return nil
}

// computeDuals divides every window by the diagonal. A tight frame divides
// by its square root instead and uses the result for both directions.
func (f *Frame) computeDuals() {
	n := f.length

	for i := range f.channels {
		ch := &f.channels[i]
		dual := make([]float64, len(ch.Window))
		for j, w := range ch.Window {
			d := f.diagonal[common.Mod(ch.start+j, n)]
			if f.config.Tight {
				dual[j] = w / math.Sqrt(d)
			} else {
				dual[j] = w / d
			}
		}
		if f.config.Tight {
			ch.Window = dual
		}
		ch.Dual = dual
	}

	if f.config.Tight {
		f.diagonal = f.frameOperator()
	}
}

// bins converts Hz to (fractional) bins of the N-point spectrum
func (f *Frame) bins(hz float64) float64 {
	return hz * float64(f.length) / f.sampleRate
}

// hertz converts a width in bins to Hz
func (f *Frame) hertz(bins int) float64 {
	return float64(bins) * f.sampleRate / float64(f.length)
}

// binHertz is the signed frequency of bin k
func (f *Frame) binHertz(k int) float64 {
	if k > f.length/2 {
		k -= f.length
	}
	return f.hertz(k)
}

func (f *Frame) warn(msg string, fields logging.Fields) {
	f.logger.Warn(msg, fields)

	parts := make([]string, 0, len(fields))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	f.warnings = append(f.warnings, fmt.Sprintf("%s (%s)", msg, strings.Join(parts, " ")))
}

// Length returns the signal length N
func (f *Frame) Length() int {
	return f.length
}

// SampleRate returns the sample rate in Hz
func (f *Frame) SampleRate() float64 {
	return f.sampleRate
}

// Real reports whether the frame is built for real signals
func (f *Frame) Real() bool {
	return f.real
}

// ChannelCount returns the number of coefficient blocks Analyze produces
func (f *Frame) ChannelCount() int {
	return f.exposed
}

// BandCount returns the number of scale bands that made it into the frame
func (f *Frame) BandCount() int {
	return f.bands
}

// Channel returns a copy of exposed channel i. It panics if i is out of range.
func (f *Frame) Channel(i int) Channel {
	if i < 0 || i >= f.exposed {
		panic(fmt.Sprintf("nsgt: channel index %d out of range [0, %d)", i, f.exposed))
	}
	return f.channels[i].clone()
}

// Channels returns copies of the exposed channels in block order
func (f *Frame) Channels() []Channel {
	out := make([]Channel, f.exposed)
	for i := range out {
		out[i] = f.channels[i].clone()
	}
	return out
}

// CoefficientLengths returns the block length of every exposed channel
func (f *Frame) CoefficientLengths() []int {
	out := make([]int, f.exposed)
	for i := range out {
		out[i] = f.channels[i].Coefficients
	}
	return out
}

// MaxCoefficients returns the longest block length
func (f *Frame) MaxCoefficients() int {
	m := 0
	for i := range f.exposed {
		m = max(m, f.channels[i].Coefficients)
	}
	return m
}

// Diagonal returns a copy of the frame operator diagonal, one value per bin
func (f *Frame) Diagonal() []float64 {
	return slices.Clone(f.diagonal)
}

// Bounds returns the frame bounds, the extreme values of the diagonal
func (f *Frame) Bounds() (lower, upper float64) {
	return floats.Min(f.diagonal), floats.Max(f.diagonal)
}

// Condition returns upper/lower; 1 for a tight frame
func (f *Frame) Condition() float64 {
	lower, upper := f.Bounds()
	return upper / lower
}

// Warnings returns the non-fatal conditions found while building the frame
func (f *Frame) Warnings() []string {
	return slices.Clone(f.warnings)
}

// Config returns the settings the frame was built with
func (f *Frame) Config() FrameConfig {
	return f.config
}

// Engine returns the FFT engine used by Analyze and Synthesize
func (f *Frame) Engine() spectral.Engine {
	return f.engine
}

// Workers returns the number of goroutines a transform call uses
func (f *Frame) Workers() int {
	return f.workers
}
