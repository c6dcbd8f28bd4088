package nsgt

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/scale"
	"github.com/RyanBlaney/sonido-nsgt/internal/testsignal"
	"github.com/RyanBlaney/sonido-nsgt/logging"
)

func TestBuildFrameLayout(t *testing.T) {
	// 1 bin per Hz
	s := mustCustom(t, []float64{100, 200, 300}, []float64{200, 200, 200})
	cfg := quietConfig()
	cfg.Real = false
	frame := mustBuild(t, s, 1024, 1024, cfg)

	wantKinds := []ChannelKind{ChannelDC, ChannelBand, ChannelBand, ChannelBand, ChannelNyquist, ChannelMirror, ChannelMirror, ChannelMirror}
	if frame.ChannelCount() != len(wantKinds) {
		t.Fatalf("ChannelCount = %d, want %d", frame.ChannelCount(), len(wantKinds))
	}
	for i, kind := range wantKinds {
		if got := frame.Channel(i).Kind; got != kind {
			t.Fatalf("channel %d kind = %v, want %v", i, got, kind)
		}
	}

	wantCenters := []int{0, 100, 200, 300, 512, 724, 824, 924}
	wantStarts := []int{924, 0, 100, 200, 300, 625, 725, 825}
	for i := range wantCenters {
		ch := frame.Channel(i)
		if ch.CenterBin != wantCenters[i] {
			t.Fatalf("channel %d center = %d, want %d", i, ch.CenterBin, wantCenters[i])
		}
		if ch.Start() != wantStarts[i] {
			t.Fatalf("channel %d start = %d, want %d", i, ch.Start(), wantStarts[i])
		}
	}

	// mirrors run in descending frequency and reflect their band
	if f := frame.Channel(5).Frequency; f != -300 {
		t.Fatalf("first mirror frequency = %v, want -300", f)
	}
	band, mirror := frame.Channel(3), frame.Channel(5)
	for j := range band.Window {
		if band.Window[j] != mirror.Window[len(mirror.Window)-1-j] {
			t.Fatal("mirror window is not the reversed band window")
		}
	}

	// DC: 2·100 bins; Nyquist: 1024 − 2·300 bins
	if l := frame.Channel(0).Length(); l != 200 {
		t.Fatalf("DC window length = %d, want 200", l)
	}
	if l := frame.Channel(4).Length(); l != 424 {
		t.Fatalf("Nyquist window length = %d, want 424", l)
	}
}

func TestDualWindows(t *testing.T) {
	frame := mustBuild(t, mustOctave(t, 60, 3000, 12), 8000, 2048, quietConfig())
	d := frame.Diagonal()

	for _, ch := range frame.Channels() {
		for j, w := range ch.Window {
			bin := (ch.Start() + j) % frame.Length()
			if math.Abs(ch.Dual[j]-w/d[bin]) > 1e-15 {
				t.Fatalf("channel %d sample %d: dual %v, want %v", ch.Index, j, ch.Dual[j], w/d[bin])
			}
		}
	}

	lower, upper := frame.Bounds()
	if lower <= 0 || upper < lower {
		t.Fatalf("bounds [%v, %v]", lower, upper)
	}
	if c := frame.Condition(); math.Abs(c-upper/lower) > 1e-12 {
		t.Fatalf("Condition = %v, want %v", c, upper/lower)
	}
}

func TestChannelsAreCopies(t *testing.T) {
	frame := mustBuild(t, mustOctave(t, 60, 3000, 12), 8000, 2048, quietConfig())
	x := testsignal.Noise(2048, 5, 1)
	before, err := Analyze(x, frame)
	if err != nil {
		t.Fatal(err)
	}

	for _, ch := range frame.Channels() {
		clear(ch.Window)
	}
	ch := frame.Channel(2)
	ch.Dual[0] = math.NaN()
	ch.Window[ch.Length()/2] = 100

	after, err := Analyze(x, frame)
	if err != nil {
		t.Fatal(err)
	}
	if d := maxCoefficientDiff(t, after, before); d != 0 {
		t.Fatalf("editing returned channels changed the analysis by %g", d)
	}
	if w := frame.Channel(1).Window; w[len(w)/2] != 1 {
		t.Fatalf("frame window peak = %v after editing a copy", w[len(w)/2])
	}
	requireRoundTrip(t, x, frame)
}

func TestWrapAround(t *testing.T) {
	// the first band reaches 40 bins below bin 0
	s := mustCustom(t, []float64{10, 150, 300}, []float64{100, 200, 250})
	cfg := quietConfig()
	cfg.Real = false
	frame := mustBuild(t, s, 1024, 1024, cfg)

	if start := frame.Channel(1).Start(); start != 1024-40 {
		t.Fatalf("band start = %d, want %d", start, 1024-40)
	}
	for k, v := range frame.Diagonal() {
		if v <= 0 {
			t.Fatalf("bin %d uncovered", k)
		}
	}

	requireRoundTrip(t, testsignal.Noise(1024, 3, 1), frame)

	x := testsignal.ComplexNoise(1024, 8, 1)
	c, err := AnalyzeComplex(x, frame)
	if err != nil {
		t.Fatal(err)
	}
	y, err := SynthesizeComplex(c, frame)
	if err != nil {
		t.Fatal(err)
	}
	for i := range x {
		if d := y[i] - x[i]; math.Hypot(real(d), imag(d)) > 1e-10 {
			t.Fatalf("sample %d off by %v", i, d)
		}
	}
}

func TestInvalidScale(t *testing.T) {
	tests := []struct {
		name  string
		freqs []float64
		bws   []float64
	}{
		{"zero bandwidth", []float64{100, 200}, []float64{50, 0}},
		{"negative bandwidth", []float64{100, 200}, []float64{-1, 50}},
		{"above nyquist", []float64{100, 600}, []float64{50, 50}},
		{"negative frequency", []float64{-10, 200}, []float64{50, 50}},
		{"not increasing", []float64{200, 100}, []float64{50, 50}},
		{"duplicate", []float64{200, 200}, []float64{50, 50}},
		{"nan", []float64{math.NaN(), 200}, []float64{50, 50}},
		{"infinite bandwidth", []float64{100, 200}, []float64{math.Inf(1), 50}},
		{"only edges", []float64{0, 512}, []float64{50, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFrame(mustCustom(t, tt.freqs, tt.bws), 1024, 1024, quietConfig())
			if !errors.Is(err, ErrInvalidScale) {
				t.Fatalf("err = %v, want ErrInvalidScale", err)
			}
		})
	}

	if _, err := BuildFrame(nil, 1024, 1024, quietConfig()); !errors.Is(err, ErrInvalidScale) {
		t.Fatalf("nil scale: err = %v", err)
	}
}

func TestInvalidParameters(t *testing.T) {
	s := mustOctave(t, 50, 400, 6)

	tests := []struct {
		name       string
		sampleRate float64
		length     int
		mutate     func(cfg *FrameConfig)
	}{
		{"short signal", 1024, 3, func(*FrameConfig) {}},
		{"zero sample rate", 0, 1024, func(*FrameConfig) {}},
		{"nan sample rate", math.NaN(), 1024, func(*FrameConfig) {}},
		{"min window", 1024, 1024, func(cfg *FrameConfig) { cfg.MinWindow = 0 }},
		{"shape", 1024, 1024, func(cfg *FrameConfig) { cfg.Shape = "square" }},
		{"policy", 1024, 1024, func(cfg *FrameConfig) { cfg.Policy = "fibonacci" }},
		{"workers", 1024, 1024, func(cfg *FrameConfig) { cfg.Workers = -2 }},
		{"tight real odd length", 1024, 1023, func(cfg *FrameConfig) { cfg.Tight = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := quietConfig()
			tt.mutate(cfg)
			_, err := BuildFrame(s, tt.sampleRate, tt.length, cfg)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestDegenerateFrame(t *testing.T) {
	// two narrow bands leave the bins between them uncovered
	s := mustCustom(t, []float64{100, 300}, []float64{4, 4})
	_, err := BuildFrame(s, 1024, 1024, quietConfig())
	if !errors.Is(err, ErrDegenerateFrame) {
		t.Fatalf("err = %v, want ErrDegenerateFrame", err)
	}
	if !strings.Contains(err.Error(), "bin 102") {
		t.Fatalf("error should name the first empty bin: %v", err)
	}
}

func TestWarnings(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultFrameConfig()
	cfg.Logger = logging.NewWriterLogger(&buf, logging.WarnLevel)

	// a band wider than the spectrum and an entry on the DC bin
	s := mustCustom(t, []float64{0, 256}, []float64{10, 2000})
	frame := mustBuild(t, s, 1024, 1024, cfg)

	if frame.BandCount() != 1 {
		t.Fatalf("BandCount = %d, want 1", frame.BandCount())
	}
	if l := frame.Channel(1).Length(); l != 1024 {
		t.Fatalf("clamped window length = %d, want 1024", l)
	}

	warnings := strings.Join(frame.Warnings(), "\n")
	for _, want := range []string{"clamped", "dropped scale entry"} {
		if !strings.Contains(warnings, want) {
			t.Fatalf("warnings %q lack %q", warnings, want)
		}
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("log %q lacks %q", buf.String(), want)
		}
	}

	requireRoundTrip(t, testsignal.Noise(1024, 6, 1), frame)
}

func TestNarrowBandWarning(t *testing.T) {
	// windows are widened to 16 bins, the warning looks at the scale itself
	cfg := quietConfig()
	cfg.MinWindow = 16
	frame := mustBuild(t, mustOctave(t, 20, 2000, 48), 16000, 4096, cfg)

	found := false
	for _, w := range frame.Warnings() {
		if strings.Contains(w, "too few bins") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a narrow band warning, got %v", frame.Warnings())
	}
}

func TestDescribe(t *testing.T) {
	cfg := quietConfig()
	cfg.Tight = true
	frame := mustBuild(t, mustOctave(t, 100, 1600, 1), 8000, 2000, cfg)
	summary := frame.Describe()

	if summary.ChannelCount != frame.ChannelCount() || len(summary.Channels) != frame.ChannelCount() {
		t.Fatalf("summary has %d/%d channels, want %d", summary.ChannelCount, len(summary.Channels), frame.ChannelCount())
	}
	if !summary.Tight || summary.Engine != "godsp" || summary.Policy != "divisor" {
		t.Fatalf("summary settings %+v", summary)
	}

	total := 0
	for i, ch := range summary.Channels {
		total += ch.Coefficients
		if ch.Hop*float64(ch.Coefficients) != 2000 {
			t.Fatalf("channel %d: hop %v × %d != N", i, ch.Hop, ch.Coefficients)
		}
		if math.Abs(ch.TimeResolution-ch.Hop/8000) > 1e-15 {
			t.Fatalf("channel %d time resolution %v", i, ch.TimeResolution)
		}
	}
	if total != summary.Coefficients {
		t.Fatalf("Coefficients = %d, want %d", summary.Coefficients, total)
	}
	if summary.Channels[0].Kind != "dc" || summary.Channels[len(summary.Channels)-1].Kind != "nyquist" {
		t.Fatalf("unexpected channel kinds %v ... %v", summary.Channels[0].Kind, summary.Channels[len(summary.Channels)-1].Kind)
	}
}

func TestBuildFrameLogsSummary(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultFrameConfig()
	cfg.Logger = logging.NewWriterLogger(&buf, logging.DebugLevel)

	s, err := scale.NewMelScale(100, 3000, 12, 0)
	if err != nil {
		t.Fatal(err)
	}
	mustBuild(t, s, 8000, 2048, cfg)

	if !strings.Contains(buf.String(), "built frame") {
		t.Fatalf("debug log lacks the frame summary: %q", buf.String())
	}
}
