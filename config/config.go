// Package config holds the transform configuration document shared by the
// CLI and anything else that wants to describe a frame in YAML.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/nsgt"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/scale"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/spectral"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/windowing"
	"github.com/RyanBlaney/sonido-nsgt/internal/testsignal"
	"github.com/RyanBlaney/sonido-nsgt/logging"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Scale type names
const (
	ScaleOctave = "oct"
	ScaleLog    = "log"
	ScaleLinear = "lin"
	ScaleMel    = "mel"
	ScaleBark   = "bark"
)

// Config represents the application configuration
type Config struct {
	LogLevel     string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	LogFormat    string `mapstructure:"log_format" yaml:"log_format" json:"log_format"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format" json:"output_format"`

	Transform TransformConfig `mapstructure:"transform" yaml:"transform" json:"transform"`
	Scale     ScaleConfig     `mapstructure:"scale" yaml:"scale" json:"scale"`
	Signal    SignalConfig    `mapstructure:"signal" yaml:"signal" json:"signal"`
}

// TransformConfig contains the frame settings
type TransformConfig struct {
	SampleRate    float64 `mapstructure:"sample_rate" yaml:"sample_rate" json:"sample_rate"`
	Length        int     `mapstructure:"length" yaml:"length" json:"length"`
	Real          bool    `mapstructure:"real" yaml:"real" json:"real"`
	Window        string  `mapstructure:"window" yaml:"window" json:"window"`
	MinWindow     int     `mapstructure:"min_window" yaml:"min_window" json:"min_window"`
	Policy        string  `mapstructure:"policy" yaml:"policy" json:"policy"`
	MatrixForm    bool    `mapstructure:"matrix_form" yaml:"matrix_form" json:"matrix_form"`
	Tight         bool    `mapstructure:"tight" yaml:"tight" json:"tight"`
	WarnTolerance float64 `mapstructure:"warn_tolerance" yaml:"warn_tolerance" json:"warn_tolerance"`
	Workers       int     `mapstructure:"workers" yaml:"workers" json:"workers"`
	Engine        string  `mapstructure:"engine" yaml:"engine" json:"engine"`
}

// ScaleConfig selects a frequency scale. Bins is bins per octave for the
// octave scale and the band count for every other type.
type ScaleConfig struct {
	Type   string  `mapstructure:"type" yaml:"type" json:"type"`
	FMin   float64 `mapstructure:"fmin" yaml:"fmin" json:"fmin"`
	FMax   float64 `mapstructure:"fmax" yaml:"fmax" json:"fmax"`
	Bins   int     `mapstructure:"bins" yaml:"bins" json:"bins"`
	Beyond int     `mapstructure:"beyond" yaml:"beyond" json:"beyond"`
}

// SignalConfig describes the generated input signal. Duration, in seconds,
// overrides the transform length when positive.
type SignalConfig struct {
	Kind      string  `mapstructure:"kind" yaml:"kind" json:"kind"`
	Frequency float64 `mapstructure:"frequency" yaml:"frequency" json:"frequency"`
	Amplitude float64 `mapstructure:"amplitude" yaml:"amplitude" json:"amplitude"`
	Seed      uint64  `mapstructure:"seed" yaml:"seed" json:"seed"`
	Duration  float64 `mapstructure:"duration" yaml:"duration" json:"duration"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		OutputFormat: "yaml",
		Transform: TransformConfig{
			SampleRate:    44100,
			Length:        44100,
			Real:          true,
			Window:        string(windowing.ShapeHann),
			MinWindow:     4,
			Policy:        string(nsgt.PolicyDivisor),
			WarnTolerance: 1e-6,
			Engine:        spectral.EngineGoDSP,
		},
		Scale: ScaleConfig{
			Type: ScaleOctave,
			FMin: 80,
			FMax: 16000,
			Bins: 12,
		},
		Signal: SignalConfig{
			Kind:      string(testsignal.KindNoise),
			Frequency: 440,
			Amplitude: 1,
			Seed:      1,
		},
	}
}

// SetDefaults registers Default() with v so that Unmarshal sees every key
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("output_format", d.OutputFormat)

	v.SetDefault("transform.sample_rate", d.Transform.SampleRate)
	v.SetDefault("transform.length", d.Transform.Length)
	v.SetDefault("transform.real", d.Transform.Real)
	v.SetDefault("transform.window", d.Transform.Window)
	v.SetDefault("transform.min_window", d.Transform.MinWindow)
	v.SetDefault("transform.policy", d.Transform.Policy)
	v.SetDefault("transform.matrix_form", d.Transform.MatrixForm)
	v.SetDefault("transform.tight", d.Transform.Tight)
	v.SetDefault("transform.warn_tolerance", d.Transform.WarnTolerance)
	v.SetDefault("transform.workers", d.Transform.Workers)
	v.SetDefault("transform.engine", d.Transform.Engine)

	v.SetDefault("scale.type", d.Scale.Type)
	v.SetDefault("scale.fmin", d.Scale.FMin)
	v.SetDefault("scale.fmax", d.Scale.FMax)
	v.SetDefault("scale.bins", d.Scale.Bins)
	v.SetDefault("scale.beyond", d.Scale.Beyond)

	v.SetDefault("signal.kind", d.Signal.Kind)
	v.SetDefault("signal.frequency", d.Signal.Frequency)
	v.SetDefault("signal.amplitude", d.Signal.Amplitude)
	v.SetDefault("signal.seed", d.Signal.Seed)
	v.SetDefault("signal.duration", d.Signal.Duration)
}

// Load decodes and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	switch strings.ToLower(c.OutputFormat) {
	case "", "yaml", "json", "table":
	default:
		return fmt.Errorf("output format must be yaml, json or table, got %q", c.OutputFormat)
	}

	t := c.Transform
	if t.SampleRate <= 0 || math.IsInf(t.SampleRate, 0) || math.IsNaN(t.SampleRate) {
		return fmt.Errorf("sample rate must be positive, got %g", t.SampleRate)
	}
	if c.SignalLength() < nsgt.MinLength {
		return fmt.Errorf("signal length must be at least %d samples, got %d", nsgt.MinLength, c.SignalLength())
	}
	if _, err := spectral.NewEngine(t.Engine); err != nil {
		return err
	}
	if c.Signal.Duration < 0 {
		return fmt.Errorf("signal duration cannot be negative")
	}
	if _, err := testsignal.ParseKind(c.Signal.Kind); err != nil {
		return err
	}

	if _, err := c.FrameConfig(nil); err != nil {
		return err
	}
	if _, err := c.BuildScale(); err != nil {
		return err
	}
	return nil
}

// SignalLength is the transform length N, taking Signal.Duration into account
func (c *Config) SignalLength() int {
	if c.Signal.Duration > 0 {
		return int(math.Round(c.Signal.Duration * c.Transform.SampleRate))
	}
	return c.Transform.Length
}

// BuildScale creates the scale described by the scale section
func (c *Config) BuildScale() (scale.Scale, error) {
	s := c.Scale
	switch strings.ToLower(strings.TrimSpace(s.Type)) {
	case ScaleOctave, "octave", "cqt":
		return scale.NewOctaveScale(s.FMin, s.FMax, s.Bins, s.Beyond)
	case ScaleLog:
		return scale.NewLogScale(s.FMin, s.FMax, s.Bins, s.Beyond)
	case ScaleLinear, "linear":
		return scale.NewLinearScale(s.FMin, s.FMax, s.Bins, s.Beyond)
	case ScaleMel:
		return scale.NewMelScale(s.FMin, s.FMax, s.Bins, s.Beyond)
	case ScaleBark:
		return scale.NewBarkScale(s.FMin, s.FMax, s.Bins, s.Beyond)
	default:
		return nil, fmt.Errorf("unknown scale type %q", s.Type)
	}
}

// FrameConfig translates the transform section. logger may be nil.
func (c *Config) FrameConfig(logger logging.Logger) (*nsgt.FrameConfig, error) {
	t := c.Transform

	shape, err := windowing.ParseShape(t.Window)
	if err != nil {
		return nil, err
	}
	policy, err := nsgt.ParsePolicy(t.Policy)
	if err != nil {
		return nil, err
	}
	engine, err := spectral.NewEngine(t.Engine)
	if err != nil {
		return nil, err
	}

	fc := &nsgt.FrameConfig{
		Real:          t.Real,
		Shape:         shape,
		MinWindow:     t.MinWindow,
		Policy:        policy,
		MatrixForm:    t.MatrixForm,
		Tight:         t.Tight,
		WarnTolerance: t.WarnTolerance,
		Workers:       t.Workers,
		Engine:        engine,
		Logger:        logger,
	}
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	return fc, nil
}

// SignalParams describes the generated input for the configured transform
func (c *Config) SignalParams() (testsignal.Params, error) {
	kind, err := testsignal.ParseKind(c.Signal.Kind)
	if err != nil {
		return testsignal.Params{}, err
	}
	return testsignal.Params{
		Kind:       kind,
		Length:     c.SignalLength(),
		SampleRate: c.Transform.SampleRate,
		Frequency:  c.Signal.Frequency,
		Amplitude:  c.Signal.Amplitude,
		Seed:       c.Signal.Seed,
	}, nil
}

// YAML renders the configuration as a YAML document
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return out, nil
}
