package nsgt

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/spectral"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/windowing"
	"github.com/RyanBlaney/sonido-nsgt/logging"
)

// CoefficientPolicy decides how many coefficients (the block length M) a
// channel with a window of L bins gets. Every policy keeps M >= L.
type CoefficientPolicy string

const (
	// PolicyDivisor picks the smallest divisor of N that is >= L, so the hop
	// N/M is a whole number of samples.
	PolicyDivisor CoefficientPolicy = "divisor"
	// PolicyExact uses M = L (fewest coefficients, fractional hops).
	PolicyExact CoefficientPolicy = "exact"
	// PolicyPowerOfTwo rounds L up to a power of two, capped at N.
	PolicyPowerOfTwo CoefficientPolicy = "pow2"
)

// ParsePolicy resolves a policy name ("" selects PolicyDivisor)
func ParsePolicy(s string) (CoefficientPolicy, error) {
	switch CoefficientPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyDivisor:
		return PolicyDivisor, nil
	case PolicyExact:
		return PolicyExact, nil
	case PolicyPowerOfTwo, "power_of_two":
		return PolicyPowerOfTwo, nil
	default:
		return "", fmt.Errorf("unknown coefficient policy %q", s)
	}
}

// FrameConfig holds the frame construction and execution settings
type FrameConfig struct {
	// Real builds a frame for real signals: only DC, the scale bands and
	// Nyquist are exposed, negative frequencies follow by symmetry.
	Real bool `json:"real"`

	// Shape of the band windows; DC and Nyquist use a plateau when wider
	// than their neighbour.
	Shape windowing.Shape `json:"shape"`

	MinWindow int               `json:"min_window"` // smallest window in bins
	Policy    CoefficientPolicy `json:"policy"`

	// MatrixForm gives every exposed channel the same coefficient count
	MatrixForm bool `json:"matrix_form"`

	// Tight rescales the windows to the canonical tight frame, so analysis
	// and synthesis windows coincide.
	Tight bool `json:"tight"`

	// WarnTolerance is the relative diagonal floor below which a bin is
	// reported as badly conditioned.
	WarnTolerance float64 `json:"warn_tolerance"`

	Workers int             `json:"workers"` // 0 selects a count from the CPU count
	Engine  spectral.Engine `json:"-"`       // nil selects go-dsp
	Logger  logging.Logger  `json:"-"`       // nil selects the global logger
}

// DefaultFrameConfig returns the settings used when BuildFrame gets nil
func DefaultFrameConfig() *FrameConfig {
	return &FrameConfig{
		Real:          true,
		Shape:         windowing.ShapeHann,
		MinWindow:     4,
		Policy:        PolicyDivisor,
		WarnTolerance: 1e-6,
	}
}

// Validate checks the settings without building anything
func (c *FrameConfig) Validate() error {
	if c.MinWindow < 1 {
		return fmt.Errorf("min window must be at least 1, got %d", c.MinWindow)
	}
	if _, err := windowing.Bump(c.Shape, 1); err != nil {
		return err
	}
	if _, err := ParsePolicy(string(c.Policy)); err != nil {
		return err
	}
	if c.WarnTolerance < 0 || c.WarnTolerance >= 1 {
		return fmt.Errorf("warn tolerance must be in [0, 1), got %g", c.WarnTolerance)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return nil
}

// engineName identifies the engine for cache keys
func (c *FrameConfig) engineName() string {
	if c.Engine == nil {
		return spectral.EngineGoDSP
	}
	return c.Engine.Name()
}
