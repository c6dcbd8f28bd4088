package cli

import (
	"fmt"
	"math"
	"text/tabwriter"
	"time"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/common"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/nsgt"
	"github.com/RyanBlaney/sonido-nsgt/logging"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

// RoundTripReport compares a signal with its reconstruction
type RoundTripReport struct {
	Signal        string        `json:"signal" yaml:"signal"`
	Length        int           `json:"length" yaml:"length"`
	Channels      int           `json:"channels" yaml:"channels"`
	Repeat        int           `json:"repeat" yaml:"repeat"`
	MaxError      float64       `json:"max_error" yaml:"max_error"`
	RelativeError float64       `json:"relative_error" yaml:"relative_error"`
	EnergyRatio   float64       `json:"energy_ratio" yaml:"energy_ratio"` // coefficient energy over the frame-weighted spectral energy
	Condition     float64       `json:"condition" yaml:"condition"`
	Analysis      time.Duration `json:"analysis_ns" yaml:"analysis"`
	Synthesis     time.Duration `json:"synthesis_ns" yaml:"synthesis"`
	Tolerance     float64       `json:"tolerance" yaml:"tolerance"`
	Passed        bool          `json:"passed" yaml:"passed"`
}

func newRoundTripCommand(a *app) *cobra.Command {
	var (
		repeat    int
		tolerance float64
	)

	cmd := &cobra.Command{
		Use:   "roundtrip",
		Short: "Check perfect reconstruction of a generated signal",
		Long: `Analyze the configured test signal, synthesize it back with the dual frame
and compare. Timings are averaged over --repeat runs; the command fails when
the relative reconstruction error exceeds --tolerance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if repeat < 1 {
				return fmt.Errorf("repeat must be at least 1, got %d", repeat)
			}
			x, err := a.signal()
			if err != nil {
				return err
			}

			report, err := a.roundTrip(x, repeat)
			if err != nil {
				return err
			}
			report.Signal = a.cfg.Signal.Kind
			report.Tolerance = tolerance
			report.Passed = report.RelativeError <= tolerance

			if err := render(cmd.OutOrStdout(), a.cfg.OutputFormat, report, func(tw *tabwriter.Writer) {
				roundTripTable(tw, report)
			}); err != nil {
				return err
			}
			if !report.Passed {
				return fmt.Errorf("relative error %.3g exceeds tolerance %.3g", report.RelativeError, tolerance)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&repeat, "repeat", "r", 1, "number of timed runs")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 1e-9, "largest accepted relative error")
	return cmd
}

// roundTrip runs analysis and synthesis repeat times. The frame comes from
// the cache, so only the first run pays for construction.
func (a *app) roundTrip(x []float64, repeat int) (RoundTripReport, error) {
	var (
		analysis  = make([]float64, repeat)
		synthesis = make([]float64, repeat)
		frame     *nsgt.Frame
		c         nsgt.Coefficients
		y         []float64
	)

	for r := range repeat {
		var err error
		if frame, err = a.frame(); err != nil {
			return RoundTripReport{}, err
		}

		start := time.Now()
		if c, err = nsgt.Analyze(x, frame); err != nil {
			return RoundTripReport{}, fmt.Errorf("analysis failed: %w", err)
		}
		analysis[r] = float64(time.Since(start))

		start = time.Now()
		if y, err = nsgt.Synthesize(c, frame); err != nil {
			return RoundTripReport{}, fmt.Errorf("synthesis failed: %w", err)
		}
		synthesis[r] = float64(time.Since(start))
	}

	maxErr, err := common.MaxAbsDiff(y, x)
	if err != nil {
		return RoundTripReport{}, err
	}
	relErr, err := common.RelativeError(y, x)
	if err != nil {
		return RoundTripReport{}, err
	}

	coeffEnergy, err := nsgt.CoefficientEnergy(c, frame)
	if err != nil {
		return RoundTripReport{}, err
	}
	specEnergy, err := nsgt.SpectralEnergy(x, frame)
	if err != nil {
		return RoundTripReport{}, err
	}
	ratio := 1.0
	if specEnergy > 0 {
		ratio = coeffEnergy / specEnergy
	}

	hits, misses := a.frames.Stats()
	a.logger.Debug("round trip finished", logging.Fields{
		"repeat":       repeat,
		"cache_hits":   hits,
		"cache_misses": misses,
	})

	return RoundTripReport{
		Length:        frame.Length(),
		Channels:      frame.ChannelCount(),
		Repeat:        repeat,
		MaxError:      maxErr,
		RelativeError: relErr,
		EnergyRatio:   ratio,
		Condition:     frame.Condition(),
		Analysis:      time.Duration(math.Round(stat.Mean(analysis, nil))),
		Synthesis:     time.Duration(math.Round(stat.Mean(synthesis, nil))),
	}, nil
}

func roundTripTable(tw *tabwriter.Writer, r RoundTripReport) {
	status := "ok"
	if !r.Passed {
		status = "FAILED"
	}
	fmt.Fprintf(tw, "signal\t%s\tlength\t%d\n", r.Signal, r.Length)
	fmt.Fprintf(tw, "channels\t%d\tcondition\t%.4g\n", r.Channels, r.Condition)
	fmt.Fprintf(tw, "max error\t%.3g\trelative error\t%.3g\n", r.MaxError, r.RelativeError)
	fmt.Fprintf(tw, "energy ratio\t%.12g\tstatus\t%s\n", r.EnergyRatio, status)
	fmt.Fprintf(tw, "analysis\t%s\tsynthesis\t%s\n", r.Analysis, r.Synthesis)
	fmt.Fprintf(tw, "runs\t%d\ttolerance\t%.3g\n", r.Repeat, r.Tolerance)
}
