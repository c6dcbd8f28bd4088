package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/common"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/nsgt"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/spectral"
	"github.com/RyanBlaney/sonido-nsgt/internal/export"
	"github.com/RyanBlaney/sonido-nsgt/internal/testsignal"
	"github.com/RyanBlaney/sonido-nsgt/logging"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AnalysisReport summarises the coefficients of one analysis
type AnalysisReport struct {
	Signal            string          `json:"signal" yaml:"signal"`
	Length            int             `json:"length" yaml:"length"`
	Channels          int             `json:"channels" yaml:"channels"`
	Coefficients      int             `json:"coefficients" yaml:"coefficients"`
	SignalRMS         float64         `json:"signal_rms" yaml:"signal_rms"`
	SignalEnergy      float64         `json:"signal_energy" yaml:"signal_energy"`
	CoefficientEnergy float64         `json:"coefficient_energy" yaml:"coefficient_energy"`
	MeanChannelEnergy float64         `json:"mean_channel_energy" yaml:"mean_channel_energy"`
	StdChannelEnergy  float64         `json:"std_channel_energy" yaml:"std_channel_energy"`
	PeakChannel       ChannelEnergy   `json:"peak_channel" yaml:"peak_channel"`
	Distribution      Distribution    `json:"distribution" yaml:"distribution"`
	Elapsed           time.Duration   `json:"elapsed_ns" yaml:"elapsed"`
	Export            string          `json:"export,omitempty" yaml:"export,omitempty"`
	ChannelEnergies   []ChannelEnergy `json:"channel_energies,omitempty" yaml:"channel_energies,omitempty"`
}

// Distribution describes how the energy spreads over the non-negative
// frequency channels
type Distribution struct {
	Centroid float64 `json:"centroid_hz" yaml:"centroid_hz"`
	Spread   float64 `json:"spread_hz" yaml:"spread_hz"`
	Rolloff  float64 `json:"rolloff_hz" yaml:"rolloff_hz"` // 85% of the energy lies below
	Flatness float64 `json:"flatness" yaml:"flatness"`
	Crest    float64 `json:"crest" yaml:"crest"`
}

// ChannelEnergy is the energy of one channel's windowed spectrum,
// M·Σ|c|²/N for a block of M coefficients
type ChannelEnergy struct {
	Index     int     `json:"index" yaml:"index"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
	Energy    float64 `json:"energy" yaml:"energy"`
}

func newAnalyzeCommand(a *app) *cobra.Command {
	var (
		exportPath  string
		compression string
		perChannel  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a generated signal and report coefficient statistics",
		Long: `Generate the configured test signal, run the forward transform and report
how the coefficient energy spreads over the channels. With --export the
coefficients are written to a parquet file, one row per coefficient.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := a.frame()
			if err != nil {
				return err
			}
			x, err := a.signal()
			if err != nil {
				return err
			}

			start := time.Now()
			c, err := nsgt.Analyze(x, frame)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
			elapsed := time.Since(start)

			// the report and the export only read the coefficients
			var (
				report AnalysisReport
				g      errgroup.Group
			)
			g.Go(func() error {
				var err error
				report, err = analysisReport(x, c, frame)
				return err
			})
			if exportPath != "" {
				g.Go(func() error {
					return export.WriteFile(exportPath, c, frame, compression, a.logger)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			report.Signal = a.cfg.Signal.Kind
			report.Elapsed = elapsed
			report.Export = exportPath
			if !perChannel {
				report.ChannelEnergies = nil
			}

			a.logger.Debug("analysis finished", logging.Fields{
				"channels": report.Channels,
				"elapsed":  elapsed.String(),
			})
			return render(cmd.OutOrStdout(), a.cfg.OutputFormat, report, func(tw *tabwriter.Writer) {
				analysisTable(tw, report)
			})
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "write the coefficients to this parquet file")
	cmd.Flags().StringVar(&compression, "compression", "snappy", "parquet compression (snappy, zstd, gzip, none)")
	cmd.Flags().BoolVar(&perChannel, "per-channel", false, "include the energy of every channel")
	return cmd
}

// signal generates the configured input
func (a *app) signal() ([]float64, error) {
	p, err := a.cfg.SignalParams()
	if err != nil {
		return nil, err
	}
	return testsignal.Generate(p)
}

func analysisReport(x []float64, c nsgt.Coefficients, frame *nsgt.Frame) (AnalysisReport, error) {
	total, err := nsgt.CoefficientEnergy(c, frame)
	if err != nil {
		return AnalysisReport{}, err
	}

	energies := make([]float64, len(c))
	report := AnalysisReport{
		Length:            frame.Length(),
		Channels:          len(c),
		Coefficients:      c.Len(),
		SignalRMS:         common.RMS(x),
		SignalEnergy:      nsgt.SignalEnergy(x),
		CoefficientEnergy: total,
		ChannelEnergies:   make([]ChannelEnergy, len(c)),
	}
	var freqs, positive []float64
	for i, block := range c {
		ch := frame.Channel(i)
		energies[i] = float64(ch.Coefficients) * common.ComplexEnergy(block) / float64(frame.Length())
		report.ChannelEnergies[i] = ChannelEnergy{
			Index:     i,
			Frequency: ch.Frequency,
			Energy:    energies[i],
		}
		if ch.Frequency >= 0 {
			freqs = append(freqs, ch.Frequency)
			positive = append(positive, energies[i])
		}
	}

	report.MeanChannelEnergy, report.StdChannelEnergy = stat.MeanStdDev(energies, nil)
	report.PeakChannel = report.ChannelEnergies[floats.MaxIdx(energies)]

	centroid := spectral.Centroid(freqs, positive)
	report.Distribution = Distribution{
		Centroid: centroid,
		Spread:   spectral.Spread(freqs, positive, centroid),
		Rolloff:  spectral.Rolloff(freqs, positive, 0.85),
		Flatness: spectral.Flatness(positive),
		Crest:    spectral.Crest(positive),
	}
	return report, nil
}

func analysisTable(tw *tabwriter.Writer, r AnalysisReport) {
	fmt.Fprintf(tw, "signal\t%s\tlength\t%d\n", r.Signal, r.Length)
	fmt.Fprintf(tw, "channels\t%d\tcoefficients\t%d\n", r.Channels, r.Coefficients)
	fmt.Fprintf(tw, "signal rms\t%.6g\t\t\n", r.SignalRMS)
	fmt.Fprintf(tw, "signal energy\t%.6g\tcoefficient energy\t%.6g\n", r.SignalEnergy, r.CoefficientEnergy)
	fmt.Fprintf(tw, "channel energy\t%.6g ± %.6g\t\t\n", r.MeanChannelEnergy, r.StdChannelEnergy)
	fmt.Fprintf(tw, "peak channel\t%d (%.2f Hz)\tenergy\t%.6g\n", r.PeakChannel.Index, r.PeakChannel.Frequency, r.PeakChannel.Energy)
	fmt.Fprintf(tw, "centroid\t%.2f Hz\tspread\t%.2f Hz\n", r.Distribution.Centroid, r.Distribution.Spread)
	fmt.Fprintf(tw, "rolloff\t%.2f Hz\tflatness\t%.4f\n", r.Distribution.Rolloff, r.Distribution.Flatness)
	fmt.Fprintf(tw, "crest\t%.4f\t\t\n", r.Distribution.Crest)
	fmt.Fprintf(tw, "elapsed\t%s\t\t\n", r.Elapsed)
	if r.Export != "" {
		fmt.Fprintf(tw, "export\t%s\t\t\n", r.Export)
	}
	if len(r.ChannelEnergies) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "#\tfrequency (Hz)\tenergy")
		for _, ch := range r.ChannelEnergies {
			fmt.Fprintf(tw, "%d\t%.2f\t%.6g\n", ch.Index, ch.Frequency, ch.Energy)
		}
	}
}
