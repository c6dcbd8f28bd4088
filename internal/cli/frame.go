package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/nsgt"
	"github.com/RyanBlaney/sonido-nsgt/logging"
	"github.com/spf13/cobra"
)

func newFrameCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "frame",
		Short: "Build a frame and describe its channels",
		Long: `Build the frame for the configured scale and signal length and print its
channel layout: center frequencies, window sizes, coefficient counts and the
frame bounds of the diagonal frame operator.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := a.frame()
			if err != nil {
				return err
			}
			summary := frame.Describe()
			return render(cmd.OutOrStdout(), a.cfg.OutputFormat, summary, func(tw *tabwriter.Writer) {
				frameTable(tw, summary)
			})
		},
	}
}

// frame builds (or reuses) the frame for the loaded configuration
func (a *app) frame() (*nsgt.Frame, error) {
	s, err := a.cfg.BuildScale()
	if err != nil {
		return nil, err
	}
	fc, err := a.cfg.FrameConfig(a.logger.WithFields(logging.Fields{"component": "nsgt"}))
	if err != nil {
		return nil, err
	}
	frame, err := a.frames.Get(s, a.cfg.Transform.SampleRate, a.cfg.SignalLength(), fc)
	if err != nil {
		return nil, fmt.Errorf("failed to build frame: %w", err)
	}
	return frame, nil
}

func frameTable(tw *tabwriter.Writer, s nsgt.FrameSummary) {
	fmt.Fprintf(tw, "length\t%d\tsample rate\t%g Hz\n", s.Length, s.SampleRate)
	fmt.Fprintf(tw, "real\t%t\ttight\t%t\n", s.Real, s.Tight)
	fmt.Fprintf(tw, "policy\t%s\tengine\t%s\n", s.Policy, s.Engine)
	fmt.Fprintf(tw, "channels\t%d\tcoefficients\t%d\n", s.ChannelCount, s.Coefficients)
	fmt.Fprintf(tw, "bounds\t[%.4g, %.4g]\t\t\n", s.LowerBound, s.UpperBound)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "#\tkind\tfrequency (Hz)\tbandwidth (Hz)\tbins\tcoefficients\thop (ms)")
	for _, ch := range s.Channels {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%d\t%d\t%.3f\n",
			ch.Index, ch.Kind, ch.Frequency, ch.Bandwidth, ch.Bins, ch.Coefficients, ch.TimeResolution*1000)
	}

	for _, w := range s.Warnings {
		fmt.Fprintf(tw, "warning:\t%s\n", w)
	}
}
