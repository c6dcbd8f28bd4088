// Package cli implements the nsgt command line tool.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/nsgt"
	"github.com/RyanBlaney/sonido-nsgt/config"
	"github.com/RyanBlaney/sonido-nsgt/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "NSGT"

// flagKeys maps flag names onto configuration keys
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"log-format": "log_format",
	"output":     "output_format",

	"sample-rate":    "transform.sample_rate",
	"length":         "transform.length",
	"real":           "transform.real",
	"window":         "transform.window",
	"min-window":     "transform.min_window",
	"policy":         "transform.policy",
	"matrix":         "transform.matrix_form",
	"tight":          "transform.tight",
	"warn-tolerance": "transform.warn_tolerance",
	"workers":        "transform.workers",
	"engine":         "transform.engine",

	"scale":  "scale.type",
	"fmin":   "scale.fmin",
	"fmax":   "scale.fmax",
	"bins":   "scale.bins",
	"beyond": "scale.beyond",

	"signal":    "signal.kind",
	"frequency": "signal.frequency",
	"amplitude": "signal.amplitude",
	"seed":      "signal.seed",
	"duration":  "signal.duration",
}

// app carries the state shared by the subcommands of one invocation
type app struct {
	v          *viper.Viper
	configFile string

	cfg    *config.Config
	logger logging.Logger
	frames *nsgt.FrameCache
}

// NewRootCommand builds the command tree with a fresh viper instance
func NewRootCommand() *cobra.Command {
	a := &app{
		v:      viper.New(),
		frames: nsgt.NewFrameCache(4),
	}

	root := &cobra.Command{
		Use:   "nsgt",
		Short: "Nonstationary Gabor transform toolkit",
		Long: `Build invertible nonstationary Gabor frames on octave, log, linear, mel
or bark scales, inspect their layout, analyze generated signals and check
perfect reconstruction.

Settings come from flags, NSGT_* environment variables and an optional
YAML configuration file, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	d := config.Default()
	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "",
		"config file (default is $HOME/.config/nsgt/nsgt.yaml)")
	pf.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	pf.String("log-format", d.LogFormat, "log format (text, json)")
	pf.StringP("output", "o", d.OutputFormat, "output format (yaml, json, table)")

	pf.Float64("sample-rate", d.Transform.SampleRate, "sample rate in Hz")
	pf.IntP("length", "n", d.Transform.Length, "signal length in samples")
	pf.Bool("real", d.Transform.Real, "real-signal frame (only non-negative frequencies)")
	pf.String("window", d.Transform.Window, "band window shape")
	pf.Int("min-window", d.Transform.MinWindow, "smallest window length in bins")
	pf.String("policy", d.Transform.Policy, "coefficient count policy (divisor, exact, pow2)")
	pf.Bool("matrix", d.Transform.MatrixForm, "equal coefficient count for every channel")
	pf.Bool("tight", d.Transform.Tight, "use the canonical tight frame")
	pf.Float64("warn-tolerance", d.Transform.WarnTolerance, "relative diagonal floor for conditioning warnings")
	pf.Int("workers", d.Transform.Workers, "worker goroutines (0 picks from the CPU count)")
	pf.String("engine", d.Transform.Engine, "FFT engine (godsp, gonum)")

	pf.StringP("scale", "s", d.Scale.Type, "frequency scale (oct, log, lin, mel, bark)")
	pf.Float64("fmin", d.Scale.FMin, "lowest scale frequency in Hz")
	pf.Float64("fmax", d.Scale.FMax, "highest scale frequency in Hz")
	pf.IntP("bins", "b", d.Scale.Bins, "bins per octave (oct) or band count")
	pf.Int("beyond", d.Scale.Beyond, "extra bands beyond each end of the range")

	pf.String("signal", d.Signal.Kind, "input signal (impulse, sine, chirp, noise, zero)")
	pf.Float64("frequency", d.Signal.Frequency, "sine frequency or chirp end frequency in Hz")
	pf.Float64("amplitude", d.Signal.Amplitude, "signal amplitude")
	pf.Uint64("seed", d.Signal.Seed, "noise seed")
	pf.Float64("duration", d.Signal.Duration, "signal duration in seconds (overrides --length)")

	root.AddCommand(
		newFrameCommand(a),
		newAnalyzeCommand(a),
		newRoundTripCommand(a),
		newConfigCommand(a),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// initialize reads the config file and environment, binds the flags and
// loads the resulting configuration
func (a *app) initialize(cmd *cobra.Command) error {
	v := a.v
	config.SetDefaults(v)

	if a.configFile != "" {
		v.SetConfigFile(a.configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "nsgt"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("nsgt")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := bindFlags(cmd, v); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	a.logger = logger
	logging.SetGlobalLogger(logger)

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", logging.Fields{"path": used})
	}
	return nil
}

// bindFlags binds each known flag to its configuration key, and to an
// NSGT_<FLAG> environment variable next to the NSGT_<KEY> one
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}

		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}

		flagEnv := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		keyEnv := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, keyEnv, flagEnv); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

// newLogger logs to stderr so that stdout stays parseable
func newLogger(cfg *config.Config) (logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(cfg.LogFormat, "json") {
		logger, err := logging.NewZapLogger(level)
		if err != nil {
			return nil, fmt.Errorf("failed to create zap logger: %w", err)
		}
		return logger, nil
	}
	return logging.NewWriterLogger(os.Stderr, level), nil
}
