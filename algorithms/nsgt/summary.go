package nsgt

// FrameSummary is a serialisable description of a frame for tooling
type FrameSummary struct {
	Length       int              `json:"length" yaml:"length"`
	SampleRate   float64          `json:"sample_rate" yaml:"sample_rate"`
	Real         bool             `json:"real" yaml:"real"`
	Tight        bool             `json:"tight" yaml:"tight"`
	Policy       string           `json:"policy" yaml:"policy"`
	Engine       string           `json:"engine" yaml:"engine"`
	ChannelCount int              `json:"channel_count" yaml:"channel_count"`
	Coefficients int              `json:"coefficients" yaml:"coefficients"`
	LowerBound   float64          `json:"lower_bound" yaml:"lower_bound"`
	UpperBound   float64          `json:"upper_bound" yaml:"upper_bound"`
	Warnings     []string         `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Channels     []ChannelSummary `json:"channels" yaml:"channels"`
}

// ChannelSummary describes one exposed channel
type ChannelSummary struct {
	Index          int     `json:"index" yaml:"index"`
	Kind           string  `json:"kind" yaml:"kind"`
	Frequency      float64 `json:"frequency" yaml:"frequency"`
	Bandwidth      float64 `json:"bandwidth" yaml:"bandwidth"`
	CenterBin      int     `json:"center_bin" yaml:"center_bin"`
	Bins           int     `json:"bins" yaml:"bins"`
	Coefficients   int     `json:"coefficients" yaml:"coefficients"`
	Hop            float64 `json:"hop" yaml:"hop"`
	TimeResolution float64 `json:"time_resolution" yaml:"time_resolution"` // seconds
}

// Describe summarises the frame
func (f *Frame) Describe() FrameSummary {
	lower, upper := f.Bounds()

	summary := FrameSummary{
		Length:       f.length,
		SampleRate:   f.sampleRate,
		Real:         f.real,
		Tight:        f.config.Tight,
		Policy:       string(f.config.Policy),
		Engine:       f.engine.Name(),
		ChannelCount: f.exposed,
		LowerBound:   lower,
		UpperBound:   upper,
		Warnings:     f.Warnings(),
		Channels:     make([]ChannelSummary, f.exposed),
	}

	for i := range f.exposed {
		ch := &f.channels[i]
		summary.Coefficients += ch.Coefficients
		summary.Channels[i] = ChannelSummary{
			Index:          ch.Index,
			Kind:           ch.Kind.String(),
			Frequency:      ch.Frequency,
			Bandwidth:      ch.Bandwidth,
			CenterBin:      ch.CenterBin,
			Bins:           len(ch.Window),
			Coefficients:   ch.Coefficients,
			Hop:            ch.Hop,
			TimeResolution: ch.TimeResolution(f.sampleRate),
		}
	}
	return summary
}
