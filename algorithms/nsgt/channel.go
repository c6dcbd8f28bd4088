package nsgt

import (
	"slices"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/common"
)

// ChannelKind tells where on the frequency axis a channel sits
type ChannelKind int

const (
	ChannelDC ChannelKind = iota
	ChannelBand
	ChannelNyquist
	ChannelMirror // negative-frequency copy of a band
)

func (k ChannelKind) String() string {
	switch k {
	case ChannelDC:
		return "dc"
	case ChannelBand:
		return "band"
	case ChannelNyquist:
		return "nyquist"
	case ChannelMirror:
		return "mirror"
	default:
		return "unknown"
	}
}

// Channel describes one frequency sub-band of a frame. Channels handed out
// by a Frame carry their own copies of Window and Dual.
//
// Window sample j covers bin (Start()+j) mod N. Its coefficient block has
// Coefficients entries; the block index of sample j is (j-lead) mod
// Coefficients, so the center bin lands on index 0.
type Channel struct {
	Index     int         `json:"index"`
	Kind      ChannelKind `json:"kind"`
	Band      int         `json:"band"` // scale entry, -1 for DC and Nyquist
	Frequency float64     `json:"frequency"`
	Bandwidth float64     `json:"bandwidth"`
	CenterBin int         `json:"center_bin"`

	Window []float64 `json:"-"`
	Dual   []float64 `json:"-"`

	Coefficients int     `json:"coefficients"`
	Hop          float64 `json:"hop"` // samples per coefficient, N / Coefficients

	start int
	lead  int
}

// Start returns the first bin of the support, in [0, N)
func (c Channel) Start() int {
	return c.start
}

// Length returns the window length in bins
func (c Channel) Length() int {
	return len(c.Window)
}

// TimeResolution returns the spacing of the coefficients in seconds
func (c Channel) TimeResolution(sampleRate float64) float64 {
	return c.Hop / sampleRate
}

// blockIndex maps window sample j onto the coefficient block
func (c Channel) blockIndex(j int) int {
	return common.Mod(j-c.lead, c.Coefficients)
}

// clone copies the channel together with its windows
func (c Channel) clone() Channel {
	c.Window = slices.Clone(c.Window)
	c.Dual = slices.Clone(c.Dual)
	return c
}
