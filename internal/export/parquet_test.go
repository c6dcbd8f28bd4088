package export

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/nsgt"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/scale"
	"github.com/RyanBlaney/sonido-nsgt/internal/testsignal"
	"github.com/RyanBlaney/sonido-nsgt/logging"
)

func analyze(t *testing.T) (nsgt.Coefficients, *nsgt.Frame) {
	t.Helper()
	s, err := scale.NewOctaveScale(100, 3200, 3, 0)
	require.NoError(t, err)
	cfg := nsgt.DefaultFrameConfig()
	cfg.Logger = &logging.NoOpLogger{}
	frame, err := nsgt.BuildFrame(s, 8000, 2000, cfg)
	require.NoError(t, err)
	c, err := nsgt.Analyze(testsignal.Sine(2000, 8000, 440, 1), frame)
	require.NoError(t, err)
	return c, frame
}

func TestRows(t *testing.T) {
	c, frame := analyze(t)
	rows, err := Rows(c, frame)
	require.NoError(t, err)
	require.Len(t, rows, c.Len())

	first := rows[0]
	assert.Equal(t, int32(0), first.Channel)
	assert.Equal(t, "dc", first.Kind)
	assert.Equal(t, int32(0), first.Index)
	assert.Zero(t, first.Time)

	last := rows[len(rows)-1]
	assert.Equal(t, frame.ChannelCount()-1, int(last.Channel))
	assert.Equal(t, "nyquist", last.Kind)

	// the second coefficient of a channel sits one hop later
	ch := frame.Channel(1)
	for _, r := range rows {
		if r.Channel == 1 && r.Index == 1 {
			assert.InDelta(t, ch.Hop/8000, r.Time, 1e-15)
			assert.InDelta(t, math.Hypot(r.Real, r.Imag), r.Magnitude, 1e-15)
		}
	}

	_, err = Rows(c[:2], frame)
	assert.ErrorIs(t, err, nsgt.ErrChannelCountMismatch)
}

func TestWriteRead(t *testing.T) {
	c, frame := analyze(t)
	rows, err := Rows(c, frame)
	require.NoError(t, err)

	for _, name := range []string{"snappy", "zstd", "gzip", "none"} {
		t.Run(name, func(t *testing.T) {
			codec, err := Compression(name)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, rows, codec))
			back, err := Read(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, rows, back)
		})
	}

	_, err = Compression("lzma")
	assert.Error(t, err, "unknown codec accepted")
}

func TestWriteFile(t *testing.T) {
	c, frame := analyze(t)
	path := filepath.Join(t.TempDir(), "coeffs.parquet")

	var log bytes.Buffer
	require.NoError(t, WriteFile(path, c, frame, "zstd", logging.NewWriterLogger(&log, logging.InfoLevel)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := Read(f)
	require.NoError(t, err)
	assert.Len(t, rows, c.Len())
	assert.Contains(t, log.String(), "exported coefficients")

	err = WriteFile(filepath.Join(t.TempDir(), "x.parquet"), c, frame, "lzma", nil)
	assert.Error(t, err, "unknown codec accepted")
}
