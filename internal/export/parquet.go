// Package export writes coefficient blocks as columnar parquet files, one
// row per coefficient.
package export

import (
	"bytes"
	"fmt"
	"io"
	"math/cmplx"
	"os"
	"strings"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/nsgt"
	"github.com/RyanBlaney/sonido-nsgt/logging"
	parquet "github.com/parquet-go/parquet-go"
)

// CoefficientRow is a single time-frequency coefficient
type CoefficientRow struct {
	Channel   int32   `parquet:"channel"`
	Kind      string  `parquet:"kind,dict"`
	Frequency float64 `parquet:"frequency_hz"`
	Index     int32   `parquet:"index"`
	Time      float64 `parquet:"time_s"`
	Real      float64 `parquet:"real"`
	Imag      float64 `parquet:"imag"`
	Magnitude float64 `parquet:"magnitude"`
}

// Rows flattens c, which must match frame, in channel order
func Rows(c nsgt.Coefficients, frame *nsgt.Frame) ([]CoefficientRow, error) {
	if err := frame.CheckShape(c); err != nil {
		return nil, err
	}

	rows := make([]CoefficientRow, 0, c.Len())
	for i, block := range c {
		ch := frame.Channel(i)
		step := ch.TimeResolution(frame.SampleRate())
		kind := ch.Kind.String()
		for n, v := range block {
			rows = append(rows, CoefficientRow{
				Channel:   int32(i),
				Kind:      kind,
				Frequency: ch.Frequency,
				Index:     int32(n),
				Time:      float64(n) * step,
				Real:      real(v),
				Imag:      imag(v),
				Magnitude: cmplx.Abs(v),
			})
		}
	}
	return rows, nil
}

// Compression resolves a codec name: snappy (default), zstd, gzip or none
func Compression(name string) (parquet.WriterOption, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "snappy":
		return parquet.Compression(&parquet.Snappy), nil
	case "zstd":
		return parquet.Compression(&parquet.Zstd), nil
	case "gzip", "gz":
		return parquet.Compression(&parquet.Gzip), nil
	case "none", "uncompressed":
		return parquet.Compression(&parquet.Uncompressed), nil
	default:
		return nil, fmt.Errorf("unknown parquet compression %q", name)
	}
}

// Write encodes rows to w
func Write(w io.Writer, rows []CoefficientRow, compression parquet.WriterOption) error {
	pw := parquet.NewGenericWriter[CoefficientRow](w, compression)
	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("failed to write coefficient rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// Read decodes every row of a parquet file written by Write
func Read(r io.ReaderAt) ([]CoefficientRow, error) {
	gr := parquet.NewGenericReader[CoefficientRow](r)
	defer gr.Close()

	out := make([]CoefficientRow, 0, gr.NumRows())
	batch := make([]CoefficientRow, 1024)
	for {
		n, err := gr.Read(batch)
		if n > 0 {
			out = append(out, batch[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read coefficient rows: %w", err)
		}
	}
	return out, nil
}

// WriteFile exports c to path. The file is written in one go from an
// in-memory buffer, so a failed encode leaves no partial file behind.
func WriteFile(path string, c nsgt.Coefficients, frame *nsgt.Frame, compression string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	codec, err := Compression(compression)
	if err != nil {
		return err
	}
	rows, err := Rows(c, frame)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Write(&buf, rows, codec); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Info("exported coefficients", logging.Fields{
		"path":        path,
		"rows":        len(rows),
		"bytes":       buf.Len(),
		"compression": compression,
	})
	return nil
}
