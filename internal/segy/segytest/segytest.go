// Package segytest builds small synthetic SEGY files for tests.
package segytest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/beetlebugorg/segyproj/internal/segy"
)

// Trace describes one synthetic trace.
type Trace struct {
	Scalar           int16
	SourceX, SourceY int32
	GroupX, GroupY   int32
	CDPX, CDPY       int32
	Inline, Xline    int32

	// Samples defaults to a ramp of Options.Samples values derived from the trace index.
	Samples []float64
}

// Options controls the file layout.
type Options struct {
	Order          binary.ByteOrder  // default big-endian
	Format         segy.SampleFormat // default IEEE float
	Samples        int               // samples per trace, default 8
	SampleInterval uint16            // microseconds, default 4000
	Text           string            // textual header, stored as EBCDIC
	Extended       []string          // extended textual headers
	LineNumber     int32
	Units          int16 // measurement system, default 1 (meters)
}

func (o Options) withDefaults() Options {
	if o.Order == nil {
		o.Order = binary.BigEndian
	}
	if o.Format == 0 {
		o.Format = segy.FormatIEEEFloat32
	}
	if o.Samples == 0 {
		o.Samples = 8
	}
	if o.SampleInterval == 0 {
		o.SampleInterval = 4000
	}
	if o.Units == 0 {
		o.Units = 1
	}
	if o.Text == "" {
		o.Text = "C 1 SYNTHETIC SEGY FILE"
	}
	return o
}

// Build encodes traces into a complete SEGY file image.
func Build(traces []Trace, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	var buf bytes.Buffer

	text, err := segy.EncodeEBCDIC(opts.Text)
	if err != nil {
		return nil, err
	}
	buf.Write(text)

	// Binary header offsets relative to byte 3201.
	bin := make([]byte, segy.BinaryHeaderSize)
	opts.Order.PutUint16(bin[16:], opts.SampleInterval)
	opts.Order.PutUint16(bin[20:], uint16(opts.Samples))
	opts.Order.PutUint16(bin[24:], uint16(opts.Format))
	opts.Order.PutUint32(bin[4:], uint32(opts.LineNumber))
	opts.Order.PutUint16(bin[54:], uint16(opts.Units))
	opts.Order.PutUint16(bin[300:], 0x0100)
	opts.Order.PutUint16(bin[304:], uint16(len(opts.Extended)))
	buf.Write(bin)

	for _, ext := range opts.Extended {
		b, err := segy.EncodeEBCDIC(ext)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}

	for i, tr := range traces {
		h := segy.NewTraceHeader(make([]byte, segy.TraceHeaderSize), opts.Order)
		values := []struct {
			field segy.Field
			value int64
		}{
			{segy.FieldTraceSequenceLine, int64(i + 1)},
			{segy.FieldTraceSequenceFile, int64(i + 1)},
			{segy.FieldCoordinateScalar, int64(tr.Scalar)},
			{segy.FieldSourceX, int64(tr.SourceX)},
			{segy.FieldSourceY, int64(tr.SourceY)},
			{segy.FieldGroupX, int64(tr.GroupX)},
			{segy.FieldGroupY, int64(tr.GroupY)},
			{segy.FieldCDPX, int64(tr.CDPX)},
			{segy.FieldCDPY, int64(tr.CDPY)},
			{segy.FieldInline, int64(tr.Inline)},
			{segy.FieldCrossline, int64(tr.Xline)},
			{segy.FieldSampleCount, int64(opts.Samples)},
			{segy.FieldSampleInterval, int64(opts.SampleInterval)},
		}
		for _, v := range values {
			if err := h.Set(v.field, v.value); err != nil {
				return nil, err
			}
		}
		buf.Write(h.Bytes())

		samples := tr.Samples
		if samples == nil {
			samples = make([]float64, opts.Samples)
			for s := range samples {
				samples[s] = float64(i*100 + s)
			}
		}
		data, err := opts.Format.EncodeSamples(samples, opts.Order)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}

	return buf.Bytes(), nil
}

// WriteFile builds a SEGY file named name in dir and returns its path.
func WriteFile(tb testing.TB, dir, name string, traces []Trace, opts Options) string {
	tb.Helper()
	data, err := Build(traces, opts)
	if err != nil {
		tb.Fatalf("build synthetic segy: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write synthetic segy: %v", err)
	}
	return path
}

// Line returns n traces on a straight line starting at (x0, y0) in raw
// header units, stepping by (dx, dy), with every coordinate role set to the
// same position.
func Line(n int, scalar int16, x0, y0, dx, dy int32) []Trace {
	traces := make([]Trace, n)
	for i := range traces {
		x := x0 + int32(i)*dx
		y := y0 + int32(i)*dy
		traces[i] = Trace{
			Scalar:  scalar,
			SourceX: x, SourceY: y,
			GroupX: x, GroupY: y,
			CDPX: x, CDPY: y,
			Inline: 1000, Xline: int32(2000 + i),
		}
	}
	return traces
}
