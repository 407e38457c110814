package segy_test

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beetlebugorg/segyproj/internal/segy"
	"github.com/beetlebugorg/segyproj/internal/segy/segytest"
)

func TestOpenHeadersOnly(t *testing.T) {
	dir := t.TempDir()
	path := segytest.WriteFile(t, dir, "line.sgy", segytest.Line(3, -100, 500000, 4500000, 100, 100), segytest.Options{})

	f, err := segy.Open(path, segy.OpenOptions{HeadersOnly: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if f.TraceCount() != 3 {
		t.Fatalf("TraceCount = %d, want 3", f.TraceCount())
	}
	if !f.HeadersOnly() {
		t.Error("HeadersOnly = false, want true")
	}
	if f.Order != binary.BigEndian {
		t.Errorf("Order = %v, want big-endian", f.Order)
	}
	for i, tr := range f.Traces {
		if tr.Samples != nil {
			t.Errorf("trace %d samples loaded in headers-only mode", i)
		}
		if tr.DataSize != 8*4 {
			t.Errorf("trace %d DataSize = %d, want 32", i, tr.DataSize)
		}
	}

	xs := f.Column(segy.FieldSourceX)
	want := []int64{500000, 500100, 500200}
	for i := range want {
		if xs[i] != want[i] {
			t.Errorf("source x[%d] = %d, want %d", i, xs[i], want[i])
		}
	}
	for i, s := range f.Column(segy.FieldCoordinateScalar) {
		if s != -100 {
			t.Errorf("scalar[%d] = %d, want -100", i, s)
		}
	}

	if f.Binary.FormatCode() != segy.FormatIEEEFloat32 {
		t.Errorf("FormatCode = %v, want IEEE float", f.Binary.FormatCode())
	}
	if major, _ := f.Binary.Revision(); major != 1 {
		t.Errorf("Revision major = %d, want 1", major)
	}
	if f.Text.Encoding() != segy.EncodingEBCDIC {
		t.Errorf("text encoding = %v, want EBCDIC", f.Text.Encoding())
	}
	if lines := f.Text.Lines(); len(lines) != 40 || lines[0] != "C 1 SYNTHETIC SEGY FILE" {
		t.Errorf("text header first line = %q (%d lines)", lines[0], len(lines))
	}
}

func TestOpenFullDecodesSamples(t *testing.T) {
	dir := t.TempDir()
	traces := segytest.Line(2, 0, 10, 20, 1, 1)
	traces[1].Samples = []float64{1, -1, 0.5, 0, 0, 0, 0, 8}
	path := segytest.WriteFile(t, dir, "full.segy", traces, segytest.Options{Format: segy.FormatIBMFloat32})

	f, err := segy.Open(path, segy.OpenOptions{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := f.Traces[0].Samples; len(got) != 8 || got[3] != 3 {
		t.Errorf("trace 0 samples = %v, want ramp 0..7", got)
	}
	if got := f.Traces[1].Samples; got[1] != -1 || got[7] != 8 {
		t.Errorf("trace 1 samples = %v", got)
	}
}

func TestOpenLittleEndianAndExtendedHeaders(t *testing.T) {
	dir := t.TempDir()
	path := segytest.WriteFile(t, dir, "le.sgy", segytest.Line(4, 10, 1, 2, 3, 4), segytest.Options{
		Order:    binary.LittleEndian,
		Text:     "SURVEY NORTH SEA 1998",
		Extended: []string{"((SEG: Test extended header))"},
	})

	f, err := segy.Open(path, segy.OpenOptions{HeadersOnly: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if f.Order != binary.LittleEndian {
		t.Fatalf("Order = %v, want little-endian", f.Order)
	}
	if len(f.Extended) != 1 {
		t.Fatalf("extended headers = %d, want 1", len(f.Extended))
	}
	if f.Text.Encoding() != segy.EncodingEBCDIC || f.Text.Lines()[0] != "SURVEY NORTH SEA 1998" {
		t.Errorf("textual header = %v %q", f.Text.Encoding(), f.Text.Lines()[0])
	}
	if f.Extended[0].Encoding() != segy.EncodingEBCDIC {
		t.Errorf("extended header encoding = %v, want EBCDIC", f.Extended[0].Encoding())
	}
	if !strings.HasPrefix(f.Extended[0].String(), "((SEG: Test") {
		t.Errorf("extended header = %q", f.Extended[0].String()[:40])
	}
	if f.DataOffset() != 3600+3200 {
		t.Errorf("DataOffset = %d, want 6800", f.DataOffset())
	}
	if got := f.Column(segy.FieldCDPY); got[3] != 2+3*4 {
		t.Errorf("cdp y[3] = %d, want 14", got[3])
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	data, err := segytest.Build(segytest.Line(2, 1, 0, 0, 1, 1), segytest.Options{})
	if err != nil {
		t.Fatal(err)
	}
	truncated := filepath.Join(dir, "truncated.sgy")
	if err := os.WriteFile(truncated, data[:len(data)-5], 0o644); err != nil {
		t.Fatal(err)
	}
	short := filepath.Join(dir, "short.sgy")
	if err := os.WriteFile(short, data[:1000], 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"truncated trace", truncated, segy.ErrTruncated},
		{"truncated headers", short, segy.ErrTruncated},
		{"missing file", filepath.Join(dir, "missing.sgy"), os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := segy.Open(tt.path, segy.OpenOptions{HeadersOnly: true})
			if !errors.Is(err, tt.want) {
				t.Errorf("Open error = %v, want %v", err, tt.want)
			}
		})
	}

	garbage := filepath.Join(dir, "garbage.sgy")
	if err := os.WriteFile(garbage, make([]byte, 4000), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = segy.Open(garbage, segy.OpenOptions{HeadersOnly: true})
	var unsupported *segy.ErrUnsupportedFormat
	if !errors.As(err, &unsupported) {
		t.Errorf("Open garbage error = %v, want ErrUnsupportedFormat", err)
	}
}
