package segyproj

import (
	"github.com/beetlebugorg/segyproj/internal/segy"
)

// OpenOptions configures how a SEGY file is loaded.
type OpenOptions struct {
	// HeadersOnly skips sample data. Coordinate work never needs samples.
	HeadersOnly bool
}

// File is a loaded SEGY file.
//
// It is a read-only snapshot: no file descriptor stays open and nothing
// modifies it. Rewritten copies are produced by Rewriter.
type File struct {
	internal *segy.File
}

// Open loads a SEGY file.
func Open(path string, opts OpenOptions) (*File, error) {
	f, err := segy.Open(path, segy.OpenOptions{HeadersOnly: opts.HeadersOnly})
	if err != nil {
		return nil, newError(KindFileRead, path, err)
	}
	return &File{internal: f}, nil
}

// Path returns the path the file was loaded from.
func (f *File) Path() string { return f.internal.Path }

// TraceCount returns the number of traces.
func (f *File) TraceCount() int { return f.internal.TraceCount() }

// HeadersOnly reports whether sample data was skipped.
func (f *File) HeadersOnly() bool { return f.internal.HeadersOnly() }

// TextHeader returns the 40 lines of the textual file header.
func (f *File) TextHeader() []string { return f.internal.Text.Lines() }

// Scalers returns the coordinate scalar of every trace.
func (f *File) Scalers() []int16 {
	column := f.internal.Column(segy.FieldCoordinateScalar)
	scalers := make([]int16, len(column))
	for i, v := range column {
		scalers[i] = int16(v)
	}
	return scalers
}

// RawCoordinates returns the unscaled header integers of a role, one pair per trace.
func (f *File) RawCoordinates(role CoordinateRole) (xs, ys []int64, err error) {
	fx, fy, err := role.fields()
	if err != nil {
		return nil, nil, err
	}
	return f.internal.Column(fx), f.internal.Column(fy), nil
}

// HeaderValue returns a named trace header field of trace i.
//
// Names follow the SEGY trace header table, e.g. "source_coordinate_x" or
// "for_3d_poststack_data_this_field_is_for_in_line_number".
func (f *File) HeaderValue(i int, name string) (int64, error) {
	field, err := segy.FieldByName(name)
	if err != nil {
		return 0, newError(KindInvalidArgument, f.Path(), err)
	}
	return f.internal.Traces[i].Header.Get(field), nil
}

// Samples returns the decoded samples of trace i; nil when loaded headers-only.
func (f *File) Samples(i int) []float64 { return f.internal.Traces[i].Samples }
