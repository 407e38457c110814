package segyproj

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/beetlebugorg/segyproj/internal/segy"
)

// DescribeOptions configures Describe.
type DescribeOptions struct {
	// Full decodes sample data to report the amplitude range.
	Full bool

	// IndexRole selects the positions put in Summary.Index. Default: RoleCDP.
	IndexRole CoordinateRole

	// Extract controls how raw coordinates are scaled.
	Extract ExtractOptions
}

// RoleExtent is the scaled extent of one coordinate role.
type RoleExtent struct {
	Role   CoordinateRole
	Bounds Bounds
}

// Summary describes a SEGY file.
type Summary struct {
	Path         string
	Size         int64
	Revision     string
	Format       string
	ByteOrder    string
	TextEncoding string
	TextHeader   []string
	Extended     int
	LineNumber   int32
	Units        string // meters, feet or unspecified

	Traces         int
	Samples        int // per trace, from the binary header
	SampleInterval int // microseconds

	ScalerMin, ScalerMax int16
	Coefficient          Coefficient
	Extents              []RoleExtent

	// HasAmplitudes is set when the file was read in full.
	HasAmplitudes bool
	AmplitudeMin  float64
	AmplitudeMax  float64

	// Index holds the positions of DescribeOptions.IndexRole.
	Index *NavigationIndex
}

// Describe reads a SEGY file and summarizes its layout and coordinates.
func Describe(path string, opts DescribeOptions) (*Summary, error) {
	if opts.IndexRole == 0 {
		opts.IndexRole = RoleCDP
	}
	if _, _, err := opts.IndexRole.fields(); err != nil {
		return nil, err
	}
	if err := opts.Extract.validate(); err != nil {
		return nil, err
	}

	f, err := Open(path, OpenOptions{HeadersOnly: !opts.Full})
	if err != nil {
		return nil, err
	}
	raw := f.internal
	major, minor := raw.Binary.Revision()

	s := &Summary{
		Path:           path,
		Size:           raw.Size(),
		Revision:       fmt.Sprintf("%d.%d", major, minor),
		Format:         raw.Binary.FormatCode().String(),
		ByteOrder:      segy.ByteOrderName(raw.Order),
		TextEncoding:   raw.Text.Encoding().String(),
		TextHeader:     raw.Text.Lines(),
		Extended:       len(raw.Extended),
		LineNumber:     raw.Binary.LineNumber(),
		Units:          raw.Binary.Units(),
		Traces:         raw.TraceCount(),
		Samples:        int(raw.Binary.SamplesPerTrace()),
		SampleInterval: int(raw.Binary.SampleInterval()),
	}

	scalers := f.Scalers()
	for i, v := range scalers {
		if i == 0 || v < s.ScalerMin {
			s.ScalerMin = v
		}
		if i == 0 || v > s.ScalerMax {
			s.ScalerMax = v
		}
	}

	for _, role := range Roles {
		points, coef, err := ExtractXYFromFile(f, role, opts.Extract)
		if err != nil {
			return nil, err
		}
		s.Coefficient = coef
		s.Extents = append(s.Extents, RoleExtent{Role: role, Bounds: BoundsOf(points)})
		if role == opts.IndexRole {
			s.Index = BuildNavigationIndex(points)
		}
	}

	if opts.Full {
		s.AmplitudeMin, s.AmplitudeMax = math.Inf(1), math.Inf(-1)
		for _, t := range raw.Traces {
			for _, v := range t.Samples {
				s.AmplitudeMin = math.Min(s.AmplitudeMin, v)
				s.AmplitudeMax = math.Max(s.AmplitudeMax, v)
			}
		}
		s.HasAmplitudes = !math.IsInf(s.AmplitudeMin, 1)
	}
	return s, nil
}

// WriteTo prints the summary in a human-readable layout.
func (s *Summary) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "File:            %s (%d bytes)\n", s.Path, s.Size)
	fmt.Fprintf(&b, "Revision:        %s\n", s.Revision)
	fmt.Fprintf(&b, "Format:          %s, %s\n", s.Format, s.ByteOrder)
	fmt.Fprintf(&b, "Textual header:  %s, %d extended\n", s.TextEncoding, s.Extended)
	fmt.Fprintf(&b, "Line number:     %d\n", s.LineNumber)
	fmt.Fprintf(&b, "Units:           %s\n", s.Units)
	fmt.Fprintf(&b, "Traces:          %d\n", s.Traces)
	fmt.Fprintf(&b, "Samples:         %d @ %dus\n", s.Samples, s.SampleInterval)
	fmt.Fprintf(&b, "Scalar range:    %d .. %d (%s)\n", s.ScalerMin, s.ScalerMax, describeCoefficient(s.Coefficient))
	for _, e := range s.Extents {
		fmt.Fprintf(&b, "%-16s %.2f %.2f .. %.2f %.2f\n", e.Role.String()+":",
			e.Bounds.MinX, e.Bounds.MinY, e.Bounds.MaxX, e.Bounds.MaxY)
	}
	if s.HasAmplitudes {
		fmt.Fprintf(&b, "Amplitudes:      %g .. %g\n", s.AmplitudeMin, s.AmplitudeMax)
	}
	for _, line := range s.TextHeader {
		if line != "" {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
