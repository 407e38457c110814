package segyproj

import "time"

// Rounding selects how rescaled coordinates become header integers.
type Rounding int

const (
	// RoundTruncate drops the fractional part (toward zero).
	RoundTruncate Rounding = iota
	// RoundNearest rounds half away from zero.
	RoundNearest
)

func (r Rounding) String() string {
	if r == RoundNearest {
		return "nearest"
	}
	return "truncate"
}

// Options configures the reprojection of one file.
type Options struct {
	// SourceSRS and TargetSRS are EPSG codes, e.g. 23029 for ED50 / UTM zone 29N.
	SourceSRS int
	TargetSRS int

	// SourceRole is where coordinates are read; TargetRole is where the
	// reprojected coordinates are written.
	SourceRole CoordinateRole
	TargetRole CoordinateRole

	// ForceScaling, Scaler and StrictScaler control how header integers are
	// scaled. The same coefficient is used to write the new coordinates, so
	// the output keeps the input's scalar convention.
	ForceScaling bool
	Scaler       float64
	StrictScaler bool

	// Rounding of rescaled coordinates. Default: truncation.
	Rounding Rounding

	// ProjectionTimeout bounds the transform of one file. Zero means no limit.
	ProjectionTimeout time.Duration

	// Verify re-reads the output and checks that trace count and sample
	// data match the input.
	Verify bool
}

// DefaultOptions returns options converting source positions from
// ED50 / UTM zone 29N to CDP positions in ED50 / UTM zone 30N.
func DefaultOptions() Options {
	return Options{
		SourceSRS:  23029,
		TargetSRS:  23030,
		SourceRole: RoleSource,
		TargetRole: RoleCDP,
		Scaler:     1.0,
		Rounding:   RoundTruncate,
	}
}

func (o Options) extract() ExtractOptions {
	return ExtractOptions{
		ForceScaling: o.ForceScaling,
		Scaler:       o.Scaler,
		StrictScaler: o.StrictScaler,
	}
}
