package segyproj

import (
	"fmt"
	"math"
)

// ExtractOptions configures how raw header coordinates are scaled.
type ExtractOptions struct {
	// ForceScaling ignores the scalar stored in the file and multiplies
	// raw coordinates by Scaler instead.
	ForceScaling bool

	// Scaler is the multiplicative coefficient used with ForceScaling.
	Scaler float64

	// StrictScaler converts each trace's scalar independently instead of
	// deciding once for the whole file. See ConvertScaler.
	StrictScaler bool
}

func (o ExtractOptions) validate() error {
	if o.ForceScaling && (o.Scaler == 0 || math.IsNaN(o.Scaler) || math.IsInf(o.Scaler, 0)) {
		return newError(KindInvalidArgument, "", fmt.Errorf("forced scaler must be a non-zero finite number, got %v", o.Scaler))
	}
	return nil
}

// ExtractXY reads the coordinates of a role from every trace header of a SEGY file.
//
// Only headers are read. The returned points are in file order and already
// multiplied by the returned coefficient.
func ExtractXY(path string, role CoordinateRole, opts ExtractOptions) ([]Point, Coefficient, error) {
	if _, _, err := role.fields(); err != nil {
		return nil, Coefficient{}, err
	}
	if err := opts.validate(); err != nil {
		return nil, Coefficient{}, err
	}
	f, err := Open(path, OpenOptions{HeadersOnly: true})
	if err != nil {
		return nil, Coefficient{}, err
	}
	return ExtractXYFromFile(f, role, opts)
}

// ExtractXYFromFile is ExtractXY over an already loaded file.
func ExtractXYFromFile(f *File, role CoordinateRole, opts ExtractOptions) ([]Point, Coefficient, error) {
	xs, ys, err := f.RawCoordinates(role)
	if err != nil {
		return nil, Coefficient{}, err
	}
	if err := opts.validate(); err != nil {
		return nil, Coefficient{}, err
	}

	var coef Coefficient
	switch {
	case opts.ForceScaling:
		coef = UniformCoefficient(opts.Scaler)
	case opts.StrictScaler:
		coef = ConvertScalerStrict(f.Scalers(), ToPhysical)
	default:
		coef = ConvertScaler(f.Scalers(), ToPhysical)
	}

	points := make([]Point, len(xs))
	for i := range xs {
		c := coef.At(i)
		points[i] = Point{X: float64(xs[i]) * c, Y: float64(ys[i]) * c}
	}
	return points, coef, nil
}
