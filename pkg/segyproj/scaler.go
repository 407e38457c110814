package segyproj

// Direction selects whether a coefficient converts header integers to
// physical coordinates or back.
type Direction int

const (
	// ToPhysical converts raw header integers to coordinates (reading).
	ToPhysical Direction = iota
	// ToRaw converts coordinates to raw header integers (writing).
	ToRaw
)

// Coefficient is a multiplicative scale for trace coordinates.
//
// It is either uniform, one value broadcast to every trace, or per-trace
// with one value per trace in file order.
type Coefficient struct {
	uniform  float64
	perTrace []float64
}

// UniformCoefficient returns a coefficient applying v to every trace.
func UniformCoefficient(v float64) Coefficient {
	return Coefficient{uniform: v}
}

// PerTraceCoefficient returns a coefficient with one value per trace.
func PerTraceCoefficient(values []float64) Coefficient {
	if values == nil {
		values = []float64{}
	}
	return Coefficient{perTrace: values}
}

// Uniform returns the broadcast value and true when the coefficient is uniform.
func (c Coefficient) Uniform() (float64, bool) {
	if c.perTrace != nil {
		return 0, false
	}
	return c.uniform, true
}

// Len returns the number of per-trace values, or 0 for a uniform coefficient.
func (c Coefficient) Len() int { return len(c.perTrace) }

// At returns the coefficient of trace i.
func (c Coefficient) At(i int) float64 {
	if c.perTrace != nil {
		return c.perTrace[i]
	}
	return c.uniform
}

// Inverse returns the coefficient that undoes c.
func (c Coefficient) Inverse() Coefficient {
	if c.perTrace == nil {
		return Coefficient{uniform: 1 / c.uniform}
	}
	inv := make([]float64, len(c.perTrace))
	for i, v := range c.perTrace {
		inv[i] = 1 / v
	}
	return Coefficient{perTrace: inv}
}

// ConvertScalerValue converts one SEGY coordinate scalar (trace header
// bytes 71-72) into a multiplicative coefficient.
//
// Per the SEGY standard a negative scalar is a divisor and a positive one a
// multiplier: -100 means the header stores centimetres, so reading multiplies
// by 0.01. Zero means no scaling, as many files leave the field unset.
func ConvertScalerValue(s int16, dir Direction) float64 {
	var v float64
	switch {
	case s == 0:
		v = 1
	case s < 0:
		v = 1 / float64(-int32(s))
	default:
		v = float64(s)
	}
	if dir == ToRaw {
		return 1 / v
	}
	return v
}

// ConvertScaler converts the per-trace coordinate scalars of a file.
//
// The decision is taken once for the whole file, assuming a single scalar
// applies to every trace: if any scalar is zero the result is the uniform
// coefficient 1; otherwise if any scalar is negative every trace gets
// 1/|s|, positive ones included; otherwise every trace gets |s|. Files with
// mixed scalars are therefore scaled as a unit. Use ConvertScalerStrict to
// branch per trace instead.
func ConvertScaler(scalers []int16, dir Direction) Coefficient {
	anyZero, anyNegative := false, false
	for _, s := range scalers {
		if s == 0 {
			anyZero = true
		}
		if s < 0 {
			anyNegative = true
		}
	}

	if anyZero {
		return UniformCoefficient(1)
	}

	values := make([]float64, len(scalers))
	for i, s := range scalers {
		abs := float64(s)
		if abs < 0 {
			abs = -abs
		}
		if anyNegative {
			values[i] = 1 / abs
		} else {
			values[i] = abs
		}
		if dir == ToRaw {
			values[i] = 1 / values[i]
		}
	}
	return PerTraceCoefficient(values)
}

// ConvertScalerStrict converts each trace's scalar independently with ConvertScalerValue.
func ConvertScalerStrict(scalers []int16, dir Direction) Coefficient {
	values := make([]float64, len(scalers))
	for i, s := range scalers {
		values[i] = ConvertScalerValue(s, dir)
	}
	return PerTraceCoefficient(values)
}
