package segyproj

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertScalerValue(t *testing.T) {
	tests := []struct {
		scaler int16
		read   float64
	}{
		{0, 1},
		{1, 1},
		{-1, 1},
		{-100, 0.01},
		{100, 100},
		{-1000, 0.001},
		{10, 10},
		{math.MinInt16, 1.0 / 32768},
		{math.MaxInt16, 32767},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.read, ConvertScalerValue(tt.scaler, ToPhysical), 1e-15, "scaler %d", tt.scaler)
	}
}

func TestConvertScalerValueInverse(t *testing.T) {
	for s := math.MinInt16; s <= math.MaxInt16; s += 7 {
		read := ConvertScalerValue(int16(s), ToPhysical)
		write := ConvertScalerValue(int16(s), ToRaw)
		assert.InDelta(t, 1.0, read*write, 1e-12, "scaler %d", s)
	}
	assert.Equal(t, 1.0, ConvertScalerValue(0, ToPhysical))
	assert.Equal(t, 1.0, ConvertScalerValue(0, ToRaw))
}

func TestConvertScalerWholeFile(t *testing.T) {
	tests := []struct {
		name    string
		scalers []int16
		dir     Direction
		uniform bool
		want    []float64
	}{
		{name: "all negative", scalers: []int16{-100, -100}, dir: ToPhysical, want: []float64{0.01, 0.01}},
		{name: "all positive", scalers: []int16{10, 100}, dir: ToPhysical, want: []float64{10, 100}},
		{name: "any zero collapses", scalers: []int16{-100, 0, 10}, dir: ToPhysical, uniform: true, want: []float64{1, 1, 1}},
		// Any negative turns every scaler into a divisor, positive ones included.
		{name: "mixed signs", scalers: []int16{-100, 10}, dir: ToPhysical, want: []float64{0.01, 0.1}},
		{name: "write direction", scalers: []int16{-100, -10}, dir: ToRaw, want: []float64{100, 10}},
		{name: "write any zero", scalers: []int16{0, 5}, dir: ToRaw, uniform: true, want: []float64{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ConvertScaler(tt.scalers, tt.dir)
			_, uniform := c.Uniform()
			assert.Equal(t, tt.uniform, uniform)
			for i, w := range tt.want {
				assert.InDelta(t, w, c.At(i), 1e-15, "trace %d", i)
			}
		})
	}
}

func TestConvertScalerStrict(t *testing.T) {
	c := ConvertScalerStrict([]int16{-100, 0, 10}, ToPhysical)
	assert.Equal(t, 3, c.Len())
	assert.InDelta(t, 0.01, c.At(0), 1e-15)
	assert.Equal(t, 1.0, c.At(1))
	assert.Equal(t, 10.0, c.At(2))
}

func TestCoefficientInverse(t *testing.T) {
	u := UniformCoefficient(0.01).Inverse()
	v, ok := u.Uniform()
	assert.True(t, ok)
	assert.InDelta(t, 100, v, 1e-12)

	p := PerTraceCoefficient([]float64{0.5, 4}).Inverse()
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 2.0, p.At(0))
	assert.Equal(t, 0.25, p.At(1))
}

func TestConvertScalerEmpty(t *testing.T) {
	c := ConvertScaler(nil, ToPhysical)
	_, uniform := c.Uniform()
	assert.False(t, uniform)
	assert.Equal(t, 0, c.Len())
}
