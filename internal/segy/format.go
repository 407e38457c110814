package segy

import (
	"encoding/binary"
	"math"
)

// SampleFormat is the data sample format code from the binary file header.
type SampleFormat int16

// Sample format codes (SEGY rev1 Table 3, with the rev2 additions).
const (
	FormatIBMFloat32  SampleFormat = 1
	FormatInt32       SampleFormat = 2
	FormatInt16       SampleFormat = 3
	FormatFixedGain32 SampleFormat = 4
	FormatIEEEFloat32 SampleFormat = 5
	FormatIEEEFloat64 SampleFormat = 6
	FormatInt24       SampleFormat = 7
	FormatInt8        SampleFormat = 8
	FormatInt64       SampleFormat = 9
	FormatUint32      SampleFormat = 10
	FormatUint16      SampleFormat = 11
	FormatUint64      SampleFormat = 12
	FormatUint24      SampleFormat = 15
	FormatUint8       SampleFormat = 16
)

var formatSizes = map[SampleFormat]int{
	FormatIBMFloat32:  4,
	FormatInt32:       4,
	FormatInt16:       2,
	FormatFixedGain32: 4,
	FormatIEEEFloat32: 4,
	FormatIEEEFloat64: 8,
	FormatInt24:       3,
	FormatInt8:        1,
	FormatInt64:       8,
	FormatUint32:      4,
	FormatUint16:      2,
	FormatUint64:      8,
	FormatUint24:      3,
	FormatUint8:       1,
}

func (f SampleFormat) known() bool {
	_, ok := formatSizes[f]
	return ok
}

// Size returns the number of bytes per sample.
func (f SampleFormat) Size() (int, error) {
	n, ok := formatSizes[f]
	if !ok {
		return 0, &ErrUnsupportedFormat{Code: int(f)}
	}
	return n, nil
}

func (f SampleFormat) String() string {
	switch f {
	case FormatIBMFloat32:
		return "4-byte IBM floating-point"
	case FormatInt32:
		return "4-byte two's complement integer"
	case FormatInt16:
		return "2-byte two's complement integer"
	case FormatFixedGain32:
		return "4-byte fixed-point with gain"
	case FormatIEEEFloat32:
		return "4-byte IEEE floating-point"
	case FormatIEEEFloat64:
		return "8-byte IEEE floating-point"
	case FormatInt24:
		return "3-byte two's complement integer"
	case FormatInt8:
		return "1-byte two's complement integer"
	case FormatInt64:
		return "8-byte two's complement integer"
	case FormatUint32:
		return "4-byte unsigned integer"
	case FormatUint16:
		return "2-byte unsigned integer"
	case FormatUint64:
		return "8-byte unsigned integer"
	case FormatUint24:
		return "3-byte unsigned integer"
	case FormatUint8:
		return "1-byte unsigned integer"
	default:
		return "unknown"
	}
}

// Decode converts raw trace data into sample values.
func (f SampleFormat) Decode(data []byte, order binary.ByteOrder) ([]float64, error) {
	size, err := f.Size()
	if err != nil {
		return nil, err
	}
	if f == FormatFixedGain32 {
		return nil, &ErrUnsupportedFormat{Code: int(f), Reason: "fixed-point with gain is obsolete"}
	}
	n := len(data) / size
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		b := data[i*size : (i+1)*size]
		switch f {
		case FormatIBMFloat32:
			out[i] = ibmToFloat64(order.Uint32(b))
		case FormatInt32:
			out[i] = float64(int32(order.Uint32(b)))
		case FormatInt16:
			out[i] = float64(int16(order.Uint16(b)))
		case FormatIEEEFloat32:
			out[i] = float64(math.Float32frombits(order.Uint32(b)))
		case FormatIEEEFloat64:
			out[i] = math.Float64frombits(order.Uint64(b))
		case FormatInt24:
			out[i] = float64(signExtend24(uint24(b, order)))
		case FormatInt8:
			out[i] = float64(int8(b[0]))
		case FormatInt64:
			out[i] = float64(int64(order.Uint64(b)))
		case FormatUint32:
			out[i] = float64(order.Uint32(b))
		case FormatUint16:
			out[i] = float64(order.Uint16(b))
		case FormatUint64:
			out[i] = float64(order.Uint64(b))
		case FormatUint24:
			out[i] = float64(uint24(b, order))
		case FormatUint8:
			out[i] = float64(b[0])
		}
	}
	return out, nil
}

func uint24(b []byte, order binary.ByteOrder) uint32 {
	if order == binary.LittleEndian {
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func signExtend24(v uint32) int32 {
	if v&0x800000 != 0 {
		return int32(v | 0xff000000)
	}
	return int32(v)
}

// ibmToFloat64 converts a System/360 single precision float.
//
// Layout: 1 sign bit, 7-bit base-16 exponent biased by 64, 24-bit fraction.
func ibmToFloat64(bits uint32) float64 {
	fraction := bits & 0x00ffffff
	if fraction == 0 {
		return 0
	}
	exponent := int((bits>>24)&0x7f) - 64
	v := float64(fraction) / (1 << 24) * math.Pow(16, float64(exponent))
	if bits&0x80000000 != 0 {
		return -v
	}
	return v
}

// float64ToIBM converts v to the nearest representable System/360 single precision float.
func float64ToIBM(v float64) uint32 {
	if v == 0 || math.IsNaN(v) {
		return 0
	}
	var sign uint32
	if v < 0 {
		sign = 0x80000000
		v = -v
	}
	exponent := 64
	for v >= 1 {
		v /= 16
		exponent++
	}
	for v < 1.0/16 {
		v *= 16
		exponent--
	}
	if exponent > 127 {
		return sign | 0x7fffffff
	}
	if exponent < 0 {
		return 0
	}
	fraction := uint32(math.Round(v * (1 << 24)))
	if fraction >= 1<<24 {
		fraction >>= 4
		exponent++
	}
	return sign | uint32(exponent)<<24 | fraction
}

// EncodeSamples converts sample values into raw trace data for formats 1, 3 and 5.
func (f SampleFormat) EncodeSamples(values []float64, order binary.ByteOrder) ([]byte, error) {
	size, err := f.Size()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(values)*size)
	for i, v := range values {
		b := out[i*size : (i+1)*size]
		switch f {
		case FormatIBMFloat32:
			order.PutUint32(b, float64ToIBM(v))
		case FormatInt16:
			order.PutUint16(b, uint16(int16(v)))
		case FormatIEEEFloat32:
			order.PutUint32(b, math.Float32bits(float32(v)))
		default:
			return nil, &ErrUnsupportedFormat{Code: int(f), Reason: "encoding not implemented"}
		}
	}
	return out, nil
}
