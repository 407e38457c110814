package segy

import (
	"encoding/binary"
	"fmt"
)

const (
	// TextHeaderSize is the size of the textual file header and of each extended textual header.
	TextHeaderSize = 3200
	// BinaryHeaderSize is the size of the binary file header.
	BinaryHeaderSize = 400
)

// BinaryHeader is the 400-byte binary file header that follows the textual header.
type BinaryHeader struct {
	raw   [BinaryHeaderSize]byte
	order binary.ByteOrder
}

// Binary header offsets relative to byte 3201 (SEGY rev1, Table 3).
const (
	binLineNumber          = 4
	binSampleInterval      = 16
	binSamplesPerTrace     = 20
	binFormatCode          = 24
	binMeasurementSystem   = 54
	binRevision            = 300
	binFixedLength         = 302
	binExtendedTextHeaders = 304
)

// NewBinaryHeader wraps raw header bytes read with the given byte order.
func NewBinaryHeader(raw []byte, order binary.ByteOrder) BinaryHeader {
	var h BinaryHeader
	copy(h.raw[:], raw)
	h.order = order
	return h
}

// Bytes returns a copy of the raw header.
func (h BinaryHeader) Bytes() []byte {
	b := make([]byte, BinaryHeaderSize)
	copy(b, h.raw[:])
	return b
}

func (h BinaryHeader) int16At(off int) int16 {
	return int16(h.order.Uint16(h.raw[off : off+2]))
}

func (h BinaryHeader) uint16At(off int) uint16 {
	return h.order.Uint16(h.raw[off : off+2])
}

func (h BinaryHeader) int32At(off int) int32 {
	return int32(h.order.Uint32(h.raw[off : off+4]))
}

// LineNumber returns the line number.
func (h BinaryHeader) LineNumber() int32 { return h.int32At(binLineNumber) }

// SampleInterval returns the sample interval in microseconds.
func (h BinaryHeader) SampleInterval() uint16 { return h.uint16At(binSampleInterval) }

// SamplesPerTrace returns the number of samples per data trace.
func (h BinaryHeader) SamplesPerTrace() uint16 { return h.uint16At(binSamplesPerTrace) }

// FormatCode returns the data sample format code.
func (h BinaryHeader) FormatCode() SampleFormat { return SampleFormat(h.int16At(binFormatCode)) }

// MeasurementSystem returns 1 for meters and 2 for feet. Other values mean unspecified.
func (h BinaryHeader) MeasurementSystem() int16 { return h.int16At(binMeasurementSystem) }

// Units names the measurement system of the header coordinates.
func (h BinaryHeader) Units() string {
	switch h.MeasurementSystem() {
	case 1:
		return "meters"
	case 2:
		return "feet"
	default:
		return "unspecified"
	}
}

// Revision returns the SEGY revision as major and minor numbers.
//
// Rev 1 files store 0x0100; rev 0 files leave the field zero.
func (h BinaryHeader) Revision() (major, minor int) {
	v := h.uint16At(binRevision)
	return int(v >> 8), int(v & 0xff)
}

// FixedLengthTraces reports whether every trace has the sample count of the binary header.
func (h BinaryHeader) FixedLengthTraces() bool { return h.int16At(binFixedLength) == 1 }

// ExtendedTextHeaders returns the number of 3200-byte extended textual headers.
// A value of -1 means a variable number terminated by an end stanza.
func (h BinaryHeader) ExtendedTextHeaders() int { return int(h.int16At(binExtendedTextHeaders)) }

// detectByteOrder picks the byte order in which the format code reads as a known format.
//
// SEGY is big-endian by definition but little-endian files are common enough
// from PC based acquisition software to warrant a fallback.
func detectByteOrder(raw []byte) (binary.ByteOrder, error) {
	code := raw[binFormatCode : binFormatCode+2]
	if SampleFormat(int16(binary.BigEndian.Uint16(code))).known() {
		return binary.BigEndian, nil
	}
	if SampleFormat(int16(binary.LittleEndian.Uint16(code))).known() {
		return binary.LittleEndian, nil
	}
	return nil, &ErrUnsupportedFormat{
		Code:   int(int16(binary.BigEndian.Uint16(code))),
		Reason: "format code is not valid in either byte order",
	}
}

// ByteOrderName returns "big-endian" or "little-endian".
func ByteOrderName(order binary.ByteOrder) string {
	if order == binary.LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

func (h BinaryHeader) String() string {
	major, minor := h.Revision()
	return fmt.Sprintf("rev %d.%d, format %s, %d samples @ %dus",
		major, minor, h.FormatCode(), h.SamplesPerTrace(), h.SampleInterval())
}
