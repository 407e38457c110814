package segy

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// TraceHeaderSize is the size of a standard SEGY trace header in bytes.
const TraceHeaderSize = 240

// Field identifies one entry of the 240-byte trace header.
//
// Fields can only be obtained from the predefined table below or through
// FieldByName, so an unknown name is rejected before any header is touched.
// Offsets are zero-based; the SEGY standard numbers bytes from 1.
type Field struct {
	name     string
	offset   int
	size     int // 2 or 4
	unsigned bool
}

// Name returns the field name as used in trace header dumps.
func (f Field) Name() string { return f.name }

// Offset returns the zero-based byte offset inside the trace header.
func (f Field) Offset() int { return f.offset }

// Size returns the field width in bytes.
func (f Field) Size() int { return f.size }

func (f Field) String() string {
	return fmt.Sprintf("%s (bytes %d-%d)", f.name, f.offset+1, f.offset+f.size)
}

// valid reports whether f came from the field table.
func (f Field) valid() bool {
	return f.size == 2 || f.size == 4
}

// Range returns the inclusive range of values the field can hold.
func (f Field) Range() (min, max int64) {
	switch {
	case f.size == 2 && f.unsigned:
		return 0, math.MaxUint16
	case f.size == 2:
		return math.MinInt16, math.MaxInt16
	default:
		return math.MinInt32, math.MaxInt32
	}
}

// Trace header fields (SEGY rev1, Table 2).
var (
	FieldTraceSequenceLine      = Field{name: "trace_sequence_number_within_line", offset: 0, size: 4}
	FieldTraceSequenceFile      = Field{name: "trace_sequence_number_within_segy_file", offset: 4, size: 4}
	FieldOriginalFieldRecord    = Field{name: "original_field_record_number", offset: 8, size: 4}
	FieldTraceNumberInRecord    = Field{name: "trace_number_within_the_original_field_record", offset: 12, size: 4}
	FieldEnergySourcePoint      = Field{name: "energy_source_point_number", offset: 16, size: 4}
	FieldEnsembleNumber         = Field{name: "ensemble_number", offset: 20, size: 4}
	FieldTraceNumberInEnsemble  = Field{name: "trace_number_within_the_ensemble", offset: 24, size: 4}
	FieldTraceIdentification    = Field{name: "trace_identification_code", offset: 28, size: 2}
	FieldReceiverElevation      = Field{name: "receiver_group_elevation", offset: 40, size: 4}
	FieldSourceSurfaceElevation = Field{name: "surface_elevation_at_source", offset: 44, size: 4}
	FieldElevationScalar        = Field{name: "scalar_to_be_applied_to_all_elevations_and_depths", offset: 68, size: 2}
	FieldCoordinateScalar       = Field{name: "scalar_to_be_applied_to_all_coordinates", offset: 70, size: 2}
	FieldSourceX                = Field{name: "source_coordinate_x", offset: 72, size: 4}
	FieldSourceY                = Field{name: "source_coordinate_y", offset: 76, size: 4}
	FieldGroupX                 = Field{name: "group_coordinate_x", offset: 80, size: 4}
	FieldGroupY                 = Field{name: "group_coordinate_y", offset: 84, size: 4}
	FieldCoordinateUnits        = Field{name: "coordinate_units", offset: 88, size: 2}
	FieldLagTimeA               = Field{name: "lag_time_A", offset: 104, size: 2}
	FieldLagTimeB               = Field{name: "lag_time_B", offset: 106, size: 2}
	FieldDelayRecordingTime     = Field{name: "delay_recording_time", offset: 108, size: 2}
	FieldSampleCount            = Field{name: "number_of_samples_in_this_trace", offset: 114, size: 2, unsigned: true}
	FieldSampleInterval         = Field{name: "sample_interval_in_ms_for_this_trace", offset: 116, size: 2, unsigned: true}
	FieldCDPX                   = Field{name: "x_coordinate_of_ensemble_position_of_this_trace", offset: 180, size: 4}
	FieldCDPY                   = Field{name: "y_coordinate_of_ensemble_position_of_this_trace", offset: 184, size: 4}
	FieldInline                 = Field{name: "for_3d_poststack_data_this_field_is_for_in_line_number", offset: 188, size: 4}
	FieldCrossline              = Field{name: "for_3d_poststack_data_this_field_is_for_cross_line_number", offset: 192, size: 4}
	FieldShotpoint              = Field{name: "shotpoint_number", offset: 196, size: 4}
	FieldShotpointScalar        = Field{name: "scalar_to_be_applied_to_the_shotpoint_number", offset: 200, size: 2}
)

// Fields lists every known trace header field in header order.
var Fields = []Field{
	FieldTraceSequenceLine,
	FieldTraceSequenceFile,
	FieldOriginalFieldRecord,
	FieldTraceNumberInRecord,
	FieldEnergySourcePoint,
	FieldEnsembleNumber,
	FieldTraceNumberInEnsemble,
	FieldTraceIdentification,
	FieldReceiverElevation,
	FieldSourceSurfaceElevation,
	FieldElevationScalar,
	FieldCoordinateScalar,
	FieldSourceX,
	FieldSourceY,
	FieldGroupX,
	FieldGroupY,
	FieldCoordinateUnits,
	FieldLagTimeA,
	FieldLagTimeB,
	FieldDelayRecordingTime,
	FieldSampleCount,
	FieldSampleInterval,
	FieldCDPX,
	FieldCDPY,
	FieldInline,
	FieldCrossline,
	FieldShotpoint,
	FieldShotpointScalar,
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, len(Fields))
	for _, f := range Fields {
		m[strings.ToLower(f.name)] = f
	}
	return m
}()

// FieldByName looks up a trace header field by its name (case-insensitive).
func FieldByName(name string) (Field, error) {
	f, ok := fieldsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Field{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// TraceHeader is the raw 240-byte header of one trace.
type TraceHeader struct {
	raw   [TraceHeaderSize]byte
	order binary.ByteOrder
}

// NewTraceHeader wraps raw header bytes read with the given byte order.
func NewTraceHeader(raw []byte, order binary.ByteOrder) TraceHeader {
	var h TraceHeader
	copy(h.raw[:], raw)
	h.order = order
	return h
}

// Bytes returns a copy of the raw header.
func (h TraceHeader) Bytes() []byte {
	b := make([]byte, TraceHeaderSize)
	copy(b, h.raw[:])
	return b
}

// Get returns the value of a header field, sign-extended where the field is signed.
func (h TraceHeader) Get(f Field) int64 {
	b := h.raw[f.offset : f.offset+f.size]
	switch {
	case f.size == 2 && f.unsigned:
		return int64(h.byteOrder().Uint16(b))
	case f.size == 2:
		return int64(int16(h.byteOrder().Uint16(b)))
	default:
		return int64(int32(h.byteOrder().Uint32(b)))
	}
}

// Set stores v in a header field. Values outside the field range are rejected.
func (h *TraceHeader) Set(f Field, v int64) error {
	if !f.valid() {
		return ErrUnknownField
	}
	if min, max := f.Range(); v < min || v > max {
		return &ErrFieldOverflow{Field: f, Value: v}
	}
	b := h.raw[f.offset : f.offset+f.size]
	if f.size == 2 {
		h.byteOrder().PutUint16(b, uint16(v))
	} else {
		h.byteOrder().PutUint32(b, uint32(v))
	}
	return nil
}

func (h TraceHeader) byteOrder() binary.ByteOrder {
	if h.order == nil {
		return binary.BigEndian
	}
	return h.order
}
