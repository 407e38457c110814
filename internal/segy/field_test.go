package segy

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestFieldByName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Field
		wantErr bool
	}{
		{name: "source x", input: "source_coordinate_x", want: FieldSourceX},
		{name: "case insensitive", input: "Group_Coordinate_Y", want: FieldGroupY},
		{name: "surrounding blanks", input: "  scalar_to_be_applied_to_all_coordinates ", want: FieldCoordinateScalar},
		{name: "ensemble x", input: "x_coordinate_of_ensemble_position_of_this_trace", want: FieldCDPX},
		{name: "unknown", input: "midpoint_x", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FieldByName(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownField) {
					t.Fatalf("FieldByName(%q) error = %v, want ErrUnknownField", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FieldByName(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("FieldByName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFieldTableOffsets(t *testing.T) {
	// Byte positions from the SEGY rev1 trace header table (1-based).
	expected := map[Field]int{
		FieldCoordinateScalar: 71,
		FieldSourceX:          73,
		FieldSourceY:          77,
		FieldGroupX:           81,
		FieldGroupY:           85,
		FieldSampleCount:      115,
		FieldCDPX:             181,
		FieldCDPY:             185,
	}
	for f, pos := range expected {
		if f.Offset()+1 != pos {
			t.Errorf("%s starts at byte %d, want %d", f.Name(), f.Offset()+1, pos)
		}
	}

	for i := 1; i < len(Fields); i++ {
		prev := Fields[i-1]
		if Fields[i].Offset() < prev.Offset()+prev.Size() {
			t.Errorf("%s overlaps %s", Fields[i].Name(), prev.Name())
		}
	}
}

func TestTraceHeaderGetSet(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		h := NewTraceHeader(make([]byte, TraceHeaderSize), order)

		if err := h.Set(FieldCoordinateScalar, -100); err != nil {
			t.Fatalf("Set scalar: %v", err)
		}
		if err := h.Set(FieldSourceX, -2147483648); err != nil {
			t.Fatalf("Set source x: %v", err)
		}
		if err := h.Set(FieldCDPY, 4500200); err != nil {
			t.Fatalf("Set cdp y: %v", err)
		}
		if err := h.Set(FieldSampleCount, 60000); err != nil {
			t.Fatalf("Set sample count: %v", err)
		}

		if got := h.Get(FieldCoordinateScalar); got != -100 {
			t.Errorf("%v scalar = %d, want -100", order, got)
		}
		if got := h.Get(FieldSourceX); got != -2147483648 {
			t.Errorf("%v source x = %d, want -2147483648", order, got)
		}
		if got := h.Get(FieldCDPY); got != 4500200 {
			t.Errorf("%v cdp y = %d, want 4500200", order, got)
		}
		if got := h.Get(FieldSampleCount); got != 60000 {
			t.Errorf("%v sample count = %d, want 60000", order, got)
		}
		if got := h.Get(FieldGroupX); got != 0 {
			t.Errorf("%v untouched field = %d, want 0", order, got)
		}
	}
}

func TestTraceHeaderSetOverflow(t *testing.T) {
	h := NewTraceHeader(make([]byte, TraceHeaderSize), binary.BigEndian)

	tests := []struct {
		field Field
		value int64
	}{
		{FieldCoordinateScalar, 40000},
		{FieldCoordinateScalar, -40000},
		{FieldSourceX, 1 << 31},
		{FieldCDPY, -(1 << 31) - 1},
		{FieldSampleCount, -1},
	}
	for _, tt := range tests {
		err := h.Set(tt.field, tt.value)
		var overflow *ErrFieldOverflow
		if !errors.As(err, &overflow) {
			t.Errorf("Set(%s, %d) error = %v, want ErrFieldOverflow", tt.field.Name(), tt.value, err)
			continue
		}
		if overflow.Value != tt.value {
			t.Errorf("overflow value = %d, want %d", overflow.Value, tt.value)
		}
	}

	if err := h.Set(Field{}, 1); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Set on zero Field error = %v, want ErrUnknownField", err)
	}
}
