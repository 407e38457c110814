package segyproj

import (
	"fmt"
	"strings"

	"github.com/beetlebugorg/segyproj/internal/segy"
)

// CoordinateRole names the position a pair of trace header coordinates describes.
type CoordinateRole int

const (
	// RoleSource is the source position (bytes 73-80).
	RoleSource CoordinateRole = iota + 1
	// RoleGroup is the receiver group position (bytes 81-88).
	RoleGroup
	// RoleCDP is the ensemble (CDP) position (bytes 181-188).
	RoleCDP
)

// Roles lists every coordinate role.
var Roles = []CoordinateRole{RoleSource, RoleGroup, RoleCDP}

func (r CoordinateRole) String() string {
	switch r {
	case RoleSource:
		return "Source"
	case RoleGroup:
		return "Group"
	case RoleCDP:
		return "CDP"
	default:
		return fmt.Sprintf("CoordinateRole(%d)", int(r))
	}
}

// fields returns the X and Y trace header fields of the role.
func (r CoordinateRole) fields() (x, y segy.Field, err error) {
	switch r {
	case RoleSource:
		return segy.FieldSourceX, segy.FieldSourceY, nil
	case RoleGroup:
		return segy.FieldGroupX, segy.FieldGroupY, nil
	case RoleCDP:
		return segy.FieldCDPX, segy.FieldCDPY, nil
	default:
		return segy.Field{}, segy.Field{}, newError(KindCoordinateRole, "",
			fmt.Errorf("%w: %v", ErrUnknownCoordinateRole, r))
	}
}

// FieldNames returns the trace header field names of the role's X and Y coordinates.
func (r CoordinateRole) FieldNames() (x, y string, err error) {
	fx, fy, err := r.fields()
	if err != nil {
		return "", "", err
	}
	return fx.Name(), fy.Name(), nil
}

// ParseRole parses a role name, case-insensitively: "source", "group", "cdp"
// or its synonym "ensemble".
func ParseRole(s string) (CoordinateRole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "source":
		return RoleSource, nil
	case "group":
		return RoleGroup, nil
	case "cdp", "ensemble":
		return RoleCDP, nil
	default:
		return 0, newError(KindCoordinateRole, "", fmt.Errorf("%w: %q (want Source, Group or CDP)", ErrUnknownCoordinateRole, s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r CoordinateRole) MarshalText() ([]byte, error) {
	if _, _, err := r.fields(); err != nil {
		return nil, err
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *CoordinateRole) UnmarshalText(text []byte) error {
	v, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
