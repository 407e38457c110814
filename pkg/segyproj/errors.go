package segyproj

import (
	"errors"
	"fmt"
)

// Kind classifies an error by the stage of the pipeline that failed.
type Kind int

const (
	// KindFileRead: input missing, corrupt or in an unsupported layout.
	KindFileRead Kind = iota + 1
	// KindCoordinateRole: unrecognized coordinate role.
	KindCoordinateRole
	// KindProjection: unknown EPSG code or transform failure.
	KindProjection
	// KindWrite: destination not writable, already present, or values not representable.
	KindWrite
	// KindInvalidArgument: options that cannot produce a meaningful result.
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindFileRead:
		return "file read error"
	case KindCoordinateRole:
		return "coordinate role error"
	case KindProjection:
		return "projection error"
	case KindWrite:
		return "write error"
	case KindInvalidArgument:
		return "invalid argument"
	default:
		return "unknown error"
	}
}

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrFileRead        = &Error{Kind: KindFileRead}
	ErrCoordinateRole  = &Error{Kind: KindCoordinateRole}
	ErrProjection      = &Error{Kind: KindProjection}
	ErrWrite           = &Error{Kind: KindWrite}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
)

// ErrUnknownCoordinateRole indicates a role name other than Source, Group or CDP.
var ErrUnknownCoordinateRole = errors.New("unknown coordinate role")

// Error reports a failure processing one file.
type Error struct {
	Kind Kind
	Path string // file being read or written, if any
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by kind so callers can write errors.Is(err, ErrProjection).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Path == "" && t.Err == nil && t.Kind == e.Kind
}

func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
