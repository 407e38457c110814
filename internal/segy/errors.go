package segy

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated indicates the file ends inside a header or a trace.
	ErrTruncated = errors.New("segy: file truncated")

	// ErrUnknownField indicates a header field name outside the trace header table.
	ErrUnknownField = errors.New("segy: unknown trace header field")

	// ErrTraceCountMismatch indicates a header plan column does not cover every trace.
	ErrTraceCountMismatch = errors.New("segy: trace count mismatch")

	// ErrOutputExists indicates the destination path is already taken.
	ErrOutputExists = errors.New("segy: output file already exists")

	// ErrSameFile indicates source and destination refer to the same file.
	ErrSameFile = errors.New("segy: output would overwrite input")
)

// ErrUnsupportedFormat indicates a data sample format code this package cannot size or decode.
type ErrUnsupportedFormat struct {
	Code   int
	Reason string
}

func (e *ErrUnsupportedFormat) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("segy: unsupported sample format %d: %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("segy: unsupported sample format %d", e.Code)
}

// ErrFieldOverflow indicates a value does not fit the byte width of a header field.
type ErrFieldOverflow struct {
	Field Field
	Value int64
}

func (e *ErrFieldOverflow) Error() string {
	return fmt.Sprintf("segy: value %d does not fit %d-byte field %s",
		e.Value, e.Field.size, e.Field.name)
}

// ErrInvalidTrace indicates a trace whose header cannot be used to locate its data.
type ErrInvalidTrace struct {
	Index  int
	Reason string
}

func (e *ErrInvalidTrace) Error() string {
	return fmt.Sprintf("segy: trace %d: %s", e.Index, e.Reason)
}
