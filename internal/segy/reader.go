package segy

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// OpenOptions configures how a SEGY file is read.
type OpenOptions struct {
	// HeadersOnly skips sample data: trace headers are read and data blocks
	// are only sized, never loaded.
	HeadersOnly bool

	// ByteOrder forces the byte order. When nil it is detected from the
	// binary header format code.
	ByteOrder binary.ByteOrder
}

// Trace is one trace of a SEGY file.
type Trace struct {
	Header TraceHeader

	// Offset is the position of the trace header in the file.
	Offset int64

	// DataSize is the size in bytes of the sample block following the header.
	DataSize int64

	// Samples holds the decoded data; nil when the file was opened headers-only.
	Samples []float64
}

// File is an in-memory view of a SEGY file's headers and, optionally, its data.
//
// A File holds no open file descriptor: Open reads what it needs and closes
// the underlying file before returning. Writers reopen Path to stream data.
type File struct {
	Path     string
	Text     TextHeader
	Extended []TextHeader
	Binary   BinaryHeader
	Order    binary.ByteOrder
	Traces   []Trace

	headersOnly bool
	size        int64
}

// HeadersOnly reports whether sample data was skipped.
func (f *File) HeadersOnly() bool { return f.headersOnly }

// Size returns the file size in bytes at the time it was read.
func (f *File) Size() int64 { return f.size }

// TraceCount returns the number of traces.
func (f *File) TraceCount() int { return len(f.Traces) }

// DataOffset returns the position of the first trace header.
func (f *File) DataOffset() int64 {
	return int64(TextHeaderSize + BinaryHeaderSize + len(f.Extended)*TextHeaderSize)
}

// Column returns the value of a header field for every trace, in file order.
func (f *File) Column(field Field) []int64 {
	values := make([]int64, len(f.Traces))
	for i := range f.Traces {
		values[i] = f.Traces[i].Header.Get(field)
	}
	return values
}

// Open reads a SEGY file.
func Open(path string, opts OpenOptions) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	f, err := read(fh, info.Size(), opts)
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// read parses the file structure from r, which holds size bytes.
func read(r io.ReaderAt, size int64, opts OpenOptions) (*File, error) {
	head := make([]byte, TextHeaderSize+BinaryHeaderSize)
	if err := readFull(r, head, 0); err != nil {
		return nil, fmt.Errorf("file headers: %w", err)
	}

	order := opts.ByteOrder
	if order == nil {
		var err error
		order, err = detectByteOrder(head[TextHeaderSize:])
		if err != nil {
			return nil, err
		}
	}

	f := &File{
		Text:        NewTextHeader(head[:TextHeaderSize]),
		Binary:      NewBinaryHeader(head[TextHeaderSize:], order),
		Order:       order,
		headersOnly: opts.HeadersOnly,
		size:        size,
	}

	format := f.Binary.FormatCode()
	sampleSize, err := format.Size()
	if err != nil {
		return nil, err
	}

	// Extended textual headers (rev1). A variable count (-1) relies on an
	// end stanza this reader does not scan for.
	extended := f.Binary.ExtendedTextHeaders()
	if extended < 0 {
		return nil, fmt.Errorf("variable number of extended textual headers (%d) is not supported", extended)
	}
	pos := int64(len(head))
	for i := 0; i < extended; i++ {
		buf := make([]byte, TextHeaderSize)
		if err := readFull(r, buf, pos); err != nil {
			return nil, fmt.Errorf("extended textual header %d: %w", i+1, err)
		}
		f.Extended = append(f.Extended, NewTextHeader(buf))
		pos += TextHeaderSize
	}

	fixed := f.Binary.FixedLengthTraces()
	raw := make([]byte, TraceHeaderSize)
	for pos < size {
		index := len(f.Traces)
		if err := readFull(r, raw, pos); err != nil {
			return nil, fmt.Errorf("trace %d header: %w", index, err)
		}
		header := NewTraceHeader(raw, order)

		samples := int64(header.Get(FieldSampleCount))
		if samples == 0 || fixed {
			samples = int64(f.Binary.SamplesPerTrace())
		}
		dataSize := samples * int64(sampleSize)
		if pos+TraceHeaderSize+dataSize > size {
			return nil, fmt.Errorf("trace %d data (%d bytes at offset %d): %w",
				index, dataSize, pos+TraceHeaderSize, ErrTruncated)
		}

		trace := Trace{Header: header, Offset: pos, DataSize: dataSize}
		if !opts.HeadersOnly {
			data := make([]byte, dataSize)
			if err := readFull(r, data, pos+TraceHeaderSize); err != nil {
				return nil, fmt.Errorf("trace %d data: %w", index, err)
			}
			trace.Samples, err = format.Decode(data, order)
			if err != nil {
				return nil, &ErrInvalidTrace{Index: index, Reason: err.Error()}
			}
		}
		f.Traces = append(f.Traces, trace)
		pos += TraceHeaderSize + dataSize
	}

	return f, nil
}

func readFull(r io.ReaderAt, buf []byte, off int64) error {
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return ErrTruncated
	}
	return err
}
