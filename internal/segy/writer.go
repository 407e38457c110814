package segy

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Column assigns one value per trace to a trace header field.
type Column struct {
	Field  Field
	Values []int64
}

// Plan describes the header changes applied when a file is materialized.
//
// A Plan is plain data built independently from the File it will be applied
// to; nothing in the File is modified.
type Plan struct {
	Columns []Column
}

// Set adds or replaces the column for a field.
func (p *Plan) Set(field Field, values []int64) {
	for i := range p.Columns {
		if p.Columns[i].Field == field {
			p.Columns[i].Values = values
			return
		}
	}
	p.Columns = append(p.Columns, Column{Field: field, Values: values})
}

// Validate checks that every column covers exactly traces values that fit its field.
func (p Plan) Validate(traces int) error {
	for _, c := range p.Columns {
		if !c.Field.valid() {
			return ErrUnknownField
		}
		if len(c.Values) != traces {
			return fmt.Errorf("%w: column %s has %d values for %d traces",
				ErrTraceCountMismatch, c.Field.name, len(c.Values), traces)
		}
		min, max := c.Field.Range()
		for _, v := range c.Values {
			if v < min || v > max {
				return &ErrFieldOverflow{Field: c.Field, Value: v}
			}
		}
	}
	return nil
}

// apply returns trace i's header with the plan applied.
func (p Plan) apply(h TraceHeader, i int) (TraceHeader, error) {
	for _, c := range p.Columns {
		if err := h.Set(c.Field, c.Values[i]); err != nil {
			return h, err
		}
	}
	return h, nil
}

// WriteOptions configures Write.
type WriteOptions struct {
	// Perm is the permission of the created file. Default 0o644.
	Perm os.FileMode

	// BufSize is the write buffer size. Default 1MB.
	BufSize int
}

// Write materializes a copy of src at dst with plan applied to the trace headers.
//
// Sample data, the textual and binary headers are copied byte for byte from
// src.Path. The copy is written to a temporary file in dst's directory and
// renamed into place once complete, so dst either does not exist or holds
// the full output. dst must not exist and must not be src.Path.
func Write(ctx context.Context, src *File, dst string, plan Plan, opts WriteOptions) error {
	if err := plan.Validate(len(src.Traces)); err != nil {
		return err
	}
	if err := CheckDestination(src.Path, dst); err != nil {
		return err
	}
	if opts.Perm == 0 {
		opts.Perm = 0o644
	}
	if opts.BufSize <= 0 {
		opts.BufSize = 1 << 20
	}

	in, err := os.Open(src.Path)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	done := false
	defer func() {
		if !done {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()
	_ = tmp.Chmod(opts.Perm)

	bw := bufio.NewWriterSize(tmp, opts.BufSize)
	if _, err := io.Copy(bw, io.NewSectionReader(in, 0, src.DataOffset())); err != nil {
		return fmt.Errorf("copy file headers: %w", err)
	}
	for i, trace := range src.Traces {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		header, err := plan.apply(trace.Header, i)
		if err != nil {
			return fmt.Errorf("trace %d: %w", i, err)
		}
		if _, err := bw.Write(header.raw[:]); err != nil {
			return fmt.Errorf("trace %d header: %w", i, err)
		}
		data := io.NewSectionReader(in, trace.Offset+TraceHeaderSize, trace.DataSize)
		if n, err := io.Copy(bw, data); err != nil {
			return fmt.Errorf("trace %d data: %w", i, err)
		} else if n != trace.DataSize {
			return fmt.Errorf("trace %d data: %w", i, ErrTruncated)
		}
	}

	if err := bw.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	// The destination may have appeared while writing.
	if err := CheckDestination(src.Path, dst); err != nil {
		_ = os.Remove(tmpPath)
		done = true
		return err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		done = true
		return err
	}
	done = true
	_ = syncDir(filepath.Dir(dst))
	return nil
}

// CheckDestination rejects a destination that exists or resolves to the source.
func CheckDestination(src, dst string) error {
	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return err
	}
	if srcAbs == dstAbs {
		return ErrSameFile
	}
	dstInfo, err := os.Lstat(dst)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if srcInfo, err := os.Stat(src); err == nil && os.SameFile(srcInfo, dstInfo) {
		return ErrSameFile
	}
	return fmt.Errorf("%w: %s", ErrOutputExists, dst)
}

// syncDir flushes directory metadata so the rename survives a crash. Best effort.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
