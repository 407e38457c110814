package segy

import (
	"fmt"
	"io"
	"os"

	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("segyproj-trace-data-fingerprint!")

// Fingerprint hashes the sample data of every trace, in file order.
//
// Headers are excluded, so a file and a copy with rewritten trace headers
// share a fingerprint as long as their sample blocks are identical.
func Fingerprint(f *File) (uint64, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, err
	}

	in, err := os.Open(f.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer in.Close()

	for i, trace := range f.Traces {
		data := io.NewSectionReader(in, trace.Offset+TraceHeaderSize, trace.DataSize)
		if n, err := io.Copy(hash, data); err != nil {
			return 0, fmt.Errorf("trace %d data: %w", i, err)
		} else if n != trace.DataSize {
			return 0, fmt.Errorf("trace %d data: %w", i, ErrTruncated)
		}
	}
	return hash.Sum64(), nil
}
