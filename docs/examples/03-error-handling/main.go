package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/beetlebugorg/segyproj/pkg/projection"
	"github.com/beetlebugorg/segyproj/pkg/segyproj"
)

func reproject(rw *segyproj.Rewriter, in, out string, opts segyproj.Options) {
	res, err := rw.ReprojectFile(context.Background(), in, out, opts)
	switch {
	case err == nil:
		fmt.Printf("%s: %d traces written to %s\n", in, res.Traces, out)
	case errors.Is(err, segyproj.ErrFileRead):
		log.Printf("Cannot read %s: %v", in, err)
	case errors.Is(err, segyproj.ErrProjection):
		log.Printf("Check the EPSG codes %d and %d: %v", opts.SourceSRS, opts.TargetSRS, err)
	case errors.Is(err, segyproj.ErrWrite):
		// Existing outputs are never overwritten
		log.Printf("Cannot write %s: %v", out, err)
	default:
		log.Printf("Error (%s): %v", segyproj.KindOf(err), err)
	}
}

func main() {
	rw := segyproj.NewRewriter(projection.New(nil))
	opts := segyproj.DefaultOptions()

	// Try to reproject a missing file
	reproject(rw, "NONEXISTENT.sgy", "out.sgy", opts)

	// Try an unknown EPSG code
	bad := opts
	bad.TargetSRS = 99999
	reproject(rw, "line_01.sgy", "line_01_bad.sgy", bad)

	// Succeed, then collide with our own output
	reproject(rw, "line_01.sgy", "line_01_utm30.sgy", opts)
	reproject(rw, "line_01.sgy", "line_01_utm30.sgy", opts)
}
