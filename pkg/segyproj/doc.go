// Package segyproj reprojects the trace coordinates of SEGY seismic files.
//
// Coordinates are read from one role of the 240-byte trace headers (source,
// receiver group or CDP position), scaled by the coordinate scalar at bytes
// 71-72, transformed between two EPSG coordinate reference systems, scaled
// back and written into the fields of a target role of a new file. Sample
// data and the file headers are copied untouched.
//
// Example:
//
//	// pkg/projection provides a Transformer backed by PROJ.
//	rw := segyproj.NewRewriter(projection.New(nil))
//	opts := segyproj.DefaultOptions() // 23029 Source -> 23030 CDP
//	res, err := rw.ReprojectFile(ctx, "line.sgy", "line_utm30.sgy", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Traces, res.TargetBounds)
//
// Errors are *Error values classified by Kind; test them with errors.Is
// against ErrFileRead, ErrCoordinateRole, ErrProjection, ErrWrite and
// ErrInvalidArgument.
package segyproj
