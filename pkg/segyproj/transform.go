package segyproj

import "context"

// Transformer reprojects points between coordinate reference systems
// identified by EPSG codes.
//
// Implementations return exactly one output point per input point, in
// input order, and fail on codes they cannot resolve.
type Transformer interface {
	Transform(ctx context.Context, points []Point, sourceEPSG, targetEPSG int) ([]Point, error)
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(ctx context.Context, points []Point, sourceEPSG, targetEPSG int) ([]Point, error)

// Transform calls fn.
func (fn TransformerFunc) Transform(ctx context.Context, points []Point, sourceEPSG, targetEPSG int) ([]Point, error) {
	return fn(ctx, points, sourceEPSG, targetEPSG)
}
