// Package projection transforms coordinates between EPSG systems with PROJ.
package projection

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/pebbe/proj/v5"

	"github.com/beetlebugorg/segyproj/internal/crs"
	"github.com/beetlebugorg/segyproj/pkg/segyproj"
)

// ErrUnknownEPSG indicates a code this package has no definition for.
var ErrUnknownEPSG = crs.ErrUnknownEPSG

// Proj is a segyproj.Transformer backed by the PROJ library.
//
// Every call creates its own PROJ context, so a Proj may be used from
// several goroutines.
type Proj struct {
	logger *slog.Logger
}

// New returns a PROJ transformer. A nil logger disables logging.
func New(logger *slog.Logger) *Proj {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Proj{logger: logger}
}

type transformed struct {
	points []segyproj.Point
	err    error
}

// Transform converts points from sourceEPSG to targetEPSG.
//
// PROJ calls cannot be interrupted; when ctx ends first Transform returns
// ctx.Err() and the pending call finishes in the background.
func (p *Proj) Transform(ctx context.Context, points []segyproj.Point, sourceEPSG, targetEPSG int) ([]segyproj.Point, error) {
	source, err := crs.Lookup(sourceEPSG)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	target, err := crs.Lookup(targetEPSG)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if source.EPSG == target.EPSG || len(points) == 0 {
		return append([]segyproj.Point{}, points...), nil
	}

	definition := crs.Pipeline(source, target)
	p.logger.Debug("projecting", "from", source, "to", target, "points", len(points), "pipeline", definition)

	done := make(chan transformed, 1)
	go func() {
		out, err := transform(definition, points)
		done <- transformed{points: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.points, r.err
	}
}

func transform(definition string, points []segyproj.Point) ([]segyproj.Point, error) {
	pctx := proj.NewContext()
	defer pctx.Close()

	pj, err := pctx.Create(definition)
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}
	defer pj.Close()

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, pt := range points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	xs, ys, _, _, err = pj.TransSlice(proj.Fwd, xs, ys, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	if len(xs) != len(points) || len(ys) != len(points) {
		return nil, fmt.Errorf("transform returned %d/%d values for %d points", len(xs), len(ys), len(points))
	}

	out := make([]segyproj.Point, len(points))
	for i := range out {
		// PROJ marks coordinates it cannot convert with HUGE_VAL.
		if math.IsInf(xs[i], 0) || math.IsInf(ys[i], 0) || math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			return nil, fmt.Errorf("point %d (%g, %g) cannot be transformed", i, points[i].X, points[i].Y)
		}
		out[i] = segyproj.Point{X: xs[i], Y: ys[i]}
	}
	return out, nil
}
