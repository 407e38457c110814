package segyproj

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/beetlebugorg/segyproj/internal/segy"
)

// Result describes one reprojected file.
type Result struct {
	Input  string
	Output string
	Traces int

	// Coefficient scaled the source coordinates and, inverted, the
	// reprojected ones back into header integers.
	Coefficient Coefficient

	SourceBounds Bounds
	TargetBounds Bounds

	// Verified is true when Options.Verify was set and the output passed.
	Verified bool
	Duration time.Duration
}

// Rewriter reprojects trace coordinates of SEGY files.
//
// A Rewriter holds no per-file state and may be shared by goroutines as
// long as its Transformer is safe for concurrent use.
type Rewriter struct {
	transformer Transformer
	logger      *slog.Logger
}

// RewriterOption configures a Rewriter.
type RewriterOption func(*Rewriter)

// WithLogger sets the logger used for per-file progress. By default nothing is logged.
func WithLogger(l *slog.Logger) RewriterOption {
	return func(r *Rewriter) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRewriter returns a Rewriter using t to reproject coordinates.
func NewRewriter(t Transformer, opts ...RewriterOption) *Rewriter {
	r := &Rewriter{
		transformer: t,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReprojectFile writes a copy of input to output with the coordinates of
// opts.SourceRole reprojected from opts.SourceSRS to opts.TargetSRS and
// stored in the fields of opts.TargetRole.
//
// The input is never modified. Only the two target fields of each trace
// header differ between input and output; the textual and binary headers and
// all sample data are copied unchanged. The output is written atomically: on
// error it does not exist.
func (r *Rewriter) ReprojectFile(ctx context.Context, input, output string, opts Options) (*Result, error) {
	start := time.Now()
	if r.transformer == nil {
		return nil, newError(KindInvalidArgument, "", errors.New("no transformer configured"))
	}
	tx, ty, err := opts.TargetRole.fields()
	if err != nil {
		return nil, err
	}
	if err := segy.CheckDestination(input, output); err != nil {
		return nil, newError(KindWrite, output, err)
	}

	points, coef, err := ExtractXY(input, opts.SourceRole, opts.extract())
	if err != nil {
		return nil, err
	}
	r.logger.Debug("extracted coordinates",
		"input", input,
		"role", opts.SourceRole,
		"traces", len(points),
		"coefficient", describeCoefficient(coef))

	projected, err := r.project(ctx, points, opts)
	if err != nil {
		return nil, newError(KindProjection, input, err)
	}

	xs, ys, err := toRaw(projected, coef, opts.Rounding)
	if err != nil {
		return nil, newError(KindWrite, output, err)
	}

	// Headers are taken from a fresh read so the plan is applied to exactly
	// what is on disk now.
	src, err := segy.Open(input, segy.OpenOptions{HeadersOnly: true})
	if err != nil {
		return nil, newError(KindFileRead, input, err)
	}
	if src.TraceCount() != len(points) {
		return nil, newError(KindFileRead, input, fmt.Errorf("%w: input changed while processing (%d traces, expected %d)",
			segy.ErrTraceCountMismatch, src.TraceCount(), len(points)))
	}

	var plan segy.Plan
	plan.Set(tx, xs)
	plan.Set(ty, ys)
	if err := segy.Write(ctx, src, output, plan, segy.WriteOptions{}); err != nil {
		return nil, newError(KindWrite, output, err)
	}

	result := &Result{
		Input:        input,
		Output:       output,
		Traces:       len(points),
		Coefficient:  coef,
		SourceBounds: BoundsOf(points),
		TargetBounds: BoundsOf(projected),
	}
	if opts.Verify {
		if err := verify(src, output, plan); err != nil {
			_ = os.Remove(output)
			return nil, newError(KindWrite, output, err)
		}
		result.Verified = true
	}
	result.Duration = time.Since(start)

	r.logger.Info("reprojected",
		"input", input,
		"output", output,
		"traces", result.Traces,
		"from", opts.SourceSRS,
		"to", opts.TargetSRS,
		"verified", result.Verified,
		"duration", result.Duration)
	return result, nil
}

// project runs the transformer under the configured timeout and checks
// that it returned one finite point per input point.
func (r *Rewriter) project(ctx context.Context, points []Point, opts Options) ([]Point, error) {
	if opts.ProjectionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ProjectionTimeout)
		defer cancel()
	}
	projected, err := r.transformer.Transform(ctx, points, opts.SourceSRS, opts.TargetSRS)
	if err != nil {
		return nil, err
	}
	if len(projected) != len(points) {
		return nil, fmt.Errorf("transform returned %d points for %d inputs", len(projected), len(points))
	}
	for i, p := range projected {
		if !finite(p.X) || !finite(p.Y) {
			return nil, fmt.Errorf("transform produced a non-finite coordinate for trace %d", i)
		}
	}
	return projected, nil
}

// toRaw converts physical coordinates back into header integers by dividing
// by the coefficient they were read with.
func toRaw(points []Point, coef Coefficient, rounding Rounding) (xs, ys []int64, err error) {
	xs = make([]int64, len(points))
	ys = make([]int64, len(points))
	for i, p := range points {
		c := coef.At(i)
		if xs[i], err = rawValue(p.X/c, rounding); err != nil {
			return nil, nil, fmt.Errorf("trace %d x: %w", i, err)
		}
		if ys[i], err = rawValue(p.Y/c, rounding); err != nil {
			return nil, nil, fmt.Errorf("trace %d y: %w", i, err)
		}
	}
	return xs, ys, nil
}

func rawValue(v float64, rounding Rounding) (int64, error) {
	if rounding == RoundNearest {
		v = math.Round(v)
	} else {
		v = math.Trunc(v)
	}
	if !finite(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("value %v does not fit a 32-bit header field", v)
	}
	return int64(v), nil
}

// verify re-reads the output and compares it with the source and plan.
func verify(src *segy.File, output string, plan segy.Plan) error {
	out, err := segy.Open(output, segy.OpenOptions{HeadersOnly: true})
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if out.TraceCount() != src.TraceCount() {
		return fmt.Errorf("verify: output has %d traces, input %d", out.TraceCount(), src.TraceCount())
	}
	for _, c := range plan.Columns {
		got := out.Column(c.Field)
		for i := range got {
			if got[i] != c.Values[i] {
				return fmt.Errorf("verify: trace %d %s is %d, expected %d", i, c.Field.Name(), got[i], c.Values[i])
			}
		}
	}
	want, err := segy.Fingerprint(src)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	got, err := segy.Fingerprint(out)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if got != want {
		return fmt.Errorf("verify: sample data differs (%016x != %016x)", got, want)
	}
	return nil
}

func describeCoefficient(c Coefficient) string {
	if v, ok := c.Uniform(); ok {
		return fmt.Sprintf("uniform %g", v)
	}
	return fmt.Sprintf("per-trace (%d)", c.Len())
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
