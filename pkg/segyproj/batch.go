package segyproj

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/viant/afs"
)

// segyExt matches the extensions picked up in directory mode.
var segyExt = regexp.MustCompile(`(?i)\.se?gy$`)

// Job is one input file and the path its rewritten copy goes to.
type Job struct {
	Input  string
	Output string
}

// OutputPath returns input with suffix inserted before its extension:
// "line_01.sgy" with suffix "_reproj" becomes "line_01_reproj.sgy".
func OutputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}

// ResolveJobs expands a file or directory argument into jobs.
//
// For a single file the output is output when given, otherwise the input
// with suffix before the extension; one of the two is required. For a
// directory every file ending in .sgy or .segy (any case) becomes a
// job named with suffix, in name order; suffix is required and output is
// rejected.
func ResolveJobs(ctx context.Context, input, output, suffix string) ([]Job, error) {
	info, err := os.Stat(input)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newError(KindInvalidArgument, input, errors.New("input is not a file or directory"))
		}
		return nil, newError(KindFileRead, input, err)
	}

	switch {
	case info.Mode().IsRegular():
		switch {
		case output != "":
			return []Job{{Input: input, Output: output}}, nil
		case suffix != "":
			return []Job{{Input: input, Output: OutputPath(input, suffix)}}, nil
		default:
			return nil, newError(KindInvalidArgument, input, errors.New("an output path or a suffix is required"))
		}

	case info.IsDir():
		if output != "" {
			return nil, newError(KindInvalidArgument, input, errors.New("output path is only valid for a single input file; use a suffix"))
		}
		if suffix == "" {
			return nil, newError(KindInvalidArgument, input, errors.New("a suffix is required when the input is a directory"))
		}
		return listDirectory(ctx, input, suffix)

	default:
		return nil, newError(KindInvalidArgument, input, errors.New("input is not a file or directory"))
	}
}

// ListSEGY returns the files of dir ending in .sgy or .segy (any case),
// sorted by name. Subdirectories are not searched.
func ListSEGY(ctx context.Context, dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, newError(KindFileRead, dir, err)
	}
	fs := afs.New()
	objects, err := fs.List(ctx, abs)
	if err != nil {
		return nil, newError(KindFileRead, dir, fmt.Errorf("list directory: %w", err))
	}

	var names []string
	for _, obj := range objects {
		// The listing includes the directory itself.
		if obj.IsDir() {
			continue
		}
		if segyExt.MatchString(obj.Name()) {
			names = append(names, obj.Name())
		}
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

func listDirectory(ctx context.Context, dir, suffix string) ([]Job, error) {
	paths, err := ListSEGY(ctx, dir)
	if err != nil {
		return nil, err
	}
	jobs := make([]Job, 0, len(paths))
	for _, in := range paths {
		// Outputs of an earlier run are not inputs.
		stem := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		if strings.HasSuffix(stem, suffix) {
			continue
		}
		jobs = append(jobs, Job{Input: in, Output: OutputPath(in, suffix)})
	}
	return jobs, nil
}

// Outcome is the result of one job.
type Outcome struct {
	Job    Job
	Result *Result
	Err    error
}

// OK reports whether the job succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// String returns the status line printed for the job.
func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("FAILED %s: %v", o.Job.Input, o.Err)
	}
	return fmt.Sprintf("OK %s -> %s (%d traces)", o.Job.Input, o.Job.Output, o.Result.Traces)
}

// Reporter receives each outcome as soon as its job finishes.
type Reporter func(Outcome)

// Report collects the outcomes of a batch, in job order.
type Report struct {
	Outcomes []Outcome
}

// Failed returns the number of failed jobs.
func (r Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.OK() {
			n++
		}
	}
	return n
}

// Succeeded returns the number of successful jobs.
func (r Report) Succeeded() int {
	return len(r.Outcomes) - r.Failed()
}

// RunBatch processes jobs one after another with rw.
//
// A failing job is recorded and the batch moves on. Cancelling ctx stops
// the batch; jobs not started are reported with the context error.
func RunBatch(ctx context.Context, rw *Rewriter, jobs []Job, opts Options, reporter Reporter) Report {
	report := Report{Outcomes: make([]Outcome, 0, len(jobs))}
	for _, job := range jobs {
		var outcome Outcome
		if err := ctx.Err(); err != nil {
			outcome = Outcome{Job: job, Err: err}
		} else {
			result, err := rw.ReprojectFile(ctx, job.Input, job.Output, opts)
			outcome = Outcome{Job: job, Result: result, Err: err}
		}
		if outcome.Err != nil {
			rw.logger.Warn("file failed", "input", job.Input, "kind", KindOf(outcome.Err), "error", outcome.Err)
		}
		report.Outcomes = append(report.Outcomes, outcome)
		if reporter != nil {
			reporter(outcome)
		}
	}
	return report
}
