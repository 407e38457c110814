// Command segy2segy reprojects the trace coordinates of SEGY files.
//
// Usage:
//
//	segy2segy [flags] <input file or directory>
//
// A single file is written to -o, or next to the input with -s appended to
// its name. A directory is processed file by file and requires -s. Existing
// files are never overwritten.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/beetlebugorg/segyproj/internal/config"
	"github.com/beetlebugorg/segyproj/pkg/projection"
	"github.com/beetlebugorg/segyproj/pkg/segyproj"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

const configEnvVar = config.EnvPrefix + "CONFIG"

// errFlags marks a flag error already reported by the flag package.
var errFlags = errors.New("invalid flags")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Environ(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// flags holds the raw command-line values. Only flags that were set on the
// command line override the configuration.
type flags struct {
	output, suffix string
	sourceSRS      int
	targetSRS      int
	sourceCoord    string
	targetCoord    string
	forceScaling   bool
	scaler         float64
	strictScaler   bool
	round          bool
	verify         bool
	timeout        time.Duration
	configPath     string
	logLevel       string
	info           bool
	near           string
}

func newFlagSet(f *flags, stderr io.Writer) *flag.FlagSet {
	d := config.Defaults()
	fs := flag.NewFlagSet("segy2segy", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.output, "o", "", "output file (single input file only)")
	fs.StringVar(&f.output, "output", "", "output file (single input file only)")
	fs.StringVar(&f.suffix, "s", "", "suffix appended to output names before the extension")
	fs.StringVar(&f.suffix, "suffix", "", "suffix appended to output names before the extension")
	fs.IntVar(&f.sourceSRS, "s_srs", d.SourceSRS, "source EPSG code")
	fs.IntVar(&f.targetSRS, "t_srs", d.TargetSRS, "target EPSG code")
	fs.StringVar(&f.sourceCoord, "s_coord", d.SourceCoord, "coordinates to read: Source, Group or CDP")
	fs.StringVar(&f.targetCoord, "t_coord", d.TargetCoord, "coordinates to write: Source, Group or CDP")
	fs.BoolVar(&f.forceScaling, "fs", false, "ignore the file's coordinate scalar and use -scaler")
	fs.BoolVar(&f.forceScaling, "force_scaling", false, "ignore the file's coordinate scalar and use -scaler")
	fs.Float64Var(&f.scaler, "sc", d.Scaler, "coefficient applied to header coordinates with -force_scaling")
	fs.Float64Var(&f.scaler, "scaler", d.Scaler, "coefficient applied to header coordinates with -force_scaling")
	fs.BoolVar(&f.strictScaler, "strict_scaler", false, "convert each trace's scalar independently")
	fs.BoolVar(&f.round, "round", false, "round rescaled coordinates to nearest instead of truncating")
	fs.BoolVar(&f.verify, "verify", false, "re-read each output and check it against its input")
	fs.DurationVar(&f.timeout, "timeout", 0, "per-file projection timeout, 0 for none")
	fs.StringVar(&f.configPath, "config", "", "YAML config file (default $"+configEnvVar+")")
	fs.StringVar(&f.logLevel, "log_level", d.Logging.Level, "log level: debug, info, warn or error")
	fs.BoolVar(&f.info, "info", false, "print a summary of each input instead of rewriting it")
	fs.StringVar(&f.near, "near", "", "with -info, report the trace nearest to x,y in -s_coord positions")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: segy2segy [flags] <input file or directory>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs parses flags and the single positional argument, which may
// appear anywhere on the command line.
func parseArgs(fs *flag.FlagSet, args []string) (string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return "", err
			}
			return "", errFlags
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
	switch len(positional) {
	case 0:
		return "", errors.New("missing input file or directory")
	case 1:
		return positional[0], nil
	default:
		return "", fmt.Errorf("expected one input, got %d: %s", len(positional), strings.Join(positional, " "))
	}
}

// resolveConfig layers defaults, the config file, the environment and the
// flags that were set explicitly.
func resolveConfig(fs *flag.FlagSet, f *flags, environ []string) (config.Config, error) {
	cfg := config.Defaults()

	path := f.configPath
	if path == "" {
		path = lookupEnv(environ, configEnvVar)
	}
	if path != "" {
		file, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = config.Merge(cfg, file)
	}

	env, err := config.EnvOverlay(environ)
	if err != nil {
		return cfg, err
	}
	cfg = config.Merge(cfg, env)

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "s", "suffix":
			cfg.Suffix = f.suffix
		case "s_srs":
			cfg.SourceSRS = f.sourceSRS
		case "t_srs":
			cfg.TargetSRS = f.targetSRS
		case "s_coord":
			cfg.SourceCoord = f.sourceCoord
		case "t_coord":
			cfg.TargetCoord = f.targetCoord
		case "fs", "force_scaling":
			cfg.ForceScaling = config.Bool(f.forceScaling)
		case "sc", "scaler":
			cfg.Scaler = f.scaler
		case "strict_scaler":
			cfg.StrictScaler = config.Bool(f.strictScaler)
		case "round":
			cfg.Rounding = "truncate"
			if f.round {
				cfg.Rounding = "nearest"
			}
		case "verify":
			cfg.Verify = config.Bool(f.verify)
		case "timeout":
			cfg.Timeout = config.Duration(f.timeout)
		case "log_level":
			cfg.Logging.Level = f.logLevel
		}
	})
	return cfg, config.Validate(cfg)
}

func lookupEnv(environ []string, key string) string {
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			return v
		}
	}
	return ""
}

func run(ctx context.Context, args, environ []string, stdout, stderr io.Writer) int {
	var f flags
	fs := newFlagSet(&f, stderr)
	input, err := parseArgs(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if errors.Is(err, errFlags) {
		return exitUsage
	}
	if err != nil {
		fmt.Fprintf(stderr, "segy2segy: %v\n", err)
		fs.Usage()
		return exitUsage
	}

	cfg, err := resolveConfig(fs, &f, environ)
	if err != nil {
		fmt.Fprintf(stderr, "segy2segy: configuration: %v\n", err)
		return exitUsage
	}
	logger, err := cfg.Logging.NewLogger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "segy2segy: %v\n", err)
		return exitUsage
	}
	opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintf(stderr, "segy2segy: configuration: %v\n", err)
		return exitUsage
	}

	if f.info {
		return runInfo(ctx, input, f.near, opts, stdout, stderr)
	}

	jobs, err := segyproj.ResolveJobs(ctx, input, f.output, cfg.Suffix)
	if err != nil {
		fmt.Fprintf(stderr, "segy2segy: %v\n", err)
		if errors.Is(err, segyproj.ErrInvalidArgument) {
			return exitUsage
		}
		return exitFailed
	}
	if len(jobs) == 0 {
		fmt.Fprintf(stderr, "segy2segy: no SEGY files in %s\n", input)
		return exitOK
	}
	logger.Debug("resolved jobs", "input", input, "jobs", len(jobs),
		"from", opts.SourceSRS, "to", opts.TargetSRS,
		"s_coord", opts.SourceRole, "t_coord", opts.TargetRole)

	rw := segyproj.NewRewriter(projection.New(logger), segyproj.WithLogger(logger))
	report := segyproj.RunBatch(ctx, rw, jobs, opts, func(o segyproj.Outcome) {
		fmt.Fprintln(stdout, o.String())
	})
	if len(jobs) > 1 {
		fmt.Fprintf(stdout, "%d succeeded, %d failed\n", report.Succeeded(), report.Failed())
	}
	if report.Failed() > 0 {
		return exitFailed
	}
	return exitOK
}

func runInfo(ctx context.Context, input, near string, opts segyproj.Options, stdout, stderr io.Writer) int {
	var x, y float64
	if near != "" {
		var err error
		if x, y, err = parsePoint(near); err != nil {
			fmt.Fprintf(stderr, "segy2segy: -near: %v\n", err)
			return exitUsage
		}
	}

	paths := []string{input}
	if st, err := os.Stat(input); err == nil && st.IsDir() {
		if paths, err = segyproj.ListSEGY(ctx, input); err != nil {
			fmt.Fprintf(stderr, "segy2segy: %v\n", err)
			return exitFailed
		}
	}

	code := exitOK
	for i, path := range paths {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		summary, err := segyproj.Describe(path, segyproj.DescribeOptions{
			IndexRole: opts.SourceRole,
			Extract: segyproj.ExtractOptions{
				ForceScaling: opts.ForceScaling,
				Scaler:       opts.Scaler,
				StrictScaler: opts.StrictScaler,
			},
		})
		if err != nil {
			fmt.Fprintf(stdout, "FAILED %s: %v\n", path, err)
			code = exitFailed
			continue
		}
		if _, err := summary.WriteTo(stdout); err != nil {
			return exitFailed
		}
		if near != "" {
			if trace, ok := summary.Index.Nearest(x, y); ok {
				p := summary.Index.Point(trace)
				fmt.Fprintf(stdout, "Nearest trace:   %d at %.2f %.2f (%s)\n", trace, p.X, p.Y, opts.SourceRole)
			}
		}
	}
	return code
}

func parsePoint(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("want x,y, got %q", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, err
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
