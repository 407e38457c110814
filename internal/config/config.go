// Package config loads segy2segy settings from YAML and the environment.
//
// Sources are layered, later ones winning: Defaults, a YAML file, SEGYPROJ_*
// environment variables, then command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/beetlebugorg/segyproj/pkg/segyproj"
)

// EnvPrefix prefixes the environment variables read by EnvOverlay.
const EnvPrefix = "SEGYPROJ_"

// Config is the resolved runtime configuration. YAML keys match the
// command-line flag names; unknown keys fail to load. Booleans are pointers
// so that an explicit false in a later layer overrides an earlier true.
type Config struct {
	SourceSRS    int      `yaml:"s_srs"`
	TargetSRS    int      `yaml:"t_srs"`
	SourceCoord  string   `yaml:"s_coord"`
	TargetCoord  string   `yaml:"t_coord"`
	ForceScaling *bool    `yaml:"force_scaling"`
	Scaler       float64  `yaml:"scaler"`
	StrictScaler *bool    `yaml:"strict_scaler"`
	Rounding     string   `yaml:"rounding"`
	Verify       *bool    `yaml:"verify"`
	Timeout      Duration `yaml:"timeout"`
	Suffix       string   `yaml:"suffix"`
	Logging      Logging  `yaml:"logging"`
}

// Logging selects the log level and handler.
type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // text or json
}

// Duration is a time.Duration written as "30s" or "2m" in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Defaults returns ED50 / UTM 29N source positions to ED50 / UTM 30N CDP positions.
func Defaults() Config {
	return Config{
		SourceSRS:   23029,
		TargetSRS:   23030,
		SourceCoord: "Source",
		TargetCoord: "CDP",
		Scaler:      1.0,
		Rounding:    "truncate",
		Logging:     Logging{Level: "info", Format: "text"},
	}
}

// Load reads a YAML config file. An empty file yields the zero Config.
func Load(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Merge returns base overridden by the non-zero fields of over.
// A non-nil boolean overrides, including false.
func Merge(base, over Config) Config {
	out := base
	if over.SourceSRS != 0 {
		out.SourceSRS = over.SourceSRS
	}
	if over.TargetSRS != 0 {
		out.TargetSRS = over.TargetSRS
	}
	if s := strings.TrimSpace(over.SourceCoord); s != "" {
		out.SourceCoord = s
	}
	if s := strings.TrimSpace(over.TargetCoord); s != "" {
		out.TargetCoord = s
	}
	if over.ForceScaling != nil {
		out.ForceScaling = Bool(*over.ForceScaling)
	}
	if over.Scaler != 0 {
		out.Scaler = over.Scaler
	}
	if over.StrictScaler != nil {
		out.StrictScaler = Bool(*over.StrictScaler)
	}
	if s := strings.TrimSpace(over.Rounding); s != "" {
		out.Rounding = s
	}
	if over.Verify != nil {
		out.Verify = Bool(*over.Verify)
	}
	if over.Timeout != 0 {
		out.Timeout = over.Timeout
	}
	if over.Suffix != "" {
		out.Suffix = over.Suffix
	}
	if s := strings.TrimSpace(over.Logging.Level); s != "" {
		out.Logging.Level = s
	}
	if s := strings.TrimSpace(over.Logging.Format); s != "" {
		out.Logging.Format = s
	}
	return out
}

// EnvOverlay builds an override from SEGYPROJ_* variables, e.g.
// SEGYPROJ_S_SRS=23031 or SEGYPROJ_LOG_LEVEL=debug. Unknown keys are
// ignored; malformed values are errors.
func EnvOverlay(environ []string) (Config, error) {
	var over Config
	for _, kv := range environ {
		if !strings.HasPrefix(kv, EnvPrefix) {
			continue
		}
		key, val, ok := strings.Cut(strings.TrimPrefix(kv, EnvPrefix), "=")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		var err error
		switch key {
		case "S_SRS":
			over.SourceSRS, err = strconv.Atoi(val)
		case "T_SRS":
			over.TargetSRS, err = strconv.Atoi(val)
		case "S_COORD":
			over.SourceCoord = val
		case "T_COORD":
			over.TargetCoord = val
		case "FORCE_SCALING":
			over.ForceScaling, err = parseBool(val)
		case "SCALER":
			over.Scaler, err = strconv.ParseFloat(val, 64)
		case "STRICT_SCALER":
			over.StrictScaler, err = parseBool(val)
		case "ROUNDING":
			over.Rounding = val
		case "VERIFY":
			over.Verify, err = parseBool(val)
		case "TIMEOUT":
			var d time.Duration
			d, err = time.ParseDuration(val)
			over.Timeout = Duration(d)
		case "SUFFIX":
			over.Suffix = val
		case "LOG_LEVEL":
			over.Logging.Level = val
		case "LOG_FORMAT":
			over.Logging.Format = val
		default:
			continue
		}
		if err != nil {
			return over, fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
	}
	return over, nil
}

// Validate checks that cfg describes a runnable reprojection.
func Validate(cfg Config) error {
	var errs []error
	if cfg.SourceSRS <= 0 {
		errs = append(errs, fmt.Errorf("s_srs must be a positive EPSG code, got %d", cfg.SourceSRS))
	}
	if cfg.TargetSRS <= 0 {
		errs = append(errs, fmt.Errorf("t_srs must be a positive EPSG code, got %d", cfg.TargetSRS))
	}
	if _, err := segyproj.ParseRole(cfg.SourceCoord); err != nil {
		errs = append(errs, fmt.Errorf("s_coord: %w", err))
	}
	if _, err := segyproj.ParseRole(cfg.TargetCoord); err != nil {
		errs = append(errs, fmt.Errorf("t_coord: %w", err))
	}
	if isSet(cfg.ForceScaling) && (cfg.Scaler == 0 || math.IsNaN(cfg.Scaler) || math.IsInf(cfg.Scaler, 0)) {
		errs = append(errs, fmt.Errorf("scaler must be a non-zero finite number with force_scaling, got %v", cfg.Scaler))
	}
	if _, err := parseRounding(cfg.Rounding); err != nil {
		errs = append(errs, err)
	}
	if cfg.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", time.Duration(cfg.Timeout)))
	}
	if _, err := ParseLevel(cfg.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging format must be text or json, got %q", cfg.Logging.Format))
	}
	return errors.Join(errs...)
}

// Options validates cfg and converts it into reprojection options.
func (cfg Config) Options() (segyproj.Options, error) {
	if err := Validate(cfg); err != nil {
		return segyproj.Options{}, err
	}
	from, _ := segyproj.ParseRole(cfg.SourceCoord)
	to, _ := segyproj.ParseRole(cfg.TargetCoord)
	rounding, _ := parseRounding(cfg.Rounding)
	return segyproj.Options{
		SourceSRS:         cfg.SourceSRS,
		TargetSRS:         cfg.TargetSRS,
		SourceRole:        from,
		TargetRole:        to,
		ForceScaling:      isSet(cfg.ForceScaling),
		Scaler:            cfg.Scaler,
		StrictScaler:      isSet(cfg.StrictScaler),
		Rounding:          rounding,
		ProjectionTimeout: time.Duration(cfg.Timeout),
		Verify:            isSet(cfg.Verify),
	}, nil
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

func isSet(p *bool) bool { return p != nil && *p }

func parseBool(s string) (*bool, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseRounding(s string) (segyproj.Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "truncate":
		return segyproj.RoundTruncate, nil
	case "nearest":
		return segyproj.RoundNearest, nil
	default:
		return 0, fmt.Errorf("rounding must be truncate or nearest, got %q", s)
	}
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log level must be debug, info, warn or error, got %q", s)
	}
}

// NewLogger returns a logger writing to w in the configured format and level.
func (l Logging) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
