package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/segyproj/internal/segy"
	"github.com/beetlebugorg/segyproj/internal/segy/segytest"
)

// Tests keep source and target EPSG codes equal so no PROJ pipeline runs.

func runCLI(t *testing.T, environ []string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, environ, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestSingleFileInterleavedFlags(t *testing.T) {
	dir := t.TempDir()
	in := segytest.WriteFile(t, dir, "line.sgy", segytest.Line(3, -100, 500000, 4500000, 100, 100), segytest.Options{})
	out := filepath.Join(dir, "line_out.sgy")

	code, stdout, stderr := runCLI(t, nil, "-s_srs", "23029", in, "-t_srs", "23029", "-o", out, "-round", "-verify")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "OK "+in+" -> "+out+" (3 traces)")

	f, err := segy.Open(out, segy.OpenOptions{HeadersOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{500000, 500100, 500200}, f.Column(segy.FieldCDPX))
	assert.Equal(t, []int64{4500000, 4500100, 4500200}, f.Column(segy.FieldCDPY))

	// Outputs are never overwritten.
	code, stdout, _ = runCLI(t, nil, in, "-o", out, "-t_srs", "23029")
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stdout, "FAILED")
	assert.Contains(t, stdout, "write error")
}

func TestDirectoryBatch(t *testing.T) {
	dir := t.TempDir()
	segytest.WriteFile(t, dir, "a.sgy", segytest.Line(2, 1, 10, 20, 1, 1), segytest.Options{})
	segytest.WriteFile(t, dir, "b.SEGY", segytest.Line(2, 1, 30, 40, 1, 1), segytest.Options{})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.sgy"), []byte("corrupt"), 0o644))

	code, stdout, _ := runCLI(t, nil, dir, "-s", "_reproj", "-t_srs", "23029", "-t_coord", "Group")
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stdout, "2 succeeded, 1 failed")
	assert.Contains(t, stdout, "FAILED "+filepath.Join(dir, "c.sgy"))
	assert.FileExists(t, filepath.Join(dir, "a_reproj.sgy"))
	assert.FileExists(t, filepath.Join(dir, "b_reproj.SEGY"))
	assert.NoFileExists(t, filepath.Join(dir, "c_reproj.sgy"))
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	in := segytest.WriteFile(t, dir, "a.sgy", segytest.Line(1, 1, 0, 0, 0, 0), segytest.Options{})

	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"-s", "_x"}},
		{"two inputs", []string{in, in, "-s", "_x"}},
		{"unknown flag", []string{"-bogus", in}},
		{"unknown role", []string{in, "-s", "_x", "-t_coord", "Midpoint"}},
		{"zero forced scaler", []string{in, "-s", "_x", "-fs", "-sc", "0"}},
		{"directory with output", []string{dir, "-o", filepath.Join(dir, "x.sgy")}},
		{"directory without suffix", []string{dir}},
		{"file without output", []string{in}},
		{"missing input", []string{filepath.Join(dir, "nope.sgy"), "-s", "_x"}},
		{"bad log level", []string{in, "-s", "_x", "-log_level", "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, nil, tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.NotEmpty(t, stderr)
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "usage errors write nothing")
}

func TestHelp(t *testing.T) {
	code, _, stderr := runCLI(t, nil, "-h")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "Usage: segy2segy")
	assert.Contains(t, stderr, "-force_scaling")
}

func TestConfigLayering(t *testing.T) {
	dir := t.TempDir()
	traces := []segytest.Trace{
		{Scalar: 1, SourceX: 10, SourceY: 20},
		{Scalar: 1, SourceX: 11, SourceY: 21},
	}
	in := segytest.WriteFile(t, dir, "a.sgy", traces, segytest.Options{})
	cfgPath := filepath.Join(dir, "segyproj.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("t_srs: 23029\nsuffix: _cfg\nt_coord: group\n"), 0o644))

	// The file sets target and suffix; the environment overrides the role.
	env := []string{"SEGYPROJ_CONFIG=" + cfgPath, "SEGYPROJ_T_COORD=cdp"}
	code, _, stderr := runCLI(t, env, in)
	require.Equal(t, exitOK, code, stderr)
	out := filepath.Join(dir, "a_cfg.sgy")
	f, err := segy.Open(out, segy.OpenOptions{HeadersOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, f.Column(segy.FieldCDPX))
	assert.Equal(t, []int64{0, 0}, f.Column(segy.FieldGroupX))

	// Flags beat both.
	code, _, stderr = runCLI(t, env, in, "-config", cfgPath, "-s", "_flag", "-t_coord", "Group")
	require.Equal(t, exitOK, code, stderr)
	f, err = segy.Open(filepath.Join(dir, "a_flag.sgy"), segy.OpenOptions{HeadersOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, f.Column(segy.FieldGroupX))
	assert.Equal(t, []int64{0, 0}, f.Column(segy.FieldCDPX))

	require.NoError(t, os.WriteFile(cfgPath, []byte("target_srs: 1\n"), 0o644))
	code, _, stderr = runCLI(t, env, in, "-s", "_bad")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "configuration")
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	in := segytest.WriteFile(t, dir, "a.sgy", segytest.Line(5, -100, 500000, 4500000, 100, 0), segytest.Options{})

	code, stdout, stderr := runCLI(t, nil, "-info", in, "-near", "5002.4,45000")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Traces:          5")
	assert.Contains(t, stdout, "Nearest trace:   2 at 5002.00 45000.00 (Source)")

	segytest.WriteFile(t, dir, "b.sgy", segytest.Line(2, 1, 0, 0, 1, 1), segytest.Options{})
	code, stdout, _ = runCLI(t, nil, "-info", dir)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, filepath.Join(dir, "a.sgy"))
	assert.Contains(t, stdout, filepath.Join(dir, "b.sgy"))

	code, _, _ = runCLI(t, nil, "-info", in, "-near", "5002")
	assert.Equal(t, exitUsage, code)
}

func TestParsePoint(t *testing.T) {
	x, y, err := parsePoint(" 431250.5 , 4581300 ")
	require.NoError(t, err)
	assert.Equal(t, 431250.5, x)
	assert.Equal(t, 4581300.0, y)

	for _, bad := range []string{"", "1", "a,2", "1,b"} {
		_, _, err := parsePoint(bad)
		assert.Error(t, err, bad)
	}
}
