package segy_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/beetlebugorg/segyproj/internal/segy"
	"github.com/beetlebugorg/segyproj/internal/segy/segytest"
)

func TestWriteAppliesPlan(t *testing.T) {
	dir := t.TempDir()
	src := segytest.WriteFile(t, dir, "in.sgy", segytest.Line(3, -100, 500000, 4500000, 100, 100), segytest.Options{})
	dst := filepath.Join(dir, "out.sgy")

	f, err := segy.Open(src, segy.OpenOptions{HeadersOnly: true})
	if err != nil {
		t.Fatal(err)
	}

	var plan segy.Plan
	plan.Set(segy.FieldCDPX, []int64{1, 2, 3})
	plan.Set(segy.FieldCDPY, []int64{-4, -5, -6})
	if err := segy.Write(context.Background(), f, dst, plan, segy.WriteOptions{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := segy.Open(dst, segy.OpenOptions{})
	if err != nil {
		t.Fatalf("reopen output: %v", err)
	}
	if out.TraceCount() != 3 {
		t.Fatalf("output traces = %d, want 3", out.TraceCount())
	}
	cdpX, cdpY := out.Column(segy.FieldCDPX), out.Column(segy.FieldCDPY)
	for i := 0; i < 3; i++ {
		if cdpX[i] != int64(i+1) || cdpY[i] != int64(-4-i) {
			t.Errorf("trace %d cdp = (%d, %d)", i, cdpX[i], cdpY[i])
		}
	}
	// Untouched fields survive.
	srcX := f.Column(segy.FieldSourceX)
	for i, x := range out.Column(segy.FieldSourceX) {
		if x != srcX[i] {
			t.Errorf("trace %d source x changed: %d -> %d", i, srcX[i], x)
		}
	}

	inHash, err := segy.Fingerprint(f)
	if err != nil {
		t.Fatal(err)
	}
	outHash, err := segy.Fingerprint(out)
	if err != nil {
		t.Fatal(err)
	}
	if inHash != outHash {
		t.Errorf("sample data fingerprint changed: %x -> %x", inHash, outHash)
	}

	srcInfo, _ := os.Stat(src)
	dstInfo, _ := os.Stat(dst)
	if srcInfo.Size() != dstInfo.Size() {
		t.Errorf("output size = %d, want %d", dstInfo.Size(), srcInfo.Size())
	}
}

func TestWriteRefusesExistingAndSameFile(t *testing.T) {
	dir := t.TempDir()
	src := segytest.WriteFile(t, dir, "in.sgy", segytest.Line(2, 1, 0, 0, 1, 1), segytest.Options{})
	existing := filepath.Join(dir, "taken.sgy")
	if err := os.WriteFile(existing, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := segy.Open(src, segy.OpenOptions{HeadersOnly: true})
	if err != nil {
		t.Fatal(err)
	}

	if err := segy.Write(context.Background(), f, src, segy.Plan{}, segy.WriteOptions{}); !errors.Is(err, segy.ErrSameFile) {
		t.Errorf("Write onto source error = %v, want ErrSameFile", err)
	}
	if err := segy.Write(context.Background(), f, existing, segy.Plan{}, segy.WriteOptions{}); !errors.Is(err, segy.ErrOutputExists) {
		t.Errorf("Write onto existing error = %v, want ErrOutputExists", err)
	}
	if data, _ := os.ReadFile(existing); string(data) != "keep" {
		t.Errorf("existing file modified: %q", data)
	}
}

func TestWriteRejectsBadPlanWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	src := segytest.WriteFile(t, dir, "in.sgy", segytest.Line(2, 1, 0, 0, 1, 1), segytest.Options{})
	f, err := segy.Open(src, segy.OpenOptions{HeadersOnly: true})
	if err != nil {
		t.Fatal(err)
	}

	var short segy.Plan
	short.Set(segy.FieldCDPX, []int64{1})
	err = segy.Write(context.Background(), f, filepath.Join(dir, "a.sgy"), short, segy.WriteOptions{})
	if !errors.Is(err, segy.ErrTraceCountMismatch) {
		t.Errorf("short column error = %v, want ErrTraceCountMismatch", err)
	}

	var overflow segy.Plan
	overflow.Set(segy.FieldCDPX, []int64{1, 1 << 40})
	err = segy.Write(context.Background(), f, filepath.Join(dir, "b.sgy"), overflow, segy.WriteOptions{})
	var fieldErr *segy.ErrFieldOverflow
	if !errors.As(err, &fieldErr) {
		t.Errorf("overflow error = %v, want ErrFieldOverflow", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only in.sgy", names)
	}
}

func TestWriteCancelled(t *testing.T) {
	dir := t.TempDir()
	src := segytest.WriteFile(t, dir, "in.sgy", segytest.Line(2, 1, 0, 0, 1, 1), segytest.Options{})
	f, err := segy.Open(src, segy.OpenOptions{HeadersOnly: true})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dst := filepath.Join(dir, "out.sgy")
	if err := segy.Write(ctx, f, dst, segy.Plan{}, segy.WriteOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Write error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(dst); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output exists after cancelled write")
	}
}
