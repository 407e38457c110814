package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/segyproj/pkg/projection"
	"github.com/beetlebugorg/segyproj/pkg/segyproj"
)

func main() {
	// Summarize the input
	summary, err := segyproj.Describe("line_01.sgy", segyproj.DescribeOptions{})
	if err != nil {
		log.Fatal(err)
	}
	summary.WriteTo(os.Stdout)

	// Move source positions from ED50 / UTM 29N into CDP positions in ED50 / UTM 30N
	rw := segyproj.NewRewriter(projection.New(nil))
	opts := segyproj.DefaultOptions()
	opts.Verify = true

	res, err := rw.ReprojectFile(context.Background(), "line_01.sgy", "line_01_utm30.sgy", opts)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Traces: %d\n", res.Traces)
	fmt.Printf("Bounds: [%.1f,%.1f] to [%.1f,%.1f]\n",
		res.TargetBounds.MinX, res.TargetBounds.MinY,
		res.TargetBounds.MaxX, res.TargetBounds.MaxY)
}
