package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/segyproj/pkg/segyproj"
)

func main() {
	// Index the CDP positions of a line
	summary, err := segyproj.Describe("line_01.sgy", segyproj.DescribeOptions{
		IndexRole: segyproj.RoleCDP,
	})
	if err != nil {
		log.Fatal(err)
	}
	idx := summary.Index

	// Traces inside a 2 km box around the middle of the line (R-tree, O(log n))
	b := idx.Bounds()
	cx, cy := (b.MinX+b.MaxX)/2, (b.MinY+b.MaxY)/2
	box := segyproj.Bounds{MinX: cx - 1000, MinY: cy - 1000, MaxX: cx + 1000, MaxY: cy + 1000}

	traces := idx.Query(box)
	fmt.Printf("Traces in box: %d of %d\n", len(traces), idx.Count())

	// Trace closest to a well location
	if i, ok := idx.Nearest(431250, 4581300); ok {
		p := idx.Point(i)
		fmt.Printf("Nearest trace: %d at %.1f %.1f\n", i, p.X, p.Y)
	}
}
