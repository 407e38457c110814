package segyproj

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// pointTolerance is the half-size of the rectangle a trace position
// occupies in the R-tree. rtreego rejects zero-size rectangles.
const pointTolerance = 1e-6

// NavigationIndex provides fast spatial queries over trace positions.
//
// Entries are trace indices into the slice the index was built from, so a
// query result can be used to address headers, samples or other per-trace
// columns of the same file.
//
// Example:
//
//	points, _, err := segyproj.ExtractXY("line.sgy", segyproj.RoleCDP, segyproj.ExtractOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	idx := segyproj.BuildNavigationIndex(points)
//	trace, ok := idx.Nearest(431250, 4581300)
type NavigationIndex struct {
	points []Point
	rtree  *rtreego.Rtree
}

// navEntry is a trace position stored in the R-tree.
type navEntry struct {
	trace int
	point Point
}

// Bounds method for rtreego.Spatial interface.
func (e navEntry) Bounds() rtreego.Rect {
	return rtreego.Point{e.point.X, e.point.Y}.ToRect(pointTolerance)
}

// BuildNavigationIndex indexes points by position. Point i is trace i.
func BuildNavigationIndex(points []Point) *NavigationIndex {
	// 2D, min=25 children, max=50 children
	rtree := rtreego.NewTree(2, 25, 50)
	for i, p := range points {
		rtree.Insert(navEntry{trace: i, point: p})
	}
	return &NavigationIndex{points: points, rtree: rtree}
}

// Query returns the indices of the traces within bounds, in ascending order.
func (idx *NavigationIndex) Query(bounds Bounds) []int {
	if idx.Count() == 0 {
		return nil
	}
	search := bounds.Expand(pointTolerance)
	rect, err := rtreego.NewRect(
		rtreego.Point{search.MinX, search.MinY},
		[]float64{search.Width(), search.Height()},
	)
	if err != nil {
		// Inverted bounds select nothing.
		return nil
	}

	var result []int
	for _, spatial := range idx.rtree.SearchIntersect(rect) {
		entry := spatial.(navEntry)
		if bounds.Contains(entry.point) {
			result = append(result, entry.trace)
		}
	}
	sort.Ints(result)
	return result
}

// Nearest returns the index of the trace closest to (x, y). The second
// result is false when the index is empty.
func (idx *NavigationIndex) Nearest(x, y float64) (int, bool) {
	if idx.Count() == 0 {
		return 0, false
	}
	spatial := idx.rtree.NearestNeighbor(rtreego.Point{x, y})
	if spatial == nil {
		return 0, false
	}
	return spatial.(navEntry).trace, true
}

// Point returns the indexed position of trace i.
func (idx *NavigationIndex) Point(i int) Point {
	return idx.points[i]
}

// Count returns the number of indexed traces.
func (idx *NavigationIndex) Count() int {
	return len(idx.points)
}

// Bounds returns the bounding box of all indexed traces.
func (idx *NavigationIndex) Bounds() Bounds {
	return BoundsOf(idx.points)
}
