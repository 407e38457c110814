package segyproj

import "math"

// Point is a planar or geographic coordinate pair.
//
// X is easting or longitude, Y is northing or latitude.
type Point struct {
	X, Y float64
}

// Bounds is an axis-aligned bounding box in the units of the points it covers.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains returns true if the point is within the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX &&
		p.Y >= b.MinY && p.Y <= b.MaxY
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxX < b.MinX ||
		other.MinX > b.MaxX ||
		other.MaxY < b.MinY ||
		other.MinY > b.MaxY)
}

// Expand returns a new Bounds expanded by margin in all directions.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}

// Width returns the extent along X.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the extent along Y.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// BoundsOf returns the bounding box of points. Empty input yields the zero Bounds.
func BoundsOf(points []Point) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range points {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}
