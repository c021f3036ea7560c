// Package spatialmath defines spatial mathematical operations on points in the plane.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a point in 2D euclidean space.
type Point r2.Point

// NewPoint creates a Point from its X and Y coordinates.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// Bearing returns the angle in radians from p to other, measured counterclockwise
// from the positive X axis. The bearing between coincident points is zero.
func (p Point) Bearing(other Point) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// PointAtBearing returns the point reached by traveling the given distance from p
// along the given bearing.
func (p Point) PointAtBearing(bearing, distance float64) Point {
	return Point{
		X: p.X + distance*math.Cos(bearing),
		Y: p.Y + distance*math.Sin(bearing),
	}
}

// PointAlmostEqual returns whether the two points are within epsilon of each other on both axes.
func PointAlmostEqual(a, b Point, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}
