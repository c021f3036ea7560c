package spatialmath

// Limit represents the range of valid values along one axis.
type Limit struct {
	Min float64
	Max float64
}

// Bounds is an axis-aligned rectangular region of the plane. Each axis covers the
// half-open interval [Min, Max).
type Bounds struct {
	X Limit
	Y Limit
}

// Contains returns whether the given point lies within the bounds. The minimum of
// each axis is inclusive and the maximum is exclusive.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.X.Min && p.X < b.X.Max && p.Y >= b.Y.Min && p.Y < b.Y.Max
}
