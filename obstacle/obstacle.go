// Package obstacle builds collision predicates for planar worlds of polygonal obstacles.
package obstacle

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/openrover/rrtstar/motionplan"
	"github.com/openrover/rrtstar/spatialmath"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50

	// Side length of the probe rectangle used for point queries.
	probeRectSize = 1e-9
)

// polygonEntry wraps a polygon for R-tree storage.
type polygonEntry struct {
	polygon orb.Polygon
	bbox    rtreego.Rect
}

// Bounds implements the rtreego.Spatial interface.
func (e *polygonEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// World is a set of polygonal obstacles indexed by an R-tree over their bounding
// boxes, so point queries only test polygons whose boxes cover the point.
type World struct {
	rtree *rtreego.Rtree
}

// NewWorld indexes the given obstacle polygons.
func NewWorld(polygons []orb.Polygon) *World {
	rtree := rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)
	for _, polygon := range polygons {
		bound := polygon.Bound()
		// pad the box so degenerate polygons still get a valid rectangle
		bbox, err := rtreego.NewRect(
			rtreego.Point{bound.Min.X(), bound.Min.Y()},
			[]float64{
				bound.Max.X() - bound.Min.X() + probeRectSize,
				bound.Max.Y() - bound.Min.Y() + probeRectSize,
			},
		)
		if err == nil {
			rtree.Insert(&polygonEntry{polygon: polygon, bbox: bbox})
		}
	}
	return &World{rtree: rtree}
}

// Size returns the number of indexed obstacles.
func (w *World) Size() int {
	return w.rtree.Size()
}

// IsFree returns whether the given point lies outside every obstacle.
func (w *World) IsFree(pt spatialmath.Point) bool {
	probe, err := rtreego.NewRect(rtreego.Point{pt.X, pt.Y}, []float64{probeRectSize, probeRectSize})
	if err != nil {
		return false
	}
	for _, match := range w.rtree.SearchIntersect(probe) {
		entry, ok := match.(*polygonEntry)
		if !ok {
			continue
		}
		if planar.PolygonContains(entry.polygon, orb.Point{pt.X, pt.Y}) {
			return false
		}
	}
	return true
}

// Predicate returns the world's IsFree check as a motionplan.CollisionPredicate.
func (w *World) Predicate() motionplan.CollisionPredicate {
	return w.IsFree
}

// Box returns a closed rectangular obstacle covering [minX, maxX] x [minY, maxY].
func Box(minX, minY, maxX, maxY float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minX, minY},
		{maxX, minY},
		{maxX, maxY},
		{minX, maxY},
		{minX, minY},
	}}
}
