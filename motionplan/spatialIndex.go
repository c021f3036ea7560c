package motionplan

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/openrover/rrtstar/spatialmath"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50

	// Side length of the near-degenerate rectangles standing in for points in the R-tree.
	pointRectSize = 1e-9
)

// spatialIndex maintains an R-tree over tree node positions so neighborhood
// queries stay cheap as the tree grows.
type spatialIndex struct {
	rtree *rtreego.Rtree
}

type nodeEntry struct {
	idx  int
	pt   spatialmath.Point
	rect rtreego.Rect
}

func (e *nodeEntry) Bounds() rtreego.Rect {
	return e.rect
}

func newSpatialIndex() *spatialIndex {
	return &spatialIndex{rtree: rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)}
}

// insert adds the node at idx to the index.
func (si *spatialIndex) insert(idx int, pt spatialmath.Point) {
	rect, err := rtreego.NewRect(rtreego.Point{pt.X, pt.Y}, []float64{pointRectSize, pointRectSize})
	if err != nil {
		return
	}
	si.rtree.Insert(&nodeEntry{idx: idx, pt: pt, rect: rect})
}

// within returns the indices of all indexed nodes strictly closer to center than
// radius, excluding the given index, in ascending order. The R-tree narrows the
// candidates to a bounding square and exact distances filter the rest.
func (si *spatialIndex) within(center spatialmath.Point, radius float64, exclude int) []int {
	if radius <= 0 {
		return nil
	}
	searchRect, err := rtreego.NewRect(
		rtreego.Point{center.X - radius, center.Y - radius},
		[]float64{2 * radius, 2 * radius},
	)
	if err != nil {
		return nil
	}
	var found []int
	for _, match := range si.rtree.SearchIntersect(searchRect) {
		entry, ok := match.(*nodeEntry)
		if !ok || entry.idx == exclude {
			continue
		}
		if center.Distance(entry.pt) < radius {
			found = append(found, entry.idx)
		}
	}
	sort.Ints(found)
	return found
}
