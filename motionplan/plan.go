package motionplan

import (
	"gonum.org/v1/gonum/floats"

	"github.com/openrover/rrtstar/spatialmath"
)

// Path is a sequence of points through the plane, ordered start first.
type Path []spatialmath.Point

// Cost returns the total euclidean length of the path. Paths with fewer than two
// points have zero cost.
func (p Path) Cost() float64 {
	if len(p) < 2 {
		return 0
	}
	segments := make([]float64, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		segments = append(segments, p[i-1].Distance(p[i]))
	}
	return floats.Sum(segments)
}
