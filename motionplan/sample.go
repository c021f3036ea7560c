package motionplan

import (
	"math/rand"

	"github.com/openrover/rrtstar/spatialmath"
)

// Sampler produces the candidate points a planner grows its tree toward.
type Sampler interface {
	Sample(bounds spatialmath.Bounds) spatialmath.Point
}

// NewUniformSampler returns a Sampler that draws points uniformly at random from
// the sampled bounds.
func NewUniformSampler() Sampler {
	//nolint:gosec
	return NewUniformSamplerWithSeed(rand.New(rand.NewSource(1)))
}

// NewUniformSamplerWithSeed returns a uniform Sampler with a user specified random source.
func NewUniformSamplerWithSeed(seed *rand.Rand) Sampler {
	if seed == nil {
		//nolint:gosec
		seed = rand.New(rand.NewSource(1))
	}
	return &uniformSampler{randseed: seed}
}

type uniformSampler struct {
	randseed *rand.Rand
}

func (s *uniformSampler) Sample(bounds spatialmath.Bounds) spatialmath.Point {
	xRange := bounds.X.Max - bounds.X.Min
	yRange := bounds.Y.Max - bounds.Y.Min
	return spatialmath.Point{
		X: s.randseed.Float64()*xRange + bounds.X.Min,
		Y: s.randseed.Float64()*yRange + bounds.Y.Min,
	}
}
