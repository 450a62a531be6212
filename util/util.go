package util

import (
	"math/rand"

	"github.com/hupe1980/kdgo/geo"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// GenerateRandomPoints generates num points uniformly distributed over
// the given bounds using the given RNG.
func (r *RNG) GenerateRandomPoints(num int, bounds geo.Rect) []geo.Point {
	points := make([]geo.Point, num)
	for i := range points {
		points[i] = geo.Point{
			X: bounds.MinX + r.rand.Float64()*(bounds.MaxX-bounds.MinX),
			Y: bounds.MinY + r.rand.Float64()*(bounds.MaxY-bounds.MinY),
		}
	}

	return points
}

// RandomPoint generates a single point uniformly distributed over the
// given bounds.
func (r *RNG) RandomPoint(bounds geo.Rect) geo.Point {
	return r.GenerateRandomPoints(1, bounds)[0]
}
