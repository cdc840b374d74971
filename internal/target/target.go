// Package target places randomized click targets.
package target

import (
	"math"
	"math/rand"
	"time"

	"github.com/verte-zerg/pointspeed/internal/model"
)

// Generator produces random target positions.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with seed, or with the current time when seed is 0.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewWithRand(rand.New(rand.NewSource(seed)))
}

// NewWithRand returns a Generator drawing from rnd.
func NewWithRand(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Generate picks a target whose square of the given size fits inside bounds and
// returns it with the straight-line distance from the cursor position from.
func (g *Generator) Generate(bounds model.Bounds, size int, from model.Point) (model.Point, float64) {
	x := g.rnd.Intn(span(bounds.Width, size))
	y := g.rnd.Intn(span(bounds.Height, size))
	pos := model.Point{X: float64(x), Y: float64(y)}
	return pos, Distance(from, pos)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b model.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// span is the number of integer origins available along one axis. A window too
// small for the target collapses to the single origin 0.
func span(extent, size int) int {
	n := extent - size
	if n < 1 {
		return 1
	}
	return n
}
