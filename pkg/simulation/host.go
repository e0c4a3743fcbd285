package simulation

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/geometry"
)

// Host is everything the simulation needs from the application running it:
// the arena size, where the pointer (seek/arrive target) is, and randomness.
type Host interface {
	Width() float64
	Height() float64
	Pointer() geometry.Vector3D
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// StaticHost is a Host with a fixed arena and a pointer set by the caller.
// Handy for tests and for headless runs.
type StaticHost struct {
	W, H   float64
	Target geometry.Vector3D
	Rand   *rand.Rand
}

var _ Host = (*StaticHost)(nil)

// NewStaticHost creates a StaticHost seeded with seed.
func NewStaticHost(width, height float64, target geometry.Vector3D, seed uint64) *StaticHost {
	return &StaticHost{
		W:      width,
		H:      height,
		Target: target,
		Rand:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (h *StaticHost) Width() float64             { return h.W }
func (h *StaticHost) Height() float64            { return h.H }
func (h *StaticHost) Pointer() geometry.Vector3D { return h.Target }
func (h *StaticHost) Float64() float64           { return h.Rand.Float64() }
