// Package behavior holds the autonomous agent ("particle") of the flock and the
// steering rules it follows: seek, arrive, wander and Reynolds' flocking
// (separation, alignment, cohesion).
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// https://en.wikipedia.org/wiki/Boids
//
// An Agent only ever mutates itself: neighbor lists are read, never written.
package behavior

import (
	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/geometry"
)

// Defaults of a default-constructed agent.
const (
	DefaultRadius   = 10.0
	DefaultMaxSpeed = 10.0
	DefaultMaxForce = 2.0
	DefaultLifetime = 5000.0
)

// State is the lifecycle state of an Agent.
type State int

const (
	Alive State = iota
	Dead
)

func (s State) String() string {
	switch s {
	case Alive:
		return "ALIVE"
	case Dead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// RandomSource yields uniform floats in [0, 1).
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Agent is a single steered particle.
// We export the physical fields so renderers and hosts can read them.
type Agent struct {
	ID string

	Position     geometry.Vector3D
	Velocity     geometry.Vector3D
	Acceleration geometry.Vector3D

	Radius   float64
	MaxSpeed float64
	MaxForce float64

	// Lifetime counts down once per Update, the agent is dead at <= 0.
	Lifetime float64

	// Heading is derived from Velocity by UpdateHeading, right before rendering.
	Heading float64

	wanderAngle  float64
	wanderCircle geometry.Vector3D
	wanderTarget geometry.Vector3D

	// arena bounds, fixed at construction
	width, height float64
}

// New creates an agent at origin inside a width x height arena.
func New(width, height float64, origin geometry.Vector3D, radius, maxSpeed, maxForce float64) *Agent {
	return &Agent{
		ID:       uuid.NewString(),
		Position: origin,
		Radius:   radius,
		MaxSpeed: maxSpeed,
		MaxForce: maxForce,
		Lifetime: DefaultLifetime,
		width:    width,
		height:   height,
	}
}

// NewDefault creates an agent at origin with the default radius, speed and force.
func NewDefault(width, height float64, origin geometry.Vector3D) *Agent {
	return New(width, height, origin, DefaultRadius, DefaultMaxSpeed, DefaultMaxForce)
}

// Bounds returns the arena width and height the agent wraps around.
func (a *Agent) Bounds() (width, height float64) {
	return a.width, a.height
}

// WanderAngle returns the current angle of the wander random walk, in radians.
func (a *Agent) WanderAngle() float64 {
	return a.wanderAngle
}

// WanderTarget returns the centre of the wander circle and the point on it
// that was steered toward by the last Wander call.
func (a *Agent) WanderTarget() (circle, target geometry.Vector3D) {
	return a.wanderCircle, a.wanderTarget
}

// Dead reports whether the lifetime is exhausted.
func (a *Agent) Dead() bool {
	return a.Lifetime <= 0
}

// State returns Alive or Dead.
func (a *Agent) State() State {
	if a.Dead() {
		return Dead
	}
	return Alive
}

// Run advances the agent by one tick: flocking against neighbors (when there
// are any), integration, then wraparound.
func (a *Agent) Run(neighbors []*Agent) {
	if len(neighbors) > 0 {
		a.Flock(neighbors)
	}
	a.Update()
	a.EnforceBounds()
}

// Update integrates the accumulated acceleration into velocity and position,
// then resets the acceleration and burns one unit of lifetime.
func (a *Agent) Update() {
	a.Velocity = a.Velocity.Add(a.Acceleration).Limit(a.MaxSpeed)
	a.Position = a.Position.Add(a.Velocity)
	a.Acceleration = geometry.Zero()
	a.Lifetime -= 1.0
}

// EnforceBounds wraps the position around the arena, each edge tested on its
// own. Z is never wrapped.
func (a *Agent) EnforceBounds() {
	r := a.Radius
	if a.Position.X < -r {
		a.Position.X = a.width + r
	}
	if a.Position.Y < -r {
		a.Position.Y = a.height + r
	}
	if a.Position.X > a.width+r {
		a.Position.X = -r
	}
	if a.Position.Y > a.height+r {
		a.Position.Y = -r
	}
}

// UpdateHeading recomputes Heading from the velocity, facing "up" at zero.
func (a *Agent) UpdateHeading() {
	a.Heading = a.Velocity.Heading2D() + geometry.Radians(90)
}
