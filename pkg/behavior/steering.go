package behavior

import (
	"math"

	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/geometry"
)

const (
	// arrivalEpsilon is the distance under which steering gives up.
	arrivalEpsilon = 0.001
	// SlowdownThreshold is the distance at which Arrive starts braking.
	SlowdownThreshold = 100.0

	WanderRadius   = 16.0
	WanderDistance = 60.0
	WanderChange   = 0.25
)

// DesiredVelocity returns the velocity the agent wants in order to reach
// target, before the steering force is clamped. With slowdown, the desired
// speed shrinks linearly inside SlowdownThreshold.
// ok is false when the target is closer than 0.001.
func (a *Agent) DesiredVelocity(target geometry.Vector3D, slowdown bool) (desired geometry.Vector3D, ok bool) {
	desired = target.Sub(a.Position)
	d := desired.Len()
	if d < arrivalEpsilon {
		return geometry.Zero(), false
	}

	desired = desired.Normalize()
	if slowdown && d < SlowdownThreshold {
		return desired.Mul(a.MaxSpeed * (d / SlowdownThreshold)), true
	}
	return desired.Mul(a.MaxSpeed), true
}

// Steer returns the steering force toward target, clamped to MaxForce.
func (a *Agent) Steer(target geometry.Vector3D, slowdown bool) geometry.Vector3D {
	desired, ok := a.DesiredVelocity(target, slowdown)
	if !ok {
		return geometry.Zero()
	}
	return desired.Sub(a.Velocity).Limit(a.MaxForce)
}

// Seek accelerates toward target at full speed.
func (a *Agent) Seek(target geometry.Vector3D) {
	a.Acceleration = a.Acceleration.Add(a.Steer(target, false))
}

// Arrive accelerates toward target, braking as it gets close.
func (a *Agent) Arrive(target geometry.Vector3D) {
	a.Acceleration = a.Acceleration.Add(a.Steer(target, true))
}

// Wander steers toward a point on a circle projected ahead of the agent.
// The angle on the circle random walks by at most WanderChange per call and
// is kept between calls.
func (a *Agent) Wander(rng RandomSource) {
	a.wanderAngle += rng.Float64()*WanderChange*2.0 - WanderChange

	circle := a.Velocity.Normalize().Mul(WanderDistance).Add(a.Position)
	offset := geometry.Vector3D{
		X: WanderRadius * math.Cos(a.wanderAngle),
		Y: WanderRadius * math.Sin(a.wanderAngle),
	}
	target := circle.Add(offset)

	a.wanderCircle, a.wanderTarget = circle, target
	a.Acceleration = a.Acceleration.Add(a.Steer(target, false))
}
