package behavior

import "github.com/lao-tseu-is-alive/go-particle-flock/pkg/geometry"

// Flocking radii and weights.
const (
	DesiredSeparation = 25.0
	AlignmentRadius   = 100.0
	CohesionRadius    = 50.0

	SeparationWeight = 1.5
	AlignmentWeight  = 0.5
	CohesionWeight   = 1.0
)

// Flock accumulates the weighted separation, alignment and cohesion forces.
// Every rule scans the whole list, the agent itself included: its distance is
// zero, which every rule skips.
func (a *Agent) Flock(neighbors []*Agent) {
	sep := a.Separation(neighbors).Mul(SeparationWeight)
	ali := a.Alignment(neighbors).Mul(AlignmentWeight)
	coh := a.Cohesion(neighbors).Mul(CohesionWeight)
	a.Acceleration = a.Acceleration.Add(sep.Add(ali).Add(coh))
}

// Separation pushes away from neighbors closer than DesiredSeparation,
// each one weighted by the inverse of its distance, averaged.
func (a *Agent) Separation(neighbors []*Agent) geometry.Vector3D {
	sum := geometry.Zero()
	count := 0

	for _, other := range neighbors {
		d := a.Position.DistanceTo(other.Position)
		if d > 0 && d < DesiredSeparation {
			diff, _ := a.Position.Sub(other.Position).Normalize().Div(d) // d > 0
			sum = sum.Add(diff)
			count++
		}
	}

	if count > 0 {
		sum, _ = sum.Div(float64(count))
	}
	return sum
}

// Alignment returns the average velocity of neighbors within
// AlignmentRadius, clamped to MaxForce.
func (a *Agent) Alignment(neighbors []*Agent) geometry.Vector3D {
	sum := geometry.Zero()
	count := 0

	for _, other := range neighbors {
		d := a.Position.DistanceTo(other.Position)
		if d > 0 && d < AlignmentRadius {
			sum = sum.Add(other.Velocity)
			count++
		}
	}

	if count > 0 {
		sum, _ = sum.Div(float64(count))
		sum = sum.Limit(a.MaxForce)
	}
	return sum
}

// Cohesion steers toward the centroid of neighbors within CohesionRadius.
func (a *Agent) Cohesion(neighbors []*Agent) geometry.Vector3D {
	sum := geometry.Zero()
	count := 0

	for _, other := range neighbors {
		d := a.Position.DistanceTo(other.Position)
		if d > 0 && d < CohesionRadius {
			sum = sum.Add(other.Position)
			count++
		}
	}

	if count == 0 {
		return sum
	}
	centroid, _ := sum.Div(float64(count))
	return a.Steer(centroid, false)
}
