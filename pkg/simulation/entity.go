package simulation

import (
	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/geometry"
	"gonum.org/v1/gonum/stat"
)

// AgentState is a plain copy of what a renderer needs from an agent.
// It is safe to hand over to another goroutine.
type AgentState struct {
	ID       string            `json:"id"`
	Position geometry.Vector3D `json:"position"`
	Velocity geometry.Vector3D `json:"velocity"`
	Heading  float64           `json:"heading"`
	Radius   float64           `json:"radius"`
	Lifetime float64           `json:"lifetime"`
}

// StateOf copies the agent into an AgentState.
func StateOf(a *behavior.Agent) AgentState {
	return AgentState{
		ID:       a.ID,
		Position: a.Position,
		Velocity: a.Velocity,
		Heading:  a.Heading,
		Radius:   a.Radius,
		Lifetime: a.Lifetime,
	}
}

// Speed returns the magnitude of the velocity.
func (s AgentState) Speed() float64 {
	return s.Velocity.Len()
}

// WorldSnapshot is one rendered frame of the population.
type WorldSnapshot struct {
	Tick       uint64       `json:"tick"`
	Agents     []AgentState `json:"agents"`
	IsFinished bool         `json:"isFinished"`
}

// Snapshot renders the population into a WorldSnapshot,
// headings are refreshed on the way.
func (p *Population) Snapshot() *WorldSnapshot {
	snap := &WorldSnapshot{
		Tick:   p.ticks,
		Agents: make([]AgentState, 0, len(p.agents)),
	}
	p.Render(func(a *behavior.Agent) {
		snap.Agents = append(snap.Agents, StateOf(a))
	})
	snap.IsFinished = len(snap.Agents) == 0
	return snap
}

// Stats summarises the speeds of a snapshot.
type Stats struct {
	Count       int
	MeanSpeed   float64
	SpeedStdDev float64
	Centroid    geometry.Vector3D
}

// Stats computes the speed mean, standard deviation and the centroid.
func (s *WorldSnapshot) Stats() Stats {
	n := len(s.Agents)
	if n == 0 {
		return Stats{}
	}

	speeds := make([]float64, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)
	for i, a := range s.Agents {
		speeds[i] = a.Speed()
		xs[i], ys[i], zs[i] = a.Position.X, a.Position.Y, a.Position.Z
	}

	st := Stats{Count: n}
	st.MeanSpeed, st.SpeedStdDev = stat.MeanStdDev(speeds, nil)
	if n == 1 {
		st.SpeedStdDev = 0
	}
	st.Centroid = geometry.Vector3D{
		X: stat.Mean(xs, nil),
		Y: stat.Mean(ys, nil),
		Z: stat.Mean(zs, nil),
	}
	return st
}
