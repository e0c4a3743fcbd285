package simulation

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedHost replays fixed random values and keeps the pointer still.
type scriptedHost struct {
	w, h    float64
	pointer geometry.Vector3D
	values  []float64
	i       int
}

func (s *scriptedHost) Width() float64             { return s.w }
func (s *scriptedHost) Height() float64            { return s.h }
func (s *scriptedHost) Pointer() geometry.Vector3D { return s.pointer }
func (s *scriptedHost) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func TestNewPopulation(t *testing.T) {
	host := NewStaticHost(640, 480, geometry.Vector3D{X: 320, Y: 240}, 7)
	pop := NewPopulation(200, geometry.Vector3D{X: 1, Y: 2}, host)

	require.Equal(t, 200, pop.Len())
	assert.False(t, pop.IsEmpty())
	assert.Equal(t, geometry.Vector3D{X: 1, Y: 2}, pop.Origin())

	for _, a := range pop.Agents() {
		assert.GreaterOrEqual(t, a.Position.X, 0.0)
		assert.Less(t, a.Position.X, 640.0)
		assert.GreaterOrEqual(t, a.Position.Y, 0.0)
		assert.Less(t, a.Position.Y, 480.0)
		assert.Equal(t, 0.0, a.Position.Z)
		assert.Equal(t, 4.0, a.Radius)
		assert.GreaterOrEqual(t, a.MaxSpeed, 0.0)
		assert.Less(t, a.MaxSpeed, 20.0)
		assert.GreaterOrEqual(t, a.MaxForce, 0.0)
		assert.Less(t, a.MaxForce, 6.0)
		assert.Equal(t, behavior.DefaultLifetime, a.Lifetime)
	}
}

func TestNewPopulation_DrawOrder(t *testing.T) {
	host := &scriptedHost{w: 100, h: 200, values: []float64{0.5, 0.25, 0.75, 0.5}}
	pop := NewPopulation(1, geometry.Zero(), host,
		WithRadius(2),
		WithSpeedRange(Range{Min: 4, Max: 8}),
		WithForceRange(Range{Min: 0, Max: 1}),
		WithLifetime(30),
	)

	a := pop.Agents()[0]
	assert.Equal(t, geometry.Vector3D{X: 50, Y: 50}, a.Position)
	assert.Equal(t, 7.0, a.MaxSpeed)
	assert.Equal(t, 0.5, a.MaxForce)
	assert.Equal(t, 2.0, a.Radius)
	assert.Equal(t, 30.0, a.Lifetime)
	w, h := a.Bounds()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 200.0, h)
}

func TestPopulation_pickBehavior(t *testing.T) {
	tests := []struct {
		r    float64
		want Behavior
	}{
		{0.0, Wander},
		{0.2, Wander},
		{0.34, Arrive},
		{0.5, Arrive},
		{0.67, Seek},
		{0.99, Seek},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			pop := &Population{host: &scriptedHost{w: 10, h: 10, values: []float64{tt.r}}}
			assert.Equal(t, tt.want, pop.pickBehavior())
		})
	}
}

func TestPopulation_RunTick(t *testing.T) {
	t.Run("removes agents on the tick their lifetime runs out", func(t *testing.T) {
		host := NewStaticHost(400, 400, geometry.Vector3D{X: 200, Y: 200}, 1)
		pop := NewPopulation(3, geometry.Zero(), host)

		doomed := behavior.NewDefault(400, 400, geometry.Vector3D{X: 10, Y: 10})
		doomed.Lifetime = 1
		pop.AddAgent(doomed)
		require.Equal(t, 4, pop.Len())

		pop.RunTick()

		assert.Equal(t, 3, pop.Len())
		assert.Equal(t, uint64(1), pop.Ticks())
		for _, a := range pop.Agents() {
			assert.NotEqual(t, doomed.ID, a.ID)
		}
	})

	t.Run("population finishes when every agent dies", func(t *testing.T) {
		host := NewStaticHost(400, 400, geometry.Vector3D{X: 200, Y: 200}, 2)
		pop := NewPopulation(10, geometry.Zero(), host, WithLifetime(5))

		for i := 0; i < 4; i++ {
			pop.RunTick()
			require.Equal(t, 10, pop.Len())
		}
		pop.RunTick()
		assert.True(t, pop.IsEmpty())
	})

	t.Run("keeps speed and bounds invariants", func(t *testing.T) {
		host := NewStaticHost(300, 200, geometry.Vector3D{X: 150, Y: 100}, 3)
		pop := NewPopulation(60, geometry.Zero(), host)

		for i := 0; i < 200; i++ {
			pop.RunTick()
			for _, a := range pop.Agents() {
				require.LessOrEqual(t, a.Velocity.Len(), a.MaxSpeed+1e-9)
				require.GreaterOrEqual(t, a.Position.X, -a.Radius)
				require.LessOrEqual(t, a.Position.X, 300+a.Radius)
				require.GreaterOrEqual(t, a.Position.Y, -a.Radius)
				require.LessOrEqual(t, a.Position.Y, 200+a.Radius)
				require.Equal(t, geometry.Zero(), a.Acceleration)
			}
		}
	})

	t.Run("seeking agent on the pointer stays put", func(t *testing.T) {
		target := geometry.Vector3D{X: 120, Y: 80}
		host := &scriptedHost{w: 400, h: 400, pointer: target, values: []float64{0.9}}
		pop := NewPopulation(0, geometry.Zero(), host)
		pop.AddAgent(behavior.NewDefault(400, 400, target))

		for i := 0; i < 20; i++ {
			pop.RunTick()
		}

		a := pop.Agents()[0]
		assert.Equal(t, geometry.Zero(), a.Velocity)
		assert.Equal(t, target, a.Position)
		assert.Equal(t, geometry.Zero(), a.Steer(target, false))
	})

	t.Run("same seed gives the same trajectories", func(t *testing.T) {
		run := func() []geometry.Vector3D {
			host := NewStaticHost(500, 500, geometry.Vector3D{X: 250, Y: 250}, 99)
			pop := NewPopulation(30, geometry.Zero(), host)
			for i := 0; i < 50; i++ {
				pop.RunTick()
			}
			var out []geometry.Vector3D
			for _, a := range pop.Agents() {
				out = append(out, a.Position)
			}
			return out
		}
		assert.Equal(t, run(), run())
	})
}

func TestPopulation_neighbors(t *testing.T) {
	host := NewStaticHost(100, 100, geometry.Zero(), 5)

	live := NewPopulation(3, geometry.Zero(), host)
	got := live.neighbors()
	require.Len(t, got, 3)
	for i, a := range live.agents {
		assert.Same(t, a, got[i])
	}

	frozen := NewPopulation(3, geometry.Zero(), host, WithNeighborPolicy(Snapshot))
	got = frozen.neighbors()
	require.Len(t, got, 3)
	for i, a := range frozen.agents {
		assert.NotSame(t, a, got[i])
		assert.Equal(t, a.Position, got[i].Position)
		assert.Equal(t, a.Velocity, got[i].Velocity)
	}

	frozen.agents[0].Position = geometry.Vector3D{X: -50}
	assert.NotEqual(t, frozen.agents[0].Position, got[0].Position)
}

func TestPopulation_SnapshotPolicyRuns(t *testing.T) {
	host := NewStaticHost(200, 200, geometry.Vector3D{X: 100, Y: 100}, 11)
	pop := NewPopulation(20, geometry.Zero(), host, WithNeighborPolicy(Snapshot))
	for i := 0; i < 30; i++ {
		pop.RunTick()
	}
	assert.Equal(t, 20, pop.Len())
	assert.Equal(t, "snapshot", Snapshot.String())

	pop.SetNeighborPolicy(LiveRead)
	assert.Equal(t, LiveRead, pop.NeighborPolicy())
	got := pop.neighbors()
	assert.Same(t, pop.agents[0], got[0])
}

func TestPopulation_Render(t *testing.T) {
	host := NewStaticHost(100, 100, geometry.Zero(), 4)
	pop := NewPopulation(0, geometry.Zero(), host)

	first := behavior.NewDefault(100, 100, geometry.Zero())
	first.Velocity = geometry.Vector3D{X: 1}
	second := behavior.NewDefault(100, 100, geometry.Zero())
	second.Velocity = geometry.Vector3D{Y: -1}
	pop.AddAgent(first)
	pop.AddAgent(second)

	var seen []*behavior.Agent
	pop.Render(func(a *behavior.Agent) {
		seen = append(seen, a)
	})

	require.Len(t, seen, 2)
	assert.Same(t, first, seen[0])
	assert.Same(t, second, seen[1])
	assert.InDelta(t, geometry.Radians(90), first.Heading, 1e-12)
	assert.InDelta(t, 0.0, second.Heading, 1e-12)
}

func TestPopulation_AddAgent(t *testing.T) {
	host := NewStaticHost(300, 200, geometry.Zero(), 6)
	origin := geometry.Vector3D{X: 30, Y: 40}
	pop := NewPopulation(0, origin, host)
	require.True(t, pop.IsEmpty())

	pop.AddAgent(nil)

	require.Equal(t, 1, pop.Len())
	a := pop.Agents()[0]
	assert.Equal(t, origin, a.Position)
	assert.Equal(t, behavior.DefaultRadius, a.Radius)
	assert.Equal(t, behavior.DefaultMaxSpeed, a.MaxSpeed)
	w, h := a.Bounds()
	assert.Equal(t, 300.0, w)
	assert.Equal(t, 200.0, h)
	assert.Equal(t, behavior.DefaultLifetime, a.Lifetime)

	short := NewPopulation(0, origin, host, WithLifetime(2000))
	short.AddAgent(nil)
	assert.Equal(t, 2000.0, short.Agents()[0].Lifetime)

	custom := behavior.NewDefault(300, 200, origin)
	custom.Lifetime = 7
	short.AddAgent(custom)
	assert.Equal(t, 7.0, short.Agents()[1].Lifetime)
}

func TestPopulation_NeighborPolicyTrajectories(t *testing.T) {
	// first moves toward second before second scans its neighbors
	run := func(policy NeighborPolicy) (first, second *behavior.Agent) {
		host := &scriptedHost{w: 400, h: 400, pointer: geometry.Vector3D{X: 300, Y: 300}, values: []float64{0.9}}
		pop := NewPopulation(0, geometry.Zero(), host, WithNeighborPolicy(policy))

		first = behavior.NewDefault(400, 400, geometry.Vector3D{X: 100, Y: 100})
		first.Velocity = geometry.Vector3D{X: 10}
		second = behavior.NewDefault(400, 400, geometry.Vector3D{X: 120, Y: 100})
		pop.AddAgent(first)
		pop.AddAgent(second)

		pop.RunTick()
		return first, second
	}

	liveFirst, liveSecond := run(LiveRead)
	frozenFirst, frozenSecond := run(Snapshot)

	// nothing has moved yet when the first agent scans
	assert.Equal(t, liveFirst.Velocity, frozenFirst.Velocity)
	assert.Equal(t, liveFirst.Position, frozenFirst.Position)

	assert.False(t, liveSecond.Velocity.Eq(frozenSecond.Velocity),
		"live %s and snapshot %s should differ", liveSecond.Velocity, frozenSecond.Velocity)

	// under Snapshot the second agent saw the first at (100, 100)
	pre := behavior.NewDefault(400, 400, geometry.Vector3D{X: 100, Y: 100})
	pre.Velocity = geometry.Vector3D{X: 10}
	want := behavior.NewDefault(400, 400, geometry.Vector3D{X: 120, Y: 100})
	want.Seek(geometry.Vector3D{X: 300, Y: 300})
	want.Run([]*behavior.Agent{pre, want})
	assert.True(t, want.Velocity.Eq(frozenSecond.Velocity), "got %s, want %s", frozenSecond.Velocity, want.Velocity)
}

func BenchmarkPopulation_RunTick(b *testing.B) {
	host := NewStaticHost(1000, 800, geometry.Vector3D{X: 500, Y: 400}, 1)
	pop := NewPopulation(300, geometry.Zero(), host, WithLifetime(1e12))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pop.RunTick()
	}
}
