package simulation

import (
	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/geometry"
	"github.com/tochemey/goakt/v3/log"
)

// NeighborPolicy selects which state the flocking scans read during a tick.
type NeighborPolicy int

const (
	// LiveRead scans the agents themselves: agents updated earlier in the
	// pass are seen with their new state, later ones with their old state.
	LiveRead NeighborPolicy = iota
	// Snapshot scans a copy of every agent taken before the pass starts.
	Snapshot
)

func (p NeighborPolicy) String() string {
	switch p {
	case LiveRead:
		return "live"
	case Snapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Behavior is the steering behavior picked for an agent on a given tick.
type Behavior int

const (
	Wander Behavior = iota
	Arrive
	Seek
)

func (b Behavior) String() string {
	switch b {
	case Seek:
		return "seek"
	case Arrive:
		return "arrive"
	case Wander:
		return "wander"
	default:
		return "unknown"
	}
}

// Range is a half-open [Min, Max) interval randomized values are drawn from.
type Range struct {
	Min float64 `json:"min" toml:"min"`
	Max float64 `json:"max" toml:"max"`
}

// Lerp maps t in [0, 1) onto the range.
func (r Range) Lerp(t float64) float64 {
	return r.Min + t*(r.Max-r.Min)
}

// Population owns the agents and drives them frame by frame.
// It is not safe for concurrent use: one RunTick then one Render per frame.
type Population struct {
	agents []*behavior.Agent
	origin geometry.Vector3D
	host   Host

	radius     float64
	speedRange Range
	forceRange Range
	lifetime   float64
	policy     NeighborPolicy
	logger     log.Logger

	ticks uint64
}

// Option configures a Population.
type Option func(*Population)

// WithLogger sets the logger, log.DiscardLogger by default.
func WithLogger(logger log.Logger) Option {
	return func(p *Population) { p.logger = logger }
}

// WithRadius sets the radius of spawned agents, 4 by default.
func WithRadius(radius float64) Option {
	return func(p *Population) { p.radius = radius }
}

// WithSpeedRange sets the range MaxSpeed is drawn from, [0, 20) by default.
func WithSpeedRange(r Range) Option {
	return func(p *Population) { p.speedRange = r }
}

// WithForceRange sets the range MaxForce is drawn from, [0, 6) by default.
func WithForceRange(r Range) Option {
	return func(p *Population) { p.forceRange = r }
}

// WithLifetime sets the starting lifetime, in ticks, of spawned agents.
func WithLifetime(ticks float64) Option {
	return func(p *Population) { p.lifetime = ticks }
}

// WithNeighborPolicy selects LiveRead (default) or Snapshot scans.
func WithNeighborPolicy(policy NeighborPolicy) Option {
	return func(p *Population) { p.policy = policy }
}

// NewPopulation spawns count agents spread uniformly over the host arena.
// origin is where AddAgent(nil) places default agents.
func NewPopulation(count int, origin geometry.Vector3D, host Host, opts ...Option) *Population {
	p := &Population{
		agents:     make([]*behavior.Agent, 0, count),
		origin:     origin,
		host:       host,
		radius:     4.0,
		speedRange: Range{Min: 0, Max: 20},
		forceRange: Range{Min: 0, Max: 6},
		lifetime:   behavior.DefaultLifetime,
		policy:     LiveRead,
		logger:     log.DiscardLogger,
	}
	for _, opt := range opts {
		opt(p)
	}

	w, h := host.Width(), host.Height()
	for i := 0; i < count; i++ {
		pos := geometry.Vector3D{X: host.Float64() * w, Y: host.Float64() * h}
		maxSpeed := p.speedRange.Lerp(host.Float64())
		maxForce := p.forceRange.Lerp(host.Float64())

		a := behavior.New(w, h, pos, p.radius, maxSpeed, maxForce)
		a.Lifetime = p.lifetime
		p.agents = append(p.agents, a)
	}
	p.logger.Debugf("spawned %d agents in a %.0fx%.0f arena (%s neighbors)", count, w, h, p.policy)
	return p
}

// pickBehavior draws the behavior of one agent for this tick.
func (p *Population) pickBehavior() Behavior {
	r := p.host.Float64() * 3
	switch {
	case r >= 2:
		return Seek
	case r >= 1:
		return Arrive
	default:
		return Wander
	}
}

func (p *Population) apply(a *behavior.Agent, b Behavior, pointer geometry.Vector3D) {
	switch b {
	case Seek:
		a.Seek(pointer)
	case Arrive:
		a.Arrive(pointer)
	default:
		a.Wander(p.host)
	}
}

// neighbors returns the list every agent flocks against during this pass.
func (p *Population) neighbors() []*behavior.Agent {
	if p.policy != Snapshot {
		return p.agents
	}
	frozen := make([]behavior.Agent, len(p.agents))
	view := make([]*behavior.Agent, len(p.agents))
	for i, a := range p.agents {
		frozen[i] = *a
		view[i] = &frozen[i]
	}
	return view
}

// RunTick advances every agent by one frame and drops the ones whose
// lifetime ran out. Each agent flocks against the whole population,
// itself included.
func (p *Population) RunTick() {
	pointer := p.host.Pointer()
	neighbors := p.neighbors()

	alive := make([]*behavior.Agent, 0, len(p.agents))
	for _, a := range p.agents {
		p.apply(a, p.pickBehavior(), pointer)
		a.Run(neighbors)
		if a.Dead() {
			p.logger.Debugf("agent %s died at %s", a.ID, a.Position)
			continue
		}
		alive = append(alive, a)
	}
	p.agents = alive
	p.ticks++
}

// Render refreshes the heading of each agent and hands it to visitor,
// once per agent in population order.
func (p *Population) Render(visitor func(*behavior.Agent)) {
	for _, a := range p.agents {
		a.UpdateHeading()
		visitor(a)
	}
}

// AddAgent appends a to the population. A nil agent is replaced by a
// default agent at the spawn origin, with the population's lifetime.
func (p *Population) AddAgent(a *behavior.Agent) {
	if a == nil {
		a = behavior.NewDefault(p.host.Width(), p.host.Height(), p.origin)
		a.Lifetime = p.lifetime
	}
	p.agents = append(p.agents, a)
}

// IsEmpty reports whether every agent is gone.
func (p *Population) IsEmpty() bool {
	return len(p.agents) == 0
}

// Len returns the number of live agents.
func (p *Population) Len() int {
	return len(p.agents)
}

// Agents returns a copy of the agent list, in population order.
func (p *Population) Agents() []*behavior.Agent {
	out := make([]*behavior.Agent, len(p.agents))
	copy(out, p.agents)
	return out
}

// Ticks returns how many times RunTick ran.
func (p *Population) Ticks() uint64 {
	return p.ticks
}

// NeighborPolicy returns the policy the next RunTick scans with.
func (p *Population) NeighborPolicy() NeighborPolicy {
	return p.policy
}

// SetNeighborPolicy switches the policy, effective from the next RunTick.
func (p *Population) SetNeighborPolicy(policy NeighborPolicy) {
	if p.policy != policy {
		p.logger.Debugf("neighbor policy %s -> %s", p.policy, policy)
	}
	p.policy = policy
}

// Origin returns the spawn origin of default agents.
func (p *Population) Origin() geometry.Vector3D {
	return p.origin
}
