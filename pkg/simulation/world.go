package simulation

import (
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// advancer is implemented by hosts that move on their own every frame.
type advancer interface {
	Advance()
}

// WorldActor owns the Population. Its mailbox serialises every tick, add and
// query, so the population is only ever touched by one goroutine.
// goakt v3 needs protobuf messages, the well known types are enough here:
//
//	*timestamppb.Timestamp  run one tick and push a WorldSnapshot
//	*wrapperspb.UInt32Value add that many default agents at the origin
//	*emptypb.Empty          reply with the agent count as *wrapperspb.Int64Value
type WorldActor struct {
	pop  *Population
	host Host
	cfg  *Config
	// Communication with the consumer (UI, recorder, logger)
	snapshotCh chan<- *WorldSnapshot

	// --- Benchmark Stats ---
	tickCount   int
	lastLogTime time.Time
}

var _ actor.Actor = (*WorldActor)(nil)

// NewWorldActor creates the world logic unit. snapshotCh may be nil.
func NewWorldActor(snapshotCh chan<- *WorldSnapshot, host Host, cfg *Config) *WorldActor {
	return &WorldActor{
		host:        host,
		cfg:         cfg,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	logger := ctx.ActorSystem().Logger()
	logger.Infof("World is spawning %d agents...", w.cfg.NumAgents)
	w.pop = NewPopulation(w.cfg.NumAgents, w.cfg.Origin(), w.host, w.cfg.PopulationOptions(logger)...)
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		ctx.Logger().Infof("World started: %d agents, %s neighbors", w.pop.Len(), w.cfg.Policy())

	// The main simulation step
	case *timestamppb.Timestamp:
		w.step(ctx)

	case *wrapperspb.UInt32Value:
		for i := uint32(0); i < msg.GetValue(); i++ {
			w.pop.AddAgent(nil)
		}
		ctx.Logger().Debugf("added %d agents at %s", msg.GetValue(), w.pop.Origin())

	case *emptypb.Empty:
		ctx.Response(wrapperspb.Int64(int64(w.pop.Len())))

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) step(ctx *actor.ReceiveContext) {
	if adv, ok := w.host.(advancer); ok {
		adv.Advance()
	}
	w.pop.RunTick()
	w.tickCount++

	snap := w.pop.Snapshot()
	w.logStats(ctx, snap)
	w.logBenchmarks(ctx)
	w.pushSnapshot(snap)
}

func (w *WorldActor) logStats(ctx *actor.ReceiveContext, snap *WorldSnapshot) {
	interval := w.cfg.StatsInterval
	if interval <= 0 || snap.Tick%uint64(interval) != 0 {
		return
	}
	st := snap.Stats()
	ctx.Logger().Infof("tick %d: %d agents, speed %.3f ± %.3f, centroid %s",
		snap.Tick, st.Count, st.MeanSpeed, st.SpeedStdDev, st.Centroid)
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 TICK RATE: %d/sec | Agents: %d", w.tickCount, w.pop.Len())
		w.tickCount = 0
		w.lastLogTime = time.Now()
	}
}

func (w *WorldActor) pushSnapshot(snap *WorldSnapshot) {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- snap:
	default:
		// consumer busy, skip frame
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is shutdown after %d ticks", w.pop.Ticks())
	return nil
}
