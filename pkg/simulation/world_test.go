package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func startWorld(t *testing.T, cfg *Config, host Host, snapshotCh chan *WorldSnapshot) *actor.PID {
	t.Helper()
	ctx := context.Background()

	system, err := actor.NewActorSystem("FlockTest", actor.WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	require.NoError(t, system.Start(ctx))
	t.Cleanup(func() {
		_ = system.Stop(context.Background())
	})

	pid, err := system.Spawn(ctx, "world", NewWorldActor(snapshotCh, host, cfg))
	require.NoError(t, err)
	return pid
}

func nextSnapshot(t *testing.T, ch <-chan *WorldSnapshot) *WorldSnapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot from the world")
		return nil
	}
}

func askCount(t *testing.T, pid *actor.PID) int64 {
	t.Helper()
	resp, err := actor.Ask(context.Background(), pid, &emptypb.Empty{}, time.Second)
	require.NoError(t, err)
	count, ok := resp.(*wrapperspb.Int64Value)
	require.True(t, ok, "unexpected reply %T", resp)
	return count.GetValue()
}

func TestWorldActor_Ticks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldWidth, cfg.WorldHeight = 400, 300
	cfg.NumAgents = 12
	cfg.Lifetime = 3
	host := NewStaticHost(cfg.WorldWidth, cfg.WorldHeight, geometry.Vector3D{X: 200, Y: 150}, 1)
	snapshotCh := make(chan *WorldSnapshot, 10)
	pid := startWorld(t, cfg, host, snapshotCh)
	ctx := context.Background()

	assert.Equal(t, int64(12), askCount(t, pid))

	for tick := uint64(1); tick <= 2; tick++ {
		require.NoError(t, actor.Tell(ctx, pid, timestamppb.Now()))
		snap := nextSnapshot(t, snapshotCh)
		assert.Equal(t, tick, snap.Tick)
		assert.Len(t, snap.Agents, 12)
		assert.False(t, snap.IsFinished)
		for _, a := range snap.Agents {
			assert.Equal(t, float64(3-tick), a.Lifetime)
		}
	}

	require.NoError(t, actor.Tell(ctx, pid, timestamppb.Now()))
	snap := nextSnapshot(t, snapshotCh)
	assert.True(t, snap.IsFinished)
	assert.Empty(t, snap.Agents)
	assert.Equal(t, int64(0), askCount(t, pid))
}

func TestWorldActor_AddAgents(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumAgents = 2
	host := NewStaticHost(cfg.WorldWidth, cfg.WorldHeight, geometry.Zero(), 2)
	snapshotCh := make(chan *WorldSnapshot, 10)
	pid := startWorld(t, cfg, host, snapshotCh)
	ctx := context.Background()

	require.NoError(t, actor.Tell(ctx, pid, wrapperspb.UInt32(3)))
	assert.Equal(t, int64(5), askCount(t, pid))

	require.NoError(t, actor.Tell(ctx, pid, timestamppb.Now()))
	snap := nextSnapshot(t, snapshotCh)
	require.Len(t, snap.Agents, 5)
}

func TestWorldActor_NilChannel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumAgents = 4
	host := NewNoiseHost(cfg.WorldWidth, cfg.WorldHeight, cfg.NoiseFrequency, cfg.NoiseSeed)
	pid := startWorld(t, cfg, host, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, actor.Tell(ctx, pid, timestamppb.Now()))
	}
	// the Ask is queued behind the ticks
	assert.Equal(t, int64(4), askCount(t, pid))
}

func TestWorldActor_pushSnapshot(t *testing.T) {
	ch := make(chan *WorldSnapshot, 1)
	w := NewWorldActor(ch, NewStaticHost(10, 10, geometry.Zero(), 1), DefaultConfig())

	w.pushSnapshot(&WorldSnapshot{Tick: 1})
	w.pushSnapshot(&WorldSnapshot{Tick: 2})

	got := <-ch
	assert.Equal(t, uint64(1), got.Tick)
	assert.Empty(t, ch)
}
