package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func main() {
	configFile := flag.String("config", "", "JSON or TOML configuration file")
	ticks := flag.Int("ticks", -1, "number of ticks to run, overrides the config (0 runs until the flock is gone)")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			log.DefaultLogger.Fatalf("loading %s: %v", *configFile, err)
		}
	}
	if *ticks >= 0 {
		cfg.Ticks = *ticks
	}

	logger := log.New(cfg.Level(), os.Stdout)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	system, err := actor.NewActorSystem("ParticleFlock", actor.WithLogger(logger))
	if err != nil {
		logger.Fatalf("failed to create actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		logger.Fatalf("failed to start actor system: %v", err)
	}
	defer func() {
		// ctx may be cancelled already
		if err := system.Stop(context.Background()); err != nil {
			logger.Errorf("failed to stop actor system: %v", err)
		}
	}()

	host := simulation.NewNoiseHost(cfg.WorldWidth, cfg.WorldHeight, cfg.NoiseFrequency, cfg.NoiseSeed)
	snapshotCh := make(chan *simulation.WorldSnapshot, 10)

	worldPID, err := system.Spawn(ctx, "world", simulation.NewWorldActor(snapshotCh, host, cfg))
	if err != nil {
		logger.Fatalf("failed to spawn world: %v", err)
	}

	for tick := 1; cfg.Ticks == 0 || tick <= cfg.Ticks; tick++ {
		if ctx.Err() != nil {
			logger.Info("interrupted")
			return
		}
		if err := actor.Tell(ctx, worldPID, timestamppb.Now()); err != nil {
			logger.Errorf("tick %d: %v", tick, err)
			return
		}
		// Pace the loop on the world, one frame out for every tick in.
		select {
		case snap := <-snapshotCh:
			if snap.IsFinished {
				logger.Infof("every agent is gone after %d ticks", snap.Tick)
				return
			}
		case <-ctx.Done():
			logger.Info("interrupted")
			return
		}
	}
	logger.Infof("ran %d ticks", cfg.Ticks)
}
