package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/cfoust/frag/pkg/config"
	"github.com/cfoust/frag/pkg/game"
	"github.com/cfoust/frag/pkg/game/bot"
	"github.com/cfoust/frag/pkg/game/events"
	"github.com/cfoust/frag/pkg/pausableticker"
	"github.com/cfoust/frag/pkg/physics"
	"github.com/cfoust/frag/pkg/recording"
	"github.com/cfoust/frag/pkg/utils"
)

type runOptions struct {
	Configs  []string
	Frames   uint64
	Realtime bool
	Record   string
	// Dummies overrides the configured dummy count when not negative.
	Dummies int
}

type stats struct {
	hits      int
	headshots int
	kills     int
	respawns  int
	splatters int
	decals    int
}

func (s *stats) add(frame events.Frame) {
	for _, damage := range frame.Damage {
		s.hits++
		if damage.Headshot {
			s.headshots++
		}
	}
	s.kills += len(frame.Deaths)
	s.respawns += len(frame.Respawns)
	s.splatters += len(frame.Splatters)
	s.decals += len(frame.Decals)
}

func record(path string, tickRate uint, frames *utils.Subscriber[events.Frame]) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create recording: %w", err)
	}
	defer file.Close()

	writer, err := recording.NewWriter(file, recording.NewHeader(tickRate))
	if err != nil {
		return err
	}
	writer.SkipEmpty = true

	log.Info().
		Str("session", writer.Header().Session.String()).
		Msgf("recording to %s", path)

	var failed error
	for frame := range frames.Recv() {
		if failed != nil {
			continue
		}
		failed = writer.Write(frame)
	}
	if failed != nil {
		return failed
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("could not flush recording: %w", err)
	}
	log.Info().Int("frames", writer.Frames()).Msg("recording finished")
	return file.Close()
}

func runCommand(ctx context.Context, options runOptions) error {
	config, err := config.Process(options.Configs)
	if err != nil {
		return fmt.Errorf("could not load configuration: %w", err)
	}

	space := physics.NewSpace(config.Physics.GravityVector())
	buildArena(space)

	g := game.New(space, config.Game())
	g.SetCurrent(g.Spawn("player", spawnPosition))

	dummies := int(config.Simulation.Dummies)
	if options.Dummies >= 0 {
		dummies = options.Dummies
	}
	spawnDummies(g, dummies)

	player := bot.New(g)
	session := utils.NewSession(ctx)
	defer session.Cancel()

	topic := utils.NewTopic[events.Frame]()
	group, groupCtx := errgroup.WithContext(session.Ctx())

	var totals stats
	tally := topic.Subscribe(16)
	group.Go(func() error {
		for frame := range tally.Recv() {
			totals.add(frame)
		}
		return nil
	})

	if options.Record != "" {
		frames := topic.Subscribe(64)
		group.Go(func() error {
			return record(options.Record, config.Simulation.TickRate, frames)
		})
	}

	shots := 0
	interval := config.Simulation.TickInterval()
	step := func(elapsed time.Duration) error {
		command := player.Next()
		if command.Fire {
			shots++
		}
		g.Input(command)
		frame := g.Update(elapsed)
		session.Frame()
		return topic.Publish(groupCtx, frame)
	}

	log.Info().
		Uint64("frames", options.Frames).
		Int("dummies", dummies).
		Bool("realtime", options.Realtime).
		Msg("starting simulation")

	var loopErr error
	if options.Realtime {
		ticker := pausableticker.New(interval)
		for session.Frames() < options.Frames && loopErr == nil {
			select {
			case elapsed := <-ticker.C:
				loopErr = step(elapsed)
			case <-groupCtx.Done():
				loopErr = groupCtx.Err()
			}
		}
		ticker.Stop()
	} else {
		for session.Frames() < options.Frames && loopErr == nil {
			loopErr = step(interval)
		}
	}

	topic.Close()
	if err := group.Wait(); err != nil {
		return err
	}
	if loopErr != nil && ctx.Err() == nil {
		return loopErr
	}

	log.Info().
		Uint64("frames", session.Frames()).
		Dur("engineTime", g.Now()).
		Float64("fps", session.FrameRate()).
		Int("triggerFrames", shots).
		Int("hits", totals.hits).
		Int("headshots", totals.headshots).
		Int("kills", totals.kills).
		Int("respawns", totals.respawns).
		Int("splatters", totals.splatters).
		Int("decals", totals.decals).
		Msg("simulation finished")
	return nil
}
