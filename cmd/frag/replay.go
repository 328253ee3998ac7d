package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cfoust/frag/pkg/game/events"
	"github.com/cfoust/frag/pkg/recording"
)

func describe(frame events.Frame) []string {
	var lines []string
	add := func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	for _, damage := range frame.Damage {
		kind := "bodyshot"
		if damage.Headshot {
			kind = "headshot"
		}
		add("damage %d -> %d: %d (%s), health %d", damage.Attacker, damage.Victim, damage.Amount, kind, damage.Health)
	}
	for _, death := range frame.Deaths {
		add("death %d", death.Actor)
	}
	for _, respawn := range frame.Respawns {
		add("respawn %d at %v", respawn.Actor, respawn.Position)
	}
	for _, splatter := range frame.Splatters {
		add("splatter for %d at %v", splatter.Victim, splatter.Position)
	}
	for _, decal := range frame.Decals {
		add("decal from %d at %v", decal.Shooter, decal.Position)
	}
	for _, cue := range frame.Cues {
		add("cue %s for %d", cue.Sound, cue.Actor)
	}
	return lines
}

func important(frame events.Frame) bool {
	return len(frame.Damage) > 0 || len(frame.Deaths) > 0 || len(frame.Respawns) > 0
}

func replayCommand(out io.Writer, path string, quiet bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open recording: %w", err)
	}
	defer file.Close()

	reader, err := recording.NewReader(file)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	header := reader.Header()
	log.Info().
		Str("session", header.Session.String()).
		Time("created", header.Created).
		Uint("tickRate", header.TickRate).
		Msg("replaying")

	count := 0
	for {
		frame, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		count++

		if quiet && !important(frame) {
			continue
		}
		fmt.Fprintf(
			out,
			"tick %d (%s)\n  %s\n",
			frame.Tick,
			frame.Time,
			strings.Join(describe(frame), "\n  "),
		)
	}

	log.Info().Int("frames", count).Msg("replay finished")
	return nil
}
