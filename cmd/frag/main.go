package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/cfoust/frag/pkg/config"
	"github.com/cfoust/frag/pkg/version"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Version bool `help:"Print version information and exit." short:"v"`
	Debug   bool `help:"Whether to enable debug logging."`

	Run struct {
		Configs  []string `arg:"" optional:"" name:"configs" help:"Configuration files for the simulation." type:"existingfile"`
		Frames   uint64   `help:"Number of frames to simulate." default:"600"`
		Realtime bool     `help:"Pace frames with the wall clock instead of running as fast as possible."`
		Record   string   `help:"Write every frame's events to this file." type:"path"`
		Dummies  int      `help:"Number of dummies to spawn around the player. Negative uses the configured value." default:"-1"`
	} `cmd:"" help:"Run a headless match with a scripted player."`

	Config struct {
	} `cmd:"" help:"Write frag's default configuration to standard output."`

	Replay struct {
		File  string `arg:"" help:"Recording to read." type:"existingfile"`
		Quiet bool   `help:"Only print frames with damage, deaths or respawns." short:"q"`
	} `cmd:"" help:"Print the events in a recording."`
}

func writeError(err error) {
	log.Error().Err(err).Msg("command failed")
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("frag"),
		kong.Description("a headless FPS movement and combat simulation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if CLI.Version {
		fmt.Printf(
			"frag %s (commit %s)\n",
			version.Version,
			version.GitCommit,
		)
		fmt.Printf(
			"built %s\n",
			version.BuildTime,
		)
		os.Exit(0)
	}

	signals, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch ctx.Command() {
	case "run", "run <configs>":
		err = runCommand(signals, runOptions{
			Configs:  CLI.Run.Configs,
			Frames:   CLI.Run.Frames,
			Realtime: CLI.Run.Realtime,
			Record:   CLI.Run.Record,
			Dummies:  CLI.Run.Dummies,
		})
	case "config":
		_, err = os.Stdout.Write(config.DEFAULT)
	case "replay <file>":
		err = replayCommand(os.Stdout, CLI.Replay.File, CLI.Replay.Quiet)
	}

	if err != nil {
		writeError(err)
	}
}
