// Command replay drives the simulation headlessly from a scripted input log.
//
//	replay -script swipes.jsonl -seed 7
//
// Each line is a JSON object such as {"t":120,"kind":"move","x":300,"y":420}
// or {"t":0,"kind":"spawn","id":3,"title":"Docs","weight":80}.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/logging"
)

func main() {
	scriptPath := flag.String("script", "", "JSON lines input script (required)")
	seed := flag.Int64("seed", 1, "Random seed")
	configPath := flag.String("config", "", "Config file (json, yaml or toml)")
	maxFrames := flag.Int("max-frames", 60*60*10, "Frame limit for the synthetic run")
	realtime := flag.Bool("realtime", false, "Play against the wall clock instead of a synthetic one")
	linger := flag.Duration("linger", 5*time.Second, "Realtime only: how long to keep running after the last event")
	logLevel := flag.String("log", "warn", "Log level")
	flag.Parse()

	log := logging.Console(*logLevel)
	if *scriptPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	cfg.Seed = *seed

	f, err := os.Open(*scriptPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open script")
	}
	events, err := ParseScript(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Str("script", *scriptPath).Msg("cannot parse script")
	}

	if *realtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		stats, err := ReplayRealtime(ctx, cfg, events, *linger, log)
		if err != nil {
			log.Error().Err(err).Msg("replay interrupted")
		}
		Summary{Stats: stats}.Write(os.Stdout)
		return
	}

	summary, err := Replay(cfg, events, *maxFrames, log)
	if err != nil {
		log.Fatal().Err(err).Msg("replay failed")
	}
	summary.Write(os.Stdout)
}
