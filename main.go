package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/core"
	"github.com/automoto/memory-ninja/fonts"
	"github.com/automoto/memory-ninja/logging"
	"github.com/automoto/memory-ninja/network"
	"github.com/automoto/memory-ninja/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

// layouter is implemented by scenes that track the window size
type layouter interface {
	Layout(width, height int)
}

type Game struct {
	scene Scene
	quit  atomic.Bool
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func (g *Game) Update() error {
	if g.quit.Load() {
		return ebiten.Termination
	}
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	if l, ok := g.scene.(layouter); ok {
		l.Layout(width, height)
	}
	return width, height
}

func main() {
	configPath := flag.String("config", "", "Config file (json, yaml or toml)")
	bridgeURL := flag.String("bridge", "", "Tab monitor websocket URL (overrides config)")
	logLevel := flag.String("log", "", "Log level (overrides config)")
	debug := flag.Bool("debug", false, "Draw hit boxes and circles (F3 toggles)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := logging.Console("info")
		bootLog.Fatal().Err(err).Msg("cannot load config")
	}
	if *bridgeURL != "" {
		cfg.Bridge.URL = *bridgeURL
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *debug {
		cfg.Debug = true
	}
	log := logging.Console(cfg.Log.Level)

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatal().Err(err).Msg("cannot load fonts")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := &Game{}
	deps := scenes.OverlayDeps{
		Logger: log,
		Gate:   core.NewToggle(true),
	}

	var bridge *network.Bridge
	if cfg.Bridge.URL != "" {
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		bridge, err = network.Dial(dialCtx, cfg.Bridge.URL, log)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("url", cfg.Bridge.URL).Msg("monitor unreachable, slicing locally")
		} else {
			deps.Notifier = bridge
			defer bridge.Close()
		}
	}

	scene, err := scenes.NewOverlayScene(g, cfg, deps)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot start overlay")
	}
	defer scene.Close()
	g.ChangeScene(scene)

	if bridge != nil {
		go runBridge(ctx, bridge, scene.Sim(), log)
	}
	go func() {
		<-ctx.Done()
		g.quit.Store(true)
	}()

	ebiten.SetWindowTitle("Memory Ninja")
	ebiten.SetWindowSize(cfg.Viewport.Width, cfg.Viewport.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetTPS(cfg.Scheduler.TickRate)

	log.Info().Int("width", cfg.Viewport.Width).Int("height", cfg.Viewport.Height).Msg("starting overlay")
	if err := ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{ScreenTransparent: true}); err != nil {
		log.Error().Err(err).Msg("overlay stopped")
	}
}

func runBridge(ctx context.Context, bridge *network.Bridge, sim *core.Context, log zerolog.Logger) {
	submit := func(cmd core.SpawnCommand) bool {
		return sim.Submit(cmd)
	}
	err := bridge.Run(ctx, submit)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, network.ErrClosed) {
		log.Warn().Err(err).Msg("monitor connection lost")
	}
}
