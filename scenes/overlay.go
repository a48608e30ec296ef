package scenes

import (
	"fmt"
	"sync"

	"github.com/automoto/memory-ninja/assets"
	"github.com/automoto/memory-ninja/assets/sfx"
	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/core"
	"github.com/automoto/memory-ninja/logging"
	"github.com/automoto/memory-ninja/render"
	"github.com/automoto/memory-ninja/systems"
	"github.com/automoto/memory-ninja/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi/ecs"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// Test fruits use ids far above anything a monitor hands out
const testTargetBase = 1 << 30

// OverlayDeps are what main wires into the scene
type OverlayDeps struct {
	Logger   zerolog.Logger
	Notifier core.Notifier
	Gate     *core.Toggle
}

// OverlayScene captures the pointer over a transparent window, pumps the
// simulation once per ebiten update and draws whatever it handed over.
type OverlayScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	once         sync.Once

	sim     *core.Context
	overlay *render.Overlay
	audio   *render.Audio
	hud     *ui.HUD
	gate    *core.Toggle
	log     zerolog.Logger

	lastX, lastY int
	hasCursor    bool
	touchID      ebiten.TouchID
	touching     bool
	testCount    int
}

func NewOverlayScene(sc SceneChanger, cfg config.GameConfig, deps OverlayDeps) (*OverlayScene, error) {
	if deps.Gate == nil {
		deps.Gate = core.NewToggle(true)
	}
	o := &OverlayScene{
		sceneChanger: sc,
		overlay:      render.NewOverlay(cfg, assets.NewSpriteCache()),
		audio:        render.NewAudio(cfg.Audio, logging.Component(deps.Logger, "audio")),
		gate:         deps.Gate,
		log:          logging.Component(deps.Logger, "scene"),
	}

	sim, err := core.New(cfg, core.Deps{
		Logger:   deps.Logger,
		Notifier: deps.Notifier,
		Gate:     deps.Gate,
		Renderer: o.overlay,
		OnSlice:  o.onSlice,
	})
	if err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}
	o.sim = sim

	o.hud = ui.NewHUD(deps.Gate.Enabled(), deps.Gate.Flip, sim.ResetStats, o.spawnTest)
	return o, nil
}

// Sim exposes the simulation so producers on other goroutines can Submit
func (o *OverlayScene) Sim() *core.Context { return o.sim }

func (o *OverlayScene) Update() {
	o.once.Do(o.configure)

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		o.overlay.Debug = !o.overlay.Debug
	}
	o.hud.Update()
	o.capturePointer()
	o.sim.Pump()
	o.hud.SetStats(o.sim.Stats(), systems.CountAll(o.sim.World()))

	o.ecs.Update()
}

func (o *OverlayScene) Draw(screen *ebiten.Image) {
	// Screen stays transparent; only simulation output and the HUD are drawn
	if o.ecs == nil {
		return
	}
	o.ecs.Draw(screen)
	o.hud.Draw(screen)
}

// Layout forwards window size changes to the simulation
func (o *OverlayScene) Layout(width, height int) {
	vp := o.sim.Viewport()
	if width == vp.Width && height == vp.Height {
		return
	}
	o.sim.Submit(core.Resize{Width: width, Height: height})
}

func (o *OverlayScene) Close() error {
	return o.sim.Close()
}

func (o *OverlayScene) configure() {
	o.ecs = ecs.NewECS(o.sim.World())

	// Audio runs after the pump so slice sounds play on the same update
	o.ecs.AddSystem(o.audio.Update)

	o.overlay.Register(o.ecs)
}

// capturePointer turns cursor movement and touches into pointer inputs.
// The cursor slices without a button held.
func (o *OverlayScene) capturePointer() {
	if o.captureTouch() {
		return
	}

	x, y := ebiten.CursorPosition()
	if o.hasCursor && x == o.lastX && y == o.lastY {
		return
	}
	o.lastX, o.lastY, o.hasCursor = x, y, true
	if o.hud.Contains(x, y) {
		return
	}
	o.sim.Submit(core.PointerSample{X: float64(x), Y: float64(y)})
}

// captureTouch follows the first finger down. It reports whether touch
// input was handled this update.
func (o *OverlayScene) captureTouch() bool {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		if o.touching {
			break
		}
		o.touchID, o.touching = id, true
		o.sim.Submit(core.PointerLift{})
	}
	if !o.touching {
		return false
	}

	if inpututil.IsTouchJustReleased(o.touchID) {
		o.touching = false
		o.sim.Submit(core.PointerLift{})
		return true
	}

	x, y := ebiten.TouchPosition(o.touchID)
	if !o.hud.Contains(x, y) {
		o.sim.Submit(core.PointerSample{X: float64(x), Y: float64(y)})
	}
	return true
}

func (o *OverlayScene) onSlice(out systems.SliceOutcome) {
	o.audio.Queue(sfx.SoundSlice)
	if out.Juice > 0 {
		o.audio.Queue(sfx.SoundSplat)
	}
}

func (o *OverlayScene) spawnTest() {
	o.testCount++
	ok := o.sim.Submit(core.SpawnCommand{
		TargetID:     testTargetBase + o.testCount,
		DisplayTitle: fmt.Sprintf("Test fruit %d", o.testCount),
	})
	if !ok {
		o.log.Warn().Msg("input queue full, test fruit dropped")
	}
}
