// Package render draws the simulation onto a transparent ebiten screen.
package render

import (
	"time"

	"github.com/automoto/memory-ninja/assets"
	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/core"
	"github.com/automoto/memory-ninja/trail"
	"github.com/yohamta/donburi/ecs"
)

// Draw layers, lowest first
const (
	LayerParticles ecs.LayerID = iota
	LayerFruit
	LayerTrail
	LayerEffects
	LayerHUD
)

// Overlay keeps what the last tick handed over and draws it on demand.
// Ticks and draws both run on the ebiten goroutine.
type Overlay struct {
	cfg     config.GameConfig
	sprites *assets.SpriteCache

	trail    []trail.Point
	now      time.Time
	tick     uint64
	viewport config.ViewportConfig

	Debug bool
}

func NewOverlay(cfg config.GameConfig, sprites *assets.SpriteCache) *Overlay {
	return &Overlay{
		cfg:      cfg,
		sprites:  sprites,
		viewport: cfg.Viewport,
		Debug:    cfg.Debug,
	}
}

// Render copies the frame's trail; the world is read directly when drawing.
func (o *Overlay) Render(f core.Frame) {
	o.trail = append(o.trail[:0], f.Trail...)
	o.now = f.Now
	o.tick = f.Tick
	o.viewport = f.Viewport
}

// Register adds every draw pass to e in layer order.
func (o *Overlay) Register(e *ecs.ECS) {
	e.AddRenderer(LayerParticles, o.DrawJuice)
	e.AddRenderer(LayerParticles, o.DrawHalves)
	e.AddRenderer(LayerFruit, o.DrawFruits)
	e.AddRenderer(LayerTrail, o.DrawTrail)
	e.AddRenderer(LayerEffects, o.DrawEffects)
	e.AddRenderer(LayerHUD, o.DrawDebug)
}

func (o *Overlay) Tick() uint64 { return o.tick }
