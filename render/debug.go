package render

import (
	"fmt"
	"image/color"

	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	debugBox    = color.RGBA{0, 255, 255, 255}
	debugProbe  = color.RGBA{0, 255, 0, 255}
	debugCircle = color.RGBA{255, 0, 0, 255}
)

// DrawDebug outlines the broadphase boxes and the exact hit circles.
func (o *Overlay) DrawDebug(e *ecs.ECS, screen *ebiten.Image) {
	if !o.Debug {
		return
	}

	if spaceEntry, ok := components.Space.First(e.World); ok {
		space := components.Space.Get(spaceEntry)
		for _, obj := range space.Objects() {
			x := obj.X - space.Pad
			y := obj.Y - space.Pad

			c := debugBox
			if obj.HasTags(tags.ResolvProbe) {
				c = debugProbe
			}

			vector.FillRect(screen, float32(x), float32(y), float32(obj.W), 1, c, false)
			vector.FillRect(screen, float32(x), float32(y+obj.H-1), float32(obj.W), 1, c, false)
			vector.FillRect(screen, float32(x), float32(y), 1, float32(obj.H), c, false)
			vector.FillRect(screen, float32(x+obj.W-1), float32(y), 1, float32(obj.H), c, false)
		}
	}

	radius := float32(o.cfg.Slice.DetectionRadius)
	components.Fruit.Each(e.World, func(entry *donburi.Entry) {
		fruit := components.Fruit.Get(entry)
		if fruit.State != components.FruitFlying {
			return
		}
		cx, cy := fruit.Center(components.Physics.Get(entry))
		vector.StrokeCircle(screen, float32(cx), float32(cy), radius, 1, debugCircle, true)
	})

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %0.1f  tick %d  trail %d", ebiten.ActualTPS(), o.tick, len(o.trail)),
		4, o.viewport.Height-16)
}
