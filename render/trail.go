package render

import (
	"image/color"

	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/shared/gamemath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

const (
	trailMinWidth = 2
	trailMaxWidth = 10
)

// DrawTrail strokes the blade trail, thin and faded at the tail and wide at
// the head.
func (o *Overlay) DrawTrail(_ *ecs.ECS, screen *ebiten.Image) {
	n := len(o.trail)
	if n < 2 {
		return
	}

	fade := o.cfg.Trail.FadeWindow.Seconds()
	for i := 1; i < n; i++ {
		p1, p2 := o.trail[i-1], o.trail[i]

		pos := float64(i) / float64(n-1)
		age := 0.0
		if fade > 0 {
			age = gamemath.Clamp(p2.Age(o.now).Seconds()/fade, 0, 1)
		}
		alpha := ease.OutQuad(float32(age), 1, -1, 1) * float32(pos)
		if alpha <= 0 {
			continue
		}

		width := trailMinWidth + float32(pos)*(trailMaxWidth-trailMinWidth)
		clr := blend(config.TrailTail, config.TrailHead, pos, alpha)
		vector.StrokeLine(screen, float32(p1.X), float32(p1.Y), float32(p2.X), float32(p2.Y), width, clr, true)
	}
}

// blend mixes two colors at r and applies alpha.
func blend(a, b color.RGBA, r float64, alpha float32) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(gamemath.Lerp(float64(x), float64(y), r))
	}
	return color.NRGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: uint8(gamemath.Clamp(float64(alpha), 0, 1) * 255),
	}
}
