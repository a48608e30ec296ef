package render

import (
	"image/color"
	"math"

	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func (o *Overlay) DrawEffects(e *ecs.ECS, screen *ebiten.Image) {
	components.Effect.Each(e.World, func(entry *donburi.Entry) {
		fx := components.Effect.Get(entry)
		if fx.Alpha <= 0 {
			return
		}
		switch fx.Kind {
		case components.EffectSlash:
			drawSlash(screen, fx)
		case components.EffectScore:
			drawScore(screen, fx)
		}
	})
}

func drawSlash(screen *ebiten.Image, fx *components.EffectData) {
	dx := math.Cos(fx.Angle) * fx.Length / 2
	dy := math.Sin(fx.Angle) * fx.Length / 2
	x1, y1 := float32(fx.X-dx), float32(fx.Y-dy)
	x2, y2 := float32(fx.X+dx), float32(fx.Y+dy)

	a := fx.Alpha
	glow := withAlpha(config.SlashGlow, a*0.5)
	edge := withAlpha(config.White, a)
	vector.StrokeLine(screen, x1, y1, x2, y2, 10, glow, true)
	vector.StrokeLine(screen, x1, y1, x2, y2, 3, edge, true)
}

func drawScore(screen *ebiten.Image, fx *components.EffectData) {
	clr := withAlpha(config.ScoreGold, fx.Alpha)
	drawCentered(screen, fx.Text, fonts.Score.Get(), int(fx.X), int(fx.Y+fx.OffsetY), clr)
}

func withAlpha(c color.RGBA, a float64) color.NRGBA {
	a = math.Max(0, math.Min(1, a))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a * float64(c.A))}
}
