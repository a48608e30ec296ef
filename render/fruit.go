package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/core"
	"github.com/automoto/memory-ninja/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

var (
	fruitDrawOp = &ebiten.DrawImageOptions{}
	labelShadow = color.RGBA{A: 160}
)

func (o *Overlay) DrawFruits(e *ecs.ECS, screen *ebiten.Image) {
	components.Fruit.Each(e.World, func(entry *donburi.Entry) {
		fruit := components.Fruit.Get(entry)
		if fruit.State != components.FruitFlying {
			return
		}
		body := components.Physics.Get(entry)
		cx, cy := fruit.Center(body)

		img := o.sprites.Fruit(fruit.Kind, fruit.Size)
		fruitDrawOp.GeoM.Reset()
		fruitDrawOp.ColorScale.Reset()
		fruitDrawOp.GeoM.Translate(-fruit.Size/2, -fruit.Size/2)
		fruitDrawOp.GeoM.Rotate(body.Rotation * math.Pi / 180)
		fruitDrawOp.GeoM.Translate(cx, cy)
		screen.DrawImage(img, fruitDrawOp)

		drawLabel(screen, fruit, cx, cy)
	})
}

// drawLabel puts the target's title and weight under the fruit.
func drawLabel(screen *ebiten.Image, fruit *components.FruitData, cx, cy float64) {
	face := fonts.Label.Get()
	small := fonts.Small.Get()

	title := core.DisplayTitle(fruit.Meta.Title)
	weight := fmt.Sprintf("%d MB", fruit.Meta.WeightMB)

	y := int(cy + fruit.Size/2 + 16)
	drawCentered(screen, title, face, int(cx), y, config.White)
	drawCentered(screen, weight, small, int(cx), y+14, config.ScoreGold)
}

func drawCentered(screen *ebiten.Image, s string, face font.Face, cx, y int, clr color.Color) {
	w := font.MeasureString(face, s).Ceil()
	x := cx - w/2
	text.Draw(screen, s, face, x+1, y+1, labelShadow)
	text.Draw(screen, s, face, x, y, clr)
}

func (o *Overlay) DrawHalves(e *ecs.ECS, screen *ebiten.Image) {
	components.Half.Each(e.World, func(entry *donburi.Entry) {
		half := components.Half.Get(entry)
		if half.Opacity <= 0 {
			return
		}
		body := components.Physics.Get(entry)

		img := o.sprites.Half(half.Kind, half.Size, half.Side)
		fruitDrawOp.GeoM.Reset()
		fruitDrawOp.ColorScale.Reset()
		// the cut edge sits on the pivot
		if half.Side < 0 {
			fruitDrawOp.GeoM.Translate(-half.Size/2, -half.Size/2)
		} else {
			fruitDrawOp.GeoM.Translate(0, -half.Size/2)
		}
		fruitDrawOp.GeoM.Rotate(half.Angle - math.Pi/2 + body.Rotation*math.Pi/180)
		fruitDrawOp.GeoM.Translate(body.X, body.Y)
		fruitDrawOp.ColorScale.ScaleAlpha(float32(half.Opacity))
		screen.DrawImage(img, fruitDrawOp)
	})
}

func (o *Overlay) DrawJuice(e *ecs.ECS, screen *ebiten.Image) {
	components.Juice.Each(e.World, func(entry *donburi.Entry) {
		juice := components.Juice.Get(entry)
		body := components.Physics.Get(entry)

		life := math.Max(0, math.Min(1, juice.Life))
		clr := color.NRGBA{R: juice.Color.R, G: juice.Color.G, B: juice.Color.B, A: uint8(life * 255)}
		vector.FillCircle(screen, float32(body.X), float32(body.Y), float32(juice.Radius*(0.5+life/2)), clr, true)
	})
}
