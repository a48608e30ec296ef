package factory

import (
	"math"

	"github.com/automoto/memory-ninja/archetypes"
	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/config"
	"github.com/yohamta/donburi"
)

// CreateHalf spawns one piece of a cut fruit at the fruit's center. side -1
// is pushed toward angle - 90 degrees and side 1 toward angle + 90 degrees.
func CreateHalf(w donburi.World, fruit components.FruitData, body components.PhysicsData, cx, cy float64, side int, angle float64, cfg config.HalfConfig) *donburi.Entry {
	half := archetypes.Half.Spawn(w)

	dir := angle + float64(side)*math.Pi/2
	components.Physics.SetValue(half, components.PhysicsData{
		X:             cx,
		Y:             cy,
		SpeedX:        math.Cos(dir)*cfg.Impulse + body.SpeedX,
		SpeedY:        math.Sin(dir)*cfg.Impulse + body.SpeedY,
		Gravity:       body.Gravity,
		RotationSpeed: body.RotationSpeed * cfg.SpinMultiplier,
	})
	components.Half.SetValue(half, components.HalfData{
		ParentID: fruit.ID,
		Kind:     fruit.Kind,
		Size:     fruit.Size,
		Side:     side,
		Angle:    angle,
		StartY:   cy,
		Opacity:  1,
	})

	return half
}
