package factory

import (
	"math"
	"math/rand"

	"github.com/automoto/memory-ninja/archetypes"
	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/shared/gamemath"
	"github.com/yohamta/donburi"
)

// CreateJuice spawns one splash particle fanning out around the slice angle.
func CreateJuice(w donburi.World, rng *rand.Rand, x, y, angle, gravity float64, kind config.FruitKind, cfg config.JuiceConfig) *donburi.Entry {
	juice := archetypes.Juice.Spawn(w)

	a := angle + gamemath.Jitter(rng.Float64(), 2*cfg.Spread)
	speed := gamemath.RandomRange(rng.Float64(), cfg.MinSpeed, cfg.MaxSpeed)
	lift := rng.Float64() * cfg.Lift

	components.Physics.SetValue(juice, components.PhysicsData{
		X:       x,
		Y:       y,
		SpeedX:  math.Cos(a) * speed,
		SpeedY:  math.Sin(a)*speed - lift,
		Gravity: gravity * cfg.GravityScale,
	})
	components.Juice.SetValue(juice, components.JuiceData{
		Life:   1,
		Radius: 3 + rng.Float64()*3,
		Color:  kind.Juice,
	})

	return juice
}
