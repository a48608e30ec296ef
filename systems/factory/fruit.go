package factory

import (
	"math/rand"

	"github.com/automoto/memory-ninja/archetypes"
	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/shared/gamemath"
	"github.com/automoto/memory-ninja/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Launch holds every random choice for a new fruit. Drawing it up front keeps
// the fruit itself a deterministic function of the launch.
type Launch struct {
	Kind           int
	X, Y           float64
	SpeedX, SpeedY float64
	Rotation       float64
	RotationSpeed  float64
}

// NewLaunch draws a launch for a viewport. Fruits start just below the bottom
// edge somewhere in the central band and are pulled back toward the middle.
func NewLaunch(rng *rand.Rand, cfg config.FruitConfig, vp config.ViewportConfig) Launch {
	w, h := float64(vp.Width), float64(vp.Height)

	kinds := len(config.FruitKinds)
	if kinds == 0 {
		kinds = 1
	}

	l := Launch{Kind: rng.Intn(kinds)}
	l.X = w*(1-cfg.SpawnBand)/2 + rng.Float64()*w*cfg.SpawnBand
	l.Y = h + cfg.BaseSize
	l.SpeedX = -(l.X-w/2)*cfg.CenterPull + gamemath.Jitter(rng.Float64(), cfg.HorizontalJitter)
	l.SpeedY = cfg.LaunchVelocityY + gamemath.Jitter(rng.Float64(), cfg.LaunchJitter)
	l.RotationSpeed = gamemath.Jitter(rng.Float64(), cfg.RotationSpeed)
	l.Rotation = rng.Float64() * 360
	return l
}

func CreateFruit(w donburi.World, id uint64, meta components.SpawnMeta, l Launch, cfg config.GameConfig) *donburi.Entry {
	fruit := archetypes.Fruit.Spawn(w)

	size := cfg.Fruit.BaseSize * config.Kind(l.Kind).Size
	components.Fruit.SetValue(fruit, components.FruitData{
		ID:    id,
		Kind:  l.Kind,
		Size:  size,
		State: components.FruitFlying,
		Meta:  meta,
	})
	components.Physics.SetValue(fruit, components.PhysicsData{
		X:             l.X,
		Y:             l.Y,
		SpeedX:        l.SpeedX,
		SpeedY:        l.SpeedY,
		Gravity:       cfg.Fruit.Gravity,
		Rotation:      l.Rotation,
		RotationSpeed: l.RotationSpeed,
	})

	obj := resolv.NewObject(0, 0, 1, 1, tags.ResolvFruit)
	obj.Data = id
	components.Object.SetValue(fruit, components.ObjectData{Object: obj})

	if space, ok := SpaceOf(w); ok {
		space.Add(obj)
		space.Place(obj, l.X+size/2, l.Y+size/2, cfg.Slice.DetectionRadius)
	}

	return fruit
}
