package systems

import (
	"math/rand"

	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/systems/factory"
	"github.com/yohamta/donburi"
)

// SliceOutcome describes what one cut produced.
type SliceOutcome struct {
	FruitID uint64
	Kind    int
	Meta    components.SpawnMeta
	X, Y    float64 // fruit center at the moment of the cut
	Angle   float64
	Halves  [2]donburi.Entity
	Juice   int
	Capped  int // particles skipped because the live cap was reached
}

// Slice cuts the fruit behind ev. It marks the fruit sliced, spawns two halves,
// juice, a slash and a score text, and returns what the caller needs to tell
// the outside world. A fruit that is no longer flying is left alone and ok is
// false.
func Slice(w donburi.World, ev SliceEvent, rng *rand.Rand, cfg config.GameConfig) (SliceOutcome, bool) {
	if !w.Valid(ev.Entity) {
		return SliceOutcome{}, false
	}
	e := w.Entry(ev.Entity)
	if !e.HasComponent(components.Fruit) {
		return SliceOutcome{}, false
	}

	fruitRef := components.Fruit.Get(e)
	if fruitRef.State != components.FruitFlying || fruitRef.ID != ev.FruitID {
		return SliceOutcome{}, false
	}
	fruitRef.State = components.FruitSliced
	fruitRef.LingerTicks = cfg.Fruit.SlicedLingerTicks
	detachHitbox(w, e)

	// Copies: spawning below may move component storage.
	fruit := *fruitRef
	body := *components.Physics.Get(e)
	cx, cy := fruit.Center(&body)
	kind := config.Kind(fruit.Kind)

	out := SliceOutcome{
		FruitID: fruit.ID,
		Kind:    fruit.Kind,
		Meta:    fruit.Meta,
		X:       cx,
		Y:       cy,
		Angle:   ev.Angle,
	}

	out.Halves[0] = factory.CreateHalf(w, fruit, body, cx, cy, -1, ev.Angle, cfg.Half).Entity()
	out.Halves[1] = factory.CreateHalf(w, fruit, body, cx, cy, 1, ev.Angle, cfg.Half).Entity()

	n := cfg.Juice.Count
	if limit := cfg.Juice.MaxLive; limit > 0 {
		room := limit - CountJuice(w)
		if room < 0 {
			room = 0
		}
		if n > room {
			out.Capped = n - room
			n = room
		}
	}
	for i := 0; i < n; i++ {
		factory.CreateJuice(w, rng, cx, cy, ev.Angle, body.Gravity, kind, cfg.Juice)
	}
	out.Juice = n

	factory.CreateSlash(w, cx, cy, ev.Angle, cfg.Effect)
	factory.CreateScore(w, cx, cy, fruit.Meta.WeightMB, cfg.Effect)

	return out, true
}
