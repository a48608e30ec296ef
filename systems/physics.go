package systems

import (
	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/shared/gamemath"
	"github.com/automoto/memory-ninja/systems/factory"
	"github.com/yohamta/donburi"
)

// StepBody advances a body by one tick: velocity first, then position.
func StepBody(p *components.PhysicsData) {
	p.SpeedY += p.Gravity
	p.X += p.SpeedX
	p.Y += p.SpeedY
	p.Rotation += p.RotationSpeed
}

// StepFruit advances a fruit by one tick and returns its new state.
// Sliced fruits stay where they were cut until their linger runs out.
func StepFruit(f *components.FruitData, p *components.PhysicsData, height float64, cfg config.FruitConfig) components.FruitState {
	switch f.State {
	case components.FruitFlying:
		StepBody(p)
		if p.Y > height+cfg.RemovalMargin {
			f.State = components.FruitRemoved
		}
	case components.FruitSliced:
		f.LingerTicks--
		if f.LingerTicks <= 0 {
			f.State = components.FruitRemoved
		}
	}
	return f.State
}

// StepHalf advances a half and reports whether it is still visible.
func StepHalf(h *components.HalfData, p *components.PhysicsData, height float64, cfg config.HalfConfig) bool {
	StepBody(p)
	h.Opacity = 1
	if cfg.FadeDistance > 0 {
		h.Opacity = gamemath.Clamp(1-(p.Y-h.StartY)/cfg.FadeDistance, 0, 1)
	}
	return p.Y <= height+cfg.RemovalMargin && h.Opacity > 0
}

// StepJuice advances a particle and reports whether it survives. A particle
// dies on whichever comes first: its life running out or falling off-screen.
func StepJuice(j *components.JuiceData, p *components.PhysicsData, height float64, cfg config.JuiceConfig) bool {
	StepBody(p)
	j.Life -= cfg.LifeDecay
	return j.Life > 0 && p.Y <= height+cfg.RemovalMargin
}

// UpdatePhysics steps every fruit, half and juice particle once and removes
// whatever left play. It returns the IDs of fruits removed this tick.
func UpdatePhysics(w donburi.World, cfg config.GameConfig, height float64) []uint64 {
	removed := updateFruits(w, cfg, height)
	updateHalves(w, cfg.Half, height)
	updateJuice(w, cfg.Juice, height)
	return removed
}

func updateFruits(w donburi.World, cfg config.GameConfig, height float64) []uint64 {
	var toRemove []*donburi.Entry
	var ids []uint64

	space, hasSpace := factory.SpaceOf(w)

	components.Fruit.Each(w, func(e *donburi.Entry) {
		fruit := components.Fruit.Get(e)
		body := components.Physics.Get(e)

		if StepFruit(fruit, body, height, cfg.Fruit) == components.FruitRemoved {
			toRemove = append(toRemove, e)
			ids = append(ids, fruit.ID)
			return
		}

		if fruit.State == components.FruitFlying && hasSpace {
			cx, cy := fruit.Center(body)
			space.Place(components.Object.Get(e).Object, cx, cy, cfg.Slice.DetectionRadius)
		}
	})

	for _, e := range toRemove {
		destroyFruit(w, e)
	}
	return ids
}

func updateHalves(w donburi.World, cfg config.HalfConfig, height float64) {
	var toRemove []*donburi.Entry

	components.Half.Each(w, func(e *donburi.Entry) {
		if !StepHalf(components.Half.Get(e), components.Physics.Get(e), height, cfg) {
			toRemove = append(toRemove, e)
		}
	})

	for _, e := range toRemove {
		w.Remove(e.Entity())
	}
}

func updateJuice(w donburi.World, cfg config.JuiceConfig, height float64) {
	var toRemove []*donburi.Entry

	components.Juice.Each(w, func(e *donburi.Entry) {
		if !StepJuice(components.Juice.Get(e), components.Physics.Get(e), height, cfg) {
			toRemove = append(toRemove, e)
		}
	})

	for _, e := range toRemove {
		w.Remove(e.Entity())
	}
}

// detachHitbox takes a fruit out of the broadphase grid.
func detachHitbox(w donburi.World, e *donburi.Entry) {
	space, ok := factory.SpaceOf(w)
	if !ok {
		return
	}
	obj := components.Object.Get(e)
	if obj != nil && obj.Object != nil && obj.Space != nil {
		space.Remove(obj.Object)
	}
}

func destroyFruit(w donburi.World, e *donburi.Entry) {
	detachHitbox(w, e)
	w.Remove(e.Entity())
}
