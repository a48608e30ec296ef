package systems

import (
	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/systems/factory"
	"github.com/yohamta/donburi"
)

// GridPad is how far the broadphase grid reaches past each viewport edge.
func GridPad(cfg config.SliceConfig) float64 {
	return 2 * cfg.DetectionRadius
}

// ResizeSpace rebuilds the broadphase grid for a new viewport and moves every
// flying fruit into it.
func ResizeSpace(w donburi.World, vp config.ViewportConfig, cfg config.SliceConfig) {
	entry, ok := components.Space.First(w)
	if !ok {
		factory.CreateSpace(w, vp, GridPad(cfg), cfg.GridCell)
		entry = components.Space.MustFirst(w)
	}
	old := components.Space.Get(entry)

	var flying []*donburi.Entry
	components.Fruit.Each(w, func(e *donburi.Entry) {
		obj := components.Object.Get(e)
		if obj.Space != nil {
			old.Remove(obj.Object)
		}
		if components.Fruit.Get(e).State == components.FruitFlying {
			flying = append(flying, e)
		}
	})

	components.Space.SetValue(entry, factory.NewSpaceData(vp, GridPad(cfg), cfg.GridCell))
	space := components.Space.Get(entry)

	for _, e := range flying {
		obj := components.Object.Get(e).Object
		cx, cy := components.Fruit.Get(e).Center(components.Physics.Get(e))
		space.Add(obj)
		space.Place(obj, cx, cy, cfg.DetectionRadius)
	}
}
