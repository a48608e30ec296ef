package systems

import (
	"github.com/automoto/memory-ninja/components"
	"github.com/yohamta/donburi"
)

// UpdateEffects advances slash and score tweens by dt seconds and removes
// the ones that finished.
func UpdateEffects(w donburi.World, dt float32) {
	var toRemove []*donburi.Entry

	components.Effect.Each(w, func(e *donburi.Entry) {
		fx := components.Effect.Get(e)
		tw := components.Tween.Get(e)

		if tw.Alpha != nil {
			alpha, done := tw.Alpha.Update(dt)
			fx.Alpha = float64(alpha)
			fx.Done = done
		} else {
			fx.Done = true
		}
		if tw.Rise != nil {
			rise, _ := tw.Rise.Update(dt)
			fx.OffsetY = float64(rise)
		}

		if fx.Done {
			toRemove = append(toRemove, e)
		}
	})

	for _, e := range toRemove {
		w.Remove(e.Entity())
	}
}
