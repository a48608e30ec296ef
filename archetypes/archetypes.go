package archetypes

import (
	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/tags"
	"github.com/yohamta/donburi"
)

var (
	Fruit = newArchetype(
		tags.Fruit,
		components.Fruit,
		components.Physics,
		components.Object,
	)
	Half = newArchetype(
		tags.Half,
		components.Half,
		components.Physics,
	)
	Juice = newArchetype(
		tags.Juice,
		components.Juice,
		components.Physics,
	)
	Effect = newArchetype(
		tags.Effect,
		components.Effect,
		components.Tween,
	)
	Space = newArchetype(
		components.Space,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
