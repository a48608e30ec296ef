package factory

import (
	"github.com/automoto/memory-ninja/archetypes"
	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/config"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

func CreateSpace(w donburi.World, vp config.ViewportConfig, pad float64, cell int) *donburi.Entry {
	space := archetypes.Space.Spawn(w)
	components.Space.SetValue(space, NewSpaceData(vp, pad, cell))
	return space
}

// NewSpaceData builds a grid covering the viewport plus pad on every side.
func NewSpaceData(vp config.ViewportConfig, pad float64, cell int) components.SpaceData {
	width := int(float64(vp.Width) + 2*pad)
	height := int(float64(vp.Height) + 2*pad)
	return components.SpaceData{
		Space:  resolv.NewSpace(width, height, cell, cell),
		Pad:    pad,
		Width:  float64((width / cell) * cell),
		Height: float64((height / cell) * cell),
	}
}

// SpaceOf returns the world's broadphase grid, if one was created.
func SpaceOf(w donburi.World) (*components.SpaceData, bool) {
	e, ok := components.Space.First(w)
	if !ok {
		return nil, false
	}
	return components.Space.Get(e), true
}
