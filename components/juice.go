package components

import (
	"image/color"

	"github.com/yohamta/donburi"
)

// JuiceData is a splash particle. Life runs from 1 down to 0.
type JuiceData struct {
	Life   float64
	Radius float64
	Color  color.RGBA
}

var Juice = donburi.NewComponentType[JuiceData]()
