package components

import "github.com/yohamta/donburi"

// HalfData is one piece of a sliced fruit
type HalfData struct {
	ParentID uint64
	Kind     int
	Size     float64
	Side     int     // -1 left piece, 1 right piece
	Angle    float64 // slice angle in radians, orients the cut edge
	StartY   float64
	Opacity  float64
}

var Half = donburi.NewComponentType[HalfData]()
