package components

import (
	"github.com/yohamta/donburi"
)

// PhysicsData is the kinematic state of anything that flies.
// X, Y is the top-left of a fruit and the center of halves and juice.
type PhysicsData struct {
	X, Y          float64
	SpeedX        float64
	SpeedY        float64
	Gravity       float64
	Rotation      float64 // degrees
	RotationSpeed float64 // degrees per tick
}

var Physics = donburi.NewComponentType[PhysicsData]()
