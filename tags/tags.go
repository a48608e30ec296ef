package tags

import "github.com/yohamta/donburi"

var (
	Fruit  = donburi.NewTag().SetName("Fruit")
	Half   = donburi.NewTag().SetName("Half")
	Juice  = donburi.NewTag().SetName("Juice")
	Effect = donburi.NewTag().SetName("Effect")
)

// Resolv tags for the hit index
const (
	ResolvFruit = "fruit"
	ResolvProbe = "probe"
)
