package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

type EffectKind int

const (
	EffectSlash EffectKind = iota
	EffectScore
)

// EffectData is a short-lived decoration anchored where a fruit was cut
type EffectData struct {
	Kind   EffectKind
	X, Y   float64
	Angle  float64 // radians
	Length float64
	Text   string

	// Current tween outputs
	Alpha   float64
	OffsetY float64
	Done    bool
}

var Effect = donburi.NewComponentType[EffectData]()

// TweenData drives an effect over time. Rise may be nil.
type TweenData struct {
	Alpha *gween.Tween
	Rise  *gween.Tween
}

var Tween = donburi.NewComponentType[TweenData]()
