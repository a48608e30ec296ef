package components

import (
	"time"

	"github.com/yohamta/donburi"
)

type FruitState int

const (
	FruitFlying FruitState = iota
	FruitSliced
	FruitRemoved
)

func (s FruitState) String() string {
	switch s {
	case FruitFlying:
		return "flying"
	case FruitSliced:
		return "sliced"
	case FruitRemoved:
		return "removed"
	}
	return "unknown"
}

// SpawnMeta is what the external monitor told us about the target
type SpawnMeta struct {
	TargetID     int
	Title        string
	URL          string
	IdleDuration time.Duration
	WeightMB     int
}

type FruitData struct {
	ID          uint64
	Kind        int
	Size        float64
	State       FruitState
	LingerTicks int // ticks left before a sliced fruit is removed
	Meta        SpawnMeta
}

// Center returns the hit-circle center for a fruit at p.
func (f *FruitData) Center(p *PhysicsData) (float64, float64) {
	return p.X + f.Size/2, p.Y + f.Size/2
}

var Fruit = donburi.NewComponentType[FruitData]()
