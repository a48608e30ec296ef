package systems

import (
	"math/rand"
	"testing"

	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/config"
	"github.com/automoto/memory-ninja/systems/factory"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func testConfig() config.GameConfig {
	cfg := config.Default
	cfg.Viewport = config.ViewportConfig{Width: 1000, Height: 800}
	return cfg
}

func newTestWorld(cfg config.GameConfig) donburi.World {
	w := donburi.NewWorld()
	factory.CreateSpace(w, cfg.Viewport, 2*cfg.Slice.DetectionRadius, cfg.Slice.GridCell)
	return w
}

// spawnAt creates a fruit whose hit-circle is centered on (cx, cy).
func spawnAt(t *testing.T, w donburi.World, cfg config.GameConfig, id uint64, cx, cy float64) *donburi.Entry {
	t.Helper()
	size := cfg.Fruit.BaseSize * config.Kind(0).Size
	e := factory.CreateFruit(w, id, components.SpawnMeta{TargetID: int(id), WeightMB: 40}, factory.Launch{
		Kind: 0,
		X:    cx - size/2,
		Y:    cy - size/2,
	}, cfg)
	require.True(t, e.Valid())
	return e
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}
