package systems

import (
	"testing"

	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/systems/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestUpdateEffects_ExpireOnSchedule(t *testing.T) {
	cfg := testConfig()
	w := donburi.NewWorld()
	slash := factory.CreateSlash(w, 10, 20, 0.5, cfg.Effect)
	score := factory.CreateScore(w, 10, 20, 64, cfg.Effect)

	assert.Equal(t, "+64 MB", components.Effect.Get(score).Text)

	UpdateEffects(w, 0.31)
	assert.False(t, w.Valid(slash.Entity()))
	require.True(t, w.Valid(score.Entity()))

	fx := components.Effect.Get(score)
	assert.Greater(t, fx.Alpha, 0.0)
	assert.Less(t, fx.Alpha, 1.0)
	assert.Less(t, fx.OffsetY, 0.0)

	UpdateEffects(w, 1.3)
	assert.False(t, w.Valid(score.Entity()))
	assert.Zero(t, CountLive(w))
}
