package factory

import (
	"fmt"

	"github.com/automoto/memory-ninja/archetypes"
	"github.com/automoto/memory-ninja/components"
	"github.com/automoto/memory-ninja/config"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// CreateSlash spawns the flash drawn along the cut.
func CreateSlash(w donburi.World, x, y, angle float64, cfg config.EffectConfig) *donburi.Entry {
	slash := archetypes.Effect.Spawn(w)
	components.Effect.SetValue(slash, components.EffectData{
		Kind:   components.EffectSlash,
		X:      x,
		Y:      y,
		Angle:  angle,
		Length: cfg.SlashLength,
		Alpha:  1,
	})
	components.Tween.SetValue(slash, components.TweenData{
		Alpha: gween.New(1, 0, float32(cfg.SlashDuration.Seconds()), ease.OutQuad),
	})
	return slash
}

// CreateScore spawns the floating "+N MB" text.
func CreateScore(w donburi.World, x, y float64, weightMB int, cfg config.EffectConfig) *donburi.Entry {
	score := archetypes.Effect.Spawn(w)
	d := float32(cfg.ScoreDuration.Seconds())
	components.Effect.SetValue(score, components.EffectData{
		Kind:  components.EffectScore,
		X:     x,
		Y:     y,
		Text:  fmt.Sprintf("+%d MB", weightMB),
		Alpha: 1,
	})
	components.Tween.SetValue(score, components.TweenData{
		Alpha: gween.New(1, 0, d, ease.InQuad),
		Rise:  gween.New(0, float32(-cfg.ScoreRise), d, ease.OutCubic),
	})
	return score
}
