package render

import (
	"github.com/automoto/memory-ninja/assets"
	"github.com/automoto/memory-ninja/assets/sfx"
	"github.com/automoto/memory-ninja/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi/ecs"
)

// Audio plays queued sound effects once per frame.
type Audio struct {
	loader  *assets.AudioLoader
	volume  float64
	pending []sfx.SoundID
	log     zerolog.Logger
}

func NewAudio(cfg config.AudioConfig, log zerolog.Logger) *Audio {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(cfg.SampleRate)
	}
	loader := assets.NewAudioLoader(ctx)
	loader.PreloadSFX()
	return &Audio{
		loader: loader,
		volume: cfg.Volume,
		log:    log,
	}
}

// Queue schedules a sound for the next Update.
func (a *Audio) Queue(id sfx.SoundID) {
	a.pending = append(a.pending, id)
}

func (a *Audio) Update(_ *ecs.ECS) {
	for _, id := range a.pending {
		a.play(id)
	}
	a.pending = a.pending[:0]
}

func (a *Audio) play(id sfx.SoundID) {
	if a.volume <= 0 {
		return
	}
	player, err := a.loader.LoadSFX(id)
	if err != nil {
		a.log.Warn().Err(err).Stringer("sound", id).Msg("cannot play")
		return
	}
	player.SetVolume(a.volume)
	player.Play()
}
