package assets

import (
	"bytes"

	"github.com/automoto/memory-ninja/assets/sfx"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioLoader synthesizes sound effects and caches the PCM bytes.
type AudioLoader struct {
	sfxCache map[sfx.SoundID][]byte
	context  *audio.Context
}

func NewAudioLoader(ctx *audio.Context) *AudioLoader {
	return &AudioLoader{
		sfxCache: make(map[sfx.SoundID][]byte),
		context:  ctx,
	}
}

// PreloadSFX renders every sound effect so the first cut does not stall.
func (l *AudioLoader) PreloadSFX() {
	for _, id := range sfx.All {
		l.pcm(id)
	}
}

// LoadSFX returns a fresh player for a sound effect.
func (l *AudioLoader) LoadSFX(id sfx.SoundID) (*audio.Player, error) {
	return l.context.NewPlayer(bytes.NewReader(l.pcm(id)))
}

func (l *AudioLoader) pcm(id sfx.SoundID) []byte {
	if b, ok := l.sfxCache[id]; ok {
		return b
	}
	b := sfx.Synthesize(id, l.context.SampleRate())
	l.sfxCache[id] = b
	return b
}
