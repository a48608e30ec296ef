// Package sfx synthesizes the overlay's sound effects as raw PCM.
package sfx

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
)

type SoundID int

const (
	SoundSlice SoundID = iota
	SoundSplat
)

// All lists every sound, in preload order.
var All = []SoundID{SoundSlice, SoundSplat}

func (s SoundID) String() string {
	switch s {
	case SoundSlice:
		return "slice"
	case SoundSplat:
		return "splat"
	}
	return fmt.Sprintf("sound(%d)", int(s))
}

// Synthesize renders a sound as 16-bit little-endian stereo PCM.
func Synthesize(id SoundID, sampleRate int) []byte {
	switch id {
	case SoundSplat:
		return render(sampleRate, 0.18, splat(rand.New(rand.NewSource(2))))
	default:
		return render(sampleRate, 0.22, swoosh(rand.New(rand.NewSource(1))))
	}
}

// wave returns a sample in [-1, 1] for time t of a sound lasting dur.
type wave func(t, dur float64) float64

func render(sampleRate int, dur float64, w wave) []byte {
	n := int(float64(sampleRate) * dur)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		v := int16(clamp(w(t, dur), -1, 1) * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}

// swoosh is filtered noise under a rising then falling envelope.
func swoosh(rng *rand.Rand) wave {
	var lp float64
	return func(t, dur float64) float64 {
		p := t / dur
		env := math.Sin(math.Pi*p) * (1 - p)
		cutoff := 0.05 + 0.4*p
		lp += cutoff * (rng.Float64()*2 - 1 - lp)
		return lp * env * 2.5
	}
}

// splat is a low thump with a noisy tail.
func splat(rng *rand.Rand) wave {
	return func(t, dur float64) float64 {
		decay := math.Exp(-t * 25)
		thump := math.Sin(2*math.Pi*(110-200*t)*t) * decay
		noise := (rng.Float64()*2 - 1) * math.Exp(-t*40) * 0.4
		return (thump + noise) * (1 - t/dur)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
