package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalid is returned when a loaded value cannot drive the simulation
var ErrInvalid = errors.New("invalid config")

// EnvPrefix prefixes environment overrides, e.g. NINJA_TRAIL_MAXLENGTH
const EnvPrefix = "NINJA"

// Load reads the optional config file at path on top of Default.
// Environment variables override both.
func Load(path string) (GameConfig, error) {
	v := viper.New()
	setDefaults(v, Default)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return GameConfig{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Default
	if err := v.Unmarshal(&cfg); err != nil {
		return GameConfig{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d GameConfig) {
	v.SetDefault("viewport.width", d.Viewport.Width)
	v.SetDefault("viewport.height", d.Viewport.Height)

	v.SetDefault("trail.maxLength", d.Trail.MaxLength)
	v.SetDefault("trail.fadeWindow", d.Trail.FadeWindow)
	v.SetDefault("trail.sampleInterval", d.Trail.SampleInterval)
	v.SetDefault("trail.minSpeed", d.Trail.MinSpeed)

	v.SetDefault("fruit.baseSize", d.Fruit.BaseSize)
	v.SetDefault("fruit.gravity", d.Fruit.Gravity)
	v.SetDefault("fruit.launchVelocityY", d.Fruit.LaunchVelocityY)
	v.SetDefault("fruit.launchJitter", d.Fruit.LaunchJitter)
	v.SetDefault("fruit.centerPull", d.Fruit.CenterPull)
	v.SetDefault("fruit.horizontalJitter", d.Fruit.HorizontalJitter)
	v.SetDefault("fruit.rotationSpeed", d.Fruit.RotationSpeed)
	v.SetDefault("fruit.spawnBand", d.Fruit.SpawnBand)
	v.SetDefault("fruit.removalMargin", d.Fruit.RemovalMargin)
	v.SetDefault("fruit.slicedLingerTicks", d.Fruit.SlicedLingerTicks)

	v.SetDefault("slice.detectionRadius", d.Slice.DetectionRadius)
	v.SetDefault("slice.gridCell", d.Slice.GridCell)

	v.SetDefault("half.impulse", d.Half.Impulse)
	v.SetDefault("half.spinMultiplier", d.Half.SpinMultiplier)
	v.SetDefault("half.fadeDistance", d.Half.FadeDistance)
	v.SetDefault("half.removalMargin", d.Half.RemovalMargin)

	v.SetDefault("juice.count", d.Juice.Count)
	v.SetDefault("juice.spread", d.Juice.Spread)
	v.SetDefault("juice.minSpeed", d.Juice.MinSpeed)
	v.SetDefault("juice.maxSpeed", d.Juice.MaxSpeed)
	v.SetDefault("juice.lift", d.Juice.Lift)
	v.SetDefault("juice.gravityScale", d.Juice.GravityScale)
	v.SetDefault("juice.lifeDecay", d.Juice.LifeDecay)
	v.SetDefault("juice.removalMargin", d.Juice.RemovalMargin)
	v.SetDefault("juice.maxLive", d.Juice.MaxLive)

	v.SetDefault("effect.slashDuration", d.Effect.SlashDuration)
	v.SetDefault("effect.slashLength", d.Effect.SlashLength)
	v.SetDefault("effect.scoreDuration", d.Effect.ScoreDuration)
	v.SetDefault("effect.scoreRise", d.Effect.ScoreRise)

	v.SetDefault("scheduler.tickRate", d.Scheduler.TickRate)
	v.SetDefault("scheduler.inputCapacity", d.Scheduler.InputCapacity)

	v.SetDefault("notify.timeout", d.Notify.Timeout)
	v.SetDefault("notify.defaultWeightMB", d.Notify.DefaultWeightMB)

	v.SetDefault("bridge.url", d.Bridge.URL)
	v.SetDefault("log.level", d.Log.Level)

	v.SetDefault("audio.sampleRate", d.Audio.SampleRate)
	v.SetDefault("audio.volume", d.Audio.Volume)

	v.SetDefault("seed", d.Seed)
	v.SetDefault("debug", d.Debug)
}

// Validate checks the values the simulation divides by or sizes buffers with
func (c GameConfig) Validate() error {
	switch {
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalid, c.Viewport.Width, c.Viewport.Height)
	case c.Scheduler.TickRate <= 0:
		return fmt.Errorf("%w: tick rate %d", ErrInvalid, c.Scheduler.TickRate)
	case c.Scheduler.InputCapacity <= 0:
		return fmt.Errorf("%w: input capacity %d", ErrInvalid, c.Scheduler.InputCapacity)
	case c.Trail.MaxLength <= 0:
		return fmt.Errorf("%w: trail max length %d", ErrInvalid, c.Trail.MaxLength)
	case c.Slice.GridCell <= 0:
		return fmt.Errorf("%w: grid cell %d", ErrInvalid, c.Slice.GridCell)
	case c.Trail.SampleInterval <= 0:
		return fmt.Errorf("%w: trail sample interval %v", ErrInvalid, c.Trail.SampleInterval)
	case c.Juice.MaxSpeed < c.Juice.MinSpeed:
		return fmt.Errorf("%w: juice speed range %v..%v", ErrInvalid, c.Juice.MinSpeed, c.Juice.MaxSpeed)
	}
	return nil
}
