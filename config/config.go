package config

import (
	"image/color"
	"math"
	"time"
)

// ViewportConfig holds the overlay dimensions read at start and on resize
type ViewportConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// TrailConfig contains pointer trail sampling values
type TrailConfig struct {
	MaxLength      int           `mapstructure:"maxLength"`      // Points kept, oldest dropped first
	FadeWindow     time.Duration `mapstructure:"fadeWindow"`     // Points at least this old are purged
	SampleInterval float64       `mapstructure:"sampleInterval"` // Spacing of interpolated points
	MinSpeed       float64       `mapstructure:"minSpeed"`       // Units per millisecond; at or below clears the trail
}

// FruitConfig contains fruit launch and flight values
type FruitConfig struct {
	BaseSize float64 `mapstructure:"baseSize"`

	// Launch
	Gravity          float64 `mapstructure:"gravity"`
	LaunchVelocityY  float64 `mapstructure:"launchVelocityY"`
	LaunchJitter     float64 `mapstructure:"launchJitter"`     // Full width of the vertical jitter range
	CenterPull       float64 `mapstructure:"centerPull"`       // Horizontal speed per unit of distance from center
	HorizontalJitter float64 `mapstructure:"horizontalJitter"` // Full width of the horizontal jitter range
	RotationSpeed    float64 `mapstructure:"rotationSpeed"`    // Full width of the spin range, degrees per tick
	SpawnBand        float64 `mapstructure:"spawnBand"`        // Fraction of the width used for spawn x

	// Lifecycle
	RemovalMargin     float64 `mapstructure:"removalMargin"`
	SlicedLingerTicks int     `mapstructure:"slicedLingerTicks"` // Ticks a sliced fruit stays frozen before removal
}

// SliceConfig contains hit detection values
type SliceConfig struct {
	DetectionRadius float64 `mapstructure:"detectionRadius"`
	GridCell        int     `mapstructure:"gridCell"` // Broadphase cell size
}

// HalfConfig contains values for the two pieces of a sliced fruit
type HalfConfig struct {
	Impulse        float64 `mapstructure:"impulse"`
	SpinMultiplier float64 `mapstructure:"spinMultiplier"`
	FadeDistance   float64 `mapstructure:"fadeDistance"` // Fall distance at which opacity reaches zero
	RemovalMargin  float64 `mapstructure:"removalMargin"`
}

// JuiceConfig contains juice particle values
type JuiceConfig struct {
	Count         int     `mapstructure:"count"`
	Spread        float64 `mapstructure:"spread"` // Half-angle around the slice direction, radians
	MinSpeed      float64 `mapstructure:"minSpeed"`
	MaxSpeed      float64 `mapstructure:"maxSpeed"`
	Lift          float64 `mapstructure:"lift"` // Max extra upward speed
	GravityScale  float64 `mapstructure:"gravityScale"`
	LifeDecay     float64 `mapstructure:"lifeDecay"`
	RemovalMargin float64 `mapstructure:"removalMargin"`
	MaxLive       int     `mapstructure:"maxLive"` // 0 disables the cap
}

// EffectConfig contains slash and score text timings
type EffectConfig struct {
	SlashDuration time.Duration `mapstructure:"slashDuration"`
	SlashLength   float64       `mapstructure:"slashLength"`
	ScoreDuration time.Duration `mapstructure:"scoreDuration"`
	ScoreRise     float64       `mapstructure:"scoreRise"`
}

// SchedulerConfig contains tick and input queue sizing
type SchedulerConfig struct {
	TickRate      int `mapstructure:"tickRate"`
	InputCapacity int `mapstructure:"inputCapacity"`
}

// NotifyConfig contains outbound slice notification values
type NotifyConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	DefaultWeightMB int           `mapstructure:"defaultWeightMB"`
}

// BridgeConfig points at the external monitor. Empty URL means local acks only.
type BridgeConfig struct {
	URL string `mapstructure:"url"`
}

// LogConfig contains logging values
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// AudioConfig contains slice sound values
type AudioConfig struct {
	SampleRate int     `mapstructure:"sampleRate"`
	Volume     float64 `mapstructure:"volume"`
}

// GameConfig holds everything the simulation and overlay read
type GameConfig struct {
	Viewport  ViewportConfig  `mapstructure:"viewport"`
	Trail     TrailConfig     `mapstructure:"trail"`
	Fruit     FruitConfig     `mapstructure:"fruit"`
	Slice     SliceConfig     `mapstructure:"slice"`
	Half      HalfConfig      `mapstructure:"half"`
	Juice     JuiceConfig     `mapstructure:"juice"`
	Effect    EffectConfig    `mapstructure:"effect"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Bridge    BridgeConfig    `mapstructure:"bridge"`
	Log       LogConfig       `mapstructure:"log"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Seed      int64           `mapstructure:"seed"` // 0 picks a time-based seed
	Debug     bool            `mapstructure:"debug"` // draw hit boxes and circles
}

// TickDuration is the wall time of one tick
func (c GameConfig) TickDuration() time.Duration {
	if c.Scheduler.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Scheduler.TickRate)
}

// Default is the global configuration. Load starts from a copy of it.
var Default GameConfig

// Shared RGBA color constants
var (
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	TrailHead = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	TrailTail = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	SlashGlow = color.RGBA{R: 255, G: 255, B: 220, A: 255}
	ScoreGold = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	HUDPanel  = color.RGBA{R: 0, G: 0, B: 0, A: 150}
)

func init() {
	Default = GameConfig{
		Viewport: ViewportConfig{
			Width:  1280,
			Height: 800,
		},

		Trail: TrailConfig{
			MaxLength:      80,
			FadeWindow:     800 * time.Millisecond,
			SampleInterval: 8,
			MinSpeed:       0.3,
		},

		Fruit: FruitConfig{
			BaseSize: 150,

			Gravity:          0.4,
			LaunchVelocityY:  -28,
			LaunchJitter:     2,
			CenterPull:       0.015,
			HorizontalJitter: 2,
			RotationSpeed:    5,
			SpawnBand:        0.4,

			RemovalMargin:     200,
			SlicedLingerTicks: 6, // ~100ms at 60 ticks/s
		},

		Slice: SliceConfig{
			DetectionRadius: 80,
			GridCell:        64,
		},

		Half: HalfConfig{
			Impulse:        8,
			SpinMultiplier: 2,
			FadeDistance:   500,
			RemovalMargin:  200,
		},

		Juice: JuiceConfig{
			Count:         30,
			Spread:        0.4 * math.Pi,
			MinSpeed:      5,
			MaxSpeed:      15,
			Lift:          5,
			GravityScale:  0.3,
			LifeDecay:     0.02,
			RemovalMargin: 100,
			MaxLive:       1500,
		},

		Effect: EffectConfig{
			SlashDuration: 300 * time.Millisecond,
			SlashLength:   200,
			ScoreDuration: 1500 * time.Millisecond,
			ScoreRise:     100,
		},

		Scheduler: SchedulerConfig{
			TickRate:      60,
			InputCapacity: 256,
		},

		Notify: NotifyConfig{
			Timeout:         5 * time.Second,
			DefaultWeightMB: 50,
		},

		Log: LogConfig{
			Level: "info",
		},

		Audio: AudioConfig{
			SampleRate: 44100,
			Volume:     0.5,
		},
	}
}
