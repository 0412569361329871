package game

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/tomz197/avoider/internal/object"
	"github.com/tomz197/avoider/internal/physics"
)

// View resolution - the visible viewport in logical units, centred on the camera.
const (
	ViewWidth  = 640
	ViewHeight = 480
)

// Defaults shared by every preset.
const (
	DefaultParticleCapacity   = 100
	DefaultExplosionParticles = 12
	DefaultSpawnInterval      = time.Second
	DefaultSpawnDistance      = 400.0
	DefaultMinObstacleSpeed   = 2
	DefaultMaxObstacleSpeed   = 4
	DefaultSpawnJitter        = 20.0
	DefaultMaxObstacles       = 256
	DefaultDespawnDistance    = 1200.0
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid game config")

// SpawnCountPolicy selects how many obstacles each spawn batch holds.
type SpawnCountPolicy int

const (
	SpawnCountFixed  SpawnCountPolicy = iota // One per batch
	SpawnCountRamped                         // floor((timer + 10) / 10)
)

func (p SpawnCountPolicy) String() string {
	switch p {
	case SpawnCountFixed:
		return "fixed"
	case SpawnCountRamped:
		return "ramped"
	default:
		return fmt.Sprintf("SpawnCountPolicy(%d)", int(p))
	}
}

// ParseSpawnCountPolicy converts a flag/env value into a SpawnCountPolicy.
func ParseSpawnCountPolicy(s string) (SpawnCountPolicy, error) {
	switch s {
	case "fixed", "":
		return SpawnCountFixed, nil
	case "ramped":
		return SpawnCountRamped, nil
	}
	return 0, fmt.Errorf("unknown spawn count policy %q", s)
}

func (p SpawnCountPolicy) countFunc() object.SpawnCountFunc {
	if p == SpawnCountRamped {
		return object.RampedSpawnCount
	}
	return object.FixedSpawnCount(1)
}

// Landmark is a motionless obstacle placed when a round starts.
type Landmark struct {
	X, Y float64
}

// Config enables features and holds the tuning of one game.
type Config struct {
	Menu       bool // Start on the main menu instead of straight in play
	Spawning   bool // Run the obstacle spawner
	Collisions bool // Player-obstacle collisions end the round
	Particles  bool // Thrust exhaust and explosion particles

	SpawnCount   SpawnCountPolicy
	SpawnHeading object.HeadingPolicy
	SpeedCap     physics.SpeedCap

	// LevelTriggeredButtons fires menu actions on every frame the pointer or
	// accelerator is held instead of only on the frame it goes down.
	LevelTriggeredButtons bool

	ParticleCapacity   int
	ExplosionParticles int

	SpawnInterval    time.Duration
	SpawnDistance    float64
	MinObstacleSpeed int
	MaxObstacleSpeed int
	SpawnJitter      float64 // Degrees

	MaxObstacles    int     // 0 = unbounded
	DespawnDistance float64 // 0 = never recycle

	Landmarks []Landmark
}

// Preset names, from the bare flight model up to the complete game.
const (
	PresetDrift     = "drift"
	PresetCollide   = "collide"
	PresetMenu      = "menu"
	PresetParticles = "particles"
	PresetFull      = "full"
)

// PresetNames lists every preset accepted by Preset.
func PresetNames() []string {
	return []string{PresetDrift, PresetCollide, PresetMenu, PresetParticles, PresetFull}
}

// DefaultConfig returns the full game.
func DefaultConfig() Config {
	cfg, _ := Preset(PresetFull)
	return cfg
}

func baseConfig() Config {
	return Config{
		SpawnCount:         SpawnCountFixed,
		SpawnHeading:       object.HeadingMirror,
		SpeedCap:           physics.SpeedCapLinear,
		ParticleCapacity:   DefaultParticleCapacity,
		ExplosionParticles: DefaultExplosionParticles,
		SpawnInterval:      DefaultSpawnInterval,
		SpawnDistance:      DefaultSpawnDistance,
		MinObstacleSpeed:   DefaultMinObstacleSpeed,
		MaxObstacleSpeed:   DefaultMaxObstacleSpeed,
		SpawnJitter:        DefaultSpawnJitter,
		MaxObstacles:       DefaultMaxObstacles,
		DespawnDistance:    DefaultDespawnDistance,
	}
}

// Preset returns the named configuration.
func Preset(name string) (Config, error) {
	cfg := baseConfig()

	switch name {
	case PresetDrift:
		// Free flight around two fixed markers that never despawn.
		cfg.DespawnDistance = 0
		cfg.Landmarks = []Landmark{
			{X: ViewWidth / 2, Y: ViewHeight / 2},
			{X: 150, Y: 150},
		}
	case PresetCollide:
		cfg.Spawning = true
		cfg.Collisions = true
	case PresetMenu:
		cfg.Spawning = true
		cfg.Collisions = true
		cfg.Menu = true
	case PresetParticles:
		cfg.Spawning = true
		cfg.Collisions = true
		cfg.Menu = true
		cfg.Particles = true
	case PresetFull:
		cfg.Spawning = true
		cfg.Collisions = true
		cfg.Menu = true
		cfg.Particles = true
		cfg.SpawnCount = SpawnCountRamped
	default:
		return Config{}, fmt.Errorf("%w: unknown preset %q (want one of %v)", ErrInvalidConfig, name, PresetNames())
	}
	return cfg, nil
}

// Validate reports the first impossible setting.
func (c Config) Validate() error {
	switch {
	case c.ParticleCapacity < 1:
		return fmt.Errorf("%w: particle capacity %d must be at least 1", ErrInvalidConfig, c.ParticleCapacity)
	case c.ExplosionParticles < 0:
		return fmt.Errorf("%w: explosion particles %d must not be negative", ErrInvalidConfig, c.ExplosionParticles)
	case c.Spawning && c.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawn interval %v must be positive", ErrInvalidConfig, c.SpawnInterval)
	case c.SpawnDistance <= 0:
		return fmt.Errorf("%w: spawn distance %v must be positive", ErrInvalidConfig, c.SpawnDistance)
	case c.MinObstacleSpeed < 0 || c.MaxObstacleSpeed < c.MinObstacleSpeed:
		return fmt.Errorf("%w: obstacle speed range [%d, %d] is invalid", ErrInvalidConfig, c.MinObstacleSpeed, c.MaxObstacleSpeed)
	case c.SpawnJitter < 0:
		return fmt.Errorf("%w: spawn jitter %v must not be negative", ErrInvalidConfig, c.SpawnJitter)
	case c.MaxObstacles < 0:
		return fmt.Errorf("%w: max obstacles %d must not be negative", ErrInvalidConfig, c.MaxObstacles)
	case c.DespawnDistance < 0:
		return fmt.Errorf("%w: despawn distance %v must not be negative", ErrInvalidConfig, c.DespawnDistance)
	case c.DespawnDistance > 0 && c.DespawnDistance <= c.SpawnDistance:
		return fmt.Errorf("%w: despawn distance %v must exceed spawn distance %v", ErrInvalidConfig, c.DespawnDistance, c.SpawnDistance)
	case !slices.Contains([]SpawnCountPolicy{SpawnCountFixed, SpawnCountRamped}, c.SpawnCount):
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.SpawnCount)
	case !slices.Contains([]object.HeadingPolicy{object.HeadingMirror, object.HeadingReverse}, c.SpawnHeading):
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.SpawnHeading)
	case !slices.Contains([]physics.SpeedCap{physics.SpeedCapLinear, physics.SpeedCapSquared}, c.SpeedCap):
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.SpeedCap)
	}
	return nil
}
