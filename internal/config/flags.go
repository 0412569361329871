package config

import (
	"flag"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/tomz197/avoider/internal/game"
	"github.com/tomz197/avoider/internal/object"
	"github.com/tomz197/avoider/internal/physics"
)

// GameFlags are the command-line settings shared by every frontend. Each
// defaults to an AVOIDER_* environment variable.
type GameFlags struct {
	Preset       string
	SpeedCap     string
	Heading      string
	SpawnCount   string
	LevelButtons bool
	Seed         int64
	Sound        bool
	Volume       float64
}

// Register adds the flags to fs.
func (f *GameFlags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Preset, "preset", GetEnv("AVOIDER_PRESET", game.PresetFull),
		"feature preset: "+strings.Join(game.PresetNames(), ", "))
	fs.StringVar(&f.SpeedCap, "speedcap", GetEnv("AVOIDER_SPEEDCAP", ""), "ship speed cap: linear or squared")
	fs.StringVar(&f.Heading, "heading", GetEnv("AVOIDER_HEADING", ""), "obstacle heading: mirror or reverse")
	fs.StringVar(&f.SpawnCount, "spawn-count", GetEnv("AVOIDER_SPAWN_COUNT", ""), "obstacles per batch: fixed or ramped")
	fs.BoolVar(&f.LevelButtons, "level-buttons", GetEnvBool("AVOIDER_LEVEL_BUTTONS", false), "repeat menu actions while held")
	fs.Int64Var(&f.Seed, "seed", int64(GetEnvInt("AVOIDER_SEED", 0)), "random seed, 0 for time-based")
	fs.BoolVar(&f.Sound, "sound", GetEnvBool("AVOIDER_SOUND", false), "play sound cues")
	fs.Float64Var(&f.Volume, "volume", GetEnvFloat("AVOIDER_VOLUME", 0.5), "sound volume from 0 to 1")
}

// Config builds and validates the game configuration. Empty policy flags
// keep the preset's choice.
func (f *GameFlags) Config() (game.Config, error) {
	cfg, err := game.Preset(f.Preset)
	if err != nil {
		return game.Config{}, err
	}

	if f.SpeedCap != "" {
		if cfg.SpeedCap, err = physics.ParseSpeedCap(f.SpeedCap); err != nil {
			return game.Config{}, fmt.Errorf("%w: %w", game.ErrInvalidConfig, err)
		}
	}
	if f.Heading != "" {
		if cfg.SpawnHeading, err = object.ParseHeadingPolicy(f.Heading); err != nil {
			return game.Config{}, fmt.Errorf("%w: %w", game.ErrInvalidConfig, err)
		}
	}
	if f.SpawnCount != "" {
		if cfg.SpawnCount, err = game.ParseSpawnCountPolicy(f.SpawnCount); err != nil {
			return game.Config{}, fmt.Errorf("%w: %w", game.ErrInvalidConfig, err)
		}
	}
	cfg.LevelTriggeredButtons = f.LevelButtons

	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

// Rand returns a source seeded from the seed flag, or from the clock when it is 0.
func (f *GameFlags) Rand() *rand.Rand {
	seed := f.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
