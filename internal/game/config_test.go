package game

import (
	"errors"
	"testing"

	"github.com/tomz197/avoider/internal/object"
	"github.com/tomz197/avoider/internal/physics"
)

func TestPresetsValidate(t *testing.T) {
	for _, name := range PresetNames() {
		cfg, err := Preset(name)
		if err != nil {
			t.Errorf("Preset(%q): %v", name, err)
			continue
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q does not validate: %v", name, err)
		}
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := Preset("bogus"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Preset(bogus) error = %v, want ErrInvalidConfig", err)
	}
}

func TestPresetFeatures(t *testing.T) {
	tests := []struct {
		name                                  string
		menu, spawning, collisions, particles bool
		count                                 SpawnCountPolicy
	}{
		{PresetDrift, false, false, false, false, SpawnCountFixed},
		{PresetCollide, false, true, true, false, SpawnCountFixed},
		{PresetMenu, true, true, true, false, SpawnCountFixed},
		{PresetParticles, true, true, true, true, SpawnCountFixed},
		{PresetFull, true, true, true, true, SpawnCountRamped},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Preset(tc.name)
			if err != nil {
				t.Fatal(err)
			}
			if c.Menu != tc.menu || c.Spawning != tc.spawning || c.Collisions != tc.collisions || c.Particles != tc.particles {
				t.Errorf("features = menu:%v spawning:%v collisions:%v particles:%v", c.Menu, c.Spawning, c.Collisions, c.Particles)
			}
			if c.SpawnCount != tc.count {
				t.Errorf("spawn count = %v, want %v", c.SpawnCount, tc.count)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(*Config)
	}{
		{"zero particle capacity", func(c *Config) { c.ParticleCapacity = 0 }},
		{"negative explosion", func(c *Config) { c.ExplosionParticles = -1 }},
		{"zero interval", func(c *Config) { c.SpawnInterval = 0 }},
		{"zero distance", func(c *Config) { c.SpawnDistance = 0 }},
		{"inverted speeds", func(c *Config) { c.MinObstacleSpeed, c.MaxObstacleSpeed = 5, 2 }},
		{"negative speed", func(c *Config) { c.MinObstacleSpeed = -1 }},
		{"negative jitter", func(c *Config) { c.SpawnJitter = -1 }},
		{"negative max obstacles", func(c *Config) { c.MaxObstacles = -1 }},
		{"negative despawn", func(c *Config) { c.DespawnDistance = -1 }},
		{"despawn inside ring", func(c *Config) { c.DespawnDistance = c.SpawnDistance }},
		{"unknown count policy", func(c *Config) { c.SpawnCount = SpawnCountPolicy(9) }},
		{"unknown heading policy", func(c *Config) { c.SpawnHeading = object.HeadingPolicy(9) }},
		{"unknown speed cap", func(c *Config) { c.SpeedCap = physics.SpeedCap(9) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.tweak(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestZeroIntervalAllowedWithoutSpawning(t *testing.T) {
	c, _ := Preset(PresetDrift)
	c.SpawnInterval = 0
	if err := c.Validate(); err != nil {
		t.Errorf("drift without spawning should ignore the interval: %v", err)
	}
}

func TestParseSpawnCountPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    SpawnCountPolicy
		wantErr bool
	}{
		{"", SpawnCountFixed, false},
		{"fixed", SpawnCountFixed, false},
		{"ramped", SpawnCountRamped, false},
		{"exponential", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseSpawnCountPolicy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseSpawnCountPolicy(%q) error = %v", tc.in, err)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseSpawnCountPolicy(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if !tc.wantErr && got.String() != tc.in && tc.in != "" {
			t.Errorf("String() = %q, want %q", got.String(), tc.in)
		}
	}
}

func TestMenuButtons(t *testing.T) {
	if b := MenuButtons(PhasePlaying); b != nil {
		t.Errorf("buttons while playing: %+v", b)
	}
	main := MenuButtons(PhaseMainMenu)
	over := MenuButtons(PhaseGameOver)
	if len(main) != 2 || len(over) != 2 {
		t.Fatalf("got %d and %d buttons, want 2 each", len(main), len(over))
	}
	if main[0].Label != "PLAY" || over[0].Label != "PLAY AGAIN" {
		t.Errorf("labels = %q, %q", main[0].Label, over[0].Label)
	}

	x, y := main[1].Rect.Center()
	if a := ButtonAt(main, x, y); a != ActionQuit {
		t.Errorf("ButtonAt(quit centre) = %v", a)
	}
	if a := ButtonAt(main, 0, 0); a != ActionNone {
		t.Errorf("ButtonAt(corner) = %v", a)
	}
}
