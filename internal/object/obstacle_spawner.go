package object

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/avoider/internal/physics"
)

// HeadingPolicy decides which way a freshly spawned obstacle drifts.
type HeadingPolicy int

const (
	// HeadingMirror drifts along 360 - bearing (+ jitter).
	HeadingMirror HeadingPolicy = iota
	// HeadingReverse drifts straight back towards the spawn origin (+ jitter).
	HeadingReverse
)

func (h HeadingPolicy) String() string {
	switch h {
	case HeadingMirror:
		return "mirror"
	case HeadingReverse:
		return "reverse"
	default:
		return fmt.Sprintf("HeadingPolicy(%d)", int(h))
	}
}

// ParseHeadingPolicy converts a flag/env value into a HeadingPolicy.
func ParseHeadingPolicy(s string) (HeadingPolicy, error) {
	switch s {
	case "mirror", "":
		return HeadingMirror, nil
	case "reverse":
		return HeadingReverse, nil
	}
	return 0, fmt.Errorf("unknown heading policy %q", s)
}

// SpawnCountFunc returns how many obstacles to spawn per cooldown expiry,
// given the seconds survived so far.
type SpawnCountFunc func(elapsed float64) int

// FixedSpawnCount always spawns n obstacles.
func FixedSpawnCount(n int) SpawnCountFunc {
	return func(float64) int { return n }
}

// RampedSpawnCount spawns one more obstacle per batch for every ten seconds survived.
func RampedSpawnCount(elapsed float64) int {
	return int(math.Floor((elapsed + 10) / 10))
}

// SpawnContext is what the spawner needs to know about the current frame.
type SpawnContext struct {
	Delta            time.Duration // Real time since the previous frame
	Elapsed          float64       // Seconds survived
	OriginX, OriginY float64       // Player position
	Rand             Rand
}

// ObstacleSpawner places batches of obstacles on a ring around the player.
type ObstacleSpawner struct {
	Interval time.Duration  // Cooldown between batches
	Distance float64        // Ring radius around the origin
	MinSpeed int            // Inclusive
	MaxSpeed int            // Inclusive
	Jitter   float64        // Max heading deviation in degrees
	Heading  HeadingPolicy
	Count    SpawnCountFunc // nil spawns one per batch

	cooldown time.Duration
}

// Reset restarts the cooldown from a full interval.
func (s *ObstacleSpawner) Reset() {
	s.cooldown = s.Interval
}

// Cooldown returns the time left until the next batch.
func (s *ObstacleSpawner) Cooldown() time.Duration {
	return s.cooldown
}

// Update counts the cooldown down and spawns a batch when it runs out.
// Returns the number of obstacles handed to the spawner.
func (s *ObstacleSpawner) Update(ctx SpawnContext, spawner Spawner) int {
	s.cooldown -= ctx.Delta
	if s.cooldown > 0 {
		return 0
	}
	s.cooldown = s.Interval

	count := 1
	if s.Count != nil {
		count = s.Count(ctx.Elapsed)
	}
	for i := 0; i < count; i++ {
		spawner.Spawn(s.SpawnOne(ctx.OriginX, ctx.OriginY, ctx.Rand))
	}
	return max(count, 0)
}

// SpawnOne creates a single obstacle at a random bearing around (x, y).
func (s *ObstacleSpawner) SpawnOne(x, y float64, rng Rand) *Obstacle {
	bearing := rng.Float64() * 360
	bx, by := physics.Heading(bearing)

	jitter := (rng.Float64()*2 - 1) * s.Jitter
	var heading float64
	switch s.Heading {
	case HeadingReverse:
		heading = bearing + 180 + jitter
	default:
		heading = 360 - bearing + jitter
	}

	speed := s.MinSpeed
	if s.MaxSpeed > s.MinSpeed {
		speed += rng.Intn(s.MaxSpeed - s.MinSpeed + 1)
	}

	return NewObstacle(x+bx*s.Distance, y+by*s.Distance, float64(speed), heading)
}
