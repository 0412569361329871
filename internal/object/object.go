// Package object holds the simulation entities: the player ship, drifting
// obstacles, particles and the obstacle spawner. Entities carry no rendering
// state beyond an opaque SpriteID.
package object

import (
	"github.com/tomz197/avoider/internal/input"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// Rand is the random source entities draw from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// SpriteID is an opaque key a renderer resolves to a visual.
type SpriteID int

const (
	SpriteNone SpriteID = iota
	SpriteShip
	SpriteShipBoost
	SpriteAsteroid
)

// Emitter receives particles produced during an update.
type Emitter interface {
	Emit(p Particle)
}

// Spawner receives obstacles produced by an ObstacleSpawner.
type Spawner interface {
	Spawn(o *Obstacle)
}

// UpdateContext provides what the player needs during update.
type UpdateContext struct {
	Input   Input
	Rand    Rand
	Emitter Emitter // nil disables particle emission
}

// Camera is the world-space point the view is centred on.
type Camera struct {
	X, Y float64
}
