package object

import (
	"github.com/tomz197/avoider/internal/physics"
)

// Player ship defaults. Speeds are per frame, angles in degrees.
const (
	PlayerSpeed         = 0.05
	PlayerRotationSpeed = 2.0
	PlayerStartRotation = -90.0 // pointing up
	PlayerMaxSpeed      = 2.0
	PlayerRadius        = 12.0

	ThrustParticleInterval = 20 // frames between thrust puffs
)

// Player is the ship steered by the user.
type Player struct {
	X, Y   float64 // Position (world space)
	VX, VY float64 // Velocity per frame

	Rotation      float64 // Degrees, 0 = +X; not wrapped
	Speed         float64 // Velocity added per thrusting frame
	RotationSpeed float64 // Degrees per frame
	MaxSpeed      float64
	SpeedCap      physics.SpeedCap
	Radius        float64

	// Boost is true on frames where thrust was applied.
	Boost bool

	particleCooldown int
}

// NewPlayer creates a ship at (x, y) with the default tuning.
func NewPlayer(x, y float64) *Player {
	return &Player{
		X:                x,
		Y:                y,
		Rotation:         PlayerStartRotation,
		Speed:            PlayerSpeed,
		RotationSpeed:    PlayerRotationSpeed,
		MaxSpeed:         PlayerMaxSpeed,
		Radius:           PlayerRadius,
		particleCooldown: ThrustParticleInterval,
	}
}

// Update applies one frame of steering, thrust, speed capping and movement.
func (p *Player) Update(ctx UpdateContext) {
	// Both keys held cancel out.
	if ctx.Input.Right {
		p.Rotation += p.RotationSpeed
	}
	if ctx.Input.Left {
		p.Rotation -= p.RotationSpeed
	}

	p.Boost = ctx.Input.Up
	if p.Boost {
		p.VX, p.VY = physics.Thrust(p.VX, p.VY, p.Speed, p.Rotation)
		p.emitThrust(ctx)
	}

	p.VX, p.VY, _ = physics.CapSpeed(p.VX, p.VY, p.MaxSpeed, p.SpeedCap)

	p.X += p.VX
	p.Y += p.VY
}

// emitThrust drops a puff of exhaust every ThrustParticleInterval thrusting frames.
func (p *Player) emitThrust(ctx UpdateContext) {
	if ctx.Emitter == nil || ctx.Rand == nil {
		return
	}
	p.particleCooldown--
	if p.particleCooldown > 0 {
		return
	}
	p.particleCooldown = ThrustParticleInterval
	SpawnThrust(p.X, p.Y, p.Rotation, ctx.Rand, ctx.Emitter)
}

// Sprite returns the visual to use for the ship this frame.
func (p *Player) Sprite() SpriteID {
	if p.Boost {
		return SpriteShipBoost
	}
	return SpriteShip
}

// GetPosition returns the ship's center position.
func (p *Player) GetPosition() (float64, float64) {
	return p.X, p.Y
}

// GetRadius returns the ship's collision radius.
func (p *Player) GetRadius() float64 {
	return p.Radius
}
