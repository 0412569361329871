package object

import (
	"github.com/tomz197/avoider/internal/physics"
)

// ObstacleRadius is the collision radius shared by every obstacle.
const ObstacleRadius = 20.0

// Obstacle is an asteroid drifting in a straight line at constant speed.
type Obstacle struct {
	X, Y     float64 // Position (center)
	Speed    float64 // Distance per frame
	Heading  float64 // Direction of travel in degrees
	Rotation float64 // Visual heading in degrees
	Radius   float64 // Collision radius
}

// NewObstacle creates an obstacle at (x, y) moving along heading.
func NewObstacle(x, y, speed, heading float64) *Obstacle {
	return &Obstacle{
		X:        x,
		Y:        y,
		Speed:    speed,
		Heading:  heading,
		Rotation: heading,
		Radius:   ObstacleRadius,
	}
}

// Velocity returns the per-frame displacement.
func (o *Obstacle) Velocity() (float64, float64) {
	hx, hy := physics.Heading(o.Heading)
	return hx * o.Speed, hy * o.Speed
}

// Update moves the obstacle one frame along its heading.
func (o *Obstacle) Update() {
	vx, vy := o.Velocity()
	o.X += vx
	o.Y += vy
}

// Sprite returns the visual for obstacles.
func (o *Obstacle) Sprite() SpriteID {
	return SpriteAsteroid
}

// GetPosition returns the obstacle's center position.
func (o *Obstacle) GetPosition() (float64, float64) {
	return o.X, o.Y
}

// GetRadius returns the obstacle's collision radius.
func (o *Obstacle) GetRadius() float64 {
	return o.Radius
}
