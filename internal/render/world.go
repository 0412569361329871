// Package render turns a game.Snapshot into canvas pixels and text overlays.
// Both terminal frontends share it: the ANSI loop writes the overlays through
// a ChunkWriter, the tcell frontend copies them into its screen.
package render

import (
	"math"

	"github.com/tomz197/avoider/internal/draw"
	"github.com/tomz197/avoider/internal/game"
	"github.com/tomz197/avoider/internal/object"
	"github.com/tomz197/avoider/internal/physics"
)

// Ship shape, as multiples of the ship radius.
const (
	shipNose     = 1.3
	shipWing     = 1.0
	shipWingDeg  = 140.0
	flameLength  = 1.6
	flameSpread  = 0.45
	flameBackset = 0.6
)

// ToView converts a world position to view coordinates for the given camera.
// The camera sits at the centre of the view.
func ToView(cam object.Camera, x, y float64) (float64, float64) {
	return x - cam.X + game.ViewWidth/2, y - cam.Y + game.ViewHeight/2
}

// World draws particles, obstacles and the ship onto the canvas, in that
// order, so the ship stays on top of its own exhaust.
func World(c *draw.Canvas, snap game.Snapshot) {
	for _, p := range snap.Particles {
		drawParticle(c, snap.Camera, p)
	}
	for _, o := range snap.Obstacles {
		drawObstacle(c, snap.Camera, o)
	}
	// The menu shows an empty field.
	if snap.Phase == game.PhasePlaying {
		drawShip(c, snap.Camera, snap.Player)
	}
}

func drawShip(c *draw.Canvas, cam object.Camera, p game.PlayerView) {
	x, y := ToView(cam, p.X, p.Y)
	r := p.Radius

	if p.Sprite == object.SpriteShipBoost {
		back := p.Rotation + 180
		flame := c.BorrowPoints(3)
		flame[0] = polar(x, y, back, r*flameLength)
		flame[1] = polar(x, y, back+flameSpread*90, r*flameBackset)
		flame[2] = polar(x, y, back-flameSpread*90, r*flameBackset)
		c.SetInk(draw.InkOrange)
		c.DrawPolygon(flame, true)
	}

	hull := c.BorrowPoints(3)
	hull[0] = polar(x, y, p.Rotation, r*shipNose)
	hull[1] = polar(x, y, p.Rotation+shipWingDeg, r*shipWing)
	hull[2] = polar(x, y, p.Rotation-shipWingDeg, r*shipWing)
	c.SetInk(draw.InkWhite)
	c.DrawPolygon(hull, true)
}

func drawObstacle(c *draw.Canvas, cam object.Camera, o game.ObstacleView) {
	x, y := ToView(cam, o.X, o.Y)
	// Skip anything whose bounding box is entirely off the view.
	if x+o.Radius < 0 || y+o.Radius < 0 || x-o.Radius > c.LogicalWidth() || y-o.Radius > c.LogicalHeight() {
		return
	}
	c.SetInk(draw.InkGray)
	c.DrawCircle(x, y, o.Radius, false)
	c.DrawLine(draw.Point{X: x, Y: y}, polar(x, y, o.Rotation, o.Radius))
}

func drawParticle(c *draw.Canvas, cam object.Camera, p object.Particle) {
	x, y := ToView(cam, p.X, p.Y)
	half := p.Scale / 2
	sq := c.BorrowPoints(4)
	for i := range sq {
		// Corners of a square sit on a circle of radius half*sqrt2.
		sq[i] = polar(x, y, p.Rotation+45+float64(i)*90, half*math.Sqrt2)
	}
	c.SetInk(ParticleInk(p.Color))
	c.DrawPolygon(sq, true)
	// Particles smaller than a pixel still show.
	c.SetFloat(x, y)
}

// ParticleInk maps a particle colour to a canvas ink.
func ParticleInk(col object.Color) draw.Ink {
	switch col {
	case object.ColorOrange:
		return draw.InkOrange
	case object.ColorBrown:
		return draw.InkBrown
	case object.ColorBlack:
		return draw.InkDark
	case object.ColorRed:
		return draw.InkRed
	case object.ColorYellow:
		return draw.InkYellow
	}
	return draw.InkWhite
}

// polar returns the point at distance d from (x, y) along deg degrees.
func polar(x, y, deg, d float64) draw.Point {
	rad := physics.DegToRad(deg)
	return draw.Point{X: x + math.Cos(rad)*d, Y: y + math.Sin(rad)*d}
}
