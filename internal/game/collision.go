package game

import (
	"slices"

	"github.com/tomz197/avoider/internal/object"
	"github.com/tomz197/avoider/internal/physics"
)

// collidePlayer removes every obstacle touching the player and returns the
// remaining collection plus the removed obstacles, in scan order.
// Scanning from the back keeps every index below i valid after a removal.
func collidePlayer(p *object.Player, obstacles []*object.Obstacle) ([]*object.Obstacle, []*object.Obstacle) {
	var hits []*object.Obstacle
	for i := len(obstacles) - 1; i >= 0; i-- {
		o := obstacles[i]
		if physics.CirclesOverlap(p.X, p.Y, p.Radius, o.X, o.Y, o.Radius) {
			hits = append(hits, o)
			obstacles = slices.Delete(obstacles, i, i+1)
		}
	}
	return obstacles, hits
}

// despawnFar recycles obstacles further than limit from (x, y).
func despawnFar(obstacles []*object.Obstacle, x, y, limit float64) []*object.Obstacle {
	limitSq := limit * limit
	for i := len(obstacles) - 1; i >= 0; i-- {
		o := obstacles[i]
		if physics.DistanceSquared(x, y, o.X, o.Y) > limitSq {
			obstacles = slices.Delete(obstacles, i, i+1)
		}
	}
	return obstacles
}
