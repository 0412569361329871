package game

import (
	"slices"
	"testing"

	"github.com/tomz197/avoider/internal/object"
	"github.com/tomz197/avoider/internal/physics"
)

// forwardScanRemove is the remove-while-iterating loop the reverse scan
// replaces. Kept here to show the element after a removal is never tested.
func forwardScanRemove(p *object.Player, obstacles []*object.Obstacle) (remaining []*object.Obstacle, tested int) {
	for i := 0; i < len(obstacles); i++ {
		o := obstacles[i]
		tested++
		if physics.CirclesOverlap(p.X, p.Y, p.Radius, o.X, o.Y, o.Radius) {
			obstacles = slices.Delete(obstacles, i, i+1)
		}
	}
	return obstacles, tested
}

func adjacentHits() (*object.Player, []*object.Obstacle) {
	p := object.NewPlayer(0, 0)
	return p, []*object.Obstacle{
		object.NewObstacle(500, 0, 0, 0), // miss
		object.NewObstacle(0, 0, 0, 0),   // hit
		object.NewObstacle(10, 0, 0, 0),  // hit, directly after the first
		object.NewObstacle(0, 500, 0, 0), // miss
	}
}

func TestForwardScanSkipsSuccessor(t *testing.T) {
	p, obstacles := adjacentHits()

	remaining, tested := forwardScanRemove(p, obstacles)

	if tested != 3 {
		t.Errorf("forward scan tested %d obstacles, want 3 (one skipped)", tested)
	}
	if len(remaining) != 3 {
		t.Fatalf("forward scan left %d obstacles, want 3", len(remaining))
	}
	if remaining[1].X != 10 {
		t.Errorf("expected the skipped overlapping obstacle to survive, got %+v", remaining[1])
	}
}

func TestReverseScanRemovesEveryHit(t *testing.T) {
	p, obstacles := adjacentHits()

	remaining, hits := collidePlayer(p, obstacles)

	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if len(remaining) != 2 || remaining[0].X != 500 || remaining[1].Y != 500 {
		t.Errorf("remaining obstacles = %+v, want the two misses in order", remaining)
	}
}

func TestCollisionBoundary(t *testing.T) {
	p := object.NewPlayer(0, 0)
	touch := p.Radius + object.ObstacleRadius

	tests := []struct {
		name string
		x    float64
		hit  bool
	}{
		{"same centre", 0, true},
		{"exactly touching", touch, true},
		{"just apart", touch + 1e-9, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, hits := collidePlayer(p, []*object.Obstacle{object.NewObstacle(tc.x, 0, 0, 0)})
			if got := len(hits) == 1; got != tc.hit {
				t.Errorf("hit = %v, want %v", got, tc.hit)
			}
		})
	}
}

func TestDespawnFar(t *testing.T) {
	obstacles := []*object.Obstacle{
		object.NewObstacle(100, 0, 0, 0),
		object.NewObstacle(2000, 0, 0, 0),
		object.NewObstacle(0, 1000, 0, 0),
		object.NewObstacle(-1300, 0, 0, 0),
	}

	kept := despawnFar(obstacles, 0, 0, 1200)

	if len(kept) != 2 || kept[0].X != 100 || kept[1].Y != 1000 {
		t.Errorf("kept = %+v, want the two near obstacles", kept)
	}
}
