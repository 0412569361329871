package game

import (
	"github.com/tomz197/avoider/internal/object"
)

// PlayerView is the renderable part of the player.
type PlayerView struct {
	X, Y     float64
	Rotation float64
	Radius   float64
	Boost    bool
	Sprite   object.SpriteID
}

// ObstacleView is the renderable part of an obstacle.
type ObstacleView struct {
	X, Y     float64
	Rotation float64
	Radius   float64
	Sprite   object.SpriteID
}

// Snapshot is a read-only copy of one frame for renderers.
type Snapshot struct {
	Phase     Phase
	Timer     float64
	Frame     uint64
	Camera    object.Camera
	Player    PlayerView
	Obstacles []ObstacleView
	Particles []object.Particle // Oldest first
	Buttons   []Button

	// Pointer in view coordinates, when the frontend reports one.
	PointerX, PointerY float64
	HasPointer         bool
}

// Hovered returns the button under the pointer, if any.
func (s Snapshot) Hovered() (Button, bool) {
	if !s.HasPointer {
		return Button{}, false
	}
	for _, b := range s.Buttons {
		if b.Rect.Contains(s.PointerX, s.PointerY) {
			return b, true
		}
	}
	return Button{}, false
}

// Snapshot copies the current frame.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	p := s.Player

	snap := Snapshot{
		Phase:  s.Phase,
		Timer:  s.Timer,
		Frame:  s.Frame,
		Camera: s.Camera,
		Player: PlayerView{
			X:        p.X,
			Y:        p.Y,
			Rotation: p.Rotation,
			Radius:   p.Radius,
			Boost:    p.Boost,
			Sprite:   p.Sprite(),
		},
		Obstacles:  make([]ObstacleView, len(s.Obstacles)),
		Particles:  s.Particles.Particles(),
		Buttons:    MenuButtons(s.Phase),
		PointerX:   g.pointerX,
		PointerY:   g.pointerY,
		HasPointer: g.hasPointer,
	}
	for i, o := range s.Obstacles {
		snap.Obstacles[i] = ObstacleView{
			X:        o.X,
			Y:        o.Y,
			Rotation: o.Rotation,
			Radius:   o.Radius,
			Sprite:   o.Sprite(),
		}
	}
	return snap
}
