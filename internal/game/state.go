package game

import (
	"fmt"

	"github.com/tomz197/avoider/internal/object"
)

// Phase is the game's current mode.
type Phase int

const (
	PhaseMainMenu Phase = iota // Title screen with Play/Quit buttons
	PhasePlaying               // Active round
	PhaseGameOver              // Round ended by a collision
)

func (p Phase) String() string {
	switch p {
	case PhaseMainMenu:
		return "main-menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State holds everything one game mutates. Owned by a Game and handed by
// pointer to each part of the simulation step.
type State struct {
	Phase     Phase
	Player    *object.Player
	Obstacles []*object.Obstacle
	Particles *object.ParticleBuffer
	Spawner   object.ObstacleSpawner
	Timer     float64 // Seconds survived this round
	Camera    object.Camera
	Frame     uint64 // Updates since the game was created

	maxObstacles int
	events       []Event
}

// Spawn implements object.Spawner. Obstacles beyond the cap are dropped.
func (s *State) Spawn(o *object.Obstacle) {
	if s.maxObstacles > 0 && len(s.Obstacles) >= s.maxObstacles {
		return
	}
	s.Obstacles = append(s.Obstacles, o)
	s.emit(Event{Kind: EventSpawned, X: o.X, Y: o.Y})
}

// setPhase moves to next and records the transition.
func (s *State) setPhase(next Phase) {
	if s.Phase == next {
		return
	}
	s.emit(Event{Kind: EventPhaseChanged, From: s.Phase, To: next})
	s.Phase = next
}

func (s *State) emit(e Event) {
	e.Frame = s.Frame
	s.events = append(s.events, e)
}

// focusCamera centres the camera on the player.
func (s *State) focusCamera() {
	s.Camera = object.Camera{X: s.Player.X, Y: s.Player.Y}
}
