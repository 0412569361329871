package game

import "fmt"

// EventKind identifies what happened during an update.
type EventKind int

const (
	EventPhaseChanged EventKind = iota
	EventCollision
	EventSpawned
	EventThrust // Thrust engaged this frame
)

func (k EventKind) String() string {
	switch k {
	case EventPhaseChanged:
		return "phase-changed"
	case EventCollision:
		return "collision"
	case EventSpawned:
		return "spawned"
	case EventThrust:
		return "thrust"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a notification for frontends (logging, sound). Events never feed
// back into the simulation.
type Event struct {
	Kind  EventKind
	Frame uint64

	From, To Phase   // EventPhaseChanged
	X, Y     float64 // Where it happened (collision, spawn, thrust)
}
