// Package game is the simulation core: the MainMenu/Playing/GameOver state
// machine and the per-frame step that moves the ship, spawns and drifts
// obstacles, resolves collisions and ages particles. It knows nothing about
// terminals; frontends feed it input.Input and draw its Snapshot.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tomz197/avoider/internal/input"
	"github.com/tomz197/avoider/internal/object"
)

// Game owns one State and drives it frame by frame. Not safe for concurrent use.
type Game struct {
	cfg     Config
	rng     object.Rand
	state   *State
	running bool

	// Previous-frame input, for edge-triggered actions.
	prevPointerDown bool
	prevPlay        bool
	prevQuit        bool

	pointerX, pointerY float64
	hasPointer         bool
}

// New validates cfg and creates a game. A nil rng is replaced by a time-seeded one.
func New(cfg Config, rng object.Rand) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &Game{
		cfg:     cfg,
		rng:     rng,
		running: true,
		state: &State{
			Particles:    object.NewParticleBuffer(cfg.ParticleCapacity),
			maxObstacles: cfg.MaxObstacles,
			Spawner: object.ObstacleSpawner{
				Interval: cfg.SpawnInterval,
				Distance: cfg.SpawnDistance,
				MinSpeed: cfg.MinObstacleSpeed,
				MaxSpeed: cfg.MaxObstacleSpeed,
				Jitter:   cfg.SpawnJitter,
				Heading:  cfg.SpawnHeading,
				Count:    cfg.SpawnCount.countFunc(),
			},
		},
	}
	g.resetRound()

	g.state.Phase = PhasePlaying
	if cfg.Menu {
		g.state.Phase = PhaseMainMenu
	}
	g.state.events = nil
	return g, nil
}

// MustNew is New for known-good configurations such as presets.
func MustNew(cfg Config, rng object.Rand) *Game {
	g, err := New(cfg, rng)
	if err != nil {
		panic(fmt.Sprintf("game: %v", err))
	}
	return g
}

// Config returns the configuration the game was built with.
func (g *Game) Config() Config {
	return g.cfg
}

// Running reports whether the game still wants frames. It turns false once a
// quit action fires.
func (g *Game) Running() bool {
	return g.running
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.state.Phase
}

// Events returns and clears the events recorded since the previous call.
func (g *Game) Events() []Event {
	ev := g.state.events
	g.state.events = nil
	return ev
}

// Update advances the game by one frame. dt is the real time since the
// previous frame and only drives the spawn cooldown and the survival timer.
func (g *Game) Update(in input.Input, dt time.Duration) {
	if !g.running {
		return
	}
	s := g.state
	s.Frame++

	g.pointerX, g.pointerY = in.PointerX, in.PointerY
	g.hasPointer = in.Mouse.Valid
	action := g.action(in)

	if action == ActionQuit {
		g.running = false
		return
	}

	switch s.Phase {
	case PhaseMainMenu:
		if action == ActionPlay {
			s.setPhase(PhasePlaying)
		}
	case PhasePlaying:
		step(s, stepContext{cfg: &g.cfg, input: in, dt: dt, rng: g.rng})
	case PhaseGameOver:
		if action == ActionPlay {
			g.Restart()
		}
	}

	// Particles keep ageing outside Playing so an explosion plays out.
	s.Particles.Tick()
}

// action turns this frame's input into at most one menu action. The quit
// accelerator works in every phase; buttons and the play accelerator only
// where menu buttons are shown.
func (g *Game) action(in input.Input) Action {
	pointerDown, play, quit := in.PointerDown, in.Play(), in.Quit
	if !g.cfg.LevelTriggeredButtons {
		pointerDown = pointerDown && !g.prevPointerDown
		play = play && !g.prevPlay
		quit = quit && !g.prevQuit
	}
	g.prevPointerDown, g.prevPlay, g.prevQuit = in.PointerDown, in.Play(), in.Quit

	if quit {
		return ActionQuit
	}

	buttons := MenuButtons(g.state.Phase)
	if len(buttons) == 0 {
		return ActionNone
	}
	if pointerDown {
		if a := ButtonAt(buttons, in.PointerX, in.PointerY); a != ActionNone {
			return a
		}
	}
	if play {
		return ActionPlay
	}
	return ActionNone
}

// Restart begins a fresh round: new player at the origin, no obstacles,
// timer and cooldown reset.
func (g *Game) Restart() {
	g.resetRound()
	g.state.setPhase(PhasePlaying)
}

func (g *Game) resetRound() {
	s := g.state

	s.Player = object.NewPlayer(0, 0)
	s.Player.SpeedCap = g.cfg.SpeedCap

	s.Obstacles = s.Obstacles[:0]
	for _, l := range g.cfg.Landmarks {
		s.Obstacles = append(s.Obstacles, object.NewObstacle(l.X, l.Y, 0, 0))
	}

	s.Particles.Clear()
	s.Spawner.Reset()
	s.Timer = 0
	s.focusCamera()
}
