package game

import (
	"time"

	"github.com/tomz197/avoider/internal/input"
	"github.com/tomz197/avoider/internal/object"
)

// stepContext is the per-frame input to step.
type stepContext struct {
	cfg   *Config
	input input.Input
	dt    time.Duration
	rng   object.Rand
}

// step advances one Playing frame. Newly spawned obstacles move in the frame
// they appear, and collisions are tested against post-move positions.
func step(s *State, ctx stepContext) {
	p := s.Player

	if ctx.cfg.Spawning {
		s.Spawner.Update(object.SpawnContext{
			Delta:   ctx.dt,
			Elapsed: s.Timer,
			OriginX: p.X,
			OriginY: p.Y,
			Rand:    ctx.rng,
		}, s)
	}

	wasBoosting := p.Boost
	uctx := object.UpdateContext{Input: ctx.input, Rand: ctx.rng}
	if ctx.cfg.Particles {
		uctx.Emitter = s.Particles
	}
	p.Update(uctx)
	if p.Boost && !wasBoosting {
		s.emit(Event{Kind: EventThrust, X: p.X, Y: p.Y})
	}

	for _, o := range s.Obstacles {
		o.Update()
	}

	if ctx.cfg.Collisions {
		var hits []*object.Obstacle
		s.Obstacles, hits = collidePlayer(p, s.Obstacles)
		for _, o := range hits {
			s.emit(Event{Kind: EventCollision, X: o.X, Y: o.Y})
		}
		if len(hits) > 0 {
			if ctx.cfg.Particles {
				object.SpawnExplosion(p.X, p.Y, ctx.cfg.ExplosionParticles, ctx.rng, s.Particles)
			}
			s.setPhase(PhaseGameOver)
		}
	}

	if ctx.cfg.DespawnDistance > 0 {
		s.Obstacles = despawnFar(s.Obstacles, p.X, p.Y, ctx.cfg.DespawnDistance)
	}

	s.Timer += ctx.dt.Seconds()
	s.focusCamera()
}
