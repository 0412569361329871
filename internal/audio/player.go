package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/avoider/internal/game"
)

// SampleRate is the speaker rate.
const SampleRate = beep.SampleRate(44100)

// Player turns game events into sound cues. The zero value is not usable;
// build one with NewPlayer. A Player whose Init failed or was never called
// drops every cue.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	volume  float64
	mixer   *beep.Mixer
	enabled bool
	speaker bool // speaker.Init succeeded; mixer access goes through speaker.Lock
}

// NewPlayer returns a silent player at the given master volume in [0, 1].
func NewPlayer(volume float64) *Player {
	return &Player{
		rate:   SampleRate,
		volume: min(max(volume, 0), 1),
		mixer:  &beep.Mixer{},
	}
}

// Init opens the system speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.speaker {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.speaker = true
	p.enabled = true
	return nil
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.speaker {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.speaker = false
	p.enabled = false
}

// Play queues cue on the mixer.
func (p *Player) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	s := NewCue(cue, p.rate, p.volume)
	if s == nil {
		return
	}
	if p.speaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(s)
}

// HandleEvent plays the cue for a game event, if it has one.
func (p *Player) HandleEvent(e game.Event) {
	if cue, ok := CueFor(e); ok {
		p.Play(cue)
	}
}

// CueFor maps a game event to its cue.
func CueFor(e game.Event) (Cue, bool) {
	switch e.Kind {
	case game.EventPhaseChanged:
		if e.To == game.PhasePlaying {
			return CueStart, true
		}
	case game.EventCollision:
		return CueCrash, true
	case game.EventThrust:
		return CueThrust, true
	}
	return 0, false
}
