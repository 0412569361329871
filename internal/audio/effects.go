// Package audio synthesises the game's sound cues with beep and plays them
// through the system speaker.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     Wave
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator returns a streamer producing duration of the given wave.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1
			if o.phase < 0.5 {
				val = 1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly by vol. Zero or less is silent; Log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Cue is a sound the game can ask for.
type Cue int

const (
	CueStart  Cue = iota // Round begins
	CueCrash             // Ship hit an obstacle
	CueThrust            // Engine ignition
)

// Cue timings.
const (
	startNoteDuration = 70 * time.Millisecond
	crashDuration     = 450 * time.Millisecond
	thrustDuration    = 60 * time.Millisecond
	attack            = 5 * time.Millisecond
)

// NewCue synthesises cue at rate, scaled by vol in [0, 1]. Unknown cues return nil.
func NewCue(cue Cue, rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueStart:
		// Rising two-note blip (A5, E6).
		n1 := NewEnvelope(NewOscillator(880, startNoteDuration, WaveSquare, rate), startNoteDuration, attack, 30*time.Millisecond, rate)
		n2 := NewEnvelope(NewOscillator(1318.51, startNoteDuration, WaveSquare, rate), startNoteDuration, attack, 40*time.Millisecond, rate)
		s = newVolume(beep.Seq(n1, n2), 0.4)
	case CueCrash:
		// Noise burst over a low saw rumble.
		noise := NewEnvelope(NewOscillator(0, crashDuration, WaveNoise, rate), crashDuration, attack, 350*time.Millisecond, rate)
		rumble := NewEnvelope(NewOscillator(55, crashDuration, WaveSaw, rate), crashDuration, attack, 400*time.Millisecond, rate)
		s = beep.Mix(newVolume(noise, 0.6), newVolume(rumble, 0.4))
	case CueThrust:
		s = newVolume(NewEnvelope(NewOscillator(0, thrustDuration, WaveNoise, rate), thrustDuration, attack, 40*time.Millisecond, rate), 0.25)
	default:
		return nil
	}
	return newVolume(s, vol)
}
