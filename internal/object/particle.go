package object

import "fmt"

// Color tags a particle for the renderer.
type Color int

const (
	ColorOrange Color = iota
	ColorBrown
	ColorBlack
	ColorRed
	ColorYellow
)

func (c Color) String() string {
	switch c {
	case ColorOrange:
		return "orange"
	case ColorBrown:
		return "brown"
	case ColorBlack:
		return "black"
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// Particle is a static flash that counts down and disappears.
type Particle struct {
	X, Y     float64 // Position (world space)
	Rotation float64 // Degrees
	Scale    float64 // Side length of the square
	Color    Color
	Lifetime int // Frames remaining
}

// Particle tuning.
const (
	ThrustParticleLifetime    = 200
	ExplosionParticleLifetime = 45
	explosionSpread           = 18.0
)

// Tick ages the particle by one frame.
func (p *Particle) Tick() {
	p.Lifetime--
}

// Expired reports whether the particle has run out of lifetime.
// Only an exact zero counts; the buffer never sees negative lifetimes.
func (p *Particle) Expired() bool {
	return p.Lifetime == 0
}

// SpawnThrust emits the three-layer exhaust puff left behind a thrusting ship.
func SpawnThrust(x, y, rotation float64, rng Rand, emitter Emitter) {
	if emitter == nil {
		return
	}

	layers := []struct {
		scale float64
		color Color
	}{
		{20, ColorOrange}, // background
		{11.5, ColorBrown},
		{2.5, ColorBlack}, // core
	}

	for _, l := range layers {
		emitter.Emit(Particle{
			X:        x,
			Y:        y,
			Rotation: rotation + rng.Float64()*360,
			Scale:    l.scale,
			Color:    l.color,
			Lifetime: ThrustParticleLifetime,
		})
	}
}

// SpawnExplosion scatters count flashes around (x, y).
func SpawnExplosion(x, y float64, count int, rng Rand, emitter Emitter) {
	if emitter == nil {
		return
	}

	colors := []Color{ColorRed, ColorOrange, ColorYellow}

	for i := 0; i < count; i++ {
		ox := (rng.Float64()*2 - 1) * explosionSpread
		oy := (rng.Float64()*2 - 1) * explosionSpread
		// Random lifetime variation (50% to 100%)
		life := ExplosionParticleLifetime/2 + rng.Intn(ExplosionParticleLifetime/2+1)

		emitter.Emit(Particle{
			X:        x + ox,
			Y:        y + oy,
			Rotation: rng.Float64() * 360,
			Scale:    3 + rng.Float64()*6,
			Color:    colors[rng.Intn(len(colors))],
			Lifetime: life,
		})
	}
}
