package object

// ParticleBuffer is a fixed-capacity FIFO of particles. Pushing into a full
// buffer evicts the oldest particle; expiry keeps insertion order.
type ParticleBuffer struct {
	items []Particle // ring storage, len == capacity
	head  int        // index of the oldest particle
	size  int
}

// NewParticleBuffer creates a buffer holding at most capacity particles.
// A capacity below one is raised to one.
func NewParticleBuffer(capacity int) *ParticleBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &ParticleBuffer{
		items: make([]Particle, capacity),
	}
}

// Push appends a particle, evicting the oldest first when full. Particles
// without a positive lifetime would never expire and are dropped.
func (b *ParticleBuffer) Push(p Particle) {
	if p.Lifetime <= 0 {
		return
	}
	if b.size == len(b.items) {
		b.head = (b.head + 1) % len(b.items)
		b.size--
	}
	b.items[(b.head+b.size)%len(b.items)] = p
	b.size++
}

// Emit implements Emitter.
func (b *ParticleBuffer) Emit(p Particle) {
	b.Push(p)
}

// Tick ages every particle by one frame, then drops the ones that expired.
func (b *ParticleBuffer) Tick() {
	n := len(b.items)
	for i := 0; i < b.size; i++ {
		b.items[(b.head+i)%n].Tick()
	}

	// Compact survivors towards the head; the write cursor never passes the read cursor.
	kept := 0
	for i := 0; i < b.size; i++ {
		p := b.items[(b.head+i)%n]
		if p.Expired() {
			continue
		}
		b.items[(b.head+kept)%n] = p
		kept++
	}
	b.size = kept
}

// Len returns the number of resident particles.
func (b *ParticleBuffer) Len() int {
	return b.size
}

// Cap returns the buffer capacity.
func (b *ParticleBuffer) Cap() int {
	return len(b.items)
}

// At returns the i-th particle, 0 being the oldest.
func (b *ParticleBuffer) At(i int) Particle {
	if i < 0 || i >= b.size {
		panic("object: particle index out of range")
	}
	return b.items[(b.head+i)%len(b.items)]
}

// Particles returns a copy of the resident particles, oldest first.
func (b *ParticleBuffer) Particles() []Particle {
	out := make([]Particle, b.size)
	for i := range out {
		out[i] = b.items[(b.head+i)%len(b.items)]
	}
	return out
}

// Clear removes every particle.
func (b *ParticleBuffer) Clear() {
	b.head = 0
	b.size = 0
}
