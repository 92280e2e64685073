package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Particle is a short-lived spark in world coordinates.
type Particle struct {
	X, Y    float32
	VX, VY  float32
	Size    float32
	Life    int
	MaxLife int
	Color   rl.Color
}

// ParticleSystem owns the live particles. Particles are frame-timed so they
// keep animating while the simulation is paused.
type ParticleSystem struct {
	Particles []Particle
	max       int
	rng       *rand.Rand
}

// NewParticleSystem creates a system capped at limit live particles.
func NewParticleSystem(limit int, seed int64) *ParticleSystem {
	return &ParticleSystem{
		Particles: make([]Particle, 0, limit),
		max:       limit,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Burst emits n particles radiating from (x, y).
func (s *ParticleSystem) Burst(x, y float32, n int, speed float32, color rl.Color) {
	for i := 0; i < n && len(s.Particles) < s.max; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		v := speed * (0.4 + 0.6*s.rng.Float32())
		life := 25 + s.rng.Intn(20)
		s.Particles = append(s.Particles, Particle{
			X:       x,
			Y:       y,
			VX:      float32(math.Cos(angle)) * v,
			VY:      float32(math.Sin(angle)) * v,
			Size:    2 + 2*s.rng.Float32(),
			Life:    life,
			MaxLife: life,
			Color:   color,
		})
	}
}

// Update moves and ages particles, compacting out the dead ones.
func (s *ParticleSystem) Update() {
	alive := s.Particles[:0]
	for _, p := range s.Particles {
		p.Life--
		if p.Life <= 0 {
			continue
		}
		p.X += p.VX
		p.Y += p.VY
		p.VX *= 0.94
		p.VY *= 0.94
		alive = append(alive, p)
	}
	s.Particles = alive
}

// Draw renders all particles, fading with remaining life.
func (s *ParticleSystem) Draw(toScreen func(x, y float32) (float32, float32), scale float32) {
	for i := range s.Particles {
		p := &s.Particles[i]
		lifeRatio := float32(p.Life) / float32(p.MaxLife)

		color := p.Color
		color.A = uint8(lifeRatio * float32(p.Color.A))

		size := p.Size * lifeRatio * scale
		if size < 0.5 {
			size = 0.5
		}
		sx, sy := toScreen(p.X, p.Y)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, size, color)
	}
}

// ring is an expanding or pulsing circle marking an ability.
type ring struct {
	x, y    float32
	radius  float32
	life    int
	maxLife int
	color   rl.Color
	filled  bool
}
