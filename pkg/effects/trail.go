package effects

import (
	"math/rand"

	"github.com/chewxy/math32"

	"skyfall/pkg/geom"
)

//TrailPool holds the smoke/fire streak particles shed by falling shells.
//One pool is shared by every shell in flight so the cap bounds the whole
//barrage, not each round.
type TrailPool struct {
	Particles []Particle
	max       int
}

func NewTrailPool(max int) *TrailPool {
	return &TrailPool{
		Particles: make([]Particle, 0, max),
		max:       max,
	}
}

func (t *TrailPool) Full() bool {
	return len(t.Particles) >= t.max
}

//Seed drops one trail particle where the shell just passed, drifting
//backwards along the flight path and slowly rising
func (t *TrailPool) Seed(pos, shellVel geom.Vec3, rng *rand.Rand) {
	if t.Full() {
		return
	}
	back := shellVel.Normalize().Scale(-1)
	drift := geom.Add(
		back.Scale(2.0+rng.Float32()*4.0),
		geom.Vec3{
			X: (rng.Float32() - 0.5) * 3.0,
			Y: 1.0 + rng.Float32()*2.0,
			Z: (rng.Float32() - 0.5) * 3.0,
		},
	)
	life := 1.2 + rng.Float32()*0.6
	t.Particles = append(t.Particles, Particle{
		Position: pos,
		Velocity: drift,
		Life:     life,
		MaxLife:  life,
		Size:     0.8 + rng.Float32()*1.2,
		Phase:    rng.Float32() * tau,
	})
}

//Update ages and drifts the trail. dt <= 0 is a no-op.
func (t *TrailPool) Update(dt float32) {
	if dt <= 0 {
		return
	}
	for i := range t.Particles {
		p := &t.Particles[i]
		p.Life -= dt
		p.Velocity = p.Velocity.Scale(1 - 2.0*dt)
		p.Velocity.Y += 0.8 * dt
		p.Position = geom.Add(p.Position, p.Velocity.Scale(dt))
		p.Size = math32.Min(0.6+p.AgeFrac()*2.5, 3.5)
	}
	t.Particles = compact(t.Particles)
}
