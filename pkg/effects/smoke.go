package effects

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/google/uuid"

	"skyfall/pkg/geom"
)

//injection scheduling: dense for the first couple of seconds, then a trickle
const (
	smokeEarlyWindow   = 2.0
	smokeEarlyInterval = 1.0 / 15.0
	smokeLateInterval  = 1.0 / 5.0
)

//SmokeCloud is a dense anchored marker cloud, spawned where a grenade
//detonates. Seeds a burst up front, then keeps injecting near the origin for
//the first part of its life; the back half is pure decay.
type SmokeCloud struct {
	ID         string
	Origin     geom.Vec3
	Particles  []Particle
	Age        float32
	Duration   float32
	SpawnTimer float32
	prof       SmokeProfile
}

func NewSmokeCloud(origin geom.Vec3, p SmokeProfile, rng *rand.Rand) *SmokeCloud {
	c := &SmokeCloud{
		ID:        uuid.New().String()[:8],
		Origin:    origin,
		Particles: make([]Particle, 0, p.BurstCore+p.BurstColumn),
		Duration:  p.Duration,
		prof:      p,
	}

	//dense core ring
	for i := 0; i < p.BurstCore; i++ {
		angle := rng.Float32() * tau
		dist := rng.Float32() * 2.0
		height := rng.Float32() * 3.0
		speed := 2.0 + rng.Float32()*5.0
		life := 8.0 + rng.Float32()*7.0
		c.Particles = append(c.Particles, Particle{
			Position: geom.Add(origin, geom.Vec3{
				X: math32.Cos(angle) * dist * 0.3,
				Y: height * 0.2,
				Z: math32.Sin(angle) * dist * 0.3,
			}),
			Velocity: geom.Vec3{
				X: math32.Cos(angle) * speed,
				Y: 1.5 + rng.Float32()*4.0,
				Z: math32.Sin(angle) * speed,
			},
			Life:    life,
			MaxLife: life,
			Size:    0.4 + rng.Float32()*0.8,
			Phase:   rng.Float32() * tau,
		})
	}

	//rising column
	for i := 0; i < p.BurstColumn; i++ {
		angle := rng.Float32() * tau
		spread := rng.Float32() * 1.5
		life := 6.0 + rng.Float32()*8.0
		c.Particles = append(c.Particles, Particle{
			Position: geom.Add(origin, geom.Vec3{
				X: math32.Cos(angle) * spread * 0.2,
				Z: math32.Sin(angle) * spread * 0.2,
			}),
			Velocity: geom.Vec3{
				X: (rng.Float32() - 0.5) * 1.5,
				Y: 3.0 + rng.Float32()*5.0,
				Z: (rng.Float32() - 0.5) * 1.5,
			},
			Life:    life,
			MaxLife: life,
			Size:    0.6 + rng.Float32()*1.2,
			Phase:   rng.Float32() * tau,
		})
	}

	return c
}

//Update steps the cloud one tick. dt <= 0 is a no-op.
func (c *SmokeCloud) Update(dt float32, rng *rand.Rand) {
	if dt <= 0 {
		return
	}
	c.Age += dt

	for i := range c.Particles {
		p := &c.Particles[i]
		p.Life -= dt

		//drag, then buoyancy (hot smoke rises), then per particle wind;
		//wind is a pure function of (phase, cloud age) so particles need no
		//random state after spawn
		p.Velocity = p.Velocity.Scale(1 - c.prof.Drag*dt)
		p.Velocity.Y += c.prof.Buoyancy * dt
		p.Velocity.X += math32.Sin(p.Phase+c.Age*0.3) * c.prof.WindAmp * dt
		p.Velocity.Z += math32.Cos(p.Phase*1.7+c.Age*0.2) * c.prof.WindAmp * dt

		p.Position = geom.Add(p.Position, p.Velocity.Scale(dt))

		//grow with age, capped
		p.Size = math32.Min(0.4+p.AgeFrac()*2.5, c.prof.SizeMax)

		//soft bounce off the ground plane of the origin
		if p.Position.Y < c.Origin.Y+0.1 {
			p.Position.Y = c.Origin.Y + 0.1
			p.Velocity.Y = math32.Abs(p.Velocity.Y) * 0.3
		}
	}
	c.Particles = compact(c.Particles)

	//sustained injection near the origin; stops entirely past the inject
	//window even though the cloud keeps aging
	if c.Age < c.Duration*c.prof.InjectFrac {
		c.SpawnTimer += dt
		interval := float32(smokeLateInterval)
		if c.Age < smokeEarlyWindow {
			interval = smokeEarlyInterval
		}
		if c.SpawnTimer > interval && len(c.Particles) < c.prof.MaxParticles {
			c.SpawnTimer = 0
			c.inject(rng)
		}
	}
}

func (c *SmokeCloud) inject(rng *rand.Rand) {
	angle := rng.Float32() * tau
	spread := rng.Float32() * 3.0
	life := 5.0 + rng.Float32()*6.0
	c.Particles = append(c.Particles, Particle{
		Position: geom.Add(c.Origin, geom.Vec3{
			X: math32.Cos(angle)*spread + (rng.Float32()-0.5)*2.0,
			Y: rng.Float32() * 2.0,
			Z: math32.Sin(angle)*spread + (rng.Float32()-0.5)*2.0,
		}),
		Velocity: geom.Vec3{
			X: (rng.Float32() - 0.5) * 2.0,
			Y: 1.0 + rng.Float32()*3.0,
			Z: (rng.Float32() - 0.5) * 2.0,
		},
		Life:    life,
		MaxLife: life,
		Size:    0.3 + rng.Float32()*0.5,
		Phase:   rng.Float32() * tau,
	})
}

//IsDone reports when the owning caller can discard the cloud
func (c *SmokeCloud) IsDone() bool {
	return len(c.Particles) == 0 && c.Age > c.Duration
}
