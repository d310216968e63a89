package effects

import (
	"math/rand"

	"github.com/chewxy/math32"

	"skyfall/pkg/geom"
)

const tau = 2 * math32.Pi

//density multiplier bounds; denser weather raises the ceiling and shortens
//the spawn interval, but never past these
const (
	dustDensityCeil  = 2.5
	dustDensityFloor = 0.5
)

//DustField is the ambient atmospheric dust floating around the camera.
//Low density, camera relative, mixed billboard/sphere shapes.
type DustField struct {
	Particles  []Particle
	SpawnTimer float32
	prof       DustProfile
}

func NewDustField(p DustProfile) *DustField {
	return &DustField{
		Particles: make([]Particle, 0, int(float32(p.BaseMax)*dustDensityCeil)),
		prof:      p,
	}
}

//Update steps the field one tick. density 1.0 is clear weather; cloudy/rain
//pushes it up for more visible motes. dt <= 0 is a no-op.
func (d *DustField) Update(dt float32, camPos geom.Vec3, density float32, rng *rand.Rand) {
	if dt <= 0 {
		return
	}
	d.SpawnTimer += dt

	max := int(float32(d.prof.BaseMax) * math32.Min(density, dustDensityCeil))
	interval := d.prof.BaseInterval / math32.Max(density, dustDensityFloor)
	//reset to zero, not decrement: a long frame hitch must not trigger a
	//catch up burst of spawns
	if d.SpawnTimer > interval && len(d.Particles) < max {
		d.SpawnTimer = 0
		d.spawn(camPos, rng)
	}

	for i := range d.Particles {
		p := &d.Particles[i]
		p.Position = geom.Add(p.Position, p.Velocity.Scale(dt))
		p.Life -= dt
		p.Spin += dt * d.prof.SpinRate //gentle rotation, render only
	}
	d.Particles = compact(d.Particles)
}

func (d *DustField) spawn(camPos geom.Vec3, rng *rand.Rand) {
	pos := geom.Vec3{
		X: camPos.X + (rng.Float32()-0.5)*d.prof.SpreadXZ,
		Y: camPos.Y + (rng.Float32()-0.3)*d.prof.SpreadY,
		Z: camPos.Z + (rng.Float32()-0.5)*d.prof.SpreadXZ,
	}
	//70% billboard, 30% sphere for variety; spheres are smaller and denser
	shape := ShapeBillboard
	size := 0.03 + rng.Float32()*0.06
	if rng.Float32() >= 0.7 {
		shape = ShapeSphere
		size = 0.015 + rng.Float32()*0.03
	}
	life := d.prof.LifeMin + rng.Float32()*d.prof.LifeVar
	d.Particles = append(d.Particles, Particle{
		Position: pos,
		Velocity: geom.Vec3{
			X: (rng.Float32() - 0.5) * 0.5,
			Y: (rng.Float32() - 0.5) * 0.2,
			Z: (rng.Float32() - 0.5) * 0.5,
		},
		Life:    life,
		MaxLife: life,
		Size:    size,
		Shape:   shape,
		Spin:    rng.Float32() * tau,
		Phase:   rng.Float32() * tau,
	})
}
