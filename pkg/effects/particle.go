package effects

import (
	"skyfall/pkg/geom"
)

//Shape is the render primitive of a particle; a small closed set, so an enum
//and not an interface
type Shape int

const (
	ShapeBillboard Shape = iota
	ShapeSphere
)

func (s Shape) String() string {
	if s == ShapeSphere {
		return "sphere"
	}
	return "billboard"
}

//Particle is one simulated point; owned by the pool that spawned it, the
//renderer only ever reads it
type Particle struct {
	Position geom.Vec3
	Velocity geom.Vec3
	Life     float32 //remaining seconds; <= 0 means dead
	MaxLife  float32
	Size     float32
	Phase    float32 //fixed at spawn, drives per particle oscillation
	Spin     float32 //render orientation only
	Shape    Shape
}

//AgeFrac returns 0 at spawn and 1 at death
func (p *Particle) AgeFrac() float32 {
	if p.MaxLife <= 0 {
		return 1
	}
	f := 1 - p.Life/p.MaxLife
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

//compact drops dead particles with a single in place sweep; relative order of
//survivors is preserved but callers must not rely on it
func compact(ps []Particle) []Particle {
	alive := 0
	for i := range ps {
		if ps[i].Life <= 0 {
			continue
		}
		ps[alive] = ps[i]
		alive++
	}
	return ps[:alive]
}
