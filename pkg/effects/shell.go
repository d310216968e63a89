package effects

import (
	"math/rand"

	"github.com/chewxy/math32"

	"skyfall/pkg/geom"
)

//HeightSampler resolves terrain surface height at a world XZ point. The game
//injects its terrain here; tests and the headless runner use FlatGround.
type HeightSampler interface {
	SampleHeight(x, z float32) float32
}

//FlatGround is a constant height plane
type FlatGround float32

func (g FlatGround) SampleHeight(x, z float32) float32 {
	return float32(g)
}

//Shell is an artillery round arcing from an orbital emitter down to a ground
//target. The velocity is solved once at creation; the record is pure state
//and the Sim integrates it forward until impact.
type Shell struct {
	Position   geom.Vec3
	Velocity   geom.Vec3
	From       geom.Vec3 //launch point, kept for the muzzle flash
	Target     geom.Vec3
	Age        float32
	FlightTime float32
	Detonated  bool
}

//SolveLaunch returns the constant launch velocity that carries a point mass
//from `from` to `target` in exactly t seconds under gravity g and no drag.
//Works shooting up or down a slope; a near vertical shot has its horizontal
//distance floored to avoid blowing up the division.
func SolveLaunch(from, target geom.Vec3, g, t float32) geom.Vec3 {
	to := geom.Sub(target, from)
	horiz := to.Horizontal()
	dist := math32.Max(horiz.Length(), 1.0)
	dir := horiz.Scale(1 / dist)

	//vertical: y(t) = vy*t - 0.5*g*t^2 = dy  =>  vy = (dy + 0.5*g*t^2) / t
	vy := (to.Y + 0.5*g*t*t) / t
	vel := dir.Scale(dist / t)
	vel.Y = vy
	return vel
}

//NewShell fires one round with a randomized flight time inside the profile's
//band, so shells of a barrage do not all arrive in lockstep
func NewShell(from, target geom.Vec3, p ShellProfile, rng *rand.Rand) *Shell {
	t := p.FlightTimeMin + rng.Float32()*p.FlightTimeBand
	return &Shell{
		Position:   from,
		Velocity:   SolveLaunch(from, target, p.Gravity, t),
		From:       from,
		Target:     target,
		FlightTime: t,
	}
}
