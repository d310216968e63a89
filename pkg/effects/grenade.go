package effects

import (
	"skyfall/pkg/geom"
)

//SmokeGrenade is a thrown marker grenade, in flight until it hits the ground
//or its fuse runs out. A detonated grenade becomes a SmokeCloud and, when the
//batteries are ready, designates a barrage target.
type SmokeGrenade struct {
	Position  geom.Vec3
	Velocity  geom.Vec3
	Age       float32
	Detonated bool
}

//Update integrates the grenade one tick. dt <= 0 is a no-op.
func (g *SmokeGrenade) Update(dt float32, prof GrenadeProfile, ground HeightSampler) {
	if dt <= 0 || g.Detonated {
		return
	}
	g.Age += dt
	g.Velocity.Y -= prof.Gravity * dt
	g.Position = geom.Add(g.Position, g.Velocity.Scale(dt))

	surfaceY := ground.SampleHeight(g.Position.X, g.Position.Z)
	if g.Position.Y <= surfaceY+0.2 {
		g.Position.Y = surfaceY + 0.2
		g.Detonated = true
	}
	if g.Age > prof.FuseTime {
		g.Detonated = true
	}
}
