package effects

import (
	"math/rand"

	"github.com/google/uuid"

	"skyfall/pkg/geom"
)

//muzzle point offset from the ship toward the target and down, so the flash
//sits between hull and ground and is visible when looking up
const (
	muzzleForward = 8.0
	muzzleDrop    = 18.0
)

//MuzzleFlash is a brief cosmetic at the firing ship
type MuzzleFlash struct {
	Position geom.Vec3
	Facing   geom.Vec3
	Age      float32
	Duration float32
}

func (f *MuzzleFlash) IsDone() bool {
	return f.Age >= f.Duration
}

//GroundedShell is a spent casing lying near an impact point. Placed once,
//never simulated again; the renderer draws it as an elongated cylinder.
type GroundedShell struct {
	Position geom.Vec3
	Yaw      float32
	TiltX    float32
	TiltZ    float32
	Scale    geom.Vec3
}

func NewGroundedShell(pos geom.Vec3, rng *rand.Rand) GroundedShell {
	//random yaw plus a slight tilt so casings lie at different angles
	jitter := func(base float32) float32 {
		return base * (0.9 + rng.Float32()*0.2)
	}
	return GroundedShell{
		Position: pos,
		Yaw:      rng.Float32() * tau,
		TiltX:    (rng.Float32() - 0.5) * 0.4,
		TiltZ:    (rng.Float32() - 0.5) * 0.3,
		Scale: geom.Vec3{
			X: jitter(0.25),
			Y: jitter(0.6),
			Z: jitter(0.25),
		},
	}
}

//FireEvents is what a barrage tick produced; the caller hands the records to
//the renderer and the Sim keeps simulating them
type FireEvents struct {
	Shells  []*Shell
	Flashes []*MuzzleFlash
}

//Barrage sequences a fixed number of shells at one target, round robining
//over whatever origins the fleet provider reports each shot
type Barrage struct {
	ID              string
	Target          geom.Vec3
	ShellsRemaining int
	FireTimer       float32
	FireIndex       int

	prof      BarrageProfile
	shellProf ShellProfile
}

//NewBarrage readies a full barrage at target. FireTimer starts at zero so
//the opening shot goes out on the first qualifying tick.
func NewBarrage(target geom.Vec3, p BarrageProfile, sp ShellProfile) *Barrage {
	return &Barrage{
		ID:              uuid.New().String()[:8],
		Target:          target,
		ShellsRemaining: p.ShellCount,
		prof:            p,
		shellProf:       sp,
	}
}

//Exhausted reports that every shell has been fired; cosmetic records may
//still be live, discarding the barrage is the owner's call
func (b *Barrage) Exhausted() bool {
	return b.ShellsRemaining == 0
}

//Tick advances the fire timer and fires at most one shell. An empty origin
//list skips the shot and retries next tick; it is "no valid origin yet", not
//an error. dt <= 0 is a no-op.
func (b *Barrage) Tick(dt float32, origins []geom.Vec3, rng *rand.Rand) FireEvents {
	var ev FireEvents
	if dt <= 0 {
		return ev
	}
	b.FireTimer -= dt
	if b.FireTimer > 0 || b.ShellsRemaining == 0 {
		return ev
	}
	if len(origins) == 0 {
		return ev
	}

	origin := origins[b.FireIndex%len(origins)]

	//scatter each round around the designated point
	target := geom.Add(b.Target, geom.Vec3{
		X: (rng.Float32() - 0.5) * b.prof.TargetScatter,
		Z: (rng.Float32() - 0.5) * b.prof.TargetScatter,
	})

	toTgt := geom.Sub(target, origin).Normalize()
	muzzle := geom.Add(origin, geom.Add(toTgt.Scale(muzzleForward), geom.Vec3{Y: -muzzleDrop}))

	ev.Shells = append(ev.Shells, NewShell(muzzle, target, b.shellProf, rng))
	ev.Flashes = append(ev.Flashes, &MuzzleFlash{
		Position: muzzle,
		Facing:   toTgt,
		Duration: b.prof.FlashDuration,
	})

	b.FireTimer = b.prof.FireDelay
	b.ShellsRemaining--
	b.FireIndex = (b.FireIndex + 1) % len(origins)
	return ev
}
