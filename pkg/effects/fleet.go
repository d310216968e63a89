package effects

import (
	"github.com/chewxy/math32"

	"skyfall/pkg/geom"
)

//FleetProvider supplies the ordered emission origins (ship positions) a
//barrage fires from. The controller only sees an ordered list and round
//robins over it; how many ships exist and of what class is the provider's
//business.
type FleetProvider interface {
	Origins(camPos geom.Vec3, orbitalTime float64, elapsed float32) []geom.Vec3
}

//corvette orbit params (radius, phase, speed); positions must stay in sync
//with whatever draws the ships, so these are fixed tables, not random
var corvetteOrbits = [8][3]float32{
	{95.0, 0.0, 0.14},
	{130.0, 2.2, 0.11},
	{65.0, 1.4, 0.18},
	{165.0, 4.2, 0.09},
	{80.0, 3.6, 0.16},
	{115.0, 5.4, 0.12},
	{75.0, 0.8, 0.19},
	{140.0, 2.8, 0.10},
}

//destroyer orbit params (phase offset, y offset), all on one shared ring
var destroyerOrbits = [3][2]float32{
	{0.0, 80.0},
	{math32.Pi, 40.0},
	{math32.Pi * 0.6, 120.0},
}

const (
	fleetAltitude    = 280.0 //sky dome height above the camera
	destroyerRadius  = 220.0
	corvetteYStagger = 18.0
)

//OrbitalFleet is the stock fleet layout: eight corvettes on individual
//orbits plus three destroyers on a wide shared ring, all circling the
//camera. Origins interleaves the two classes so a round robin controller
//alternates corvette/destroyer shots.
type OrbitalFleet struct{}

func (OrbitalFleet) Origins(camPos geom.Vec3, orbitalTime float64, elapsed float32) []geom.Vec3 {
	ot := float32(orbitalTime)
	skyY := camPos.Y + fleetAltitude

	corvettes := make([]geom.Vec3, len(corvetteOrbits))
	for i, o := range corvetteOrbits {
		angle := o[1] + ot*o[2] + elapsed*0.015
		corvettes[i] = geom.Vec3{
			X: camPos.X + math32.Cos(angle)*o[0],
			Y: skyY + float32(i)*corvetteYStagger,
			Z: camPos.Z + math32.Sin(angle)*o[0],
		}
	}

	dAngle := ot*0.07 + elapsed*0.008
	destroyers := make([]geom.Vec3, len(destroyerOrbits))
	for i, o := range destroyerOrbits {
		a := dAngle + o[0]
		destroyers[i] = geom.Vec3{
			X: camPos.X + math32.Cos(a)*destroyerRadius,
			Y: skyY + o[1],
			Z: camPos.Z + math32.Sin(a)*destroyerRadius,
		}
	}

	out := make([]geom.Vec3, 0, len(corvettes)+len(destroyers))
	for i := 0; i < len(corvettes) || i < len(destroyers); i++ {
		if i < len(corvettes) {
			out = append(out, corvettes[i])
		}
		if i < len(destroyers) {
			out = append(out, destroyers[i])
		}
	}
	return out
}

//BestOriginForDirection returns the index of the origin whose horizontal
//direction from center best matches dir (highest dot of the normalized XZ
//vectors). Ties keep the first occurrence; a zero length dir normalizes to
//the zero vector and simply yields index 0.
func BestOriginForDirection(origins []geom.Vec3, center, dir geom.Vec3) int {
	dirXZ := dir.Horizontal().Normalize()
	best := 0
	bestDot := float32(-2)
	for i, pos := range origins {
		to := geom.Sub(pos, center).Horizontal().Normalize()
		if d := geom.Dot(to, dirXZ); d > bestDot {
			bestDot = d
			best = i
		}
	}
	return best
}
