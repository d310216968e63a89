package effects

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyfall/pkg/geom"
)

//integrate the solved velocity analytically and check the arc crosses the
//target at exactly the chosen flight time
func TestSolveLaunchLandsOnTarget(t *testing.T) {
	cases := []struct {
		name string
		from geom.Vec3
		to   geom.Vec3
	}{
		{"orbital shot down", geom.Vec3{X: 120, Y: 280, Z: -40}, geom.Vec3{X: 10, Y: 0, Z: 25}},
		{"uphill", geom.Vec3{}, geom.Vec3{X: 40, Y: 25, Z: 10}},
		{"level", geom.Vec3{Y: 5}, geom.Vec3{X: -60, Y: 5, Z: 80}},
		{"near vertical", geom.Vec3{X: 5, Y: 300, Z: 5}, geom.Vec3{X: 5.1, Y: 0, Z: 5}},
	}
	times := []float32{0.5, 0.62, 0.7, 1.5}
	const g = float32(90)

	for _, c := range cases {
		for _, ft := range times {
			vel := SolveLaunch(c.from, c.to, g, ft)

			x := c.from.X + vel.X*ft
			y := c.from.Y + vel.Y*ft - 0.5*g*ft*ft
			z := c.from.Z + vel.Z*ft

			assert.InDelta(t, c.to.X, x, 0.1, "%v t=%v x", c.name, ft)
			assert.InDelta(t, c.to.Y, y, 0.1, "%v t=%v y", c.name, ft)
			assert.InDelta(t, c.to.Z, z, 0.1, "%v t=%v z", c.name, ft)
		}
	}
}

func TestSolveLaunchNoNaN(t *testing.T) {
	//launch and target on the exact same vertical line
	vel := SolveLaunch(geom.Vec3{Y: 100}, geom.Vec3{}, 90, 0.6)
	assert.False(t, vel.X != vel.X || vel.Y != vel.Y || vel.Z != vel.Z, "velocity must not be NaN")
	//straight down: horizontal is floored, vertical still solved exactly
	y := float32(100) + vel.Y*0.6 - 0.5*90*0.6*0.6
	assert.InDelta(t, 0, y, 0.1)
}

func TestNewShellFlightTimeBand(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := Defaults().Shell
	for i := 0; i < 100; i++ {
		sh := NewShell(geom.Vec3{Y: 280}, geom.Vec3{X: 30}, p, rng)
		require.GreaterOrEqual(t, sh.FlightTime, p.FlightTimeMin)
		require.Less(t, sh.FlightTime, p.FlightTimeMin+p.FlightTimeBand)
		require.False(t, sh.Detonated)
		require.Equal(t, sh.From, sh.Position)
	}
}

func TestFlatGround(t *testing.T) {
	g := FlatGround(7)
	if g.SampleHeight(100, -200) != 7 {
		t.Errorf("flat ground is not flat")
	}
}
