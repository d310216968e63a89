package effects

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyfall/pkg/geom"
)

func newTestSim(t *testing.T) *Sim {
	p := Defaults()
	p.LogConfig.LogLevel = "error"
	s, err := New(p, OrbitalFleet{}, FlatGround(0))
	require.NoError(t, err)
	s.Rand = rand.New(rand.NewSource(99))
	return s
}

func runSim(s *Sim, seconds float32) {
	const dt = float32(1.0 / 60.0)
	var elapsed float32
	for elapsed < seconds {
		s.Update(dt, FrameContext{
			CamPos:      geom.Vec3{Y: 2},
			Density:     1.0,
			OrbitalTime: float64(elapsed),
			Elapsed:     elapsed,
		})
		elapsed += dt
	}
}

func TestFullFireMission(t *testing.T) {
	s := newTestSim(t)
	p := s.Profile()

	require.NoError(t, s.ThrowGrenade(geom.Vec3{Y: 2}, geom.Vec3{X: 1, Z: 0.3}))
	runSim(s, 30)

	assert.Equal(t, 1, s.Stats.GrenadesThrown)
	assert.Equal(t, 1, s.Stats.CloudsSpawned, "red smoke must pop a cloud")
	assert.Equal(t, 1, s.Stats.BarragesFired, "red smoke must designate a barrage")
	assert.Equal(t, p.Barrage.ShellCount, s.Stats.ShellsFired)
	assert.Equal(t, p.Barrage.ShellCount, s.Stats.Impacts, "every shell must reach the ground")
	assert.Len(t, s.Casings, p.Barrage.ShellCount, "one casing per impact")
	assert.Empty(t, s.Shells, "no shells left in flight")
	assert.Empty(t, s.Flashes, "flashes expired")
	assert.Nil(t, s.Barrage, "barrage discarded after cosmetics expired")
	assert.LessOrEqual(t, s.Stats.PeakTrail, p.Shell.TrailMax)
	assert.Greater(t, s.Stats.PeakTrail, 0, "falling shells must shed a trail")
	assert.Greater(t, s.Stats.PeakSmoke, 0)
	assert.Greater(t, s.Stats.PeakDust, 0)
}

func TestBarrageRefusedWhileActiveOrRearming(t *testing.T) {
	s := newTestSim(t)
	ctx := FrameContext{CamPos: geom.Vec3{Y: 2}}

	_, err := s.SpawnBarrage(geom.Vec3{X: 40}, geom.Vec3{X: 1}, ctx)
	require.NoError(t, err)

	_, err = s.SpawnBarrage(geom.Vec3{X: 40}, geom.Vec3{X: 1}, ctx)
	assert.Error(t, err, "second barrage while one is active")

	runSim(s, 30) //barrage completes, batteries go into rearm

	_, err = s.SpawnBarrage(geom.Vec3{X: 40}, geom.Vec3{X: 1}, ctx)
	assert.Error(t, err, "barrage while rearming")

	runSim(s, 70) //longest possible rearm is RearmMin + RearmVar

	_, err = s.SpawnBarrage(geom.Vec3{X: 40}, geom.Vec3{X: 1}, ctx)
	assert.NoError(t, err, "batteries ready again after rearm")
}

func TestGrenadeCooldown(t *testing.T) {
	s := newTestSim(t)
	require.NoError(t, s.ThrowGrenade(geom.Vec3{Y: 2}, geom.Vec3{X: 1}))
	assert.Error(t, s.ThrowGrenade(geom.Vec3{Y: 2}, geom.Vec3{X: 1}), "second throw inside cooldown")
	runSim(s, s.Profile().Grenade.Cooldown+1)
	assert.NoError(t, s.ThrowGrenade(geom.Vec3{Y: 2}, geom.Vec3{X: 1}))
}

func TestSimZeroDtIsNoop(t *testing.T) {
	s := newTestSim(t)
	require.NoError(t, s.ThrowGrenade(geom.Vec3{Y: 2}, geom.Vec3{X: 1}))
	runSim(s, 5)

	dust := len(s.Dust.Particles)
	clouds := len(s.Clouds)
	stats := s.Stats
	for i := 0; i < 100; i++ {
		ev := s.Update(0, FrameContext{CamPos: geom.Vec3{Y: 2}, Density: 1})
		assert.Empty(t, ev.Shells)
	}
	assert.Equal(t, dust, len(s.Dust.Particles))
	assert.Equal(t, clouds, len(s.Clouds))
	assert.Equal(t, stats, s.Stats)
}

func TestNewRejectsBadProfile(t *testing.T) {
	p := Defaults()
	p.Shell.Gravity = -5
	_, err := New(p, OrbitalFleet{}, FlatGround(0))
	assert.Error(t, err)

	p = Defaults()
	p.Smoke.InjectFrac = 1.5
	_, err = New(p, OrbitalFleet{}, FlatGround(0))
	assert.Error(t, err)
}

func TestGrenadeDetonatesOnGround(t *testing.T) {
	s := newTestSim(t)
	require.NoError(t, s.ThrowGrenade(geom.Vec3{Y: 2}, geom.Vec3{X: 1}))
	require.Len(t, s.Grenades, 1)

	runSim(s, s.Profile().Grenade.FuseTime+1)
	assert.Empty(t, s.Grenades, "grenade must have detonated")
	require.Len(t, s.Clouds, 1)
	//cloud anchored at the impact, on the ground plane
	assert.InDelta(t, 0.2, s.Clouds[0].Origin.Y, 0.25)
}
