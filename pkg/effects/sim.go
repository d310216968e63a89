package effects

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"skyfall/pkg/geom"
)

//FrameContext is the per tick world context the owning scheduler supplies
type FrameContext struct {
	CamPos      geom.Vec3
	Density     float32 //weather density multiplier for ambient dust
	OrbitalTime float64
	Elapsed     float32
}

//Sim owns every live effects record and steps them once per simulation tick.
//Single threaded by design: the scheduler calls Update once per frame and the
//renderer reads the exposed slices afterwards.
type Sim struct {
	Log  *zap.SugaredLogger
	Rand *rand.Rand

	Dust     *DustField
	Clouds   []*SmokeCloud
	Grenades []*SmokeGrenade
	Barrage  *Barrage
	Shells   []*Shell
	Flashes  []*MuzzleFlash
	Trails   *TrailPool
	Casings  []GroundedShell

	Fleet  FleetProvider
	Ground HeightSampler

	Stats SimStats

	prof            Profile
	f               int
	rearmTimer      float32
	grenadeCooldown float32
}

//SimStats accumulates over the sim's lifetime
type SimStats struct {
	GrenadesThrown int
	CloudsSpawned  int
	BarragesFired  int
	ShellsFired    int
	Impacts        int
	PeakDust       int
	PeakSmoke      int
	PeakTrail      int
}

//New builds a sim from the given profile. fleet and ground are the external
//collaborators; pass OrbitalFleet{} and FlatGround(0) for a self contained run.
func New(p Profile, fleet FleetProvider, ground HeightSampler) (*Sim, error) {
	p.fillDefaults()
	if err := p.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid profile")
	}
	s := &Sim{
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		Dust:   NewDustField(p.Dust),
		Trails: NewTrailPool(p.Shell.TrailMax),
		Fleet:  fleet,
		Ground: ground,
		prof:   p,
	}
	if err := s.initLogs(p.LogConfig); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sim) initLogs(p LogConfig) error {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	switch p.LogLevel {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.StacktraceKey = ""
	if !p.LogShowCaller {
		config.EncoderConfig.CallerKey = ""
	}
	if p.LogFile != "" {
		config.OutputPaths = []string{p.LogFile}
	}

	logger, err := config.Build()
	if err != nil {
		return err
	}
	s.Log = logger.Sugar()
	return nil
}

//Frame returns a ms|frame label for log lines, assuming 60 ticks per second
func (s *Sim) Frame() string {
	return strconv.Itoa(1000*s.f/60) + "ms|" + strconv.Itoa(s.f)
}

//Profile returns the active tuning
func (s *Sim) Profile() Profile {
	return s.prof
}

//ThrowGrenade lobs a smoke marker from `from` along dir. Refused while the
//previous throw is still on cooldown.
func (s *Sim) ThrowGrenade(from, dir geom.Vec3) error {
	if s.grenadeCooldown > 0 {
		return errors.Errorf("grenade on cooldown for %.1fs", s.grenadeCooldown)
	}
	d := dir.Normalize()
	vel := d.Scale(s.prof.Grenade.ThrowSpeed)
	vel.Y += s.prof.Grenade.ThrowLift
	s.Grenades = append(s.Grenades, &SmokeGrenade{
		Position: geom.Add(from, d),
		Velocity: vel,
	})
	s.grenadeCooldown = s.prof.Grenade.Cooldown
	s.Stats.GrenadesThrown++
	s.Log.Infof("[%v] SMOKE OUT!", s.Frame())
	return nil
}

//SpawnBarrage begins a fire mission at target. dir biases the opening shot
//toward the emitter best facing that horizontal direction from the target.
//Refused while a barrage is active or the batteries are rearming.
func (s *Sim) SpawnBarrage(target, dir geom.Vec3, ctx FrameContext) (*Barrage, error) {
	if s.Barrage != nil {
		return nil, errors.New("barrage already in progress")
	}
	if s.rearmTimer > 0 {
		return nil, errors.Errorf("batteries rearming for %.1fs", s.rearmTimer)
	}
	b := NewBarrage(target, s.prof.Barrage, s.prof.Shell)
	origins := s.Fleet.Origins(ctx.CamPos, ctx.OrbitalTime, ctx.Elapsed)
	if len(origins) > 0 {
		b.FireIndex = BestOriginForDirection(origins, target, dir)
	}
	s.Barrage = b
	s.Stats.BarragesFired++
	s.Log.Infof("[%v] FLEET COM: Roger, red smoke acquired. Barrage %v firing.", s.Frame(), b.ID)
	return b, nil
}

//Update steps everything one tick and returns the records created this frame
//for the renderer to pick up. dt <= 0 is a no-op.
func (s *Sim) Update(dt float32, ctx FrameContext) FireEvents {
	if dt <= 0 {
		return FireEvents{}
	}
	s.f++

	if s.grenadeCooldown > 0 {
		s.grenadeCooldown -= dt
	}
	wasRearming := s.rearmTimer > 0
	s.rearmTimer -= dt
	if wasRearming && s.rearmTimer <= 0 {
		s.Log.Infof("[%v] FLEET COM: Artillery batteries ready. Red smoke to designate.", s.Frame())
	}

	s.updateGrenades(dt, ctx)
	s.updateClouds(dt)
	s.Dust.Update(dt, ctx.CamPos, ctx.Density, s.Rand)

	ev := s.tickBarrage(dt, ctx)
	s.updateShells(dt)
	s.updateFlashes(dt)
	s.Trails.Update(dt)

	if n := len(s.Dust.Particles); n > s.Stats.PeakDust {
		s.Stats.PeakDust = n
	}
	smoke := 0
	for _, c := range s.Clouds {
		smoke += len(c.Particles)
	}
	if smoke > s.Stats.PeakSmoke {
		s.Stats.PeakSmoke = smoke
	}
	if n := len(s.Trails.Particles); n > s.Stats.PeakTrail {
		s.Stats.PeakTrail = n
	}
	return ev
}

func (s *Sim) updateGrenades(dt float32, ctx FrameContext) {
	n := 0
	for _, g := range s.Grenades {
		g.Update(dt, s.prof.Grenade, s.Ground)
		if !g.Detonated {
			s.Grenades[n] = g
			n++
			continue
		}
		//red smoke: marker cloud plus barrage designation
		cloud := NewSmokeCloud(g.Position, s.prof.Smoke, s.Rand)
		s.Clouds = append(s.Clouds, cloud)
		s.Stats.CloudsSpawned++
		s.Log.Infof("[%v] smoke cloud %v popped at (%.0f, %.0f, %.0f)",
			s.Frame(), cloud.ID, g.Position.X, g.Position.Y, g.Position.Z)

		dir := geom.Sub(g.Position, ctx.CamPos).Horizontal()
		if _, err := s.SpawnBarrage(g.Position, dir, ctx); err != nil {
			s.Log.Infof("[%v] FLEET COM: negative on fire mission: %v", s.Frame(), err)
		}
	}
	s.Grenades = s.Grenades[:n]
}

func (s *Sim) updateClouds(dt float32) {
	n := 0
	for _, c := range s.Clouds {
		c.Update(dt, s.Rand)
		if c.IsDone() {
			s.Log.Debugf("\t [%v] smoke cloud %v dissipated", s.Frame(), c.ID)
			continue
		}
		s.Clouds[n] = c
		n++
	}
	s.Clouds = s.Clouds[:n]
}

func (s *Sim) tickBarrage(dt float32, ctx FrameContext) FireEvents {
	if s.Barrage == nil {
		return FireEvents{}
	}
	origins := s.Fleet.Origins(ctx.CamPos, ctx.OrbitalTime, ctx.Elapsed)
	ev := s.Barrage.Tick(dt, origins, s.Rand)
	for _, sh := range ev.Shells {
		s.Shells = append(s.Shells, sh)
		s.Stats.ShellsFired++
		s.Log.Debugf("\t [%v] barrage %v shell away, %v left, flight %.2fs",
			s.Frame(), s.Barrage.ID, s.Barrage.ShellsRemaining, sh.FlightTime)
	}
	s.Flashes = append(s.Flashes, ev.Flashes...)

	//the barrage object lives until its cosmetics are gone, then the
	//batteries go into rearm
	if s.Barrage.Exhausted() && len(s.Shells) == 0 && len(s.Flashes) == 0 {
		s.rearmTimer = s.prof.Barrage.RearmMin + s.Rand.Float32()*s.prof.Barrage.RearmVar
		s.Log.Infof("[%v] FLEET COM: Artillery batteries rearming. Stand by.", s.Frame())
		s.Barrage = nil
	}
	return ev
}

func (s *Sim) updateShells(dt float32) {
	g := s.prof.Shell.Gravity
	n := 0
	for _, sh := range s.Shells {
		prev := sh.Position
		sh.Age += dt
		sh.Velocity.Y -= g * dt
		sh.Position = geom.Add(sh.Position, sh.Velocity.Scale(dt))

		//streak behind the shell while it is moving fast enough
		if sh.Velocity.LengthSquared() > 100 {
			s.Trails.Seed(prev, sh.Velocity, s.Rand)
		}

		surfaceY := s.Ground.SampleHeight(sh.Position.X, sh.Position.Z)
		if sh.Position.Y <= surfaceY+0.5 {
			sh.Detonated = true
			s.onImpact(sh)
			continue
		}
		s.Shells[n] = sh
		n++
	}
	s.Shells = s.Shells[:n]
}

func (s *Sim) onImpact(sh *Shell) {
	s.Stats.Impacts++

	//one big spent casing scattered near the crater
	angle := s.Rand.Float32() * tau
	dist := 2.0 + s.Rand.Float32()*5.0
	x := sh.Position.X + math32.Cos(angle)*dist
	z := sh.Position.Z + math32.Sin(angle)*dist
	pos := geom.Vec3{X: x, Y: s.Ground.SampleHeight(x, z) + 0.15, Z: z}
	s.Casings = append(s.Casings, NewGroundedShell(pos, s.Rand))

	s.Log.Debugf("\t [%v] impact at (%.0f, %.0f) after %.2fs, %.1fm off mark",
		s.Frame(), sh.Position.X, sh.Position.Z, sh.Age,
		geom.Distance(sh.Position.Horizontal(), sh.Target.Horizontal()))
}

func (s *Sim) updateFlashes(dt float32) {
	n := 0
	for _, f := range s.Flashes {
		f.Age += dt
		if f.IsDone() {
			continue
		}
		s.Flashes[n] = f
		n++
	}
	s.Flashes = s.Flashes[:n]
}
