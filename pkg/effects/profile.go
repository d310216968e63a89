package effects

import (
	"github.com/pkg/errors"
)

//Profile holds every tunable of the effects core; zero values are filled in
//from Defaults so a partial yaml file still runs
type Profile struct {
	Label     string         `yaml:"Label"`
	Dust      DustProfile    `yaml:"Dust"`
	Smoke     SmokeProfile   `yaml:"Smoke"`
	Shell     ShellProfile   `yaml:"Shell"`
	Barrage   BarrageProfile `yaml:"Barrage"`
	Grenade   GrenadeProfile `yaml:"Grenade"`
	LogConfig LogConfig
}

type LogConfig struct {
	LogLevel      string
	LogFile       string
	LogShowCaller bool
}

//DustProfile ...
type DustProfile struct {
	BaseMax      int     `yaml:"BaseMax"`      //particle ceiling at density 1.0
	BaseInterval float32 `yaml:"BaseInterval"` //seconds between spawns at density 1.0
	SpreadXZ     float32 `yaml:"SpreadXZ"`     //horizontal spawn box around the camera
	SpreadY      float32 `yaml:"SpreadY"`
	LifeMin      float32 `yaml:"LifeMin"`
	LifeVar      float32 `yaml:"LifeVar"`
	SpinRate     float32 `yaml:"SpinRate"`
}

//SmokeProfile ...
type SmokeProfile struct {
	Duration     float32 `yaml:"Duration"`
	MaxParticles int     `yaml:"MaxParticles"` //ceiling for continuous injection
	BurstCore    int     `yaml:"BurstCore"`    //initial dense core particles
	BurstColumn  int     `yaml:"BurstColumn"`  //initial rising column particles
	Drag         float32 `yaml:"Drag"`
	Buoyancy     float32 `yaml:"Buoyancy"`
	WindAmp      float32 `yaml:"WindAmp"`
	SizeMax      float32 `yaml:"SizeMax"`
	InjectFrac   float32 `yaml:"InjectFrac"` //fraction of Duration that still injects
}

//ShellProfile ...
type ShellProfile struct {
	Gravity        float32 `yaml:"Gravity"`
	FlightTimeMin  float32 `yaml:"FlightTimeMin"`
	FlightTimeBand float32 `yaml:"FlightTimeBand"`
	TrailMax       int     `yaml:"TrailMax"` //cap on trail particles across all shells
}

//BarrageProfile ...
type BarrageProfile struct {
	ShellCount    int     `yaml:"ShellCount"`
	FireDelay     float32 `yaml:"FireDelay"` //seconds between shells
	TargetScatter float32 `yaml:"TargetScatter"`
	RearmMin      float32 `yaml:"RearmMin"`
	RearmVar      float32 `yaml:"RearmVar"`
	FlashDuration float32 `yaml:"FlashDuration"`
}

//GrenadeProfile ...
type GrenadeProfile struct {
	Cooldown   float32 `yaml:"Cooldown"`
	ThrowSpeed float32 `yaml:"ThrowSpeed"`
	ThrowLift  float32 `yaml:"ThrowLift"`
	Gravity    float32 `yaml:"Gravity"`
	FuseTime   float32 `yaml:"FuseTime"` //auto detonate even if still airborne
}

//Defaults returns the stock tuning; every cmd starts from this and overlays
//whatever the yaml file carries
func Defaults() Profile {
	return Profile{
		Label: "default",
		Dust: DustProfile{
			BaseMax:      150,
			BaseInterval: 0.05,
			SpreadXZ:     30,
			SpreadY:      10,
			LifeMin:      4,
			LifeVar:      4,
			SpinRate:     0.5,
		},
		Smoke: SmokeProfile{
			Duration:     18,
			MaxParticles: 150,
			BurstCore:    120,
			BurstColumn:  80,
			Drag:         1.8,
			Buoyancy:     0.5,
			WindAmp:      0.3,
			SizeMax:      3.0,
			InjectFrac:   0.6,
		},
		Shell: ShellProfile{
			Gravity:        90,
			FlightTimeMin:  0.5,
			FlightTimeBand: 0.2,
			TrailMax:       280,
		},
		Barrage: BarrageProfile{
			ShellCount:    6,
			FireDelay:     0.45,
			TargetScatter: 25,
			RearmMin:      40,
			RearmVar:      25,
			FlashDuration: 0.6,
		},
		Grenade: GrenadeProfile{
			Cooldown:   5,
			ThrowSpeed: 25,
			ThrowLift:  12,
			Gravity:    20,
			FuseTime:   3,
		},
		LogConfig: LogConfig{LogLevel: "warn"},
	}
}

func (p *Profile) fillDefaults() {
	d := Defaults()
	if p.Dust.BaseMax == 0 {
		p.Dust = d.Dust
	}
	if p.Smoke.Duration == 0 {
		p.Smoke = d.Smoke
	}
	if p.Shell.Gravity == 0 {
		p.Shell = d.Shell
	}
	if p.Barrage.ShellCount == 0 {
		p.Barrage = d.Barrage
	}
	if p.Grenade.ThrowSpeed == 0 {
		p.Grenade = d.Grenade
	}
	if p.LogConfig.LogLevel == "" {
		p.LogConfig.LogLevel = d.LogConfig.LogLevel
	}
}

func (p *Profile) validate() error {
	if p.Shell.Gravity <= 0 {
		return errors.Errorf("shell gravity must be positive, got %v", p.Shell.Gravity)
	}
	if p.Shell.FlightTimeMin <= 0 {
		return errors.Errorf("shell flight time must be positive, got %v", p.Shell.FlightTimeMin)
	}
	if p.Barrage.ShellCount <= 0 {
		return errors.Errorf("barrage shell count must be positive, got %v", p.Barrage.ShellCount)
	}
	if p.Barrage.FireDelay <= 0 {
		return errors.Errorf("barrage fire delay must be positive, got %v", p.Barrage.FireDelay)
	}
	if p.Smoke.Duration <= 0 {
		return errors.Errorf("smoke duration must be positive, got %v", p.Smoke.Duration)
	}
	if p.Smoke.InjectFrac < 0 || p.Smoke.InjectFrac > 1 {
		return errors.Errorf("smoke inject fraction must be in [0,1], got %v", p.Smoke.InjectFrac)
	}
	return nil
}
