package main

import (
	"flag"
	"io/ioutil"
	"log"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"skyfall/pkg/effects"
	"skyfall/pkg/geom"
)

func main() {

	debugPtr := flag.String("d", "info", "output level: debug, info, warn")
	secondsPtr := flag.Int("s", 60, "how many seconds to run the sim for")
	profilePtr := flag.String("p", "./config.yaml", "tuning profile to use")
	seedPtr := flag.Int64("seed", 0, "rng seed; 0 seeds from the clock")
	flag.Parse()

	cfg := effects.Defaults()
	if source, err := ioutil.ReadFile(*profilePtr); err == nil {
		if err = yaml.Unmarshal(source, &cfg); err != nil {
			log.Fatal(err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatal(err)
	}
	cfg.LogConfig.LogLevel = *debugPtr

	s, err := effects.New(cfg, effects.OrbitalFleet{}, effects.FlatGround(0))
	if err != nil {
		log.Fatal(err)
	}
	if *seedPtr != 0 {
		s.Rand = rand.New(rand.NewSource(*seedPtr))
	}

	//fixed 60Hz steps; throw a marker grenade one second in and let the
	//resulting red smoke designate the barrage
	const dt = float32(1.0 / 60.0)
	camPos := geom.Vec3{Y: 2}

	start := time.Now()
	var elapsed float32
	for f := 0; f < 60**secondsPtr; f++ {
		ctx := effects.FrameContext{
			CamPos:      camPos,
			Density:     1.3,
			OrbitalTime: float64(elapsed),
			Elapsed:     elapsed,
		}
		if f == 60 {
			if err := s.ThrowGrenade(camPos, geom.Vec3{X: 1, Z: 0.3}); err != nil {
				log.Fatal(err)
			}
		}
		s.Update(dt, ctx)
		elapsed += dt
	}
	took := time.Since(start)

	log.Printf("Profile %v: simulated %vs in %s\n", *profilePtr, *secondsPtr, took)
	log.Printf("grenades %v | clouds %v | barrages %v | shells %v | impacts %v\n",
		s.Stats.GrenadesThrown, s.Stats.CloudsSpawned, s.Stats.BarragesFired,
		s.Stats.ShellsFired, s.Stats.Impacts)
	log.Printf("peak particles: dust %v, smoke %v, trail %v; casings placed %v\n",
		s.Stats.PeakDust, s.Stats.PeakSmoke, s.Stats.PeakTrail, len(s.Casings))
}
