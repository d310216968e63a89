//Package scatter estimates the impact dispersion of a barrage profile by
//running many independent fire missions and aggregating radial miss
//distances from the designated target point.
package scatter

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"skyfall/pkg/effects"
	"skyfall/pkg/geom"
)

type Simulator struct {
	Log *zap.SugaredLogger
	p   effects.Profile
}

func New(p effects.Profile) (*Simulator, error) {
	s := &Simulator{}

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	switch p.LogConfig.LogLevel {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.StacktraceKey = ""
	config.EncoderConfig.CallerKey = ""

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	s.Log = logger.Sugar()
	s.p = p
	return s, nil
}

//Result of a dispersion run; Hist is binned radial miss distance in meters
type Result struct {
	Hist     []float64
	BinStart int64
	Min      float64
	Max      float64
	Mean     float64
	SD       float64
	Points   [][2]float32 //impact XZ of every shell, target at the origin
}

//Run simulates n barrages over w workers and bins miss distances by b meters
func (s *Simulator) Run(n, b, w int64) Result {
	r := Result{}

	s.Log.Debugw("starting dispersion sim", "n", n, "b", b, "w", w)

	var progress, sum, ss float64
	var data []float64
	r.Min = math.MaxFloat64
	r.Max = -1

	count := n

	resp := make(chan [][2]float32, n)
	req := make(chan bool)
	done := make(chan bool)
	for i := 0; i < int(w); i++ {
		go s.worker(resp, req, done)
	}

	//use a go routine to send out a job whenever a worker is done
	go func() {
		var wip int64
		for wip < n {
			req <- true
			wip++
		}
	}()

	fmt.Print("\tProgress: 0")

	for count > 0 {
		pts := <-resp
		count--

		for _, pt := range pts {
			miss := float64(geom.Vec3{X: pt[0], Z: pt[1]}.Length())
			data = append(data, miss)
			sum += miss
			if miss < r.Min {
				r.Min = miss
			}
			if miss > r.Max {
				r.Max = miss
			}
		}
		r.Points = append(r.Points, pts...)

		if (1 - float64(count)/float64(n)) > (progress + 0.01) {
			progress = (1 - float64(count)/float64(n))
			fmt.Printf(".%.0f", 100*progress)
		}
	}
	fmt.Print("...100%\n")

	close(done)

	total := float64(len(data))
	r.Mean = sum / total
	r.BinStart = int64(r.Min/float64(b)) * b
	binMax := (int64(r.Max/float64(b)) + 1.0) * b
	numBin := ((binMax - r.BinStart) / b) + 1

	r.Hist = make([]float64, numBin)

	for _, v := range data {
		ss += (v - r.Mean) * (v - r.Mean)
		steps := int64((v - float64(r.BinStart)) / float64(b))
		r.Hist[steps]++
	}

	r.SD = math.Sqrt(ss / total)

	return r
}

func (s *Simulator) worker(resp chan [][2]float32, req chan bool, done chan bool) {
	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))

	for {
		select {
		case <-req:
			resp <- runBarrage(s.p, rng)
		case <-done:
			return
		}
	}
}

//runBarrage fires one full barrage at the origin and integrates every shell
//to flat ground at the sim's fixed 60Hz step, returning the impact points
func runBarrage(p effects.Profile, rng *rand.Rand) [][2]float32 {
	const dt = float32(1.0 / 60.0)

	target := geom.Vec3{}
	fleet := effects.OrbitalFleet{}
	//each mission happens at a random point of the fleet's orbit
	ot := rng.Float64() * 1000

	b := effects.NewBarrage(target, p.Barrage, p.Shell)
	var shells []*effects.Shell
	var pts [][2]float32
	var elapsed float32

	for !b.Exhausted() || len(shells) > 0 {
		origins := fleet.Origins(target, ot, elapsed)
		ev := b.Tick(dt, origins, rng)
		shells = append(shells, ev.Shells...)

		live := shells[:0]
		for _, sh := range shells {
			sh.Age += dt
			sh.Velocity.Y -= p.Shell.Gravity * dt
			sh.Position = geom.Add(sh.Position, sh.Velocity.Scale(dt))
			if sh.Position.Y <= 0.5 {
				pts = append(pts, [2]float32{sh.Position.X, sh.Position.Z})
				continue
			}
			live = append(live, sh)
		}
		shells = live
		elapsed += dt
	}
	return pts
}
