package effects

import (
	"math/rand"
	"testing"

	"skyfall/pkg/geom"
)

func TestDustCapacityNeverExceeded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := Defaults().Dust
	d := NewDustField(p)
	cam := geom.Vec3{Y: 2}

	//mix of zero, tiny, normal and hitch sized steps at an over the cap
	//density; the ceiling must clamp to BaseMax * 2.5
	steps := []float32{0, 0.016, 0.016, 5.0, 0, 0.1, 2.0, 0.016}
	ceiling := int(float32(p.BaseMax) * 2.5)
	for i := 0; i < 4000; i++ {
		d.Update(steps[i%len(steps)], cam, 10.0, rng)
		if len(d.Particles) > ceiling {
			t.Fatalf("dust count %v exceeded ceiling %v", len(d.Particles), ceiling)
		}
	}
}

func TestDustZeroDtIsNoop(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	d := NewDustField(Defaults().Dust)
	cam := geom.Vec3{}
	for i := 0; i < 200; i++ {
		d.Update(1.0/60.0, cam, 1.5, rng)
	}
	count := len(d.Particles)
	if count == 0 {
		t.Fatal("expected live dust particles before the zero dt check")
	}
	lives := make([]float32, count)
	for i, p := range d.Particles {
		lives[i] = p.Life
	}
	for i := 0; i < 100; i++ {
		d.Update(0, cam, 1.5, rng)
		d.Update(-0.5, cam, 1.5, rng)
	}
	if len(d.Particles) != count {
		t.Errorf("zero dt changed particle count from %v to %v", count, len(d.Particles))
	}
	for i, p := range d.Particles {
		if p.Life != lives[i] {
			t.Errorf("zero dt changed particle %v life from %v to %v", i, lives[i], p.Life)
		}
	}
}

func TestDustSpawnTimerResetsNotDecrements(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	d := NewDustField(Defaults().Dust)
	//a single huge hitch must spawn at most one particle, not a backlog
	d.Update(10.0, geom.Vec3{}, 1.0, rng)
	if len(d.Particles) > 1 {
		t.Errorf("frame hitch spawned %v particles, want at most 1", len(d.Particles))
	}
	if d.SpawnTimer != 0 {
		t.Errorf("spawn timer was not reset, got %v", d.SpawnTimer)
	}
}

func TestDustShapesAndAging(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	d := NewDustField(Defaults().Dust)
	for i := 0; i < 2000; i++ {
		d.Update(1.0/60.0, geom.Vec3{}, 2.0, rng)
	}
	billboards, spheres := 0, 0
	for _, p := range d.Particles {
		switch p.Shape {
		case ShapeBillboard:
			billboards++
		case ShapeSphere:
			spheres++
		}
		if p.Life > p.MaxLife {
			t.Fatalf("particle life %v above max %v", p.Life, p.MaxLife)
		}
		if p.Size <= 0 {
			t.Fatalf("particle has non positive size %v", p.Size)
		}
	}
	if billboards == 0 || spheres == 0 {
		t.Errorf("expected both shapes, got %v billboards and %v spheres", billboards, spheres)
	}
	if billboards <= spheres {
		t.Errorf("billboards should dominate: %v billboards vs %v spheres", billboards, spheres)
	}
}
