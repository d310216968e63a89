package effects

import (
	"testing"
)

func TestCompact(t *testing.T) {
	ps := []Particle{
		{Life: 1},
		{Life: 0},
		{Life: -2},
		{Life: 0.5},
	}
	got := compact(ps)
	if len(got) != 2 {
		t.Fatalf("compact kept %v particles, want 2", len(got))
	}
	if got[0].Life != 1 || got[1].Life != 0.5 {
		t.Errorf("compact reordered the survivors: %+v", got)
	}
}

func TestAgeFrac(t *testing.T) {
	p := Particle{Life: 10, MaxLife: 10}
	if p.AgeFrac() != 0 {
		t.Errorf("fresh particle age frac = %v", p.AgeFrac())
	}
	p.Life = 2.5
	if p.AgeFrac() != 0.75 {
		t.Errorf("age frac = %v want 0.75", p.AgeFrac())
	}
	p.Life = -1
	if p.AgeFrac() != 1 {
		t.Errorf("expired particle age frac = %v want 1", p.AgeFrac())
	}
	p = Particle{Life: 1, MaxLife: 0}
	if p.AgeFrac() != 1 {
		t.Errorf("zero max life age frac = %v want 1", p.AgeFrac())
	}
}
