package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/orrery/internal/engine"
)

func TestResolveThreadsParentOffsets(t *testing.T) {
	orbiters := Resolve([]Node{
		Orbit{Body: Earth(), Kin: at(100, 0, 0, -10), Children: []Node{
			Orbit{Body: Luna(), Kin: at(0, 5, 1, 0)},
		}},
	})
	if len(orbiters) != 2 {
		t.Fatalf("resolved %d orbiters, want 2", len(orbiters))
	}

	luna := orbiters[1]
	if want := (mgl64.Vec2{100, 5}); luna.Kin.Pos != want {
		t.Errorf("child position = %v, want %v", luna.Kin.Pos, want)
	}
	if want := (mgl64.Vec2{1, -10}); luna.Kin.Vel != want {
		t.Errorf("child velocity = %v, want %v", luna.Kin.Vel, want)
	}
}

func TestLocusOffsetsWithoutMass(t *testing.T) {
	nodes := []Node{
		Locus{Pos: mgl64.Vec2{1000, 0}, Children: []Node{
			Moons{Count: 3, MinMass: 1e10, MaxMass: 2e10, MinOrbit: 100, MaxOrbit: 200, Seed: 1},
		}},
	}
	orbiters := Resolve(nodes)
	if len(orbiters) != 3 {
		t.Fatalf("resolved %d orbiters, want 3", len(orbiters))
	}
	for _, o := range orbiters {
		rel := o.Kin.Pos.Sub(mgl64.Vec2{1000, 0})
		r := rel.Len()
		if r < 100 || r > 200 {
			t.Errorf("moon at distance %g from locus, want within [100, 200]", r)
		}
		// A locus carries no orbit mass: circular speed depends only on
		// the moon itself.
		want := math.Sqrt(engine.G * o.Body.Mass / r)
		if got := o.Kin.Vel.Len(); math.Abs(got-want)/want > 1e-9 {
			t.Errorf("moon speed = %g, want %g", got, want)
		}
	}
}

func TestMoonsDeterministicBySeed(t *testing.T) {
	gen := Moons{Count: 5, MinMass: 1e12, MaxMass: 1e14, MinOrbit: 1e6, MaxOrbit: 1e7, Seed: 42}
	parent := Orbit{Body: Earth(), Children: []Node{gen}}

	a := Resolve([]Node{parent})
	b := Resolve([]Node{parent})
	if len(a) != 6 || len(b) != 6 {
		t.Fatalf("resolved %d and %d orbiters, want 6", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("orbiter %d differs between identical resolves", i)
		}
	}

	gen.Seed = 43
	c := Resolve([]Node{Orbit{Body: Earth(), Children: []Node{gen}}})
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical moons")
	}
}

func TestMoonsOrbitTheirParent(t *testing.T) {
	parent := Orbit{
		Body: Jupiter(),
		Kin:  at(7.786e11, 0, 0, -13_070),
		Children: []Node{
			Moons{Count: 8, MinMass: 1e15, MaxMass: 1e17, MinOrbit: 1e8, MaxOrbit: 1e9, Seed: 9},
		},
	}
	orbiters := Resolve([]Node{parent})
	jupiter := orbiters[0]
	for _, moon := range orbiters[1:] {
		rel := moon.Kin.Pos.Sub(jupiter.Kin.Pos)
		r := rel.Len()
		if r < 1e8 || r > 1e9 {
			t.Errorf("moon %s at distance %g, want within orbit band", moon.Body.Name, r)
		}
		// Tangential launch: velocity relative to the parent is
		// perpendicular to the radius.
		relVel := moon.Kin.Vel.Sub(jupiter.Kin.Vel)
		if dot := math.Abs(rel.Dot(relVel)) / (r * relVel.Len()); dot > 1e-9 {
			t.Errorf("moon %s launched radially (cos=%g)", moon.Body.Name, dot)
		}
	}
}

func TestAsteroidsRespectMassBudget(t *testing.T) {
	const budget = 3e21
	gen := Asteroids{
		TotalMass: budget,
		MinOrbit:  3.3e11, MaxOrbit: 4.8e11,
		StdDev: 1, Seed: 5,
	}
	orbiters := Resolve([]Node{Orbit{Body: Sol(), Children: []Node{gen}}})

	var total float64
	for _, o := range orbiters[1:] {
		total += o.Body.Mass
	}
	if total > budget*(1+1e-9) {
		t.Errorf("belt mass %g exceeds budget %g", total, budget)
	}
	if math.Abs(total-budget)/budget > 1e-6 {
		t.Errorf("belt mass %g, want the full budget %g", total, budget)
	}
}

func TestAsteroidsMaxBodiesCap(t *testing.T) {
	gen := Asteroids{
		TotalMass: 1e30, // huge budget, the cap must stop it first
		MinOrbit:  1e11, MaxOrbit: 2e11,
		StdDev: 1, MaxBodies: 25, Seed: 5,
	}
	orbiters := Resolve([]Node{gen})
	if len(orbiters) != 25 {
		t.Errorf("generated %d asteroids, want max_bodies = 25", len(orbiters))
	}
}

func TestPrefabLookup(t *testing.T) {
	body, ok := Prefab("earth")
	if !ok {
		t.Fatal("earth prefab missing")
	}
	if body.Name != "Earth" || body.Mass != 5.97237e24 {
		t.Errorf("earth prefab = %+v", body)
	}
	if _, ok := Prefab("vulcan"); ok {
		t.Error("unknown prefab should not resolve")
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name      string
		wantCount int
	}{
		{"ours", 13},
		{"collisions", 12},
		{"earth-luna", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orbiters, ok := Preset(tt.name)
			if !ok {
				t.Fatalf("preset %q missing", tt.name)
			}
			if len(orbiters) != tt.wantCount {
				t.Errorf("resolved %d orbiters, want %d", len(orbiters), tt.wantCount)
			}
		})
	}
	if _, ok := Preset("nope"); ok {
		t.Error("unknown preset should not resolve")
	}
}

func TestOursSurvivesADay(t *testing.T) {
	s := engine.New(Ours(), engine.DefaultParams())
	for i := 0; i < 24; i++ {
		s.Update(3600)
	}
	if got := len(s.Orbiters()); got != 13 {
		t.Errorf("%d orbiters after one day, want 13 (nothing should merge)", got)
	}
}
