package engine

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testBody(mass, radius float64) Body {
	return Body{
		Mass:    mass,
		Radius:  radius,
		Color:   0x3669ff,
		Outline: 0x56ff2d,
		Name:    "test",
	}
}

func kin(px, py, vx, vy float64) Kinematic {
	return Kinematic{Pos: mgl64.Vec2{px, py}, Vel: mgl64.Vec2{vx, vy}}
}

func TestCollisionMergesIntoSingleSurvivor(t *testing.T) {
	// Centers closer than the radii sum: one step must leave exactly one
	// orbiter carrying the combined mass.
	seed := []Orbiter{
		{Body: testBody(1e10, 100), Kin: kin(0, 0, 0, 0)},
		{Body: testBody(3e10, 50), Kin: kin(120, 0, 0, 0)},
	}
	s := New(seed, DefaultParams())
	s.Update(1.0)

	orbiters := s.Orbiters()
	if len(orbiters) != 1 {
		t.Fatalf("expected 1 surviving orbiter, got %d", len(orbiters))
	}
	survivor := orbiters[0]
	if survivor.ID != 2 {
		t.Errorf("expected merge product id 2, got %d", survivor.ID)
	}
	if got, want := survivor.Orbiter.Body.Mass, 4e10; got != want {
		t.Errorf("merged mass = %g, want exactly %g", got, want)
	}
	for _, id := range []ID{0, 1} {
		if _, active := s.table[id]; active {
			t.Errorf("id %d still active after merge", id)
		}
	}
}

func TestMergedBodyAttributes(t *testing.T) {
	a := Body{Mass: 3, Radius: 2, Color: 0x102030, Outline: 0xffffff, Name: "a"}
	b := Body{Mass: 1, Radius: 1, Color: 0x405060, Outline: 0x000000, Name: "b", Immovable: true}

	m := mergeBodies(a, b)

	if m.Mass != 4 {
		t.Errorf("mass = %g, want 4", m.Mass)
	}
	if want := math.Cbrt(8 + 1); math.Abs(m.Radius-want) > 1e-12 {
		t.Errorf("radius = %g, want %g", m.Radius, want)
	}
	// Each channel is independently mass-weighted: (0x10*3+0x40*1)/4 etc.
	if want := uint32(0x1c2c3c); m.Color != want {
		t.Errorf("color = %#06x, want %#06x", m.Color, want)
	}
	if want := uint32(0xbfbfbf); m.Outline != want {
		t.Errorf("outline = %#06x, want %#06x", m.Outline, want)
	}
	if !m.Immovable {
		t.Error("immovable should be sticky across merges")
	}
	if m.Name != "a + b" {
		t.Errorf("name = %q", m.Name)
	}
}

func TestMergeKinematics(t *testing.T) {
	movable := testBody(1, 1)
	immovable := testBody(3, 1)
	immovable.Immovable = true

	pk := kin(0, 0, 4, 0)
	ok := kin(8, 0, 0, 4)

	tests := []struct {
		name          string
		puller, other Body
		want          Kinematic
	}{
		{"movable puller, immovable other", movable, immovable, kin(6, 0, 1, 3)},
		{"movable pair", movable, movable, Kinematic{}},
		{"immovable puller, movable other", immovable, movable, Kinematic{}},
		{"immovable pair", immovable, immovable, Kinematic{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeKinematics(tt.puller, pk, tt.other, ok)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIDsNeverReused(t *testing.T) {
	seed := []Orbiter{
		{Body: testBody(1e10, 100), Kin: kin(0, 0, 0, 0)},
		{Body: testBody(1e10, 100), Kin: kin(150, 0, 0, 0)},
		{Body: testBody(1e3, 1), Kin: kin(1e9, 0, 0, 0)},
	}
	s := New(seed, DefaultParams())

	before := s.registry.Get(1)
	s.Update(1.0) // merges 0 and 1 into 3

	if got := s.registry.Get(1); got != before {
		t.Error("tombstoned body record changed after merge")
	}
	if id := s.AddOrbiter(testBody(1, 1), kin(2e9, 0, 0, 0)); id != 4 {
		t.Errorf("next id = %d, want 4 (ids must never be reused)", id)
	}
}

func TestPullMassThresholdGatesScans(t *testing.T) {
	// Both bodies sit below the threshold: nobody pulls, nothing moves.
	params := DefaultParams()
	params.PullMassThreshold = 1e30
	seed := []Orbiter{
		{Body: testBody(1e24, 100), Kin: kin(0, 0, 0, 0)},
		{Body: testBody(1e24, 100), Kin: kin(1e6, 0, 0, 0)},
	}
	s := New(seed, params)
	s.Update(60)

	for _, o := range s.Orbiters() {
		if o.Orbiter.Kin.Vel != (mgl64.Vec2{}) {
			t.Errorf("id %d gained velocity %v without any puller", o.ID, o.Orbiter.Kin.Vel)
		}
	}
}

func TestMaxPullDistanceCutoff(t *testing.T) {
	params := DefaultParams()
	params.MaxPullDistance = 1e5
	seed := []Orbiter{
		{Body: testBody(1e24, 100), Kin: kin(0, 0, 0, 0)},
		{Body: testBody(1e24, 100), Kin: kin(1e6, 0, 0, 0)}, // out of reach
	}
	s := New(seed, params)
	s.Update(60)

	for _, o := range s.Orbiters() {
		if o.Orbiter.Kin.Vel != (mgl64.Vec2{}) {
			t.Errorf("id %d was pulled from beyond the cutoff", o.ID)
		}
	}
}

func TestImmovableBodyNeverMoves(t *testing.T) {
	sun := testBody(1.9884e30, 6.957e8)
	sun.Immovable = true
	seed := []Orbiter{
		{Body: sun, Kin: kin(0, 0, 0, 0)},
		{Body: testBody(5.97e24, 6.371e6), Kin: kin(1.496e11, 0, 0, -29780)},
	}
	s := New(seed, DefaultParams())
	for i := 0; i < 100; i++ {
		s.Update(60)
	}

	got := s.Orbiters()[0].Orbiter.Kin
	if got != (Kinematic{}) {
		t.Errorf("immovable body moved: %+v", got)
	}
}

func TestTwoBodyMomentumConservation(t *testing.T) {
	m1, m2 := 5.97e24, 7.342e22
	v1, v2 := kin(0, 0, 0, -12.5), kin(3.844e8, 0, 0, 1022)
	seed := []Orbiter{
		{Body: testBody(m1, 6.371e6), Kin: v1},
		{Body: testBody(m2, 1.7374e6), Kin: v2},
	}
	s := New(seed, DefaultParams())

	initial := v1.Vel.Mul(m1).Add(v2.Vel.Mul(m2))
	for i := 0; i < 5000; i++ {
		s.Update(30)
	}

	var total mgl64.Vec2
	for _, o := range s.Orbiters() {
		total = total.Add(o.Orbiter.Kin.Vel.Mul(o.Orbiter.Body.Mass))
	}
	drift := total.Sub(initial).Len() / initial.Len()
	if drift > 1e-9 {
		t.Errorf("momentum drift = %g, want < 1e-9", drift)
	}
}

func TestEarthLunaSeparationOverOneDay(t *testing.T) {
	const (
		mEarth = 5.97e24
		mLuna  = 7.342e22
		sep    = 3.844e8
	)
	// Circular orbit about the barycenter.
	total := mEarth + mLuna
	omega := math.Sqrt(G * total / (sep * sep * sep))
	rEarth := sep * mLuna / total
	rLuna := sep * mEarth / total

	seed := []Orbiter{
		{Body: testBody(mEarth, 6.371e6), Kin: kin(-rEarth, 0, 0, -omega*rEarth)},
		{Body: testBody(mLuna, 1.7374e6), Kin: kin(rLuna, 0, 0, omega*rLuna)},
	}
	s := New(seed, DefaultParams())

	const dt = 60.0
	for i := 0; i < 24*60; i++ {
		s.Update(dt)
	}

	orbiters := s.Orbiters()
	got := orbiters[0].Orbiter.Kin.Pos.Sub(orbiters[1].Orbiter.Kin.Pos).Len()
	if rel := math.Abs(got-sep) / sep; rel > 0.03 {
		t.Errorf("separation after one day = %g (%.2f%% off), want within 3%% of %g",
			got, rel*100, sep)
	}
}

func TestDeterministicReplay(t *testing.T) {
	build := func() *System {
		seed := []Orbiter{
			{Body: testBody(1.9e30, 7e8), Kin: kin(0, 0, 0, 0)},
			{Body: testBody(5.97e24, 6.4e6), Kin: kin(1.5e11, 0, 0, -29780)},
			{Body: testBody(6.4e23, 3.4e6), Kin: kin(-2.3e11, 0, 0, 24000)},
		}
		return New(seed, DefaultParams())
	}

	a, b := build(), build()
	for i := 0; i < 500; i++ {
		a.Update(3600)
		b.Update(3600)
	}

	oa, ob := a.Orbiters(), b.Orbiters()
	if len(oa) != len(ob) {
		t.Fatalf("diverged body counts: %d vs %d", len(oa), len(ob))
	}
	for i := range oa {
		if oa[i].ID != ob[i].ID || oa[i].Orbiter.Kin != ob[i].Orbiter.Kin {
			t.Errorf("replay diverged at %d: %+v vs %+v", i, oa[i], ob[i])
		}
	}
}
