// Package scene turns declarative scene descriptions into the flat list
// of orbiters the engine is seeded with. A scene is a tree: loci and
// orbiters position their children relative to themselves, and generator
// leaves emit whole randomized moon or asteroid systems around their
// parent.
package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/orrery/internal/engine"
)

// relative is the accumulated parent offset threaded down the tree.
// mass is the parent body's mass for circular-orbit math; it is never
// accumulated across levels.
type relative struct {
	pos  mgl64.Vec2
	vel  mgl64.Vec2
	mass float64
}

// Node is one entry in a scene tree. The variant set is closed:
// [Locus], [Orbit], [Moons] or [Asteroids].
type Node interface {
	resolve(rel relative, out *[]engine.Orbiter)
}

// Resolve folds the tree into absolute orbiters, in tree order.
func Resolve(nodes []Node) []engine.Orbiter {
	var out []engine.Orbiter
	for _, n := range nodes {
		n.resolve(relative{}, &out)
	}
	return out
}

// Locus positions its children relative to a point in space. It places
// nothing itself and contributes no orbit mass.
type Locus struct {
	Pos      mgl64.Vec2
	Children []Node
}

func (l Locus) resolve(rel relative, out *[]engine.Orbiter) {
	child := relative{pos: rel.pos.Add(l.Pos), vel: rel.vel}
	for _, c := range l.Children {
		c.resolve(child, out)
	}
}

// Orbit places one orbiter and positions its children relative to it.
type Orbit struct {
	Body     engine.Body
	Kin      engine.Kinematic
	Children []Node
}

func (o Orbit) resolve(rel relative, out *[]engine.Orbiter) {
	abs := engine.Kinematic{
		Pos: o.Kin.Pos.Add(rel.pos),
		Vel: o.Kin.Vel.Add(rel.vel),
	}
	*out = append(*out, engine.Orbiter{Body: o.Body, Kin: abs})
	child := relative{pos: abs.Pos, vel: abs.Vel, mass: o.Body.Mass}
	for _, c := range o.Children {
		c.resolve(child, out)
	}
}

const (
	moonDensity = 3344.0 // kg/m^3, our moon
	nameChars   = "ABCDEFGHJKLMNPQRSTUVWXYZ1234567890"
)

// Moons generates Count randomly-sized moons on circular orbits around
// the parent. Identical parameters always generate identical moons.
type Moons struct {
	Count     int     `yaml:"count"`
	MinMass   float64 `yaml:"min_mass"`
	MaxMass   float64 `yaml:"max_mass"`
	MinOrbit  float64 `yaml:"min_orbit"`
	MaxOrbit  float64 `yaml:"max_orbit"`
	Seed      uint64  `yaml:"seed"`
	Clockwise bool    `yaml:"clockwise"`
}

func (m Moons) resolve(rel relative, out *[]engine.Orbiter) {
	seed := uint64(m.Count) +
		math.Float64bits(m.MinMass) + math.Float64bits(m.MaxMass) +
		math.Float64bits(m.MinOrbit) + math.Float64bits(m.MaxOrbit) +
		m.Seed + boolBit(m.Clockwise)
	rng := rand.New(rand.NewSource(int64(seed)))

	system := "M" + randomName(rng, 3, 5)
	for i := 0; i < m.Count; i++ {
		mass := m.MinMass + rng.Float64()*(m.MaxMass-m.MinMass)
		pos, vel := circularOrbit(rng, rel, mass, m.MinOrbit, m.MaxOrbit, m.Clockwise)
		*out = append(*out, engine.Orbiter{
			Body: engine.Body{
				Mass:    mass,
				Radius:  radiusFromDensity(mass, moonDensity),
				Color:   0x5566bb,
				Outline: 0xeeddee,
				Name:    fmt.Sprintf("%s-%d", system, i),
			},
			Kin: engine.Kinematic{Pos: pos, Vel: vel},
		})
	}
}

// Asteroids generates a belt around the parent with a fixed total mass
// budget, so a belt can never outweigh its star. Individual masses are
// half-normal; kinds follow rough main-belt proportions.
type Asteroids struct {
	TotalMass float64 `yaml:"total_mass"`
	MinOrbit  float64 `yaml:"min_orbit"`
	MaxOrbit  float64 `yaml:"max_orbit"`
	StdDev    float64 `yaml:"std_dev"`
	MaxBodies int     `yaml:"max_bodies"` // 0 means unbounded
	Seed      uint64  `yaml:"seed"`
	Clockwise bool    `yaml:"clockwise"`
}

// massAtOne is the asteroid mass drawn when the normal sample hits 1.
// Set to half the mass of Ceres.
const massAtOne = 9.3835e20 / 2

func (a Asteroids) resolve(rel relative, out *[]engine.Orbiter) {
	seed := math.Float64bits(a.TotalMass) +
		math.Float64bits(a.MinOrbit) + math.Float64bits(a.MaxOrbit) +
		math.Float64bits(a.StdDev) + uint64(a.MaxBodies) +
		a.Seed + boolBit(a.Clockwise)
	rng := rand.New(rand.NewSource(int64(seed)))

	system := "A" + randomName(rng, 4, 6)
	remaining := a.TotalMass
	for n := 0; remaining > 0 && (a.MaxBodies == 0 || n < a.MaxBodies); n++ {
		mass := math.Abs(rng.NormFloat64()*a.StdDev) * massAtOne
		remaining -= mass
		if remaining < 0 {
			mass += remaining // never withdraw more than the budget
		}

		density, color, outline, kind := asteroidKind(rng.Intn(100))
		pos, vel := circularOrbit(rng, rel, mass, a.MinOrbit, a.MaxOrbit, a.Clockwise)
		*out = append(*out, engine.Orbiter{
			Body: engine.Body{
				Mass:    mass,
				Radius:  radiusFromDensity(mass, density),
				Color:   color,
				Outline: outline,
				Name:    fmt.Sprintf("%s-%04d%c", system, n, kind),
			},
			Kin: engine.Kinematic{Pos: pos, Vel: vel},
		})
	}
}

// asteroidKind picks a composition from rough main-belt percentages:
// 75% carbonaceous, 17% silicate, the rest metallic.
func asteroidKind(roll int) (density float64, color, outline uint32, kind byte) {
	switch {
	case roll < 75:
		return 1380.0, 0x4c1505, 0x8b7979, 'C'
	case roll < 75+17:
		return 2710.0, 0x819284, 0xa8cdbd, 'S'
	default:
		return 5320.0, 0xc9d2e4, 0x618cd6, 'M'
	}
}

// circularOrbit places a body at a random angle and distance from the
// parent, moving tangentially at circular-orbit speed for the combined
// mass.
func circularOrbit(rng *rand.Rand, rel relative, mass, minOrbit, maxOrbit float64, clockwise bool) (pos, vel mgl64.Vec2) {
	theta := rng.Float64() * 2 * math.Pi
	orbit := minOrbit + rng.Float64()*(maxOrbit-minOrbit)
	speed := math.Sqrt(engine.G * (mass + rel.mass) / orbit)
	if clockwise {
		speed = -speed
	}
	pos = rel.pos.Add(mgl64.Vec2{math.Cos(theta) * orbit, math.Sin(theta) * orbit})
	vel = rel.vel.Add(mgl64.Vec2{-math.Sin(theta) * speed, math.Cos(theta) * speed})
	return pos, vel
}

// radiusFromDensity solves the sphere volume for a radius.
func radiusFromDensity(mass, density float64) float64 {
	return math.Cbrt(mass / density * 3 / (4 * math.Pi))
}

func randomName(rng *rand.Rand, minLen, maxLen int) string {
	n := minLen + rng.Intn(maxLen-minLen+1)
	b := make([]byte, n)
	for i := range b {
		b[i] = nameChars[rng.Intn(len(nameChars))]
	}
	return string(b)
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
