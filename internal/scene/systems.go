package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/orrery/internal/engine"
)

// Preset returns a built-in scene by name, already resolved to seed
// orbiters, or false if no such preset exists.
func Preset(name string) ([]engine.Orbiter, bool) {
	switch name {
	case "ours":
		return Ours(), true
	case "collisions":
		return CollisionFun(), true
	case "earth-luna":
		return EarthLuna(), true
	default:
		return nil, false
	}
}

// PresetNames lists the built-in scenes.
func PresetNames() []string {
	return []string{"ours", "collisions", "earth-luna"}
}

func at(x, y, vx, vy float64) engine.Kinematic {
	return engine.Kinematic{Pos: mgl64.Vec2{x, y}, Vel: mgl64.Vec2{vx, vy}}
}

// Ours is our solar system. If you zoom in really far you can see us.
func Ours() []engine.Orbiter {
	return Resolve([]Node{
		Orbit{Body: Sol(), Children: []Node{
			Orbit{Body: Mercury(), Kin: at(57_909_050_000, 0, 0, -47_362)},
			// Venus and Uranus are the only planets that rotate clockwise.
			Orbit{Body: Venus(), Kin: at(-108_208_000_000, 0, 0, 35_020)},
			Orbit{Body: Earth(), Kin: at(149_598_023_000, 0, 0, -29_780), Children: []Node{
				Orbit{Body: Luna(), Kin: at(0, 384_399_000, 1_022, 0)},
			}},
			Orbit{Body: Mars(), Kin: at(227_939_000_000, 0, 0, -24_007), Children: []Node{
				Orbit{Body: Phobos(), Kin: at(0, -9_377_000, -2_140, 0)},
				Orbit{Body: Deimos(), Kin: at(0, 23_460_000, 1_350, 0)},
			}},
			Orbit{Body: Jupiter(), Kin: at(7.786e11, 0, 0, -13_070)},
			Orbit{Body: Saturn(), Kin: at(-1.43353e12, 0, 0, 9_680)},
			Orbit{Body: Uranus(), Kin: at(2.87097e12, 0, 0, -6_800)},
			Orbit{Body: Neptune(), Kin: at(0, 4.5e12, 5_430, 0)},
			// Start at perihelion, flying clockwise, long arm to the right.
			Orbit{Body: HalleysComet(), Kin: at(8.766108e10, 0, 0, halleyPerihelionSpeed())},
		}},
	})
}

// halleyPerihelionSpeed is the vis-viva speed at Halley's perihelion
// around Sol.
func halleyPerihelionSpeed() float64 {
	const (
		perihelion    = 8.766108e10
		semiMajorAxis = 2.668e12
	)
	return math.Sqrt(engine.G * Sol().Mass * (2/perihelion - 1/semiMajorAxis))
}

// CollisionFun seeds a crowded system built to merge: Roshar on a lazy
// orbit at Earth's distance, trailed by a line of ten moons.
func CollisionFun() []engine.Orbiter {
	moons := make([]Node, 10)
	for i := range moons {
		moons[i] = Orbit{
			Body: Luna(),
			Kin:  at(30_000_000*float64(i+1), 0, 0, 30_000),
		}
	}
	return Resolve([]Node{
		Orbit{Body: Sol(), Children: []Node{
			Orbit{
				Body:     Roshar(),
				Kin:      at(149_598_023_000, 0, 0, -2_780),
				Children: moons,
			},
		}},
	})
}

// EarthLuna is an isolated two-body system on a circular orbit about its
// barycenter, handy for momentum and rewind sanity checks.
func EarthLuna() []engine.Orbiter {
	earth, luna := Earth(), Luna()
	const sep = 384_399_000.0
	total := earth.Mass + luna.Mass
	omega := math.Sqrt(engine.G * total / (sep * sep * sep))
	rEarth := sep * luna.Mass / total
	rLuna := sep * earth.Mass / total
	return Resolve([]Node{
		Locus{Children: []Node{
			Orbit{Body: earth, Kin: at(-rEarth, 0, 0, -omega*rEarth)},
			Orbit{Body: luna, Kin: at(rLuna, 0, 0, omega*rLuna)},
		}},
	})
}
