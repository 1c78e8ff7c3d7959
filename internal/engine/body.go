package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body holds the immutable physical attributes of a thing in space: a
// star, planet, comet, asteroid. Where it is and how fast it is going
// live in the kinematic table, not here.
type Body struct {
	Mass   float64
	Radius float64
	// Colors are stored 0xRRGGBB.
	Color   uint32
	Outline uint32
	Name    string
	// Immovable bodies attract others but never move themselves.
	Immovable bool
}

// Kinematic holds the mutable position and velocity of an active body.
type Kinematic struct {
	Pos mgl64.Vec2
	Vel mgl64.Vec2
}

// Integrate advances the kinematic one semi-implicit Euler step:
// velocity first, then position from the new velocity.
func (k *Kinematic) Integrate(dt float64, acc mgl64.Vec2) {
	k.Vel = k.Vel.Add(acc.Mul(dt))
	k.Pos = k.Pos.Add(k.Vel.Mul(dt))
}

// Orbiter pairs a Body with its current Kinematic.
type Orbiter struct {
	Body Body
	Kin  Kinematic
}

// mergeBodies combines two collided bodies into one. Mass adds exactly,
// radii combine by volume as if both were equal-density spheres, colors
// blend channel by channel weighted by mass, and immovability is sticky.
func mergeBodies(puller, other Body) Body {
	r3 := puller.Radius*puller.Radius*puller.Radius +
		other.Radius*other.Radius*other.Radius
	return Body{
		Mass:      puller.Mass + other.Mass,
		Radius:    math.Cbrt(r3),
		Color:     blendRGB(puller.Color, other.Color, puller.Mass, other.Mass),
		Outline:   blendRGB(puller.Outline, other.Outline, puller.Mass, other.Mass),
		Name:      puller.Name + " + " + other.Name,
		Immovable: puller.Immovable || other.Immovable,
	}
}

// mergeKinematics picks the kinematic for a merge product. Only a movable
// puller absorbing an immovable body keeps the mass-weighted position and
// velocity; every other combination collapses to rest at the origin.
func mergeKinematics(puller Body, pk Kinematic, other Body, ok Kinematic) Kinematic {
	if !puller.Immovable && other.Immovable {
		total := puller.Mass + other.Mass
		return Kinematic{
			Pos: pk.Pos.Mul(puller.Mass / total).Add(ok.Pos.Mul(other.Mass / total)),
			Vel: pk.Vel.Mul(puller.Mass / total).Add(ok.Vel.Mul(other.Mass / total)),
		}
	}
	return Kinematic{}
}

// blendRGB averages two 0xRRGGBB colors channel by channel, weighting
// each channel by the masses. Channels never carry into each other.
func blendRGB(a, b uint32, ma, mb float64) uint32 {
	total := ma + mb
	var out uint32
	for shift := 0; shift <= 16; shift += 8 {
		ca := float64((a >> shift) & 0xff)
		cb := float64((b >> shift) & 0xff)
		ch := uint32((ca*ma+cb*mb)/total) & 0xff
		out |= ch << shift
	}
	return out
}
