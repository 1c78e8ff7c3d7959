// Package metrics computes conserved-quantity aggregates over orbiter
// sets and tracks their drift across a run.
package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/orrery/internal/engine"
)

// TotalMass sums the active masses.
func TotalMass(orbiters []engine.IDOrbiter) float64 {
	var total float64
	for _, o := range orbiters {
		total += o.Orbiter.Body.Mass
	}
	return total
}

// TotalMomentum sums m·v over the active orbiters.
func TotalMomentum(orbiters []engine.IDOrbiter) mgl64.Vec2 {
	var total mgl64.Vec2
	for _, o := range orbiters {
		total = total.Add(o.Orbiter.Kin.Vel.Mul(o.Orbiter.Body.Mass))
	}
	return total
}

// KineticEnergy sums ½mv² over the active orbiters.
func KineticEnergy(orbiters []engine.IDOrbiter) float64 {
	var total float64
	for _, o := range orbiters {
		v2 := o.Orbiter.Kin.Vel.Dot(o.Orbiter.Kin.Vel)
		total += 0.5 * o.Orbiter.Body.Mass * v2
	}
	return total
}

// PotentialEnergy sums -G·m_i·m_j/r over unordered pairs.
func PotentialEnergy(orbiters []engine.IDOrbiter) float64 {
	var total float64
	for i := 0; i < len(orbiters); i++ {
		for j := i + 1; j < len(orbiters); j++ {
			r := orbiters[i].Orbiter.Kin.Pos.Sub(orbiters[j].Orbiter.Kin.Pos).Len()
			if r == 0 {
				continue
			}
			total -= engine.G * orbiters[i].Orbiter.Body.Mass * orbiters[j].Orbiter.Body.Mass / r
		}
	}
	return total
}

// TotalEnergy is kinetic plus potential.
func TotalEnergy(orbiters []engine.IDOrbiter) float64 {
	return KineticEnergy(orbiters) + PotentialEnergy(orbiters)
}

// Observer accumulates one scalar over a run.
type Observer interface {
	Name() string
	Observe(orbiters []engine.IDOrbiter)
	Value() float64
	Reset()
}

// MomentumDrift tracks the worst relative deviation of total momentum
// from its first observation.
type MomentumDrift struct {
	initial  mgl64.Vec2
	maxDrift float64
	samples  int
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(orbiters []engine.IDOrbiter) {
	total := TotalMomentum(orbiters)
	if m.samples == 0 {
		m.initial = total
	}
	m.samples++

	ref := m.initial.Len()
	if ref == 0 {
		return
	}
	drift := total.Sub(m.initial).Len() / ref
	m.maxDrift = math.Max(m.maxDrift, drift)
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = mgl64.Vec2{}
	m.maxDrift = 0
	m.samples = 0
}

// EnergyDrift tracks the worst relative deviation of total energy from
// its first observation. Merges dissipate energy on purpose, so expect
// jumps when bodies collide.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(orbiters []engine.IDOrbiter) {
	energy := TotalEnergy(orbiters)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial == 0 {
		return
	}
	drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
