package engine

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// G is the gravitational constant in m^3 kg^-1 s^-2.
const G = 6.674e-11

// Params are the tunable inputs of the stepper. They are configuration,
// not physics: G stays fixed.
type Params struct {
	// PullMassThreshold is the mass a body must exceed to initiate
	// force and collision scans. Zero makes everything a puller.
	PullMassThreshold float64
	// MaxPullDistance bounds how far a puller reaches; pairs farther
	// apart are ignored entirely for that step.
	MaxPullDistance float64
	// SaveEvery is the snapshot cadence in steps.
	SaveEvery int
	// HistoryCap bounds how many snapshots are retained.
	HistoryCap int
}

// DefaultParams mirror the original orbit simulator: everything pulls,
// reach is effectively unbounded, one save per simulated day at the
// default step size.
func DefaultParams() Params {
	return Params{
		PullMassThreshold: 0,
		MaxPullDistance:   1e30,
		SaveEvery:         24,
		HistoryCap:        10_000,
	}
}

// System owns a gravitating 2D simulation: the body registry, the live
// kinematic table, the snapshot history, and the mode controller gating
// them. It is single-threaded by design; the driver controls cadence and
// must issue only legal mode transitions.
type System struct {
	registry *Registry
	table    Table
	history  *History
	params   Params

	mode   Mode
	steps  int
	merges int
}

// New builds a system from seed orbiters, assigning ids 0..n-1 in list
// order through the same path merge products take later.
func New(seed []Orbiter, params Params) *System {
	s := &System{
		registry: NewRegistry(len(seed)),
		table:    make(Table, len(seed)),
		history:  NewHistory(params.HistoryCap),
		params:   params,
	}
	for _, o := range seed {
		s.AddOrbiter(o.Body, o.Kin)
	}
	return s
}

// AddOrbiter registers the body, activates its kinematic, and returns
// the new id.
func (s *System) AddOrbiter(b Body, k Kinematic) ID {
	id := s.registry.Add(b)
	s.table[id] = k
	return id
}

// Update advances the simulation by dt. While a snapshot is being viewed
// it does nothing: rewinding freezes physics.
func (s *System) Update(dt float64) {
	if s.mode.Kind != Simulating {
		return
	}
	s.step(dt)
}

type collision struct {
	puller, other ID
}

func (s *System) step(dt float64) {
	if s.steps%s.params.SaveEvery == 0 {
		s.history.Save(s.table)
	}

	maxDist2 := s.params.MaxPullDistance * s.params.MaxPullDistance

	ids := s.table.IDs()
	forces := make(map[ID]mgl64.Vec2, len(ids))
	consumed := make(map[ID]bool)
	var collisions []collision

	for _, id := range ids {
		if consumed[id] {
			continue
		}
		puller := s.registry.Get(id)
		if puller.Mass <= s.params.PullMassThreshold {
			continue
		}
		pk := s.table[id]
		for _, otherID := range ids {
			if otherID == id || consumed[otherID] {
				continue
			}
			other := s.registry.Get(otherID)
			ok := s.table[otherID]

			delta := pk.Pos.Sub(ok.Pos) // points from other toward puller
			dist2 := delta.Dot(delta)
			if dist2 > maxDist2 {
				continue
			}

			sumR := puller.Radius + other.Radius
			if dist2 < sumR*sumR {
				// Both participants leave the step. A body is party to
				// at most one merge per step, so total mass is exact.
				consumed[id] = true
				consumed[otherID] = true
				collisions = append(collisions, collision{puller: id, other: otherID})
				break
			}

			if other.Immovable {
				// Immovable bodies take part only as pullers.
				continue
			}
			f := G * puller.Mass * other.Mass / dist2
			forces[otherID] = forces[otherID].Add(delta.Mul(f / math.Sqrt(dist2)))
		}
	}

	// Resolve collisions before integrating so a collided orbiter never
	// moves again. The merge product sits out the rest of this step; it
	// has no accumulated force yet. Participant ids are disjoint across
	// collisions, so resolution order does not matter.
	for _, c := range collisions {
		puller := s.registry.Get(c.puller)
		other := s.registry.Get(c.other)
		pk, ok := s.table[c.puller], s.table[c.other]
		delete(s.table, c.puller)
		delete(s.table, c.other)
		s.AddOrbiter(mergeBodies(puller, other), mergeKinematics(puller, pk, other, ok))
		s.merges++
	}

	for _, id := range ids {
		k, active := s.table[id]
		if !active {
			continue // consumed by a merge above
		}
		body := s.registry.Get(id)
		if body.Immovable {
			continue
		}
		k.Integrate(dt, forces[id].Mul(1/body.Mass))
		s.table[id] = k
	}

	s.steps++
}

// IDOrbiter is an orbiter tagged with its id, for ordered views.
type IDOrbiter struct {
	ID      ID
	Orbiter Orbiter
}

// Orbiters returns the id-ordered view of the system: the live table
// while simulating, the selected snapshot while viewing.
func (s *System) Orbiters() []IDOrbiter {
	src := s.table
	if s.mode.Kind == ViewingSnapshot {
		snap, ok := s.history.Get(s.mode.Snapshot)
		if !ok {
			panic(fmt.Sprintf("engine: viewed snapshot %d no longer exists", s.mode.Snapshot))
		}
		src = snap
	}
	out := make([]IDOrbiter, 0, len(src))
	for _, id := range src.IDs() {
		out = append(out, IDOrbiter{
			ID:      id,
			Orbiter: Orbiter{Body: s.registry.Get(id), Kin: src[id]},
		})
	}
	return out
}

// Mode returns the current controller state.
func (s *System) Mode() Mode { return s.mode }

// Steps reports how many physics steps have run.
func (s *System) Steps() int { return s.steps }

// Merges reports how many collision merges have happened.
func (s *System) Merges() int { return s.merges }

// HistoryLen reports how many snapshots are currently retained.
func (s *System) HistoryLen() int { return s.history.Len() }

// EnableLoad snapshots the live table, so the moment of entry is itself
// preserved, then switches to viewing the newest snapshot. Calling it
// while already viewing violates the driver contract and panics.
func (s *System) EnableLoad() {
	if s.mode.Kind != Simulating {
		panic("engine: EnableLoad called while already viewing a snapshot")
	}
	s.history.Save(s.table)
	s.mode = Mode{Kind: ViewingSnapshot, Snapshot: s.history.Len() - 1}
}

// ChangeLoad moves the viewed snapshot by delta, clamped to the bounds
// of recorded history; out-of-range deltas clamp rather than fail.
// Calling it while simulating panics.
func (s *System) ChangeLoad(delta int) {
	if s.mode.Kind != ViewingSnapshot {
		panic("engine: ChangeLoad called while simulating")
	}
	index := s.mode.Snapshot + delta
	if index < 0 {
		index = 0
	}
	if last := s.history.Len() - 1; index > last {
		index = last
	}
	s.mode.Snapshot = index
}

// ExitLoad restores the live table from the viewed snapshot, drops the
// now-divergent newer history, prunes body records nothing references
// anymore, and resumes simulating. Calling it while simulating panics.
func (s *System) ExitLoad() {
	if s.mode.Kind != ViewingSnapshot {
		panic("engine: ExitLoad called while simulating")
	}
	snap, ok := s.history.Get(s.mode.Snapshot)
	if !ok {
		panic(fmt.Sprintf("engine: cannot restore snapshot %d", s.mode.Snapshot))
	}
	s.table = snap.Clone()
	s.history.TruncateAfter(s.mode.Snapshot)
	// Snapshots older than the restored one stay viewable, so a record
	// is pruned only when neither the live table nor any retained
	// snapshot references it.
	referenced := s.history.ReferencedIDs()
	s.registry.Prune(func(id ID) bool {
		_, live := s.table[id]
		return live || referenced[id]
	})
	s.mode = Mode{Kind: Simulating}
}
