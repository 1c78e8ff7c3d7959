package engine

import "fmt"

// ID is a stable handle onto a body. IDs are assigned sequentially at
// creation and never reused or reassigned, even after the body is merged
// away.
type ID int

// Registry is the append-only store of bodies. Removing an orbiter from
// the kinematic table does not remove its body here; the record lingers
// as a tombstone so old snapshots can still resolve it. Records only
// leave the registry when a rewind restore prunes them.
type Registry struct {
	bodies map[ID]Body
	next   ID
}

func NewRegistry(capacity int) *Registry {
	return &Registry{bodies: make(map[ID]Body, capacity)}
}

// Add stores a body and returns its new id. It never fails.
func (r *Registry) Add(b Body) ID {
	id := r.next
	r.next++
	r.bodies[id] = b
	return id
}

// Get returns the body for an id previously returned by Add, tombstoned
// or not. Asking for an id that was never assigned, or that a restore
// pruned, is a driver bug and panics.
func (r *Registry) Get(id ID) Body {
	b, ok := r.bodies[id]
	if !ok {
		panic(fmt.Sprintf("engine: no body registered for id %d", id))
	}
	return b
}

// Len reports how many body records are held, tombstones included.
func (r *Registry) Len() int { return len(r.bodies) }

// Prune drops every record whose id fails keep. Surviving ids are
// untouched and the id counter never rewinds, so pruning cannot alias an
// old handle onto a new body.
func (r *Registry) Prune(keep func(ID) bool) {
	for id := range r.bodies {
		if !keep(id) {
			delete(r.bodies, id)
		}
	}
}
