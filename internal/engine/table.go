package engine

import "slices"

// Table maps the currently-active ids to their kinematics. It is the
// live subset of the registry: every key indexes a valid body, but a
// body may outlive its entry here.
type Table map[ID]Kinematic

// Clone returns an independent deep copy.
func (t Table) Clone() Table {
	c := make(Table, len(t))
	for id, k := range t {
		c[id] = k
	}
	return c
}

// IDs returns the active ids in ascending order. The map itself is
// unordered; scans go through here so runs replay deterministically.
func (t Table) IDs() []ID {
	ids := make([]ID, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
