package engine

// History is a bounded FIFO of kinematic-table snapshots. An index is a
// position in the current window, not a stable sequence number: evicting
// the oldest snapshot shifts every survivor down by one. No snapshots
// are taken while one is being viewed, so a viewed index never moves.
type History struct {
	snaps []Table
	bound int
}

func NewHistory(bound int) *History {
	return &History{bound: bound}
}

// Save appends a deep copy of t, evicting the oldest snapshot once the
// bound is exceeded. The shift happens in place so the backing array
// stays bounded over long runs.
func (h *History) Save(t Table) {
	h.snaps = append(h.snaps, t.Clone())
	if len(h.snaps) > h.bound {
		copy(h.snaps, h.snaps[1:])
		h.snaps[len(h.snaps)-1] = nil
		h.snaps = h.snaps[:len(h.snaps)-1]
	}
}

// Get returns the snapshot at index, or false if that index was evicted
// or never existed.
func (h *History) Get(index int) (Table, bool) {
	if index < 0 || index >= len(h.snaps) {
		return nil, false
	}
	return h.snaps[index], true
}

// TruncateAfter discards every snapshot newer than index, keeping index
// itself. Used after a rewind restore to drop now-divergent history.
func (h *History) TruncateAfter(index int) {
	if index < 0 {
		h.snaps = h.snaps[:0]
		return
	}
	if index+1 < len(h.snaps) {
		for i := index + 1; i < len(h.snaps); i++ {
			h.snaps[i] = nil
		}
		h.snaps = h.snaps[:index+1]
	}
}

// ReferencedIDs reports every id appearing in any retained snapshot.
// Restore-time pruning must keep these resolvable or viewing an old
// snapshot would dangle.
func (h *History) ReferencedIDs() map[ID]bool {
	ids := make(map[ID]bool)
	for _, snap := range h.snaps {
		for id := range snap {
			ids[id] = true
		}
	}
	return ids
}

// Len reports how many snapshots are currently held.
func (h *History) Len() int { return len(h.snaps) }
