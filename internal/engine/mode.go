package engine

import "fmt"

// ModeKind tags what the system is up to.
type ModeKind int

const (
	// Simulating means physics runs and queries read the live table.
	Simulating ModeKind = iota
	// ViewingSnapshot means physics is frozen and queries read a saved
	// snapshot.
	ViewingSnapshot
)

// Mode is the state of the mode controller. The system is always in
// exactly one of the two kinds; Snapshot is meaningful only while
// viewing.
type Mode struct {
	Kind     ModeKind
	Snapshot int
}

func (m Mode) String() string {
	switch m.Kind {
	case Simulating:
		return "simulating"
	case ViewingSnapshot:
		return fmt.Sprintf("viewing snapshot %d", m.Snapshot)
	default:
		return fmt.Sprintf("unknown mode %d", int(m.Kind))
	}
}
