// Package engine simulates gravitating bodies in a plane.
//
// A [System] owns three pieces of state and a mode controller gating
// them:
//
//   - [Registry]: append-only store of immutable bodies, keyed by ids
//     that are never reused.
//   - [Table]: the live mapping from active ids to mutable kinematics.
//   - [History]: a bounded FIFO of table snapshots for rewind viewing.
//
// The driver calls [System.Update] at whatever cadence it likes; while
// simulating, each step computes pairwise pulls, merges colliding
// bodies mass- and momentum-accountably, and integrates motion with
// semi-implicit Euler. [System.EnableLoad], [System.ChangeLoad] and
// [System.ExitLoad] step an observer backward and forward through
// saved states without disturbing the live table until a restore is
// requested.
//
// Everything is single-threaded and synchronous. Mode-transition
// preconditions are the driver's responsibility; violating them panics.
package engine
