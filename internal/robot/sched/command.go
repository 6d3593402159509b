// Package sched contains the cooperative command scheduler: commands declare
// the hardware resources they need, the scheduler advances every active
// command once per tick and guarantees that each resource has at most one
// active owner at any time.
package sched

import "github.com/team6458/powerup/internal/robot/core"

// Command is one schedulable unit of actuation. The scheduler dispatches the
// lifecycle; implementations never call these methods on themselves.
//
// A Command instance runs at most once. Initialize is invoked exactly once
// before the first Execute. End is invoked exactly once on retirement, with
// interrupted=true when the command was cut short by a conflicting resource
// claim or a full reset.
type Command interface {
	// Name identifies the command in logs and the routine catalog.
	Name() string

	// Requirements lists the resources this command needs exclusive access to.
	Requirements() []core.Resource

	// Initialize prepares internal state (e.g. records start sensor readings).
	Initialize()

	// Execute performs one tick's worth of work.
	Execute()

	// IsFinished reports whether the command has met its goal. It is checked
	// after every Execute.
	IsFinished() bool

	// End releases actuators. interrupted is false when the finish predicate
	// was satisfied, true when the command was cancelled.
	End(interrupted bool)
}
