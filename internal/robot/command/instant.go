package command

import (
	"github.com/team6458/powerup/internal/robot/core"
	"github.com/team6458/powerup/internal/robot/sched"
)

// Instant runs an optional action once and finishes on the same tick. With a
// nil action it is the no-op command, used when the routine must not move.
type Instant struct {
	name   string
	action func()
	done   bool
}

var _ sched.Command = (*Instant)(nil)

// NewInstant builds a one-shot command. action may be nil.
func NewInstant(name string, action func()) *Instant {
	return &Instant{name: name, action: action}
}

// NewNoOp returns a command that does nothing and finishes immediately.
func NewNoOp() *Instant {
	return NewInstant("NoOp", nil)
}

func (c *Instant) Name() string { return c.name }

func (c *Instant) Requirements() []core.Resource { return nil }

func (c *Instant) Initialize() {
	c.done = false
}

func (c *Instant) Execute() {
	if c.action != nil {
		c.action()
	}
	c.done = true
}

func (c *Instant) IsFinished() bool { return c.done }

func (c *Instant) End(interrupted bool) {}
