package sched

import (
	"context"
	"strconv"

	"github.com/looplab/fsm"

	"github.com/team6458/powerup/internal/pkg/metrics"
	"github.com/team6458/powerup/internal/robot/core"
	"github.com/team6458/powerup/pkg/log"
)

// Scheduler owns the set of active commands and the resource ownership map.
// It is not safe for concurrent use: all calls must come from the single
// control-loop goroutine, which is the only writer by design.
type Scheduler struct {
	log     log.Logger
	enabled bool

	// entries preserves scheduling order; within one tick commands advance
	// in the order they were scheduled.
	entries []*entry
	owners  map[core.Resource]*entry
}

type entry struct {
	cmd     Command
	machine *fsm.FSM
	retired bool
}

// New creates an enabled, empty scheduler.
func New() *Scheduler {
	return &Scheduler{
		log:     log.WithName("scheduler"),
		enabled: true,
		owners:  make(map[core.Resource]*entry),
	}
}

// Enable resumes ticking. Commands continue from whatever internal state they
// were left in.
func (s *Scheduler) Enable() { s.enabled = true }

// Disable stops ticking entirely. Nothing advances and nothing is retired,
// but no command is interrupted either.
func (s *Scheduler) Disable() { s.enabled = false }

// Enabled reports whether Run advances commands.
func (s *Scheduler) Enabled() bool { return s.enabled }

// Active returns the number of commands currently registered.
func (s *Scheduler) Active() int { return len(s.entries) }

// Schedule registers cmd. Any active command owning one of cmd's resources is
// interrupted and retired first, so cmd's Initialize never observes a shared
// actuator with two drivers. Scheduling works even while disabled; the
// command simply will not advance until Run ticks again.
func (s *Scheduler) Schedule(ctx context.Context, cmd Command) {
	for _, res := range cmd.Requirements() {
		owner, ok := s.owners[res]
		if !ok || owner.retired {
			continue
		}
		s.log.Info("resource conflict, interrupting owner",
			"resource", res, "owner", owner.cmd.Name(), "claimant", cmd.Name())
		metrics.ResourceConflicts.WithLabelValues(string(res)).Inc()
		s.retire(ctx, owner, eventInterrupt)
	}

	e := &entry{cmd: cmd, machine: newLifecycle(cmd)}
	s.entries = append(s.entries, e)
	for _, res := range cmd.Requirements() {
		s.owners[res] = e
	}

	metrics.CommandsScheduled.Inc()
	metrics.ActiveCommands.Set(float64(len(s.entries)))
	s.log.Debug("command scheduled", "command", cmd.Name(), "active", len(s.entries))
}

// Run advances every active command by one step. Commands scheduled during
// this tick are not part of the snapshot and first run on the next tick. A
// freshly scheduled command runs Initialize and one Execute in the same tick.
func (s *Scheduler) Run(ctx context.Context) {
	metrics.SchedulerTicks.WithLabelValues(strconv.FormatBool(s.enabled)).Inc()
	if !s.enabled {
		return
	}

	snapshot := make([]*entry, len(s.entries))
	copy(snapshot, s.entries)

	for _, e := range snapshot {
		if e.retired {
			// Interrupted earlier in this same tick by a conflicting claim.
			continue
		}

		if e.machine.Is(StateInitializing) {
			if err := e.machine.Event(ctx, eventStart); err != nil {
				s.log.Error(err, "command failed to start", "command", e.cmd.Name())
				s.retire(ctx, e, eventInterrupt)
				continue
			}
		}

		e.cmd.Execute()
		// Execute may have scheduled a conflicting claim that already
		// interrupted this command; it must not retire a second time.
		if !e.retired && e.cmd.IsFinished() {
			s.retire(ctx, e, eventFinish)
		}
	}
}

// RemoveAll interrupts and retires every active command unconditionally.
// Called on mode transitions.
func (s *Scheduler) RemoveAll(ctx context.Context) {
	if len(s.entries) == 0 {
		return
	}
	s.log.Info("removing all commands", "active", len(s.entries))

	snapshot := make([]*entry, len(s.entries))
	copy(snapshot, s.entries)
	for _, e := range snapshot {
		if !e.retired {
			s.retire(ctx, e, eventInterrupt)
		}
	}
}

// retire drives the final lifecycle transition (running the command's End
// hook synchronously), frees its resources and drops it from the active set.
func (s *Scheduler) retire(ctx context.Context, e *entry, event string) {
	if e.retired {
		return
	}
	if err := e.machine.Event(ctx, event); err != nil {
		s.log.Error(err, "lifecycle transition failed",
			"command", e.cmd.Name(), "event", event, "state", e.machine.Current())
	}
	e.retired = true

	for _, res := range e.cmd.Requirements() {
		if s.owners[res] == e {
			delete(s.owners, res)
		}
	}
	for i, other := range s.entries {
		if other == e {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}

	outcome := "interrupted"
	if event == eventFinish {
		outcome = "finished"
	}
	metrics.CommandsRetired.WithLabelValues(outcome).Inc()
	metrics.ActiveCommands.Set(float64(len(s.entries)))
	s.log.Debug("command retired", "command", e.cmd.Name(), "outcome", outcome)
}
