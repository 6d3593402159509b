package sched

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/team6458/powerup/internal/pkg/metrics"
	"github.com/team6458/powerup/internal/robot/core"
)

// fakeCommand records its lifecycle into a shared journal so tests can assert
// on cross-command ordering.
type fakeCommand struct {
	name        string
	reqs        []core.Resource
	finishAfter int // Execute calls until IsFinished reports true; <0 means never

	inits       int
	execs       int
	ends        int
	interrupted bool
	journal     *[]string
}

func (f *fakeCommand) Name() string                  { return f.name }
func (f *fakeCommand) Requirements() []core.Resource { return f.reqs }

func (f *fakeCommand) Initialize() {
	f.inits++
	f.record("init")
}

func (f *fakeCommand) Execute() {
	f.execs++
	f.record("exec")
}

func (f *fakeCommand) IsFinished() bool {
	return f.finishAfter >= 0 && f.execs >= f.finishAfter
}

func (f *fakeCommand) End(interrupted bool) {
	f.ends++
	f.interrupted = interrupted
	f.record(fmt.Sprintf("end(interrupted=%v)", interrupted))
}

func (f *fakeCommand) record(what string) {
	if f.journal != nil {
		*f.journal = append(*f.journal, f.name+" "+what)
	}
}

func runForever(name string, reqs ...core.Resource) *fakeCommand {
	return &fakeCommand{name: name, reqs: reqs, finishAfter: -1}
}

func TestInitializeThenExecuteSameTick(t *testing.T) {
	ctx := context.Background()
	s := New()
	cmd := runForever("drive", core.ResourceDrivetrain)

	s.Schedule(ctx, cmd)
	if cmd.inits != 0 || cmd.execs != 0 {
		t.Fatal("command advanced before the first tick")
	}

	s.Run(ctx)
	if cmd.inits != 1 || cmd.execs != 1 {
		t.Errorf("after first tick: inits=%d execs=%d, want 1 and 1", cmd.inits, cmd.execs)
	}

	s.Run(ctx)
	if cmd.inits != 1 || cmd.execs != 2 {
		t.Errorf("after second tick: inits=%d execs=%d, want 1 and 2", cmd.inits, cmd.execs)
	}
}

func TestFinishedCommandRetiresNormally(t *testing.T) {
	ctx := context.Background()
	s := New()
	cmd := &fakeCommand{name: "short", reqs: []core.Resource{core.ResourceDrivetrain}, finishAfter: 2}

	s.Schedule(ctx, cmd)
	s.Run(ctx)
	s.Run(ctx)

	if cmd.ends != 1 || cmd.interrupted {
		t.Errorf("ends=%d interrupted=%v, want one normal end", cmd.ends, cmd.interrupted)
	}
	if s.Active() != 0 {
		t.Errorf("Active() = %d after retirement, want 0", s.Active())
	}

	// The freed resource must be claimable without a conflict interruption.
	next := runForever("next", core.ResourceDrivetrain)
	s.Schedule(ctx, next)
	s.Run(ctx)
	if next.inits != 1 {
		t.Error("resource not freed after normal retirement")
	}
}

func TestResourceConflictInterruptsOwner(t *testing.T) {
	overlaps := [][2][]core.Resource{
		{{core.ResourceDrivetrain}, {core.ResourceDrivetrain}},
		{{core.ResourceDrivetrain}, {core.ResourceDrivetrain, core.ResourceSensors}},
		{{core.ResourceDrivetrain, core.ResourceRamp}, {core.ResourceRamp}},
		{{core.ResourceSensors, core.ResourceDrivetrain}, {core.ResourceDrivetrain, core.ResourceRamp}},
	}

	for i, pair := range overlaps {
		t.Run(fmt.Sprintf("pair_%d", i), func(t *testing.T) {
			ctx := context.Background()
			s := New()
			var journal []string

			a := runForever("A", pair[0]...)
			a.journal = &journal
			b := runForever("B", pair[1]...)
			b.journal = &journal

			s.Schedule(ctx, a)
			s.Run(ctx)

			s.Schedule(ctx, b)
			if a.ends != 1 || !a.interrupted {
				t.Fatalf("owner A: ends=%d interrupted=%v, want interrupted retirement", a.ends, a.interrupted)
			}

			s.Run(ctx)
			// A's cleanup must precede B's Initialize.
			var endA, initB = -1, -1
			for idx, ev := range journal {
				switch ev {
				case "A end(interrupted=true)":
					endA = idx
				case "B init":
					initB = idx
				}
			}
			if endA == -1 || initB == -1 || endA > initB {
				t.Errorf("ordering violated: %v", journal)
			}
		})
	}
}

func TestInterruptedOwnerSkippedInSameTickSnapshot(t *testing.T) {
	ctx := context.Background()
	s := New()

	a := runForever("A", core.ResourceDrivetrain)
	b := runForever("B", core.ResourceDrivetrain)

	s.Schedule(ctx, a)
	s.Schedule(ctx, b) // interrupts A before A ever ran

	if a.inits != 0 || a.ends != 1 || !a.interrupted {
		t.Errorf("A: inits=%d ends=%d interrupted=%v, want cleanup without init tick", a.inits, a.ends, a.interrupted)
	}

	s.Run(ctx)
	if a.execs != 0 {
		t.Error("interrupted command still executed")
	}
	if b.inits != 1 || b.execs != 1 {
		t.Errorf("B: inits=%d execs=%d, want 1 and 1", b.inits, b.execs)
	}
}

func TestCommandsAdvanceInSchedulingOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	var journal []string

	a := runForever("A", core.ResourceDrivetrain)
	a.journal = &journal
	b := runForever("B", core.ResourceRamp)
	b.journal = &journal

	s.Schedule(ctx, a)
	s.Schedule(ctx, b)
	s.Run(ctx)

	want := []string{"A init", "A exec", "B init", "B exec"}
	if len(journal) != len(want) {
		t.Fatalf("journal = %v, want %v", journal, want)
	}
	for i := range want {
		if journal[i] != want[i] {
			t.Fatalf("journal = %v, want %v", journal, want)
		}
	}
}

func TestDisablePausesWithoutInterrupting(t *testing.T) {
	ctx := context.Background()
	s := New()
	cmd := runForever("drive", core.ResourceDrivetrain)

	s.Schedule(ctx, cmd)
	s.Run(ctx)

	s.Disable()
	s.Run(ctx)
	s.Run(ctx)
	if cmd.execs != 1 {
		t.Errorf("execs=%d while disabled, want 1", cmd.execs)
	}
	if cmd.ends != 0 {
		t.Error("disable must not interrupt commands")
	}

	s.Enable()
	s.Run(ctx)
	if cmd.execs != 2 {
		t.Errorf("execs=%d after re-enable, want 2", cmd.execs)
	}
}

func TestRemoveAllInterruptsEverything(t *testing.T) {
	ctx := context.Background()
	s := New()

	a := runForever("A", core.ResourceDrivetrain)
	b := runForever("B", core.ResourceRamp)
	s.Schedule(ctx, a)
	s.Schedule(ctx, b)
	s.Run(ctx)

	s.RemoveAll(ctx)
	for _, cmd := range []*fakeCommand{a, b} {
		if cmd.ends != 1 || !cmd.interrupted {
			t.Errorf("%s: ends=%d interrupted=%v, want interrupted retirement", cmd.name, cmd.ends, cmd.interrupted)
		}
	}
	if s.Active() != 0 {
		t.Errorf("Active() = %d after RemoveAll, want 0", s.Active())
	}
}

func TestScheduleDuringTickRunsNextTick(t *testing.T) {
	ctx := context.Background()
	s := New()

	late := runForever("late", core.ResourceRamp)

	// A command that schedules another command from inside its Execute.
	scheduler := &hookCommand{
		fakeCommand: fakeCommand{name: "hook", finishAfter: 1},
		onExecute:   func() { s.Schedule(ctx, late) },
	}

	s.Schedule(ctx, scheduler)
	s.Run(ctx)
	if late.inits != 0 {
		t.Error("command scheduled mid-tick must not run in the same tick")
	}
	s.Run(ctx)
	if late.inits != 1 {
		t.Error("command scheduled mid-tick must run on the following tick")
	}
}

func TestSelfReplacementRetiresOnce(t *testing.T) {
	ctx := context.Background()
	s := New()

	replacement := runForever("replacement", core.ResourceDrivetrain)

	// A finishing command that hands its resource to a successor from inside
	// its own Execute. The conflict interrupts it mid-tick; the tick loop must
	// not retire it again for IsFinished.
	old := &hookCommand{
		fakeCommand: fakeCommand{
			name:        "old",
			reqs:        []core.Resource{core.ResourceDrivetrain},
			finishAfter: 1,
		},
		onExecute: func() { s.Schedule(ctx, replacement) },
	}

	before := retiredTotal()
	s.Schedule(ctx, old)
	s.Run(ctx)

	if old.ends != 1 || !old.interrupted {
		t.Errorf("old: ends=%d interrupted=%v, want a single interrupted retirement", old.ends, old.interrupted)
	}
	if got := retiredTotal() - before; got != 1 {
		t.Errorf("retired counter advanced by %v for one retired command, want 1", got)
	}
	if s.Active() != 1 {
		t.Errorf("Active() = %d, want only the replacement", s.Active())
	}

	s.Run(ctx)
	if replacement.inits != 1 || replacement.execs != 1 {
		t.Errorf("replacement: inits=%d execs=%d, want it running on the next tick", replacement.inits, replacement.execs)
	}
}

// retiredTotal sums the retirement counter across both outcome labels; the
// collectors are package globals, so tests compare deltas.
func retiredTotal() float64 {
	return testutil.ToFloat64(metrics.CommandsRetired.WithLabelValues("finished")) +
		testutil.ToFloat64(metrics.CommandsRetired.WithLabelValues("interrupted"))
}

type hookCommand struct {
	fakeCommand
	onExecute func()
}

func (h *hookCommand) Execute() {
	h.fakeCommand.Execute()
	if h.onExecute != nil {
		h.onExecute()
	}
}
