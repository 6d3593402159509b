package robot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/team6458/powerup/internal/robot/auto"
	"github.com/team6458/powerup/internal/robot/core"
	"github.com/team6458/powerup/internal/robot/fms"
	"github.com/team6458/powerup/internal/robot/hal"
)

func newTestRobot(t *testing.T, sim *hal.Sim, src fms.Source) *Robot {
	t.Helper()
	cfg := &Config{
		Position:   auto.PositionLeft,
		TickPeriod: 20 * time.Millisecond,
		Params:     auto.DefaultParams(),
		Drivetrain: sim,
		Gyro:       sim,
		Source:     src,
	}
	r, err := cfg.NewRobot()
	if err != nil {
		t.Fatalf("NewRobot: %v", err)
	}
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return r
}

func TestNewRobotRejectsMissingHandles(t *testing.T) {
	sim := hal.NewSim()
	src := &fms.Static{}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"no drivetrain", Config{Gyro: sim, Source: src}},
		{"no gyro", Config{Drivetrain: sim, Source: src}},
		{"no source", Config{Drivetrain: sim, Gyro: sim}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.NewRobot(); !errors.Is(err, core.ErrNotInitialized) {
				t.Errorf("err = %v, want ErrNotInitialized", err)
			}
		})
	}
}

func TestAccessorsFailBeforeStart(t *testing.T) {
	sim := hal.NewSim()
	cfg := &Config{
		Drivetrain: sim,
		Gyro:       sim,
		Source:     &fms.Static{},
	}
	r, err := cfg.NewRobot()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Drivetrain(); !errors.Is(err, core.ErrNotInitialized) {
		t.Errorf("Drivetrain() err = %v, want ErrNotInitialized", err)
	}
	if _, err := r.Gyro(); !errors.Is(err, core.ErrNotInitialized) {
		t.Errorf("Gyro() err = %v, want ErrNotInitialized", err)
	}

	if err := r.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Drivetrain(); err != nil {
		t.Errorf("Drivetrain() after Start: %v", err)
	}
}

func TestAssignmentPolledOnlyWhileDisabled(t *testing.T) {
	ctx := context.Background()
	sim := hal.NewSim()
	src := &fms.Static{}
	r := newTestRobot(t, sim, src)

	r.Periodic(ctx)
	if r.Assignment().Known() {
		t.Fatal("assignment known with no signal")
	}

	src.Raw = "LRL"
	src.Present = true
	r.Periodic(ctx)
	if got := r.Assignment().String(); got != "LRL" {
		t.Fatalf("assignment = %q after disabled poll, want LRL", got)
	}

	// Teleop does not poll: a signal change stays invisible.
	r.EnterTeleop(ctx)
	src.Raw = "RRR"
	r.Periodic(ctx)
	if got := r.Assignment().String(); got != "LRL" {
		t.Errorf("assignment = %q, teleop tick must not re-poll", got)
	}
}

func TestAutonomousRunsSelectedRoutine(t *testing.T) {
	ctx := context.Background()
	sim := hal.NewSim()
	src := &fms.Static{Raw: "LLL", Present: true}
	r := newTestRobot(t, sim, src)

	if err := r.EnterAutonomous(ctx); err != nil {
		t.Fatalf("EnterAutonomous: %v", err)
	}
	if r.Scheduler().Active() != 1 {
		t.Fatal("no routine scheduled")
	}

	for i := 0; i < 5000 && r.Scheduler().Active() > 0; i++ {
		r.Periodic(ctx)
		sim.Advance(20 * time.Millisecond)
	}
	if r.Scheduler().Active() != 0 {
		t.Fatal("routine never finished")
	}

	if d := (sim.LeftDistance() + sim.RightDistance()) / 2; d < 3.5 {
		t.Errorf("travelled %v, expected the delivery drive", d)
	}
}

func TestAutonomousWithoutSignalStaysPut(t *testing.T) {
	ctx := context.Background()
	sim := hal.NewSim()
	r := newTestRobot(t, sim, &fms.Static{})

	if err := r.EnterAutonomous(ctx); err != nil {
		t.Fatalf("EnterAutonomous: %v", err)
	}
	for i := 0; i < 10; i++ {
		r.Periodic(ctx)
		sim.Advance(20 * time.Millisecond)
	}

	if d := (sim.LeftDistance() + sim.RightDistance()) / 2; d != 0 {
		t.Errorf("travelled %v with no assignment, want 0", d)
	}
}

func TestDisableClearsTrailingCommands(t *testing.T) {
	ctx := context.Background()
	sim := hal.NewSim()
	r := newTestRobot(t, sim, &fms.Static{Raw: "LLL", Present: true})

	if err := r.EnterAutonomous(ctx); err != nil {
		t.Fatal(err)
	}
	r.Periodic(ctx)
	if r.Scheduler().Active() == 0 {
		t.Fatal("setup failed: nothing running")
	}

	r.EnterDisabled(ctx)
	if r.Scheduler().Active() != 0 {
		t.Error("commands survived the disabled transition")
	}
}

func TestTestModeRunsCatalogCommand(t *testing.T) {
	ctx := context.Background()
	sim := hal.NewSim()
	r := newTestRobot(t, sim, &fms.Static{})

	if err := r.EnterTest(ctx, "rotate-right-90"); err != nil {
		t.Fatalf("EnterTest: %v", err)
	}
	for i := 0; i < 5000 && r.Scheduler().Active() > 0; i++ {
		r.Periodic(ctx)
		sim.Advance(20 * time.Millisecond)
	}

	if a := sim.Angle(); a < 80 {
		t.Errorf("heading %v after rotate-right-90, want about 90", a)
	}

	if err := r.EnterTest(ctx, "no-such-command"); err == nil {
		t.Error("unknown debug command accepted")
	}
}

func TestDebugCatalog(t *testing.T) {
	names := DebugCommandNames()
	if len(names) == 0 {
		t.Fatal("empty debug catalog")
	}
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			t.Errorf("duplicate catalog entry %q", name)
		}
		seen[name] = true
		if DebugCommandDescription(name) == "" {
			t.Errorf("catalog entry %q has no description", name)
		}
	}
	for _, want := range []string{"none", "rotate-left-45", "drive-forward-2.0m", "calibrate-gyro"} {
		if !seen[want] {
			t.Errorf("catalog missing %q", want)
		}
	}
}
