// Package robot ties the control core together: it owns the scheduler, polls
// the field signal, reacts to mode transitions and drives everything from a
// single periodic tick.
package robot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/team6458/powerup/internal/robot/auto"
	"github.com/team6458/powerup/internal/robot/core"
	"github.com/team6458/powerup/internal/robot/fms"
	"github.com/team6458/powerup/internal/robot/sched"
	"github.com/team6458/powerup/pkg/field"
	"github.com/team6458/powerup/pkg/log"
)

// Mode is the robot's operating mode, switched by external events.
type Mode string

const (
	ModeDisabled   Mode = "disabled"
	ModeAutonomous Mode = "autonomous"
	ModeTeleop     Mode = "teleop"
	ModeTest       Mode = "test"
)

// Robot is the single owner of the scheduler and all mode state. Every
// method must be called from the control-loop goroutine; only Assignment is
// safe to call concurrently (the telemetry server reads it).
type Robot struct {
	log           log.Logger
	scheduler     *sched.Scheduler
	router        *auto.Router
	position      auto.Position
	drivetrain    core.Drivetrain
	gyro          core.Gyro
	source        fms.Source
	tickPeriod    time.Duration
	telemetryAddr string
	calibrate     bool
	started       bool
	mode          Mode

	mu         sync.RWMutex
	assignment field.Assignment
	lastRaw    string
}

// Start performs the one-time startup sequence. The gyro calibration blocks
// for several seconds and therefore happens here, before the tick loop, never
// inside it.
func (r *Robot) Start(ctx context.Context) error {
	r.log.Info("starting initialization", "position", r.position, "tickPeriod", r.tickPeriod)

	if r.calibrate {
		r.log.Info("calibrating gyroscope, robot must stay still")
		if err := r.gyro.Calibrate(); err != nil {
			return fmt.Errorf("gyro calibration: %w", err)
		}
	}

	r.started = true
	r.log.Info("initialization complete")
	return nil
}

// Mode returns the current operating mode.
func (r *Robot) Mode() Mode { return r.mode }

// Scheduler exposes the scheduler for the test-mode harness.
func (r *Robot) Scheduler() *sched.Scheduler { return r.scheduler }

// Drivetrain returns the drive handle, failing loudly when the startup
// sequence has not run.
func (r *Robot) Drivetrain() (core.Drivetrain, error) {
	if !r.started || r.drivetrain == nil {
		return nil, core.NotInitialized("drivetrain")
	}
	return r.drivetrain, nil
}

// Gyro returns the heading sensor handle, failing loudly when the startup
// sequence has not run.
func (r *Robot) Gyro() (core.Gyro, error) {
	if !r.started || r.gyro == nil {
		return nil, core.NotInitialized("gyro")
	}
	return r.gyro, nil
}

// Assignment returns the current plate assignment. Safe for concurrent use.
func (r *Robot) Assignment() field.Assignment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.assignment
}

// EnterDisabled clears any trailing commands.
func (r *Robot) EnterDisabled(ctx context.Context) {
	r.log.Info("entering disabled mode")
	r.mode = ModeDisabled
	r.scheduler.RemoveAll(ctx)
}

// EnterAutonomous re-reads the field signal, clears the scheduler and starts
// the routine the router selects. With no usable assignment the routine is a
// no-op rather than a guess.
func (r *Robot) EnterAutonomous(ctx context.Context) error {
	r.log.Info("entering autonomous mode")
	r.mode = ModeAutonomous

	r.refreshAssignment()
	r.scheduler.RemoveAll(ctx)

	cmd, err := r.router.Build(r.position, r.Assignment())
	if err != nil {
		return fmt.Errorf("building autonomous routine: %w", err)
	}
	r.log.Info("running autonomous routine", "routine", cmd.Name())
	r.scheduler.Schedule(ctx, cmd)
	return nil
}

// EnterTeleop hands control to the drivers; the scheduler keeps running so a
// trailing autonomous command can finish its cleanup.
func (r *Robot) EnterTeleop(ctx context.Context) {
	r.log.Info("entering teleop mode")
	r.mode = ModeTeleop
}

// EnterTest clears the scheduler and runs the named debug command.
func (r *Robot) EnterTest(ctx context.Context, name string) error {
	r.log.Info("entering test mode", "command", name)
	r.mode = ModeTest

	r.scheduler.Enable()
	r.scheduler.RemoveAll(ctx)

	cmd, err := r.BuildDebugCommand(name)
	if err != nil {
		return err
	}
	r.scheduler.Schedule(ctx, cmd)
	return nil
}

// Periodic is one tick of the control loop: poll the field signal while
// disabled, then advance the scheduler.
func (r *Robot) Periodic(ctx context.Context) {
	if r.mode == ModeDisabled {
		r.refreshAssignment()
	}
	r.scheduler.Run(ctx)
}

// refreshAssignment re-parses the field signal, logging only actual changes.
func (r *Robot) refreshAssignment() {
	raw := r.source.Message()

	r.mu.Lock()
	defer r.mu.Unlock()

	if raw == "" {
		if r.assignment != field.AllInvalid {
			r.log.Info("plate assignment cleared, no field signal",
				"was", r.assignment, "attached", r.source.Attached())
			r.assignment = field.AllInvalid
			r.lastRaw = ""
		}
		return
	}

	if raw == r.lastRaw {
		return
	}
	next := field.Parse(raw)
	r.log.Info("plate assignment updated", "assignment", next, "was", r.assignment)
	r.assignment = next
	r.lastRaw = raw
}
