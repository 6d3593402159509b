package robot

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/team6458/powerup/internal/robot/telemetry"
)

// watcher is implemented by signal sources that keep themselves current in
// the background, such as the fsnotify file source.
type watcher interface {
	Watch(ctx context.Context) error
}

// advancer is implemented by the simulated drivetrain; real hardware moves on
// its own and does not need stepping.
type advancer interface {
	Advance(dt time.Duration)
}

// step advances the simulation clock, when there is one, after a tick's
// outputs have been latched.
func (r *Robot) step() {
	if a, ok := r.drivetrain.(advancer); ok {
		a.Advance(r.tickPeriod)
	}
}

// Run is the standalone match harness used by the powerup-robot binary: it
// performs startup, runs the autonomous routine to completion, then idles in
// teleop until the context is cancelled. The telemetry server and the signal
// watcher run alongside the tick loop.
func (r *Robot) Run(ctx context.Context) error {
	if err := r.Start(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	if r.telemetryAddr != "" {
		srv := telemetry.NewServer(r.telemetryAddr, r.Assignment)
		g.Go(func() error {
			return srv.Start(ctx)
		})
	}

	if w, ok := r.source.(watcher); ok {
		g.Go(func() error {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		return r.loop(ctx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// RunTest executes one debug command from the catalog and returns when it
// finishes. Used by the `powerup-robot test` subcommand.
func (r *Robot) RunTest(ctx context.Context, name string) error {
	if err := r.EnterTest(ctx, name); err != nil {
		return err
	}

	ticker := time.NewTicker(r.tickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.EnterDisabled(context.WithoutCancel(ctx))
			return ctx.Err()
		case <-ticker.C:
			r.Periodic(ctx)
			r.step()
			if r.scheduler.Active() == 0 {
				r.log.Info("debug command complete", "command", name)
				return nil
			}
		}
	}
}

// loop drives the fixed-period tick. One tick equals one Periodic call; all
// scheduler state is touched only from here.
func (r *Robot) loop(ctx context.Context) error {
	ticker := time.NewTicker(r.tickPeriod)
	defer ticker.Stop()

	if err := r.EnterAutonomous(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			r.EnterDisabled(context.WithoutCancel(ctx))
			return ctx.Err()
		case <-ticker.C:
			r.Periodic(ctx)
			r.step()
			if r.mode == ModeAutonomous && r.scheduler.Active() == 0 {
				r.log.Info("autonomous routine complete")
				r.EnterTeleop(ctx)
			}
		}
	}
}
