package sched

import (
	"context"

	"github.com/looplab/fsm"
)

// Lifecycle states of a scheduled command.
const (
	StateInitializing = "initializing"
	StateRunning      = "running"
	StateFinished     = "finished"
	StateInterrupted  = "interrupted"
)

// Lifecycle events.
const (
	eventStart     = "start"
	eventFinish    = "finish"
	eventInterrupt = "interrupt"
)

// wrapEvent adapts an error-returning callback to the fsm callback signature,
// surfacing the error through the event so the transition fails.
func wrapEvent(fn func(ctx context.Context, e *fsm.Event) error) fsm.Callback {
	return func(ctx context.Context, e *fsm.Event) {
		if err := fn(ctx, e); err != nil {
			e.Err = err
		}
	}
}

// newLifecycle builds the per-command state machine. The command's own
// Initialize/End hooks ride on the transitions, so state and side effects can
// never drift apart:
//
//	initializing --start--> running --finish--> finished
//	initializing/running --interrupt--> interrupted
func newLifecycle(cmd Command) *fsm.FSM {
	return fsm.NewFSM(
		StateInitializing,
		fsm.Events{
			{Name: eventStart, Src: []string{StateInitializing}, Dst: StateRunning},
			{Name: eventFinish, Src: []string{StateRunning}, Dst: StateFinished},
			{Name: eventInterrupt, Src: []string{StateInitializing, StateRunning}, Dst: StateInterrupted},
		},
		fsm.Callbacks{
			"before_" + eventStart: wrapEvent(func(ctx context.Context, e *fsm.Event) error {
				cmd.Initialize()
				return nil
			}),
			"enter_" + StateFinished: wrapEvent(func(ctx context.Context, e *fsm.Event) error {
				cmd.End(false)
				return nil
			}),
			"enter_" + StateInterrupted: wrapEvent(func(ctx context.Context, e *fsm.Event) error {
				cmd.End(true)
				return nil
			}),
		},
	)
}
