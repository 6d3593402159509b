// Package auto selects and composes the autonomous routine from the decoded
// plate assignment and the alliance starting position.
package auto

import (
	"fmt"

	"github.com/team6458/powerup/internal/robot/command"
	"github.com/team6458/powerup/internal/robot/core"
	"github.com/team6458/powerup/internal/robot/sched"
	"github.com/team6458/powerup/pkg/field"
	"github.com/team6458/powerup/pkg/gradient"
	"github.com/team6458/powerup/pkg/log"
)

// Field geometry, in metres and degrees. The switch sits one main drive ahead
// of the alliance wall; the last stretch closes the remaining gap after any
// turn toward the plate.
const (
	mainDriveDistance   = 3.0
	lastStretchDistance = 1.0
	// faceAngleFromCentre is the turn a centre start needs to face its plate.
	faceAngleFromCentre = 35.0
	// avoidSwitchAngle points the robot for teleoperated control after the
	// conservative fallback, roughly turning it around.
	avoidSwitchAngle = 165.0
)

// Params are the tunable throttles and profiles of the delivery routine.
type Params struct {
	// Throttle caps the main drive segment.
	Throttle float64 `json:"throttle" mapstructure:"throttle"`
	// LastStretchThrottle caps the final approach segment.
	LastStretchThrottle float64 `json:"last-stretch-throttle" mapstructure:"last-stretch-throttle"`
	// RotateGradient shapes every in-place rotation.
	RotateGradient gradient.Gradient `json:"rotate-gradient" mapstructure:"rotate-gradient"`
}

// DefaultParams mirror the throttles the routine was tuned with.
func DefaultParams() Params {
	return Params{
		Throttle:            0.6,
		LastStretchThrottle: 0.8,
		RotateGradient:      command.DefaultRotateGradient,
	}
}

// Router builds the autonomous command group for a match.
type Router struct {
	drive  core.Drivetrain
	gyro   core.Gyro
	params Params
	log    log.Logger
}

// NewRouter wires a router to the drive hardware.
func NewRouter(drive core.Drivetrain, gyro core.Gyro, params Params) *Router {
	return &Router{
		drive:  drive,
		gyro:   gyro,
		params: params,
		log:    log.WithName("auto"),
	}
}

// Build selects the routine for the given starting position and assignment.
//
// With no assignment established, moving is unsafe and the routine is a
// no-op. When the starting side matches the nearest plate (or the robot
// starts centre), the direct delivery sequence runs. On a mismatch the
// conservative fallback drives to the alternate recognized position and turns
// in place, never attempting the far plate through the contested middle.
func (r *Router) Build(pos Position, assignment field.Assignment) (sched.Command, error) {
	if !assignment.Known() {
		r.log.Warn("no plate assignment established, building no-op routine")
		return command.NewNoOp(), nil
	}

	nearest := assignment.Nearest()
	r.log.Info("selecting autonomous routine",
		"position", pos, "assignment", assignment, "nearest", nearest)

	if pos == PositionCentre || pos.side() == nearest {
		return r.directDelivery(pos, nearest)
	}
	return r.avoidSwitch(pos)
}

// directDelivery drives to the switch and delivers: main drive, an optional
// turn to face the plate, then the last stretch under its own throttle.
func (r *Router) directDelivery(pos Position, nearest field.PlateSide) (sched.Command, error) {
	var cmds []sched.Command

	main, err := command.NewDriveStraight(r.drive, r.gyro, mainDriveDistance, r.driveProfile(r.params.Throttle))
	if err != nil {
		return nil, fmt.Errorf("direct delivery: %w", err)
	}
	cmds = append(cmds, main)

	// A centre start is not lined up with either plate and has to turn; a
	// matching side start already faces it.
	if pos == PositionCentre {
		angle := faceAngleFromCentre
		if nearest == field.SideLeft {
			angle = -faceAngleFromCentre
		}
		face, err := command.NewRotate(r.drive, r.gyro, angle, r.params.RotateGradient)
		if err != nil {
			return nil, fmt.Errorf("direct delivery: %w", err)
		}
		cmds = append(cmds, face)
	}

	stretch, err := command.NewDriveStraight(r.drive, r.gyro, lastStretchDistance, r.driveProfile(r.params.LastStretchThrottle))
	if err != nil {
		return nil, fmt.Errorf("direct delivery: %w", err)
	}
	cmds = append(cmds, stretch)

	name := fmt.Sprintf("DirectDelivery(%s->%s)", pos, nearest)
	return sched.NewGroup(name, cmds...), nil
}

// avoidSwitch pretends the robot started on the other side: it runs the same
// drive segments toward the alternate position without the delivery turn,
// then rotates in place so the drive team takes over a robot already pointed
// back at the field.
func (r *Router) avoidSwitch(pos Position) (sched.Command, error) {
	main, err := command.NewDriveStraight(r.drive, r.gyro, mainDriveDistance, r.driveProfile(r.params.Throttle))
	if err != nil {
		return nil, fmt.Errorf("avoid switch: %w", err)
	}
	stretch, err := command.NewDriveStraight(r.drive, r.gyro, lastStretchDistance, r.driveProfile(r.params.Throttle))
	if err != nil {
		return nil, fmt.Errorf("avoid switch: %w", err)
	}
	turn, err := command.NewRotate(r.drive, r.gyro, avoidSwitchAngle, r.params.RotateGradient)
	if err != nil {
		return nil, fmt.Errorf("avoid switch: %w", err)
	}

	name := fmt.Sprintf("AvoidSwitch(%s->%s)", pos, pos.opposite())
	return sched.NewGroup(name, main, stretch, turn), nil
}

// driveProfile shapes a straight segment: ramp in over a short span, cruise
// at the throttle, ease out on approach.
func (r *Router) driveProfile(throttle float64) gradient.Gradient {
	min := 0.2
	if throttle < min {
		min = throttle
	}
	return gradient.Gradient{Min: min, Max: throttle, RampUp: 0.3, RampDown: 0.5}
}
