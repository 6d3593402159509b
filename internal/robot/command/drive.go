// Package command holds the concrete commands the scheduler runs: straight
// drives, in-place rotations, gyro calibration and instant one-shots.
package command

import (
	"fmt"
	"math"

	"github.com/team6458/powerup/internal/robot/core"
	"github.com/team6458/powerup/internal/robot/sched"
	"github.com/team6458/powerup/pkg/gradient"
)

// headingHoldGain is the proportional correction applied per degree of
// heading drift during a straight drive.
const headingHoldGain = 0.03

// DriveStraight drives the robot a fixed signed distance, throttled by a
// velocity gradient and holding the heading recorded at start.
type DriveStraight struct {
	drive core.Drivetrain
	gyro  core.Gyro

	distance float64
	profile  gradient.Gradient

	startLeft    float64
	startRight   float64
	startHeading float64
}

var _ sched.Command = (*DriveStraight)(nil)

// NewDriveStraight builds a straight-drive command covering distance (signed,
// negative drives backwards). A zero distance has no direction of travel and
// is rejected up front so the command never reaches the scheduler.
func NewDriveStraight(drive core.Drivetrain, gyro core.Gyro, distance float64, profile gradient.Gradient) (*DriveStraight, error) {
	if distance == 0 {
		return nil, fmt.Errorf("drive straight: %w", gradient.ErrInvalidProfile)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &DriveStraight{
		drive:    drive,
		gyro:     gyro,
		distance: distance,
		profile:  profile,
	}, nil
}

func (c *DriveStraight) Name() string {
	return fmt.Sprintf("DriveStraight(%+.2f)", c.distance)
}

func (c *DriveStraight) Requirements() []core.Resource {
	return []core.Resource{core.ResourceDrivetrain}
}

func (c *DriveStraight) Initialize() {
	c.startLeft = c.drive.LeftDistance()
	c.startRight = c.drive.RightDistance()
	c.startHeading = c.gyro.Angle()
}

func (c *DriveStraight) Execute() {
	remaining := c.distance - c.traveled()
	out, err := c.profile.Output(c.distance, remaining)
	if err != nil {
		// Unreachable: the constructor rejects a zero distance.
		out = 0
	}

	// Proportional heading hold keeps the drive straight on scrubbed carpet.
	correction := headingHoldGain * (c.gyro.Angle() - c.startHeading)
	left := clamp(out-correction, -1, 1)
	right := clamp(out+correction, -1, 1)
	c.drive.TankDrive(left, right)
}

func (c *DriveStraight) IsFinished() bool {
	return math.Abs(c.traveled()) >= math.Abs(c.distance)
}

func (c *DriveStraight) End(interrupted bool) {
	c.drive.TankDrive(0, 0)
}

// traveled averages both encoders relative to the recorded start readings.
func (c *DriveStraight) traveled() float64 {
	left := c.drive.LeftDistance() - c.startLeft
	right := c.drive.RightDistance() - c.startRight
	return (left + right) / 2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
