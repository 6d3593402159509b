package command

import (
	"fmt"
	"math"

	"github.com/team6458/powerup/internal/robot/core"
	"github.com/team6458/powerup/internal/robot/sched"
	"github.com/team6458/powerup/pkg/gradient"
)

// DefaultRotateGradient is the throttle profile used for in-place rotations
// unless a command supplies its own. Tuned on carpet: below 0.25 the drive
// base stalls, above 0.55 it overshoots small angles.
var DefaultRotateGradient = gradient.Must(0.25, 0.55, 25, 40)

// Rotate turns the robot in place by a signed angle in degrees, positive
// clockwise, using the gyro for feedback.
type Rotate struct {
	drive core.Drivetrain
	gyro  core.Gyro

	angle   float64
	profile gradient.Gradient

	startHeading float64
}

var _ sched.Command = (*Rotate)(nil)

// NewRotate builds a rotation command. A zero angle is rejected for the same
// reason a zero drive distance is: no direction can be derived.
func NewRotate(drive core.Drivetrain, gyro core.Gyro, angle float64, profile gradient.Gradient) (*Rotate, error) {
	if angle == 0 {
		return nil, fmt.Errorf("rotate: %w", gradient.ErrInvalidProfile)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &Rotate{
		drive:   drive,
		gyro:    gyro,
		angle:   angle,
		profile: profile,
	}, nil
}

func (c *Rotate) Name() string {
	return fmt.Sprintf("Rotate(%+.0f deg)", c.angle)
}

func (c *Rotate) Requirements() []core.Resource {
	return []core.Resource{core.ResourceDrivetrain}
}

func (c *Rotate) Initialize() {
	c.startHeading = c.gyro.Angle()
}

func (c *Rotate) Execute() {
	remaining := c.angle - c.turned()
	out, err := c.profile.Output(c.angle, remaining)
	if err != nil {
		out = 0
	}
	// Positive output turns clockwise: left side forward, right side back.
	c.drive.TankDrive(out, -out)
}

func (c *Rotate) IsFinished() bool {
	return math.Abs(c.turned()) >= math.Abs(c.angle)
}

func (c *Rotate) End(interrupted bool) {
	c.drive.TankDrive(0, 0)
}

func (c *Rotate) turned() float64 {
	return c.gyro.Angle() - c.startHeading
}
