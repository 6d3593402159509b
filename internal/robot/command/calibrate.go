package command

import (
	"github.com/team6458/powerup/internal/robot/core"
	"github.com/team6458/powerup/internal/robot/sched"
	"github.com/team6458/powerup/pkg/log"
)

// CalibrateGyro runs the one-time blocking gyro calibration while owning the
// sensors resource, so no other command reads the heading mid-calibration.
// It blocks its tick for several seconds; schedule it only before motion
// commands, never during a match.
type CalibrateGyro struct {
	gyro core.Gyro
	done bool
}

var _ sched.Command = (*CalibrateGyro)(nil)

// NewCalibrateGyro builds a calibration command.
func NewCalibrateGyro(gyro core.Gyro) *CalibrateGyro {
	return &CalibrateGyro{gyro: gyro}
}

func (c *CalibrateGyro) Name() string { return "CalibrateGyro" }

func (c *CalibrateGyro) Requirements() []core.Resource {
	return []core.Resource{core.ResourceSensors}
}

func (c *CalibrateGyro) Initialize() {
	c.done = false
}

func (c *CalibrateGyro) Execute() {
	if c.done {
		return
	}
	if err := c.gyro.Calibrate(); err != nil {
		log.Error(err, "gyro calibration failed")
	}
	c.done = true
}

func (c *CalibrateGyro) IsFinished() bool { return c.done }

func (c *CalibrateGyro) End(interrupted bool) {}
