package robot

import (
	"time"

	"github.com/team6458/powerup/internal/robot/auto"
	"github.com/team6458/powerup/internal/robot/core"
	"github.com/team6458/powerup/internal/robot/fms"
	"github.com/team6458/powerup/internal/robot/sched"
	"github.com/team6458/powerup/pkg/field"
	"github.com/team6458/powerup/pkg/log"
)

// Config assembles a Robot from its collaborators. The hardware handles and
// the signal source are injected so the same core drives the simulator and
// the real robot.
type Config struct {
	// Position is the alliance starting position for this match.
	Position auto.Position

	// TickPeriod is the control-loop interval.
	TickPeriod time.Duration

	// TelemetryAddr is the listen address of the telemetry server; empty
	// disables it.
	TelemetryAddr string

	// Params tune the autonomous routine.
	Params auto.Params

	// CalibrateOnStart runs the blocking gyro calibration during Start,
	// before any command is scheduled.
	CalibrateOnStart bool

	Drivetrain core.Drivetrain
	Gyro       core.Gyro
	Source     fms.Source
}

// NewRobot validates the wiring and builds the robot. A missing handle is a
// sequencing defect and aborts initialization instead of deferring the crash
// to the first motion command.
func (c *Config) NewRobot() (*Robot, error) {
	if c.Drivetrain == nil {
		return nil, core.NotInitialized("drivetrain")
	}
	if c.Gyro == nil {
		return nil, core.NotInitialized("gyro")
	}
	if c.Source == nil {
		return nil, core.NotInitialized("field signal source")
	}

	tickPeriod := c.TickPeriod
	if tickPeriod <= 0 {
		tickPeriod = 20 * time.Millisecond
	}

	return &Robot{
		log:           log.WithName("robot"),
		scheduler:     sched.New(),
		router:        auto.NewRouter(c.Drivetrain, c.Gyro, c.Params),
		position:      c.Position,
		drivetrain:    c.Drivetrain,
		gyro:          c.Gyro,
		source:        c.Source,
		tickPeriod:    tickPeriod,
		telemetryAddr: c.TelemetryAddr,
		calibrate:     c.CalibrateOnStart,
		mode:          ModeDisabled,
		assignment:    field.AllInvalid,
	}, nil
}
