// Package hal provides the simulated hardware used for development and
// tests. Real encoder, gyro and motor-controller drivers live outside this
// repository and satisfy the same core interfaces.
package hal

import (
	"math"
	"time"

	"github.com/team6458/powerup/internal/robot/core"
	"github.com/team6458/powerup/pkg/log"
)

// Sim is a kinematic stand-in for the drive base and its sensors. TankDrive
// latches the commanded efforts; Advance integrates them into encoder
// distances and a heading. All reads are instantaneous, like the real ports.
//
// Sim is single-goroutine, matching the tick-driven control model.
type Sim struct {
	// MaxSpeed is the linear speed of one side at full effort, units/second.
	MaxSpeed float64
	// TrackWidth is the distance between the two drive sides, in the same
	// units, used to turn differential effort into rotation.
	TrackWidth float64
	// CalibrationDelay is how long Calibrate blocks.
	CalibrationDelay time.Duration

	leftEffort  float64
	rightEffort float64
	leftDist    float64
	rightDist   float64
	heading     float64
	calibrated  bool
}

var (
	_ core.Drivetrain = (*Sim)(nil)
	_ core.Gyro       = (*Sim)(nil)
)

// NewSim returns a simulator with plausible small-robot dimensions: 3 m/s top
// speed and a 0.6 m track.
func NewSim() *Sim {
	return &Sim{MaxSpeed: 3.0, TrackWidth: 0.6}
}

func (s *Sim) TankDrive(left, right float64) {
	s.leftEffort = clamp(left)
	s.rightEffort = clamp(right)
}

func (s *Sim) LeftDistance() float64  { return s.leftDist }
func (s *Sim) RightDistance() float64 { return s.rightDist }

func (s *Sim) ResetEncoders() {
	s.leftDist = 0
	s.rightDist = 0
}

func (s *Sim) Angle() float64 { return s.heading }

func (s *Sim) Calibrate() error {
	if s.CalibrationDelay > 0 {
		log.Info("simulated gyro calibrating", "delay", s.CalibrationDelay)
		time.Sleep(s.CalibrationDelay)
	}
	s.calibrated = true
	return nil
}

// Calibrated reports whether Calibrate has completed.
func (s *Sim) Calibrated() bool { return s.calibrated }

// Advance integrates the latched efforts over dt. Called once per tick by the
// simulation driver, after the scheduler has produced this tick's outputs.
func (s *Sim) Advance(dt time.Duration) {
	sec := dt.Seconds()
	left := s.leftEffort * s.MaxSpeed * sec
	right := s.rightEffort * s.MaxSpeed * sec

	s.leftDist += left
	s.rightDist += right

	// Differential drive: left faster than right yaws clockwise.
	s.heading += (left - right) / s.TrackWidth * (180 / math.Pi)
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
