// Package core defines the ports between the control logic and the physical
// robot: the hardware abstraction interfaces, the enumerated resources that
// commands may own exclusively, and the shared sentinel errors.
package core

// Drivetrain is the outbound port to the drive base. Reads are instantaneous
// and side-effect free; TankDrive applies one tick's worth of effort.
type Drivetrain interface {
	// TankDrive applies normalized effort in [-1, 1] per side.
	TankDrive(left, right float64)

	// LeftDistance returns the accumulated displacement of the left side, in
	// the same units motion commands are configured with.
	LeftDistance() float64

	// RightDistance returns the accumulated displacement of the right side.
	RightDistance() float64

	// ResetEncoders zeroes both displacement readings.
	ResetEncoders()
}

// Gyro is the outbound port to the heading sensor.
type Gyro interface {
	// Angle returns the continuous heading in degrees. Clockwise is positive.
	Angle() float64

	// Calibrate performs the one-time blocking calibration. It must complete
	// before motion commands are scheduled.
	Calibrate() error
}
