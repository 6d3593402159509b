package core

// Resource identifies a hardware subsystem that at most one active command
// may own at a time. Ownership is tracked by the scheduler keyed on these
// values, never on object identity.
type Resource string

const (
	ResourceDrivetrain Resource = "drivetrain"
	ResourceRamp       Resource = "ramp"
	ResourceSensors    Resource = "sensors"
)
