package robot

import (
	"fmt"
	"sort"

	"github.com/team6458/powerup/internal/robot/command"
	"github.com/team6458/powerup/internal/robot/sched"
	"github.com/team6458/powerup/pkg/gradient"
)

// A debug command runs at most once, so the catalog stores builders and
// constructs a fresh instance per selection.
type debugEntry struct {
	description string
	build       func(r *Robot) (sched.Command, error)
}

var debugCatalog = buildDebugCatalog()

func buildDebugCatalog() map[string]debugEntry {
	catalog := map[string]debugEntry{
		"none": {
			description: "Do nothing",
			build: func(*Robot) (sched.Command, error) {
				return command.NewNoOp(), nil
			},
		},
		"reset-encoders": {
			description: "Zero both drive encoders",
			build: func(r *Robot) (sched.Command, error) {
				drive, err := r.Drivetrain()
				if err != nil {
					return nil, err
				}
				return command.NewInstant("ResetEncoders", drive.ResetEncoders), nil
			},
		},
		"calibrate-gyro": {
			description: "Run the blocking gyro calibration",
			build: func(r *Robot) (sched.Command, error) {
				gyro, err := r.Gyro()
				if err != nil {
					return nil, err
				}
				return command.NewCalibrateGyro(gyro), nil
			},
		},
		"rotate-360-slow": {
			description: "Turn +360 deg at a flat 0.2 throttle",
			build: func(r *Robot) (sched.Command, error) {
				drive, err := r.Drivetrain()
				if err != nil {
					return nil, err
				}
				gyro, err := r.Gyro()
				if err != nil {
					return nil, err
				}
				return command.NewRotate(drive, gyro, 360, gradient.Must(0.2, 0.2, 20, 10))
			},
		},
	}

	for _, angle := range []float64{20, 45, 50, 90, 180, 360} {
		for _, sign := range []float64{1, -1} {
			target := sign * angle
			dir := "right"
			if sign < 0 {
				dir = "left"
			}
			catalog[fmt.Sprintf("rotate-%s-%.0f", dir, angle)] = debugEntry{
				description: fmt.Sprintf("Turn %+.0f deg", target),
				build: func(r *Robot) (sched.Command, error) {
					drive, err := r.Drivetrain()
					if err != nil {
						return nil, err
					}
					gyro, err := r.Gyro()
					if err != nil {
						return nil, err
					}
					return command.NewRotate(drive, gyro, target, command.DefaultRotateGradient)
				},
			}
		}
	}

	for _, distance := range []float64{0.5, 1.0, 2.0, 3.0} {
		for _, sign := range []float64{1, -1} {
			target := sign * distance
			dir := "forward"
			if sign < 0 {
				dir = "back"
			}
			catalog[fmt.Sprintf("drive-%s-%.1fm", dir, distance)] = debugEntry{
				description: fmt.Sprintf("Drive %+.1f m at 0.35 throttle", target),
				build: func(r *Robot) (sched.Command, error) {
					drive, err := r.Drivetrain()
					if err != nil {
						return nil, err
					}
					gyro, err := r.Gyro()
					if err != nil {
						return nil, err
					}
					return command.NewDriveStraight(drive, gyro, target, gradient.Must(0.15, 0.35, 0.2, 0.3))
				},
			}
		}
	}

	return catalog
}

// DebugCommandNames lists the selectable test-mode commands, sorted.
func DebugCommandNames() []string {
	names := make([]string, 0, len(debugCatalog))
	for name := range debugCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DebugCommandDescription returns the human-readable description for a
// catalog entry, or the empty string if unknown.
func DebugCommandDescription(name string) string {
	return debugCatalog[name].description
}

// BuildDebugCommand constructs a fresh instance of the named debug command.
func (r *Robot) BuildDebugCommand(name string) (sched.Command, error) {
	entry, ok := debugCatalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown debug command %q", name)
	}
	return entry.build(r)
}
