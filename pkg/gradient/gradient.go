// Package gradient implements the trapezoidal velocity profile used by motion
// commands: output ramps up from a minimum speed over a configurable span,
// holds at the maximum, and ramps back down toward the end of the motion.
// Distances are unit-agnostic; rotations use degrees.
package gradient

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidProfile is returned when a motion profile cannot derive a
// direction of travel, i.e. the total distance is exactly zero.
var ErrInvalidProfile = errors.New("gradient: zero total distance, no direction of travel")

// Gradient maps remaining progress to a bounded output magnitude. It is
// immutable and stateless, so a single instance is safely shared between any
// number of commands.
type Gradient struct {
	Min      float64 // minimum output magnitude
	Max      float64 // maximum output magnitude
	RampUp   float64 // span over which output climbs from Min to Max
	RampDown float64 // span over which output falls from Max back to Min
}

// New validates and constructs a Gradient. It requires
// 0 <= min <= max and non-negative ramp spans.
func New(min, max, rampUp, rampDown float64) (Gradient, error) {
	g := Gradient{Min: min, Max: max, RampUp: rampUp, RampDown: rampDown}
	if err := g.Validate(); err != nil {
		return Gradient{}, err
	}
	return g, nil
}

// Must is New for statically-known values; it panics on invalid input.
func Must(min, max, rampUp, rampDown float64) Gradient {
	g, err := New(min, max, rampUp, rampDown)
	if err != nil {
		panic(err)
	}
	return g
}

// Validate checks the gradient invariants.
func (g Gradient) Validate() error {
	if g.Min < 0 || g.Max < g.Min {
		return fmt.Errorf("gradient: speeds must satisfy 0 <= min <= max, got min=%v max=%v", g.Min, g.Max)
	}
	if g.RampUp < 0 || g.RampDown < 0 {
		return fmt.Errorf("gradient: ramp spans must be non-negative, got up=%v down=%v", g.RampUp, g.RampDown)
	}
	return nil
}

// Output produces the signed output for the given progress. total is the full
// signed span of the motion and remaining the signed span still to cover,
// shrinking toward zero. The sign of the result always matches the direction
// of travel, taken from the sign of total.
//
// When the motion is shorter than the two ramps combined, the ramps overlap;
// the lower of the two ramp values wins, so the output never exceeds Max and
// never drops below Min. A ramp span of zero skips that phase.
func (g Gradient) Output(total, remaining float64) (float64, error) {
	if total == 0 {
		return 0, ErrInvalidProfile
	}

	span := math.Abs(total)
	rem := math.Abs(remaining)
	traveled := span - rem
	if traveled < 0 {
		traveled = 0
	}

	out := g.Max
	if g.RampUp > 0 && traveled < g.RampUp {
		out = math.Min(out, g.Min+(g.Max-g.Min)*(traveled/g.RampUp))
	}
	if g.RampDown > 0 && rem < g.RampDown {
		out = math.Min(out, g.Min+(g.Max-g.Min)*(rem/g.RampDown))
	}
	if out < g.Min {
		out = g.Min
	}

	if total < 0 {
		out = -out
	}
	return out, nil
}

func (g Gradient) String() string {
	return fmt.Sprintf("gradient(min=%v max=%v up=%v down=%v)", g.Min, g.Max, g.RampUp, g.RampDown)
}
