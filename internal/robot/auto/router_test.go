package auto

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/team6458/powerup/internal/robot/hal"
	"github.com/team6458/powerup/internal/robot/sched"
	"github.com/team6458/powerup/pkg/field"
)

const tick = 20 * time.Millisecond

func runRoutine(t *testing.T, sim *hal.Sim, cmd sched.Command) {
	t.Helper()
	ctx := context.Background()
	s := sched.New()
	s.Schedule(ctx, cmd)
	for i := 0; i < 5000; i++ {
		s.Run(ctx)
		sim.Advance(tick)
		if s.Active() == 0 {
			return
		}
	}
	t.Fatal("routine never finished")
}

func buildFor(t *testing.T, sim *hal.Sim, pos Position, raw string) sched.Command {
	t.Helper()
	r := NewRouter(sim, sim, DefaultParams())
	assignment := field.Parse(raw)
	cmd, err := r.Build(pos, assignment)
	if err != nil {
		t.Fatalf("Build(%v, %q): %v", pos, raw, err)
	}
	return cmd
}

func travelled(sim *hal.Sim) float64 {
	return (sim.LeftDistance() + sim.RightDistance()) / 2
}

func TestMatchingSideRunsDirectDelivery(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		raw  string
	}{
		{"left position left plate", PositionLeft, "LLL"},
		{"left position LRL", PositionLeft, "LRL"},
		{"right position right plate", PositionRight, "RRR"},
		{"right position RLR", PositionRight, "RLR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := hal.NewSim()
			cmd := buildFor(t, sim, tt.pos, tt.raw)

			if !strings.HasPrefix(cmd.Name(), "DirectDelivery") {
				t.Fatalf("routine = %q, want direct delivery", cmd.Name())
			}

			runRoutine(t, sim, cmd)

			// Drive plus last stretch, and no large rotation on the way.
			if d := travelled(sim); math.Abs(d-4.0) > 0.2 {
				t.Errorf("travelled %v, want about 4.0", d)
			}
			if a := sim.Angle(); math.Abs(a) > 20 {
				t.Errorf("final heading %v, want no large rotation", a)
			}
		})
	}
}

func TestCentrePositionAlwaysDelivers(t *testing.T) {
	for _, raw := range []string{"LLL", "RRR", "LRL", "RLR"} {
		t.Run(raw, func(t *testing.T) {
			sim := hal.NewSim()
			cmd := buildFor(t, sim, PositionCentre, raw)

			if !strings.HasPrefix(cmd.Name(), "DirectDelivery") {
				t.Fatalf("routine = %q, want direct delivery", cmd.Name())
			}

			runRoutine(t, sim, cmd)

			// The centre start turns toward its plate: left plates negative,
			// right plates positive.
			want := 35.0
			if field.Parse(raw).Nearest() == field.SideLeft {
				want = -35.0
			}
			if a := sim.Angle(); math.Abs(a-want) > 10 {
				t.Errorf("final heading %v, want about %v", a, want)
			}
		})
	}
}

func TestMismatchedSideRunsAvoidSwitch(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		raw  string
	}{
		{"left position right plate", PositionLeft, "RLR"},
		{"right position left plate", PositionRight, "LRL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := hal.NewSim()
			cmd := buildFor(t, sim, tt.pos, tt.raw)

			if !strings.HasPrefix(cmd.Name(), "AvoidSwitch") {
				t.Fatalf("routine = %q, want avoid switch fallback", cmd.Name())
			}

			runRoutine(t, sim, cmd)

			if d := travelled(sim); math.Abs(d-4.0) > 0.2 {
				t.Errorf("travelled %v, want about 4.0", d)
			}
			if a := sim.Angle(); math.Abs(a-165) > 15 {
				t.Errorf("final heading %v, want about 165", a)
			}
		})
	}
}

func TestNoAssignmentMeansNoMotion(t *testing.T) {
	sim := hal.NewSim()
	cmd := buildFor(t, sim, PositionLeft, "")

	runRoutine(t, sim, cmd)

	if d := travelled(sim); d != 0 {
		t.Errorf("travelled %v with no assignment, want 0", d)
	}
	if a := sim.Angle(); a != 0 {
		t.Errorf("rotated %v with no assignment, want 0", a)
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    Position
		wantErr bool
	}{
		{"left", PositionLeft, false},
		{"Centre", PositionCentre, false},
		{"center", PositionCentre, false},
		{" RIGHT ", PositionRight, false},
		{"middle", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePosition(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePosition(%q) err = %v", tt.in, err)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParsePosition(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
