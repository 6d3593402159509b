package auto

import (
	"fmt"
	"strings"

	"github.com/team6458/powerup/pkg/field"
)

// Position is the alliance starting position chosen before the match.
type Position int

const (
	PositionLeft Position = iota
	PositionCentre
	PositionRight
)

// ParsePosition reads a position from its configuration spelling.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return PositionLeft, nil
	case "centre", "center":
		return PositionCentre, nil
	case "right":
		return PositionRight, nil
	default:
		return PositionCentre, fmt.Errorf("unknown alliance position %q (want left, centre or right)", s)
	}
}

func (p Position) String() string {
	switch p {
	case PositionLeft:
		return "left"
	case PositionCentre:
		return "centre"
	case PositionRight:
		return "right"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// side maps a starting position onto the plate side it lines up with. The
// centre position lines up with neither.
func (p Position) side() field.PlateSide {
	switch p {
	case PositionLeft:
		return field.SideLeft
	case PositionRight:
		return field.SideRight
	default:
		return field.SideInvalid
	}
}

// opposite returns the mirrored starting position. Centre mirrors to itself.
func (p Position) opposite() Position {
	switch p {
	case PositionLeft:
		return PositionRight
	case PositionRight:
		return PositionLeft
	default:
		return PositionCentre
	}
}
