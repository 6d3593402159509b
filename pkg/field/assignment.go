// Package field decodes the game-specific message broadcast by the field
// management system into the plate assignment used to branch the autonomous
// routine. The perspective is relative to the alliance wall, facing outwards.
package field

import (
	"strings"

	"github.com/team6458/powerup/pkg/log"
)

// PlateSide indicates which side of a plate belongs to the alliance.
type PlateSide byte

const (
	// SideLeft means the alliance owns the left plate.
	SideLeft PlateSide = 'L'
	// SideRight means the alliance owns the right plate.
	SideRight PlateSide = 'R'
	// SideInvalid covers both "unparseable symbol" and "no signal present";
	// callers distinguish the two by context.
	SideInvalid PlateSide = '?'
)

// SideFromLetter maps a message symbol to a PlateSide. Anything other than
// 'L' or 'R' is SideInvalid.
func SideFromLetter(letter byte) PlateSide {
	switch letter {
	case 'L':
		return SideLeft
	case 'R':
		return SideRight
	default:
		return SideInvalid
	}
}

// Other returns the mirrored side. SideInvalid mirrors to itself.
func (s PlateSide) Other() PlateSide {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideInvalid
	}
}

func (s PlateSide) String() string { return string(rune(s)) }

// Assignment is the decoded plate assignment, ordered nearest switch, scale,
// farthest switch. It is a cheap value type; copies are safe to share and an
// Assignment never mutates after construction.
type Assignment struct {
	sides [3]PlateSide
}

// AllInvalid is the sentinel used when no field signal is present, such as
// practice runs without a field management system.
var AllInvalid = Assignment{sides: [3]PlateSide{SideInvalid, SideInvalid, SideInvalid}}

// canonical holds the four structurally valid assignments of a real match.
var canonical = []Assignment{
	{sides: [3]PlateSide{SideLeft, SideLeft, SideLeft}},
	{sides: [3]PlateSide{SideRight, SideRight, SideRight}},
	{sides: [3]PlateSide{SideLeft, SideRight, SideLeft}},
	{sides: [3]PlateSide{SideRight, SideLeft, SideRight}},
}

// Canonical returns the four assignments that can occur in a real match:
// LLL, RRR, LRL and RLR.
func Canonical() []Assignment {
	out := make([]Assignment, len(canonical))
	copy(out, canonical)
	return out
}

// Parse decodes a raw field message. An empty or too-short message yields
// AllInvalid, which is expected when no signal has arrived and is not logged.
// Matching is case-insensitive. A message outside the canonical set is still
// decoded symbol by symbol so the routine can run on whatever arrived, but it
// is flagged as non-compliant in the log.
func Parse(raw string) Assignment {
	if len(raw) < 3 {
		return AllInvalid
	}

	upper := strings.ToUpper(raw)
	for _, a := range canonical {
		if a.String() == upper[:3] {
			return a
		}
	}

	a := Assignment{sides: [3]PlateSide{
		SideFromLetter(upper[0]),
		SideFromLetter(upper[1]),
		SideFromLetter(upper[2]),
	}}
	log.Warn("non-compliant field message", "raw", raw, "decoded", a.String())
	return a
}

// Nearest returns the side of the switch nearest to the alliance wall.
func (a Assignment) Nearest() PlateSide { return a.sides[0] }

// Scale returns the side of the centre scale.
func (a Assignment) Scale() PlateSide { return a.sides[1] }

// Farthest returns the side of the switch nearest to the opposing wall.
func (a Assignment) Farthest() PlateSide { return a.sides[2] }

// Known reports whether the assignment carries any usable data. AllInvalid
// and only AllInvalid is unknown.
func (a Assignment) Known() bool { return a != AllInvalid }

func (a Assignment) String() string {
	return a.sides[0].String() + a.sides[1].String() + a.sides[2].String()
}
