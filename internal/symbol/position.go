package symbol

import "symline/pkg/types"

// Containment is the tri-state result of comparing a position against a range.
type Containment int

const (
	// Before means the position precedes the range start.
	Before Containment = iota
	// OnBoundary means the position sits exactly on the range start or end.
	OnBoundary
	// Inside means the position is strictly between start and end.
	Inside
	// After means the position follows the range end.
	After
)

// comparePositions orders two positions lexicographically by (line, character).
func comparePositions(a, b types.Position) int {
	if a.Line != b.Line {
		if a.Line < b.Line {
			return -1
		}
		return 1
	}
	if a.Character != b.Character {
		if a.Character < b.Character {
			return -1
		}
		return 1
	}
	return 0
}

// Compare reports where pos falls relative to rng. A position equal to
// either endpoint is OnBoundary, not Inside.
func Compare(pos types.Position, rng types.Range) Containment {
	switch {
	case comparePositions(pos, rng.Start) < 0:
		return Before
	case comparePositions(pos, rng.Start) == 0 || comparePositions(pos, rng.End) == 0:
		return OnBoundary
	case comparePositions(pos, rng.End) > 0:
		return After
	default:
		return Inside
	}
}
