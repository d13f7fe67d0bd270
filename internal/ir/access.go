package ir

// AccessMode classifies how an operand touches an object. Literal, read, and
// write form an upgrade chain used when merging repeated accesses; measure
// expands into writes on a qubit and its implicit bit; the commute modes mark
// rotations about a fixed axis, which may be freely reordered against each
// other.
type AccessMode int

const (
	// ModeLiteral is a constant operand; it carries no hazard.
	ModeLiteral AccessMode = iota

	// ModeRead observes the object without changing it.
	ModeRead

	// ModeWrite replaces the object's state.
	ModeWrite

	// ModeMeasure projects a qubit and records the outcome in its implicit
	// measurement bit.
	ModeMeasure

	// ModeCommuteX is an X-axis rotation access.
	ModeCommuteX

	// ModeCommuteY is a Y-axis rotation access.
	ModeCommuteY

	// ModeCommuteZ is a Z-axis rotation access.
	ModeCommuteZ
)

// Commuting reports whether the mode is a same-axis rotation access.
func (m AccessMode) Commuting() bool {
	return m == ModeCommuteX || m == ModeCommuteY || m == ModeCommuteZ
}

// String returns the single-letter prototype spelling of the mode.
func (m AccessMode) String() string {
	switch m {
	case ModeLiteral:
		return "L"
	case ModeRead:
		return "R"
	case ModeWrite:
		return "W"
	case ModeMeasure:
		return "M"
	case ModeCommuteX:
		return "X"
	case ModeCommuteY:
		return "Y"
	case ModeCommuteZ:
		return "Z"
	default:
		return "?"
	}
}

// ParseAccessMode maps a prototype mode letter back to its access mode.
func ParseAccessMode(s string) (AccessMode, bool) {
	switch s {
	case "L":
		return ModeLiteral, true
	case "R":
		return ModeRead, true
	case "W":
		return ModeWrite, true
	case "M":
		return ModeMeasure, true
	case "X":
		return ModeCommuteX, true
	case "Y":
		return ModeCommuteY, true
	case "Z":
		return ModeCommuteZ, true
	default:
		return 0, false
	}
}
