package growth

// Stage is the ordered phenological stage of the crop. Transitions are
// one-directional; the ordinal never decreases over a run.
type Stage int

const (
	Establishment Stage = iota
	Exponential
	Maturation
)

func (s Stage) String() string {
	switch s {
	case Establishment:
		return "establishment"
	case Exponential:
		return "exponential"
	case Maturation:
		return "maturation"
	default:
		return "unknown"
	}
}

// ParseStage maps the canonical external string back to its ordinal.
func ParseStage(name string) (Stage, bool) {
	switch name {
	case "establishment":
		return Establishment, true
	case "exponential":
		return Exponential, true
	case "maturation":
		return Maturation, true
	}
	return Establishment, false
}
