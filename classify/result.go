package classify

// Result is the outcome of checking a cell against an expected value.
// Presentation (cell colouring) is decided elsewhere; the engine only
// deals in these values.
type Result int

const (
	Unclassified Result = iota
	Match
	Mismatch
)

func (r Result) String() string {
	switch r {
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	default:
		return "unclassified"
	}
}
