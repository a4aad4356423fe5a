package sentence

// Mode selects which atom forms the parser accepts. It is a parameter to
// Parse and ParseSequent, never a package global, so a single process can
// freely mix propositional-only and RQ reasoners.
type Mode int

const (
	// Propositional restricts atoms to bare identifiers.
	Propositional Mode = iota

	// RQ requires atoms to be concept or role forms and additionally
	// admits the ALL/SOME restricted quantifier forms.
	RQ
)

func (m Mode) String() string {
	switch m {
	case Propositional:
		return "propositional"
	case RQ:
		return "RQ"
	default:
		return "unknown mode"
	}
}
