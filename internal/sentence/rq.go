package sentence

import "fmt"

// ConceptAtom is the RQ atomic sentence "C(a)" — individual a has concept C.
type ConceptAtom struct {
	Concept    string
	Individual string
}

func (ConceptAtom) sealed()        {}
func (ConceptAtom) Atomic() bool   { return true }
func (ConceptAtom) precedence() int { return precAtom }
func (c ConceptAtom) String() string {
	return fmt.Sprintf("%s(%s)", c.Concept, c.Individual)
}

// RoleAtom is the RQ atomic sentence "R(a,b)" — a stands in role R to b.
type RoleAtom struct {
	Role    string
	Subject string
	Object  string
}

func (RoleAtom) sealed()        {}
func (RoleAtom) Atomic() bool   { return true }
func (RoleAtom) precedence() int { return precAtom }
func (r RoleAtom) String() string {
	return fmt.Sprintf("%s(%s,%s)", r.Role, r.Subject, r.Object)
}

// AllRestrict is "ALL R.C(a)" — every R-successor of a is C.
type AllRestrict struct {
	Role       string
	Concept    string
	Individual string
}

func (AllRestrict) sealed()        {}
func (AllRestrict) Atomic() bool   { return false }
func (AllRestrict) precedence() int { return precAtom }
func (a AllRestrict) String() string {
	return fmt.Sprintf("ALL %s.%s(%s)", a.Role, a.Concept, a.Individual)
}

// SomeRestrict is "SOME R.C(a)" — some R-successor of a is C.
type SomeRestrict struct {
	Role       string
	Concept    string
	Individual string
}

func (SomeRestrict) sealed()        {}
func (SomeRestrict) Atomic() bool   { return false }
func (SomeRestrict) precedence() int { return precAtom }
func (s SomeRestrict) String() string {
	return fmt.Sprintf("SOME %s.%s(%s)", s.Role, s.Concept, s.Individual)
}
