package sentence

import (
	"sort"

	"github.com/dekarrin/nmms/internal/util"
)

// Sorted returns the elements of set ordered ascending by their canonical
// String() form. This is the deterministic ordering required by §4.3.2 for
// rule-selection and by §5 for reproducible traces.
func Sorted(set util.Set[Sentence]) []Sentence {
	elems := set.Elements()
	sort.Slice(elems, func(i, j int) bool {
		return elems[i].String() < elems[j].String()
	})
	return elems
}

// Complex returns the complex (non-atomic) members of set, in canonical
// sorted order.
func Complex(set util.Set[Sentence]) []Sentence {
	var out []Sentence
	for _, s := range Sorted(set) {
		if !s.Atomic() {
			out = append(out, s)
		}
	}
	return out
}

// SetString renders set as "{a, b, c}" in canonical sorted order, the form
// used in AXIOM/FAIL trace lines.
func SetString(set util.Set[Sentence]) string {
	return util.JoinSorted(set.Elements(), func(s Sentence) string { return s.String() })
}

// Key returns a canonical string uniquely identifying the ordered pair
// (Γ,Δ) of unordered sets, suitable for use as a map key (proof-search memoization, explicit
// base consequence lookup). Two sequents with equal Γ and equal Δ always
// produce equal keys, regardless of element insertion order.
func Key(gamma, delta util.Set[Sentence]) string {
	return SetString(gamma) + " => " + SetString(delta)
}

// WithReplacement returns a copy of set with remove deleted (if present)
// and each of add inserted, the "Γ\{A} ∪ {B,C}" pattern used by every
// propositional and RQ rule.
func WithReplacement(set util.Set[Sentence], remove Sentence, add ...Sentence) util.Set[Sentence] {
	cp := set.Copy()
	cp.Remove(remove)
	for _, a := range add {
		cp.Add(a)
	}
	return cp
}
