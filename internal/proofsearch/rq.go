package proofsearch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/util"
)

// triggersFor returns the sorted set of individuals b such that R(a,b) is
// present in set, for the role/individual pair naming a restricted
// quantifier.
func triggersFor(set util.Set[sentence.Sentence], role, individual string) []string {
	var out []string
	for _, elem := range set.Elements() {
		if r, ok := elem.(sentence.RoleAtom); ok && r.Role == role && r.Subject == individual {
			out = append(out, r.Object)
		}
	}
	sort.Strings(out)
	return out
}

// tryLeftAllRestrict implements [L∀R.C] on `ALL R.C(a)` in Γ: adjunction,
// per OQ-1 (the source does not mirror [L∃R.C]'s power-symjunction here).
// An empty trigger set makes the premise inert (OQ-3): the rule succeeds
// iff the remainder, with the quantified sentence simply dropped, does.
func (s *search) tryLeftAllRestrict(v sentence.AllRestrict, gamma, delta util.Set[sentence.Sentence], depth int) bool {
	s.emit(depth, "[L∀R.C] on %s", v.String())

	triggers := triggersFor(gamma, v.Role, v.Individual)
	newGamma := gamma.Copy()
	newGamma.Remove(v)
	for _, b := range triggers {
		newGamma.Add(sentence.ConceptAtom{Concept: v.Concept, Individual: b})
	}
	return s.prove(newGamma, delta, depth+1)
}

// tryLeftSomeRestrict implements [L∃R.C] on `SOME R.C(a)` in Γ: every
// non-empty subset of {C(b) : b ∈ triggers} is tried as an addition to Γ,
// ordered by ascending size then lexicographic member order (§5); all must
// succeed. An empty trigger set makes the premise inert (OQ-3).
func (s *search) tryLeftSomeRestrict(v sentence.SomeRestrict, gamma, delta util.Set[sentence.Sentence], depth int) bool {
	s.emit(depth, "[L∃R.C] on %s", v.String())

	triggers := triggersFor(gamma, v.Role, v.Individual)
	if len(triggers) == 0 {
		newGamma := sentence.WithReplacement(gamma, v)
		return s.prove(newGamma, delta, depth+1)
	}

	concepts := make([]sentence.Sentence, len(triggers))
	for i, b := range triggers {
		concepts[i] = sentence.ConceptAtom{Concept: v.Concept, Individual: b}
	}

	for _, subset := range nonEmptySubsets(concepts) {
		newGamma := gamma.Copy()
		newGamma.Remove(v)
		for _, c := range subset {
			newGamma.Add(c)
		}
		if !s.prove(newGamma, delta, depth+1) {
			return false
		}
	}
	return true
}

// tryRightAllRestrict implements [R∀R.C] on `ALL R.C(a)` in Δ: introduces a
// fresh eigenvariable not occurring in Γ∪Δ.
func (s *search) tryRightAllRestrict(v sentence.AllRestrict, gamma, delta util.Set[sentence.Sentence], depth int) bool {
	s.emit(depth, "[R∀R.C] on %s", v.String())

	b := freshIndividual("e", v.Role, v.Concept, v.Individual, gamma, delta)
	newGamma := gamma.Copy()
	newGamma.Add(sentence.RoleAtom{Role: v.Role, Subject: v.Individual, Object: b})
	newDelta := sentence.WithReplacement(delta, v, sentence.ConceptAtom{Concept: v.Concept, Individual: b})
	return s.prove(newGamma, newDelta, depth+1)
}

// tryRightSomeRestrict implements [R∃R.C] on `SOME R.C(a)` in Δ: known
// witnesses are tried first, then (if enabled) a fresh canonical witness
// subject to concept-label subset blocking (OQ-2).
func (s *search) tryRightSomeRestrict(v sentence.SomeRestrict, gamma, delta util.Set[sentence.Sentence], depth int) bool {
	s.emit(depth, "[R∃R.C] on %s", v.String())

	for _, b := range triggersFor(gamma, v.Role, v.Individual) {
		newDelta := sentence.WithReplacement(delta, v, sentence.ConceptAtom{Concept: v.Concept, Individual: b})
		if s.prove(gamma, newDelta, depth+1) {
			return true
		}
	}

	if !s.r.freshWitnesses {
		return false
	}

	b := fmt.Sprintf("_w_%s_%s_%s", v.Role, v.Concept, v.Individual)
	if s.r.blocking && conceptLabelBlocked(v.Concept, gamma) {
		return false
	}

	s.warnFreshWitness()
	newGamma := gamma.Copy()
	newGamma.Add(sentence.RoleAtom{Role: v.Role, Subject: v.Individual, Object: b})
	newDelta := sentence.WithReplacement(delta, v, sentence.ConceptAtom{Concept: v.Concept, Individual: b})
	return s.prove(newGamma, newDelta, depth+1)
}

func (s *search) warnFreshWitness() {
	if s.warnedFreshWitness {
		return
	}
	s.warnedFreshWitness = true
	if s.r.logger != nil {
		s.r.logger.Printf("proofsearch: used a fresh canonical witness for an [R∃R.C] goal; this branch's derivability rests on an unproven blocking heuristic (OQ-2)")
	}
}

// conceptLabelBlocked reports whether the single concept label a fresh
// witness would be given (concept) is already held by some individual
// already present in Γ: if so, that individual subsumes the witness and
// introducing a new one is blocked.
func conceptLabelBlocked(concept string, gamma util.Set[sentence.Sentence]) bool {
	for _, elem := range gamma.Elements() {
		if c, ok := elem.(sentence.ConceptAtom); ok && c.Concept == concept {
			return true
		}
	}
	return false
}

// freshIndividual builds the canonical fresh-individual name for the given
// prefix ("e" for [R∀R.C] eigenvariables; the [R∃R.C] fresh witness name is
// built directly in tryRightSomeRestrict and is not passed through here)
// and appends a numeric
// disambiguator in the unlikely case the canonical name already occurs in
// Γ∪Δ.
func freshIndividual(prefix, role, concept, individual string, gamma, delta util.Set[sentence.Sentence]) string {
	base := fmt.Sprintf("_%s_%s_%s_%s", prefix, role, concept, individual)
	name := base
	for n := 0; individualOccursIn(name, gamma) || individualOccursIn(name, delta); n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	return name
}

func individualOccursIn(name string, set util.Set[sentence.Sentence]) bool {
	for _, elem := range set.Elements() {
		switch v := elem.(type) {
		case sentence.ConceptAtom:
			if v.Individual == name {
				return true
			}
		case sentence.RoleAtom:
			if v.Subject == name || v.Object == name {
				return true
			}
		case sentence.AllRestrict:
			if v.Individual == name {
				return true
			}
		case sentence.SomeRestrict:
			if v.Individual == name {
				return true
			}
		}
	}
	return false
}

// nonEmptySubsets enumerates every non-empty subset of items, ordered by
// ascending size then lexicographic order of member strings (§5).
func nonEmptySubsets(items []sentence.Sentence) [][]sentence.Sentence {
	n := len(items)
	total := 1 << n
	subsets := make([][]sentence.Sentence, 0, total-1)
	for mask := 1; mask < total; mask++ {
		var subset []sentence.Sentence
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, items[i])
			}
		}
		subsets = append(subsets, subset)
	}
	sort.Slice(subsets, func(i, j int) bool {
		if len(subsets[i]) != len(subsets[j]) {
			return len(subsets[i]) < len(subsets[j])
		}
		return subsetKey(subsets[i]) < subsetKey(subsets[j])
	})
	return subsets
}

func subsetKey(subset []sentence.Sentence) string {
	strs := make([]string, len(subset))
	for i, elem := range subset {
		strs[i] = elem.String()
	}
	sort.Strings(strs)
	return strings.Join(strs, ",")
}
