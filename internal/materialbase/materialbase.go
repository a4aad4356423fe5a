// Package materialbase implements the material base of §4.2: the atomic
// language, the explicit base consequences, and (in RQ mode) the lazy
// schema registrations, together with the is_axiom predicate that the
// proof-search engine consults at every leaf.
package materialbase

import (
	"github.com/dekarrin/nmms/internal/nmerr"
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/util"
)

// MaterialBase holds the atomic language and explicit consequences a
// reasoner is built against, plus (for RQ bases) the derived role/concept/
// individual vocabulary and registered schemas. The zero value is not
// ready for use; construct with New.
type MaterialBase struct {
	language     util.Set[sentence.Sentence]
	consequences map[string]consequencePair

	individuals util.StringSet
	concepts    util.StringSet
	roles       util.StringSet

	schemas []schema
}

type consequencePair struct {
	antecedent util.Set[sentence.Sentence]
	consequent util.Set[sentence.Sentence]
}

// New returns an empty MaterialBase.
func New() *MaterialBase {
	return &MaterialBase{
		language:     util.NewKeySet[sentence.Sentence](),
		consequences: make(map[string]consequencePair),
		individuals:  util.NewStringSet(),
		concepts:     util.NewStringSet(),
		roles:        util.NewStringSet(),
	}
}

// Language returns the atomic vocabulary of the base.
func (mb *MaterialBase) Language() util.Set[sentence.Sentence] {
	return mb.language.Copy()
}

// Consequences returns every registered explicit base consequence.
func (mb *MaterialBase) Consequences() [][2]util.Set[sentence.Sentence] {
	out := make([][2]util.Set[sentence.Sentence], 0, len(mb.consequences))
	for _, c := range mb.consequences {
		out = append(out, [2]util.Set[sentence.Sentence]{c.antecedent.Copy(), c.consequent.Copy()})
	}
	return out
}

// Individuals, Concepts, and Roles expose the RQ vocabulary projections
// (invariant I3): derived from the shapes of atoms seen by AddAtom and
// AddConsequence, plus the role, individual, and concept names given to
// AddConceptSchema and AddInferenceSchema; never set directly.
func (mb *MaterialBase) Individuals() util.StringSet { return mb.individuals.Copy().(util.StringSet) }
func (mb *MaterialBase) Concepts() util.StringSet    { return mb.concepts.Copy().(util.StringSet) }
func (mb *MaterialBase) Roles() util.StringSet       { return mb.roles.Copy().(util.StringSet) }

// AddAtom inserts a into the base's language. a must be atomic (I1); a
// ValidationError is returned and the base is left unchanged otherwise.
func (mb *MaterialBase) AddAtom(a sentence.Sentence) error {
	if !a.Atomic() {
		return nmerr.Validationf("cannot add non-atomic sentence %q to language", a.String())
	}
	mb.language.Add(a)
	mb.projectVocabulary(a)
	return nil
}

// AddConsequence registers the pair (Γ,Δ) as an explicit base consequence
// (Ax2). Every member of Γ and Δ must be atomic (I1); both sides are added
// to the language as a convenience. Re-adding an identical pair is a no-op
// (I2: the consequence set is deduplicated).
func (mb *MaterialBase) AddConsequence(gamma, delta util.Set[sentence.Sentence]) error {
	for _, s := range gamma.Elements() {
		if !s.Atomic() {
			return nmerr.Validationf("antecedent member %q is not atomic", s.String())
		}
	}
	for _, s := range delta.Elements() {
		if !s.Atomic() {
			return nmerr.Validationf("consequent member %q is not atomic", s.String())
		}
	}

	for _, s := range gamma.Elements() {
		mb.language.Add(s)
		mb.projectVocabulary(s)
	}
	for _, s := range delta.Elements() {
		mb.language.Add(s)
		mb.projectVocabulary(s)
	}

	key := sentence.Key(gamma, delta)
	mb.consequences[key] = consequencePair{antecedent: gamma.Copy(), consequent: delta.Copy()}
	return nil
}

func (mb *MaterialBase) projectVocabulary(a sentence.Sentence) {
	switch v := a.(type) {
	case sentence.ConceptAtom:
		mb.concepts.Add(v.Concept)
		mb.individuals.Add(v.Individual)
	case sentence.RoleAtom:
		mb.roles.Add(v.Role)
		mb.individuals.Add(v.Subject)
		mb.individuals.Add(v.Object)
	}
}

// IsAxiom decides whether (Γ,Δ) is an axiom: Ax1 containment, Ax2 explicit
// base consequence (exact match only — the mechanism that enforces
// no-Weakening), or Ax3 schema match (RQ only). It is a pure function of
// the base's current contents and does not depend on search depth.
func (mb *MaterialBase) IsAxiom(gamma, delta util.Set[sentence.Sentence]) bool {
	// Ax1: Containment.
	if !gamma.Intersection(delta).Empty() {
		return true
	}

	// Ax2: exact-match explicit base consequence.
	if _, ok := mb.consequences[sentence.Key(gamma, delta)]; ok {
		return true
	}

	// Ax3: lazy schema match (RQ extension).
	return mb.matchesSchema(gamma, delta)
}
