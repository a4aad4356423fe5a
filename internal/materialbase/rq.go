package materialbase

import (
	"github.com/dekarrin/nmms/internal/nmerr"
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/util"
)

// schemaKind distinguishes the two schema shapes of §4.4.2.
type schemaKind int

const (
	conceptSchema schemaKind = iota
	inferenceSchema
)

// schema is a registered Ax3 pattern, matched lazily at query time against
// the concrete (Γ,Δ) under consideration rather than grounded ahead of
// time against the base's language.
type schema struct {
	kind       schemaKind
	role       string
	individual string
	concept    string

	// consequent is only meaningful for inferenceSchema.
	consequent util.Set[sentence.Sentence]
}

// AddConceptSchema registers the Ax3 pattern admitting the axiom
// {R(a,b)} |~ {C(b)} for every b with R(a,b) present in a queried
// antecedent.
func (mb *MaterialBase) AddConceptSchema(role, individual, concept string) error {
	if role == "" || individual == "" || concept == "" {
		return nmerr.Validation("concept schema requires non-empty role, individual, and concept")
	}
	mb.roles.Add(role)
	mb.individuals.Add(individual)
	mb.concepts.Add(concept)
	mb.schemas = append(mb.schemas, schema{
		kind:       conceptSchema,
		role:       role,
		individual: individual,
		concept:    concept,
	})
	return nil
}

// AddInferenceSchema registers the Ax3 pattern admitting the axiom
// {R(a,b), C(b)} |~ consequent for every witness b present in a queried
// antecedent. consequent must contain only atoms (I1).
func (mb *MaterialBase) AddInferenceSchema(role, individual, concept string, consequent util.Set[sentence.Sentence]) error {
	if role == "" || individual == "" || concept == "" {
		return nmerr.Validation("inference schema requires non-empty role, individual, and concept")
	}
	for _, s := range consequent.Elements() {
		if !s.Atomic() {
			return nmerr.Validationf("inference schema consequent member %q is not atomic", s.String())
		}
	}

	mb.roles.Add(role)
	mb.individuals.Add(individual)
	mb.concepts.Add(concept)
	for _, s := range consequent.Elements() {
		mb.language.Add(s)
		mb.projectVocabulary(s)
	}

	mb.schemas = append(mb.schemas, schema{
		kind:       inferenceSchema,
		role:       role,
		individual: individual,
		concept:    concept,
		consequent: consequent.Copy(),
	})
	return nil
}

// SchemaRecord is an exported, serializable snapshot of a single
// registered schema, used by internal/persist to round-trip a base.
type SchemaRecord struct {
	Kind       string // "concept" or "inference"
	Role       string
	Individual string
	Concept    string

	// Consequent is set only for Kind == "inference".
	Consequent util.Set[sentence.Sentence]
}

// Schemas returns a snapshot of every registered schema.
func (mb *MaterialBase) Schemas() []SchemaRecord {
	out := make([]SchemaRecord, 0, len(mb.schemas))
	for _, s := range mb.schemas {
		rec := SchemaRecord{
			Kind:       "concept",
			Role:       s.role,
			Individual: s.individual,
			Concept:    s.concept,
		}
		if s.kind == inferenceSchema {
			rec.Kind = "inference"
			rec.Consequent = s.consequent.Copy()
		}
		out = append(out, rec)
	}
	return out
}

// matchesSchema implements Ax3: some registered schema's pattern exactly
// matches (Γ,Δ) under a concrete substitution where the witness individual
// is present in Γ.
func (mb *MaterialBase) matchesSchema(gamma, delta util.Set[sentence.Sentence]) bool {
	for _, s := range mb.schemas {
		if s.matches(gamma, delta) {
			return true
		}
	}
	return false
}

func (s schema) matches(gamma, delta util.Set[sentence.Sentence]) bool {
	switch s.kind {
	case conceptSchema:
		return s.matchesConcept(gamma, delta)
	case inferenceSchema:
		return s.matchesInference(gamma, delta)
	default:
		return false
	}
}

// matchesConcept checks the singleton axiom {R(a,b)} |~ {C(b)}.
func (s schema) matchesConcept(gamma, delta util.Set[sentence.Sentence]) bool {
	if gamma.Len() != 1 || delta.Len() != 1 {
		return false
	}

	role, ok := gamma.Elements()[0].(sentence.RoleAtom)
	if !ok || role.Role != s.role || role.Subject != s.individual {
		return false
	}

	concept, ok := delta.Elements()[0].(sentence.ConceptAtom)
	if !ok {
		return false
	}
	return concept.Concept == s.concept && concept.Individual == role.Object
}

// matchesInference checks the axiom {R(a,b), C(b)} |~ S for the witness b
// found among the role atoms of Γ.
func (s schema) matchesInference(gamma, delta util.Set[sentence.Sentence]) bool {
	if gamma.Len() != 2 {
		return false
	}

	witness, found := "", false
	for _, g := range gamma.Elements() {
		if role, ok := g.(sentence.RoleAtom); ok && role.Role == s.role && role.Subject == s.individual {
			witness = role.Object
			found = true
			break
		}
	}
	if !found {
		return false
	}

	hasConceptAtom := false
	for _, g := range gamma.Elements() {
		if concept, ok := g.(sentence.ConceptAtom); ok && concept.Concept == s.concept && concept.Individual == witness {
			hasConceptAtom = true
			break
		}
	}
	if !hasConceptAtom {
		return false
	}

	return delta.Equal(s.consequent)
}
