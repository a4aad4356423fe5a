package materialbase

import (
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/util"
)

// entryKind tags the shape of a single labeled contribution recorded by a
// CommitmentStore.
type entryKind int

const (
	entryAtom entryKind = iota
	entryConsequence
	entryConceptSchema
	entryInferenceSchema
)

type entry struct {
	kind entryKind

	atom sentence.Sentence

	antecedent util.Set[sentence.Sentence]
	consequent util.Set[sentence.Sentence]

	role       string
	individual string
	concept    string
}

// CommitmentStore is a labeled builder over a MaterialBase (§4.4.4). Each
// label names a group of atoms, consequences, and schemas; retracting a
// label removes everything it contributed. Because MaterialBase itself is
// append-only, the store keeps its own record of contributions and
// recompiles a fresh base on every call to Compile.
type CommitmentStore struct {
	order   []string
	entries map[string][]entry
}

// NewCommitmentStore returns an empty store.
func NewCommitmentStore() *CommitmentStore {
	return &CommitmentStore{
		entries: make(map[string][]entry),
	}
}

func (cs *CommitmentStore) append(label string, e entry) {
	if _, ok := cs.entries[label]; !ok {
		cs.order = append(cs.order, label)
	}
	cs.entries[label] = append(cs.entries[label], e)
}

// Assert records that label contributes atom to the language.
func (cs *CommitmentStore) Assert(label string, atom sentence.Sentence) {
	cs.append(label, entry{kind: entryAtom, atom: atom})
}

// Commit records that label contributes the explicit base consequence
// (antecedent, consequent).
func (cs *CommitmentStore) Commit(label string, antecedent, consequent util.Set[sentence.Sentence]) {
	cs.append(label, entry{
		kind:       entryConsequence,
		antecedent: antecedent.Copy(),
		consequent: consequent.Copy(),
	})
}

// CommitConceptSchema records that label contributes the given concept
// schema registration.
func (cs *CommitmentStore) CommitConceptSchema(label, role, individual, concept string) {
	cs.append(label, entry{
		kind:       entryConceptSchema,
		role:       role,
		individual: individual,
		concept:    concept,
	})
}

// CommitInferenceSchema records that label contributes the given inference
// schema registration.
func (cs *CommitmentStore) CommitInferenceSchema(label, role, individual, concept string, consequent util.Set[sentence.Sentence]) {
	cs.append(label, entry{
		kind:       entryInferenceSchema,
		role:       role,
		individual: individual,
		concept:    concept,
		consequent: consequent.Copy(),
	})
}

// Retract removes every contribution label has made. A subsequent Compile
// will not include any of it. Retracting an unknown label is a no-op.
func (cs *CommitmentStore) Retract(label string) {
	if _, ok := cs.entries[label]; !ok {
		return
	}
	delete(cs.entries, label)
	for i, l := range cs.order {
		if l == label {
			cs.order = append(cs.order[:i], cs.order[i+1:]...)
			break
		}
	}
}

// Labels returns the currently committed labels, in the order they were
// first used.
func (cs *CommitmentStore) Labels() []string {
	out := make([]string, len(cs.order))
	copy(out, cs.order)
	return out
}

// Compile builds a fresh MaterialBase from every currently-committed label,
// in the order labels were first introduced. The returned base is
// independent of the store; later Assert/Commit/Retract calls do not affect
// a base already compiled.
func (cs *CommitmentStore) Compile() (*MaterialBase, error) {
	base := New()
	for _, label := range cs.order {
		for _, e := range cs.entries[label] {
			var err error
			switch e.kind {
			case entryAtom:
				err = base.AddAtom(e.atom)
			case entryConsequence:
				err = base.AddConsequence(e.antecedent, e.consequent)
			case entryConceptSchema:
				err = base.AddConceptSchema(e.role, e.individual, e.concept)
			case entryInferenceSchema:
				err = base.AddInferenceSchema(e.role, e.individual, e.concept, e.consequent)
			}
			if err != nil {
				return nil, err
			}
		}
	}
	return base, nil
}
