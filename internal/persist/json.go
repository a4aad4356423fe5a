// Package persist implements the §6 external interfaces: the JSON base
// file format and the TOML daemon configuration, grounded on tqw's
// TOML-based world loader (internal/tqw in the teacher) but stripped down
// to the much smaller shape a material base needs.
package persist

import (
	"encoding/json"
	"fmt"

	"github.com/dekarrin/nmms/internal/materialbase"
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/util"
)

type jsonConsequence struct {
	Antecedent []string `json:"antecedent"`
	Consequent []string `json:"consequent"`
}

type jsonSchema struct {
	Kind       string   `json:"kind"`
	Role       string   `json:"role"`
	Individual string   `json:"individual"`
	Concept    string   `json:"concept"`
	Consequent []string `json:"consequent,omitempty"`
}

type jsonBase struct {
	Language     []string          `json:"language"`
	Consequences []jsonConsequence `json:"consequences"`
	Schemas      []jsonSchema      `json:"schemas,omitempty"`
}

// ToJSON renders mb in the §6 base file format.
func ToJSON(mb *materialbase.MaterialBase) ([]byte, error) {
	doc := jsonBase{}

	for _, a := range sentence.Sorted(mb.Language()) {
		doc.Language = append(doc.Language, a.String())
	}

	for _, pair := range mb.Consequences() {
		doc.Consequences = append(doc.Consequences, jsonConsequence{
			Antecedent: stringsOf(pair[0]),
			Consequent: stringsOf(pair[1]),
		})
	}

	for _, rec := range mb.Schemas() {
		js := jsonSchema{
			Kind:       rec.Kind,
			Role:       rec.Role,
			Individual: rec.Individual,
			Concept:    rec.Concept,
		}
		if rec.Consequent != nil {
			js.Consequent = stringsOf(rec.Consequent)
		}
		doc.Schemas = append(doc.Schemas, js)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// FromJSON parses data in the §6 base file format into a fresh
// MaterialBase. mode selects whether atom strings are parsed as bare
// propositional atoms or RQ concept/role atoms; every atom is re-parsed and
// then re-validated by the base's own mutators, so a malformed entry is
// reported as a ParseError and a non-atomic one as a ValidationError rather
// than silently accepted.
func FromJSON(data []byte, mode sentence.Mode) (*materialbase.MaterialBase, error) {
	var doc jsonBase
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode base file: %w", err)
	}

	mb := materialbase.New()

	for _, atomStr := range doc.Language {
		a, err := sentence.Parse(atomStr, mode)
		if err != nil {
			return nil, fmt.Errorf("language atom %q: %w", atomStr, err)
		}
		if err := mb.AddAtom(a); err != nil {
			return nil, fmt.Errorf("language atom %q: %w", atomStr, err)
		}
	}

	for _, c := range doc.Consequences {
		antecedent, err := parseAtomSet(c.Antecedent, mode)
		if err != nil {
			return nil, fmt.Errorf("consequence antecedent: %w", err)
		}
		consequent, err := parseAtomSet(c.Consequent, mode)
		if err != nil {
			return nil, fmt.Errorf("consequence consequent: %w", err)
		}
		if err := mb.AddConsequence(antecedent, consequent); err != nil {
			return nil, fmt.Errorf("consequence: %w", err)
		}
	}

	for _, s := range doc.Schemas {
		switch s.Kind {
		case "concept":
			if err := mb.AddConceptSchema(s.Role, s.Individual, s.Concept); err != nil {
				return nil, fmt.Errorf("concept schema: %w", err)
			}
		case "inference":
			consequent, err := parseAtomSet(s.Consequent, mode)
			if err != nil {
				return nil, fmt.Errorf("inference schema consequent: %w", err)
			}
			if err := mb.AddInferenceSchema(s.Role, s.Individual, s.Concept, consequent); err != nil {
				return nil, fmt.Errorf("inference schema: %w", err)
			}
		default:
			return nil, fmt.Errorf("unknown schema kind %q", s.Kind)
		}
	}

	return mb, nil
}

func stringsOf(set util.Set[sentence.Sentence]) []string {
	out := make([]string, 0, set.Len())
	for _, s := range sentence.Sorted(set) {
		out = append(out, s.String())
	}
	return out
}

func parseAtomSet(strs []string, mode sentence.Mode) (util.Set[sentence.Sentence], error) {
	out := util.NewKeySet[sentence.Sentence]()
	for _, str := range strs {
		a, err := sentence.Parse(str, mode)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", str, err)
		}
		out.Add(a)
	}
	return out, nil
}
