package proofsearch

import (
	"strings"
	"testing"

	"github.com/dekarrin/nmms/internal/materialbase"
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sentSet(elems ...sentence.Sentence) util.Set[sentence.Sentence] {
	return util.KeySetOf(elems)
}

func mustParse(t *testing.T, src string, mode sentence.Mode) sentence.Sentence {
	t.Helper()
	s, err := sentence.Parse(src, mode)
	require.NoError(t, err)
	return s
}

func Test_Scenarios(t *testing.T) {
	a := sentence.Atom{Name: "A"}
	b := sentence.Atom{Name: "B"}
	c := sentence.Atom{Name: "C"}

	testCases := []struct {
		name       string
		setup      func(mb *materialbase.MaterialBase)
		gamma      util.Set[sentence.Sentence]
		delta      util.Set[sentence.Sentence]
		derivable  bool
	}{
		{
			name: "1 direct base consequence",
			setup: func(mb *materialbase.MaterialBase) {
				require.NoError(t, mb.AddConsequence(sentSet(a), sentSet(b)))
			},
			gamma:     sentSet(a),
			delta:     sentSet(b),
			derivable: true,
		},
		{
			name: "2 no-cut: consequences do not chain",
			setup: func(mb *materialbase.MaterialBase) {
				require.NoError(t, mb.AddConsequence(sentSet(a), sentSet(b)))
				require.NoError(t, mb.AddConsequence(sentSet(b), sentSet(c)))
			},
			gamma:     sentSet(a),
			delta:     sentSet(c),
			derivable: false,
		},
		{
			name: "3 no-weakening: fresh atom in antecedent breaks the match",
			setup: func(mb *materialbase.MaterialBase) {
				require.NoError(t, mb.AddConsequence(sentSet(a), sentSet(b)))
			},
			gamma:     sentSet(a, c),
			delta:     sentSet(b),
			derivable: false,
		},
		{
			name:      "4 supraclassical tautology: excluded middle",
			setup:     func(mb *materialbase.MaterialBase) {},
			gamma:     sentSet(),
			delta:     sentSet(sentence.Or{Left: a, Right: sentence.Not{Operand: a}}),
			derivable: true,
		},
		{
			name: "5 not derivable absent an explicit consequence",
			setup: func(mb *materialbase.MaterialBase) {
				rain := sentence.Atom{Name: "rain"}
				wet := sentence.Atom{Name: "wet"}
				require.NoError(t, mb.AddConsequence(sentSet(rain), sentSet(wet)))
			},
			gamma: sentSet(sentence.Atom{Name: "rain"}, sentence.Atom{Name: "covered"}),
			delta: sentSet(sentence.Atom{Name: "wet"}),
			derivable: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			mb := materialbase.New()
			tc.setup(mb)
			r := New(mb)
			result := r.Derives(tc.gamma, tc.delta)
			assert.Equal(tc.derivable, result.Derivable, "trace: %v", result.Trace)
		})
	}
}

func Test_Scenario6_RQ_universalAdjunction(t *testing.T) {
	assert := assert.New(t)

	hasChild := "hasChild"
	mb := materialbase.New()
	gammaBase := sentSet(
		sentence.RoleAtom{Role: hasChild, Subject: "a", Object: "b"},
		sentence.ConceptAtom{Concept: "Doctor", Individual: "b"},
	)
	deltaBase := sentSet(sentence.ConceptAtom{Concept: "PD", Individual: "a"})
	require.NoError(t, mb.AddConsequence(gammaBase, deltaBase))

	query := sentSet(
		sentence.AllRestrict{Role: hasChild, Concept: "Doctor", Individual: "a"},
		sentence.RoleAtom{Role: hasChild, Subject: "a", Object: "b"},
	)
	r := New(mb, Mode(sentence.RQ))
	result := r.Derives(query, deltaBase)
	assert.True(result.Derivable, "trace: %v", result.Trace)
}

func Test_Scenario7_RQ_knownWitness(t *testing.T) {
	assert := assert.New(t)

	hasChild := "hasChild"
	mb := materialbase.New()
	gamma := sentSet(
		sentence.RoleAtom{Role: hasChild, Subject: "a", Object: "c"},
		sentence.ConceptAtom{Concept: "Doctor", Individual: "c"},
	)
	delta := sentSet(sentence.ConceptAtom{Concept: "PD", Individual: "a"})
	require.NoError(t, mb.AddConsequence(gamma, delta))

	query := sentSet(sentence.SomeRestrict{Role: hasChild, Concept: "Doctor", Individual: "a"})
	r := New(mb, Mode(sentence.RQ))
	result := r.Derives(gamma, query)
	assert.True(result.Derivable, "trace: %v", result.Trace)
}

func Test_P5_supraclassicalProbes(t *testing.T) {
	a := sentence.Atom{Name: "A"}
	b := sentence.Atom{Name: "B"}

	testCases := []struct {
		name  string
		gamma util.Set[sentence.Sentence]
		delta util.Set[sentence.Sentence]
	}{
		{"excluded middle", sentSet(), sentSet(sentence.Or{Left: a, Right: sentence.Not{Operand: a}})},
		{"double negation elimination", sentSet(sentence.Not{Operand: sentence.Not{Operand: a}}), sentSet(a)},
		{"explosion of contradiction", sentSet(a, sentence.Not{Operand: a}), sentSet()},
		{"self implication", sentSet(), sentSet(sentence.Implies{Left: a, Right: a})},
		{"modus ponens", sentSet(a, sentence.Implies{Left: a, Right: b}), sentSet(b)},
		{
			"implication-comparability",
			sentSet(),
			sentSet(sentence.Or{
				Left:  sentence.Implies{Left: a, Right: b},
				Right: sentence.Implies{Left: b, Right: a},
			}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			mb := materialbase.New()
			r := New(mb)
			result := r.Derives(tc.gamma, tc.delta)
			assert.True(result.Derivable, "trace: %v", result.Trace)
		})
	}
}

func Test_P1_containment(t *testing.T) {
	assert := assert.New(t)

	a := sentence.Atom{Name: "A"}
	mb := materialbase.New()
	r := New(mb)
	result := r.Derives(sentSet(a), sentSet(a, sentence.Atom{Name: "B"}))
	assert.True(result.Derivable)
	assert.Contains(result.Trace[0], "AXIOM")
}

func Test_P6_conservativeExtension_atomicSequent(t *testing.T) {
	assert := assert.New(t)

	a := sentence.Atom{Name: "A"}
	b := sentence.Atom{Name: "B"}
	mb := materialbase.New()
	require.NoError(t, mb.AddConsequence(sentSet(a), sentSet(b)))
	r := New(mb)

	assert.Equal(mb.IsAxiom(sentSet(a), sentSet(b)), r.Query(sentSet(a), sentSet(b)))
	assert.Equal(mb.IsAxiom(sentSet(b), sentSet(a)), r.Query(sentSet(b), sentSet(a)))
}

func Test_P8_idempotence(t *testing.T) {
	assert := assert.New(t)

	a := sentence.Atom{Name: "A"}
	mb := materialbase.New()
	r := New(mb)

	first := r.Derives(sentSet(), sentSet(sentence.Or{Left: a, Right: sentence.Not{Operand: a}}))
	second := r.Derives(sentSet(), sentSet(sentence.Or{Left: a, Right: sentence.Not{Operand: a}}))

	assert.Equal(first.Derivable, second.Derivable)
	assert.Equal(first.Trace, second.Trace)
}

func Test_DepthLimit(t *testing.T) {
	assert := assert.New(t)

	a := sentence.Atom{Name: "A"}
	mb := materialbase.New()
	r := New(mb, MaxDepth(1))

	nested := sentence.Implies{Left: a, Right: sentence.Implies{Left: a, Right: sentence.Implies{Left: a, Right: a}}}
	result := r.Derives(sentSet(), sentSet(nested))
	found := false
	for _, line := range result.Trace {
		if strings.TrimSpace(line) == "DEPTH LIMIT" {
			found = true
		}
	}
	assert.True(found, "trace: %v", result.Trace)
}

func Test_CycleDetection_doesNotHang(t *testing.T) {
	assert := assert.New(t)

	a := sentence.Atom{Name: "A"}
	b := sentence.Atom{Name: "B"}
	mb := materialbase.New()
	r := New(mb)

	gamma := sentSet(sentence.Implies{Left: a, Right: b})
	delta := sentSet(sentence.Implies{Left: b, Right: a})
	result := r.Derives(gamma, delta)
	assert.False(result.Derivable)
}

func Test_FreshWitness_blockedByExistingConceptLabel(t *testing.T) {
	assert := assert.New(t)

	mb := materialbase.New()
	gamma := sentSet(sentence.ConceptAtom{Concept: "Doctor", Individual: "c"})
	delta := sentSet(sentence.SomeRestrict{Role: "hasChild", Concept: "Doctor", Individual: "a"})

	r := New(mb, Mode(sentence.RQ))
	result := r.Derives(gamma, delta)
	assert.False(result.Derivable, "no role atom links a to c, and blocking should suppress the fresh witness")
}
