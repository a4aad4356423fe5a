package sentence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse_propositional(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Sentence
		expectErr bool
	}{
		{name: "bare atom", input: "A", expect: Atom{Name: "A"}},
		{name: "negation", input: "~A", expect: Not{Operand: Atom{Name: "A"}}},
		{name: "double negation", input: "~~A", expect: Not{Operand: Not{Operand: Atom{Name: "A"}}}},
		{
			name:  "conjunction",
			input: "A & B",
			expect: And{Left: Atom{Name: "A"}, Right: Atom{Name: "B"}},
		},
		{
			name:  "left-associative conjunction",
			input: "A & B & C",
			expect: And{
				Left:  And{Left: Atom{Name: "A"}, Right: Atom{Name: "B"}},
				Right: Atom{Name: "C"},
			},
		},
		{
			name:  "right-associative implication",
			input: "A -> B -> C",
			expect: Implies{
				Left: Atom{Name: "A"},
				Right: Implies{
					Left:  Atom{Name: "B"},
					Right: Atom{Name: "C"},
				},
			},
		},
		{
			name:  "precedence: not tighter than and",
			input: "~A & B",
			expect: And{
				Left:  Not{Operand: Atom{Name: "A"}},
				Right: Atom{Name: "B"},
			},
		},
		{
			name:  "precedence: and tighter than or",
			input: "A & B | C",
			expect: Or{
				Left:  And{Left: Atom{Name: "A"}, Right: Atom{Name: "B"}},
				Right: Atom{Name: "C"},
			},
		},
		{
			name:  "precedence: or tighter than implies",
			input: "A | B -> C",
			expect: Implies{
				Left:  Or{Left: Atom{Name: "A"}, Right: Atom{Name: "B"}},
				Right: Atom{Name: "C"},
			},
		},
		{
			name:  "parens override precedence",
			input: "(A -> B) | C",
			expect: Or{
				Left:  Implies{Left: Atom{Name: "A"}, Right: Atom{Name: "B"}},
				Right: Atom{Name: "C"},
			},
		},
		{name: "unmatched open paren", input: "(A & B", expectErr: true},
		{name: "empty input", input: "", expectErr: true},
		{name: "trailing garbage", input: "A B", expectErr: true},
		{name: "dangling operator", input: "A &", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Parse(tc.input, Propositional)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Parse_RQ(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		mode      Mode
		expect    Sentence
		expectErr bool
	}{
		{
			name:   "concept atom",
			input:  "Doctor(b)",
			mode:   RQ,
			expect: ConceptAtom{Concept: "Doctor", Individual: "b"},
		},
		{
			name:   "role atom",
			input:  "hasChild(a,b)",
			mode:   RQ,
			expect: RoleAtom{Role: "hasChild", Subject: "a", Object: "b"},
		},
		{
			name:  "universal restriction",
			input: "ALL hasChild.Doctor(a)",
			mode:  RQ,
			expect: AllRestrict{Role: "hasChild", Concept: "Doctor", Individual: "a"},
		},
		{
			name:  "existential restriction",
			input: "SOME hasChild.Doctor(a)",
			mode:  RQ,
			expect: SomeRestrict{Role: "hasChild", Concept: "Doctor", Individual: "a"},
		},
		{name: "bare identifier rejected in RQ mode", input: "A", mode: RQ, expectErr: true},
		{name: "quantifier rejected outside RQ mode", input: "ALL R.C(a)", mode: Propositional, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Parse(tc.input, tc.mode)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_ParseSequent(t *testing.T) {
	assert := assert.New(t)

	gamma, delta, err := ParseSequent("A, B => C", Propositional, Asks)
	assert.NoError(err)
	assert.Equal(2, gamma.Len())
	assert.Equal(1, delta.Len())
	assert.True(gamma.Has(Atom{Name: "A"}))
	assert.True(gamma.Has(Atom{Name: "B"}))
	assert.True(delta.Has(Atom{Name: "C"}))

	gamma, delta, err = ParseSequent("=> A | ~A", Propositional, Asks)
	assert.NoError(err)
	assert.True(gamma.Empty())
	assert.Equal(1, delta.Len())

	_, _, err = ParseSequent("A, B => C", Propositional, Tells)
	assert.Error(err, "wrong arrow should fail")

	gamma, delta, err = ParseSequent("A |~ B", Propositional, Tells)
	assert.NoError(err)
	assert.Equal(1, gamma.Len())
	assert.Equal(1, delta.Len())
}

func Test_String_roundtrips_canonical_form(t *testing.T) {
	testCases := []string{
		"A",
		"~A",
		"A & B",
		"(A & B) & C",
		"A & (B & C)",
		"A -> (B -> C)",
		"(A -> B) -> C",
		"A & B | C",
	}

	for _, src := range testCases {
		t.Run(src, func(t *testing.T) {
			assert := assert.New(t)

			first, err := Parse(src, Propositional)
			if !assert.NoError(err) {
				return
			}

			second, err := Parse(first.String(), Propositional)
			if !assert.NoError(err) {
				return
			}

			assert.Equal(first, second, "re-parsing String() output changed the tree")
		})
	}
}
