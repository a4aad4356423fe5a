package sentence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_lex_tokenKindSequence(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    []tokenKind
		expectErr bool
	}{
		{name: "empty", input: "", expect: []tokenKind{tokEOF}},
		{name: "identifier", input: "rain", expect: []tokenKind{tokIdent, tokEOF}},
		{name: "negation", input: "~A", expect: []tokenKind{tokTilde, tokIdent, tokEOF}},
		{
			name:  "concept atom shape",
			input: "Doctor(b)",
			expect: []tokenKind{
				tokIdent, tokLParen, tokIdent, tokRParen, tokEOF,
			},
		},
		{
			name:  "role atom shape",
			input: "hasChild(a,b)",
			expect: []tokenKind{
				tokIdent, tokLParen, tokIdent, tokComma, tokIdent, tokRParen, tokEOF,
			},
		},
		{
			name:  "quantifier keywords",
			input: "ALL R.C(a) SOME R.C(a)",
			expect: []tokenKind{
				tokAll, tokIdent, tokDot, tokIdent, tokLParen, tokIdent, tokRParen,
				tokSome, tokIdent, tokDot, tokIdent, tokLParen, tokIdent, tokRParen,
				tokEOF,
			},
		},
		{
			name:  "sequent arrows",
			input: "A => B, A |~ B",
			expect: []tokenKind{
				tokIdent, tokSeqArrow, tokIdent, tokComma, tokIdent, tokTellArrow, tokIdent, tokEOF,
			},
		},
		{name: "lone minus is an error", input: "A - B", expectErr: true},
		{name: "lone equals is an error", input: "A = B", expectErr: true},
		{name: "unknown symbol", input: "A % B", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			tokens, err := lex(tc.input)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}

			kinds := make([]tokenKind, len(tokens))
			for i := range tokens {
				kinds[i] = tokens[i].kind
			}
			assert.Equal(tc.expect, kinds)
		})
	}
}
