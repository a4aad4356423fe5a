package persist

import (
	"testing"

	"github.com/dekarrin/nmms/internal/materialbase"
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RoundTrip_propositional(t *testing.T) {
	assert := assert.New(t)

	mb := materialbase.New()
	a := sentence.Atom{Name: "A"}
	b := sentence.Atom{Name: "B"}
	require.NoError(t, mb.AddAtom(a))
	require.NoError(t, mb.AddConsequence(
		util.KeySetOf([]sentence.Sentence{a}),
		util.KeySetOf([]sentence.Sentence{b}),
	))

	data, err := ToJSON(mb)
	require.NoError(t, err)

	restored, err := FromJSON(data, sentence.Propositional)
	require.NoError(t, err)

	assert.True(restored.Language().Equal(mb.Language()))
	assert.ElementsMatch(mb.Consequences(), restored.Consequences())
}

func Test_RoundTrip_RQ_withSchemas(t *testing.T) {
	assert := assert.New(t)

	mb := materialbase.New()
	require.NoError(t, mb.AddConceptSchema("hasChild", "a", "Doctor"))
	require.NoError(t, mb.AddInferenceSchema("hasChild", "a", "Doctor",
		util.KeySetOf([]sentence.Sentence{sentence.ConceptAtom{Concept: "PD", Individual: "a"}})))

	data, err := ToJSON(mb)
	require.NoError(t, err)

	restored, err := FromJSON(data, sentence.RQ)
	require.NoError(t, err)

	assert.Equal(len(mb.Schemas()), len(restored.Schemas()))
}

func Test_FromJSON_rejectsNonAtomicLanguageEntry(t *testing.T) {
	assert := assert.New(t)

	data := []byte(`{"language": ["~A"], "consequences": []}`)
	_, err := FromJSON(data, sentence.Propositional)
	assert.Error(err)
}
