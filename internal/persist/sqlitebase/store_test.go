package sqlitebase

import (
	"context"
	"testing"

	"github.com/dekarrin/nmms/internal/materialbase"
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SaveAndLoad_roundTrip(t *testing.T) {
	assert := assert.New(t)

	st, err := Open(":memory:")
	require.NoError(t, err)
	defer st.Close()

	mb := materialbase.New()
	a := sentence.Atom{Name: "A"}
	b := sentence.Atom{Name: "B"}
	require.NoError(t, mb.AddConsequence(
		util.KeySetOf([]sentence.Sentence{a}),
		util.KeySetOf([]sentence.Sentence{b}),
	))

	ctx := context.Background()
	require.NoError(t, st.Save(ctx, mb))

	restored, err := st.Load(ctx, sentence.Propositional)
	require.NoError(t, err)

	assert.True(restored.IsAxiom(
		util.KeySetOf([]sentence.Sentence{a}),
		util.KeySetOf([]sentence.Sentence{b}),
	))
}
