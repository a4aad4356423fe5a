// Package nmms is the root convenience API over the NMMS reasoner: a
// material base plus a configured proof-search engine, for callers that
// don't need to reach into the internal packages directly.
package nmms

import (
	"github.com/dekarrin/nmms/internal/materialbase"
	"github.com/dekarrin/nmms/internal/proofsearch"
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/util"
)

// Reasoner pairs a MaterialBase with a proof-search engine configured
// against it.
type Reasoner struct {
	Base   *materialbase.MaterialBase
	engine *proofsearch.Reasoner
}

// New builds a Reasoner over a freshly empty material base.
func New(opts ...proofsearch.Option) *Reasoner {
	base := materialbase.New()
	return &Reasoner{Base: base, engine: proofsearch.New(base, opts...)}
}

// FromBase builds a Reasoner over an already-populated material base.
func FromBase(base *materialbase.MaterialBase, opts ...proofsearch.Option) *Reasoner {
	return &Reasoner{Base: base, engine: proofsearch.New(base, opts...)}
}

// Derives attempts to prove Γ ⇒ Δ against the reasoner's base.
func (r *Reasoner) Derives(gamma, delta util.Set[sentence.Sentence]) proofsearch.ProofResult {
	return r.engine.Derives(gamma, delta)
}

// Query is the boolean-only alias for Derives.
func (r *Reasoner) Query(gamma, delta util.Set[sentence.Sentence]) bool {
	return r.engine.Query(gamma, delta)
}

// Ask parses src as a "Γ => Δ" sequent in the given mode and derives it.
func (r *Reasoner) Ask(src string, mode sentence.Mode) (proofsearch.ProofResult, error) {
	gamma, delta, err := sentence.ParseSequent(src, mode, sentence.Asks)
	if err != nil {
		return proofsearch.ProofResult{}, err
	}
	return r.Derives(gamma, delta), nil
}

// Tell parses src as a "Γ |~ Δ" sequent and registers it as an explicit
// base consequence.
func (r *Reasoner) Tell(src string, mode sentence.Mode) error {
	gamma, delta, err := sentence.ParseSequent(src, mode, sentence.Tells)
	if err != nil {
		return err
	}
	return r.Base.AddConsequence(gamma, delta)
}
