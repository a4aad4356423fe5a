// Package proofsearch implements the backward proof-search engine: root-
// first, depth-limited search over the NMMS sequent calculus with
// memoization, cycle detection, and a flat proof trace.
package proofsearch

import (
	"log"

	"github.com/dekarrin/nmms/internal/materialbase"
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/util"
)

// DefaultMaxDepth is the recursion depth at which a non-axiomatic branch
// is abandoned with a DEPTH LIMIT trace entry.
const DefaultMaxDepth = 25

// Reasoner performs backward proof search against a fixed MaterialBase.
// The base is treated as read-only for the lifetime of the Reasoner; per
// §5 mutating it concurrently with a Derives call is undefined behaviour.
type Reasoner struct {
	base *materialbase.MaterialBase

	maxDepth int
	mode     sentence.Mode

	freshWitnesses bool
	blocking       bool

	logger *log.Logger
}

// Option configures a Reasoner at construction time.
type Option func(*Reasoner)

// MaxDepth overrides the default depth limit of 25.
func MaxDepth(n int) Option {
	return func(r *Reasoner) { r.maxDepth = n }
}

// Mode records whether queries are parsed in Propositional or RQ mode. The
// engine does not read it: IsAxiom and every rule, the four quantifier
// rules included, behave the same under either mode, since Mode only gates
// the parser (see internal/sentence); this option exists so callers
// constructing sequents programmatically can record their intent alongside
// the reasoner.
func Mode(m sentence.Mode) Option {
	return func(r *Reasoner) { r.mode = m }
}

// AllowFreshWitnesses toggles the experimental fresh-canonical-witness
// strategy of [R∃R.C] (OQ-2). Enabled by default.
func AllowFreshWitnesses(allow bool) Option {
	return func(r *Reasoner) { r.freshWitnesses = allow }
}

// ConceptLabelBlocking toggles concept-label subset blocking of fresh
// witnesses (OQ-2, conjectured sound but not proven). Enabled by default;
// disabling it lets every fresh-witness attempt through unconditionally.
func ConceptLabelBlocking(enabled bool) Option {
	return func(r *Reasoner) { r.blocking = enabled }
}

// Logger overrides the destination of the one-time fresh-witness warning.
// Defaults to the standard library's default logger.
func Logger(l *log.Logger) Option {
	return func(r *Reasoner) { r.logger = l }
}

// New returns a Reasoner over base with the given options applied.
func New(base *materialbase.MaterialBase, opts ...Option) *Reasoner {
	r := &Reasoner{
		base:           base,
		maxDepth:       DefaultMaxDepth,
		mode:           sentence.Propositional,
		freshWitnesses: true,
		blocking:       true,
		logger:         log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ProofResult is the immutable outcome of a Derives call.
type ProofResult struct {
	Derivable    bool
	Trace        []string
	DepthReached int
	CacheHits    int
}

// Derives attempts to prove Γ ⇒ Δ. A fresh memoization table is created for
// this call only; it is never reused or shared across calls (§5).
func (r *Reasoner) Derives(gamma, delta util.Set[sentence.Sentence]) ProofResult {
	s := &search{
		r:     r,
		cache: make(map[string]cacheState),
	}
	derivable := s.prove(gamma, delta, 0)
	return ProofResult{
		Derivable:    derivable,
		Trace:        s.trace,
		DepthReached: s.maxDepthSeen,
		CacheHits:    s.cacheHits,
	}
}

// Query is the boolean-only alias for Derives.
func (r *Reasoner) Query(gamma, delta util.Set[sentence.Sentence]) bool {
	return r.Derives(gamma, delta).Derivable
}
