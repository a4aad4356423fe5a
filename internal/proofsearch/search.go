package proofsearch

import (
	"fmt"
	"strings"

	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/util"
)

// search holds the per-invocation state of a single Derives call: the
// memoization table, the accumulated trace, and bookkeeping counters. It
// is discarded once Derives returns.
type search struct {
	r *Reasoner

	cache map[string]cacheState
	trace []string

	cacheHits    int
	maxDepthSeen int

	warnedFreshWitness bool
}

func (s *search) emit(depth int, format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	s.trace = append(s.trace, strings.Repeat("  ", depth)+line)
}

// prove implements §4.3.2 steps 1-5: axiom check, memoization lookup,
// cycle-sentinel insertion, rule selection, and exhaustion.
func (s *search) prove(gamma, delta util.Set[sentence.Sentence], depth int) bool {
	if depth > s.maxDepthSeen {
		s.maxDepthSeen = depth
	}

	if s.r.base.IsAxiom(gamma, delta) {
		s.emit(depth, "AXIOM: %s => %s", sentence.SetString(gamma), sentence.SetString(delta))
		return true
	}

	key := sentence.Key(gamma, delta)

	if st, ok := s.cache[key]; ok {
		if st == pending {
			s.emit(depth, "CYCLE: %s => %s", sentence.SetString(gamma), sentence.SetString(delta))
			return false
		}
		s.cacheHits++
		result := st == provable
		tag := "refutable"
		if result {
			tag = "provable"
		}
		s.emit(depth, "CACHED: %s => %s (%s)", sentence.SetString(gamma), sentence.SetString(delta), tag)
		return result
	}

	if depth >= s.r.maxDepth {
		s.emit(depth, "DEPTH LIMIT")
		s.cache[key] = refutable
		return false
	}

	s.cache[key] = pending

	if s.tryRules(gamma, delta, depth) {
		s.cache[key] = provable
		return true
	}

	s.cache[key] = refutable
	s.emit(depth, "FAIL: %s => %s", sentence.SetString(gamma), sentence.SetString(delta))
	return false
}

// tryRules iterates the complex members of Γ then Δ in deterministic
// sorted order, attempting the rule each triggers until one succeeds.
func (s *search) tryRules(gamma, delta util.Set[sentence.Sentence], depth int) bool {
	for _, active := range sentence.Complex(gamma) {
		if s.tryLeftRule(active, gamma, delta, depth) {
			return true
		}
	}
	for _, active := range sentence.Complex(delta) {
		if s.tryRightRule(active, gamma, delta, depth) {
			return true
		}
	}
	return false
}

func (s *search) tryLeftRule(active sentence.Sentence, gamma, delta util.Set[sentence.Sentence], depth int) bool {
	switch v := active.(type) {
	case sentence.Not:
		s.emit(depth, "[L¬] on %s", v.String())
		newGamma := sentence.WithReplacement(gamma, v)
		newDelta := delta.Copy()
		newDelta.Add(v.Operand)
		return s.prove(newGamma, newDelta, depth+1)

	case sentence.And:
		s.emit(depth, "[L∧] on %s", v.String())
		newGamma := sentence.WithReplacement(gamma, v, v.Left, v.Right)
		return s.prove(newGamma, delta, depth+1)

	case sentence.Or:
		s.emit(depth, "[L∨] on %s", v.String())
		g1 := sentence.WithReplacement(gamma, v, v.Left)
		g2 := sentence.WithReplacement(gamma, v, v.Right)
		g3 := sentence.WithReplacement(gamma, v, v.Left, v.Right)
		return s.prove(g1, delta, depth+1) &&
			s.prove(g2, delta, depth+1) &&
			s.prove(g3, delta, depth+1)

	case sentence.Implies:
		s.emit(depth, "[L→] on %s", v.String())
		gBase := sentence.WithReplacement(gamma, v)
		gWithB := sentence.WithReplacement(gamma, v, v.Right)
		dWithA := delta.Copy()
		dWithA.Add(v.Left)
		return s.prove(gBase, dWithA, depth+1) &&
			s.prove(gWithB, delta, depth+1) &&
			s.prove(gWithB, dWithA, depth+1)

	case sentence.AllRestrict:
		return s.tryLeftAllRestrict(v, gamma, delta, depth)

	case sentence.SomeRestrict:
		return s.tryLeftSomeRestrict(v, gamma, delta, depth)
	}
	return false
}

func (s *search) tryRightRule(active sentence.Sentence, gamma, delta util.Set[sentence.Sentence], depth int) bool {
	switch v := active.(type) {
	case sentence.Not:
		s.emit(depth, "[R¬] on %s", v.String())
		newGamma := gamma.Copy()
		newGamma.Add(v.Operand)
		newDelta := sentence.WithReplacement(delta, v)
		return s.prove(newGamma, newDelta, depth+1)

	case sentence.Or:
		s.emit(depth, "[R∨] on %s", v.String())
		newDelta := sentence.WithReplacement(delta, v, v.Left, v.Right)
		return s.prove(gamma, newDelta, depth+1)

	case sentence.Implies:
		s.emit(depth, "[R→] on %s", v.String())
		newGamma := gamma.Copy()
		newGamma.Add(v.Left)
		newDelta := sentence.WithReplacement(delta, v, v.Right)
		return s.prove(newGamma, newDelta, depth+1)

	case sentence.And:
		s.emit(depth, "[R∧] on %s", v.String())
		d1 := sentence.WithReplacement(delta, v, v.Left)
		d2 := sentence.WithReplacement(delta, v, v.Right)
		d3 := sentence.WithReplacement(delta, v, v.Left, v.Right)
		return s.prove(gamma, d1, depth+1) &&
			s.prove(gamma, d2, depth+1) &&
			s.prove(gamma, d3, depth+1)

	case sentence.AllRestrict:
		return s.tryRightAllRestrict(v, gamma, delta, depth)

	case sentence.SomeRestrict:
		return s.tryRightSomeRestrict(v, gamma, delta, depth)
	}
	return false
}
