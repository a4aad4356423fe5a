package sentence

import (
	"github.com/dekarrin/nmms/internal/nmerr"
	"github.com/dekarrin/nmms/internal/util"
)

// SequentArrow distinguishes the two sequent-level connectives of §4.1:
// "=>" for a query sequent, "|~" for a tell statement.
type SequentArrow int

const (
	// Asks is the "=>" arrow used by ask sequents.
	Asks SequentArrow = iota
	// Tells is the "|~" arrow used by tell statements.
	Tells
)

// ParseSequent parses "sentences? ARROW sentences?" where ARROW is "=>" for
// arrow == Asks or "|~" for arrow == Tells, and sentences is a
// comma-separated (possibly empty) list. Either side may be empty.
func ParseSequent(src string, mode Mode, arrow SequentArrow) (antecedent, succedent util.Set[Sentence], err error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, nil, err
	}

	wantKind := tokSeqArrow
	wantText := "=>"
	if arrow == Tells {
		wantKind = tokTellArrow
		wantText = "|~"
	}

	p := &parser{tokens: tokens, mode: mode}

	left, err := p.parseSentenceList(wantKind)
	if err != nil {
		return nil, nil, err
	}

	if p.peek().kind != wantKind {
		return nil, nil, nmerr.Parse("expected '"+wantText+"'", p.peek().pos)
	}
	p.next()

	right, err := p.parseSentenceList(tokEOF)
	if err != nil {
		return nil, nil, err
	}

	if p.peek().kind != tokEOF {
		return nil, nil, nmerr.Parse("unexpected trailing "+describeToken(p.peek()), p.peek().pos)
	}

	return util.KeySetOf(left), util.KeySetOf(right), nil
}

// parseSentenceList parses a comma-separated, possibly-empty list of
// sentences, stopping at stopAt without consuming it.
func (p *parser) parseSentenceList(stopAt tokenKind) ([]Sentence, error) {
	if p.peek().kind == stopAt {
		return nil, nil
	}

	var out []Sentence
	for {
		s, err := p.parseImpl()
		if err != nil {
			return nil, err
		}
		out = append(out, s)

		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	return out, nil
}
