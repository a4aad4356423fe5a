package sentence

import (
	"unicode"

	"github.com/dekarrin/nmms/internal/nmerr"
)

// lex tokenizes src into a flat token slice terminated by a tokEOF token.
// Whitespace is skipped between tokens. The only multi-character lexemes
// are identifiers/keywords and the three digraphs "->", "=>", and "|~".
func lex(src string) ([]token, error) {
	runes := []rune(src)
	var tokens []token

	i := 0
	for i < len(runes) {
		ch := runes[i]

		if unicode.IsSpace(ch) {
			i++
			continue
		}

		start := i

		switch {
		case ch == '(':
			tokens = append(tokens, token{tokLParen, "(", start})
			i++
		case ch == ')':
			tokens = append(tokens, token{tokRParen, ")", start})
			i++
		case ch == ',':
			tokens = append(tokens, token{tokComma, ",", start})
			i++
		case ch == '.':
			tokens = append(tokens, token{tokDot, ".", start})
			i++
		case ch == '~':
			tokens = append(tokens, token{tokTilde, "~", start})
			i++
		case ch == '&':
			tokens = append(tokens, token{tokAmp, "&", start})
			i++
		case ch == '|':
			if i+1 < len(runes) && runes[i+1] == '~' {
				tokens = append(tokens, token{tokTellArrow, "|~", start})
				i += 2
			} else {
				tokens = append(tokens, token{tokPipe, "|", start})
				i++
			}
		case ch == '-':
			if i+1 < len(runes) && runes[i+1] == '>' {
				tokens = append(tokens, token{tokArrow, "->", start})
				i += 2
			} else {
				return nil, nmerr.Parse("'-' must be followed by '>'", start)
			}
		case ch == '=':
			if i+1 < len(runes) && runes[i+1] == '>' {
				tokens = append(tokens, token{tokSeqArrow, "=>", start})
				i += 2
			} else {
				return nil, nmerr.Parse("'=' must be followed by '>'", start)
			}
		case isIdentStart(ch):
			j := i + 1
			for j < len(runes) && isIdentCont(runes[j]) {
				j++
			}
			text := string(runes[i:j])
			switch text {
			case "ALL":
				tokens = append(tokens, token{tokAll, text, start})
			case "SOME":
				tokens = append(tokens, token{tokSome, text, start})
			default:
				tokens = append(tokens, token{tokIdent, text, start})
			}
			i = j
		default:
			return nil, nmerr.Parse("unexpected character '"+string(ch)+"'", start)
		}
	}

	tokens = append(tokens, token{tokEOF, "", len(runes)})
	return tokens, nil
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentCont(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
