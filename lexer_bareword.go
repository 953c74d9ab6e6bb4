package ucl

import (
	"math"

	"github.com/goucl/ucl/value"
)

// scanBareWord scans KEY_START then KEY_CONTINUE bytes, followed by
// case-insensitive keyword folding. Modeled on sqldef's scanIdentifier,
// generalized with UCL's true/false/null/special-float keyword set via
// golang.org/x/text/cases instead of sqldef's ASCII ToUpper table, since
// UCL keys may contain non-ASCII bytes that a byte-wise upper/lower table
// would mangle. An identifier long enough to reach the source's look-ahead
// limit is flushed into an owned buffer incrementally rather than borrowed
// in one bulk slice at the end, since a bulk borrow fails silently once the
// start of the word has scrolled out of a bounded reader window.
func (l *Lexer) scanBareWord(start Position) (Token, error) {
	mark := l.src.Mark()
	if l.peek(0) == '-' {
		l.advance() // leading '-', as in "-inf"/"-infinity"
	}

	var buf []byte
	owned := false
	flushMark := mark

	flush := func() {
		if chunk, ok := l.src.SliceSince(flushMark); ok {
			buf = append(buf, chunk...)
		}
		flushMark = l.src.Mark()
	}

	for isKeyContinue(l.peek(0)) {
		if l.needsFlush(flushMark) {
			flush()
			owned = true
		}
		l.advance()
	}

	var raw []byte
	if owned {
		flush()
		raw = buf
	} else {
		slice, ok := l.src.SliceSince(mark)
		if !ok {
			return Token{}, l.annotate(newError(ErrUnexpectedByte, start, "identifier exceeded the source look-ahead window"))
		}
		raw = slice
	}
	word := string(raw)
	folded := l.foldKeyword(word)

	switch folded {
	case "true", "yes", "on":
		return Token{Kind: TokBoolean, Start: start, End: l.pos(), Bool: true}, nil
	case "false", "no", "off":
		return Token{Kind: TokBoolean, Start: start, End: l.pos(), Bool: false}, nil
	case "null":
		return Token{Kind: TokNull, Start: start, End: l.pos()}, nil
	case "inf", "infinity":
		return Token{Kind: TokSpecialFloat, Start: start, End: l.pos(), Float: math.Inf(1)}, nil
	case "-inf", "-infinity":
		return Token{Kind: TokSpecialFloat, Start: start, End: l.pos(), Float: math.Inf(-1)}, nil
	case "nan":
		return Token{Kind: TokSpecialFloat, Start: start, End: l.pos(), Float: math.NaN()}, nil
	default:
		var str value.COWString
		if owned {
			str = value.Owned(raw)
		} else {
			str = value.Borrowed(raw)
		}
		return Token{Kind: TokIdentifier, Start: start, End: l.pos(), Ident: word, Str: str}, nil
	}
}
