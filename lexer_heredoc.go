package ucl

import "github.com/goucl/ucl/value"

// scanHeredoc handles `<<TAG\n...\nTAG\n`. TAG matches `[A-Z][A-Z0-9_]*`; a
// terminator line must equal TAG exactly, with no leading or trailing
// whitespace besides its own newline. Escapes are never processed inside
// heredoc content. Modeled on sqldef's handling of raw multi-line content
// in bulk statements, generalized to UCL's tagged-terminator form.
//
// Content is normally borrowed straight into the source buffer, but a body
// long enough to reach the source's look-ahead limit is flushed into an
// owned buffer incrementally: a single bulk borrow at the terminator would
// otherwise fail (or, worse, succeed against stale bytes) once the body
// exceeds a bounded reader's window.
func (l *Lexer) scanHeredoc(start Position) (Token, error) {
	l.advance() // '<'
	l.advance() // '<'

	tagStart := l.src.Mark()
	for isHeredocTagStart(l.peek(0)) || isDigitByte(l.peek(0)) || l.peek(0) == '_' {
		l.advance()
	}
	tagBytes, ok := l.src.SliceSince(tagStart)
	if !ok {
		return Token{}, l.annotate(newError(ErrUnexpectedByte, start, "heredoc tag exceeded the source look-ahead window"))
	}
	tag := string(tagBytes)
	if tag == "" {
		return Token{}, l.annotate(newError(ErrUnexpectedByte, start, "expected heredoc tag after \"<<\""))
	}

	// The rest of the opening line, up to and including its newline, is not
	// part of the content; skip it.
	for {
		b, ok := l.peekOK(0)
		if !ok {
			return Token{}, l.annotate(newError(ErrUnterminatedHeredoc, start, "unterminated heredoc (tag "+tag+"): EOF on opening line"))
		}
		if b == '\n' {
			l.advance()
			break
		}
		l.advance()
	}

	l.heredocOpenStack = append(l.heredocOpenStack, start)
	defer func() {
		l.heredocOpenStack = l.heredocOpenStack[:len(l.heredocOpenStack)-1]
	}()

	var buf []byte
	owned := false
	contentStart := l.src.Mark()

	flush := func(uptoMark int) {
		if chunk, ok := l.src.SliceSince(uptoMark); ok {
			buf = append(buf, chunk...)
		}
	}
	flushIfNeeded := func() {
		if l.needsFlush(contentStart) {
			flush(contentStart)
			owned = true
			contentStart = l.src.Mark()
		}
	}

	for {
		flushIfNeeded()
		lineStart := l.src.Mark()
		if l.atEOF() {
			return Token{}, l.annotate(newError(ErrUnterminatedHeredoc, start,
				"unterminated heredoc: expected terminator "+tag).withWhile(whileHeredoc(start)))
		}
		// A single content line longer than the look-ahead window must still
		// be flushed as it's scanned, not just between lines.
		lineIsTerminator, _ := l.scanHeredocLineIsTerminator(tag, flushIfNeeded)
		if !lineIsTerminator {
			continue
		}

		// The terminator line is not part of the content (the newline
		// preceding it is); trim the chunk already consumed back to lineStart.
		contentLen := lineStart - contentStart
		if contentLen < 0 {
			contentLen = 0
		}
		if !owned {
			content, ok := l.src.SliceSince(contentStart)
			if !ok {
				return Token{}, l.annotate(newError(ErrUnterminatedHeredoc, start, "heredoc content exceeded the source look-ahead window"))
			}
			return Token{Kind: TokString, Start: start, End: l.pos(), Str: value.Borrowed(content[:contentLen]), StringFormat: StringHeredoc}, nil
		}
		if chunk, ok := l.src.SliceSince(contentStart); ok {
			if contentLen > len(chunk) {
				contentLen = len(chunk)
			}
			buf = append(buf, chunk[:contentLen]...)
		}
		return Token{Kind: TokString, Start: start, End: l.pos(), Str: value.Owned(buf), StringFormat: StringHeredoc}, nil
	}
}

// scanHeredocLineIsTerminator consumes one line (through its newline, or to
// EOF) and reports whether that line, stripped of a trailing '\r' directly
// before the newline, was exactly tag. It compares incrementally against
// tag as it advances rather than slicing the whole line afterward, so an
// ordinary content line has no length limit: only a terminator candidate
// need ever match, and a mismatch is known well before the line ends.
// flushIfNeeded is called before each byte so the caller can still flush a
// single pathologically long line into its owned buffer as it's consumed.
func (l *Lexer) scanHeredocLineIsTerminator(tag string, flushIfNeeded func()) (isTerminator bool, hitEOF bool) {
	matched := true
	i := 0
	for {
		flushIfNeeded()
		b, ok := l.peekOK(0)
		if !ok {
			return matched && i == len(tag), true
		}
		if b == '\n' {
			l.advance()
			return matched && i == len(tag), false
		}
		if b == '\r' && l.peek(1) == '\n' {
			l.advance() // trailing \r right before the newline, not part of the comparison
			continue
		}
		if matched {
			if i < len(tag) && b == tag[i] {
				i++
			} else {
				matched = false
			}
		}
		l.advance()
	}
}

func whileHeredoc(start Position) string {
	return "while parsing heredoc started at " + start.String()
}
