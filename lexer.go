package ucl

import (
	"github.com/goucl/ucl/hooks"
	"golang.org/x/text/cases"
)

const eof byte = 0 // sentinel; Source.Peek/Advance returning ok=false means EOF

// Lexer turns a Source into Tokens, single-pass, no backtracking. Modeled on
// sqldef's Tokenizer: a lastChar-lookahead byte scanner dispatching on the
// current byte, generalized from SQL's grammar to UCL's (comments, numeric
// suffixes, heredocs, Unicode escapes, bare words).
type Lexer struct {
	src     Source
	track   *tracker
	opts    Options
	hooks   *HookSet
	folder  cases.Caser

	heredocOpenStack []Position // for error messages naming where a heredoc opened
}

// NewLexer builds a Lexer over src using opts. If opts.Hooks is nil, an
// empty sealed registry is used, so delegating to the number-suffix hook
// chain with no chain registered just falls through to an error.
func NewLexer(src Source, opts Options) *Lexer {
	h := opts.Hooks
	if h == nil {
		h = hooks.NewRegistry()
	}
	if !h.Sealed() {
		h.Seal()
	}
	return &Lexer{
		src:    src,
		track:  newTracker(),
		opts:   opts,
		hooks:  h,
		folder: cases.Fold(),
	}
}

// pos returns the position of the next byte to be consumed.
func (l *Lexer) pos() Position { return l.track.current() }

// peek returns the byte n ahead of the cursor, or 0 at EOF.
func (l *Lexer) peek(n int) byte {
	b, ok := l.src.Peek(n)
	if !ok {
		return eof
	}
	return b
}

// peekOK is like peek but also reports whether a byte exists.
func (l *Lexer) peekOK(n int) (byte, bool) {
	return l.src.Peek(n)
}

// advance consumes and returns the next byte (0 at EOF), updating position.
func (l *Lexer) advance() byte {
	b, ok := l.src.Advance()
	if !ok {
		return eof
	}
	l.track.advance(b)
	return b
}

func (l *Lexer) atEOF() bool {
	_, ok := l.src.Peek(0)
	return !ok
}

// needsFlush reports whether the span from mark to the cursor is close
// enough to the source's borrow window that it must be copied into an
// owned buffer now, before further reads could let the window scroll past
// mark and make SliceSince(mark) fail.
func (l *Lexer) needsFlush(mark int) bool {
	const safetyMargin = 64
	return l.src.Offset()-mark >= l.src.Capacity()-safetyMargin
}

// Scan produces the next Token. It first skips whitespace and comments,
// then dispatches on the first remaining byte.
func (l *Lexer) Scan() (Token, error) {
	for {
		skippedSomething, comment, err := l.skipWhitespaceAndOneComment()
		if err != nil {
			return Token{}, err
		}
		if comment != nil {
			return Token{Kind: TokComment, Start: comment.Start, End: comment.End, CommentVal: *comment}, nil
		}
		if !skippedSomething {
			break
		}
	}
	start := l.pos()

	if l.atEOF() {
		return Token{Kind: TokEOF, Start: start, End: start}, nil
	}

	b := l.peek(0)
	switch b {
	case '{':
		l.advance()
		return Token{Kind: TokObjectStart, Start: start, End: l.pos()}, nil
	case '}':
		l.advance()
		return Token{Kind: TokObjectEnd, Start: start, End: l.pos()}, nil
	case '[':
		l.advance()
		return Token{Kind: TokArrayStart, Start: start, End: l.pos()}, nil
	case ']':
		l.advance()
		return Token{Kind: TokArrayEnd, Start: start, End: l.pos()}, nil
	case ',':
		l.advance()
		return Token{Kind: TokComma, Start: start, End: l.pos()}, nil
	case ';':
		l.advance()
		return Token{Kind: TokSemicolon, Start: start, End: l.pos()}, nil
	case '=':
		l.advance()
		return Token{Kind: TokEquals, Start: start, End: l.pos()}, nil
	case ':':
		l.advance()
		return Token{Kind: TokColon, Start: start, End: l.pos()}, nil
	case '"':
		return l.scanJSONString(start)
	case '\'':
		if l.opts.AcceptSingleQuotes {
			return l.scanSingleQuotedString(start)
		}
		l.advance()
		return Token{}, l.annotate(newError(ErrUnexpectedByte, start, "single-quoted strings are disabled"))
	case '<':
		if l.peek(1) == '<' && isHeredocTagStart(l.peek(2)) {
			return l.scanHeredoc(start)
		}
	}

	if isDigitByte(b) || ((b == '+' || b == '-') && (isDigitByte(l.peek(1)) || (l.peek(1) == '.' && isDigitByte(l.peek(2))))) {
		return l.scanNumber(start)
	}

	// '-' followed by a key-start byte is lexed as a bare word so that
	// "-inf"/"-infinity" fold to special floats; isKeyStart doesn't admit '-'
	// for ordinary keys.
	if b == '-' && isKeyStart(l.peek(1)) {
		return l.scanBareWord(start)
	}

	if isKeyStart(b) {
		return l.scanBareWord(start)
	}

	l.advance()
	return Token{}, l.annotate(newError(ErrUnexpectedByte, start, "unexpected byte "+quoteByte(b)))
}

func isHeredocTagStart(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func quoteByte(b byte) string {
	if b == eof {
		return "EOF"
	}
	return "'" + string(rune(b)) + "'"
}

// annotate attaches a source excerpt to err, built from the bytes already
// consumed on the current line plus whatever remains of it still available
// to peek. This never forces an owned copy of bytes the lexer hasn't looked
// at.
func (l *Lexer) annotate(err *Error) *Error {
	before, _ := l.src.SliceSince(l.track.lineStartOffset())
	var after []byte
	for n := 0; ; n++ {
		b, ok := l.peekOK(n)
		if !ok || b == '\n' || b == '\r' {
			break
		}
		after = append(after, b)
	}
	line := string(before) + string(after)
	caret := err.Position.Column - 1
	if caret < 0 {
		caret = 0
	}
	err.Context = &ContextLine{Text: line, Caret: caret}
	return err
}

// skipWhitespaceAndOneComment recognizes the three comment forms ('#' and
// (optionally) '//' to end of line, and nesting '/* ... */'). It consumes a
// run of whitespace and, if a comment follows, either returns it (when
// PreserveComments is set, so Scan can surface a TokComment token) or
// consumes it silently and reports that progress was made so the caller
// keeps looping.
func (l *Lexer) skipWhitespaceAndOneComment() (advanced bool, comment *Comment, err error) {
	sawWhitespace := false
	for {
		b, ok := l.peekOK(0)
		if !ok {
			return sawWhitespace, nil, nil
		}
		if isWhitespace(b) || b == '\n' || b == '\r' {
			l.advance()
			sawWhitespace = true
			continue
		}
		if b == '#' {
			c := l.readLineComment(CommentHash, 1)
			return true, l.maybeEmit(c), nil
		}
		if b == '/' && l.peek(1) == '/' && l.opts.AcceptCppComments {
			c := l.readLineComment(CommentCpp, 2)
			return true, l.maybeEmit(c), nil
		}
		if b == '/' && l.peek(1) == '*' {
			c, err := l.readBlockComment()
			if err != nil {
				return true, nil, err
			}
			return true, l.maybeEmit(c), nil
		}
		return sawWhitespace, nil, nil
	}
}

// maybeEmit returns c when PreserveComments is enabled, else nil (the
// comment was still consumed from the source either way).
func (l *Lexer) maybeEmit(c Comment) *Comment {
	if !l.opts.PreserveComments {
		return nil
	}
	return &c
}

// readLineComment consumes a '#' or '//' comment through end of line,
// capturing its text (prefix excluded) for preserve_comments.
func (l *Lexer) readLineComment(kind CommentKind, prefixLen int) Comment {
	start := l.pos()
	for i := 0; i < prefixLen; i++ {
		l.advance()
	}
	var text []byte
	for {
		b, ok := l.peekOK(0)
		if !ok || b == '\n' || b == '\r' {
			break
		}
		text = append(text, b)
		l.advance()
	}
	return Comment{Text: string(text), Kind: kind, Start: start, End: l.pos()}
}

// readBlockComment implements nested '/*' ... '*/' block comments; nesting
// is tracked with a depth counter, not a regex.
func (l *Lexer) readBlockComment() (Comment, error) {
	start := l.pos()
	depth := 0
	l.advance() // '/'
	l.advance() // '*'
	depth++
	var text []byte
	for depth > 0 {
		b, ok := l.peekOK(0)
		if !ok {
			return Comment{}, l.annotate(newError(ErrUnterminatedComment, start, "unterminated block comment"))
		}
		if b == '/' && l.peek(1) == '*' {
			text = append(text, '/', '*')
			l.advance()
			l.advance()
			depth++
			continue
		}
		if b == '*' && l.peek(1) == '/' {
			l.advance()
			l.advance()
			depth--
			if depth == 0 {
				break
			}
			text = append(text, '*', '/')
			continue
		}
		text = append(text, b)
		l.advance()
	}
	return Comment{Text: string(text), Kind: CommentMulti, Start: start, End: l.pos()}, nil
}

// foldKeyword performs Unicode-correct case folding for keyword/suffix
// matching, using golang.org/x/text/cases rather than hand-rolled ASCII case
// arithmetic.
func (l *Lexer) foldKeyword(s string) string {
	return l.folder.String(s)
}
