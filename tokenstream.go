package ucl

// TokenStream is a one-token look-ahead buffer over a Lexer, with a small
// stash for the rare two-token look-ahead the parser needs to disambiguate a
// nested implicit section head. Modeled on sqldef's Tokenizer.Scan() being
// called token-by-token by a hand-written recursive-descent caller in the
// same style (its Lex method feeds a goyacc parser one token at a time);
// here the buffering is made explicit instead of living inside a generated
// parser.
type TokenStream struct {
	lex *Lexer

	cur    Token
	curSet bool

	stash    []Token
	comments []Comment
}

// NewTokenStream wraps a Lexer in a one-token look-ahead buffer.
func NewTokenStream(lex *Lexer) *TokenStream {
	return &TokenStream{lex: lex}
}

// Peek returns the current token (stream position 0) without consuming it.
func (ts *TokenStream) Peek() (Token, error) {
	if !ts.curSet {
		if err := ts.fill(); err != nil {
			return Token{}, err
		}
	}
	return ts.cur, nil
}

// Next returns the current token and advances the stream: the front of the
// stash (if any) becomes the new current token, else the lexer is consulted
// again on the next Peek/Next.
func (ts *TokenStream) Next() (Token, error) {
	if !ts.curSet {
		if err := ts.fill(); err != nil {
			return Token{}, err
		}
	}
	t := ts.cur
	if len(ts.stash) > 0 {
		ts.cur = ts.stash[0]
		ts.stash = ts.stash[1:]
		ts.curSet = true
	} else {
		ts.curSet = false
	}
	return t, nil
}

// PeekSecond returns the token after the current one (stream position 1)
// without consuming either, pulling one extra token from the lexer into the
// stash if needed. This is the only place the parser needs two-token
// look-ahead: disambiguating a nested implicit section head.
func (ts *TokenStream) PeekSecond() (Token, error) {
	if _, err := ts.Peek(); err != nil {
		return Token{}, err
	}
	if len(ts.stash) >= 1 {
		return ts.stash[0], nil
	}
	tok, c, err := ts.scanSkippingComments()
	if err != nil {
		return Token{}, err
	}
	ts.comments = append(ts.comments, c...)
	ts.stash = append(ts.stash, tok)
	return tok, nil
}

// fill pulls the next non-comment token from the lexer into ts.cur.
func (ts *TokenStream) fill() error {
	tok, comments, err := ts.scanSkippingComments()
	if err != nil {
		return err
	}
	ts.comments = append(ts.comments, comments...)
	ts.cur = tok
	ts.curSet = true
	return nil
}

// scanSkippingComments calls the lexer until it produces a non-comment
// token, collecting any comments seen along the way (only emitted as
// TokComment tokens when preserve_comments is set; see Lexer.Scan).
func (ts *TokenStream) scanSkippingComments() (Token, []Comment, error) {
	var comments []Comment
	for {
		tok, err := ts.lex.Scan()
		if err != nil {
			return Token{}, comments, err
		}
		if tok.Kind == TokComment {
			comments = append(comments, tok.CommentVal)
			continue
		}
		return tok, comments, nil
	}
}

// Comments returns every comment collected so far, in source order. Only
// meaningful when Options.PreserveComments is set.
func (ts *TokenStream) Comments() []Comment {
	return ts.comments
}
