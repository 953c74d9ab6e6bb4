package ucl

import (
	"github.com/goucl/ucl/expand"
	"github.com/goucl/ucl/hooks"
	"github.com/goucl/ucl/value"
)

// Parser is a recursive-descent parser over a TokenStream: implicit top-level
// objects, implicit and nested-implicit sections, auto-array promotion, and
// variable expansion at the point a string value is inserted into the tree
// (where the current key path is known). Modeled on sqldef's hand-written
// recursive-descent expression parser (the parseExpr/parseValueList family),
// generalized from a fixed SQL grammar to UCL's object/array/section grammar.
type Parser struct {
	ts   *TokenStream
	opts Options
	hook *HookSet

	depth int
}

// NewParser builds a Parser over ts using opts.
func NewParser(ts *TokenStream, opts Options) *Parser {
	h := opts.Hooks
	if h == nil {
		h = hooks.NewRegistry()
	}
	if !h.Sealed() {
		h.Seal()
	}
	return &Parser{ts: ts, opts: opts, hook: h}
}

// Parse runs the parser to completion, returning the root ValueTree.
func (p *Parser) Parse() (*value.Value, error) {
	tok, err := p.ts.Peek()
	if err != nil {
		return nil, err
	}
	var root *value.Value
	switch tok.Kind {
	case TokObjectStart:
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		root, err = p.parseObjectBody(tok.Start, nil)
	case TokArrayStart:
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		root, err = p.parseArrayBody(tok.Start, nil)
	default:
		root, err = p.parseImplicitTopLevel(nil)
	}
	if err != nil {
		return nil, err
	}
	return p.validateTree(root, nil)
}

// parseImplicitTopLevel reads key-value pairs until EOF; this is the
// fallback when the document starts with neither '{' nor '['.
func (p *Parser) parseImplicitTopLevel(path []string) (*value.Value, error) {
	obj := value.NewObject()
	for {
		p.skipSeparators()
		tok, err := p.ts.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokEOF {
			return obj, nil
		}
		if err := p.parseKV(obj, path); err != nil {
			return nil, err
		}
	}
}

// skipSeparators consumes any run of optional `,`/`;` pair terminators;
// both are permitted between key-value pairs and both are optional.
func (p *Parser) skipSeparators() {
	for {
		tok, err := p.ts.Peek()
		if err != nil || (tok.Kind != TokComma && tok.Kind != TokSemicolon) {
			return
		}
		_, _ = p.ts.Next()
	}
}

// parseKV parses one "key <sep> value" pair, including the nested-implicit-
// section-head and bare-container shorthand forms.
func (p *Parser) parseKV(into *value.Value, path []string) error {
	keyTok, err := p.ts.Next()
	if err != nil {
		return err
	}
	key, err := p.tokenAsKey(keyTok)
	if err != nil {
		return err
	}
	if key == "" {
		return p.errAt(ErrEmptyKey, keyTok.Start, "object key must not be empty")
	}
	childPath := append(append([]string{}, path...), key)

	next, err := p.ts.Peek()
	if err != nil {
		return err
	}

	var val *value.Value
	switch {
	case next.Kind == TokEquals || next.Kind == TokColon:
		if _, err := p.ts.Next(); err != nil {
			return err
		}
		val, err = p.parseValue(childPath)
		if err != nil {
			return err
		}
	case next.Kind == TokObjectStart:
		if _, err := p.ts.Next(); err != nil {
			return err
		}
		if err := p.enterContainer(next.Start); err != nil {
			return err
		}
		val, err = p.parseObjectBody(next.Start, childPath)
		p.exitContainer()
		if err != nil {
			return err
		}
	case (next.Kind == TokIdentifier || next.Kind == TokString) && p.secondIsObjectStart():
		second, err := p.ts.Next()
		if err != nil {
			return err
		}
		secondKey, err := p.tokenAsKey(second)
		if err != nil {
			return err
		}
		brace, err := p.ts.Next() // '{'
		if err != nil {
			return err
		}
		if err := p.enterContainer(brace.Start); err != nil {
			return err
		}
		inner, err := p.parseObjectBody(brace.Start, append(childPath, secondKey))
		p.exitContainer()
		if err != nil {
			return err
		}
		wrapped := value.NewObject()
		_ = wrapped.Object.Insert(secondKey, inner, p.opts.DuplicateKeys)
		val = wrapped
	case isValueStart(next.Kind):
		val, err = p.parseValue(childPath)
		if err != nil {
			return err
		}
	default:
		return p.errAt(ErrUnexpectedToken, next.Start, "unexpected "+next.Kind.String()+" in key-value pair")
	}

	if err := into.Object.Insert(key, val, p.opts.DuplicateKeys); err != nil {
		return p.errAt(ErrDuplicateKey, keyTok.Start, err.Error())
	}

	p.skipSeparators()
	return nil
}

// secondIsObjectStart implements the two-token look-ahead for nested
// implicit sections, e.g. "upstream backend { ... }".
func (p *Parser) secondIsObjectStart() bool {
	second, err := p.ts.PeekSecond()
	if err != nil {
		return false
	}
	return second.Kind == TokObjectStart
}

// parseValue parses a single value in value position: container, string,
// number, boolean, or null.
func (p *Parser) parseValue(path []string) (*value.Value, error) {
	tok, err := p.ts.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokArrayStart:
		if err := p.enterContainer(tok.Start); err != nil {
			return nil, err
		}
		v, err := p.parseArrayBody(tok.Start, path)
		p.exitContainer()
		return v, err
	case TokObjectStart:
		if err := p.enterContainer(tok.Start); err != nil {
			return nil, err
		}
		v, err := p.parseObjectBody(tok.Start, path)
		p.exitContainer()
		return v, err
	case TokString:
		return p.expandStringToken(tok, path)
	case TokIdentifier:
		return p.expandStringToken(tok, path)
	case TokInteger:
		return value.Integer(tok.Int), nil
	case TokFloat, TokTime, TokSpecialFloat:
		return value.Float(tok.Float), nil
	case TokSizedInteger, TokHexInteger:
		return value.Integer(tok.Int), nil
	case TokBoolean:
		return value.Bool(tok.Bool), nil
	case TokNull:
		return value.Null(), nil
	default:
		return nil, p.errAt(ErrUnexpectedToken, tok.Start, "unexpected "+tok.Kind.String()+" in value position")
	}
}

// expandStringToken applies variable expansion to a string/identifier
// token's content, at the point the value is about to be inserted into the
// tree, since only here is the current key path known to the resolver
// context. A token the lexer never marked Interpolated never pays for an
// Expand round trip: it still runs through PostProcessString (cheap, hooks
// are usually empty) but Expand is skipped.
func (p *Parser) expandStringToken(tok Token, path []string) (*value.Value, error) {
	raw := tok.Str.String()
	s := raw
	if tok.Interpolated && p.opts.VariableExpansion {
		expanded, err := expand.Expand(raw, path, p.resolverFor(path))
		if err != nil {
			return nil, p.wrapExpandErr(err, tok.Start)
		}
		s = expanded
	}
	processed, err := p.hook.PostProcessString(s, hooks.Context{Path: path, Position: toHookPosition(tok.Start)})
	if err != nil {
		return nil, p.errAt(ErrPostProcess, tok.Start, err.Error()).withCause(err)
	}
	return value.StringFrom(processed), nil
}

func (p *Parser) resolverFor(path []string) expand.Resolver {
	return func(name string, varPath []string) (string, bool) {
		return p.hook.ResolveVariable(name, hooks.Context{Path: varPath})
	}
}

func (p *Parser) wrapExpandErr(err error, pos Position) *Error {
	if ee, ok := err.(*expand.Error); ok {
		switch ee.Kind {
		case expand.KindCircular:
			return p.errAt(ErrCircularReference, pos, "circular reference resolving "+ee.Name)
		case expand.KindMaxDepth:
			return p.errAt(ErrMaxExpansionDepth, pos, "maximum expansion depth exceeded resolving "+ee.Name)
		default:
			return p.errAt(ErrUnresolvedVariable, pos, "unresolved variable "+ee.Name)
		}
	}
	return p.errAt(ErrUnresolvedVariable, pos, err.Error())
}

// parseObjectBody parses key-value pairs up to a closing '}'; caller has
// already consumed the '{'.
func (p *Parser) parseObjectBody(openedAt Position, path []string) (*value.Value, error) {
	obj := value.NewObject()
	for {
		p.skipSeparators()
		tok, err := p.ts.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokObjectEnd {
			_, _ = p.ts.Next()
			return obj, nil
		}
		if tok.Kind == TokEOF {
			return nil, p.errAt(ErrUnclosedContainer, openedAt, "unclosed object").withWhile("while parsing object opened at " + openedAt.String())
		}
		if err := p.parseKV(obj, path); err != nil {
			return nil, err
		}
	}
}

// parseArrayBody parses comma/semicolon-separated values up to a closing
// ']'; caller has already consumed the '['.
func (p *Parser) parseArrayBody(openedAt Position, path []string) (*value.Value, error) {
	arr := value.NewArray()
	for {
		p.skipSeparators()
		tok, err := p.ts.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokArrayEnd {
			_, _ = p.ts.Next()
			return arr, nil
		}
		if tok.Kind == TokEOF {
			return nil, p.errAt(ErrUnclosedContainer, openedAt, "unclosed array").withWhile("while parsing array opened at " + openedAt.String())
		}
		elem, err := p.parseValue(path)
		if err != nil {
			return nil, err
		}
		arr.AppendArray(elem)
	}
}

// validateTree runs the validation hook chain top-down over every scalar and
// key in the tree after a full parse.
func (p *Parser) validateTree(v *value.Value, path []string) (*value.Value, error) {
	var outerErr error
	err := v.Walk(func(walkPath []string, node *value.Value) error {
		rewritten, err := p.hook.Validate(node, hooks.Context{Path: walkPath})
		if err != nil {
			return err
		}
		*node = *rewritten
		return nil
	})
	if err != nil {
		outerErr = p.errAt(ErrValidation, Position{Line: 1, Column: 1}, err.Error()).withCause(err)
		return nil, outerErr
	}
	return v, nil
}

func (p *Parser) tokenAsKey(tok Token) (string, error) {
	switch tok.Kind {
	case TokIdentifier:
		return tok.Ident, nil
	case TokString:
		return tok.Str.String(), nil
	default:
		return "", p.errAt(ErrUnexpectedToken, tok.Start, "expected key, found "+tok.Kind.String())
	}
}

func isValueStart(k TokenKind) bool {
	switch k {
	case TokString, TokInteger, TokFloat, TokTime, TokSizedInteger, TokHexInteger,
		TokBoolean, TokNull, TokSpecialFloat, TokArrayStart, TokIdentifier:
		return true
	default:
		return false
	}
}

// enterContainer tracks nesting depth against Options.MaxDepth.
func (p *Parser) enterContainer(openedAt Position) error {
	p.depth++
	if p.opts.MaxDepth > 0 && p.depth > p.opts.MaxDepth {
		return p.errAt(ErrDepthExceeded, openedAt, "maximum nesting depth exceeded")
	}
	return nil
}

func (p *Parser) exitContainer() { p.depth-- }

func (p *Parser) errAt(kind Kind, pos Position, msg string) *Error {
	return newError(kind, pos, msg)
}

func toHookPosition(pos Position) hooks.Position {
	return hooks.Position{Line: pos.Line, Column: pos.Column, Offset: pos.Offset}
}
