package ucl

import "github.com/goucl/ucl/value"

// TokenKind enumerates the Token sum type. Modeled in spirit on sqldef's
// integer token constants (Scan returns int token kinds), but spelled as a
// proper Go enum since this package does not sit behind a goyacc grammar.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokObjectStart
	TokObjectEnd
	TokArrayStart
	TokArrayEnd
	TokComma
	TokSemicolon
	TokEquals
	TokColon
	TokIdentifier
	TokString
	TokInteger
	TokFloat
	TokTime
	TokSizedInteger
	TokHexInteger
	TokBoolean
	TokNull
	TokSpecialFloat
	TokComment
)

//go:generate stringer -type=TokenKind
func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "EOF"
	case TokObjectStart:
		return "'{'"
	case TokObjectEnd:
		return "'}'"
	case TokArrayStart:
		return "'['"
	case TokArrayEnd:
		return "']'"
	case TokComma:
		return "','"
	case TokSemicolon:
		return "';'"
	case TokEquals:
		return "'='"
	case TokColon:
		return "':'"
	case TokIdentifier:
		return "identifier"
	case TokString:
		return "string"
	case TokInteger:
		return "integer"
	case TokFloat:
		return "float"
	case TokTime:
		return "time value"
	case TokSizedInteger:
		return "sized integer"
	case TokHexInteger:
		return "hex integer"
	case TokBoolean:
		return "boolean"
	case TokNull:
		return "null"
	case TokSpecialFloat:
		return "special float"
	case TokComment:
		return "comment"
	default:
		return "unknown token"
	}
}

// StringFormat distinguishes the three string lexing modes.
type StringFormat int

const (
	StringJSON StringFormat = iota
	StringSingle
	StringHeredoc
)

// CommentKind enumerates the three accepted comment forms.
type CommentKind int

const (
	CommentHash CommentKind = iota
	CommentCpp
	CommentMulti
)

// Comment is kept on the lexer only when preserve_comments is enabled.
type Comment struct {
	Text  string
	Kind  CommentKind
	Start Position
	End   Position
}

// Token is the lexer's unit of output. Only the fields relevant to Kind are
// meaningful; this mirrors a tagged union with a flat Go struct, the
// representation sqldef's own token stream uses implicitly (an int kind plus
// a single []byte payload from Scan) generalized to UCL's richer per-kind
// payloads.
type Token struct {
	Kind  TokenKind
	Start Position
	End   Position

	// Identifier / bare word payload.
	Ident string

	// String payload.
	Str          value.COWString
	StringFormat StringFormat
	Interpolated bool

	// Numeric payloads; only the one matching Kind is populated, except that
	// SizedInteger and HexInteger set both Int and UInt.
	Int   int64
	Float float64
	UInt  uint64 // SizedInteger (bytes) or HexInteger

	Bool bool

	// Comment payload, set only when Kind == TokComment.
	CommentVal Comment
}

// COWString is defined in package value (value.COWString) so both this
// package and value can share the representation without an import cycle;
// Token.Str uses it directly.
