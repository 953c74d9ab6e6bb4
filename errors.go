package ucl

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/term"
)

// Kind enumerates the error taxonomy. Modeled on sqldef's KeywordString-style
// int->string lookup, but as a proper error-kind enum since this module has
// no yacc error codes to reuse.
type Kind int

const (
	// Lex errors.
	ErrUnterminatedString Kind = iota
	ErrUnterminatedHeredoc
	ErrUnterminatedComment
	ErrInvalidEscape
	ErrInvalidUnicodeEscape
	ErrInvalidNumber
	ErrUnknownSuffix
	ErrUnexpectedByte
	ErrInvalidUTF8
	ErrInputTooLarge

	// Parse errors.
	ErrUnexpectedToken
	ErrDuplicateKey
	ErrUnclosedContainer
	ErrDepthExceeded
	ErrEmptyKey

	// Variable errors.
	ErrUnresolvedVariable
	ErrCircularReference
	ErrMaxExpansionDepth

	// Hook errors.
	ErrValidation
	ErrPostProcess
)

func (k Kind) String() string {
	switch k {
	case ErrUnterminatedString:
		return "UnterminatedString"
	case ErrUnterminatedHeredoc:
		return "UnterminatedHeredoc"
	case ErrUnterminatedComment:
		return "UnterminatedComment"
	case ErrInvalidEscape:
		return "InvalidEscape"
	case ErrInvalidUnicodeEscape:
		return "InvalidUnicodeEscape"
	case ErrInvalidNumber:
		return "InvalidNumber"
	case ErrUnknownSuffix:
		return "UnknownSuffix"
	case ErrUnexpectedByte:
		return "UnexpectedByte"
	case ErrInvalidUTF8:
		return "InvalidUtf8"
	case ErrInputTooLarge:
		return "InputTooLarge"
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrDuplicateKey:
		return "DuplicateKey"
	case ErrUnclosedContainer:
		return "UnclosedContainer"
	case ErrDepthExceeded:
		return "DepthExceeded"
	case ErrEmptyKey:
		return "EmptyKey"
	case ErrUnresolvedVariable:
		return "UnresolvedVariable"
	case ErrCircularReference:
		return "CircularReference"
	case ErrMaxExpansionDepth:
		return "MaxExpansionDepth"
	case ErrValidation:
		return "Validation"
	case ErrPostProcess:
		return "PostProcess"
	default:
		return "Unknown"
	}
}

// ContextLine is the optional source excerpt carried by an Error: an excerpt
// of the offending line with a caret under the error column.
type ContextLine struct {
	Text   string
	Caret  int // 0-based column into Text where the caret is drawn
}

// Error is the tagged error type carried across the whole pipeline. It
// always has a Kind and Position; Context and a wrapped cause are optional.
// Message is the kind-specific detail text (e.g. the offending suffix, the
// expected token set).
type Error struct {
	Kind     Kind
	Position Position
	Message  string
	Context  *ContextLine
	While    string // "while parsing heredoc started at 12:5", etc.
	cause    error
}

func (e *Error) Error() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s: %s: %s", e.Position, e.Kind, e.Message)
	if e.While != "" {
		fmt.Fprintf(&b, " (%s)", e.While)
	}
	if e.Context != nil {
		fmt.Fprintf(&b, "\n%s\n%s^", e.Context.Text, spaces(e.Context.Caret))
	}
	return b.String()
}

// Unwrap exposes a wrapped hook/validation cause for errors.As/errors.Is,
// matching sqldef's fmt.Errorf("...: %w", err) idiom.
func (e *Error) Unwrap() error { return e.cause }

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return string(bytes.Repeat([]byte{' '}, n))
}

// newError builds a bare *Error.
func newError(kind Kind, pos Position, msg string) *Error {
	return &Error{Kind: kind, Position: pos, Message: msg}
}

// withContext attaches a ContextLine built from the full source and the
// error's own position.
func (e *Error) withContext(source []byte) *Error {
	line, caret := extractContextLine(source, e.Position)
	e.Context = &ContextLine{Text: line, Caret: caret}
	return e
}

// withWhile annotates the error with the name of the enclosing construct,
// e.g. "while parsing heredoc started at 12:5".
func (e *Error) withWhile(while string) *Error {
	e.While = while
	return e
}

// withCause wraps an underlying error (used by hook errors).
func (e *Error) withCause(cause error) *Error {
	e.cause = cause
	return e
}

// extractContextLine finds the source line containing pos and a 0-based
// caret offset into it.
func extractContextLine(source []byte, pos Position) (string, int) {
	lineStart := 0
	line := 1
	for i := 0; i < len(source) && line < pos.Line; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := lineStart
	for lineEnd < len(source) && source[lineEnd] != '\n' {
		lineEnd++
	}
	text := string(source[lineStart:lineEnd])
	caret := pos.Column - 1
	if caret < 0 {
		caret = 0
	}
	return text, caret
}

// Render writes the error to w, the same text Error() returns, but with the
// caret line wrapped in ANSI bold-red SGR codes when fd refers to a
// terminal and the error has a context line. This is purely a formatting convenience on the error value
// itself; Error() never emits escape codes.
func (e *Error) Render(w io.Writer, fd uintptr) error {
	if e.Context == nil || !term.IsTerminal(int(fd)) {
		_, err := io.WriteString(w, e.Error()+"\n")
		return err
	}
	const (
		bold = "\x1b[1m"
		red  = "\x1b[31m"
		rst  = "\x1b[0m"
	)
	_, err := fmt.Fprintf(w, "%s: %s: %s%s\n%s\n%s%s^%s\n",
		e.Position, e.Kind, e.Message,
		whileSuffix(e.While),
		e.Context.Text,
		bold+red, spaces(e.Context.Caret), rst)
	return err
}

func whileSuffix(while string) string {
	if while == "" {
		return ""
	}
	return " (" + while + ")"
}
