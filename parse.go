package ucl

import "io"

// Parse lexes and parses src in one call, returning the root ValueTree or
// the first error encountered. src is borrowed for the lifetime of any
// COWString the result holds onto in Borrowed mode; call
// (*value.Value).Materialize() on the result if src will be reused or freed.
func Parse(src []byte, opts Options) (*Value, error) {
	if opts.MaxInputBytes > 0 && int64(len(src)) > opts.MaxInputBytes {
		return nil, newError(ErrInputTooLarge, Position{Line: 1, Column: 1}, "input exceeds max_input_bytes")
	}
	lex := NewLexer(NewSliceSource(src), opts)
	ts := NewTokenStream(lex)
	p := NewParser(ts, opts)
	return p.Parse()
}

// ParseReader is like Parse but reads incrementally from r via the bounded
// ring-buffer Source, for inputs too large or inconvenient to buffer fully
// in memory up front.
func ParseReader(r io.Reader, opts Options) (*Value, error) {
	lex := NewLexer(NewReaderSource(r), opts)
	ts := NewTokenStream(lex)
	p := NewParser(ts, opts)
	return p.Parse()
}
