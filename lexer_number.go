package ucl

import (
	"strconv"
)

// scanNumber handles an optional sign, hex/octal/binary/decimal mantissa,
// optional exponent, then a trailing alphabetic suffix resolved against the
// built-in size/time tables or the number-suffix hook chain. Modeled on
// sqldef's own numeric literal scanner, generalized from SQL's plain
// decimal/exponent literals to UCL's hex/octal/binary bases and suffix
// system.
func (l *Lexer) scanNumber(start Position) (Token, error) {
	mark := l.src.Mark()

	if b := l.peek(0); b == '+' || b == '-' {
		l.advance()
	}

	if l.peek(0) == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') {
		return l.scanRadixInteger(start, 16, isHexDigit)
	}
	if l.peek(0) == '0' && (l.peek(1) == 'o' || l.peek(1) == 'O') {
		return l.scanRadixInteger(start, 8, func(b byte) bool { return b >= '0' && b <= '7' })
	}
	if l.peek(0) == '0' && (l.peek(1) == 'b' || l.peek(1) == 'B') {
		return l.scanRadixInteger(start, 2, func(b byte) bool { return b == '0' || b == '1' })
	}

	isFloat := false
	for isDigitByte(l.peek(0)) {
		l.advance()
	}
	if l.peek(0) == '.' && isDigitByte(l.peek(1)) {
		isFloat = true
		l.advance()
		for isDigitByte(l.peek(0)) {
			l.advance()
		}
	}
	if b := l.peek(0); b == 'e' || b == 'E' {
		if isDigitByte(l.peek(1)) || ((l.peek(1) == '+' || l.peek(1) == '-') && isDigitByte(l.peek(2))) {
			isFloat = true
			l.advance()
			if l.peek(0) == '+' || l.peek(0) == '-' {
				l.advance()
			}
			for isDigitByte(l.peek(0)) {
				l.advance()
			}
		}
	}

	mantissa, ok := l.src.SliceSince(mark)
	if !ok {
		return Token{}, l.annotate(newError(ErrInvalidNumber, start, "numeric literal exceeded the source look-ahead window"))
	}
	literal := string(mantissa)

	suffix, suffixStart := l.readSuffix()

	if suffix != "" {
		if mult, ok := resolveBuiltinSizeSuffix(suffix); ok {
			return l.finishSizedNumber(start, literal, mult, isFloat)
		}
		if secs, ok := resolveBuiltinTimeSuffix(suffix); ok {
			return l.finishTimeNumber(start, literal, secs)
		}
		if mult, ok := l.hooks.ResolveSuffix(suffix); ok {
			return l.finishSizedNumber(start, literal, mult, isFloat)
		}
		return Token{}, l.annotate(newError(ErrUnknownSuffix, suffixStart, "unknown numeric suffix "+strconv.Quote(suffix)))
	}

	if isFloat {
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return Token{}, l.annotate(newError(ErrInvalidNumber, start, "invalid float literal "+strconv.Quote(literal)))
		}
		return Token{Kind: TokFloat, Start: start, End: l.pos(), Float: f}, nil
	}
	i, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(literal, 64)
		if ferr != nil {
			return Token{}, l.annotate(newError(ErrInvalidNumber, start, "invalid integer literal "+strconv.Quote(literal)))
		}
		return Token{Kind: TokFloat, Start: start, End: l.pos(), Float: f}, nil
	}
	return Token{Kind: TokInteger, Start: start, End: l.pos(), Int: i}, nil
}

// scanRadixInteger handles the 0x/0o/0b prefixed integer forms, which never
// take a fractional part or exponent.
func (l *Lexer) scanRadixInteger(start Position, radix int, digitOK func(byte) bool) (Token, error) {
	mark := l.src.Mark()
	l.advance() // '0'
	l.advance() // x/o/b
	digitsStart := l.src.Mark()
	for digitOK(l.peek(0)) {
		l.advance()
	}
	digits, ok := l.src.SliceSince(digitsStart)
	if !ok {
		return Token{}, l.annotate(newError(ErrInvalidNumber, start, "numeric literal exceeded the source look-ahead window"))
	}
	if len(digits) == 0 {
		return Token{}, l.annotate(newError(ErrInvalidNumber, start, "numeric literal has no digits"))
	}
	full, ok := l.src.SliceSince(mark)
	if !ok {
		return Token{}, l.annotate(newError(ErrInvalidNumber, start, "numeric literal exceeded the source look-ahead window"))
	}
	u, err := strconv.ParseUint(string(digits), radix, 64)
	if err != nil {
		return Token{}, l.annotate(newError(ErrInvalidNumber, start, "invalid radix literal "+strconv.Quote(string(full))))
	}
	return Token{Kind: TokHexInteger, Start: start, End: l.pos(), UInt: u, Int: int64(u)}, nil
}

// readSuffix consumes up to 4 trailing alphabetic bytes and lowercases them
// for table lookup.
func (l *Lexer) readSuffix() (string, Position) {
	suffixStart := l.pos()
	mark := l.src.Mark()
	n := 0
	for n < 4 {
		b := l.peek(0)
		if !((b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')) {
			break
		}
		l.advance()
		n++
	}
	raw, _ := l.src.SliceSince(mark)
	return l.foldKeyword(string(raw)), suffixStart
}

func resolveBuiltinSizeSuffix(suffix string) (float64, bool) {
	switch suffix {
	case "b", "bytes":
		return 1, true
	case "kb":
		return 1024, true
	case "mb":
		return 1024 * 1024, true
	case "gb":
		return 1024 * 1024 * 1024, true
	case "tb":
		return 1024 * 1024 * 1024 * 1024, true
	case "k":
		return 1e3, true
	case "m":
		return 1e6, true
	case "g":
		return 1e9, true
	case "t":
		return 1e12, true
	case "mbps":
		return 1e6, true
	default:
		return 0, false
	}
}

func resolveBuiltinTimeSuffix(suffix string) (float64, bool) {
	switch suffix {
	case "ms":
		return 0.001, true
	case "s":
		return 1, true
	case "min":
		return 60, true
	case "h":
		return 3600, true
	case "d":
		return 86400, true
	case "w":
		return 604800, true
	case "y":
		return 31536000, true
	default:
		return 0, false
	}
}

// finishSizedNumber applies a size-suffix multiplier, producing a
// SizedInteger (or widening to float if the mantissa itself was a float or
// the multiplied result overflows int64).
func (l *Lexer) finishSizedNumber(start Position, literal string, mult float64, wasFloat bool) (Token, error) {
	if wasFloat {
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return Token{}, l.annotate(newError(ErrInvalidNumber, start, "invalid numeric literal "+strconv.Quote(literal)))
		}
		return Token{Kind: TokFloat, Start: start, End: l.pos(), Float: f * mult}, nil
	}
	i, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return Token{}, l.annotate(newError(ErrInvalidNumber, start, "invalid numeric literal "+strconv.Quote(literal)))
	}
	scaled := float64(i) * mult
	if scaled > 1<<63-1 || scaled < -(1<<63) {
		return Token{Kind: TokFloat, Start: start, End: l.pos(), Float: scaled}, nil
	}
	return Token{Kind: TokSizedInteger, Start: start, End: l.pos(), UInt: uint64(int64(scaled)), Int: int64(scaled)}, nil
}

// finishTimeNumber applies a time-suffix multiplier, always producing a
// Time value in (possibly fractional) seconds.
func (l *Lexer) finishTimeNumber(start Position, literal string, secsPerUnit float64) (Token, error) {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return Token{}, l.annotate(newError(ErrInvalidNumber, start, "invalid numeric literal "+strconv.Quote(literal)))
	}
	return Token{Kind: TokTime, Start: start, End: l.pos(), Float: f * secsPerUnit}, nil
}
