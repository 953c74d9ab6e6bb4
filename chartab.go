package ucl

// charFlags is a precomputed 256-entry byte->flags table, giving O(1),
// branch-light classification of every byte the lexer inspects. Modeled on
// sqldef's isLetter/isDigit helpers, generalized from SQL's letter/digit-only
// alphabet to UCL's richer bare-word/key alphabet.
type charFlags uint8

const (
	flagWhitespace charFlags = 1 << iota
	flagNewline
	flagDigit
	flagHexDigit
	flagKeyStart
	flagKeyContinue
	flagBareWord
)

var classTable [256]charFlags

func init() {
	for b := 0; b < 256; b++ {
		var f charFlags
		switch byte(b) {
		case ' ', '\t':
			f |= flagWhitespace
		case '\n':
			f |= flagNewline
		}
		if b >= '0' && b <= '9' {
			f |= flagDigit | flagHexDigit
		}
		if (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') {
			f |= flagHexDigit
		}
		isLetter := (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
		if isLetter || b == '_' || b == '/' || b == '.' {
			f |= flagKeyStart
		}
		classTable[b] = f
	}
	// KEY_CONTINUE = KEY_START ∪ digit ∪ '-'
	for b := 0; b < 256; b++ {
		f := classTable[b]
		if f&flagKeyStart != 0 || f&flagDigit != 0 || byte(b) == '-' {
			f |= flagKeyContinue
		}
		classTable[b] = f
	}
	// BARE_WORD = KEY_CONTINUE ∪ '@' ∪ ':'
	for b := 0; b < 256; b++ {
		f := classTable[b]
		if f&flagKeyContinue != 0 || byte(b) == '@' || byte(b) == ':' {
			f |= flagBareWord
		}
		classTable[b] = f
	}
}

func isWhitespace(b byte) bool  { return classTable[b]&flagWhitespace != 0 }
func isDigitByte(b byte) bool   { return classTable[b]&flagDigit != 0 }
func isHexDigit(b byte) bool    { return classTable[b]&flagHexDigit != 0 }
func isKeyStart(b byte) bool    { return classTable[b]&flagKeyStart != 0 }
func isKeyContinue(b byte) bool { return classTable[b]&flagKeyContinue != 0 }

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	default:
		return -1
	}
}
