// Package expand implements substitution of `${NAME}`, `${NAME:-default}`,
// `$NAME`, and `$$` markers inside string values, with cycle detection
// across recursively-resolved values.
//
// Modeled on sqldef's own multi-pass rewrite of string literals during
// normalization (normalize.go rewrites collation/charset strings in a
// second pass after the initial parse), generalized here from a fixed
// rewrite table to an open resolver chain with cycle detection, since
// nothing in the corpus already does variable substitution.
package expand

import (
	"strings"
)

// Resolver looks up a variable by name, given the current key path. ok is
// false when the name cannot be resolved.
type Resolver func(name string, path []string) (string, bool)

// Kind enumerates the three expansion failure modes this package reports; the
// caller (the root ucl package) maps these onto its own Kind taxonomy so a
// single Error type survives across package boundaries.
type Kind int

const (
	// KindUnresolved means a referenced variable had no resolver match and
	// no default.
	KindUnresolved Kind = iota
	// KindCircular means a variable reference formed a cycle.
	KindCircular
	// KindMaxDepth means recursive expansion exceeded MaxDepth.
	KindMaxDepth
)

// Error is returned by Expand; Name is the variable that triggered it.
type Error struct {
	Kind Kind
	Name string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindCircular:
		return "circular variable reference: " + e.Name
	case KindMaxDepth:
		return "maximum variable expansion depth exceeded resolving " + e.Name
	default:
		return "unresolved variable: " + e.Name
	}
}

// MaxDepth bounds the expansion stack.
const MaxDepth = 64

// Expand substitutes every `${NAME}`, `${NAME:-default}`, `$NAME`, and `$$`
// marker in s using resolve, recursively expanding resolved values up to
// MaxDepth, with cycle detection via a name stack.
func Expand(s string, path []string, resolve Resolver) (string, error) {
	return expandWithStack(s, path, resolve, nil)
}

func expandWithStack(s string, path []string, resolve Resolver, stack []string) (string, error) {
	if len(stack) > MaxDepth {
		return "", &Error{Kind: KindMaxDepth, Name: s}
	}

	var b strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == '$' {
			b.WriteByte('$')
			i += 2
			continue
		}
		if i+1 < len(s) && s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				// No closing brace: emit the rest verbatim, matching the
				// lexer's permissive marker capture (malformed markers are
				// a parse-time concern, not an expansion-time one).
				b.WriteString(s[i:])
				i = len(s)
				continue
			}
			inner := s[i+2 : i+2+end]
			i = i + 2 + end + 1
			name, def, hasDefault := splitNameDefault(inner)
			val, err := resolveOne(name, path, resolve, stack)
			if err != nil {
				if hasDefault {
					val = def
					err = nil
				} else {
					return "", err
				}
			}
			if val == "" && hasDefault {
				val = def
			}
			b.WriteString(val)
			continue
		}
		// Bare `$NAME`.
		j := i + 1
		for j < len(s) && isNameByte(s[j]) {
			j++
		}
		if j == i+1 {
			// Lone '$' with nothing following it that looks like a name:
			// pass through literally.
			b.WriteByte('$')
			i++
			continue
		}
		name := s[i+1 : j]
		i = j
		val, err := resolveOne(name, path, resolve, stack)
		if err != nil {
			return "", err
		}
		b.WriteString(val)
	}
	return b.String(), nil
}

func resolveOne(name string, path []string, resolve Resolver, stack []string) (string, error) {
	for _, seen := range stack {
		if seen == name {
			return "", &Error{Kind: KindCircular, Name: name}
		}
	}
	val, ok := resolve(name, path)
	if !ok {
		return "", &Error{Kind: KindUnresolved, Name: name}
	}
	return expandWithStack(val, path, resolve, append(stack, name))
}

func splitNameDefault(inner string) (name, def string, hasDefault bool) {
	if idx := strings.Index(inner, ":-"); idx >= 0 {
		return inner[:idx], inner[idx+2:], true
	}
	return inner, "", false
}

func isNameByte(b byte) bool {
	return b == '_' || b == '.' || b == '/' || b == '-' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
