// Package builtin supplies concrete hook implementations beyond the
// lexer's own size/time suffix tables: environment-variable resolution, an
// extra duration-suffix alias, and a belt-and-suspenders empty-key
// validator. None of these are required by the core grammar; they exist to
// exercise the hook-pipeline extension points end to end, the way sqldef's
// dialect-specific helpers (its per-dialect reserved word sets) exist to
// exercise ParserMode rather than the grammar itself.
package builtin

import (
	"os"
	"strings"

	"github.com/goucl/ucl/hooks"
	"github.com/goucl/ucl/value"
)

// EnvVarResolver is a hooks.VariableHandler resolving `$NAME`/`${NAME}`
// against the process environment, the single most common variable source
// in NGINX-style configs.
func EnvVarResolver(name string, _ hooks.Context) (string, bool) {
	return os.LookupEnv(name)
}

// DurationSuffixHandler is a hooks.NumberSuffixHandler recognizing a small
// set of duration-suffix aliases the lexer's built-in table doesn't: "wk" as
// an alias for "w" (weeks), "sec" for "s", "hr" for "h".
func DurationSuffixHandler(suffix string) (float64, bool) {
	switch strings.ToLower(suffix) {
	case "wk":
		return 604800, true
	case "sec":
		return 1, true
	case "hr":
		return 3600, true
	default:
		return 0, false
	}
}

// NoEmptyKeyValidator is a hooks.ValidationHook rejecting empty-string
// object keys, companion to the parser's own EmptyKey parse error: the
// parser already rejects an empty key token outright, but a value tree
// assembled by some other path (e.g. programmatic construction before
// validation) gets the same guarantee if this hook is registered.
func NoEmptyKeyValidator(v *value.Value, ctx hooks.Context) (*value.Value, bool, error) {
	if len(ctx.Path) == 0 {
		return nil, false, nil
	}
	if ctx.Path[len(ctx.Path)-1] == "" {
		return nil, false, &emptyKeyError{}
	}
	return nil, false, nil
}

type emptyKeyError struct{}

func (e *emptyKeyError) Error() string { return "object key must not be empty" }
