// Package hooks implements a priority-ordered hook pipeline: four
// independent chains (number-suffix handlers, string post-processors,
// validation hooks, variable handlers) that plugins register at
// construction time. Modeled on sqldef's own notion of a pluggable,
// mode-switched pipeline stage (its ParserMode selecting among
// mysql/postgres/sqlite3/mssql dialect behavior at well-defined points),
// generalized here from a closed enum of dialects to an open,
// caller-extensible plugin registry.
package hooks

import (
	"log/slog"
	"sync"

	"github.com/goucl/ucl/util"
	"github.com/goucl/ucl/value"
)

// logInit ensures util.InitSlog runs at most once, the first time a
// Registry is sealed, so LOG_LEVEL is honored for the Seal/parse diagnostic
// trace below without every import of this package mutating the global
// slog default as a side effect.
var logInit sync.Once

// Context is passed to every hook invocation: the current object key-path
// and the position of the value being processed.
type Context struct {
	Path     []string
	Position Position
}

// Position avoids importing the root ucl package (which imports hooks),
// mirroring ucl.Position's three fields.
type Position struct {
	Line, Column, Offset int
}

// NumberSuffixHandler resolves a suffix the lexer's built-in size/time
// tables didn't recognize. ok is false to decline, letting lower-priority
// handlers try.
type NumberSuffixHandler func(suffix string) (multiplier float64, ok bool)

// StringPostProcessor rewrites a fully-lexed string value. Each registered
// processor runs in priority order and may rewrite the value that the next
// one sees.
type StringPostProcessor func(val string, ctx Context) (string, error)

// ValidationHook inspects a scalar or key after parsing, top-down, running
// once per scalar/key. A non-nil rewrite replaces the node; ok false means
// "no opinion, leave it".
type ValidationHook func(v *value.Value, ctx Context) (rewrite *value.Value, ok bool, err error)

// VariableHandler resolves a variable reference for the expander. ok is
// false to decline, letting the next handler in priority order try; the
// first Some wins.
type VariableHandler func(name string, ctx Context) (resolved string, ok bool)

type priorityEntry[T any] struct {
	priority int
	handler  T
}

// Registry holds the four hook chains. Plugins register handlers at
// construction time; Seal makes the registry immutable. Registration is
// one-shot: once the pipeline is sealed, it cannot be reconfigured without
// a reset.
type Registry struct {
	sealed bool

	suffixes   []priorityEntry[NumberSuffixHandler]
	postProcs  []priorityEntry[StringPostProcessor]
	validators []priorityEntry[ValidationHook]
	variables  []priorityEntry[VariableHandler]

	// resolved chains, built once at Seal time, highest priority first.
	suffixChain   []NumberSuffixHandler
	postProcChain []StringPostProcessor
	validateChain []ValidationHook
	variableChain []VariableHandler
}

// NewRegistry returns an empty, unsealed Registry.
func NewRegistry() *Registry { return &Registry{} }

func (r *Registry) mustNotBeSealed(what string) {
	if r.sealed {
		panic("hooks: cannot register " + what + ": registry is already sealed")
	}
}

// RegisterNumberSuffix adds a number-suffix handler at the given priority
// (higher runs first).
func (r *Registry) RegisterNumberSuffix(priority int, h NumberSuffixHandler) {
	r.mustNotBeSealed("number-suffix handler")
	r.suffixes = append(r.suffixes, priorityEntry[NumberSuffixHandler]{priority, h})
}

// RegisterStringPostProcessor adds a string post-processor.
func (r *Registry) RegisterStringPostProcessor(priority int, h StringPostProcessor) {
	r.mustNotBeSealed("string post-processor")
	r.postProcs = append(r.postProcs, priorityEntry[StringPostProcessor]{priority, h})
}

// RegisterValidation adds a validation hook.
func (r *Registry) RegisterValidation(priority int, h ValidationHook) {
	r.mustNotBeSealed("validation hook")
	r.validators = append(r.validators, priorityEntry[ValidationHook]{priority, h})
}

// RegisterVariableHandler adds a variable-resolution handler.
func (r *Registry) RegisterVariableHandler(priority int, h VariableHandler) {
	r.mustNotBeSealed("variable handler")
	r.variables = append(r.variables, priorityEntry[VariableHandler]{priority, h})
}

// Seal builds the immutable, priority-ordered chains. After Seal, every
// Register* call panics; Reset undoes this.
func (r *Registry) Seal() {
	if r.sealed {
		return
	}
	r.suffixChain = sortedHandlers(r.suffixes)
	r.postProcChain = sortedHandlers(r.postProcs)
	r.validateChain = sortedHandlers(r.validators)
	r.variableChain = sortedHandlers(r.variables)
	r.sealed = true
	logInit.Do(util.InitSlog)
	slog.Debug("hooks: registry sealed",
		"suffix_handlers", len(r.suffixChain),
		"post_processors", len(r.postProcChain),
		"validators", len(r.validateChain),
		"variable_handlers", len(r.variableChain))
}

// Reset clears sealing, allowing Register* calls again. Existing chains are
// discarded; handlers registered before the reset are kept and will be
// re-sorted on the next Seal.
func (r *Registry) Reset() {
	r.sealed = false
	r.suffixChain = nil
	r.postProcChain = nil
	r.validateChain = nil
	r.variableChain = nil
}

// Sealed reports whether Seal has been called since the last Reset.
func (r *Registry) Sealed() bool { return r.sealed }

func sortedHandlers[T any](entries []priorityEntry[T]) []T {
	sorted := util.StableSortByPriority(entries, func(e priorityEntry[T]) int { return e.priority })
	out := make([]T, len(sorted))
	for i, e := range sorted {
		out[i] = e.handler
	}
	return out
}

// ResolveSuffix runs the number-suffix chain; first match wins.
func (r *Registry) ResolveSuffix(suffix string) (float64, bool) {
	for _, h := range r.suffixChain {
		if mult, ok := h(suffix); ok {
			return mult, true
		}
	}
	return 0, false
}

// PostProcessString runs every string post-processor in priority order,
// each seeing the previous one's rewrite.
func (r *Registry) PostProcessString(val string, ctx Context) (string, error) {
	for _, h := range r.postProcChain {
		var err error
		val, err = h(val, ctx)
		if err != nil {
			return "", err
		}
	}
	return val, nil
}

// Validate runs every validation hook in priority order over v, applying
// each rewrite offered (later hooks then see the rewritten value).
func (r *Registry) Validate(v *value.Value, ctx Context) (*value.Value, error) {
	for _, h := range r.validateChain {
		rewrite, ok, err := h(v, ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			v = rewrite
		}
	}
	return v, nil
}

// ResolveVariable runs the variable-handler chain; first Some wins.
func (r *Registry) ResolveVariable(name string, ctx Context) (string, bool) {
	for _, h := range r.variableChain {
		if val, ok := h(name, ctx); ok {
			return val, true
		}
	}
	return "", false
}
