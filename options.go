package ucl

import (
	"io"

	"gopkg.in/yaml.v2"

	"github.com/goucl/ucl/hooks"
	"github.com/goucl/ucl/value"
)

// Value is the ValueTree node type, an alias of value.Value so callers of
// Parse/ParseReader don't need to import the value package just to name the
// return type.
type Value = value.Value

// HookSet is the registry of number-suffix/string/validation/variable hooks
// consulted during parsing. It is an alias of hooks.Registry so Options can
// reference it without exposing an import of the hooks package to every
// caller that just wants to set Options.Hooks.
type HookSet = hooks.Registry

// DuplicateKeyMode selects how the parser handles a second assignment to an
// already-present object key. It is an alias of value.DuplicateMode:
// Object.Insert (which lives in the value package, to stay importable
// without the lexer/parser) is where the mode actually gets interpreted,
// but callers configure it here.
type DuplicateKeyMode = value.DuplicateMode

const (
	// DuplicateArray promotes repeated scalar/array assignments into an
	// array of all assignments in source order. This is the default.
	DuplicateArray = value.DuplicateArray
	// DuplicateMerge merges repeated object-valued assignments into one
	// object instead of producing an array of objects.
	DuplicateMerge = value.DuplicateMerge
	// DuplicateError rejects any repeated key with ErrDuplicateKey.
	DuplicateError = value.DuplicateError
	// DuplicateLastWins silently replaces the previous value.
	DuplicateLastWins = value.DuplicateLastWins
)

// Options is the full configuration surface. The zero value is not directly
// usable for max sizes (0 would forbid all input); use DefaultOptions.
type Options struct {
	PreserveComments    bool
	AcceptCppComments   bool
	AcceptSingleQuotes  bool
	DuplicateKeys       DuplicateKeyMode
	MaxDepth            int
	MaxInputBytes       int64
	VariableExpansion   bool

	Hooks *HookSet // nil means an empty, sealed hook set (see hooks.go)
}

// DefaultOptions returns the documented defaults: C++ comments and single
// quotes on by default, max_depth 256.
func DefaultOptions() Options {
	return Options{
		AcceptCppComments:  true,
		AcceptSingleQuotes: true,
		DuplicateKeys:      DuplicateArray,
		MaxDepth:           256,
		MaxInputBytes:      16 << 20, // must be at least 16 MiB
		VariableExpansion:  true,
	}
}

// yamlOptions mirrors Options' field names in their documented snake_case
// spelling, the same shape sqldef loads its own `--config` YAML file into
// (mysqldef's `Config string long:"config"` flag feeding a YAML-decoded
// struct).
type yamlOptions struct {
	PreserveComments   *bool   `yaml:"preserve_comments"`
	AcceptCppComments  *bool   `yaml:"accept_cpp_comments"`
	AcceptSingleQuotes *bool   `yaml:"accept_single_quotes"`
	DuplicateKeys      *string `yaml:"duplicate_keys"`
	MaxDepth           *int    `yaml:"max_depth"`
	MaxInputBytes      *int64  `yaml:"max_input_bytes"`
	VariableExpansion  *bool   `yaml:"variable_expansion"`
}

// LoadOptionsYAML decodes a YAML document into an Options value, starting
// from DefaultOptions and overriding only the keys present in r. Recognized
// keys are exactly Options' documented snake_case names.
func LoadOptionsYAML(r io.Reader) (Options, error) {
	opts := DefaultOptions()

	var raw yamlOptions
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return Options{}, err
	}

	if raw.PreserveComments != nil {
		opts.PreserveComments = *raw.PreserveComments
	}
	if raw.AcceptCppComments != nil {
		opts.AcceptCppComments = *raw.AcceptCppComments
	}
	if raw.AcceptSingleQuotes != nil {
		opts.AcceptSingleQuotes = *raw.AcceptSingleQuotes
	}
	if raw.MaxDepth != nil {
		opts.MaxDepth = *raw.MaxDepth
	}
	if raw.MaxInputBytes != nil {
		opts.MaxInputBytes = *raw.MaxInputBytes
	}
	if raw.VariableExpansion != nil {
		opts.VariableExpansion = *raw.VariableExpansion
	}
	if raw.DuplicateKeys != nil {
		mode, err := parseDuplicateKeyMode(*raw.DuplicateKeys)
		if err != nil {
			return Options{}, err
		}
		opts.DuplicateKeys = mode
	}

	return opts, nil
}

func parseDuplicateKeyMode(s string) (DuplicateKeyMode, error) {
	switch s {
	case "array":
		return DuplicateArray, nil
	case "merge":
		return DuplicateMerge, nil
	case "error":
		return DuplicateError, nil
	case "last-wins":
		return DuplicateLastWins, nil
	default:
		return 0, &Error{Kind: ErrValidation, Message: "unknown duplicate_keys mode: " + s}
	}
}
