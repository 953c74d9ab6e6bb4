package ucl

import (
	"strings"
	"testing"
)

func TestDefaultOptionsMatchesDocumentedDefaults(t *testing.T) {
	opts := DefaultOptions()
	if !opts.AcceptCppComments || !opts.AcceptSingleQuotes {
		t.Fatalf("expected cpp comments and single quotes on by default")
	}
	if opts.MaxDepth != 256 {
		t.Fatalf("MaxDepth = %d, want 256", opts.MaxDepth)
	}
	if opts.MaxInputBytes < 16<<20 {
		t.Fatalf("MaxInputBytes = %d, want >= 16 MiB", opts.MaxInputBytes)
	}
	if !opts.VariableExpansion {
		t.Fatalf("expected variable expansion on by default")
	}
}

func TestLoadOptionsYAMLOverridesOnlyPresentKeys(t *testing.T) {
	r := strings.NewReader("max_depth: 10\nduplicate_keys: error\n")
	opts, err := LoadOptionsYAML(r)
	if err != nil {
		t.Fatalf("LoadOptionsYAML: %v", err)
	}
	if opts.MaxDepth != 10 {
		t.Fatalf("MaxDepth = %d, want 10", opts.MaxDepth)
	}
	if opts.DuplicateKeys != DuplicateError {
		t.Fatalf("DuplicateKeys = %v, want DuplicateError", opts.DuplicateKeys)
	}
	if !opts.AcceptCppComments {
		t.Fatalf("expected an untouched default to remain at its default value")
	}
}

func TestLoadOptionsYAMLRejectsUnknownDuplicateMode(t *testing.T) {
	r := strings.NewReader("duplicate_keys: bogus\n")
	_, err := LoadOptionsYAML(r)
	if err == nil {
		t.Fatalf("expected an error for an unknown duplicate_keys mode")
	}
}

func TestLoadOptionsYAMLEmptyDocumentIsDefaults(t *testing.T) {
	opts, err := LoadOptionsYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadOptionsYAML: %v", err)
	}
	if opts != DefaultOptions() {
		t.Fatalf("expected an empty document to produce the defaults")
	}
}
