package ucl

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v2"
)

// basicFixture mirrors sqldef's TestCase pattern (its readPsqldefTests
// helper), adapted from "current"/"desired" SQL snapshots to a source
// document plus the keys it's expected to produce at the top level.
type basicFixture struct {
	Source   string   `yaml:"source"`
	WantKeys []string `yaml:"want_keys"`
}

type errorFixture struct {
	Source        string `yaml:"source"`
	WantErrorKind string `yaml:"want_error_kind"`
	DuplicateKeys string `yaml:"duplicate_keys"`
}

func readYAMLFixtures[T any](t *testing.T, path string) map[string]T {
	t.Helper()
	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	var out map[string]T
	if err := yaml.Unmarshal(buf, &out); err != nil {
		t.Fatalf("yaml.Unmarshal(%s): %v", path, err)
	}
	return out
}

func TestBasicFixtures(t *testing.T) {
	fixtures := readYAMLFixtures[basicFixture](t, filepath.Join("testdata", "basic.yml"))
	for name, fx := range fixtures {
		t.Run(name, func(t *testing.T) {
			v, err := Parse([]byte(fx.Source), DefaultOptions())
			if err != nil {
				t.Fatalf("Parse: %v\nsource:\n%s", err, fx.Source)
			}
			for _, k := range fx.WantKeys {
				if _, ok := v.Object.Get(k); !ok {
					t.Errorf("missing expected top-level key %q", k)
				}
			}
		})
	}
}

func TestErrorFixtures(t *testing.T) {
	fixtures := readYAMLFixtures[errorFixture](t, filepath.Join("testdata", "errors.yml"))
	for name, fx := range fixtures {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			if fx.DuplicateKeys != "" {
				mode, err := parseDuplicateKeyMode(fx.DuplicateKeys)
				if err != nil {
					t.Fatalf("parseDuplicateKeyMode: %v", err)
				}
				opts.DuplicateKeys = mode
			}
			_, err := Parse([]byte(fx.Source), opts)
			if err == nil {
				t.Fatalf("expected an error of kind %s, got none\nsource:\n%s", fx.WantErrorKind, fx.Source)
			}
			ue, ok := err.(*Error)
			if !ok {
				t.Fatalf("error is not *Error: %v", err)
			}
			if ue.Kind.String() != fx.WantErrorKind {
				t.Fatalf("got error kind %s, want %s", ue.Kind, fx.WantErrorKind)
			}
		})
	}
}
