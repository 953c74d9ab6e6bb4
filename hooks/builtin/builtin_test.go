package builtin

import (
	"os"
	"testing"

	"github.com/goucl/ucl/hooks"
	"github.com/goucl/ucl/value"
)

func TestEnvVarResolver(t *testing.T) {
	t.Setenv("UCL_TEST_VAR", "ok")
	val, found := EnvVarResolver("UCL_TEST_VAR", hooks.Context{})
	if !found || val != "ok" {
		t.Fatalf("EnvVarResolver = %q, %v, want ok, true", val, found)
	}

	os.Unsetenv("UCL_TEST_MISSING")
	if _, found := EnvVarResolver("UCL_TEST_MISSING", hooks.Context{}); found {
		t.Fatalf("expected EnvVarResolver to report not found for an unset variable")
	}
}

func TestDurationSuffixHandler(t *testing.T) {
	cases := map[string]float64{
		"wk":  604800,
		"sec": 1,
		"hr":  3600,
	}
	for suffix, want := range cases {
		got, ok := DurationSuffixHandler(suffix)
		if !ok || got != want {
			t.Fatalf("DurationSuffixHandler(%q) = %v, %v, want %v, true", suffix, got, ok, want)
		}
	}
	if _, ok := DurationSuffixHandler("zz"); ok {
		t.Fatalf("expected DurationSuffixHandler to decline an unknown suffix")
	}
}

func TestNoEmptyKeyValidator(t *testing.T) {
	_, _, err := NoEmptyKeyValidator(value.Integer(1), hooks.Context{Path: []string{"a", ""}})
	if err == nil {
		t.Fatalf("expected an error for an empty trailing key segment")
	}
	_, _, err = NoEmptyKeyValidator(value.Integer(1), hooks.Context{Path: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("unexpected error for a non-empty key: %v", err)
	}
}
