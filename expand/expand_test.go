package expand

import "testing"

func staticResolver(vars map[string]string) Resolver {
	return func(name string, _ []string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestExpandBraceForm(t *testing.T) {
	got, err := Expand("host=${HOST}", nil, staticResolver(map[string]string{"HOST": "example.com"}))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "host=example.com" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandBareForm(t *testing.T) {
	got, err := Expand("host=$HOST:8080/path", nil, staticResolver(map[string]string{"HOST": "example.com"}))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "host=example.com:8080/path" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandDollarDollarLiteral(t *testing.T) {
	got, err := Expand("price: $$5", nil, staticResolver(nil))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "price: $5" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandDefaultUsedWhenUnresolved(t *testing.T) {
	got, err := Expand("${MISSING:-fallback}", nil, staticResolver(nil))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "fallback" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandDefaultUsedWhenEmpty(t *testing.T) {
	got, err := Expand("${EMPTY:-fallback}", nil, staticResolver(map[string]string{"EMPTY": ""}))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "fallback" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandUnresolvedWithoutDefaultErrors(t *testing.T) {
	_, err := Expand("${MISSING}", nil, staticResolver(nil))
	if err == nil {
		t.Fatalf("expected an error for an unresolved variable with no default")
	}
	if err.(*Error).Kind != KindUnresolved {
		t.Fatalf("expected KindUnresolved, got %v", err.(*Error).Kind)
	}
}

func TestExpandCircularReference(t *testing.T) {
	vars := map[string]string{
		"A": "$B",
		"B": "$A",
	}
	_, err := Expand("$A", nil, staticResolver(vars))
	if err == nil {
		t.Fatalf("expected a circular-reference error")
	}
	if err.(*Error).Kind != KindCircular {
		t.Fatalf("expected KindCircular, got %v", err.(*Error).Kind)
	}
}

func TestExpandRecursiveWithinResolvedValue(t *testing.T) {
	vars := map[string]string{
		"OUTER": "prefix-${INNER}",
		"INNER": "value",
	}
	got, err := Expand("$OUTER", nil, staticResolver(vars))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "prefix-value" {
		t.Fatalf("got %q", got)
	}
}
