package ucl

import (
	"testing"

	"github.com/goucl/ucl/hooks"
	"github.com/goucl/ucl/hooks/builtin"
)

func parseString(t *testing.T, src string, opts Options) *Value {
	t.Helper()
	v, err := Parse([]byte(src), opts)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return v
}

func TestParseImplicitTopLevel(t *testing.T) {
	v := parseString(t, `name = "svc"; port = 8080`, DefaultOptions())
	if v.Kind != KindObject {
		t.Fatalf("got Kind %v, want KindObject", v.Kind)
	}
	name, _ := v.Object.Get("name")
	if s, _ := name.AsString(); s != "svc" {
		t.Fatalf("name = %q, want svc", s)
	}
	port, _ := v.Object.Get("port")
	if n, _ := port.AsInt64(); n != 8080 {
		t.Fatalf("port = %d, want 8080", n)
	}
}

func TestParseExplicitObject(t *testing.T) {
	v := parseString(t, `{ "a": 1, "b": 2 }`, DefaultOptions())
	a, _ := v.Object.Get("a")
	b, _ := v.Object.Get("b")
	na, _ := a.AsInt64()
	nb, _ := b.AsInt64()
	if na != 1 || nb != 2 {
		t.Fatalf("got a=%d b=%d, want 1, 2", na, nb)
	}
}

func TestParseImplicitSection(t *testing.T) {
	v := parseString(t, `server { host = "x"; port = 80 }`, DefaultOptions())
	server, ok := v.Object.Get("server")
	if !ok || server.Kind != KindObject {
		t.Fatalf("expected a server object, got %+v", server)
	}
	host, _ := server.Object.Get("host")
	if s, _ := host.AsString(); s != "x" {
		t.Fatalf("host = %q, want x", s)
	}
}

func TestParseNestedImplicitSectionHead(t *testing.T) {
	v := parseString(t, `upstream backend { server = "10.0.0.1" }`, DefaultOptions())
	upstream, ok := v.Object.Get("upstream")
	if !ok || upstream.Kind != KindObject {
		t.Fatalf("expected upstream object, got %+v", upstream)
	}
	backend, ok := upstream.Object.Get("backend")
	if !ok || backend.Kind != KindObject {
		t.Fatalf("expected nested backend object, got %+v", backend)
	}
	srv, _ := backend.Object.Get("server")
	if s, _ := srv.AsString(); s != "10.0.0.1" {
		t.Fatalf("server = %q, want 10.0.0.1", s)
	}
}

func TestParseArray(t *testing.T) {
	v := parseString(t, `ports = [80, 443, 8080]`, DefaultOptions())
	ports, _ := v.Object.Get("ports")
	if ports.Kind != KindArray || len(ports.Array) != 3 {
		t.Fatalf("got %+v", ports)
	}
}

func TestParseDuplicateKeyAutoArrayPromotion(t *testing.T) {
	v := parseString(t, `server = "a"; server = "b"`, DefaultOptions())
	server, _ := v.Object.Get("server")
	if server.Kind != KindArray || len(server.Array) != 2 {
		t.Fatalf("expected duplicate scalar assignment to promote to an array, got %+v", server)
	}
}

func TestParseDuplicateKeyErrorMode(t *testing.T) {
	opts := DefaultOptions()
	opts.DuplicateKeys = DuplicateError
	_, err := Parse([]byte(`server = "a"; server = "b"`), opts)
	if err == nil {
		t.Fatalf("expected a duplicate-key error")
	}
	if err.(*Error).Kind != ErrDuplicateKey {
		t.Fatalf("got %v, want ErrDuplicateKey", err.(*Error).Kind)
	}
}

func TestParseDuplicateKeyLastWins(t *testing.T) {
	opts := DefaultOptions()
	opts.DuplicateKeys = DuplicateLastWins
	v := parseString(t, `server = "a"; server = "b"`, opts)
	server, _ := v.Object.Get("server")
	if s, _ := server.AsString(); s != "b" {
		t.Fatalf("got %q, want last-wins b", s)
	}
}

func TestParseMaxDepthExceeded(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 2
	_, err := Parse([]byte(`a { b { c { d = 1 } } }`), opts)
	if err == nil {
		t.Fatalf("expected a depth-exceeded error")
	}
	if err.(*Error).Kind != ErrDepthExceeded {
		t.Fatalf("got %v, want ErrDepthExceeded", err.(*Error).Kind)
	}
}

func TestParseVariableExpansionEndToEnd(t *testing.T) {
	t.Setenv("UCL_TEST_PARSER_VAR", "example.com")
	reg := hooks.NewRegistry()
	reg.RegisterVariableHandler(0, func(name string, ctx hooks.Context) (string, bool) {
		return builtin.EnvVarResolver(name, ctx)
	})
	reg.Seal()
	opts := DefaultOptions()
	opts.Hooks = reg
	v := parseString(t, `host = "https://${UCL_TEST_PARSER_VAR}/"`, opts)
	host, _ := v.Object.Get("host")
	if s, _ := host.AsString(); s != "https://example.com/" {
		t.Fatalf("got %q", s)
	}
}

func TestParseUnclosedObjectErrors(t *testing.T) {
	_, err := Parse([]byte(`a { b = 1`), DefaultOptions())
	if err == nil {
		t.Fatalf("expected an unclosed-container error")
	}
	if err.(*Error).Kind != ErrUnclosedContainer {
		t.Fatalf("got %v, want ErrUnclosedContainer", err.(*Error).Kind)
	}
}

func TestParseEmptyKeyErrors(t *testing.T) {
	_, err := Parse([]byte(`"" = 1`), DefaultOptions())
	if err == nil {
		t.Fatalf("expected an empty-key error")
	}
}

func TestParseInputTooLarge(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxInputBytes = 4
	_, err := Parse([]byte(`a = 1`), opts)
	if err == nil {
		t.Fatalf("expected an input-too-large error")
	}
	if err.(*Error).Kind != ErrInputTooLarge {
		t.Fatalf("got %v, want ErrInputTooLarge", err.(*Error).Kind)
	}
}
