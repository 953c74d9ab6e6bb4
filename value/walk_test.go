package value

import (
	"strings"
	"testing"
)

func TestWalkVisitsEveryNodeWithPath(t *testing.T) {
	root := NewObject()
	_ = root.Object.Insert("name", StringFrom("svc"), DuplicateArray)
	arr := NewArray()
	arr.AppendArray(Integer(1))
	arr.AppendArray(Integer(2))
	_ = root.Object.Insert("ports", arr, DuplicateArray)

	var paths []string
	err := root.Walk(func(path []string, v *Value) error {
		paths = append(paths, strings.Join(path, "."))
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := []string{"", "name", "ports", "ports.0", "ports.1"}
	if len(paths) != len(want) {
		t.Fatalf("got %d visited paths %v, want %d", len(paths), paths, len(want))
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("path[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestWalkPropagatesError(t *testing.T) {
	root := NewObject()
	_ = root.Object.Insert("a", Integer(1), DuplicateArray)
	sentinel := &walkErr{}
	err := root.Walk(func(path []string, v *Value) error {
		if len(path) > 0 {
			return sentinel
		}
		return nil
	})
	if err != sentinel {
		t.Fatalf("expected Walk to propagate the visitor's error, got %v", err)
	}
}

type walkErr struct{}

func (e *walkErr) Error() string { return "boom" }
