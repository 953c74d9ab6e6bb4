package value

import (
	"encoding/json"
	"testing"
)

func TestMarshalJSONScalarsAndContainers(t *testing.T) {
	obj := NewObject()
	_ = obj.Object.Insert("name", StringFrom("svc"), DuplicateArray)
	_ = obj.Object.Insert("port", Integer(8080), DuplicateArray)
	_ = obj.Object.Insert("enabled", Bool(true), DuplicateArray)
	arr := NewArray()
	arr.AppendArray(Integer(1))
	arr.AppendArray(Integer(2))
	_ = obj.Object.Insert("tags", arr, DuplicateArray)

	b, err := obj.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("round-trip through encoding/json failed: %v", err)
	}
	if decoded["name"] != "svc" {
		t.Fatalf("name = %v, want svc", decoded["name"])
	}
	if decoded["port"].(float64) != 8080 {
		t.Fatalf("port = %v, want 8080", decoded["port"])
	}
}

func TestMarshalJSONNonFiniteFloat(t *testing.T) {
	v := Float(1.0)
	v.Float = v.Float / 0 // +Inf without importing math just for this test
	b, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(b) != `"Infinity"` {
		t.Fatalf("got %s, want \"Infinity\"", b)
	}
}
