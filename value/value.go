// Package value implements the ValueTree: the tagged-union representation
// produced by the parser and consumed by the hook pipeline and any external
// sink. It is its own package, the way sqldef splits its AST/compare/
// normalize concerns into sibling files of one package rather than folding
// everything into the tokenizer (compare.go, normalize.go) — here split one
// level further, into a sibling package, since the value tree is consumed
// by code (hooks, expand) that must not import the lexer/parser package.
package value

// Kind is the ValueTree's tag.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// DuplicateMode mirrors the parser's duplicate_keys option at the point
// where it actually matters: Object.Insert.
type DuplicateMode int

const (
	DuplicateArray DuplicateMode = iota
	DuplicateMerge
	DuplicateError
	DuplicateLastWins
)

// COWString is the copy-on-write string representation: Borrowed is a slice
// view into the source buffer (valid only as long as the caller keeps that
// buffer alive), Owned is a standalone copy. Exactly one of the two is
// meaningful, selected by IsOwned.
type COWString struct {
	Borrowed []byte
	Owned    []byte
	IsOwned  bool
}

// Bytes returns the string's bytes regardless of which variant is active.
func (c COWString) Bytes() []byte {
	if c.IsOwned {
		return c.Owned
	}
	return c.Borrowed
}

func (c COWString) String() string { return string(c.Bytes()) }

// Materialize returns a COWString guaranteed not to borrow into any buffer.
func (c COWString) Materialize() COWString {
	if c.IsOwned {
		return c
	}
	owned := make([]byte, len(c.Borrowed))
	copy(owned, c.Borrowed)
	return COWString{Owned: owned, IsOwned: true}
}

// Borrowed builds a borrowing COWString; this is the lexer's starting mode.
func Borrowed(b []byte) COWString { return COWString{Borrowed: b} }

// Owned builds an owned COWString, used once an escape, interpolation, or
// CRLF normalization forces a copy.
func Owned(b []byte) COWString { return COWString{Owned: b, IsOwned: true} }

// Value is one node of the ValueTree. Only the field(s) matching Kind are
// meaningful, mirroring sqldef's single-payload-field AST nodes (e.g.
// *parser.DDL carries many optional pointer fields, one active per Action)
// generalized to a closed tagged union.
type Value struct {
	Kind Kind

	Bool    bool
	Int     int64
	Float   float64
	Str     COWString
	Array   []*Value
	Object  *Object
}

func Null() *Value                 { return &Value{Kind: KindNull} }
func Bool(b bool) *Value           { return &Value{Kind: KindBool, Bool: b} }
func Integer(i int64) *Value       { return &Value{Kind: KindInteger, Int: i} }
func Float(f float64) *Value       { return &Value{Kind: KindFloat, Float: f} }
func String(s COWString) *Value    { return &Value{Kind: KindString, Str: s} }
func StringFrom(s string) *Value   { return &Value{Kind: KindString, Str: Owned([]byte(s))} }
func NewArray() *Value             { return &Value{Kind: KindArray} }
func NewObject() *Value            { return &Value{Kind: KindObject, Object: NewObjectMap()} }

// IsNull reports whether v is nil or a KindNull node; both render the same
// way to callers that just want to check for absence.
func (v *Value) IsNull() bool { return v == nil || v.Kind == KindNull }

// AsString returns the string content; ok is false for non-string nodes.
func (v *Value) AsString() (string, bool) {
	if v == nil || v.Kind != KindString {
		return "", false
	}
	return v.Str.String(), true
}

// AsInt64 returns the node's value as an int64: direct for KindInteger,
// truncating for KindFloat, else ok is false.
func (v *Value) AsInt64() (int64, bool) {
	if v == nil {
		return 0, false
	}
	switch v.Kind {
	case KindInteger:
		return v.Int, true
	case KindFloat:
		return int64(v.Float), true
	default:
		return 0, false
	}
}

// AsFloat64 returns the node's value as a float64.
func (v *Value) AsFloat64() (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch v.Kind {
	case KindInteger:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// AppendArray appends an element to an array-kind value in place.
func (v *Value) AppendArray(elem *Value) {
	v.Array = append(v.Array, elem)
}

// Materialize returns a deep copy of v in which every borrowed string has
// been converted to an owned buffer, safe to outlive the original input
// buffer.
func (v *Value) Materialize() *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindString:
		return &Value{Kind: KindString, Str: v.Str.Materialize()}
	case KindArray:
		out := &Value{Kind: KindArray, Array: make([]*Value, len(v.Array))}
		for i, e := range v.Array {
			out.Array[i] = e.Materialize()
		}
		return out
	case KindObject:
		out := &Value{Kind: KindObject, Object: NewObjectMap()}
		for _, k := range v.Object.Keys() {
			mv, _ := v.Object.Get(k)
			out.Object.Insert(k, mv.Materialize(), DuplicateArray)
		}
		return out
	default:
		cp := *v
		return &cp
	}
}
