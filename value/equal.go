package value

// Equal implements deep equality for testing. It compares by content, not by
// representation: a Borrowed and an Owned COWString with identical bytes
// are equal, arrays are compared positionally, and objects are compared key
// by key regardless of key order. Modeled on
// sqldef's recursive type-switch AST comparator (its node-by-node equality
// walk over SQL statements), adapted from a fixed SQL AST shape to this
// module's closed Kind-tagged union.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v.IsNull() && other.IsNull()
	}
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindInteger:
		return v.Int == other.Int
	case KindFloat:
		return v.Float == other.Float || (isNaN(v.Float) && isNaN(other.Float))
	case KindString:
		return v.Str.String() == other.Str.String()
	case KindArray:
		return equalArrays(v.Array, other.Array)
	case KindObject:
		return equalObjects(v.Object, other.Object)
	default:
		return false
	}
}

func equalArrays(a, b []*Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func equalObjects(a, b *Object) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.Keys() {
		av, _ := a.Get(k)
		bv, ok := b.Get(k)
		if !ok || !av.Equal(bv) {
			return false
		}
	}
	return true
}

func isNaN(f float64) bool { return f != f }
