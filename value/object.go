package value

import "fmt"

// Object is an insertion-order-preserving mapping from owned string keys to
// *Value. Object keys preserve insertion order; duplicates extend rather
// than reorder.
//
// Modeled on the general shape of sqldef's ordered, append-only AST lists
// (e.g. parser's *TableSpec.Columns preserves declaration order)
// generalized into a reusable ordered map, since nothing in the corpus
// needed one ready-made.
type Object struct {
	keys  []string
	index map[string]int
	vals  []*Value
}

// NewObjectMap returns an empty, ready-to-use Object.
func NewObjectMap() *Object {
	return &Object{index: make(map[string]int)}
}

// Keys returns the keys in first-insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// Len reports the number of distinct keys.
func (o *Object) Len() int { return len(o.keys) }

// Get looks up a key; ok is false if absent.
func (o *Object) Get(key string) (*Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.vals[i], true
}

// Insert implements auto-array promotion: a single insert operation that
// dispatches on the current entry's shape instead of separate "does this
// key exist, is it already an array" probes scattered through the parser.
//
//   - key absent: insert as-is.
//   - key present, mode == DuplicateError: return an error.
//   - key present, mode == DuplicateLastWins: replace.
//   - key present, both old and new are KindObject, mode == DuplicateMerge:
//     merge the new object's keys into the old one, recursively.
//   - key present, current value is KindArray: append.
//   - key present, otherwise: replace with a 2-element array [old, new].
func (o *Object) Insert(key string, v *Value, mode DuplicateMode) error {
	i, exists := o.index[key]
	if !exists {
		o.index[key] = len(o.keys)
		o.keys = append(o.keys, key)
		o.vals = append(o.vals, v)
		return nil
	}

	old := o.vals[i]
	switch mode {
	case DuplicateError:
		return fmt.Errorf("duplicate key %q", key)
	case DuplicateLastWins:
		o.vals[i] = v
		return nil
	case DuplicateMerge:
		if old.Kind == KindObject && v.Kind == KindObject {
			mergeObjects(old.Object, v.Object)
			return nil
		}
		fallthrough
	default: // DuplicateArray
		if old.Kind == KindArray {
			old.Array = append(old.Array, v)
			return nil
		}
		o.vals[i] = &Value{Kind: KindArray, Array: []*Value{old, v}}
		return nil
	}
}

// mergeObjects merges src's keys into dst in DuplicateMerge mode,
// recursively merging nested objects under the same key.
func mergeObjects(dst, src *Object) {
	for _, k := range src.Keys() {
		sv, _ := src.Get(k)
		_ = dst.Insert(k, sv, DuplicateMerge)
	}
}

// Delete removes a key if present. Existing key order for the remaining
// keys is preserved.
func (o *Object) Delete(key string) {
	i, ok := o.index[key]
	if !ok {
		return
	}
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.vals = append(o.vals[:i], o.vals[i+1:]...)
	delete(o.index, key)
	for k, idx := range o.index {
		if idx > i {
			o.index[k] = idx - 1
		}
	}
}
