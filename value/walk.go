package value

import "strconv"

// Walk visits v and every descendant top-down, calling fn with the key path
// from the root (empty for the root itself). This is the same traversal
// order the validation hook chain runs under, exposed for callers (tests,
// tooling) that want the same shape without going through the hook
// pipeline.
func (v *Value) Walk(fn func(path []string, v *Value) error) error {
	return walk(nil, v, fn)
}

func walk(path []string, v *Value, fn func([]string, *Value) error) error {
	if err := fn(path, v); err != nil {
		return err
	}
	switch v.Kind {
	case KindArray:
		for i, e := range v.Array {
			if err := walk(append(append([]string{}, path...), strconv.Itoa(i)), e, fn); err != nil {
				return err
			}
		}
	case KindObject:
		for _, k := range v.Object.Keys() {
			ev, _ := v.Object.Get(k)
			if err := walk(append(append([]string{}, path...), k), ev, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
