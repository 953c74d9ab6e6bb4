// Package util holds small generic helpers shared across the lexer, parser
// and hook packages that don't belong to any one of them.
package util

// TransformSlice applies the converter to each element in the input slice and returns a new slice.
func TransformSlice[T any, R any](in []T, converter func(T) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = converter(v)
	}
	return out
}

// StableSortByPriority sorts a copy of in by descending priority, preserving
// the relative order of equal-priority elements. Used by the hook pipeline
// to order priority chains without disturbing registration order among
// hooks registered at the same priority.
func StableSortByPriority[T any](in []T, priority func(T) int) []T {
	out := make([]T, len(in))
	copy(out, in)
	insertionSortStableDesc(out, priority)
	return out
}

func insertionSortStableDesc[T any](s []T, priority func(T) int) {
	for i := 1; i < len(s); i++ {
		j := i
		for j > 0 && priority(s[j-1]) < priority(s[j]) {
			s[j-1], s[j] = s[j], s[j-1]
			j--
		}
	}
}
