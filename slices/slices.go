package slices

func Map[T, V any](ts []T, fn func(T) V) []V {
	result := make([]V, len(ts))
	for i, t := range ts {
		result[i] = fn(t)
	}
	return result
}

// Filter keeps the elements for which keep returns true, preserving order.
func Filter[T any](ts []T, keep func(T) bool) []T {
	result := make([]T, 0, len(ts))
	for _, t := range ts {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

func IndexFunc[T any](ts []T, match func(T) bool) int {
	for i, t := range ts {
		if match(t) {
			return i
		}
	}
	return -1
}
