package internal

// Reverse reverses a slice in place and returns it.
func Reverse[T any](items []T) []T {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// Walk follows next from start until it returns false and collects every
// visited value, start first.
func Walk[T any](start T, next func(T) (T, bool)) []T {
	path := []T{start}
	for current, ok := next(start); ok; current, ok = next(current) {
		path = append(path, current)
	}
	return path
}
