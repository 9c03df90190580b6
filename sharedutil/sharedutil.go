package sharedutil

func MapSlice[T any, U any](ts []T, f func(T) U) []U {
	if ts == nil {
		return nil
	}
	result := make([]U, len(ts))
	for i, t := range ts {
		result[i] = f(t)
	}
	return result
}

// Last returns the last element of ts, or the zero value if ts is empty.
func Last[T any](ts []T) (T, bool) {
	if len(ts) == 0 {
		var zero T
		return zero, false
	}
	return ts[len(ts)-1], true
}
