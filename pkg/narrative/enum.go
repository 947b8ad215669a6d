package narrative

import "fmt"

// enumName returns the wire name of v, or "unknown" when v has none.
func enumName[T comparable](names map[T]string, v T) string {
	if name, ok := names[v]; ok {
		return name
	}
	return "unknown"
}

// parseEnum looks up the value whose wire name is s.
func parseEnum[T comparable](kind string, names map[T]string, s string) (T, error) {
	for v, name := range names {
		if name == s {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", kind, s)
}
