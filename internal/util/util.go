package util

import "strconv"

// ParseLimit parses a raw limit query value. Non-numeric, empty, or
// non-positive input falls back to def; a malformed limit is never an
// error at the HTTP boundary.
func ParseLimit(raw string, def int) int {
	if raw == "" {
		return def
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}

	return limit
}

// Truncate returns at most n leading elements of items. A non-positive n
// returns an empty slice.
func Truncate[T any](items []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if len(items) <= n {
		return items
	}

	return items[:n]
}
