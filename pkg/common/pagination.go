package common

import "strconv"

const (
	DefaultPageLimit = 50
	MinPageLimit     = 1
	MaxPageLimit     = 200
)

// ClampLimit parses a limit query value. Missing or non-numeric input gives
// DefaultPageLimit; numbers are clamped to [MinPageLimit, MaxPageLimit].
func ClampLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultPageLimit
	}
	return ClampLimitInt(n)
}

// ClampLimitInt clamps an already parsed limit
func ClampLimitInt(n int) int {
	return min(max(n, MinPageLimit), MaxPageLimit)
}

// Page is one slice of a cursor-paginated listing
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// ItemsResponse is the body of non-paginated list endpoints
type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}
