package query

// Limit returns at most k leading elements of s; k <= 0 yields an empty slice.
// The result shares s's backing array but cannot append into it.
func Limit[S ~[]E, E any](s S, k int) S {
	if k <= 0 {
		return s[:0:0]
	}
	if k < len(s) {
		return s[:k:k]
	}
	return s
}
