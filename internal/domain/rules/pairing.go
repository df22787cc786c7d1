package rules

// CanonicalPair orders two pet ids into the fixed (low, high) form used
// as the unique key for matches. Applying it before create-if-absent
// makes match creation independent of which side swiped last.
func CanonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
