package rules

import "testing"

func TestCanonicalPairIsOrderIndependent(t *testing.T) {
	tests := []struct {
		name string
		a    int64
		b    int64
		low  int64
		high int64
	}{
		{name: "already ordered", a: 1, b: 2, low: 1, high: 2},
		{name: "reversed", a: 9, b: 4, low: 4, high: 9},
		{name: "large ids", a: 1000000, b: 999999, low: 999999, high: 1000000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			low, high := CanonicalPair(tc.a, tc.b)
			if low != tc.low || high != tc.high {
				t.Fatalf("unexpected pair: got (%d,%d) want (%d,%d)", low, high, tc.low, tc.high)
			}

			swappedLow, swappedHigh := CanonicalPair(tc.b, tc.a)
			if swappedLow != low || swappedHigh != high {
				t.Fatalf("pair is not symmetric: (%d,%d) vs (%d,%d)", low, high, swappedLow, swappedHigh)
			}
		})
	}
}
