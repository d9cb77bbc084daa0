package chebyshev

import (
	"testing"

	"github.com/cpirmayr/factorization/bignat"
)

func TestTMatchesDirectRecurrence(t *testing.T) {
	n := bignat.FromInt64(1000003)
	x := bignat.FromInt64(7)
	for k := int64(0); k < 40; k++ {
		got := T(k, x, n)
		want := directRecurrence(k, x, n)
		if got.Cmp(want) != 0 {
			t.Fatalf("T(%d)=%s, want %s", k, got, want)
		}
	}
}

func TestConstantTimeAgreesWithBranching(t *testing.T) {
	n := bignat.FromInt64(9999991)
	for _, xv := range []int64{2, 3, 11, 12345} {
		x := bignat.FromInt64(xv)
		for k := int64(0); k < 64; k++ {
			a := T(k, x, n)
			b := TConstantTime(k, x, n)
			if a.Cmp(b) != 0 {
				t.Fatalf("x=%d k=%d: branching=%s constant-time=%s disagree", xv, k, a, b)
			}
		}
	}
}

// directRecurrence computes T_k(x) mod n the naive way, by walking
// T_0=1, T_1=x, T_{m+1}=2x*T_m - T_{m-1} one step at a time, independent
// of the binary-ladder implementation under test.
func directRecurrence(k int64, x, n *bignat.Nat) *bignat.Nat {
	if k == 0 {
		return bignat.Mod(bignat.FromInt64(1), n)
	}
	prev := bignat.Mod(bignat.FromInt64(1), n)
	cur := bignat.Mod(x, n)
	for i := int64(1); i < k; i++ {
		next := bignat.Sub(bignat.Mul(bignat.Mul(bignat.FromInt64(2), x), cur), prev)
		next = bignat.Mod(next, n)
		prev, cur = cur, next
	}
	return cur
}
