package contfrac

import (
	"math/big"
	"testing"

	"github.com/cpirmayr/factorization/bignat"
)

// residue computes p^2 - n*q^2 folded into (-n/2, n/2], the quantity CFRAC
// sieves for smoothness (§4.4 step 2), directly against math/big to check
// the iterator's convergents independently of the production sieve code.
func residue(p, q, n *big.Int) *big.Int {
	r := new(big.Int).Mul(p, p)
	nq2 := new(big.Int).Mul(q, q)
	nq2.Mul(nq2, n)
	r.Sub(r, nq2)
	r.Mod(r, n)
	half := new(big.Int).Rsh(n, 1)
	if r.Cmp(half) > 0 {
		r.Sub(r, n)
	}
	return r
}

func TestConvergentCongruence(t *testing.T) {
	ns := []int64{13, 41, 1000007, 2041, 991 * 997}
	for _, nv := range ns {
		n := bignat.FromInt64(nv)
		convs := Prefix(n, 30)
		for i, c := range convs {
			r := residue(c.P.Big(), c.Q.Big(), n.Big())
			lhs := new(big.Int).Mul(c.P.Big(), c.P.Big())
			lhs.Mod(lhs, n.Big())
			rhsMod := new(big.Int).Mod(r, n.Big())
			if lhs.Cmp(rhsMod) != 0 {
				t.Fatalf("n=%d step %d: p^2 mod n (%s) != q-residue mod n (%s)", nv, i, lhs, rhsMod)
			}
		}
	}
}

func TestPerfectSquareTerminatesImmediately(t *testing.T) {
	n := bignat.FromInt64(144)
	it := New(n)
	if _, _, ok := it.Next(); ok {
		t.Fatalf("expected immediate termination for a perfect square")
	}
}

func TestNonSquareIsRestartableFromScratch(t *testing.T) {
	n := bignat.FromInt64(1000007)
	a := Prefix(n, 10)
	b := Prefix(n, 10)
	for i := range a {
		if a[i].P.Cmp(b[i].P) != 0 || a[i].Q.Cmp(b[i].Q) != 0 {
			t.Fatalf("restarted iterator diverged at step %d", i)
		}
	}
}
