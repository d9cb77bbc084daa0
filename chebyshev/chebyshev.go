// Package chebyshev evaluates Chebyshev polynomials T_k(x) mod n via a
// binary ladder over k's bits, used by Pollard rho-combined as one of its
// three rotating iteration maps (§4.7).
package chebyshev

import (
	"math/big"

	"github.com/cpirmayr/factorization/bignat"
)

// step is the doubling half of one binary-ladder bit: given the pair
// (T_m, T_{m+1}) mod n, it returns (T_{2m}, T_{2m+1}), using
// T_{2m}(x) = 2*T_m(x)^2 - 1 and T_{2m+1}(x) = 2*T_m(x)*T_{m+1}(x) - x.
// For a 1 bit the caller advances once more with
// T_{2m+2}(x) = 2*x*T_{2m+1}(x) - T_{2m}(x).
func step(x, tm, tm1, n *big.Int) (next, next1 *big.Int) {
	two := big.NewInt(2)

	t2m := new(big.Int).Mul(tm, tm)
	t2m.Mul(t2m, two)
	t2m.Sub(t2m, big.NewInt(1))
	t2m.Mod(t2m, n)

	t2m1 := new(big.Int).Mul(tm, tm1)
	t2m1.Mul(t2m1, two)
	t2m1.Sub(t2m1, x)
	t2m1.Mod(t2m1, n)

	return t2m, t2m1
}

// T returns T_k(x) mod n for k >= 0, via a most-significant-bit-first
// binary ladder maintaining the pair (T_m, T_{m+1}).
func T(k int64, x, n *bignat.Nat) *bignat.Nat {
	if k == 0 {
		return bignat.Mod(bignat.FromInt64(1), n)
	}
	xb := new(big.Int).Mod(x.Big(), n.Big())
	nb := n.Big()

	tm := new(big.Int).Set(xb) // T_1(x) = x
	tm1 := new(big.Int).Mul(big.NewInt(2), xb)
	tm1.Mul(tm1, xb)
	tm1.Sub(tm1, big.NewInt(1))
	tm1.Mod(tm1, nb) // T_2(x) = 2x^2 - 1

	bits := bitsOf(k)
	// bits[0] is k's leading 1, which starts the ladder at m=1 via tm/tm1
	// above, so the loop consumes only the bits below it.
	for _, b := range bits[1:] {
		d0, d1 := step(xb, tm, tm1, nb)
		if b == 0 {
			tm, tm1 = d0, d1
		} else {
			t2m2 := new(big.Int).Mul(big.NewInt(2), xb)
			t2m2.Mul(t2m2, d1)
			t2m2.Sub(t2m2, d0)
			t2m2.Mod(t2m2, nb)
			tm, tm1 = d1, t2m2
		}
	}
	return bignat.FromBigInt(tm)
}

// TConstantTime is functionally identical to T but computes both the
// bit=0 and bit=1 branch outputs at every ladder step unconditionally and
// selects between them with big.Int.CondAssign-style masking, so the
// sequence of arithmetic operations performed does not depend on k's bits
// (§8's constant-time testable property).
func TConstantTime(k int64, x, n *bignat.Nat) *bignat.Nat {
	if k == 0 {
		return bignat.Mod(bignat.FromInt64(1), n)
	}
	xb := new(big.Int).Mod(x.Big(), n.Big())
	nb := n.Big()

	tm := new(big.Int).Set(xb)
	tm1 := new(big.Int).Mul(big.NewInt(2), xb)
	tm1.Mul(tm1, xb)
	tm1.Sub(tm1, big.NewInt(1))
	tm1.Mod(tm1, nb)

	bits := bitsOf(k)
	for _, b := range bits[1:] {
		d0, d1 := step(xb, tm, tm1, nb)

		t2m2 := new(big.Int).Mul(big.NewInt(2), xb)
		t2m2.Mul(t2m2, d1)
		t2m2.Sub(t2m2, d0)
		t2m2.Mod(t2m2, nb)

		bitSel := new(big.Int).SetInt64(int64(b))
		notSel := new(big.Int).Xor(bitSel, big.NewInt(1))

		selTm := new(big.Int).Mul(d0, notSel)
		selTm.Add(selTm, new(big.Int).Mul(d1, bitSel))

		selTm1 := new(big.Int).Mul(d1, notSel)
		selTm1.Add(selTm1, new(big.Int).Mul(t2m2, bitSel))

		tm, tm1 = selTm, selTm1
	}
	return bignat.FromBigInt(tm)
}

// bitsOf returns k's bits from most significant to least significant; the
// leading entry is always 1 and is consumed by the ladder's initial state.
func bitsOf(k int64) []int {
	if k <= 0 {
		return []int{0}
	}
	var bits []int
	started := false
	for i := 63; i >= 0; i-- {
		b := int((k >> uint(i)) & 1)
		if !started {
			if b == 0 {
				continue
			}
			started = true
		}
		bits = append(bits, b)
	}
	return bits
}
