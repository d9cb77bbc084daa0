// Package squfof implements Shanks' SQUFOF: a two-phase binary quadratic
// form cycle over k*n, retried across the Shanks-Riesel multiplier set,
// that detects a perfect-square form and recovers a factor by reversing
// the form cycle (§4.5).
package squfof

import (
	"math/big"

	"github.com/cpirmayr/factorization/bignat"
)

// Multipliers is the fixed Shanks-Riesel set tried in order.
var Multipliers = []int64{1, 3, 5, 7, 11, 15, 21, 33, 35, 55, 77, 105, 165, 231, 385, 1155}

// Factor tries every multiplier in Multipliers and returns the first
// nontrivial factor of n found, or nil if all multipliers are exhausted
// (§4.5's documented failure mode: the caller may promote n to
// probably-prime).
func Factor(n *bignat.Nat) *bignat.Nat {
	nb := n.Big()
	for _, k := range Multipliers {
		if f := tryMultiplier(nb, k); f != nil {
			return bignat.FromBigInt(f)
		}
	}
	return nil
}

// properFactor reports whether 1 < candidate < n, i.e. candidate is usable.
func properFactor(candidate, n *big.Int) bool {
	one := big.NewInt(1)
	return candidate.Cmp(one) > 0 && candidate.Cmp(n) < 0
}

// forwardSteps bounds the forward phase: L ~= 3*floor((kn)^(1/4)) + 100,
// capped at a safety ceiling so a pathological multiplier cannot loop
// indefinitely.
func forwardSteps(kn *big.Int) int {
	const safetyCeiling = 2_000_000
	root4, _ := bignat.Root(bignat.FromBigInt(kn), 4)
	l := 3*root4.Int64() + 100
	if l > safetyCeiling || l < 0 {
		l = safetyCeiling
	}
	return int(l)
}

func tryMultiplier(n *big.Int, k int64) *big.Int {
	kn := new(big.Int).Mul(n, big.NewInt(k))
	sqrtKn := bignat.Isqrt(bignat.FromBigInt(kn)).Big()

	P := new(big.Int).Set(sqrtKn)
	Qprev := big.NewInt(1)
	Qcur := new(big.Int).Sub(kn, new(big.Int).Mul(P, P))

	if Qcur.Sign() == 0 {
		g := new(big.Int).GCD(nil, nil, n, sqrtKn)
		if properFactor(g, n) {
			return g
		}
		return nil
	}

	L := forwardSteps(kn)
	one := big.NewInt(1)

	for step := 1; step <= L; step++ {
		b := new(big.Int).Add(sqrtKn, P)
		b.Div(b, Qcur)

		Pnext := new(big.Int).Mul(b, Qcur)
		Pnext.Sub(Pnext, P)

		diff := new(big.Int).Sub(P, Pnext)
		Qnext := new(big.Int).Mul(b, diff)
		Qnext.Add(Qnext, Qprev)

		Qprev, Qcur, P = Qcur, Qnext, Pnext

		if step%2 != 1 {
			continue
		}
		s, ok := bignat.IsPerfectSquare(bignat.FromBigInt(Qcur))
		if !ok {
			continue
		}
		sb := s.Big()
		if sb.Cmp(one) == 0 {
			continue
		}
		candidate := reversePhase(kn, sqrtKn, P, sb)
		g := new(big.Int).GCD(nil, nil, n, candidate)
		if properFactor(g, n) {
			return g
		}
		break // this multiplier's cycle did not yield a usable factor
	}
	return nil
}

// reversePhase reinitializes the form cycle from the square root s of the
// perfect-square Q found at P in the forward phase, and iterates the same
// recurrence until the newly computed P equals the previous one (period
// detected), returning that stationary P as the factor candidate.
func reversePhase(kn, sqrtKn, P, s *big.Int) *big.Int {
	b0 := new(big.Int).Sub(sqrtKn, P)
	b0.Div(b0, s)

	Pcur := new(big.Int).Mul(b0, s)
	Pcur.Add(Pcur, P)

	Qprev := new(big.Int).Set(s)
	Qcur := new(big.Int).Sub(kn, new(big.Int).Mul(Pcur, Pcur))
	Qcur.Div(Qcur, s)

	for {
		b := new(big.Int).Add(sqrtKn, Pcur)
		b.Div(b, Qcur)

		Pnext := new(big.Int).Mul(b, Qcur)
		Pnext.Sub(Pnext, Pcur)

		if Pnext.Cmp(Pcur) == 0 {
			return Pcur
		}

		diff := new(big.Int).Sub(Pcur, Pnext)
		Qnext := new(big.Int).Mul(b, diff)
		Qnext.Add(Qnext, Qprev)

		Qprev, Qcur, Pcur = Qcur, Qnext, Pnext
	}
}
