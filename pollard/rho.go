package pollard

import (
	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/chebyshev"
	"github.com/cpirmayr/factorization/measure"
)

// maxRestarts bounds how many different additive constants/seeds
// rho-standard retries before giving up (§4.6: "on failure restart with
// different c").
const maxRestarts = 100

func squarePlusC(x, c, n *bignat.Nat) *bignat.Nat {
	return bignat.Mod(bignat.Add(bignat.SquareMod(x, n), c), n)
}

// RhoStandard is Pollard's rho with f(x) = x^2 + c mod n, c starting at 1
// and incrementing on failure.
func RhoStandard(n *bignat.Nat) *bignat.Nat {
	x0 := bignat.FromInt64(2)
	for c := int64(1); c <= maxRestarts; c++ {
		cc := bignat.FromInt64(c)
		measure.Inc("rho_standard_restarts", 1)
		if f := floydRho(n, x0, func(x *bignat.Nat) *bignat.Nat {
			measure.Inc("rho_standard_steps", 1)
			return squarePlusC(x, cc, n)
		}); f != nil {
			return f
		}
	}
	return nil
}

// RhoCombined is the same Floyd cycle detection as RhoStandard, but rotates
// the iteration map through three stages as the running iteration count i
// crosses bit-length-derived thresholds of n (§6's pinned resolution):
// Chebyshev T_2 below bitlen(n)/9, self-referential x^x between bitlen(n)/9
// and 2*bitlen(n)/9, and x^2+1 from 2*bitlen(n)/5 onward.
func RhoCombined(n *bignat.Nat) *bignat.Nat {
	bl := n.BitLen()
	t1 := bl / 9
	t2 := 2 * bl / 9
	t3 := 2 * bl / 5
	i := 0

	next := func(x *bignat.Nat) *bignat.Nat {
		i++
		measure.Inc("rho_combined_steps", 1)
		switch {
		case i < t1:
			return chebyshev.T(2, x, n)
		case i < t2:
			return bignat.ModPow(x, x, n)
		case i < t3:
			return squarePlusC(x, bignat.FromInt64(1), n)
		default:
			return squarePlusC(x, bignat.FromInt64(1), n)
		}
	}
	return floydRho(n, bignat.FromInt64(2), next)
}
