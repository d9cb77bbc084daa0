// Package pollard implements the Pollard rho and p-1/p+1 family of
// algebraic cycle-finding factorization engines (§4.6): rho-standard,
// rho-combined, three p-1 variants, Williams' p+1, and a 64-bit ECM fast
// path borrowed from the module's own lattigo dependency.
package pollard

import "github.com/cpirmayr/factorization/bignat"

// maxIterations bounds every cycle-finding loop so a seed/map combination
// that never collides cannot hang the caller; exceeding it is the
// "collision-failure for this seed/map" sentinel of §4.6 (return nil, try
// the next one).
const maxIterations = 2_000_000

// floydRho runs Floyd's tortoise-and-hare cycle detection (§9's "Sequence
// Clone" note: the tortoise is a trivially duplicable copy of the hare's
// earlier state) against the iteration map next, starting both from x0,
// testing gcd(|tortoise-hare|, n) every step.
func floydRho(n *bignat.Nat, x0 *bignat.Nat, next func(x *bignat.Nat) *bignat.Nat) *bignat.Nat {
	tortoise := x0.Clone()
	hare := x0.Clone()
	for i := 0; i < maxIterations; i++ {
		tortoise = next(tortoise)
		hare = next(next(hare))
		d := bignat.GCD(bignat.AbsDiff(tortoise, hare), n)
		if d.CmpInt64(1) > 0 {
			if d.Cmp(n) < 0 {
				return d
			}
			return nil // collision with d == n: this seed/map failed
		}
	}
	return nil
}
