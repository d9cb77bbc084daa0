package pollard

import (
	"math/big"

	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/measure"
	"github.com/cpirmayr/factorization/montgomery"
	"github.com/cpirmayr/factorization/numtheory"
)

const williamsMaxPTries = 50

// lucasVMontgomery computes V_k(P,1) mod n via a binary ladder over k's
// bits, maintaining the pair (V_m, V_{m+1}) with the Q=1 doubling
// identities V_{2m} = V_m^2 - 2 and V_{2m+1} = V_m*V_{m+1} - P. Every
// multiplication is carried out in Montgomery form (§4.6's "Montgomery
// ladder"); additions and subtractions of Montgomery-represented values
// need no conversion since R scales linearly.
func lucasVMontgomery(k, p, n *bignat.Nat) (*bignat.Nat, error) {
	ctx, err := montgomery.New(n)
	if err != nil {
		return nil, err
	}

	pMod := bignat.Mod(p, n)
	pBar := ctx.ToMontgomery(pMod)
	twoBar := ctx.ToMontgomery(bignat.FromInt64(2))

	if k.Sign() == 0 {
		return ctx.FromMontgomery(twoBar), nil
	}

	vmBar := pBar
	vm1Bar := bignat.Mod(bignat.Sub(ctx.MulMontgomery(pBar, pBar), twoBar), n)

	bits := k.BitLen()
	for i := bits - 2; i >= 0; i-- {
		v2mBar := bignat.Mod(bignat.Sub(ctx.MulMontgomery(vmBar, vmBar), twoBar), n)
		v2m1Bar := bignat.Mod(bignat.Sub(ctx.MulMontgomery(vmBar, vm1Bar), pBar), n)
		if k.Bit(i) == 0 {
			vmBar, vm1Bar = v2mBar, v2m1Bar
		} else {
			v2m2Bar := bignat.Mod(bignat.Sub(ctx.MulMontgomery(vm1Bar, vm1Bar), twoBar), n)
			vmBar, vm1Bar = v2m1Bar, v2m2Bar
		}
	}
	return ctx.FromMontgomery(vmBar), nil
}

// WilliamsPPlus1 builds a smooth exponent M as the product of prime powers
// p^e <= B (the same smoothness-bound heuristic as Pm1Reference), then
// tries successive starting values P = 3, 4, 5, ... testing
// gcd(V_M(P) - 2, n) for each (§4.6).
func WilliamsPPlus1(n *bignat.Nat) *bignat.Nat {
	bound := heuristicSmoothBound(n)
	primes, err := numtheory.SieveOfEratosthenes(boundForSieve(bound))
	if err != nil {
		return nil
	}
	boundBig := bound.Big()
	m := big.NewInt(1)
	for _, p := range primes {
		m.Mul(m, primePowerExponent(p, boundBig))
	}
	mNat := bignat.FromBigInt(m)

	for p := int64(3); p < 3+williamsMaxPTries; p++ {
		v, err := lucasVMontgomery(mNat, bignat.FromInt64(p), n)
		measure.Inc("williams_pplus1_tries", 1)
		if err != nil {
			return nil // n is even or otherwise unsuitable for Montgomery form
		}
		g := bignat.GCD(bignat.AbsDiff(v, bignat.FromInt64(2)), n)
		if g.CmpInt64(1) > 0 && g.Cmp(n) < 0 {
			return g
		}
	}
	return nil
}
