package pollard

import (
	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/measure"
	"github.com/cpirmayr/factorization/numtheory"
)

const pm1MaxB = 1_000_000

// gcdCheck is the shared "test gcd(a-1, n)" step every p-1 variant performs
// between exponent updates.
func gcdCheck(a, n *bignat.Nat) *bignat.Nat {
	g := bignat.GCD(bignat.AbsDiff(a, bignat.FromInt64(1)), n)
	if g.CmpInt64(1) <= 0 {
		return nil
	}
	if g.Cmp(n) < 0 {
		return g
	}
	return nil // collision: a-1 and n share everything, this seed failed
}

// Pm1Standard is classical Pollard p-1 stage 1: a <- a^b mod n with b
// incrementing through 2,3,4,..., testing gcd(a-1,n) after every step.
func Pm1Standard(n *bignat.Nat) *bignat.Nat {
	a := bignat.FromInt64(2)
	for b := int64(2); b <= pm1MaxB; b++ {
		a = bignat.ModPow(a, bignat.FromInt64(b), n)
		measure.Inc("pm1_standard_steps", 1)
		if a.IsZero() {
			return nil
		}
		if g := gcdCheck(a, n); g != nil {
			return g
		}
	}
	return nil
}

// Pm1SelfReferential is a <- a^a mod n each step, testing gcd(a-1,n) after
// every step (§4.6).
func Pm1SelfReferential(n *bignat.Nat) *bignat.Nat {
	a := bignat.FromInt64(2)
	for i := 0; i < pm1MaxB; i++ {
		a = bignat.ModPow(a, a, n)
		measure.Inc("pm1_self_referential_steps", 1)
		if g := gcdCheck(a, n); g != nil {
			return g
		}
		if a.CmpInt64(1) <= 0 {
			a = bignat.FromInt64(2 + int64(i)) // collapsed to 0 or 1: restart with fresh jitter
		}
	}
	return nil
}

// Pm1PowMod interleaves one square-and-multiply step at a time into the
// outer loop instead of computing a^a in a single ModPow call, amortizing
// the exponent update (§4.6's "power-mod" variant). The state (b, e, r) is
// the base being exponentiated, the exponent being consumed bit by bit,
// and the in-progress accumulator; per §6's resolution, once e's bits are
// exhausted both the new base and the new exponent are reloaded from the
// just-finished accumulator r, and r resets to 1 — i.e. this computes the
// self-referential a <- a^a recurrence one squaring at a time.
func Pm1PowMod(n *bignat.Nat) *bignat.Nat {
	b := bignat.FromInt64(2)
	e := bignat.FromInt64(2)
	r := bignat.FromInt64(1)
	bitIdx := e.BitLen() - 1
	if bitIdx < 0 {
		bitIdx = 0
	}

	for outer := 0; outer < pm1MaxB; outer++ {
		r = bignat.SquareMod(r, n)
		if e.Bit(bitIdx) == 1 {
			r = bignat.MulMod(r, b, n)
		}
		measure.Inc("pm1_powmod_steps", 1)

		if bitIdx == 0 {
			b, e, r = r, r, bignat.FromInt64(1)
			bitIdx = e.BitLen() - 1
			if bitIdx < 0 {
				bitIdx = 0
			}
		} else {
			bitIdx--
		}

		if outer%20 == 0 {
			if g := gcdCheck(b, n); g != nil {
				return g
			}
		}
	}
	return nil
}

// ReferenceConfig holds Pm1Reference's tunable parameters (§6). The zero
// value means "use the default" for every field.
type ReferenceConfig struct {
	Bound       *bignat.Nat
	GcdInterval int
	Base        *bignat.Nat
}

func resolveReferenceConfig(n *bignat.Nat, cfg ReferenceConfig) ReferenceConfig {
	if cfg.Bound == nil || cfg.Bound.Sign() <= 0 {
		cfg.Bound = heuristicSmoothBound(n)
	}
	if cfg.GcdInterval <= 0 {
		cfg.GcdInterval = 20
	}
	if cfg.Base == nil {
		cfg.Base = bignat.FromInt64(2)
	}
	return cfg
}

// Pm1Reference is the smooth-bound variant: a <- a^(p^e) mod n for every
// prime p <= B with e = floor(log_p B), checking gcd(a-1,n) every
// GcdInterval primes (§4.6).
func Pm1Reference(n *bignat.Nat, cfg ReferenceConfig) *bignat.Nat {
	cfg = resolveReferenceConfig(n, cfg)
	primes, err := numtheory.SieveOfEratosthenes(boundForSieve(cfg.Bound))
	if err != nil {
		return nil
	}
	boundBig := cfg.Bound.Big()
	a := cfg.Base.Clone()

	for i, p := range primes {
		pe := primePowerExponent(p, boundBig)
		a = bignat.ModPow(a, bignat.FromBigInt(pe), n)
		measure.Inc("pm1_reference_primes", 1)
		if (i+1)%cfg.GcdInterval == 0 {
			if g := gcdCheck(a, n); g != nil {
				return g
			}
		}
	}
	return gcdCheck(a, n)
}
