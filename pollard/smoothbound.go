package pollard

import (
	"math"
	"math/big"

	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/numtheory"
)

// maxPracticalSieve caps how large a smooth bound we will actually sieve
// primes up to. The formula in heuristicSmoothBound can suggest a bound far
// beyond what fits in addressable memory (§7's CapacityExceeded taxonomy
// entry); in that case we use the largest practical prefix instead of
// failing the whole engine.
const maxPracticalSieve = 10_000_000

// heuristicSmoothBound computes B = exp(sqrt(ln n * ln ln n) / sqrt(2)),
// clamped to [1e3, 1e15] (§4.6's p-1 reference bound, reused by Williams
// p+1 for the same notion of a group-order-smoothness bound).
func heuristicSmoothBound(n *bignat.Nat) *bignat.Nat {
	lnN := numtheory.NaturalLog(n.Big())
	if lnN < math.E {
		lnN = math.E
	}
	v := math.Exp(math.Sqrt(lnN*math.Log(lnN)) / math.Sqrt2)
	b := int64(v)
	if b < 1_000 {
		b = 1_000
	}
	if b > 1_000_000_000_000_000 {
		b = 1_000_000_000_000_000
	}
	return bignat.FromInt64(b)
}

// boundForSieve returns the limit actually passed to SieveOfEratosthenes:
// the heuristic bound itself when it is small enough to enumerate, or the
// largest practical prefix otherwise.
func boundForSieve(bound *bignat.Nat) uint64 {
	if bound.IsUint64() && bound.Uint64() <= maxPracticalSieve {
		return bound.Uint64()
	}
	return maxPracticalSieve
}

// primePowerExponent returns the largest power of p that does not exceed
// bound, i.e. p^floor(log_p(bound)).
func primePowerExponent(p uint64, bound *big.Int) *big.Int {
	pe := big.NewInt(1)
	pb := new(big.Int).SetUint64(p)
	for {
		next := new(big.Int).Mul(pe, pb)
		if next.Cmp(bound) > 0 {
			break
		}
		pe = next
	}
	return pe
}
