// Package cfrac implements the Morrison-Brillhart continued-fraction
// factorization method: build a quadratic-residue factor base, sieve
// continued-fraction convergents of sqrt(n) for smooth residues, solve the
// resulting GF(2) system for exponent-parity dependencies, and extract a
// factor from the congruence of squares each dependency yields (§4.4).
package cfrac

import (
	"math/big"
	"runtime"

	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/gf2"
)

// Config holds CFRAC's tunable parameters (§6). The zero value means
// "use the default" for every field: FactorBaseSize <= 0 falls back to the
// heuristic size, RelationMargin/BatchSize <= 0 fall back to their
// documented defaults. Parallel is expressed as Sequential so the zero
// value (false) keeps sieving parallel by default.
type Config struct {
	FactorBaseSize int
	RelationMargin int
	BatchSize      int
	Sequential     bool
}

// resolveConfig fills in defaults for unset fields and clamps
// FactorBaseSize to the documented minimum of 50 when a caller overrides it
// with something smaller.
func resolveConfig(n *bignat.Nat, cfg Config) Config {
	if cfg.FactorBaseSize <= 0 {
		cfg.FactorBaseSize = heuristicFactorBaseSize(n)
	} else if cfg.FactorBaseSize < 50 {
		cfg.FactorBaseSize = 50
	}
	if cfg.RelationMargin <= 0 {
		cfg.RelationMargin = 20
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 2000
	}
	return cfg
}

// Factor runs CFRAC to completion against n and returns a nontrivial
// factor, or nil if elimination exhausted every dependency without
// producing one (§4.4's documented failure mode).
func Factor(n *bignat.Nat, cfg Config) *bignat.Nat {
	cfg = resolveConfig(n, cfg)
	fb := BuildFactorBase(n, cfg.FactorBaseSize)
	relations := Sieve(n, fb, cfg)
	if len(relations) < fb.Size() {
		return nil
	}

	vectors := make([]*big.Int, len(relations))
	for i, r := range relations {
		vectors[i] = r.V
	}
	m := gf2.New(vectors, fb.Size())
	if cfg.Sequential {
		m.Eliminate()
	} else {
		m.EliminateParallel(runtime.NumCPU())
	}

	for _, dep := range m.Dependencies() {
		if f := extractSquareFactor(n, relations, dep); f != nil {
			return f
		}
	}
	return nil
}

// extractSquareFactor multiplies the x-values of the relations named by dep
// mod n to get X, multiplies their q-values over the integers to get Y^2,
// and tries gcd(|X-Y|, n) then gcd(X+Y, n) as the factor candidate (§4.4
// step 4).
func extractSquareFactor(n *bignat.Nat, relations []SmoothRelation, dep []int) *bignat.Nat {
	X := big.NewInt(1)
	Y2 := big.NewInt(1)
	for _, idx := range dep {
		rel := relations[idx]
		X.Mul(X, rel.X.Big())
		X.Mod(X, n.Big())
		Y2.Mul(Y2, new(big.Int).Abs(rel.Q))
	}
	Y := bignat.Isqrt(bignat.FromBigInt(Y2)).Big()

	diff := new(big.Int).Sub(X, Y)
	diff.Abs(diff)
	if g := new(big.Int).GCD(nil, nil, n.Big(), diff); properFactor(g, n.Big()) {
		return bignat.FromBigInt(g)
	}
	sum := new(big.Int).Add(X, Y)
	if g := new(big.Int).GCD(nil, nil, n.Big(), sum); properFactor(g, n.Big()) {
		return bignat.FromBigInt(g)
	}
	return nil
}

func properFactor(g, n *big.Int) bool {
	one := big.NewInt(1)
	return g.Cmp(one) > 0 && g.Cmp(n) < 0
}
