package cfrac

import (
	"math/big"
	"sync"

	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/contfrac"
)

// SmoothRelation is one congruence x^2 = q (mod n) where q is completely
// smooth over the factor base (§3). V is the exponent-parity bit vector:
// bit 0 is the sign flag (set iff q < 0), bit i>=1 is the parity of
// Columns[i]'s exponent in |q|'s factorization.
type SmoothRelation struct {
	X *bignat.Nat
	Q *big.Int
	V *big.Int
}

// residue folds p^2 mod n into the minimal-absolute-residue range
// (-n/2, n/2], which equals p_k^2 - n*q_k^2 since n*q_k^2 vanishes mod n
// (§4.4 step 2). q is accepted for symmetry with the recurrence but does
// not enter the computation.
func residue(p, q, n *bignat.Nat) *big.Int {
	_ = q
	pm := new(big.Int).Mod(p.Big(), n.Big())
	r := new(big.Int).Mul(pm, pm)
	r.Mod(r, n.Big())
	half := new(big.Int).Rsh(n.Big(), 1)
	if r.Cmp(half) > 0 {
		r.Sub(r, n.Big())
	}
	return r
}

// trialDivide factors |r| completely over fb's prime columns (indices
// 1..len(Columns)-1, i.e. 2 and the odd primes), returning the exponent-parity vector and true only
// if the cofactor reaches 1.
func trialDivide(r *big.Int, fb *FactorBase) (*big.Int, bool) {
	vec := new(big.Int)
	if r.Sign() < 0 {
		vec.SetBit(vec, 0, 1)
	}
	rem := new(big.Int).Abs(r)
	if rem.Sign() == 0 {
		return nil, false
	}
	for i := 1; i < len(fb.Columns); i++ {
		p := big.NewInt(fb.Columns[i])
		exp := 0
		q, m := new(big.Int), new(big.Int)
		for {
			q.DivMod(rem, p, m)
			if m.Sign() != 0 {
				break
			}
			rem.Set(q)
			exp++
		}
		if exp%2 == 1 {
			vec.SetBit(vec, i, 1)
		}
		if rem.Cmp(big.NewInt(1)) == 0 {
			break
		}
	}
	if rem.Cmp(big.NewInt(1)) == 0 {
		return vec, true
	}
	return nil, false
}

// sieveBatch pulls up to batchSize convergents from it, tests each residue
// for smoothness (in parallel when requested, per §5's "embarrassingly
// parallel" smoothness testing), and returns the smooth relations found
// plus the number of convergents actually produced (0 means the iterator
// is exhausted, i.e. n was a perfect square).
func sieveBatch(n *bignat.Nat, fb *FactorBase, it *contfrac.Iterator, batchSize int, parallel bool) ([]SmoothRelation, int) {
	type candidate struct {
		x *bignat.Nat
		r *big.Int
	}
	cands := make([]candidate, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		p, q, ok := it.Next()
		if !ok {
			break
		}
		cands = append(cands, candidate{x: p, r: residue(p, q, n)})
	}

	hits := make([]*SmoothRelation, len(cands))
	test := func(i int) {
		if vec, ok := trialDivide(cands[i].r, fb); ok {
			hits[i] = &SmoothRelation{X: cands[i].x, Q: cands[i].r, V: vec}
		}
	}
	if parallel {
		var wg sync.WaitGroup
		for i := range cands {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				test(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range cands {
			test(i)
		}
	}

	out := make([]SmoothRelation, 0)
	for _, h := range hits {
		if h != nil {
			out = append(out, *h)
		}
	}
	return out, len(cands)
}

// Sieve collects smooth relations until len(relations) reaches
// fb.Size() + cfg.RelationMargin, or the continued-fraction iterator is
// exhausted (n a perfect square), whichever comes first.
func Sieve(n *bignat.Nat, fb *FactorBase, cfg Config) []SmoothRelation {
	it := contfrac.New(n)
	need := fb.Size() + cfg.RelationMargin
	var relations []SmoothRelation
	for len(relations) < need {
		batch, advanced := sieveBatch(n, fb, it, cfg.BatchSize, !cfg.Sequential)
		relations = append(relations, batch...)
		if advanced == 0 {
			break
		}
	}
	return relations
}
