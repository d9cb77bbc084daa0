package cfrac

import (
	"math"
	"sync"

	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/numtheory"
)

// FactorBase is the ordered column set CFRAC tests smoothness against:
// Columns[0] is the sign marker -1, Columns[1] is 2, and every later entry
// is an odd prime p with Legendre(n|p) = 1, in strictly ascending order
// (§3's FactorBase invariant).
type FactorBase struct {
	Columns []int64
}

// Size is the column count, i.e. the width of a GF(2) relation row.
func (fb *FactorBase) Size() int { return len(fb.Columns) }

// heuristicFactorBaseSize implements max(200, exp(0.4*sqrt(ln n * ln ln n))).
func heuristicFactorBaseSize(n *bignat.Nat) int {
	lnN := numtheory.NaturalLog(n.Big())
	if lnN < math.E {
		lnN = math.E
	}
	v := math.Exp(0.4 * math.Sqrt(lnN*math.Log(lnN)))
	size := int(v)
	if size < 200 {
		size = 200
	}
	return size
}

// BuildFactorBase grows the factor base to exactly size columns (including
// the two fixed -1, 2 markers). Candidate odd numbers are tested for
// primality and quadratic residuosity in fixed-size blocks; within a block
// the work is parallel, but blocks are consumed strictly in order, so the
// result is always in ascending-prime order regardless of how much
// parallelism is used (§5's ordering guarantee).
func BuildFactorBase(n *bignat.Nat, size int) *FactorBase {
	if size < 2 {
		size = 2
	}
	cols := make([]int64, 0, size)
	cols = append(cols, -1, 2)

	const blockWidth = 512
	next := int64(3)
	for len(cols) < size {
		block := candidateBlock(n, next, blockWidth)
		for _, c := range block {
			if len(cols) >= size {
				break
			}
			cols = append(cols, c)
		}
		next += 2 * blockWidth
	}
	return &FactorBase{Columns: cols}
}

// candidateBlock tests width consecutive odd candidates starting at start
// for primality and Legendre(n|p) = 1, returning the survivors in ascending
// order.
func candidateBlock(n *bignat.Nat, start int64, width int) []int64 {
	candidates := make([]int64, width)
	for i := range candidates {
		candidates[i] = start + int64(2*i)
	}
	ok := make([]bool, width)

	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c int64) {
			defer wg.Done()
			p := bignat.FromInt64(c)
			if !numtheory.IsProbablePrime(p, 0) {
				return
			}
			sym, err := numtheory.LegendreSymbol(n, p)
			if err == nil && sym == 1 {
				ok[i] = true
			}
		}(i, c)
	}
	wg.Wait()

	out := make([]int64, 0, width)
	for i, c := range candidates {
		if ok[i] {
			out = append(out, c)
		}
	}
	return out
}
