// Package driver implements the top-level factorization API: screening,
// algorithm selection, and recursive splitting until every part is prime
// (§4.1).
package driver

import (
	"sort"

	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/cfrac"
	"github.com/cpirmayr/factorization/numtheory"
	"github.com/cpirmayr/factorization/pollard"
	"github.com/cpirmayr/factorization/squfof"
)

// Algorithm is the closed set of selectable factorization engines (§6).
type Algorithm int

const (
	AlgorithmAuto Algorithm = iota
	AlgorithmCFRAC
	AlgorithmSQUFOF
	AlgorithmPollardRhoStandard
	AlgorithmPollardRhoCombined
	AlgorithmPollardPm1Standard
	AlgorithmPollardPm1SelfReferential
	AlgorithmPollardPm1PowMod
	AlgorithmPollardPm1Reference
	AlgorithmWilliamsPPlus1
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmCFRAC:
		return "CFRAC"
	case AlgorithmSQUFOF:
		return "SQUFOF"
	case AlgorithmPollardRhoStandard:
		return "PollardRhoStandard"
	case AlgorithmPollardRhoCombined:
		return "PollardRhoCombined"
	case AlgorithmPollardPm1Standard:
		return "PollardPm1Standard"
	case AlgorithmPollardPm1SelfReferential:
		return "PollardPm1SelfReferential"
	case AlgorithmPollardPm1PowMod:
		return "PollardPm1PowMod"
	case AlgorithmPollardPm1Reference:
		return "PollardPm1Reference"
	case AlgorithmWilliamsPPlus1:
		return "WilliamsPPlus1"
	default:
		return "Auto"
	}
}

// Engine runs one factorization attempt against n and returns a nontrivial
// factor, or nil on failure.
type Engine func(n *bignat.Nat) *bignat.Nat

// ChooseAlgorithm dispatches an Algorithm enum value to its Engine,
// exposed for tests that want to drive one specific variant directly
// (§6's "a factorization attempt dispatcher used by tests").
func ChooseAlgorithm(alg Algorithm) Engine {
	switch alg {
	case AlgorithmCFRAC:
		return func(n *bignat.Nat) *bignat.Nat { return cfrac.Factor(n, cfrac.Config{}) }
	case AlgorithmSQUFOF:
		return squfof.Factor
	case AlgorithmPollardRhoStandard:
		return pollard.RhoStandard
	case AlgorithmPollardRhoCombined:
		return pollard.RhoCombined
	case AlgorithmPollardPm1Standard:
		return pollard.Pm1Standard
	case AlgorithmPollardPm1SelfReferential:
		return pollard.Pm1SelfReferential
	case AlgorithmPollardPm1PowMod:
		return pollard.Pm1PowMod
	case AlgorithmPollardPm1Reference:
		return func(n *bignat.Nat) *bignat.Nat { return pollard.Pm1Reference(n, pollard.ReferenceConfig{}) }
	case AlgorithmWilliamsPPlus1:
		return pollard.WilliamsPPlus1
	default:
		return SelectEngine
	}
}

// smallPrimeLimit is the ceiling for the driver's screening-step trial
// division (§4.1, step 4).
const smallPrimeLimit = 1000

// engineChain is the fixed sequence of engines SelectEngine tries, roughly
// cheapest-and-most-likely-to-hit first: the Pollard family is tried
// before the heavier CFRAC/SQUFOF engines since it is far cheaper per
// attempt and already handles most composites with smooth group orders.
var engineChain = []Engine{
	pollard.RhoCombined,
	pollard.Pm1Standard,
	pollard.WilliamsPPlus1,
	squfof.Factor,
	func(n *bignat.Nat) *bignat.Nat { return cfrac.Factor(n, cfrac.Config{}) },
}

// SelectEngine is choose_algorithm's default (Auto) behavior: try every
// engine in engineChain in turn until one returns a nontrivial factor.
func SelectEngine(n *bignat.Nat) *bignat.Nat {
	for _, eng := range engineChain {
		if f := eng(n); f != nil {
			return f
		}
	}
	return nil
}

// Factor screens n (even? perfect square? small prime divisor? 64-bit
// ECM-factorable? already prime?), then — failing all of those — dispatches
// to the engine chain (§4.1's screening order plus SPEC_FULL §5's 64-bit
// ECM fast path). It returns a nontrivial factor 1 < d < n, or nil if n is
// prime or every engine in the chain was exhausted without success (§8's
// quantified invariant).
func Factor(n *bignat.Nat) *bignat.Nat {
	if n.CmpInt64(4) < 0 {
		return nil // 2 and 3 are prime, anything below has no proper factor
	}
	if n.IsEven() {
		return bignat.FromInt64(2)
	}
	if sq, ok := bignat.IsPerfectSquare(n); ok {
		return sq
	}
	if f := numtheory.SmallPrimeFactor(n, smallPrimeLimit); f != nil {
		return f
	}
	if n.IsUint64() {
		if f, ok := pollard.FactorizeECMUint64(n.Uint64(), 0); ok {
			return bignat.FromInt64(int64(f))
		}
	}
	if numtheory.IsProbablePrime(n, 40) {
		return nil
	}
	return SelectEngine(n)
}

// Factorize returns the ascending-sorted multiset of prime factors of n,
// recursively splitting via Factor until every part passes Miller-Rabin
// (§4.1's work queue, §8's sorted-list testable property).
func Factorize(n *bignat.Nat) []*bignat.Nat {
	queue := []*bignat.Nat{n}
	var out []*bignat.Nat

	for len(queue) > 0 {
		x := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		if x.CmpInt64(2) < 0 {
			out = append(out, x)
			continue
		}
		if numtheory.IsProbablePrime(x, 40) {
			out = append(out, x)
			continue
		}
		d := Factor(x)
		if d == nil || d.IsZero() || d.Cmp(x) == 0 {
			// documented fallback: the split yielded nothing usable, emit
			// x unchanged rather than looping forever on it.
			out = append(out, x)
			continue
		}
		queue = append(queue, d, bignat.Div(x, d))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}
