// Package contfrac produces the two lazy sequences the Morrison-Brillhart
// congruence-of-squares method and Shanks' SQUFOF are both built from: the
// partial quotients of sqrt(n)'s continued fraction, and the convergent
// numerators/denominators reduced mod n.
package contfrac

import "github.com/cpirmayr/factorization/bignat"

// State is the five recurrence variables driving one step of the expansion,
// exposed for inspection/testing: a0 = floor(sqrt(n)), m, d, a (the current
// partial quotient), and the pair of convergent numerators (mod n) carried
// across steps.
type State struct {
	A0          *bignat.Nat
	M, D, A     *bignat.Nat
	PPrev, PCur *bignat.Nat
}

// Iterator walks the continued fraction expansion of sqrt(n) one step at a
// time. It is restartable only from scratch (New again) — there is no
// rewind. A non-nil Iterator is safe to call Next on repeatedly; it never
// terminates unless n is a perfect square, in which case the first call
// reports ok=false.
type Iterator struct {
	n    *bignat.Nat
	a0   *bignat.Nat
	m, d *bignat.Nat
	a    *bignat.Nat

	pPrev2, pPrev1 *bignat.Nat
	qPrev2, qPrev1 *bignat.Nat

	done bool
}

// New builds an Iterator for sqrt(n). n must be positive.
func New(n *bignat.Nat) *Iterator {
	a0 := bignat.Isqrt(n)
	it := &Iterator{
		n:      n,
		a0:     a0,
		m:      bignat.FromInt64(0),
		d:      bignat.FromInt64(1),
		a:      a0.Clone(),
		pPrev2: bignat.FromInt64(0), // p_{-2}
		pPrev1: bignat.FromInt64(1), // p_{-1}
		qPrev2: bignat.FromInt64(1), // q_{-2}
		qPrev1: bignat.FromInt64(0), // q_{-1}
	}
	if sq, ok := bignat.IsPerfectSquare(n); ok && sq.Cmp(a0) == 0 {
		it.done = true
	}
	return it
}

// State returns a snapshot of the current recurrence variables.
func (it *Iterator) State() State {
	return State{A0: it.a0, M: it.m, D: it.d, A: it.a, PPrev: it.pPrev2, PCur: it.pPrev1}
}

// Next advances one step and returns the convergent numerator p_k and
// denominator q_k, both reduced mod n — safe because the downstream
// consumer (CFRAC's smoothness test) only needs these values mod n. ok is false only when n is a perfect square, in which
// case the sequence is empty.
func (it *Iterator) Next() (p, q *bignat.Nat, ok bool) {
	if it.done {
		return nil, nil, false
	}
	a := it.a
	p = bignat.Mod(bignat.Add(bignat.Mul(a, it.pPrev1), it.pPrev2), it.n)
	q = bignat.Mod(bignat.Add(bignat.Mul(a, it.qPrev1), it.qPrev2), it.n)
	it.pPrev2, it.pPrev1 = it.pPrev1, p
	it.qPrev2, it.qPrev1 = it.qPrev1, q

	// m_{k+1} = d_k*a_k - m_k ; d_{k+1} = (n - m_{k+1}^2)/d_k ; a_{k+1} = floor((a0+m_{k+1})/d_{k+1})
	mNext := bignat.Sub(bignat.Mul(it.d, a), it.m)
	dNext := bignat.Div(bignat.Sub(it.n, bignat.Mul(mNext, mNext)), it.d)
	aNext := bignat.Div(bignat.Add(it.a0, mNext), dNext)
	it.m, it.d, it.a = mNext, dNext, aNext
	return p, q, true
}

// Convergent pairs a convergent numerator/denominator, both reduced mod n.
type Convergent struct {
	P, Q *bignat.Nat
}

// Prefix returns the first count convergents of sqrt(n)'s continued
// fraction. If n is a perfect square the slice is empty.
func Prefix(n *bignat.Nat, count int) []Convergent {
	it := New(n)
	out := make([]Convergent, 0, count)
	for i := 0; i < count; i++ {
		p, q, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, Convergent{P: p, Q: q})
	}
	return out
}
