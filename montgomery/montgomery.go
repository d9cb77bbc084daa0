// Package montgomery implements Montgomery (REDC) representation for an
// odd modulus n, letting modular multiplication avoid a full division by n
// (§4.7). It backs the optional Montgomery-form fast path for the Pollard
// family's repeated modular multiplications.
package montgomery

import (
	"fmt"
	"math/big"

	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/ferrors"
)

// Context holds the fixed Montgomery parameters for one odd modulus n:
// R = 2^k with k = bitlen(n), n's negated inverse mod R, and R^2 mod n.
type Context struct {
	n       *big.Int
	k       uint
	r       *big.Int // R mod n (the representation of 1)
	rSquare *big.Int // R^2 mod n, used to enter Montgomery form
	nInv    *big.Int // -n^-1 mod R
	rMask   *big.Int // R - 1, used as a mask for mod-R reduction
}

// New builds a Context for odd modulus n.
func New(n *bignat.Nat) (*Context, error) {
	nb := n.Big()
	if nb.Sign() <= 0 || nb.Bit(0) == 0 {
		return nil, fmt.Errorf("montgomery: modulus must be odd: %w", ferrors.ErrInvalidInput)
	}
	k := uint(nb.BitLen())
	r := new(big.Int).Lsh(big.NewInt(1), k)

	nInvFull := new(big.Int).ModInverse(nb, r)
	if nInvFull == nil {
		return nil, fmt.Errorf("montgomery: n has no inverse mod R: %w", ferrors.ErrInvalidInput)
	}
	negInv := new(big.Int).Sub(r, nInvFull)
	negInv.Mod(negInv, r)

	rModN := new(big.Int).Mod(r, nb)
	rSquare := new(big.Int).Mul(rModN, rModN)
	rSquare.Mod(rSquare, nb)

	mask := new(big.Int).Sub(r, big.NewInt(1))

	return &Context{n: nb, k: k, r: rModN, rSquare: rSquare, nInv: negInv, rMask: mask}, nil
}

// redc computes REDC(t) = (t + ((t * nInv) mod R) * n) / R, with one
// conditional subtraction of n, for 0 <= t < n*R.
func (c *Context) redc(t *big.Int) *big.Int {
	m := new(big.Int).And(t, c.rMask)
	m.Mul(m, c.nInv)
	m.And(m, c.rMask)

	u := new(big.Int).Mul(m, c.n)
	u.Add(u, t)
	u.Rsh(u, c.k)

	if u.Cmp(c.n) >= 0 {
		u.Sub(u, c.n)
	}
	return u
}

// ToMontgomery converts x (0 <= x < n) into its Montgomery representation
// x*R mod n, computed as REDC(x * R^2 mod n).
func (c *Context) ToMontgomery(x *bignat.Nat) *bignat.Nat {
	t := new(big.Int).Mul(x.Big(), c.rSquare)
	return bignat.FromBigInt(c.redc(t))
}

// FromMontgomery converts a Montgomery-form value back to its ordinary
// residue via REDC(xBar).
func (c *Context) FromMontgomery(xBar *bignat.Nat) *bignat.Nat {
	return bignat.FromBigInt(c.redc(new(big.Int).Set(xBar.Big())))
}

// MulMontgomery multiplies two Montgomery-form values, returning their
// product still in Montgomery form: REDC(aBar * bBar).
func (c *Context) MulMontgomery(aBar, bBar *bignat.Nat) *bignat.Nat {
	t := new(big.Int).Mul(aBar.Big(), bBar.Big())
	return bignat.FromBigInt(c.redc(t))
}
