package numtheory

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/ferrors"
)

// GenerateSemiprime builds a test composite n = p*q with p and q distinct
// primes of roughly digits/2 decimal digits each (d1 = ceil(digits/2), d2 =
// digits - d1), per §4.2. When seed is non-nil the prime search draws from
// SeededStream(*seed), making the result reproducible across runs; otherwise
// it draws from crypto/rand.
func GenerateSemiprime(digits int, seed *int64) (n, p, q *bignat.Nat, err error) {
	if digits < 2 {
		return nil, nil, nil, fmt.Errorf("numtheory: GenerateSemiprime(%d): %w", digits, ferrors.ErrInvalidInput)
	}
	d1 := (digits + 1) / 2
	d2 := digits - d1

	var src io.Reader = rand.Reader
	if seed != nil {
		src = SeededStream(*seed)
	}

	p, err = randomPrimeWithDigits(d1, src)
	if err != nil {
		return nil, nil, nil, err
	}
	for {
		q, err = randomPrimeWithDigits(d2, src)
		if err != nil {
			return nil, nil, nil, err
		}
		if q.Cmp(p) != 0 {
			break
		}
	}
	n = bignat.Mul(p, q)
	return n, p, q, nil
}

// randomPrimeWithDigits draws a uniformly random candidate in
// [10^(d-1), 10^d - 1] from src and returns the first one that passes
// Miller-Rabin at 40 rounds.
func randomPrimeWithDigits(d int, src io.Reader) (*bignat.Nat, error) {
	if d < 1 {
		return nil, fmt.Errorf("numtheory: prime digit count %d: %w", d, ferrors.ErrInvalidInput)
	}
	lo := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d-1)), nil)
	hi := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d)), nil)
	span := new(big.Int).Sub(hi, lo)

	for {
		c, err := rand.Int(src, span)
		if err != nil {
			return nil, fmt.Errorf("numtheory: drawing candidate: %w", err)
		}
		c.Add(c, lo)
		c.SetBit(c, 0, 1) // odd candidates only
		cand := bignat.FromBigInt(c)
		if IsProbablePrime(cand, 40) {
			return cand, nil
		}
	}
}
