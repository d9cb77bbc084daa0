// Package numtheory holds the shared number-theoretic primitives every
// factorization engine is built on: Miller-Rabin primality, the Legendre
// symbol, Tonelli-Shanks modular square roots, extended gcd / modular
// inverse, a small-prime sieve, and cryptographic test-case generation.
package numtheory

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"math"
	"math/big"
	"math/rand"

	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/ferrors"
	"golang.org/x/crypto/sha3"
)

// NaturalLog computes ln(n) for a positive big.Int, shared by CFRAC's
// factor-base size heuristic and Pollard p-1's smooth-bound heuristic
// (§6). Numbers too large for float64's exponent range are scaled down by
// a power-of-two shift before conversion rather than overflowing to +Inf.
func NaturalLog(n *big.Int) float64 {
	if n.Sign() <= 0 {
		return 0
	}
	bitLen := n.BitLen()
	if bitLen <= 1000 {
		f := new(big.Float).SetInt(n)
		v, _ := f.Float64()
		return math.Log(v)
	}
	shift := bitLen - 1000
	top := new(big.Int).Rsh(n, uint(shift))
	f := new(big.Float).SetInt(top)
	v, _ := f.Float64()
	return math.Log(v) + float64(shift)*math.Ln2
}

// deterministicWitnesses are the fixed Miller-Rabin bases that make the test
// deterministic for every n below deterministicBound (3.317e24), per
// Pomerance/Selfridge/Wagstaff and Jaeschke's tables.
var deterministicWitnesses = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

var deterministicBound = mustBig("3317044064679887385961981")

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("numtheory: bad literal " + s)
	}
	return v
}

// smallPrimesForTrial holds every prime <= 1000, used by the driver's
// screening step (§4.1, step 4: "any prime <= 1000 that divides n").
var smallPrimesForTrial = func() []int64 {
	primes, err := SieveOfEratosthenes(1000)
	if err != nil {
		panic(err)
	}
	out := make([]int64, len(primes))
	for i, p := range primes {
		out[i] = int64(p)
	}
	return out
}()

// IsProbablePrime runs Miller-Rabin on n. For n below 3.317e24 the fixed
// witness set {2,3,...,37} makes the result deterministic and rounds is
// ignored; above that bound, rounds independent random bases are used
// (rounds <= 0 defaults to 40, matching the testable-properties table).
func IsProbablePrime(n *bignat.Nat, rounds int) bool {
	v := n.Big()
	if v.Sign() <= 0 || v.Cmp(big.NewInt(1)) == 0 {
		return false
	}
	two := big.NewInt(2)
	if v.Cmp(two) == 0 {
		return true
	}
	for _, p := range []int64{2, 3, 5} {
		pb := big.NewInt(p)
		if v.Cmp(pb) == 0 {
			return true
		}
		if new(big.Int).Mod(v, pb).Sign() == 0 {
			return false
		}
	}

	nMinus1 := new(big.Int).Sub(v, big.NewInt(1))
	r := 0
	d := new(big.Int).Set(nMinus1)
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	if v.Cmp(deterministicBound) < 0 {
		for _, w := range deterministicWitnesses {
			a := big.NewInt(w)
			if a.Cmp(v) >= 0 {
				continue
			}
			if !millerRabinWitness(a, d, nMinus1, v, r) {
				return false
			}
		}
		return true
	}

	if rounds <= 0 {
		rounds = 40
	}
	rnd := rand.New(rand.NewSource(rngSeed()))
	upper := new(big.Int).Sub(v, big.NewInt(3))
	for i := 0; i < rounds; i++ {
		a := new(big.Int).Rand(rnd, upper)
		a.Add(a, big.NewInt(2))
		if !millerRabinWitness(a, d, nMinus1, v, r) {
			return false
		}
	}
	return true
}

func millerRabinWitness(a, d, nMinus1, n *big.Int, r int) bool {
	x := new(big.Int).Exp(a, d, n)
	if x.Cmp(big.NewInt(1)) == 0 || x.Cmp(nMinus1) == 0 {
		return true
	}
	for i := 0; i < r-1; i++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(nMinus1) == 0 {
			return true
		}
	}
	return false
}

// LegendreSymbol computes (a|p) via Euler's criterion a^((p-1)/2) mod p. p
// must be an odd prime.
func LegendreSymbol(a, p *bignat.Nat) (int, error) {
	pb := p.Big()
	if pb.Sign() <= 0 || pb.Bit(0) == 0 || pb.Cmp(big.NewInt(2)) == 0 {
		return 0, fmt.Errorf("numtheory: LegendreSymbol: modulus must be an odd prime: %w", ferrors.ErrInvalidInput)
	}
	av := new(big.Int).Mod(a.Big(), pb)
	if av.Sign() == 0 {
		return 0, nil
	}
	exp := new(big.Int).Rsh(new(big.Int).Sub(pb, big.NewInt(1)), 1)
	r := new(big.Int).Exp(av, exp, pb)
	pMinus1 := new(big.Int).Sub(pb, big.NewInt(1))
	switch {
	case r.Cmp(big.NewInt(1)) == 0:
		return 1, nil
	case r.Cmp(pMinus1) == 0:
		return -1, nil
	default:
		return 0, nil
	}
}

// TonelliShanks returns a square root of a modulo the odd prime p, when one
// exists ((a|p) = 1). p ≡ 3 (mod 4) is handled by the closed form
// a^((p+1)/4); the general case follows Tonelli-Shanks.
func TonelliShanks(a, p *bignat.Nat) (*bignat.Nat, error) {
	pb := p.Big()
	if pb.Sign() <= 0 || pb.Bit(0) == 0 {
		return nil, fmt.Errorf("numtheory: TonelliShanks: modulus must be an odd prime: %w", ferrors.ErrInvalidInput)
	}
	av := new(big.Int).Mod(a.Big(), pb)
	if av.Sign() == 0 {
		return bignat.FromInt64(0), nil
	}
	sym, err := LegendreSymbol(a, p)
	if err != nil {
		return nil, err
	}
	if sym != 1 {
		return nil, fmt.Errorf("numtheory: TonelliShanks(%s,%s): %w", a, p, ferrors.ErrNoSquareRoot)
	}

	one := big.NewInt(1)
	four := big.NewInt(4)

	if new(big.Int).Mod(pb, four).Cmp(big.NewInt(3)) == 0 {
		exp := new(big.Int).Rsh(new(big.Int).Add(pb, one), 2)
		return bignat.FromBigInt(new(big.Int).Exp(av, exp, pb)), nil
	}

	// p-1 = s * 2^e, s odd.
	s := new(big.Int).Sub(pb, one)
	e := 0
	for s.Bit(0) == 0 {
		s.Rsh(s, 1)
		e++
	}

	// Find a quadratic non-residue n.
	n := big.NewInt(2)
	for {
		l, _ := LegendreSymbol(bignat.FromBigInt(n), p)
		if l == -1 {
			break
		}
		n.Add(n, one)
	}

	x := new(big.Int).Exp(av, new(big.Int).Rsh(new(big.Int).Add(s, one), 1), pb)
	b := new(big.Int).Exp(av, s, pb)
	g := new(big.Int).Exp(n, s, pb)
	r := e

	for {
		// Find least m such that b^(2^m) == 1.
		m := 0
		t := new(big.Int).Set(b)
		for t.Cmp(one) != 0 {
			t.Mul(t, t)
			t.Mod(t, pb)
			m++
		}
		if m == 0 {
			return wrapRoot(x)
		}
		gs := new(big.Int).Exp(g, new(big.Int).Lsh(one, uint(r-m-1)), pb)
		g.Mul(gs, gs)
		g.Mod(g, pb)
		x.Mul(x, gs)
		x.Mod(x, pb)
		b.Mul(b, g)
		b.Mod(b, pb)
		r = m
	}
}

func wrapRoot(v *big.Int) (*bignat.Nat, error) {
	return bignat.FromBigInt(v), nil
}

// ExtendedGCD returns (g, x, y) with a*x + b*y = g = gcd(a, b).
func ExtendedGCD(a, b *bignat.Nat) (g, x, y *bignat.Nat) {
	return bignat.ExtendedGCD(a, b)
}

// ModInverse returns the inverse of a modulo m, failing with
// ferrors.ErrNoInverse when gcd(a, m) != 1.
func ModInverse(a, m *bignat.Nat) (*bignat.Nat, error) {
	return bignat.ModInverse(a, m)
}

// SieveOfEratosthenes returns every prime p <= limit in ascending order.
// limit must fit in addressable memory; callers exceeding platform limits
// get ferrors.ErrCapacityExceeded rather than an out-of-memory panic.
func SieveOfEratosthenes(limit uint64) ([]uint64, error) {
	const maxSieve = 1 << 34 // generous but finite; guards against absurd bounds
	if limit > maxSieve {
		return nil, fmt.Errorf("numtheory: sieve bound %d: %w", limit, ferrors.ErrCapacityExceeded)
	}
	if limit < 2 {
		return nil, nil
	}
	composite := make([]bool, limit+1)
	var primes []uint64
	for p := uint64(2); p <= limit; p++ {
		if composite[p] {
			continue
		}
		primes = append(primes, p)
		if p > limit/p {
			continue
		}
		for m := p * p; m <= limit; m += p {
			composite[m] = true
		}
	}
	return primes, nil
}

// SmallPrimeFactor returns the smallest prime p <= limit with p | n and
// p != n, or nil if there is none (a prime n <= limit yields nil). Used by
// the driver's screening step (§4.1, step 4).
func SmallPrimeFactor(n *bignat.Nat, limit int64) *bignat.Nat {
	v := n.Big()
	for _, p := range smallPrimesForTrial {
		if p > limit {
			break
		}
		pb := big.NewInt(p)
		if new(big.Int).Mod(v, pb).Sign() == 0 && v.Cmp(pb) != 0 {
			return bignat.FromInt64(p)
		}
	}
	return nil
}

// SeededStream expands a small integer seed into a deterministic
// cryptographic-quality io.Reader via SHAKE-256, repurposing the same XOF
// used for Merkle-leaf hashing elsewhere as a stream expander instead of a
// collision-resistant hash.
func SeededStream(seed int64) io.Reader {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(seed >> (8 * i))
	}
	x := sha3.NewShake256()
	x.Write(buf[:])
	return x
}

// rngSeed draws a non-deterministic int64 seed from crypto/rand, falling
// back to a fixed constant only if the platform RNG is unavailable.
func rngSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0x5bd1e995
	}
	var s int64
	for i := 0; i < 8; i++ {
		s |= int64(b[i]) << (8 * i)
	}
	if s < 0 {
		s = -s
	}
	return s
}
