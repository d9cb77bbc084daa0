package numtheory

import (
	"math/big"
	"testing"

	"github.com/cpirmayr/factorization/bignat"
)

var knownPrimes = []int64{2, 3, 5, 7, 11, 13, 97, 997, 7919, 104729}
var knownComposites = []int64{1, 4, 6, 8, 9, 100, 1001, 8051, 1000000}

func TestIsProbablePrimeKnownValues(t *testing.T) {
	for _, p := range knownPrimes {
		if !IsProbablePrime(bignat.FromInt64(p), 0) {
			t.Errorf("IsProbablePrime(%d) = false, want true", p)
		}
	}
	for _, c := range knownComposites {
		if IsProbablePrime(bignat.FromInt64(c), 0) {
			t.Errorf("IsProbablePrime(%d) = true, want false", c)
		}
	}
}

func TestIsProbablePrimeAgreesWithMathBig(t *testing.T) {
	for i := int64(2); i < 5000; i++ {
		want := big.NewInt(i).ProbablyPrime(20)
		got := IsProbablePrime(bignat.FromInt64(i), 0)
		if got != want {
			t.Fatalf("mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestLegendreSymbol(t *testing.T) {
	p := bignat.FromInt64(7)
	cases := map[int64]int{1: 1, 2: 1, 3: -1, 4: 1, 5: -1, 6: -1, 7: 0, 14: 0}
	for a, want := range cases {
		got, err := LegendreSymbol(bignat.FromInt64(a), p)
		if err != nil {
			t.Fatalf("LegendreSymbol(%d,7): %v", a, err)
		}
		if got != want {
			t.Fatalf("LegendreSymbol(%d,7)=%d, want %d", a, got, want)
		}
	}
}

func TestTonelliShanksRoundTrip(t *testing.T) {
	primes := []int64{7, 11, 13, 17, 97, 1009, 10007}
	for _, p := range primes {
		pn := bignat.FromInt64(p)
		for a := int64(1); a < p; a++ {
			an := bignat.FromInt64(a)
			sym, _ := LegendreSymbol(an, pn)
			root, err := TonelliShanks(an, pn)
			if sym == 1 {
				if err != nil {
					t.Fatalf("TonelliShanks(%d,%d) unexpected error: %v", a, p, err)
				}
				sq := new(big.Int).Mul(root.Big(), root.Big())
				sq.Mod(sq, pn.Big())
				if sq.Cmp(an.Big()) != 0 {
					t.Fatalf("TonelliShanks(%d,%d)=%s: square mismatch", a, p, root)
				}
			} else if sym == -1 {
				if err == nil {
					t.Fatalf("TonelliShanks(%d,%d): expected error for non-residue", a, p)
				}
			}
		}
	}
}

func TestSieveOfEratosthenes(t *testing.T) {
	primes, err := SieveOfEratosthenes(100)
	if err != nil {
		t.Fatalf("sieve error: %v", err)
	}
	want := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97}
	if len(primes) != len(want) {
		t.Fatalf("got %d primes, want %d", len(primes), len(want))
	}
	for i := range want {
		if primes[i] != want[i] {
			t.Fatalf("primes[%d]=%d, want %d", i, primes[i], want[i])
		}
	}
}

func TestSieveOfEratosthenesCapacityExceeded(t *testing.T) {
	if _, err := SieveOfEratosthenes(1 << 40); err == nil {
		t.Fatalf("expected capacity error for absurd bound")
	}
}

func TestGenerateSemiprimeDeterministicSeed(t *testing.T) {
	seed := int64(4711)
	n, p, q, err := GenerateSemiprime(20, &seed)
	if err != nil {
		t.Fatalf("GenerateSemiprime: %v", err)
	}
	if p.Cmp(q) == 0 {
		t.Fatalf("p == q")
	}
	if bignat.Mul(p, q).Cmp(n) != 0 {
		t.Fatalf("p*q != n")
	}
	if !IsProbablePrime(p, 40) || !IsProbablePrime(q, 40) {
		t.Fatalf("GenerateSemiprime produced a non-prime factor")
	}
	if len(p.String()) != 10 || len(q.String()) != 10 {
		t.Fatalf("GenerateSemiprime(20,...): p=%s (%d digits) q=%s (%d digits), want 10 digits each", p, len(p.String()), q, len(q.String()))
	}

	n2, p2, q2, err := GenerateSemiprime(20, &seed)
	if err != nil {
		t.Fatalf("GenerateSemiprime (repeat): %v", err)
	}
	if n.Cmp(n2) != 0 || p.Cmp(p2) != 0 || q.Cmp(q2) != 0 {
		t.Fatalf("GenerateSemiprime not reproducible for the same seed")
	}
}

func TestSmallPrimeFactor(t *testing.T) {
	f := SmallPrimeFactor(bignat.FromInt64(8051), 1000)
	if f == nil || f.Int64() != 83 {
		t.Fatalf("SmallPrimeFactor(8051)=%v, want 83", f)
	}
	if f := SmallPrimeFactor(bignat.FromInt64(97), 1000); f != nil {
		t.Fatalf("SmallPrimeFactor(97): prime should have no proper small factor, got %s", f)
	}
}
