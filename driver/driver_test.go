package driver

import (
	"math/big"
	"testing"

	"github.com/cpirmayr/factorization/bignat"
	"github.com/cpirmayr/factorization/numtheory"
)

func assertProductAndPrimality(t *testing.T, n *bignat.Nat, factors []*bignat.Nat) {
	t.Helper()
	if len(factors) == 0 {
		t.Fatal("Factorize returned no factors")
	}
	product := bignat.FromInt64(1)
	for i, f := range factors {
		product = bignat.Mul(product, f)
		if !numtheory.IsProbablePrime(f, 40) {
			t.Fatalf("factor %s does not pass Miller-Rabin", f)
		}
		if i > 0 && factors[i-1].Cmp(f) > 0 {
			t.Fatalf("factors not sorted ascending: %v", factors)
		}
	}
	if product.Cmp(n) != 0 {
		t.Fatalf("product of factors %s != n %s", product, n)
	}
}

func TestFactorizeLiteralScenarios(t *testing.T) {
	cases := []int64{8051, 10403, 1000007, 2041}
	for _, nv := range cases {
		n := bignat.FromInt64(nv)
		factors := Factorize(n)
		assertProductAndPrimality(t, n, factors)
	}
}

func TestRhoCombinedEngineOnLiteralScenario(t *testing.T) {
	eng := ChooseAlgorithm(AlgorithmPollardRhoCombined)
	n := bignat.FromInt64(8051)
	f := eng(n)
	if f == nil {
		t.Fatal("PollardRhoCombined found no factor for 8051")
	}
	if f.Int64() != 97 && f.Int64() != 83 {
		t.Fatalf("got %s, want 97 or 83", f)
	}
}

func TestPm1StandardEngineOnLiteralScenario(t *testing.T) {
	eng := ChooseAlgorithm(AlgorithmPollardPm1Standard)
	n := bignat.FromInt64(10403)
	f := eng(n)
	if f == nil {
		t.Fatal("PollardPm1Standard found no factor for 10403")
	}
	if f.Int64() != 101 && f.Int64() != 103 {
		t.Fatalf("got %s, want 101 or 103", f)
	}
}

func TestSQUFOFEngineOnLiteralScenarios(t *testing.T) {
	eng := ChooseAlgorithm(AlgorithmSQUFOF)
	cases := []struct {
		n    int64
		divs []int64
	}{
		{1000007, []int64{29, 34483}},
		{2041, []int64{13, 157}},
	}
	for _, c := range cases {
		f := eng(bignat.FromInt64(c.n))
		if f == nil {
			t.Fatalf("SQUFOF found no factor for %d", c.n)
		}
		ok := false
		for _, d := range c.divs {
			if f.Int64() == d {
				ok = true
			}
		}
		if !ok {
			t.Fatalf("SQUFOF(%d)=%s, want one of %v", c.n, f, c.divs)
		}
	}
}

func TestFactorizeLiteral38DigitSemiprime(t *testing.T) {
	nb, ok := new(big.Int).SetString("56772286057224175134407894536228864081", 10)
	if !ok {
		t.Fatal("bad literal")
	}
	n := bignat.FromBigInt(nb)
	factors := Factorize(n)
	assertProductAndPrimality(t, n, factors)
	if len(factors) != 2 {
		t.Fatalf("expected exactly two prime factors, got %d: %v", len(factors), factors)
	}
	for _, f := range factors {
		if len(f.String()) != 19 {
			t.Fatalf("expected a 19-digit factor, got %s (%d digits)", f, len(f.String()))
		}
	}
}

func TestGenerateSemiprimeRoundTrip(t *testing.T) {
	seed := int64(4711)
	n, p, q, err := numtheory.GenerateSemiprime(20, &seed)
	if err != nil {
		t.Fatalf("GenerateSemiprime: %v", err)
	}
	if len(p.String()) != 10 || len(q.String()) != 10 {
		t.Fatalf("expected two 10-digit primes, got %s and %s", p, q)
	}

	factors := Factorize(n)
	assertProductAndPrimality(t, n, factors)
	if len(factors) != 2 {
		t.Fatalf("expected exactly two prime factors for a semiprime, got %d: %v", len(factors), factors)
	}
}

func TestFactorReturnsNilForPrime(t *testing.T) {
	if f := Factor(bignat.FromInt64(104729)); f != nil {
		t.Fatalf("Factor(104729) = %s, want nil (104729 is prime)", f)
	}
}

func TestFactorQuantifiedInvariant(t *testing.T) {
	for _, nv := range []int64{4, 6, 9, 15, 21, 25, 91, 8051, 10403} {
		n := bignat.FromInt64(nv)
		f := Factor(n)
		if f == nil {
			continue
		}
		if f.CmpInt64(1) <= 0 || f.Cmp(n) >= 0 {
			t.Fatalf("Factor(%d)=%s violates 1<d<n", nv, f)
		}
		if nv%f.Int64() != 0 {
			t.Fatalf("Factor(%d)=%s does not divide n", nv, f)
		}
	}
}
