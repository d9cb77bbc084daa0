package squfof

import (
	"testing"

	"github.com/cpirmayr/factorization/bignat"
)

func TestFactorKnownSemiprimes(t *testing.T) {
	cases := []struct {
		n            int64
		divisorsOneOf []int64
	}{
		{1000007, []int64{29, 34483}}, // 29 * 34483
		{2041, []int64{13, 157}},       // 13 * 157
		{8051, []int64{83, 97}},
	}
	for _, c := range cases {
		f := Factor(bignat.FromInt64(c.n))
		if f == nil {
			t.Fatalf("Factor(%d): no factor found", c.n)
		}
		if c.n%f.Int64() != 0 {
			t.Fatalf("Factor(%d)=%d does not divide n", c.n, f.Int64())
		}
		ok := false
		for _, d := range c.divisorsOneOf {
			if f.Int64() == d {
				ok = true
			}
		}
		if !ok {
			t.Fatalf("Factor(%d)=%d, want one of %v", c.n, f.Int64(), c.divisorsOneOf)
		}
	}
}

func TestFactorReturnsProperDivisor(t *testing.T) {
	ns := []int64{15, 21, 35, 77, 221, 9409, 1000003 * 1000033}
	for _, nv := range ns {
		n := bignat.FromInt64(nv)
		f := Factor(n)
		if f == nil {
			continue // SQUFOF is allowed to fail; the driver would try another engine
		}
		if f.Int64() <= 1 || f.Int64() >= nv {
			t.Fatalf("Factor(%d)=%d is not a proper divisor", nv, f.Int64())
		}
		if nv%f.Int64() != 0 {
			t.Fatalf("Factor(%d)=%d does not divide n", nv, f.Int64())
		}
	}
}
