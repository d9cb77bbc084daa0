package gf2

import (
	"math/big"
	"math/rand"
	"testing"
)

func xorAll(orig []*big.Int, idx []int, numCols int) *big.Int {
	acc := new(big.Int)
	for _, i := range idx {
		acc.Xor(acc, orig[i])
	}
	return acc
}

func randomVectors(rnd *rand.Rand, n, cols int) []*big.Int {
	out := make([]*big.Int, n)
	for i := range out {
		v := new(big.Int)
		for c := 0; c < cols; c++ {
			if rnd.Intn(2) == 1 {
				v.SetBit(v, c, 1)
			}
		}
		out[i] = v
	}
	return out
}

func TestEliminateHistoryInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	orig := randomVectors(rnd, 12, 8) // more rows than columns guarantees a dependency
	clones := make([]*big.Int, len(orig))
	for i, v := range orig {
		clones[i] = new(big.Int).Set(v)
	}
	m := New(clones, 8)
	m.Eliminate()

	for i, row := range m.Rows {
		want := xorAll(orig, bitsSet(&row.History), 8)
		if row.Bits.Cmp(want) != 0 {
			t.Fatalf("row %d: Bits=%s != XOR of history-indicated originals=%s", i, row.Bits.Text(2), want.Text(2))
		}
	}
}

func TestEliminateFindsDependency(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	orig := randomVectors(rnd, 20, 8)
	clones := make([]*big.Int, len(orig))
	for i, v := range orig {
		clones[i] = new(big.Int).Set(v)
	}
	m := New(clones, 8)
	m.Eliminate()
	deps := m.Dependencies()
	if len(deps) == 0 {
		t.Fatalf("expected at least one dependency with 20 rows over 8 columns")
	}
	for _, d := range deps {
		sum := xorAll(orig, d, 8)
		if sum.Sign() != 0 {
			t.Fatalf("dependency %v does not XOR to zero: got %s", d, sum.Text(2))
		}
	}
}

func TestEliminateParallelMatchesSequential(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	orig := randomVectors(rnd, 30, 10)

	seqClones := make([]*big.Int, len(orig))
	parClones := make([]*big.Int, len(orig))
	for i, v := range orig {
		seqClones[i] = new(big.Int).Set(v)
		parClones[i] = new(big.Int).Set(v)
	}

	seq := New(seqClones, 10)
	seq.Eliminate()
	par := New(parClones, 10)
	par.EliminateParallel(4)

	seqDeps := seq.Dependencies()
	parDeps := par.Dependencies()
	if len(seqDeps) != len(parDeps) {
		t.Fatalf("dependency count mismatch: sequential=%d parallel=%d", len(seqDeps), len(parDeps))
	}
	for i := range seqDeps {
		if len(seqDeps[i]) != len(parDeps[i]) {
			t.Fatalf("dependency %d shape mismatch", i)
		}
		for j := range seqDeps[i] {
			if seqDeps[i][j] != parDeps[i][j] {
				t.Fatalf("dependency %d differs between sequential and parallel runs", i)
			}
		}
	}
}
